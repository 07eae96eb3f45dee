package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"tillpoint/database"
	"tillpoint/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository over the businesses, services
// and items collections.
type MongoCatalogRepo struct {
	businesses *mongo.Collection
	services   *mongo.Collection
	items      *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	repo := &MongoCatalogRepo{
		businesses: database.Collection("businesses"),
		services:   database.Collection("services"),
		items:      database.Collection("items"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create catalog indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.businesses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "adminId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create business indexes: %w", err)
	}
	if _, err := r.services.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "businessId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	if _, err := r.items.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "serviceId", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create item indexes: %w", err)
	}
	return nil
}

// --- Businesses ---

func (r *MongoCatalogRepo) CreateBusiness(b *models.Business) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.businesses.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) GetBusinessByID(id string) (*models.Business, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Business
	if err := r.businesses.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch business %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoCatalogRepo) GetBusinessByAdmin(adminID string) (*models.Business, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Business
	if err := r.businesses.FindOne(ctx, bson.M{"adminId": adminID}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch business for admin %s: %w", adminID, err)
	}
	return &b, nil
}

func (r *MongoCatalogRepo) GetAllBusinesses() ([]models.Business, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.businesses.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve businesses: %w", err)
	}
	defer cursor.Close(ctx)

	var businesses []models.Business
	for cursor.Next(ctx) {
		var b models.Business
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode business: %w", err)
		}
		businesses = append(businesses, b)
	}
	return businesses, nil
}

func (r *MongoCatalogRepo) UpdateBusiness(id string, fields map[string]any) error {
	return r.updateOne(r.businesses, bson.M{"id": id}, fields)
}

func (r *MongoCatalogRepo) DeleteBusiness(id string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	res, err := r.businesses.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete business %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	// Cascade to the children so orphans never feed a rollup.
	if _, err := r.services.DeleteMany(ctx, bson.M{"businessId": id}); err != nil {
		return fmt.Errorf("failed to delete services of business %s: %w", id, err)
	}
	if _, err := r.items.DeleteMany(ctx, bson.M{"businessId": id}); err != nil {
		return fmt.Errorf("failed to delete items of business %s: %w", id, err)
	}
	return nil
}

// --- Services ---

func (r *MongoCatalogRepo) CreateService(s *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.services.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) ListServices(businessID string) ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{"businessId": businessID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	return services, nil
}

func (r *MongoCatalogRepo) UpdateService(businessID, serviceID string, fields map[string]any) error {
	return r.updateOne(r.services, bson.M{"id": serviceID, "businessId": businessID}, fields)
}

func (r *MongoCatalogRepo) DeleteService(businessID, serviceID string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"id": serviceID, "businessId": businessID}
	res, err := r.services.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", serviceID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.items.DeleteMany(ctx, bson.M{"businessId": businessID, "serviceId": serviceID}); err != nil {
		return fmt.Errorf("failed to delete items of service %s: %w", serviceID, err)
	}
	return nil
}

// --- Items ---

func (r *MongoCatalogRepo) CreateItem(it *models.Item) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.items.InsertOne(ctx, it); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) ListItems(businessID, serviceID, category string) ([]models.Item, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"businessId": businessID, "serviceId": serviceID}
	if category != "" {
		filter["category"] = category
	}
	cursor, err := r.items.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Item
	for cursor.Next(ctx) {
		var it models.Item
		if err := cursor.Decode(&it); err != nil {
			return nil, fmt.Errorf("failed to decode item: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *MongoCatalogRepo) UpdateItem(businessID, serviceID, itemID string, fields map[string]any) error {
	filter := bson.M{"id": itemID, "businessId": businessID, "serviceId": serviceID}
	return r.updateOne(r.items, filter, fields)
}

func (r *MongoCatalogRepo) DeleteItem(businessID, serviceID, itemID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": itemID, "businessId": businessID, "serviceId": serviceID}
	res, err := r.items.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Aggregate writes ---

// ApplyItemRating folds one rating into the item's running average inside a
// single pipeline update (no read-modify-write).
func (r *MongoCatalogRepo) ApplyItemRating(businessID, serviceID, itemID string, rating float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": itemID, "businessId": businessID, "serviceId": serviceID}
	res, err := r.items.UpdateOne(ctx, filter, incrementRatingPipeline(rating))
	if err != nil {
		return fmt.Errorf("failed to apply rating to item %s: %w", itemID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCatalogRepo) SetServiceAggregate(businessID, serviceID string, rating float64, reviewCount int) error {
	fields := map[string]any{"rating": rating, "reviewCount": reviewCount}
	return r.updateOne(r.services, bson.M{"id": serviceID, "businessId": businessID}, fields)
}

func (r *MongoCatalogRepo) SetBusinessAggregate(businessID string, rating float64, reviewCount int) error {
	fields := map[string]any{"rating": rating, "reviewCount": reviewCount}
	return r.updateOne(r.businesses, bson.M{"id": businessID}, fields)
}

func (r *MongoCatalogRepo) updateOne(coll *mongo.Collection, filter bson.M, fields map[string]any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// incrementRatingPipeline computes
// (rating*reviewCount + r) / (reviewCount + 1) and reviewCount+1 server-side.
func incrementRatingPipeline(rating float64) mongo.Pipeline {
	count := bson.M{"$ifNull": bson.A{"$reviewCount", 0}}
	current := bson.M{"$ifNull": bson.A{"$rating", 0}}
	newCount := bson.M{"$add": bson.A{count, 1}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"rating": bson.M{"$divide": bson.A{
				bson.M{"$add": bson.A{bson.M{"$multiply": bson.A{current, count}}, rating}},
				newCount,
			}},
			"reviewCount": newCount,
		}}},
	}
}
