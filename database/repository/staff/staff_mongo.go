package staffRepo

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

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo creates a new instance of StaffRepository using MongoDB.
func NewMongoStaffRepo() StaffRepository {
	repo := &MongoStaffRepo{coll: database.Collection("staff")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create staff indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoStaffRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new staff document.
func (r *MongoStaffRepo) Create(st *models.Staff) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, st); err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

// GetByID retrieves a staff member by ID.
func (r *MongoStaffRepo) GetByID(id string) (*models.Staff, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByEmail retrieves a staff member by email.
func (r *MongoStaffRepo) GetByEmail(email string) (*models.Staff, error) {
	return r.findOne(bson.M{"email": email})
}

func (r *MongoStaffRepo) findOne(filter bson.M) (*models.Staff, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var st models.Staff
	if err := r.coll.FindOne(ctx, filter).Decode(&st); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	return &st, nil
}

// GetAll retrieves all staff sorted by name.
func (r *MongoStaffRepo) GetAll() ([]models.Staff, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.Staff
	for cursor.Next(ctx) {
		var st models.Staff
		if err := cursor.Decode(&st); err != nil {
			return nil, fmt.Errorf("failed to decode staff: %w", err)
		}
		staff = append(staff, st)
	}
	return staff, nil
}

// Update applies a partial field update.
func (r *MongoStaffRepo) Update(id string, fields map[string]any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update staff %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a staff document by ID.
func (r *MongoStaffRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete staff %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyRating folds one rating into the running average inside a single
// pipeline update, so concurrent submissions serialize in the store instead
// of racing through a read-modify-write.
func (r *MongoStaffRepo) ApplyRating(id string, rating float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, incrementRatingPipeline(rating))
	if err != nil {
		return fmt.Errorf("failed to apply rating to staff %s: %w", id, err)
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
