package subscriptionRepo

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

// MongoSubscriptionRepo implements SubscriptionRepository using MongoDB.
type MongoSubscriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoSubscriptionRepo creates a new instance of SubscriptionRepository using MongoDB.
func NewMongoSubscriptionRepo() SubscriptionRepository {
	repo := &MongoSubscriptionRepo{coll: database.Collection("subscriptions")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create subscription indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSubscriptionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "businessId", Value: 1}}},
		{Keys: bson.D{{Key: "adminId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new subscription document.
func (r *MongoSubscriptionRepo) Create(sub *models.Subscription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// GetByID retrieves a subscription by ID.
func (r *MongoSubscriptionRepo) GetByID(id string) (*models.Subscription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var sub models.Subscription
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch subscription %s: %w", id, err)
	}
	return &sub, nil
}

// GetByAdmin retrieves the newest subscription owned by an admin.
func (r *MongoSubscriptionRepo) GetByAdmin(adminID string) (*models.Subscription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var sub models.Subscription
	if err := r.coll.FindOne(ctx, bson.M{"adminId": adminID}, opts).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch subscription for admin %s: %w", adminID, err)
	}
	return &sub, nil
}

// GetAll retrieves all subscriptions.
func (r *MongoSubscriptionRepo) GetAll() ([]models.Subscription, error) {
	return r.find(bson.M{})
}

// ListByStatus retrieves subscriptions in any of the given statuses.
func (r *MongoSubscriptionRepo) ListByStatus(statuses ...string) ([]models.Subscription, error) {
	return r.find(bson.M{"status": bson.M{"$in": statuses}})
}

func (r *MongoSubscriptionRepo) find(filter bson.M) ([]models.Subscription, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve subscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	for cursor.Next(ctx) {
		var s models.Subscription
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// Update applies a partial field update and refreshes updatedAt.
func (r *MongoSubscriptionRepo) Update(id string, fields map[string]any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a subscription document by ID.
func (r *MongoSubscriptionRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
