package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	repo := &MongoSessionRepo{coll: database.Collection("sessions")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create session indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "staffId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "rated", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new session document.
func (r *MongoSessionRepo) Create(sess *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, sess); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its unique ID.
func (r *MongoSessionRepo) GetByID(id string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var sess models.Session
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sess); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &sess, nil
}

// ListByStaff retrieves all sessions of a staff member, newest first.
func (r *MongoSessionRepo) ListByStaff(staffID string) ([]models.Session, error) {
	return r.find(bson.M{"staffId": staffID})
}

// ListRated retrieves every rated session.
func (r *MongoSessionRepo) ListRated() ([]models.Session, error) {
	return r.find(bson.M{"rated": true})
}

// ListRatedByStaff retrieves the rated sessions of one staff member.
func (r *MongoSessionRepo) ListRatedByStaff(staffID string) ([]models.Session, error) {
	return r.find(bson.M{"staffId": staffID, "rated": true})
}

func (r *MongoSessionRepo) find(filter bson.M) ([]models.Session, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	for cursor.Next(ctx) {
		var s models.Session
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// ClaimRating takes the Unrated->Rated transition with a single conditional
// update so two concurrent submissions cannot both pass the guard. The
// ratings payload is persisted in the same write.
func (r *MongoSessionRepo) ClaimRating(id string, payload models.RatingPayload) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "rated": false}
	update := bson.M{"$set": bson.M{"rated": true, "ratings": payload}}

	res := r.coll.FindOneAndUpdate(ctx, filter, update)
	if err := res.Err(); err != nil {
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("failed to claim rating for session %s: %w", id, err)
		}
		// Either the session is gone or it lost the race; look again to tell.
		count, cerr := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if cerr != nil {
			return fmt.Errorf("failed to claim rating for session %s: %w", id, cerr)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrAlreadyRated
	}
	return nil
}

// MarkVerified sets the verified flag and timestamp.
func (r *MongoSessionRepo) MarkVerified(id string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"verified": true, "verifiedAt": at}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to verify session %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
