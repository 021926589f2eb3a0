package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-interview-coach-backend/internal/model"
)

// ErrUserNotFound means no profile document exists for the uid.
var ErrUserNotFound = errors.New("user profile not found")

// UserRepository persists user profile documents, keyed by the identity
// provider's uid.
type UserRepository interface {
	GetByUID(ctx context.Context, uid string) (*model.UserProfile, error)
	Create(ctx context.Context, profile *model.UserProfile) error
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a Mongo-backed user repository.
func NewUserRepository(client *mongo.Client, database string) UserRepository {
	db := client.Database(database)
	return &userRepository{
		collection: db.Collection("users"),
	}
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &profile, nil
}

func (r *userRepository) Create(ctx context.Context, profile *model.UserProfile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, profile)
	return err
}
