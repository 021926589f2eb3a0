package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-interview-coach-backend/internal/model"
)

var (
	// ErrNotFound means no document matched the given id.
	ErrNotFound = errors.New("interview not found")

	// ErrVersionConflict means a conditional append lost the race to a
	// concurrent writer on the same session.
	ErrVersionConflict = errors.New("interview was modified concurrently")

	// ErrNotActive means an append or finish was attempted on a session
	// that already ended; the stored document is left untouched.
	ErrNotActive = errors.New("interview is not active")
)

// InterviewRepository persists interview session documents.
type InterviewRepository interface {
	Create(ctx context.Context, iv *model.Interview) error
	GetByID(ctx context.Context, id string) (*model.Interview, error)

	// DeactivateActive flips is_active off for every active session owned
	// by the user, stamping ended_at. No feedback is computed for them.
	DeactivateActive(ctx context.Context, userUID string) error

	// AppendExchange atomically appends one answer, one evaluation, and the
	// next pending question, conditioned on the version the caller read and
	// on the session still being active.
	AppendExchange(ctx context.Context, id string, version int64, answer model.TranscriptEntry, eval model.EvaluationEntry, question model.TranscriptEntry) error

	// Finish ends an active session, writing the overall feedback. Finishing
	// an already-ended session returns ErrNotActive and writes nothing.
	Finish(ctx context.Context, id string, fb model.StructuredFeedback, endedAt time.Time) error
}

type interviewRepository struct {
	collection *mongo.Collection
}

// NewInterviewRepository creates a Mongo-backed interview repository.
func NewInterviewRepository(client *mongo.Client, database string) InterviewRepository {
	db := client.Database(database)
	return &interviewRepository{
		collection: db.Collection("interviews"),
	}
}

func (r *interviewRepository) Create(ctx context.Context, iv *model.Interview) error {
	if iv.CreatedAt.IsZero() {
		iv.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, iv)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		iv.ID = oid.Hex()
	}

	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An unparseable id cannot name a stored session.
		return nil, ErrNotFound
	}

	var iv model.Interview
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&iv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &iv, nil
}

func (r *interviewRepository) DeactivateActive(ctx context.Context, userUID string) error {
	filter := bson.M{"user_uid": userUID, "is_active": true}
	update := bson.M{"$set": bson.M{
		"is_active": false,
		"ended_at":  time.Now().UTC(),
	}}

	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

func (r *interviewRepository) AppendExchange(ctx context.Context, id string, version int64, answer model.TranscriptEntry, eval model.EvaluationEntry, question model.TranscriptEntry) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	filter := bson.M{"_id": oid, "version": version, "is_active": true}
	update := bson.M{
		"$push": bson.M{
			"answers":    answer,
			"evaluation": eval,
			"questions":  question,
		},
		"$inc": bson.M{"version": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// The caller read the document moments ago, so the miss means a
		// concurrent end or a concurrent append got there first. Re-read to
		// tell the two apart.
		var current model.Interview
		if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&current); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return err
		}
		if !current.IsActive {
			return ErrNotActive
		}
		return ErrVersionConflict
	}

	return nil
}

func (r *interviewRepository) Finish(ctx context.Context, id string, fb model.StructuredFeedback, endedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	filter := bson.M{"_id": oid, "is_active": true}
	update := bson.M{
		"$set": bson.M{
			"is_active":        false,
			"ended_at":         endedAt,
			"overall_feedback": fb,
		},
		// Ending is a mutation like any other: bump the version so appends
		// conditioned on a pre-end read cannot match.
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotActive
	}

	return nil
}
