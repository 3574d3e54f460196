package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

// ResponseRepo persists interview responses. Status transitions are guarded
// by filters so a record can only ever move forward through the lifecycle:
// pending -> processing -> completed|failed.
type ResponseRepo interface {
	Create(ctx context.Context, response *model.InterviewResponse) error
	GetByID(ctx context.Context, id string) (*model.InterviewResponse, error)
	GetByUser(ctx context.Context, userID string, offset, limit int64) ([]*model.InterviewResponse, error)
	CountByUser(ctx context.Context, userID string) (int64, error)

	MarkProcessing(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string, processedAt time.Time, processingTimeMS int64) error
	MarkFailed(ctx context.Context, id string, errorMessage string) error

	SetTranscription(ctx context.Context, id, originalText, processedText, audioPath string, durationSeconds, confidence float64) error
}

type responseRepo struct {
	collection *mongo.Collection
}

func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("interview_responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.InterviewResponse) error {
	if response.ID == "" {
		response.ID = primitive.NewObjectID().Hex()
	}
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now()
	}
	if response.Status == "" {
		response.Status = model.StatusPending
	}

	_, err := r.collection.InsertOne(ctx, response)
	if err != nil {
		return &model.PersistenceError{Op: "create response", Err: err}
	}
	return nil
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.InterviewResponse, error) {
	var response model.InterviewResponse
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&response)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

func (r *responseRepo) GetByUser(ctx context.Context, userID string, offset, limit int64) ([]*model.InterviewResponse, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.InterviewResponse
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}

func (r *responseRepo) MarkProcessing(ctx context.Context, id string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": model.StatusPending},
		bson.M{"$set": bson.M{"status": model.StatusProcessing}},
	)
	if err != nil {
		return &model.PersistenceError{Op: "mark processing", Err: err}
	}
	if res.MatchedCount == 0 {
		return &model.PersistenceError{Op: "mark processing", Err: mongo.ErrNoDocuments}
	}
	return nil
}

func (r *responseRepo) MarkCompleted(ctx context.Context, id string, processedAt time.Time, processingTimeMS int64) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": model.StatusProcessing},
		bson.M{"$set": bson.M{
			"status":           model.StatusCompleted,
			"processedAt":      processedAt,
			"processingTimeMs": processingTimeMS,
		}},
	)
	if err != nil {
		return &model.PersistenceError{Op: "mark completed", Err: err}
	}
	if res.MatchedCount == 0 {
		return &model.PersistenceError{Op: "mark completed", Err: mongo.ErrNoDocuments}
	}
	return nil
}

func (r *responseRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": []model.ResponseStatus{model.StatusPending, model.StatusProcessing}}},
		bson.M{"$set": bson.M{
			"status":       model.StatusFailed,
			"errorMessage": errorMessage,
		}},
	)
	if err != nil {
		return &model.PersistenceError{Op: "mark failed", Err: err}
	}
	return nil
}

func (r *responseRepo) SetTranscription(ctx context.Context, id, originalText, processedText, audioPath string, durationSeconds, confidence float64) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"originalText":            originalText,
			"processedText":           processedText,
			"audioFilePath":           audioPath,
			"responseDurationSeconds": durationSeconds,
			"transcriptionConfidence": confidence,
		}},
	)
	if err != nil {
		return &model.PersistenceError{Op: "set transcription", Err: err}
	}
	return nil
}
