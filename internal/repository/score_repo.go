package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

// ScoreRepo persists score records. A score is written exactly once per
// completed response and never mutated afterwards.
type ScoreRepo interface {
	Create(ctx context.Context, score *model.ResponseScore) error
	GetByResponseID(ctx context.Context, responseID string) (*model.ResponseScore, error)
}

type scoreRepo struct {
	collection *mongo.Collection
}

func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		collection: db.Collection("response_scores"),
	}
}

func (r *scoreRepo) Create(ctx context.Context, score *model.ResponseScore) error {
	if score.ID == "" {
		score.ID = primitive.NewObjectID().Hex()
	}
	if score.ScoredAt.IsZero() {
		score.ScoredAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, score)
	if err != nil {
		return &model.PersistenceError{Op: "create score", Err: err}
	}
	return nil
}

func (r *scoreRepo) GetByResponseID(ctx context.Context, responseID string) (*model.ResponseScore, error) {
	var score model.ResponseScore
	err := r.collection.FindOne(ctx, bson.M{"responseId": responseID}).Decode(&score)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &score, nil
}
