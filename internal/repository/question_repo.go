package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

// QuestionRepo is the narrow question interface the evaluation core consumes.
// Question CRUD beyond this lives in the admin surface.
type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	IncrementUsage(ctx context.Context, id string) error
	UpdateAverageScore(ctx context.Context, id string, newScore int) error
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Question not found
		}
		return nil, err
	}

	return &question, nil
}

func (r *questionRepo) IncrementUsage(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"usageCount": 1}},
	)
	return err
}

// UpdateAverageScore applies new = score when no average exists yet, else
// round((old+new)/2). The pipeline update runs atomically on the document,
// so concurrent completions for the same question serialize here. The
// formula is order-dependent smoothing, not a true mean; that imprecision
// is accepted.
func (r *questionRepo) UpdateAverageScore(ctx context.Context, id string, newScore int) error {
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{{Key: "averageScore", Value: bson.D{
			{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$averageScore", nil}}},
					nil,
				}}},
				newScore,
				bson.D{{Key: "$round", Value: bson.A{
					bson.D{{Key: "$divide", Value: bson.A{
						bson.D{{Key: "$add", Value: bson.A{"$averageScore", newScore}}},
						2,
					}}},
					0,
				}}},
			}},
		}}}}},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
