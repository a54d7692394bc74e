package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
)

type feedbackRepo struct {
	col *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) repositories.FeedbackRepository {
	return &feedbackRepo{col: db.Collection("feedback")}
}

func (r *feedbackRepo) Insert(ctx context.Context, f *models.Feedback) error {
	_, err := r.col.InsertOne(ctx, f)
	return err
}

func (r *feedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{})
}

func (r *feedbackRepo) ListByRoom(ctx context.Context, roomID string) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{"room_id": roomID})
}

func (r *feedbackRepo) find(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "feedback_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Feedback
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
