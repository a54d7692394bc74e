package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

type orderRepo struct {
	col *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) repositories.OrderRepository {
	return &orderRepo{col: db.Collection("orders")}
}

func (r *orderRepo) Upsert(ctx context.Context, o *models.Order) error {
	// Replacement documents may not change _id; omitempty drops the zero value.
	doc := *o
	doc.ID = primitive.NilObjectID

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"room_id": o.RoomID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *orderRepo) GetByRoom(ctx context.Context, roomID string) (*models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"room_id": roomID}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
