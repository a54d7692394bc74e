package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
)

type transcriptRepo struct {
	col *mongo.Collection
}

func NewTranscriptRepo(db *mongo.Database) repositories.TranscriptRepository {
	return &transcriptRepo{col: db.Collection("transcripts")}
}

// Upsert relies on the caller serializing writes per room; sequence indexes
// are derived from the room's document count.
func (r *transcriptRepo) Upsert(ctx context.Context, u *models.Utterance) error {
	var existing models.Utterance
	err := r.col.FindOne(ctx, bson.M{"room_id": u.RoomID, "utterance_id": u.UtteranceID}).Decode(&existing)
	switch {
	case err == nil:
		u.ID = existing.ID
		u.SequenceIndex = existing.SequenceIndex
		_, err = r.col.UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"message": u.Text}},
		)
		return err
	case !errors.Is(err, mongo.ErrNoDocuments):
		return err
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"room_id": u.RoomID})
	if err != nil {
		return err
	}
	u.SequenceIndex = n
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err = r.col.InsertOne(ctx, u)
	return err
}

func (r *transcriptRepo) ListByRoom(ctx context.Context, roomID string) ([]models.Utterance, error) {
	return r.find(ctx, bson.M{"room_id": roomID},
		bson.D{{Key: "sequence_index", Value: 1}, {Key: "timestamp", Value: 1}})
}

func (r *transcriptRepo) ListAll(ctx context.Context) ([]models.Utterance, error) {
	return r.find(ctx, bson.M{},
		bson.D{{Key: "room_id", Value: 1}, {Key: "sequence_index", Value: 1}})
}

func (r *transcriptRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Utterance, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Utterance
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
