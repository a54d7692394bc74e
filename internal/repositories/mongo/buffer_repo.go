package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

// bufferRepo keeps in-flight audio chunks in realtime_buffer. Documents
// expire through the TTL index on expires_at.
type bufferRepo struct {
	col *mongo.Collection
}

func NewBufferRepo(db *mongo.Database) repositories.BufferRepository {
	return &bufferRepo{col: db.Collection("realtime_buffer")}
}

func (r *bufferRepo) InsertChunk(ctx context.Context, b *models.RealtimeBuffer) error {
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.E(utils.CodeConflict, "bufferRepo.InsertChunk", "chunk already buffered", err)
		}
		return err
	}
	return nil
}

func (r *bufferRepo) UpdateSTT(ctx context.Context, roomID string, chunkIndex int64, transcript, utteranceID string, confidence float64, status models.BufferStatus) error {
	return r.setChunk(ctx, roomID, chunkIndex, bson.M{
		"transcript":     transcript,
		"utterance_id":   utteranceID,
		"stt_confidence": confidence,
		"stt_status":     status,
	})
}

func (r *bufferRepo) UpdateReply(ctx context.Context, roomID string, chunkIndex int64, reply string, status models.BufferStatus, processingMS int64) error {
	return r.setChunk(ctx, roomID, chunkIndex, bson.M{
		"reply":              reply,
		"reply_status":       status,
		"processing_time_ms": processingMS,
	})
}

// setChunk is a no-op for chunks that already expired.
func (r *bufferRepo) setChunk(ctx context.Context, roomID string, chunkIndex int64, fields bson.M) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"room_id": roomID, "chunk_index": chunkIndex}, bson.M{"$set": fields})
	return err
}

func (r *bufferRepo) ListByRoom(ctx context.Context, roomID string, limit int64) ([]models.RealtimeBuffer, error) {
	if limit <= 0 {
		limit = 200
	}
	opts := options.Find().SetSort(bson.D{{Key: "chunk_index", Value: 1}}).SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.RealtimeBuffer, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
