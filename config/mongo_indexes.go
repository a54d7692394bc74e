package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes(db *mongo.Database) error {
	if db == nil {
		return errors.New("mongo database is nil; call InitMongo() first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"transcripts": {
			{
				Keys:    bson.D{{Key: "room_id", Value: 1}, {Key: "utterance_id", Value: 1}},
				Options: options.Index().SetName("uniq_room_utterance").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "room_id", Value: 1}, {Key: "sequence_index", Value: 1}},
				Options: options.Index().SetName("by_room_sequence"),
			},
		},
		"orders": {
			{
				Keys:    bson.D{{Key: "room_id", Value: 1}},
				Options: options.Index().SetName("uniq_room").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "order_date", Value: -1}},
				Options: options.Index().SetName("by_order_date"),
			},
		},
		"feedback": {
			{
				Keys:    bson.D{{Key: "feedback_id", Value: 1}},
				Options: options.Index().SetName("uniq_feedback_id").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "room_id", Value: 1}, {Key: "feedback_date", Value: -1}},
				Options: options.Index().SetName("by_room_date"),
			},
		},
		"realtime_buffer": {
			// expires_at must be a Date for the TTL monitor
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
			},
			{
				Keys:    bson.D{{Key: "room_id", Value: 1}, {Key: "chunk_index", Value: 1}},
				Options: options.Index().SetName("uniq_room_chunk").SetUnique(true),
			},
		},
	}

	for col, models := range indexes {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
