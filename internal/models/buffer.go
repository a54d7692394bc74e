package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BufferStatus string

const (
	BufferPending    BufferStatus = "pending"
	BufferProcessing BufferStatus = "processing"
	BufferDone       BufferStatus = "done"
	BufferFailed     BufferStatus = "failed"
)

// RealtimeBuffer tracks one audio chunk of a room through speech-to-text and
// reply generation.
type RealtimeBuffer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID     string             `bson:"room_id" json:"room_id"`
	ChunkIndex int64              `bson:"chunk_index" json:"chunk_index"`

	AudioURL    *string `bson:"audio_url,omitempty" json:"audio_url,omitempty"`
	AudioBase64 *string `bson:"audio_base64,omitempty" json:"-"`

	Transcript    string       `bson:"transcript,omitempty" json:"transcript,omitempty"`
	UtteranceID   string       `bson:"utterance_id,omitempty" json:"utterance_id,omitempty"`
	STTStatus     BufferStatus `bson:"stt_status" json:"stt_status"`
	STTConfidence float64      `bson:"stt_confidence,omitempty" json:"stt_confidence,omitempty"`

	ReplyStatus BufferStatus `bson:"reply_status" json:"reply_status"`
	Reply       string       `bson:"reply,omitempty" json:"reply,omitempty"`

	ProcessingTimeMS int64     `bson:"processing_time_ms,omitempty" json:"processing_time_ms,omitempty"`
	Timestamp        time.Time `bson:"timestamp" json:"timestamp"`
	ExpiresAt        time.Time `bson:"expires_at" json:"expires_at"`
}
