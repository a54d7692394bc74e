package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleAssistant Role = "assistant"
)

// ParseRole accepts the transcript spellings used by the voice frontend.
// "user" is the frontend's name for the customer side of the call.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "user":
		return RoleCustomer, true
	case "assistant", "agent":
		return RoleAssistant, true
	default:
		return "", false
	}
}

// Utterance is one turn of dialogue in a room.
type Utterance struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UtteranceID   string             `bson:"utterance_id" json:"id"`
	RoomID        string             `bson:"room_id" json:"room_id,omitempty"`
	Role          Role               `bson:"role" json:"role"`
	Text          string             `bson:"message" json:"message"`
	SequenceIndex int64              `bson:"sequence_index" json:"sequence_index"`
	Timestamp     float64            `bson:"timestamp" json:"timestamp"` // unix seconds from the client
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
