// Package cache holds the short-lived room snapshots and the room update
// channels the WebSocket layer listens on.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Publisher fans a JSON payload out to the subscribers of a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

func RoomKey(roomID string) string { return "room:" + roomID }

func OrderChannel(roomID string) string    { return "room:" + roomID + ":order" }
func StatusChannel(roomID string) string   { return "room:" + roomID + ":status" }
func ResponseChannel(roomID string) string { return "room:" + roomID + ":response" }
