package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/cache"
	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/notify"
	"github.com/yoockh/bookwise/internal/repositories"
)

// RoomDeps wires the services that read and write a room's transcript and
// order. Events, Notifier, Cache and Publisher are optional. Services built
// from the same RoomDeps share its Locks.
type RoomDeps struct {
	Transcripts repositories.TranscriptRepository
	Orders      repositories.OrderRepository
	Events      repositories.OrderEventRepository
	Extractor   *extraction.Extractor
	Notifier    notify.Notifier
	Cache       cache.Cache
	Publisher   cache.Publisher
	Locks       *RoomLocks
	Logger      *logrus.Logger

	RoomTTL time.Duration
	Now     func() time.Time
}

func (d RoomDeps) withDefaults() RoomDeps {
	if d.Extractor == nil {
		d.Extractor = extraction.New(extraction.DefaultConfig())
	}
	if d.Locks == nil {
		d.Locks = NewRoomLocks()
	}
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	if d.RoomTTL <= 0 {
		d.RoomTTL = 30 * time.Second
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d RoomDeps) recordEvent(ctx context.Context, log *logrus.Entry, o models.Order, kind models.OrderEventKind, changed []string) {
	if d.Events == nil {
		return
	}
	ev := &models.OrderEvent{
		ID:            uuid.NewString(),
		RoomID:        o.RoomID,
		OrderID:       o.OrderID,
		Kind:          kind,
		Status:        o.OrderStatus,
		ChangedFields: changed,
		Snapshot:      snapshot(o),
		CreatedAt:     d.Now().UTC(),
	}
	if err := d.Events.Insert(ctx, ev); err != nil {
		log.WithError(err).Warn("order event not recorded")
	}
}

func (d RoomDeps) notify(ctx context.Context, log *logrus.Entry, roomID string, o models.Order) {
	if d.Notifier == nil {
		return
	}
	if err := d.Notifier.OrderPlaced(ctx, roomID, o); err != nil {
		log.WithError(err).Warn("order notification failed")
	}
}

func (d RoomDeps) publish(ctx context.Context, log *logrus.Entry, o models.Order) {
	if d.Publisher == nil {
		return
	}
	msg := OrderUpdate{
		Type:      "order_update",
		RoomID:    o.RoomID,
		Order:     o,
		Readiness: extraction.Evaluate(o),
	}
	if err := d.Publisher.Publish(ctx, cache.OrderChannel(o.RoomID), msg); err != nil {
		log.WithError(err).Warn("order update not published")
	}
}

func (d RoomDeps) invalidate(ctx context.Context, log *logrus.Entry, roomID string) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Del(ctx, cache.RoomKey(roomID)); err != nil {
		log.WithError(err).Warn("room cache invalidation failed")
	}
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
