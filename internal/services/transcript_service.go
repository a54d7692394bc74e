package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/cache"
	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/utils"
)

// RoomData is the state of one conversation as served to clients.
type RoomData struct {
	RoomID      string               `json:"room_id"`
	Transcripts []models.Utterance   `json:"transcripts"`
	Order       models.Order         `json:"order"`
	Readiness   extraction.Readiness `json:"readiness"`
	UpdatedAt   float64              `json:"updated_at"`
}

// OrderUpdate is published on the room order channel after every change.
type OrderUpdate struct {
	Type      string               `json:"type"`
	RoomID    string               `json:"room_id"`
	Order     models.Order         `json:"order"`
	Readiness extraction.Readiness `json:"readiness"`
}

type RoomTranscripts struct {
	RoomID      string             `json:"room_id"`
	Transcripts []models.Utterance `json:"transcripts"`
}

type TranscriptService interface {
	// Process stores one utterance and re-derives the room's order from the
	// whole transcript.
	Process(ctx context.Context, roomID string, u models.Utterance) (*RoomData, error)
	Room(ctx context.Context, roomID string) (*RoomData, error)
	ListTranscripts(ctx context.Context) ([]RoomTranscripts, error)
}

type transcriptService struct {
	RoomDeps
}

func NewTranscriptService(d RoomDeps) TranscriptService {
	return &transcriptService{RoomDeps: d.withDefaults()}
}

func (s *transcriptService) Process(ctx context.Context, roomID string, u models.Utterance) (*RoomData, error) {
	const op = "TranscriptService.Process"

	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room_id is required", nil)
	}
	if u.Role != models.RoleCustomer && u.Role != models.RoleAssistant {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role must be customer or assistant", nil)
	}
	if strings.TrimSpace(u.Text) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	unlock := s.Locks.Lock(roomID)
	defer unlock()

	now := s.Now().UTC()
	u.RoomID = roomID
	if u.UtteranceID == "" {
		u.UtteranceID = uuid.NewString()
	}
	if u.Timestamp == 0 {
		u.Timestamp = unixSeconds(now)
	}
	u.CreatedAt = now

	if err := s.Transcripts.Upsert(ctx, &u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store transcript", err)
	}

	utts, err := s.Transcripts.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load transcript", err)
	}

	prev, err := s.Orders.GetByRoom(ctx, roomID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to load order", err)
	}

	log := s.Logger.WithFields(logrus.Fields{
		"room_id":      roomID,
		"utterance_id": u.UtteranceID,
		"turns":        len(utts),
	})

	var order models.Order
	if prev != nil && prev.OrderStatus == models.OrderConfirmed {
		// submitted orders are final; the conversation may continue
		order = *prev
	} else {
		order = s.derive(roomID, utts, prev)

		changed := changedFields(prev, order)
		if err := s.Orders.Upsert(ctx, &order); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to store order", err)
		}
		if len(changed) > 0 {
			s.recordEvent(ctx, log, order, models.OrderEventExtracted, changed)
			log.WithField("changed", changed).Info("order updated")
		}

		if extraction.Notifiable(order) && (prev == nil || !extraction.Notifiable(*prev)) {
			s.notify(ctx, log, roomID, order)
		}
	}

	data := &RoomData{
		RoomID:      roomID,
		Transcripts: utts,
		Order:       order,
		Readiness:   extraction.Evaluate(order),
		UpdatedAt:   unixSeconds(now),
	}

	s.publish(ctx, log, order)
	s.invalidate(ctx, log, roomID)
	return data, nil
}

// derive runs the extractor and carries over what must stay stable across
// runs: the order id once issued, and the original order date.
func (s *transcriptService) derive(roomID string, utts []models.Utterance, prev *models.Order) models.Order {
	order := s.Extractor.Extract(utts)
	order.RoomID = roomID

	if prev != nil {
		if order.OrderID != "" && prev.OrderID != "" {
			order.OrderID = prev.OrderID
		}
		if !prev.OrderDate.IsZero() {
			order.OrderDate = prev.OrderDate
		}
	}
	return order
}

func (s *transcriptService) Room(ctx context.Context, roomID string) (*RoomData, error) {
	const op = "TranscriptService.Room"

	if roomID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room_id is required", nil)
	}

	key := cache.RoomKey(roomID)
	if s.Cache != nil {
		var cached RoomData
		if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	utts, err := s.Transcripts.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load transcript", err)
	}
	if len(utts) == 0 {
		return nil, utils.E(utils.CodeNotFound, op, "room not found", utils.ErrNotFound)
	}

	order := models.Order{
		RoomID:         roomID,
		UnitPrice:      s.Extractor.Config().UnitPrice,
		DeliveryOption: s.Extractor.Config().DefaultDelivery,
		OrderStatus:    models.OrderPending,
	}
	stored, err := s.Orders.GetByRoom(ctx, roomID)
	switch {
	case err == nil:
		order = *stored
	case !errors.Is(err, utils.ErrNotFound):
		return nil, utils.E(utils.CodeInternal, op, "failed to load order", err)
	}

	data := &RoomData{
		RoomID:      roomID,
		Transcripts: utts,
		Order:       order,
		Readiness:   extraction.Evaluate(order),
		UpdatedAt:   unixSeconds(s.Now()),
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, key, data, s.RoomTTL); err != nil {
			s.Logger.WithError(err).WithField("room_id", roomID).Warn("room cache write failed")
		}
	}
	return data, nil
}

func (s *transcriptService) ListTranscripts(ctx context.Context) ([]RoomTranscripts, error) {
	const op = "TranscriptService.ListTranscripts"

	all, err := s.Transcripts.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list transcripts", err)
	}

	return groupByRoom(all), nil
}

// groupByRoom keeps the first-seen order of rooms and of utterances.
func groupByRoom(all []models.Utterance) []RoomTranscripts {
	out := []RoomTranscripts{}
	idx := map[string]int{}
	for _, u := range all {
		i, ok := idx[u.RoomID]
		if !ok {
			i = len(out)
			idx[u.RoomID] = i
			out = append(out, RoomTranscripts{RoomID: u.RoomID})
		}
		out[i].Transcripts = append(out[i].Transcripts, u)
	}
	return out
}
