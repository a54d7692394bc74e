package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/utils"
)

type OrderService interface {
	// Submit confirms the room's order. edited, when set, replaces the stored
	// fields with the client's reviewed version.
	Submit(ctx context.Context, roomID string, edited *models.Order) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Events(ctx context.Context, roomID string, limit int) ([]models.OrderEvent, error)
}

type orderService struct {
	RoomDeps
}

func NewOrderService(d RoomDeps) OrderService {
	return &orderService{RoomDeps: d.withDefaults()}
}

func (s *orderService) Submit(ctx context.Context, roomID string, edited *models.Order) (*models.Order, error) {
	const op = "OrderService.Submit"

	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room_id is required", nil)
	}

	unlock := s.Locks.Lock(roomID)
	defer unlock()

	prev, err := s.Orders.GetByRoom(ctx, roomID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to load order", err)
	}
	if prev != nil && prev.OrderStatus == models.OrderConfirmed {
		return nil, utils.E(utils.CodeConflict, op, "order already confirmed", nil)
	}

	var order models.Order
	switch {
	case edited != nil:
		order = *edited
	case prev != nil:
		order = *prev
	default:
		return nil, utils.E(utils.CodeNotFound, op, "no order for room", utils.ErrNotFound)
	}
	order.RoomID = roomID
	order.OrderStatus = models.OrderPending
	order.CustomerID, _ = extraction.NormalizeContactID(order.CustomerID)
	if order.Quantity != nil && *order.Quantity <= 0 {
		order.Quantity = nil
	}

	if r := extraction.Evaluate(order); r.State != extraction.StateReady {
		missing := make([]string, len(r.Missing))
		for i, f := range r.Missing {
			missing[i] = string(f)
		}
		return nil, utils.E(utils.CodeInvalidArgument, op, "order incomplete, missing: "+strings.Join(missing, ", "), nil)
	}

	now := s.Now().UTC()
	cfg := s.Extractor.Config()
	if order.UnitPrice <= 0 {
		order.UnitPrice = cfg.UnitPrice
	}
	if order.TotalAmount == nil {
		order.TotalAmount = extraction.Total(order.Quantity, order.UnitPrice)
	}
	if order.OrderID == "" && prev != nil {
		order.OrderID = prev.OrderID
	}
	if order.OrderID == "" {
		order.OrderID = cfg.NewOrderID(now)
	}
	order.OrderStatus = models.OrderConfirmed
	order.OrderDate = now
	order.UpdatedAt = now

	changed := changedFields(prev, order)
	if err := s.Orders.Upsert(ctx, &order); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store order", err)
	}

	log := s.Logger.WithFields(logrus.Fields{"room_id": roomID, "order_id": order.OrderID})
	s.recordEvent(ctx, log, order, models.OrderEventSubmitted, changed)
	s.notify(ctx, log, roomID, order)
	s.publish(ctx, log, order)
	s.invalidate(ctx, log, roomID)

	log.Info("order submitted")
	return &order, nil
}

func (s *orderService) List(ctx context.Context) ([]models.Order, error) {
	const op = "OrderService.List"

	out, err := s.Orders.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list orders", err)
	}
	return out, nil
}

func (s *orderService) Events(ctx context.Context, roomID string, limit int) ([]models.OrderEvent, error) {
	const op = "OrderService.Events"

	if roomID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room_id is required", nil)
	}
	if s.RoomDeps.Events == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "order history is not configured", nil)
	}
	out, err := s.RoomDeps.Events.ListByRoom(ctx, roomID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list order events", err)
	}
	return out, nil
}
