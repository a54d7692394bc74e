package memory

import (
	"context"
	"sync"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
)

type orderEventRepo struct {
	mu     sync.RWMutex
	events []models.OrderEvent
}

func NewOrderEventRepo() repositories.OrderEventRepository {
	return &orderEventRepo{}
}

func (r *orderEventRepo) Insert(_ context.Context, e *models.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

// ListByRoom returns the newest events first.
func (r *orderEventRepo) ListByRoom(_ context.Context, roomID string, limit int) ([]models.OrderEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	var out []models.OrderEvent
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].RoomID == roomID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}
