package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

type orderRepo struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewOrderRepo() repositories.OrderRepository {
	return &orderRepo{orders: map[string]models.Order{}}
}

func (r *orderRepo) Upsert(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.RoomID] = cloneOrder(*o)
	return nil
}

func (r *orderRepo) GetByRoom(_ context.Context, roomID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[roomID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := cloneOrder(o)
	return &out, nil
}

func (r *orderRepo) List(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderDate.Equal(out[j].OrderDate) {
			return out[i].OrderDate.After(out[j].OrderDate)
		}
		return out[i].RoomID < out[j].RoomID
	})
	return out, nil
}

// cloneOrder detaches the pointer fields so callers cannot mutate stored state.
func cloneOrder(o models.Order) models.Order {
	if o.Quantity != nil {
		q := *o.Quantity
		o.Quantity = &q
	}
	if o.TotalAmount != nil {
		t := *o.TotalAmount
		o.TotalAmount = &t
	}
	return o
}
