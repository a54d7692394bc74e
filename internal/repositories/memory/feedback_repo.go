package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
)

type feedbackRepo struct {
	mu    sync.RWMutex
	items []models.Feedback
}

func NewFeedbackRepo() repositories.FeedbackRepository {
	return &feedbackRepo{}
}

func (r *feedbackRepo) Insert(_ context.Context, f *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *f)
	return nil
}

func (r *feedbackRepo) List(_ context.Context) ([]models.Feedback, error) {
	return r.filter(func(models.Feedback) bool { return true }), nil
}

func (r *feedbackRepo) ListByRoom(_ context.Context, roomID string) ([]models.Feedback, error) {
	return r.filter(func(f models.Feedback) bool { return f.RoomID == roomID }), nil
}

// filter returns matching feedback, newest first.
func (r *feedbackRepo) filter(keep func(models.Feedback) bool) []models.Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Feedback
	for _, f := range r.items {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FeedbackDate.After(out[j].FeedbackDate) })
	return out
}
