// Package memory holds process-local repositories used when no database is
// configured, and by tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
)

type transcriptRepo struct {
	mu    sync.RWMutex
	rooms map[string][]models.Utterance
}

func NewTranscriptRepo() repositories.TranscriptRepository {
	return &transcriptRepo{rooms: map[string][]models.Utterance{}}
}

func (r *transcriptRepo) Upsert(_ context.Context, u *models.Utterance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[u.RoomID]
	for i := range room {
		if room[i].UtteranceID == u.UtteranceID {
			room[i].Text = u.Text
			u.SequenceIndex = room[i].SequenceIndex
			return nil
		}
	}
	u.SequenceIndex = int64(len(room))
	r.rooms[u.RoomID] = append(room, *u)
	return nil
}

func (r *transcriptRepo) ListByRoom(_ context.Context, roomID string) ([]models.Utterance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Utterance, len(r.rooms[roomID]))
	copy(out, r.rooms[roomID])
	return out, nil
}

func (r *transcriptRepo) ListAll(_ context.Context) ([]models.Utterance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Utterance
	for _, room := range r.rooms {
		out = append(out, room...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RoomID != out[j].RoomID {
			return out[i].RoomID < out[j].RoomID
		}
		return out[i].SequenceIndex < out[j].SequenceIndex
	})
	return out, nil
}
