package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

type chunkKey struct {
	room  string
	index int64
}

type bufferRepo struct {
	mu     sync.RWMutex
	chunks map[chunkKey]models.RealtimeBuffer
}

func NewBufferRepo() repositories.BufferRepository {
	return &bufferRepo{chunks: map[chunkKey]models.RealtimeBuffer{}}
}

func (r *bufferRepo) InsertChunk(_ context.Context, b *models.RealtimeBuffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := chunkKey{b.RoomID, b.ChunkIndex}
	if _, ok := r.chunks[k]; ok {
		return utils.E(utils.CodeConflict, "memory.BufferRepo.InsertChunk", "chunk already buffered", nil)
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now().UTC()
	}
	r.chunks[k] = *b
	return nil
}

func (r *bufferRepo) UpdateSTT(_ context.Context, roomID string, chunkIndex int64, transcript, utteranceID string, confidence float64, status models.BufferStatus) error {
	return r.update(roomID, chunkIndex, func(b *models.RealtimeBuffer) {
		b.Transcript = transcript
		b.UtteranceID = utteranceID
		b.STTConfidence = confidence
		b.STTStatus = status
	})
}

func (r *bufferRepo) UpdateReply(_ context.Context, roomID string, chunkIndex int64, reply string, status models.BufferStatus, processingMS int64) error {
	return r.update(roomID, chunkIndex, func(b *models.RealtimeBuffer) {
		b.Reply = reply
		b.ReplyStatus = status
		b.ProcessingTimeMS = processingMS
	})
}

// update mirrors UpdateOne: a missing chunk is not an error.
func (r *bufferRepo) update(roomID string, chunkIndex int64, fn func(*models.RealtimeBuffer)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := chunkKey{roomID, chunkIndex}
	b, ok := r.chunks[k]
	if !ok {
		return nil
	}
	fn(&b)
	r.chunks[k] = b
	return nil
}

func (r *bufferRepo) ListByRoom(_ context.Context, roomID string, limit int64) ([]models.RealtimeBuffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 200
	}
	var out []models.RealtimeBuffer
	for k, b := range r.chunks {
		if k.room == roomID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkIndex < out[j].ChunkIndex })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
