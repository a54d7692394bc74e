package services

import (
	"context"
	"time"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

type BufferService interface {
	InsertAudioChunk(ctx context.Context, roomID string, chunkIndex int64, audioURL, audioBase64 *string) (*models.RealtimeBuffer, error)
	MarkSTT(ctx context.Context, roomID string, chunkIndex int64, transcript, utteranceID string, confidence float64, status models.BufferStatus) error
	MarkReply(ctx context.Context, roomID string, chunkIndex int64, reply string, status models.BufferStatus, processingMS int64) error
	ListByRoom(ctx context.Context, roomID string, limit int64) ([]models.RealtimeBuffer, error)
}

type bufferService struct {
	buffers repositories.BufferRepository
	ttl     time.Duration
	now     func() time.Time
}

func NewBufferService(buffers repositories.BufferRepository, ttl time.Duration) BufferService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &bufferService{buffers: buffers, ttl: ttl, now: time.Now}
}

func (s *bufferService) InsertAudioChunk(ctx context.Context, roomID string, chunkIndex int64, audioURL, audioBase64 *string) (*models.RealtimeBuffer, error) {
	const op = "BufferService.InsertAudioChunk"

	if roomID == "" || chunkIndex <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room_id is required and chunk_index must be > 0", nil)
	}
	if audioURL == nil && audioBase64 == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "audio_base64 or audio_url required", nil)
	}

	now := s.now().UTC()
	doc := &models.RealtimeBuffer{
		RoomID:      roomID,
		ChunkIndex:  chunkIndex,
		AudioURL:    audioURL,
		AudioBase64: audioBase64,

		STTStatus:   models.BufferPending,
		ReplyStatus: models.BufferPending,

		Timestamp: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.buffers.InsertChunk(ctx, doc); err != nil {
		if utils.IsCode(err, utils.CodeConflict) {
			return nil, utils.E(utils.CodeConflict, op, "chunk already buffered", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to insert audio chunk", err)
	}
	return doc, nil
}

func (s *bufferService) MarkSTT(ctx context.Context, roomID string, chunkIndex int64, transcript, utteranceID string, confidence float64, status models.BufferStatus) error {
	const op = "BufferService.MarkSTT"

	if roomID == "" || chunkIndex <= 0 || status == "" {
		return utils.E(utils.CodeInvalidArgument, op, "room_id, chunk_index (>0), and status are required", nil)
	}
	if err := s.buffers.UpdateSTT(ctx, roomID, chunkIndex, transcript, utteranceID, confidence, status); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update stt fields", err)
	}
	return nil
}

func (s *bufferService) MarkReply(ctx context.Context, roomID string, chunkIndex int64, reply string, status models.BufferStatus, processingMS int64) error {
	const op = "BufferService.MarkReply"

	if roomID == "" || chunkIndex <= 0 || status == "" {
		return utils.E(utils.CodeInvalidArgument, op, "room_id, chunk_index (>0), and status are required", nil)
	}
	if err := s.buffers.UpdateReply(ctx, roomID, chunkIndex, reply, status, processingMS); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update reply fields", err)
	}
	return nil
}

func (s *bufferService) ListByRoom(ctx context.Context, roomID string, limit int64) ([]models.RealtimeBuffer, error) {
	const op = "BufferService.ListByRoom"

	if roomID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room_id is required", nil)
	}
	out, err := s.buffers.ListByRoom(ctx, roomID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list realtime buffer", err)
	}
	return out, nil
}
