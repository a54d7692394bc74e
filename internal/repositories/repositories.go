// Package repositories declares the storage contracts shared by the Mongo,
// Postgres and in-memory implementations.
package repositories

import (
	"context"

	"github.com/yoockh/bookwise/internal/models"
)

type TranscriptRepository interface {
	// Upsert appends u to its room, or replaces the text of the utterance with
	// the same UtteranceID while keeping its sequence index. SequenceIndex is
	// assigned on insert.
	Upsert(ctx context.Context, u *models.Utterance) error
	ListByRoom(ctx context.Context, roomID string) ([]models.Utterance, error)
	ListAll(ctx context.Context) ([]models.Utterance, error)
}

type OrderRepository interface {
	// Upsert stores o keyed by its RoomID.
	Upsert(ctx context.Context, o *models.Order) error
	GetByRoom(ctx context.Context, roomID string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
}

type FeedbackRepository interface {
	Insert(ctx context.Context, f *models.Feedback) error
	List(ctx context.Context) ([]models.Feedback, error)
	ListByRoom(ctx context.Context, roomID string) ([]models.Feedback, error)
}

type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	Update(ctx context.Context, a *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Admin, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
}

type OrderEventRepository interface {
	Insert(ctx context.Context, e *models.OrderEvent) error
	ListByRoom(ctx context.Context, roomID string, limit int) ([]models.OrderEvent, error)
}

// BufferRepository tracks audio chunks through speech-to-text and reply
// generation.
type BufferRepository interface {
	InsertChunk(ctx context.Context, b *models.RealtimeBuffer) error
	UpdateSTT(ctx context.Context, roomID string, chunkIndex int64, transcript, utteranceID string, confidence float64, status models.BufferStatus) error
	UpdateReply(ctx context.Context, roomID string, chunkIndex int64, reply string, status models.BufferStatus, processingMS int64) error
	ListByRoom(ctx context.Context, roomID string, limit int64) ([]models.RealtimeBuffer, error)
}
