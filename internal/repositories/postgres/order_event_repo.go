package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
)

type orderEventRepo struct {
	db *gorm.DB
}

func NewOrderEventRepo(db *gorm.DB) repositories.OrderEventRepository {
	return &orderEventRepo{db: db}
}

func (r *orderEventRepo) Insert(ctx context.Context, e *models.OrderEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *orderEventRepo) ListByRoom(ctx context.Context, roomID string, limit int) ([]models.OrderEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.OrderEvent
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
