package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) repositories.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, a *models.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *adminRepo) Update(ctx context.Context, a *models.Admin) error {
	res := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", a.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *adminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.take(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *adminRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Admin, error) {
	return r.take(ctx, "employee_id = ?", employeeID)
}

func (r *adminRepo) GetByVerificationToken(ctx context.Context, token string) (*models.Admin, error) {
	return r.take(ctx, "verification_token = ?", token)
}

func (r *adminRepo) List(ctx context.Context) ([]models.Admin, error) {
	var rows []models.Admin
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *adminRepo) take(ctx context.Context, query string, arg any) (*models.Admin, error) {
	var a models.Admin
	err := r.db.WithContext(ctx).Where(query, arg).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
