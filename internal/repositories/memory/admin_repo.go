package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

type adminRepo struct {
	mu     sync.RWMutex
	admins map[string]models.Admin
}

func NewAdminRepo() repositories.AdminRepository {
	return &adminRepo{admins: map[string]models.Admin{}}
}

func (r *adminRepo) Create(_ context.Context, a *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return utils.E(utils.CodeConflict, "memory.AdminRepo.Create", "email already exists", nil)
		}
	}
	r.admins[a.ID] = *a
	return nil
}

func (r *adminRepo) Update(_ context.Context, a *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[a.ID]; !ok {
		return utils.ErrNotFound
	}
	r.admins[a.ID] = *a
	return nil
}

func (r *adminRepo) GetByID(_ context.Context, id string) (*models.Admin, error) {
	return r.find(func(a models.Admin) bool { return a.ID == id })
}

func (r *adminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	return r.find(func(a models.Admin) bool { return strings.EqualFold(a.Email, email) })
}

func (r *adminRepo) GetByEmployeeID(_ context.Context, employeeID string) (*models.Admin, error) {
	return r.find(func(a models.Admin) bool { return a.EmployeeID != nil && *a.EmployeeID == employeeID })
}

func (r *adminRepo) GetByVerificationToken(_ context.Context, token string) (*models.Admin, error) {
	return r.find(func(a models.Admin) bool { return a.VerificationToken != nil && *a.VerificationToken == token })
}

func (r *adminRepo) List(_ context.Context) ([]models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *adminRepo) find(match func(models.Admin) bool) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if match(a) {
			out := a
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}
