package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/auth"
	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/notify"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

type RegisterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

type Registration struct {
	Admin   models.Admin `json:"admin"`
	Message string       `json:"message"`
	// VerificationToken is only handed back when no e-mail could carry it.
	VerificationToken string `json:"verification_token,omitempty"`
}

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	Admin       models.Admin `json:"user"`
}

type AdminService interface {
	Register(ctx context.Context, in RegisterInput) (*Registration, error)
	VerifyEmail(ctx context.Context, token string) (*models.Admin, error)
	Login(ctx context.Context, employeeID, password string) (*LoginResult, error)
	Get(ctx context.Context, adminID string) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
}

type AdminDeps struct {
	Admins   repositories.AdminRepository
	Notifier notify.Notifier
	Issuer   *auth.Issuer
	Logger   *logrus.Logger

	// BaseURL prefixes the verification link sent to the approver.
	BaseURL   string
	VerifyTTL time.Duration
	Now       func() time.Time
}

type adminService struct {
	AdminDeps
}

func NewAdminService(d AdminDeps) AdminService {
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	if d.VerifyTTL <= 0 {
		d.VerifyTTL = 24 * time.Hour
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	d.BaseURL = strings.TrimRight(d.BaseURL, "/")
	return &adminService{AdminDeps: d}
}

func (s *adminService) Register(ctx context.Context, in RegisterInput) (*Registration, error) {
	const op = "AdminService.Register"

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name, email, and password are required", nil)
	}
	if !strings.Contains(in.Email, "@") {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid email", nil)
	}

	if _, err := s.Admins.GetByEmail(ctx, in.Email); err == nil {
		return nil, utils.E(utils.CodeConflict, op, "email already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, utils.ErrWeakPassword) {
			return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	now := s.Now().UTC()
	token := utils.NewToken()
	expires := now.Add(s.VerifyTTL)
	a := &models.Admin{
		ID:                  uuid.NewString(),
		Name:                in.Name,
		Email:               in.Email,
		PasswordHash:        hash,
		Department:          strings.TrimSpace(in.Department),
		Role:                auth.RoleAdmin,
		Status:              models.AdminPendingVerification,
		VerificationToken:   &token,
		VerificationExpires: &expires,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.Admins.Create(ctx, a); err != nil {
		if utils.IsCode(err, utils.CodeConflict) {
			return nil, utils.E(utils.CodeConflict, op, "email already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create admin", err)
	}

	log := s.Logger.WithFields(logrus.Fields{"admin_id": a.ID, "email": a.Email})
	out := &Registration{Admin: *a}

	verifyURL := s.BaseURL + "/api/auth/admin/verify-email?token=" + url.QueryEscape(token)
	if s.Notifier != nil && s.Notifier.Enabled() {
		if err := s.Notifier.AdminVerification(ctx, *a, verifyURL); err != nil {
			log.WithError(err).Warn("verification email failed")
		}
		out.Message = "Admin account created. Verification email sent to the approver. Employee ID will be assigned after approval."
	} else {
		log.WithField("verify_url", verifyURL).Warn("email not configured; manual verification required")
		out.Message = "Admin account created. Email is not configured, manual verification required."
		out.VerificationToken = token
	}
	log.Info("admin registered")
	return out, nil
}

func (s *adminService) VerifyEmail(ctx context.Context, token string) (*models.Admin, error) {
	const op = "AdminService.VerifyEmail"

	if token == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "verification token is required", nil)
	}

	a, err := s.Admins.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "invalid or expired verification token", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load admin", err)
	}

	now := s.Now().UTC()
	if a.VerificationExpires != nil && now.After(*a.VerificationExpires) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "verification token has expired", nil)
	}

	emp := utils.NewEmployeeID(now)
	a.EmployeeID = &emp
	a.Status = models.AdminActive
	a.EmailVerified = true
	a.VerificationToken = nil
	a.VerificationExpires = nil
	a.UpdatedAt = now

	if err := s.Admins.Update(ctx, a); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to activate admin", err)
	}

	log := s.Logger.WithFields(logrus.Fields{"admin_id": a.ID, "employee_id": emp})
	if s.Notifier != nil {
		if err := s.Notifier.AdminApproved(ctx, *a); err != nil {
			log.WithError(err).Warn("approval email failed")
		}
	}
	log.Info("admin verified")
	return a, nil
}

func (s *adminService) Login(ctx context.Context, employeeID, password string) (*LoginResult, error) {
	const op = "AdminService.Login"

	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "employee_id and password are required", nil)
	}
	if s.Issuer == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "token issuer is not configured", nil)
	}

	a, err := s.Admins.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid employee id or password", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load admin", err)
	}
	if err := utils.CheckPassword(a.PasswordHash, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid employee id or password", nil)
	}
	if a.Status != models.AdminActive {
		return nil, utils.E(utils.CodeForbidden, op, "account is not active", nil)
	}

	token, err := s.Issuer.AdminToken(a.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}

	now := s.Now().UTC()
	a.LastLogin = &now
	a.UpdatedAt = now
	if err := s.Admins.Update(ctx, a); err != nil {
		s.Logger.WithError(err).WithField("admin_id", a.ID).Warn("last login not recorded")
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.Issuer.TTL.Seconds()),
		Admin:       *a,
	}, nil
}

func (s *adminService) Get(ctx context.Context, adminID string) (*models.Admin, error) {
	const op = "AdminService.Get"

	if adminID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "admin_id is required", nil)
	}
	a, err := s.Admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "admin not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get admin", err)
	}
	return a, nil
}

func (s *adminService) List(ctx context.Context) ([]models.Admin, error) {
	const op = "AdminService.List"

	out, err := s.Admins.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list admins", err)
	}
	return out, nil
}
