package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/app/repositories"
	"github.com/yigit/capstone/internal/pkg/apperrors"
	"github.com/yigit/capstone/internal/pkg/auth"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// AdminInput carries admin account fields. On update, empty fields are left unchanged.
type AdminInput struct {
	FullName string
	Email    string
	Password string
}

// AdminService handles administrator accounts
type AdminService interface {
	CreateAdmin(ctx context.Context, input AdminInput) (*models.Admin, error)
	ListAdmins(ctx context.Context) ([]*models.Admin, error)
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
	UpdateAdmin(ctx context.Context, id string, input AdminInput) (*models.Admin, error)
	DeleteAdmin(ctx context.Context, id string) error
	// EnsureAdmin creates the bootstrap admin unless one with the same email
	// exists. It reports whether an account was created.
	EnsureAdmin(ctx context.Context, input AdminInput) (bool, error)
}

type adminServiceImpl struct {
	adminRepo repositories.IAdminRepository
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo repositories.IAdminRepository) AdminService {
	return &adminServiceImpl{adminRepo: adminRepo}
}

func adminNotFound() error {
	return apperrors.NewNotFoundError(apperrors.ErrAdminNotFound, "Admin not found")
}

func (s *adminServiceImpl) CreateAdmin(ctx context.Context, input AdminInput) (*models.Admin, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(input.Email)
	if input.FullName == "" {
		return nil, apperrors.NewValidationError("Full name is required")
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, apperrors.NewValidationError("Password is required")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	admin := &models.Admin{FullName: input.FullName, Email: input.Email, Password: hash}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, mapAccountWriteError(err, "admin")
	}
	return admin, nil
}

func (s *adminServiceImpl) ListAdmins(ctx context.Context) ([]*models.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing admins: %w", err)
	}
	return admins, nil
}

func (s *adminServiceImpl) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, adminNotFound()
		}
		return nil, fmt.Errorf("error getting admin: %w", err)
	}
	return admin, nil
}

func (s *adminServiceImpl) UpdateAdmin(ctx context.Context, id string, input AdminInput) (*models.Admin, error) {
	fields := map[string]interface{}{}
	if name := strings.TrimSpace(input.FullName); name != "" {
		fields["full_name"] = name
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		fields["password"] = hash
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("No fields to update")
	}

	admin, err := s.adminRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, adminNotFound()
		}
		return nil, mapAccountWriteError(err, "admin")
	}
	return admin, nil
}

func (s *adminServiceImpl) DeleteAdmin(ctx context.Context, id string) error {
	if err := s.adminRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return adminNotFound()
		}
		return fmt.Errorf("error deleting admin: %w", err)
	}
	return nil
}

func (s *adminServiceImpl) EnsureAdmin(ctx context.Context, input AdminInput) (bool, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		logger.Warn().Msg("Bootstrap admin credentials not configured, skipping")
		return false, nil
	}

	exists, err := s.adminRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("error checking bootstrap admin: %w", err)
	}
	if exists {
		return false, nil
	}

	if input.FullName == "" {
		input.FullName = "Administrator"
	}
	if _, err := s.CreateAdmin(ctx, input); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	logger.Info().Str("email", email).Msg("Bootstrap admin created")
	return true, nil
}
