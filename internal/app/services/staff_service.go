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
	"github.com/yigit/capstone/internal/pkg/filestorage"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// CreateStaffInput carries the fields of a new guide account
type CreateStaffInput struct {
	FullName        string
	Email           string
	Password        string
	Specializations []string
	ProfileImg      *filestorage.Blob
}

// UpdateStaffInput holds the optional fields of a staff update
type UpdateStaffInput struct {
	FullName        *string
	Email           *string
	Password        *string
	Specializations []string
	ProfileImg      *filestorage.Blob
}

// StaffService handles guide account operations
type StaffService interface {
	CreateStaff(ctx context.Context, input CreateStaffInput) (*models.Staff, error)
	ListStaff(ctx context.Context) ([]*models.Staff, error)
	// GetStaff returns a guide with their projects, students and reviews loaded
	GetStaff(ctx context.Context, id string) (*models.Staff, error)
	UpdateStaff(ctx context.Context, id string, input UpdateStaffInput) (*models.Staff, error)
	// DeleteStaff removes a guide and every project they own
	DeleteStaff(ctx context.Context, id string) error
}

type staffServiceImpl struct {
	staffRepo   repositories.IStaffRepository
	projectRepo repositories.IProjectRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repositories.IStaffRepository, projectRepo repositories.IProjectRepository) StaffService {
	return &staffServiceImpl{
		staffRepo:   staffRepo,
		projectRepo: projectRepo,
	}
}

func staffNotFound() error {
	return apperrors.NewNotFoundError(apperrors.ErrStaffNotFound, msgStaffNotFound)
}

func cleanSpecializations(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *staffServiceImpl) CreateStaff(ctx context.Context, input CreateStaffInput) (*models.Staff, error) {
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

	staff := &models.Staff{
		FullName:        input.FullName,
		Email:           input.Email,
		Password:        hash,
		Specializations: cleanSpecializations(input.Specializations),
	}
	if input.ProfileImg != nil {
		staff.ProfileImg = input.ProfileImg.Data
		staff.ProfileImgType = input.ProfileImg.MimeType
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, mapAccountWriteError(err, "staff")
	}
	return staff, nil
}

func (s *staffServiceImpl) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	staffs, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing staff: %w", err)
	}
	if len(staffs) == 0 {
		return nil, apperrors.NewNotFoundError(apperrors.ErrStaffNotFound, "No staff found")
	}
	return staffs, nil
}

func (s *staffServiceImpl) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, staffNotFound()
		}
		return nil, fmt.Errorf("error getting staff: %w", err)
	}

	projects, err := s.projectRepo.List(ctx, repositories.ProjectFilter{StaffID: id})
	if err != nil {
		return nil, fmt.Errorf("error listing staff projects: %w", err)
	}
	staff.Projects = projects
	return staff, nil
}

func (s *staffServiceImpl) UpdateStaff(ctx context.Context, id string, input UpdateStaffInput) (*models.Staff, error) {
	fields := map[string]interface{}{}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, apperrors.NewValidationError("Full name cannot be empty")
		}
		fields["full_name"] = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, apperrors.NewValidationError("Password cannot be empty")
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		fields["password"] = hash
	}
	if input.Specializations != nil {
		fields["specializations"] = cleanSpecializations(input.Specializations)
	}
	if input.ProfileImg != nil {
		fields["profile_img"] = input.ProfileImg.Data
		fields["profile_img_type"] = input.ProfileImg.MimeType
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("No fields to update")
	}

	staff, err := s.staffRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, staffNotFound()
		}
		return nil, mapAccountWriteError(err, "staff")
	}
	return staff, nil
}

func (s *staffServiceImpl) DeleteStaff(ctx context.Context, id string) error {
	if err := s.staffRepo.DeleteWithProjects(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return staffNotFound()
		}
		return fmt.Errorf("error deleting staff: %w", err)
	}
	logger.Info().Str("staffID", id).Msg("Staff deleted")
	return nil
}
