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

// UpdateStudentInput holds the optional fields of a profile update. Nil
// fields are left unchanged.
type UpdateStudentInput struct {
	FullName *string
	RegNo    *string
	Batch    *string
	Email    *string
	PhoneNo  *string
	Password *string
}

// StudentService handles student account operations
type StudentService interface {
	ListStudents(ctx context.Context) ([]*models.Student, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	UpdateStudent(ctx context.Context, id string, input UpdateStudentInput) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error
	// ResetPassword sets a new password for the student identified by register
	// number, provided the email matches the account.
	ResetPassword(ctx context.Context, regNo, email, password string) error
}

type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo repositories.IStudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

func studentNotFound() error {
	return apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, "Student not found")
}

func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

func (s *studentServiceImpl) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, studentNotFound()
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// studentUpdateColumns builds the column map of a profile update
func studentUpdateColumns(input UpdateStudentInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	setText := func(column string, v *string, required bool, label string) error {
		if v == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*v)
		if required && trimmed == "" {
			return apperrors.NewValidationError(label + " cannot be empty")
		}
		fields[column] = trimmed
		return nil
	}

	if err := setText("full_name", input.FullName, true, "Full name"); err != nil {
		return nil, err
	}
	if err := setText("reg_no", input.RegNo, true, "Register number"); err != nil {
		return nil, err
	}
	if err := setText("batch", input.Batch, false, "Batch"); err != nil {
		return nil, err
	}
	if err := setText("phone_no", input.PhoneNo, false, "Phone number"); err != nil {
		return nil, err
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

	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("No fields to update")
	}
	return fields, nil
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, input UpdateStudentInput) (*models.Student, error) {
	fields, err := studentUpdateColumns(input)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, studentNotFound()
		}
		return nil, mapAccountWriteError(err, "student")
	}
	return student, nil
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return studentNotFound()
		}
		return fmt.Errorf("error deleting student: %w", err)
	}
	logger.Info().Str("studentID", id).Msg("Student deleted")
	return nil
}

func (s *studentServiceImpl) ResetPassword(ctx context.Context, regNo, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.NewValidationError("Email id required")
	}
	if password == "" {
		return apperrors.NewValidationError("Password is required")
	}

	if _, err := s.studentRepo.GetByRegNoAndEmail(ctx, regNo, email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, "Invalid register number or email id")
		}
		return fmt.Errorf("error getting student: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.studentRepo.UpdatePasswordByRegNo(ctx, regNo, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, "Invalid register number or email id")
		}
		return fmt.Errorf("error updating password: %w", err)
	}

	logger.Info().Str("regNo", regNo).Msg("Student password updated")
	return nil
}
