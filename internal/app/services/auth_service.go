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
	"github.com/yigit/capstone/internal/pkg/validation"
)

// SignupInput carries the fields of a new student account
type SignupInput struct {
	FullName string
	RegNo    string
	Batch    string
	Email    string
	PhoneNo  string
	Password string
}

// AuthService handles login for all roles and student signup
type AuthService interface {
	// Login verifies credentials for the given role and returns a session token.
	// Students log in with their register number, staff and admins with email.
	Login(ctx context.Context, role models.RoleType, identifier, password string) (string, error)
	Signup(ctx context.Context, input SignupInput) (*models.Student, error)
}

type authServiceImpl struct {
	studentRepo repositories.IStudentRepository
	staffRepo   repositories.IStaffRepository
	adminRepo   repositories.IAdminRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	studentRepo repositories.IStudentRepository,
	staffRepo repositories.IStaffRepository,
	adminRepo repositories.IAdminRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		studentRepo: studentRepo,
		staffRepo:   staffRepo,
		adminRepo:   adminRepo,
		jwtService:  jwtService,
	}
}

func invalidCredentials() error {
	return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials")
}

// validateEmail validates an email address
func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("Email is required")
	}
	if !validation.IsEmail(email) {
		return apperrors.NewValidationError("Invalid email format")
	}
	return nil
}

// resolveSubject loads the account addressed by identifier and returns its
// token subject and stored password hash.
func (s *authServiceImpl) resolveSubject(ctx context.Context, role models.RoleType, identifier string) (auth.Subject, string, error) {
	switch role {
	case models.RoleStudent:
		st, err := s.studentRepo.GetByRegNo(ctx, identifier)
		if err != nil {
			return auth.Subject{}, "", err
		}
		return auth.Subject{ID: st.ID, Name: st.FullName, Email: st.Email, Role: role, RegNo: st.RegNo}, st.Password, nil
	case models.RoleStaff:
		st, err := s.staffRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return auth.Subject{}, "", err
		}
		return auth.Subject{ID: st.ID, Name: st.FullName, Email: st.Email, Role: role}, st.Password, nil
	case models.RoleAdmin:
		a, err := s.adminRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return auth.Subject{}, "", err
		}
		return auth.Subject{ID: a.ID, Name: a.FullName, Email: a.Email, Role: role}, a.Password, nil
	}
	return auth.Subject{}, "", apperrors.NewValidationError("Invalid role")
}

func (s *authServiceImpl) Login(ctx context.Context, role models.RoleType, identifier, password string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		if role == models.RoleStudent {
			return "", apperrors.NewValidationError("Register number and password are required")
		}
		return "", apperrors.NewValidationError("Email and password are required")
	}

	subject, hash, err := s.resolveSubject(ctx, role, identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Warn().Str("role", string(role)).Msg("Login attempt for unknown account")
			return "", invalidCredentials()
		}
		if errors.Is(err, apperrors.ErrValidationFailed) {
			return "", err
		}
		return "", fmt.Errorf("error loading account: %w", err)
	}

	if !auth.CheckPassword(hash, password) {
		logger.Warn().Str("role", string(role)).Str("accountID", subject.ID).Msg("Login attempt with wrong password")
		return "", invalidCredentials()
	}

	token, err := s.jwtService.GenerateToken(subject)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

func (s *authServiceImpl) Signup(ctx context.Context, input SignupInput) (*models.Student, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.RegNo = strings.TrimSpace(input.RegNo)
	input.Email = strings.TrimSpace(input.Email)

	if input.FullName == "" {
		return nil, apperrors.NewValidationError("Full name is required")
	}
	if input.RegNo == "" {
		return nil, apperrors.NewValidationError("Register number is required")
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

	student := &models.Student{
		FullName: input.FullName,
		RegNo:    input.RegNo,
		Batch:    strings.TrimSpace(input.Batch),
		Email:    input.Email,
		PhoneNo:  strings.TrimSpace(input.PhoneNo),
		Password: hash,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, mapAccountWriteError(err, "student")
	}
	return student, nil
}

// mapAccountWriteError translates repository uniqueness errors into conflicts
func mapAccountWriteError(err error, entity string) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicateRegNo):
		return apperrors.NewDuplicateError(apperrors.ErrRegNoAlreadyExists, "Register number already exists")
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return apperrors.NewDuplicateError(apperrors.ErrEmailAlreadyExists, "Email already exists")
	}
	return fmt.Errorf("error saving %s: %w", entity, err)
}
