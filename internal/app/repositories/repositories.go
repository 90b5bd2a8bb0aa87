package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Shared repository errors. Services translate these into apperrors.
var (
	// ErrNotFound is returned when a row addressed by id or key does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStudentAlreadyAssigned is returned when a student link is attempted on
	// a student that already belongs to a project.
	ErrStudentAlreadyAssigned = errors.New("student already assigned to a project")
	// ErrDuplicateRegNo and ErrDuplicateEmail map unique violations on accounts.
	ErrDuplicateRegNo = errors.New("register number already in use")
	ErrDuplicateEmail = errors.New("email already in use")
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so one
// repository implementation serves both pooled and transactional use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	StaffRepository   *StaffRepository
	AdminRepository   *AdminRepository
	ProjectRepository *ProjectRepository
	ReviewRepository  *ReviewRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(pool),
		StaffRepository:   NewStaffRepository(pool),
		AdminRepository:   NewAdminRepository(pool),
		ProjectRepository: NewProjectRepository(pool),
		ReviewRepository:  NewReviewRepository(pool),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func newID() string {
	return uuid.New().String()
}
