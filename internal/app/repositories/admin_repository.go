package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/pkg/dberrors"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// IAdminRepository defines the interface for admin-related database operations
type IAdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.Admin, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Admin, error)
	Delete(ctx context.Context, id string) error
}

// AdminRepository handles admin database operations
type AdminRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	a := &models.Admin{}
	if err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.Password, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new admin
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now().UTC()
	admin.ID = newID()
	admin.CreatedAt, admin.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("admins").
		Columns("id", "full_name", "email", "password", "created_at", "updated_at").
		Values(admin.ID, admin.FullName, admin.Email, admin.Password, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "admins_email_key") {
			return ErrDuplicateEmail
		}
		logger.Error().Err(err).Str("email", admin.Email).Msg("Error executing create admin query")
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Admin, error) {
	sql, args, err := r.sb.Select("id", "full_name", "email", "password", "created_at", "updated_at").
		From("admins").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	admin, err := scanAdmin(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting admin: %w", err)
	}
	return admin, nil
}

// GetByID retrieves an admin by id
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// ExistsByEmail reports whether an admin with the email exists
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List retrieves all admins
func (r *AdminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	sql, args, err := r.sb.Select("id", "full_name", "email", "password", "created_at", "updated_at").
		From("admins").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list admins query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying admins: %w", err)
	}
	defer rows.Close()

	admins := []*models.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning admin row: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// Update applies a column->value map to one admin
func (r *AdminRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Admin, error) {
	set := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	sql, args, err := r.sb.Update("admins").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, full_name, email, password, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update admin query: %w", err)
	}

	admin, err := scanAdmin(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "admins_email_key") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error updating admin: %w", err)
	}
	return admin, nil
}

// Delete removes an admin
func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("admins").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete admin query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
