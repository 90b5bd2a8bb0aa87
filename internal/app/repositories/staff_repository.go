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
	"github.com/yigit/capstone/internal/db"
	"github.com/yigit/capstone/internal/pkg/dberrors"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// IStaffRepository defines the interface for staff-related database operations
type IStaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*models.Staff, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Staff, error)
	DeleteWithProjects(ctx context.Context, id string) error
}

var staffColumns = []string{
	"id", "full_name", "email", "password", "profile_img", "profile_img_type",
	"specializations", "created_at", "updated_at",
}

// StaffRepository handles staff database operations
type StaffRepository struct {
	pool *pgxpool.Pool
	db   DBTX
	sb   squirrel.StatementBuilderType
}

// NewStaffRepository creates a new StaffRepository
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		pool: pool,
		db:   pool,
		sb:   statementBuilder(),
	}
}

func scanStaff(row pgx.Row) (*models.Staff, error) {
	s := &models.Staff{}
	err := row.Scan(&s.ID, &s.FullName, &s.Email, &s.Password, &s.ProfileImg, &s.ProfileImgType,
		&s.Specializations, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if s.Specializations == nil {
		s.Specializations = []string{}
	}
	return s, nil
}

// Create inserts a new staff member
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	now := time.Now().UTC()
	staff.ID = newID()
	staff.CreatedAt, staff.UpdatedAt = now, now
	if staff.Specializations == nil {
		staff.Specializations = []string{}
	}

	sql, args, err := r.sb.Insert("staffs").
		Columns(staffColumns...).
		Values(staff.ID, staff.FullName, staff.Email, staff.Password, staff.ProfileImg, staff.ProfileImgType,
			staff.Specializations, staff.CreatedAt, staff.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create staff query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "staffs_email_key") {
			logger.Warn().Str("email", staff.Email).Msg("Attempted to create staff with duplicate email")
			return ErrDuplicateEmail
		}
		logger.Error().Err(err).Str("email", staff.Email).Msg("Error executing create staff query")
		return fmt.Errorf("error creating staff: %w", err)
	}

	logger.Info().Str("staffID", staff.ID).Msg("Staff created successfully")
	return nil
}

func (r *StaffRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Staff, error) {
	sql, args, err := r.sb.Select(staffColumns...).
		From("staffs").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get staff query: %w", err)
	}

	staff, err := scanStaff(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting staff: %w", err)
	}
	return staff, nil
}

// GetByID retrieves a staff member by id
func (r *StaffRepository) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a staff member by email
func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// Exists reports whether a staff member with the given id exists
func (r *StaffRepository) Exists(ctx context.Context, id string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("staffs").
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build staff exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking staff existence: %w", err)
	}
	return exists, nil
}

// List retrieves all staff members ordered by name
func (r *StaffRepository) List(ctx context.Context) ([]*models.Staff, error) {
	sql, args, err := r.sb.Select(staffColumns...).
		From("staffs").
		OrderBy("full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list staff query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list staff query")
		return nil, fmt.Errorf("error querying staff: %w", err)
	}
	defer rows.Close()

	staffs := []*models.Staff{}
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning staff row: %w", err)
		}
		staffs = append(staffs, s)
	}
	return staffs, rows.Err()
}

// Update applies a column->value map to one staff member
func (r *StaffRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Staff, error) {
	set := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	sql, args, err := r.sb.Update("staffs").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, full_name, email, password, profile_img, profile_img_type, specializations, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update staff query: %w", err)
	}

	staff, err := scanStaff(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "staffs_email_key") {
			return nil, ErrDuplicateEmail
		}
		logger.Error().Err(err).Str("staffID", id).Msg("Error executing update staff query")
		return nil, fmt.Errorf("error updating staff: %w", err)
	}
	return staff, nil
}

// DeleteWithProjects removes a staff member after deleting every project
// they guide, in one transaction.
func (r *StaffRepository) DeleteWithProjects(ctx context.Context, id string) error {
	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select("id").
			From("staffs").
			Where(squirrel.Eq{"id": id}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock staff query: %w", err)
		}
		var locked string
		if err := tx.QueryRow(ctx, sql, args...).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("error locking staff: %w", err)
		}

		sql, args, err = r.sb.Select("id").From("projects").Where(squirrel.Eq{"staff_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build staff projects query: %w", err)
		}
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error querying staff projects: %w", err)
		}
		projectIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("error collecting staff projects: %w", err)
		}

		if _, err := deleteProjectTree(ctx, tx, r.sb, projectIDs); err != nil {
			return err
		}

		sql, args, err = r.sb.Delete("staffs").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete staff query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error deleting staff: %w", err)
		}

		logger.Info().Str("staffID", id).Int("projects", len(projectIDs)).Msg("Staff deleted with guided projects")
		return nil
	})
}
