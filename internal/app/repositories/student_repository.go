package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/pkg/dberrors"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// IStudentRepository defines the interface for student-related database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByRegNo(ctx context.Context, regNo string) (*models.Student, error)
	GetByRegNoAndEmail(ctx context.Context, regNo, email string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Student, error)
	UpdatePasswordByRegNo(ctx context.Context, regNo, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

var studentColumns = []string{
	"s.id", "s.full_name", "s.reg_no", "s.batch", "s.email", "s.phone_no", "s.password",
	"s.project_id", "s.created_at", "s.updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.FullName, &s.RegNo, &s.Batch, &s.Email, &s.PhoneNo, &s.Password,
		&s.ProjectID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func mapStudentWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "students_reg_no_key"):
		return ErrDuplicateRegNo
	case dberrors.IsDuplicateConstraintError(err, "students_email_key"):
		return ErrDuplicateEmail
	}
	return err
}

// Create inserts a new student. ID and timestamps are assigned here.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.ID = newID()
	student.CreatedAt, student.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("students").
		Columns("id", "full_name", "reg_no", "batch", "email", "phone_no", "password", "created_at", "updated_at").
		Values(student.ID, student.FullName, student.RegNo, student.Batch, student.Email, student.PhoneNo,
			student.Password, student.CreatedAt, student.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if mapped := mapStudentWriteError(err); mapped != err {
			logger.Warn().Str("regNo", student.RegNo).Msg("Attempted to create student with duplicate identity")
			return mapped
		}
		logger.Error().Err(err).Str("regNo", student.RegNo).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("studentID", student.ID).Str("regNo", student.RegNo).Msg("Student created successfully")
	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students s").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student and, when assigned, the id and title of its project
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := r.getOne(ctx, squirrel.Eq{"s.id": id})
	if err != nil {
		return nil, err
	}
	if student.ProjectID == nil {
		return student, nil
	}

	sql, args, err := r.sb.Select("id", "title", "staff_id", "created_at", "updated_at").
		From("projects").
		Where(squirrel.Eq{"id": *student.ProjectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student project query: %w", err)
	}

	p := &models.Project{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.Title, &p.StaffID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error getting student project: %w", err)
	}
	if err == nil {
		student.Project = p
	}
	return student, nil
}

// GetByRegNo retrieves a student by register number
func (r *StudentRepository) GetByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.reg_no": regNo})
}

// GetByRegNoAndEmail retrieves a student matching both register number and email
func (r *StudentRepository) GetByRegNoAndEmail(ctx context.Context, regNo, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.reg_no": regNo, "s.email": email})
}

// List retrieves all students ordered by register number
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students s").
		OrderBy("s.reg_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// Update applies a column->value map to one student and returns the new row
func (r *StudentRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Student, error) {
	set := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	cols := make([]string, len(studentColumns))
	for i, c := range studentColumns {
		cols[i] = c[2:]
	}

	sql, args, err := r.sb.Update("students").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(cols, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapStudentWriteError(err); mapped != err {
			return nil, mapped
		}
		logger.Error().Err(err).Str("studentID", id).Msg("Error executing update student query")
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return student, nil
}

// UpdatePasswordByRegNo replaces the password hash of a student
func (r *StudentRepository) UpdatePasswordByRegNo(ctx context.Context, regNo, passwordHash string) error {
	sql, args, err := r.sb.Update("students").
		Set("password", passwordHash).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"reg_no": regNo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student. Its project keeps existing with one member less.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
