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

// ProjectFilter narrows a project listing. Stages lists the review stages
// to load; a nil slice loads all of them.
type ProjectFilter struct {
	ID      string
	StaffID string
	Stages  []models.Stage
}

// IProjectRepository defines the interface for project persistence
type IProjectRepository interface {
	// RunInTx runs fn with a repository bound to a single transaction.
	RunInTx(ctx context.Context, fn func(ctx context.Context, repo IProjectRepository) error) error
	LockStaff(ctx context.Context, staffID string) (*models.Staff, error)
	CountByStaff(ctx context.Context, staffID string) (int, error)
	LockStudents(ctx context.Context, ids []string) ([]*models.Student, error)
	CreateWithReview(ctx context.Context, project *models.Project, studentIDs []string) error
	List(ctx context.Context, filter ProjectFilter) ([]*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	DeleteTree(ctx context.Context, id string) error
}

// ProjectRepository handles project database operations
type ProjectRepository struct {
	pool *pgxpool.Pool
	db   DBTX
	inTx bool
	sb   squirrel.StatementBuilderType
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{
		pool: pool,
		db:   pool,
		sb:   statementBuilder(),
	}
}

// RunInTx implements IProjectRepository
func (r *ProjectRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, repo IProjectRepository) error) error {
	if r.inTx {
		return fn(ctx, r)
	}
	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &ProjectRepository{pool: r.pool, db: tx, inTx: true, sb: r.sb})
	})
}

// LockStaff loads a staff member and holds a row lock on it for the rest of
// the transaction, serializing registrations against the same guide.
func (r *ProjectRepository) LockStaff(ctx context.Context, staffID string) (*models.Staff, error) {
	sql, args, err := r.sb.Select("id", "full_name", "email").
		From("staffs").
		Where(squirrel.Eq{"id": staffID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock staff query: %w", err)
	}

	staff := &models.Staff{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&staff.ID, &staff.FullName, &staff.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error locking staff: %w", err)
	}
	return staff, nil
}

// CountByStaff returns the number of projects guided by a staff member
func (r *ProjectRepository) CountByStaff(ctx context.Context, staffID string) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("projects").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count projects query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting projects: %w", err)
	}
	return count, nil
}

// LockStudents loads the students with the given ids under a row lock.
// Missing ids are simply absent from the result.
func (r *ProjectRepository) LockStudents(ctx context.Context, ids []string) ([]*models.Student, error) {
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}

	sql, args, err := r.sb.Select(studentColumns...).
		From("students s").
		Where(squirrel.Eq{"s.id": ids}).
		OrderBy("s.id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error locking students: %w", err)
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
	return students, rows.Err()
}

// CreateWithReview inserts the project, its review and six empty stage rows,
// then links the students. Linking fails with ErrStudentAlreadyAssigned if
// any student gained a project in the meantime.
func (r *ProjectRepository) CreateWithReview(ctx context.Context, project *models.Project, studentIDs []string) error {
	now := time.Now().UTC()
	project.ID = newID()
	project.CreatedAt, project.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("projects").
		Columns("id", "title", "staff_id", "created_at", "updated_at").
		Values(project.ID, project.Title, project.StaffID, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create project query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return createProjectError(err, project.StaffID)
	}

	review := &models.Review{ID: newID(), ProjectID: project.ID}
	sql, args, err = r.sb.Insert("reviews").
		Columns("id", "project_id", "created_at").
		Values(review.ID, review.ProjectID, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create review query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating review: %w", err)
	}

	for _, stage := range models.Stages {
		rec := &models.StageRecord{ID: newID(), ReviewID: review.ID, UpdatedAt: now}
		sql, args, err = r.sb.Insert(stage.Table()).
			Columns("id", "review_id", "updated_at").
			Values(rec.ID, rec.ReviewID, rec.UpdatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create %s query: %w", stage.Table(), err)
		}
		if _, err := r.db.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error creating %s: %w", stage.Table(), err)
		}
		review.SetStage(stage, rec)
	}
	project.Review = review

	if len(studentIDs) == 0 {
		return nil
	}

	sql, args, err = r.sb.Update("students").
		Set("project_id", project.ID).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": studentIDs}).
		Where("project_id IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build link students query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error linking students: %w", err)
	}
	if tag.RowsAffected() != int64(len(studentIDs)) {
		return ErrStudentAlreadyAssigned
	}
	return nil
}

// createProjectError maps a failed project insert. A guide removed after it
// was locked surfaces as a foreign key violation and is reported as ErrNotFound.
func createProjectError(err error, staffID string) error {
	if dberrors.IsForeignKeyError(err, "projects_staff_id_fkey") {
		return fmt.Errorf("guide %s: %w", staffID, ErrNotFound)
	}
	logger.Error().Err(err).Str("staffID", staffID).Msg("Error executing create project query")
	return fmt.Errorf("error creating project: %w", err)
}

// List returns projects matching the filter, oldest first, with their guide,
// students and review loaded.
func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]*models.Project, error) {
	query := r.sb.Select(
		"p.id", "p.title", "p.staff_id", "p.created_at", "p.updated_at",
		"st.full_name", "st.email", "rv.id",
	).
		From("projects p").
		Join("staffs st ON st.id = p.staff_id").
		LeftJoin("reviews rv ON rv.project_id = p.id").
		OrderBy("p.created_at ASC", "p.id ASC")

	if filter.ID != "" {
		query = query.Where(squirrel.Eq{"p.id": filter.ID})
	}
	if filter.StaffID != "" {
		query = query.Where(squirrel.Eq{"p.staff_id": filter.StaffID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list projects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list projects query")
		return nil, fmt.Errorf("error querying projects: %w", err)
	}

	projects := []*models.Project{}
	byID := map[string]*models.Project{}
	reviews := map[string]*models.Review{}
	for rows.Next() {
		p := &models.Project{Staff: &models.Staff{}, Students: []*models.Student{}}
		var reviewID *string
		if err := rows.Scan(&p.ID, &p.Title, &p.StaffID, &p.CreatedAt, &p.UpdatedAt,
			&p.Staff.FullName, &p.Staff.Email, &reviewID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning project row: %w", err)
		}
		p.Staff.ID = p.StaffID
		if reviewID != nil {
			p.Review = &models.Review{ID: *reviewID, ProjectID: p.ID}
			reviews[*reviewID] = p.Review
		}
		projects = append(projects, p)
		byID[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	if len(projects) == 0 {
		return projects, nil
	}

	if err := r.loadStudents(ctx, byID); err != nil {
		return nil, err
	}

	stages := filter.Stages
	if stages == nil {
		stages = models.Stages
	}
	if err := loadStages(ctx, r.db, r.sb, reviews, stages); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) loadStudents(ctx context.Context, projects map[string]*models.Project) error {
	ids := make([]string, 0, len(projects))
	for id := range projects {
		ids = append(ids, id)
	}

	sql, args, err := r.sb.Select(studentColumns...).
		From("students s").
		Where(squirrel.Eq{"s.project_id": ids}).
		OrderBy("s.reg_no ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build project students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error querying project students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return fmt.Errorf("error scanning student row: %w", err)
		}
		if s.ProjectID == nil {
			continue
		}
		if p, ok := projects[*s.ProjectID]; ok {
			p.Students = append(p.Students, s)
		}
	}
	return rows.Err()
}

// GetByID retrieves one project with all relations loaded
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	projects, err := r.List(ctx, ProjectFilter{ID: id})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, ErrNotFound
	}
	return projects[0], nil
}

// DeleteTree removes a project together with its review and stage rows.
// Linked students are released by the foreign key.
func (r *ProjectRepository) DeleteTree(ctx context.Context, id string) error {
	return r.RunInTx(ctx, func(ctx context.Context, repo IProjectRepository) error {
		tx := repo.(*ProjectRepository)
		deleted, err := deleteProjectTree(ctx, tx.db, tx.sb, []string{id})
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ErrNotFound
		}
		logger.Info().Str("projectID", id).Msg("Project deleted with its review")
		return nil
	})
}

// deleteProjectTree deletes the given projects bottom-up: stage rows, reviews,
// then the projects. It returns the number of projects removed.
func deleteProjectTree(ctx context.Context, q DBTX, sb squirrel.StatementBuilderType, projectIDs []string) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}

	for _, stage := range models.Stages {
		sql, args, err := sb.Delete(stage.Table()).
			Where("review_id IN (SELECT id FROM reviews WHERE project_id = ANY(?))", projectIDs).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build delete %s query: %w", stage.Table(), err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return 0, fmt.Errorf("error deleting %s rows: %w", stage.Table(), err)
		}
	}

	sql, args, err := sb.Delete("reviews").Where(squirrel.Eq{"project_id": projectIDs}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete reviews query: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return 0, fmt.Errorf("error deleting reviews: %w", err)
	}

	sql, args, err = sb.Delete("projects").Where(squirrel.Eq{"id": projectIDs}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete projects query: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting projects: %w", err)
	}
	return tag.RowsAffected(), nil
}
