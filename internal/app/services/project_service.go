package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/app/repositories"
	"github.com/yigit/capstone/internal/pkg/apperrors"
	"github.com/yigit/capstone/internal/pkg/logger"
	"github.com/yigit/capstone/internal/pkg/metrics"
)

// User-facing messages of the project workflows
const (
	msgStaffIDRequired     = "Staff ID is required"
	msgTitleRequired       = "Project title is required"
	msgEmptyStudentID      = "Student ID cannot be empty"
	msgDuplicateStudentID  = "The same student cannot be added twice"
	msgStudentsNotFound    = "One or more students not found"
	msgStudentAssigned     = "The selected student is already assigned to a project"
	msgStaffNotFound       = "Staff member not found"
	msgProjectNotFound     = "Project not found"
	msgStageRequired       = "Stage query parameter is required"
	msgInvalidStage        = "Invalid stage value"
	msgReviewStageNotFound = "Review stage not found"
)

// ProjectLimits bounds project registration
type ProjectLimits struct {
	MaxStudents         int
	MaxProjectsPerGuide int
}

// DefaultProjectLimits returns the production limits
func DefaultProjectLimits() ProjectLimits {
	return ProjectLimits{
		MaxStudents:         models.DefaultMaxStudentsPerProject,
		MaxProjectsPerGuide: models.DefaultMaxProjectsPerGuide,
	}
}

// RegisterProjectInput carries the fields of a new project
type RegisterProjectInput struct {
	StudentIDs []string
	StaffID    string
	Title      string
}

// ProjectService defines the project registration, query and deletion workflows
type ProjectService interface {
	RegisterProject(ctx context.Context, input RegisterProjectInput) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
	ListProjectsByStage(ctx context.Context, stageToken string) ([]*models.Project, error)
	ListProjectsByGuide(ctx context.Context, staffID, stageToken string) ([]*models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

type projectServiceImpl struct {
	projectRepo repositories.IProjectRepository
	staffRepo   repositories.IStaffRepository
	limits      ProjectLimits
	metrics     *metrics.Metrics
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.IProjectRepository,
	staffRepo repositories.IStaffRepository,
	limits ProjectLimits,
	m *metrics.Metrics,
) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		staffRepo:   staffRepo,
		limits:      limits,
		metrics:     m,
	}
}

// validateRegistration checks the request shape. It runs before any lookup.
func (s *projectServiceImpl) validateRegistration(input *RegisterProjectInput) error {
	input.StaffID = strings.TrimSpace(input.StaffID)
	input.Title = strings.TrimSpace(input.Title)

	if input.StaffID == "" {
		return apperrors.NewValidationError(msgStaffIDRequired)
	}
	if len(input.StudentIDs) > s.limits.MaxStudents {
		return apperrors.NewValidationError(fmt.Sprintf("Only %d students are allowed per project", s.limits.MaxStudents))
	}

	ids := make([]string, 0, len(input.StudentIDs))
	seen := make(map[string]struct{}, len(input.StudentIDs))
	for _, id := range input.StudentIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return apperrors.NewValidationError(msgEmptyStudentID)
		}
		if _, dup := seen[id]; dup {
			return apperrors.NewValidationError(msgDuplicateStudentID)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	input.StudentIDs = ids

	if input.Title == "" {
		return apperrors.NewValidationError(msgTitleRequired)
	}
	return nil
}

// RegisterProject creates a project, its review and six empty stages, and
// links the students, all in one transaction.
func (s *projectServiceImpl) RegisterProject(ctx context.Context, input RegisterProjectInput) (*models.Project, error) {
	if err := s.validateRegistration(&input); err != nil {
		s.metrics.RegistrationRejected(metrics.ReasonValidation)
		return nil, err
	}

	var project *models.Project
	err := s.projectRepo.RunInTx(ctx, func(ctx context.Context, repo repositories.IProjectRepository) error {
		staff, err := repo.LockStaff(ctx, input.StaffID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.NewNotFoundError(apperrors.ErrStaffNotFound, msgStaffNotFound)
			}
			return fmt.Errorf("error loading guide: %w", err)
		}

		count, err := repo.CountByStaff(ctx, staff.ID)
		if err != nil {
			return fmt.Errorf("error counting guide projects: %w", err)
		}
		if count >= s.limits.MaxProjectsPerGuide {
			return apperrors.NewCapacityError(fmt.Sprintf("The selected guide already has %d projects", s.limits.MaxProjectsPerGuide))
		}

		students, err := repo.LockStudents(ctx, input.StudentIDs)
		if err != nil {
			return fmt.Errorf("error loading students: %w", err)
		}
		if len(students) != len(input.StudentIDs) {
			return apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, msgStudentsNotFound)
		}
		for _, st := range students {
			if st.ProjectID != nil {
				return apperrors.NewConflictError(msgStudentAssigned)
			}
		}

		p := &models.Project{Title: input.Title, StaffID: staff.ID}
		if err := repo.CreateWithReview(ctx, p, input.StudentIDs); err != nil {
			switch {
			case errors.Is(err, repositories.ErrStudentAlreadyAssigned):
				return apperrors.NewConflictError(msgStudentAssigned)
			case errors.Is(err, repositories.ErrNotFound):
				return apperrors.NewNotFoundError(apperrors.ErrStaffNotFound, msgStaffNotFound)
			}
			return fmt.Errorf("error creating project: %w", err)
		}

		for _, st := range students {
			st.ProjectID = &p.ID
		}
		p.Staff = staff
		p.Students = students
		project = p
		return nil
	})
	if err != nil {
		s.metrics.RegistrationRejected(rejectionReason(err))
		return nil, err
	}

	s.metrics.ProjectRegistered()
	logger.Info().
		Str("projectID", project.ID).
		Str("staffID", project.StaffID).
		Int("students", len(project.Students)).
		Msg("Project registered")
	return project, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return metrics.ReasonCapacity
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return metrics.ReasonNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return metrics.ReasonConflict
	case errors.Is(err, apperrors.ErrValidationFailed):
		return metrics.ReasonValidation
	}
	return "error"
}

// parseStageToken resolves a stage token; empty and unknown tokens are distinct errors
func parseStageToken(token string) (models.Stage, error) {
	if token == "" {
		return "", apperrors.NewValidationError(msgStageRequired)
	}
	stage, ok := models.ParseStage(token)
	if !ok {
		return "", apperrors.NewValidationError(msgInvalidStage)
	}
	return stage, nil
}

// ListProjects returns every project with all six stages
func (s *projectServiceImpl) ListProjects(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.projectRepo.List(ctx, repositories.ProjectFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	return projects, nil
}

// ListProjectsByStage returns every project with only the requested stage loaded
func (s *projectServiceImpl) ListProjectsByStage(ctx context.Context, stageToken string) ([]*models.Project, error) {
	stage, err := parseStageToken(stageToken)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.List(ctx, repositories.ProjectFilter{Stages: []models.Stage{stage}})
	if err != nil {
		return nil, fmt.Errorf("error listing projects by stage: %w", err)
	}
	return projects, nil
}

// ListProjectsByGuide returns the projects of one guide. The guide must exist;
// that is checked before the optional stage token is looked at.
func (s *projectServiceImpl) ListProjectsByGuide(ctx context.Context, staffID, stageToken string) ([]*models.Project, error) {
	exists, err := s.staffRepo.Exists(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("error checking guide: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError(apperrors.ErrStaffNotFound, msgStaffNotFound)
	}

	filter := repositories.ProjectFilter{StaffID: staffID}
	if stageToken != "" {
		stage, err := parseStageToken(stageToken)
		if err != nil {
			return nil, err
		}
		filter.Stages = []models.Stage{stage}
	}

	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing guide projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project with full detail
func (s *projectServiceImpl) GetProject(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrProjectNotFound, msgProjectNotFound)
		}
		return nil, fmt.Errorf("error getting project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project with its review and stage rows
func (s *projectServiceImpl) DeleteProject(ctx context.Context, id string) error {
	if err := s.projectRepo.DeleteTree(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.ErrProjectNotFound, msgProjectNotFound)
		}
		return fmt.Errorf("error deleting project: %w", err)
	}
	s.metrics.ProjectDeleted()
	return nil
}
