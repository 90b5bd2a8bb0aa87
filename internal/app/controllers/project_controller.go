package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/capstone/internal/app/models/dto"
	"github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/middleware"
)

// ProjectController handles project registration, queries and deletion
type ProjectController struct {
	projectService services.ProjectService
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService services.ProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// RegisterProject handles project registration
// @Summary Register a project
// @Description Creates a project for a guide with up to two students, together with its review and six empty stages
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterProjectRequest true "Project information"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectDetailResponse} "Project registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input or guide at capacity"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Guide or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects [post]
func (c *ProjectController) RegisterProject(ctx *gin.Context) {
	var req dto.RegisterProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	project, err := c.projectService.RegisterProject(ctx, services.RegisterProjectInput{
		StudentIDs: req.StudentIDs,
		StaffID:    req.StaffID,
		Title:      req.Title,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProjectDetail(project), "Project registered successfully"))
}

// ListProjects retrieves every project with its full review
// @Summary List all projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProjectSummaryResponse} "Projects retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	projects, err := c.projectService.ListProjects(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProjectSummaries(projects), ""))
}

// ListProjectsByStage retrieves every project narrowed to one review stage
// @Summary List projects for a review stage
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param stage query string true "Stage" Enums(zero, one, two, three, model, final)
// @Success 200 {object} dto.APIResponse{data=[]dto.ProjectSummaryResponse} "Projects retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Stage missing or invalid"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/reviews [get]
func (c *ProjectController) ListProjectsByStage(ctx *gin.Context) {
	projects, err := c.projectService.ListProjectsByStage(ctx, ctx.Query("stage"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProjectSummaries(projects), ""))
}

// GetProject retrieves a single project with full detail
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectDetailResponse} "Project retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	project, err := c.projectService.GetProject(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProjectDetail(project), ""))
}

// ListProjectsByGuide retrieves a guide's projects, optionally narrowed to one stage.
// The route shares its path segment with GetProject, so the staff id arrives as "id".
// @Summary List a guide's projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param staffId path string true "Staff ID"
// @Param stage query string false "Stage" Enums(zero, one, two, three, model, final)
// @Success 200 {object} dto.APIResponse{data=[]dto.GuideProjectResponse} "Projects retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid stage"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{staffId}/reviews [get]
func (c *ProjectController) ListProjectsByGuide(ctx *gin.Context) {
	projects, err := c.projectService.ListProjectsByGuide(ctx, ctx.Param("id"), ctx.Query("stage"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewGuideProjects(projects), ""))
}

// DeleteProject deletes a project with its review and stages
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse "Project deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	if err := c.projectService.DeleteProject(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Project deleted successfully"))
}
