package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/capstone/internal/app/models/dto"
	"github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/middleware"
)

// AdminController handles administrator accounts. All routes are admin only.
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// CreateAdmin handles administrator creation
// @Summary Create an admin
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdminRequest true "Admin information"
// @Success 201 {object} dto.APIResponse{data=dto.AdminResponse} "Admin created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admins [post]
func (c *AdminController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	admin, err := c.adminService.CreateAdmin(ctx, services.AdminInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewAdminResponse(admin), "Admin created successfully"))
}

// ListAdmins retrieves every administrator
// @Summary List admins
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminResponse} "Admins retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admins [get]
func (c *AdminController) ListAdmins(ctx *gin.Context) {
	admins, err := c.adminService.ListAdmins(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAdminResponses(admins), ""))
}

// GetAdmin retrieves an administrator
// @Summary Get admin by ID
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} dto.APIResponse{data=dto.AdminResponse} "Admin retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admins/{id} [get]
func (c *AdminController) GetAdmin(ctx *gin.Context) {
	admin, err := c.adminService.GetAdmin(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAdminResponse(admin), ""))
}

// UpdateAdmin applies a partial update
// @Summary Update an admin
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body dto.UpdateAdminRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AdminResponse} "Admin updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admins/{id} [put]
func (c *AdminController) UpdateAdmin(ctx *gin.Context) {
	var req dto.UpdateAdminRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	admin, err := c.adminService.UpdateAdmin(ctx, ctx.Param("id"), services.AdminInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAdminResponse(admin), "Admin updated successfully"))
}

// DeleteAdmin deletes an administrator
// @Summary Delete an admin
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} dto.APIResponse "Admin deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admins/{id} [delete]
func (c *AdminController) DeleteAdmin(ctx *gin.Context) {
	if err := c.adminService.DeleteAdmin(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Admin deleted successfully"))
}
