package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/capstone/internal/app/models/dto"
	"github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/middleware"
	"github.com/yigit/capstone/internal/pkg/filestorage"
)

const profileImgField = "profileImg"

// StaffController handles guide account operations
type StaffController struct {
	staffService services.StaffService
	imageReader  filestorage.BlobReader
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService services.StaffService, imageReader filestorage.BlobReader) *StaffController {
	return &StaffController{
		staffService: staffService,
		imageReader:  imageReader,
	}
}

// readProfileImage returns the uploaded profile image, or nil when the
// request carries none. It writes the error response itself.
func (c *StaffController) readProfileImage(ctx *gin.Context) (*filestorage.Blob, bool) {
	if ctx.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, true
	}
	fileHeader, err := ctx.FormFile(profileImgField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid profile image").WithDetails(err.Error()))
		return nil, false
	}

	blob, err := c.imageReader.Read(fileHeader)
	switch {
	case errors.Is(err, filestorage.ErrFileTooLarge):
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Profile image is too large"))
		return nil, false
	case errors.Is(err, filestorage.ErrUnsupportedType):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Profile image must be an image file"))
		return nil, false
	case err != nil:
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return blob, true
}

// CreateStaff handles guide creation
// @Summary Create a guide
// @Tags staffs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param fullName formData string true "Full name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param specializations formData []string false "Specializations" collectionFormat(multi)
// @Param profileImg formData file false "Profile image"
// @Success 201 {object} dto.APIResponse{data=dto.StaffResponse} "Staff created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin only"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 413 {object} dto.ErrorResponse "Profile image is too large"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staffs [post]
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var req dto.CreateStaffRequest
	if !middleware.Bind(ctx, &req) {
		return
	}
	img, ok := c.readProfileImage(ctx)
	if !ok {
		return
	}

	staff, err := c.staffService.CreateStaff(ctx, services.CreateStaffInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		Specializations: req.Specializations,
		ProfileImg:      img,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewStaffResponse(staff), "Staff created successfully"))
}

// ListStaff retrieves every guide
// @Summary List guides
// @Tags staffs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StaffResponse} "Staff retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "No staff found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staffs [get]
func (c *StaffController) ListStaff(ctx *gin.Context) {
	staffs, err := c.staffService.ListStaff(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStaffResponses(staffs), ""))
}

// GetStaff retrieves a guide with their projects
// @Summary Get guide by ID
// @Tags staffs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} dto.APIResponse{data=dto.StaffResponse} "Staff retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staffs/{id} [get]
func (c *StaffController) GetStaff(ctx *gin.Context) {
	staff, err := c.staffService.GetStaff(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStaffResponse(staff), ""))
}

// UpdateStaff applies a partial profile update
// @Summary Update a guide
// @Tags staffs
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param profileImg formData file false "Profile image"
// @Success 200 {object} dto.APIResponse{data=dto.StaffResponse} "Staff updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staffs/{id} [put]
func (c *StaffController) UpdateStaff(ctx *gin.Context) {
	var req dto.UpdateStaffRequest
	if !middleware.Bind(ctx, &req) {
		return
	}
	img, ok := c.readProfileImage(ctx)
	if !ok {
		return
	}

	staff, err := c.staffService.UpdateStaff(ctx, ctx.Param("id"), services.UpdateStaffInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		Specializations: req.Specializations,
		ProfileImg:      img,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStaffResponse(staff), "Staff updated successfully"))
}

// DeleteStaff deletes a guide and every project they own
// @Summary Delete a guide
// @Tags staffs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} dto.APIResponse "Staff deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin only"
// @Failure 404 {object} dto.ErrorResponse "Staff member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staffs/{id} [delete]
func (c *StaffController) DeleteStaff(ctx *gin.Context) {
	if err := c.staffService.DeleteStaff(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Staff deleted successfully"))
}
