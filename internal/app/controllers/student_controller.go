package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/capstone/internal/app/models/dto"
	"github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/middleware"
)

// StudentController handles student account operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// ListStudents retrieves all students ordered by register number
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Students retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponses(students), ""))
}

// GetStudent retrieves a student with their project reference
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student), ""))
}

// UpdateStudent applies a partial profile update
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Register number or email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, ctx.Param("id"), services.UpdateStudentInput{
		FullName: req.FullName,
		RegNo:    req.RegNo,
		Batch:    req.Batch,
		Email:    req.Email,
		PhoneNo:  req.PhoneNo,
		Password: req.Password,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentResponse(student), "Student updated successfully"))
}

// DeleteStudent deletes a student account
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Student deleted successfully"))
}

// UpdatePassword resets a student's password given their register number and email.
// This route answers with {"message": ...} on every path.
// @Summary Reset a student password
// @Tags students
// @Accept json
// @Produce json
// @Param regNo path string true "Register number"
// @Param request body dto.PasswordUpdateRequest true "Email and new password"
// @Success 200 {object} dto.MessageResponse "Password updated successfully"
// @Failure 400 {object} dto.MessageResponse "Email id required"
// @Failure 404 {object} dto.MessageResponse "Invalid register number or email id"
// @Failure 500 {object} dto.MessageResponse "Internal server error"
// @Router /students/password/{regNo} [put]
func (c *StudentController) UpdatePassword(ctx *gin.Context) {
	var req dto.PasswordUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.MessageResponse{Message: dto.HandleValidationError(err).Error})
		return
	}

	if err := c.studentService.ResetPassword(ctx, ctx.Param("regNo"), req.Email, req.Password); err != nil {
		middleware.HandleMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
