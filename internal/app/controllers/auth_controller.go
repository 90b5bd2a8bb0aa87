package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/app/models/dto"
	"github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/middleware"
)

// AuthController handles login for every role and student signup
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login handles login for the role in the path
// @Summary Log in
// @Description Students log in with regNo, staff and admins with email
// @Tags auth
// @Accept json
// @Produce json
// @Param role path string true "Role" Enums(admin, student, staff)
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse "Session token"
// @Failure 400 {object} dto.ErrorResponse "Unknown role or invalid request"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /login/{role} [post]
func (c *AuthController) Login(ctx *gin.Context) {
	role, ok := models.ParseRole(ctx.Param("role"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid role"))
		return
	}

	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	identifier := req.Email
	if role == models.RoleStudent {
		identifier = req.RegNo
	}

	token, err := c.authService.Login(ctx, role, identifier, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Signup handles student registration
// @Summary Student signup
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 409 {object} dto.ErrorResponse "Register number or email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.authService.Signup(ctx, services.SignupInput{
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

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewStudentResponse(student), "Student registered successfully"))
}
