package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/capstone/internal/app/controllers"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/middleware"
)

// Controllers groups every HTTP handler set mounted by SetupRouter
type Controllers struct {
	Auth    *controllers.AuthController
	Student *controllers.StudentController
	Staff   *controllers.StaffController
	Admin   *controllers.AdminController
	Project *controllers.ProjectController
	Review  *controllers.ReviewController
	Health  *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	metricsHandler http.Handler,
) {
	// --- Operational routes ---
	router.GET("/ping", c.Health.Ping)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// --- Public auth routes ---
	router.POST("/login/:role", c.Auth.Login)
	router.POST("/signup", c.Auth.Signup)

	api := router.Group("/api")

	// --- Public API routes ---
	api.GET("/health", c.Health.Health)
	api.GET("/students", c.Student.ListStudents)
	api.GET("/staffs", c.Staff.ListStaff)
	api.PUT("/students/password/:regNo", c.Student.UpdatePassword)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)

	students := authenticated.Group("/students")
	{
		students.GET("/:id", c.Student.GetStudent)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
	}

	staffs := authenticated.Group("/staffs")
	{
		staffs.GET("/:id", c.Staff.GetStaff)
		staffs.PUT("/:id", c.Staff.UpdateStaff)
		staffs.POST("", adminOnly, c.Staff.CreateStaff)
		staffs.DELETE("/:id", adminOnly, c.Staff.DeleteStaff)
	}

	admins := authenticated.Group("/admins", adminOnly)
	{
		admins.GET("", c.Admin.ListAdmins)
		admins.GET("/:id", c.Admin.GetAdmin)
		admins.POST("", c.Admin.CreateAdmin)
		admins.PUT("/:id", c.Admin.UpdateAdmin)
		admins.DELETE("/:id", c.Admin.DeleteAdmin)
	}

	// "/:id/reviews" takes a staff id; gin requires one wildcard name per segment.
	projects := authenticated.Group("/projects")
	{
		projects.POST("", c.Project.RegisterProject)
		projects.GET("", c.Project.ListProjects)
		projects.GET("/reviews", c.Project.ListProjectsByStage)
		projects.GET("/:id", c.Project.GetProject)
		projects.GET("/:id/reviews", c.Project.ListProjectsByGuide)
		projects.DELETE("/:id", c.Project.DeleteProject)
	}

	reviews := authenticated.Group("/reviews")
	{
		reviews.PUT("/:reviewId/project", c.Review.UpdateStage)
	}
}
