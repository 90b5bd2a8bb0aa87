// Package services holds the business workflows of the API.
//
// Services defined in this package:
//   - AuthService: login for every role and student signup
//   - StudentService, StaffService, AdminService: account management
//   - ProjectService: project registration, queries and deletion
//   - ReviewService: partial updates of a single review stage
package services

import (
	"github.com/yigit/capstone/internal/app/repositories"
	"github.com/yigit/capstone/internal/pkg/auth"
	"github.com/yigit/capstone/internal/pkg/metrics"
)

// Services holds all the service instances
type Services struct {
	AuthService    AuthService
	StudentService StudentService
	StaffService   StaffService
	AdminService   AdminService
	ProjectService ProjectService
	ReviewService  ReviewService
}

// NewServices wires every service to its repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, limits ProjectLimits, m *metrics.Metrics) *Services {
	return &Services{
		AuthService:    NewAuthService(repos.StudentRepository, repos.StaffRepository, repos.AdminRepository, jwtService),
		StudentService: NewStudentService(repos.StudentRepository),
		StaffService:   NewStaffService(repos.StaffRepository, repos.ProjectRepository),
		AdminService:   NewAdminService(repos.AdminRepository),
		ProjectService: NewProjectService(repos.ProjectRepository, repos.StaffRepository, limits, m),
		ReviewService:  NewReviewService(repos.ReviewRepository, m),
	}
}
