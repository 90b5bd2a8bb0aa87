package dto

import (
	"time"

	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/pkg/filestorage"
)

// ProjectRef identifies the project a student belongs to
type ProjectRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// StudentResponse represents a student account
type StudentResponse struct {
	ID        string      `json:"id"`
	FullName  string      `json:"fullName"`
	RegNo     string      `json:"regNo"`
	Batch     string      `json:"batch"`
	Email     string      `json:"email"`
	PhoneNo   string      `json:"phoneNo"`
	ProjectID *string     `json:"projectId"`
	Project   *ProjectRef `json:"project,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// StaffResponse represents a guide account. ProfileImg is a data URL.
type StaffResponse struct {
	ID              string                  `json:"id"`
	FullName        string                  `json:"fullName"`
	Email           string                  `json:"email"`
	Specializations []string                `json:"specializations"`
	ProfileImg      string                  `json:"profileImg,omitempty"`
	Projects        []ProjectDetailResponse `json:"projects,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// AdminResponse represents an administrator account
type AdminResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewStudentResponse converts a student model
func NewStudentResponse(s *models.Student) *StudentResponse {
	resp := &StudentResponse{
		ID:        s.ID,
		FullName:  s.FullName,
		RegNo:     s.RegNo,
		Batch:     s.Batch,
		Email:     s.Email,
		PhoneNo:   s.PhoneNo,
		ProjectID: s.ProjectID,
		CreatedAt: s.CreatedAt,
	}
	if s.Project != nil {
		resp.Project = &ProjectRef{ID: s.Project.ID, Title: s.Project.Title}
	}
	return resp
}

// NewStudentResponses converts a list of students
func NewStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, *NewStudentResponse(s))
	}
	return out
}

// NewStaffResponse converts a guide model, rendering the profile image inline
func NewStaffResponse(s *models.Staff) *StaffResponse {
	specializations := s.Specializations
	if specializations == nil {
		specializations = []string{}
	}
	resp := &StaffResponse{
		ID:              s.ID,
		FullName:        s.FullName,
		Email:           s.Email,
		Specializations: specializations,
		ProfileImg:      filestorage.DataURL(s.ProfileImg, s.ProfileImgType),
		CreatedAt:       s.CreatedAt,
	}
	for _, p := range s.Projects {
		resp.Projects = append(resp.Projects, *NewProjectDetail(p))
	}
	return resp
}

// NewStaffResponses converts a list of guides
func NewStaffResponses(staffs []*models.Staff) []StaffResponse {
	out := make([]StaffResponse, 0, len(staffs))
	for _, s := range staffs {
		out = append(out, *NewStaffResponse(s))
	}
	return out
}

// NewAdminResponse converts an admin model
func NewAdminResponse(a *models.Admin) *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// NewAdminResponses converts a list of admins
func NewAdminResponses(admins []*models.Admin) []AdminResponse {
	out := make([]AdminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, *NewAdminResponse(a))
	}
	return out
}
