package dto

// LoginRequest represents the login body. Students send regNo, staff and
// admins send email.
type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email" example:"rao@college.edu"`
	RegNo    string `json:"regNo" example:"21BCE1001"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// SignupRequest represents the student signup body
type SignupRequest struct {
	FullName string `json:"fullName" binding:"required,notblank" example:"Jane Doe"`
	RegNo    string `json:"regNo" binding:"required,notblank" example:"21BCE1001"`
	Batch    string `json:"batch" example:"2021"`
	Email    string `json:"email" binding:"required,email" example:"jane@college.edu"`
	PhoneNo  string `json:"phoneNo" example:"9876543210"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// RegisterProjectRequest represents the project registration body.
// Field rules are enforced by the registration workflow so that they are
// checked in a fixed order with fixed messages.
type RegisterProjectRequest struct {
	StudentIDs []string `json:"studentIds" example:"s1,s2"`
	StaffID    string   `json:"staffId" example:"g1"`
	Title      string   `json:"title" example:"Smart attendance system"`
}

// PasswordUpdateRequest represents the student password reset body
type PasswordUpdateRequest struct {
	Email    string `json:"email" example:"jane@college.edu"`
	Password string `json:"password" example:"new-secret"`
}

// UpdateStudentRequest holds the editable student fields. Absent fields are left unchanged.
type UpdateStudentRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,notblank"`
	RegNo    *string `json:"regNo" binding:"omitempty,notblank"`
	Batch    *string `json:"batch"`
	Email    *string `json:"email" binding:"omitempty,email"`
	PhoneNo  *string `json:"phoneNo"`
	Password *string `json:"password" binding:"omitempty,min=1"`
}

// CreateStaffRequest represents the multipart form for creating a guide.
// The profile image travels in the "profileImg" file part.
type CreateStaffRequest struct {
	FullName        string   `form:"fullName" json:"fullName" binding:"required,notblank"`
	Email           string   `form:"email" json:"email" binding:"required,email"`
	Password        string   `form:"password" json:"password" binding:"required"`
	Specializations []string `form:"specializations" json:"specializations"`
}

// UpdateStaffRequest holds the editable guide fields. Absent fields are left unchanged.
type UpdateStaffRequest struct {
	FullName        *string  `form:"fullName" json:"fullName" binding:"omitempty,notblank"`
	Email           *string  `form:"email" json:"email" binding:"omitempty,email"`
	Password        *string  `form:"password" json:"password" binding:"omitempty,min=1"`
	Specializations []string `form:"specializations" json:"specializations"`
}

// CreateAdminRequest represents the body for creating an administrator
type CreateAdminRequest struct {
	FullName string `json:"fullName" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateAdminRequest holds the editable administrator fields
type UpdateAdminRequest struct {
	FullName string `json:"fullName" binding:"omitempty,notblank"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}
