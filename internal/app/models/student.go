package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID        string    `json:"id" db:"id" example:"0b8e5d9e-4f7a-4c1e-9f1a-2f7f5f0c1a11"`
	FullName  string    `json:"fullName" db:"full_name" example:"Jane Doe"`
	RegNo     string    `json:"regNo" db:"reg_no" example:"21BCE1001"` // Login identifier, unique
	Batch     string    `json:"batch" db:"batch" example:"2021"`
	Email     string    `json:"email" db:"email" example:"jane@college.edu"`
	PhoneNo   string    `json:"phoneNo" db:"phone_no" example:"9876543210"`
	Password  string    `json:"-" db:"password"`
	ProjectID *string   `json:"projectId,omitempty" db:"project_id"` // NULL until assigned to a project
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Project *Project `json:"project,omitempty"` // Relation, no db tag
}
