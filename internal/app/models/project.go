package models

import "time"

// Default registration limits. The pre-release rules allowed 3 students and
// 13 projects; the live values below are authoritative until product decides.
const (
	DefaultMaxStudentsPerProject = 2
	DefaultMaxProjectsPerGuide   = 12
)

// Project defines a capstone project based on the 'projects' table
type Project struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	StaffID   string    `json:"staffId" db:"staff_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Staff    *Staff     `json:"staff,omitempty"`
	Students []*Student `json:"students,omitempty"`
	Review   *Review    `json:"review,omitempty"`
}

// StudentIDs returns the ids of the linked students in order.
func (p *Project) StudentIDs() []string {
	ids := make([]string, 0, len(p.Students))
	for _, s := range p.Students {
		ids = append(ids, s.ID)
	}
	return ids
}
