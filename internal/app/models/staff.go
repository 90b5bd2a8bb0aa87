package models

import "time"

// Staff defines a guide (supervising staff member) based on the 'staffs' table
type Staff struct {
	ID              string    `json:"id" db:"id"`
	FullName        string    `json:"fullName" db:"full_name"`
	Email           string    `json:"email" db:"email"`
	Password        string    `json:"-" db:"password"`
	ProfileImg      []byte    `json:"-" db:"profile_img"`      // Raw image bytes
	ProfileImgType  string    `json:"-" db:"profile_img_type"` // Sniffed MIME type of ProfileImg
	Specializations []string  `json:"specializations" db:"specializations"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	Projects []*Project `json:"projects,omitempty"` // Relation, no db tag
}
