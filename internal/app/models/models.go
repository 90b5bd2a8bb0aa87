package models

// RoleType defines the role carried in a session token
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleStaff   RoleType = "staff"
	RoleStudent RoleType = "student"
)

// ParseRole converts the :role path segment of the login route into a RoleType.
func ParseRole(s string) (RoleType, bool) {
	switch RoleType(s) {
	case RoleAdmin, RoleStaff, RoleStudent:
		return RoleType(s), true
	}
	return "", false
}
