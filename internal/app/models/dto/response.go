package dto

import "time"

// APIResponse represents the standard envelope for resource responses
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty" example:"Project registered successfully"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// MessageResponse carries a bare message. The student password route uses it
// for both success and failure.
type MessageResponse struct {
	Message string `json:"message" example:"Password updated successfully"`
}

// TokenResponse is returned by the login route
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// StageUpdateResponse is returned after a review stage update
type StageUpdateResponse struct {
	UpdateData *StageRecordResponse `json:"updateData"`
	Message    string               `json:"message" example:"review model updated successfully"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}
