package dto

// ErrorResponse is the single error envelope used by every endpoint.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse wraps plain confirmation messages.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
