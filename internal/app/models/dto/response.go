package dto

import "time"

// APIResponse is the standard success envelope. Every response carries at
// least a message; multi-item operations add per-item error strings.
type APIResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAPIResponse creates a success envelope with the given message.
func NewAPIResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}
