package dto

import "time"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Path      string            `json:"path"`
	Method    string            `json:"method"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Errors    map[string]string `json:"errors,omitempty"`
}
