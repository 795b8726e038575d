package errors

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "TODO_NOT_FOUND"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Detailed error information (optional)
}

// ErrorResponse defines the structure for error responses on the wire
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
}
