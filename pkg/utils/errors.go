package utils

// Error codes used in API responses
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInsufficientHistory = "INSUFFICIENT_HISTORY"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeUnavailable         = "SERVICE_UNAVAILABLE"
)

// AppError is the error payload returned to API clients
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func NewAppError(code, message string, details ...string) *AppError {
	err := &AppError{Code: code, Message: message}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
