package error

import "errors"

// AI suggestion domain errors.
var (
	// ErrAIServiceUnavailable is returned when no AI provider is configured.
	ErrAIServiceUnavailable = errors.New("ai service unavailable")

	// ErrAIRateLimited is returned when the provider rejects the request for quota reasons.
	ErrAIRateLimited = errors.New("ai service rate limited")

	// ErrAIProviderFailure is returned for any other provider failure.
	ErrAIProviderFailure = errors.New("ai provider failure")

	// ErrEmptyDescription is returned when a suggestion is requested without a description.
	ErrEmptyDescription = errors.New("description is required")
)

// AIErrorCode defines error codes for AI errors.
// Format: AI-XXYYYY where XX is category and YYYY is specific error.
type AIErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyDescription AIErrorCode = "AI-010001"

	// Provider errors (02XXXX)
	ErrCodeAIServiceUnavailable AIErrorCode = "AI-020001"
	ErrCodeAIRateLimited        AIErrorCode = "AI-020002"
	ErrCodeAITimeout            AIErrorCode = "AI-020003"
	ErrCodeAIProviderFailure    AIErrorCode = "AI-020004"
)

// AIError represents an AI error with code and message.
type AIError struct {
	Code    AIErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AIError) Unwrap() error {
	return e.Err
}

// NewAIError creates a new AIError with the given code and message.
func NewAIError(code AIErrorCode, message string, err error) *AIError {
	return &AIError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
