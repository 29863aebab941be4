package models

import "fmt"

// Failure codes for a scrape call. Every code renders the same way to the
// caller; they exist for logs.
const (
	ErrCodeTransport       = "TRANSPORT_ERROR"
	ErrCodeTimeout         = "SCRAPE_TIMEOUT"
	ErrCodeHTTPStatus      = "HTTP_STATUS"
	ErrCodeInvalidResponse = "INVALID_RESPONSE"
	ErrCodeScrapeFailed    = "SCRAPE_FAILED"

	// Codes used by the http transport.
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorDetail is the structured error in http transport responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an ErrorDetail for JSON error bodies.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// ScrapeError is the internal error type carrying a failure code.
// Message is the caller-facing text. It implements the error interface and
// supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}
