package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure taxonomy for the extraction-service client. None of these are
// fatal; the caller stays interactive and may resubmit.
var (
	ErrServiceUnavailable = errors.New("extraction service unavailable")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrNetworkFailure     = errors.New("network failure")
	ErrEmptyArtifact      = errors.New("artifact download returned an empty body")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("resource not found")
)

// HTTPError is a non-2xx response with its status and (truncated) body.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.Status)
	}
	return fmt.Sprintf("http status %d: %s", e.Status, e.Body)
}

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsRetryableDownload reports whether a download failure is in the retry
// budget's scope: not-found responses and network-class transport errors.
// Empty artifacts and other HTTP statuses are terminal immediately.
func IsRetryableDownload(err error) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status == http.StatusNotFound
	}
	return errors.Is(err, ErrNetworkFailure)
}
