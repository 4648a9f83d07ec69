package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Tracking specific errors
	ErrAlreadyTracked ErrorCode = "ALREADY_TRACKED"

	// Upstream fetcher errors
	ErrUpstreamNotFound    ErrorCode = "UPSTREAM_NOT_FOUND"
	ErrUpstreamRateLimited ErrorCode = "UPSTREAM_RATE_LIMITED"
	ErrUpstreamTimeout     ErrorCode = "UPSTREAM_TIMEOUT"
	ErrUpstreamFailure     ErrorCode = "UPSTREAM_ERROR"
)

// ErrDuplicateKey is returned by repositories when a unique index rejects a write.
var ErrDuplicateKey = errors.New("duplicate key")

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithContext attaches a key/value that is logged alongside the error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrValidation, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewRevisionNotFoundError(revisionNo int) *DomainError {
	return NewError(ErrNotFound, fmt.Sprintf("Revision %d not found", revisionNo), nil).
		WithContext("revision_no", revisionNo)
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every field problem found in one request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// OrNil returns nil when nothing was collected, so callers can `return errs.OrNil()`.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// AlreadyTrackedError signals that the user already tracks the problem.
// Existing carries the stored record so the caller can return it.
type AlreadyTrackedError struct {
	Existing *UserProblem
}

func (e *AlreadyTrackedError) Error() string {
	return "problem already tracked"
}

// UpstreamReason classifies a failed call to a problem platform.
type UpstreamReason string

const (
	UpstreamNotFound    UpstreamReason = "not_found"
	UpstreamRateLimited UpstreamReason = "rate_limited"
	UpstreamTimeout     UpstreamReason = "timeout"
	UpstreamServerError UpstreamReason = "server_error"
	UpstreamBadResponse UpstreamReason = "bad_response"
)

// UpstreamError is returned by the platform fetchers.
type UpstreamError struct {
	Platform Platform
	Reason   UpstreamReason
	Message  string
	Err      error
}

func NewUpstreamError(platform Platform, reason UpstreamReason, message string, err error) *UpstreamError {
	return &UpstreamError{Platform: platform, Reason: reason, Message: message, Err: err}
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s, %s): %v", e.Message, e.Platform, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s (%s, %s)", e.Message, e.Platform, e.Reason)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Code maps the reason onto the public error code.
func (e *UpstreamError) Code() ErrorCode {
	switch e.Reason {
	case UpstreamNotFound:
		return ErrUpstreamNotFound
	case UpstreamRateLimited:
		return ErrUpstreamRateLimited
	case UpstreamTimeout:
		return ErrUpstreamTimeout
	default:
		return ErrUpstreamFailure
	}
}
