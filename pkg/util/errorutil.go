package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
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

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewUnauthenticated signals a missing or unusable session identity. Callers
// should send the client to login; it is never conflated with Forbidden.
func NewUnauthenticated(message string) error {
	return NewDomainError("UNAUTHENTICATED", message, http.StatusUnauthorized, nil)
}

// NewForbidden signals an authenticated caller lacking the required role.
func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewNotFound covers both a genuinely absent record and one outside the
// caller's visibility scope; the two causes are indistinguishable outward.
func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

// NewInvalidState rejects a mutation disallowed by the issue's current status.
func NewInvalidState(message string) error {
	return NewDomainError("INVALID_STATE", message, http.StatusUnprocessableEntity, nil)
}

// NewInvalidStatus rejects a status value outside the allowed token set.
func NewInvalidStatus(value string) error {
	return NewDomainError("INVALID_STATUS", "invalid status", http.StatusUnprocessableEntity,
		map[string]any{"status": value})
}

// NewInvalidRole rejects a role value outside the allowed set.
func NewInvalidRole(value string) error {
	return NewDomainError("INVALID_ROLE", "invalid role", http.StatusUnprocessableEntity,
		map[string]any{"role": value})
}

// NewEmptyContent rejects a blank or whitespace-only comment body.
func NewEmptyContent() error {
	return NewDomainError("EMPTY_CONTENT", "comment cannot be empty", http.StatusBadRequest, nil)
}

func NewDuplicateEmail(email string) error {
	return NewDomainError("DUPLICATE_EMAIL", "email is already registered", http.StatusConflict,
		map[string]any{"email": email})
}

// NewStoreError wraps a persistence failure with a generic outward message.
func NewStoreError(err error) error {
	return &DomainError{
		Code:       "STORE_ERROR",
		Message:    "storage failure",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewStoreError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "STORE_ERROR",
		Message:    "storage failure",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
