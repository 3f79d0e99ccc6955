// Package apperr defines application errors that map onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Exception codes sent in 409 responses
const (
	CodeAlreadyExist        = "already_exist"
	CodeAmountLimitExceeded = "amount_limit_exceeded"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnauthorized  = errors.New("authentication credentials were not provided or are invalid")
)

// PermissionDenied is returned when an operation is forbidden for the caller
type PermissionDenied struct {
	Detail string
}

func (e *PermissionDenied) Error() string { return e.Detail }

// Forbidden creates a PermissionDenied error
func Forbidden(detail string) error {
	return &PermissionDenied{Detail: detail}
}

// AmountLimitExceeded is returned when adding an object would pass a count limit
type AmountLimitExceeded struct {
	Limit  int
	Detail string
}

func (e *AmountLimitExceeded) Error() string {
	return fmt.Sprintf("%s (%d)", e.Detail, e.Limit)
}

// LimitExceeded creates an AmountLimitExceeded error
func LimitExceeded(limit int, detail string) error {
	return &AmountLimitExceeded{Limit: limit, Detail: detail}
}

// ValidationError collects messages per field
type ValidationError struct {
	Fields map[string][]string
}

// Invalid creates a validation error for one field
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// OrNil returns nil when no field failed
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// HTTPStatus returns the response status for err
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		denied     *PermissionDenied
		limit      *AmountLimitExceeded
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &denied):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &limit), errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Body returns the JSON body for err
func Body(err error) map[string]any {
	var (
		validation *ValidationError
		denied     *PermissionDenied
		limit      *AmountLimitExceeded
	)
	switch {
	case errors.As(err, &validation):
		body := make(map[string]any, len(validation.Fields))
		for k, v := range validation.Fields {
			body[k] = v
		}
		return body
	case errors.Is(err, ErrUnauthorized):
		return map[string]any{"detail": ErrUnauthorized.Error()}
	case errors.As(err, &denied):
		return map[string]any{"detail": denied.Detail}
	case errors.Is(err, ErrNotFound):
		return map[string]any{"detail": "Not found."}
	case errors.As(err, &limit):
		return map[string]any{
			"exception_code": CodeAmountLimitExceeded,
			"detail":         limit.Detail,
			"amount_limit":   limit.Limit,
		}
	case errors.Is(err, ErrAlreadyExists):
		return map[string]any{
			"exception_code": CodeAlreadyExist,
			"detail":         "This object already exists.",
		}
	default:
		return map[string]any{"detail": "A server error occurred."}
	}
}
