// Package apperr defines the error kinds every request can end in. Handlers
// translate them into status codes; services only construct them.
package apperr

import (
	"errors"
	"strings"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrUnavailable      = errors.New("dependency unavailable")
)

// PermissionDeniedMessage is returned for every role or ownership denial.
const PermissionDeniedMessage = "You do not have permission to perform this action."

// FieldError is one violated constraint. Field is empty for request-level errors.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error carries a kind sentinel plus the user-facing message.
type Error struct {
	Kind    error
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Validation builds a validation error from the collected field errors.
func Validation(fields ...FieldError) *Error {
	msg := "Validation failed"
	if len(fields) == 1 && fields[0].Field == "" {
		msg = fields[0].Message
	}
	return &Error{Kind: ErrValidation, Message: msg, Fields: fields}
}

// PermissionDenied is the uniform role/ownership denial.
func PermissionDenied() *Error {
	return &Error{Kind: ErrPermissionDenied, Message: PermissionDeniedMessage}
}

// NotFound reports an unknown id.
func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Duplicate reports a uniqueness violation.
func Duplicate(message string, details ...string) *Error {
	e := &Error{Kind: ErrDuplicate, Message: message}
	for _, d := range details {
		e.Fields = append(e.Fields, FieldError{Message: d})
	}
	return e
}

// AuthFailed reports bad credentials or an unusable token.
func AuthFailed(message string) *Error {
	return &Error{Kind: ErrAuthFailed, Message: message}
}

// Unauthenticated reports a request that carried no credentials.
func Unauthenticated(message string) *Error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}

// Unavailable reports a transient collaborator failure.
func Unavailable(message string, err error) *Error {
	return &Error{Kind: ErrUnavailable, Message: message, Err: err}
}

// As extracts the *Error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
