package apperrors

import (
	"errors"
	"net/http"
	"strings"
)

// Failure kinds. Match with errors.Is.
var (
	ErrValidation   = errors.New("validation failure")
	ErrStorage      = errors.New("storage failure")
	ErrNotification = errors.New("notification failure")
	ErrNotFound     = errors.New("not found")
	ErrParse        = errors.New("parse failure")
)

// Error carries a failure kind, the operation that failed, a message that is safe
// to show to callers and the underlying cause.
type Error struct {
	Kind   error
	Op     string
	Msg    string
	Fields []string // per-field messages, validation only
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool { return e.Kind == target }

// Validation builds a validation failure from per-field messages.
func Validation(op string, fields ...string) *Error {
	return &Error{Kind: ErrValidation, Op: op, Msg: strings.Join(fields, ", "), Fields: fields}
}

func Storage(op, msg string, err error) *Error {
	return &Error{Kind: ErrStorage, Op: op, Msg: msg, Err: err}
}

func Notification(op, msg string, err error) *Error {
	return &Error{Kind: ErrNotification, Op: op, Msg: msg, Err: err}
}

func NotFound(op, msg string, err error) *Error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: msg, Err: err}
}

func Parse(op, msg string, err error) *Error {
	return &Error{Kind: ErrParse, Op: op, Msg: msg, Err: err}
}

// Message returns the caller-facing message of err without the underlying cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Msg != "" {
			return e.Msg
		}
		return e.Kind.Error()
	}
	return "internal server error"
}

// HTTPStatus maps err to the status code returned by the HTTP adapters.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
