package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies application failures for the transport layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
)

// AppError is a failure with a user-facing message and an optional cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func NewConflictError(msg string, err error) error {
	return &AppError{Kind: KindConflict, Message: msg, Err: err}
}

// NewInternalError wraps a storage or upstream failure.
func NewInternalError(msg string, err error) error {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode maps err onto an HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
