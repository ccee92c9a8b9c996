package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindMalformedInput  ErrorKind = "MalformedInput"
	KindInvalidTarget   ErrorKind = "InvalidTarget"
	KindMissingField    ErrorKind = "MissingField"
	KindEmptyMapping    ErrorKind = "EmptyMapping"
	KindInvalidFileType ErrorKind = "InvalidFileType"
	KindNotFound        ErrorKind = "NotFound"
	KindDuplicateKey    ErrorKind = "DuplicateKey"
	KindUnauthorized    ErrorKind = "Unauthorized"
	KindUpstreamFailure ErrorKind = "UpstreamFailure"
	KindStorageFailure  ErrorKind = "StorageFailure"
)

// AppError is an error with a kind that the HTTP layer maps to a status code.
// Message is safe to show to clients; Err carries the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func WrapError(kind ErrorKind, err error, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors without a kind are storage failures.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorageFailure
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
