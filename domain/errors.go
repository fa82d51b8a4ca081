package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeDuplicateIdentity  ErrorCode = "DUPLICATE_IDENTITY"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeEmailUnconfirmed   ErrorCode = "EMAIL_UNCONFIRMED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeInvalid            ErrorCode = "INVALID"
	ErrCodeOperationFailed    ErrorCode = "OPERATION_FAILED"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on code so wrapped copies of the sentinels below compare equal.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// OperationFailed collapses an infrastructure error into the generic failure kind. The
// message is what clients see; the cause stays available to logs through Unwrap.
func OperationFailed(message string, err error) *Error {
	return WrapError(ErrCodeOperationFailed, message, err)
}

// Common domain errors.
var (
	ErrDuplicateIdentity  = NewError(ErrCodeDuplicateIdentity, "login or email already exists")
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrPostNotFound       = NewError(ErrCodeNotFound, "post not found")
	ErrCategoryNotFound   = NewError(ErrCodeNotFound, "category not found")
	ErrLikeNotFound       = NewError(ErrCodeNotFound, "like not found")
	ErrDuplicateLike      = NewError(ErrCodeDuplicateIdentity, "post already liked")
	ErrInvalidCredentials = NewError(ErrCodeInvalidCredentials, "invalid login credentials")
	ErrEmailUnconfirmed   = NewError(ErrCodeEmailUnconfirmed, "please confirm your email before logging in")
	ErrInvalidToken       = NewError(ErrCodeInvalidToken, "invalid or expired token")
	ErrUnauthenticated    = NewError(ErrCodeUnauthenticated, "authentication required")
	ErrForbidden          = NewError(ErrCodeForbidden, "forbidden")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the classification of err, or OPERATION_FAILED for anything that is not a
// domain error.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeOperationFailed
}
