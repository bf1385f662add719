// Package apperror defines the errors surfaced to API callers. Every error
// carries the HTTP status and the human readable message written by the
// central formatter as {"success":false,"message":...}.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindDuplicateAccount      Kind = "duplicate_account"
	KindInvalidOrExpiredToken Kind = "invalid_or_expired_token"
	KindMissingCredentials    Kind = "missing_credentials"
	KindAccountNotFound       Kind = "account_not_found"
	KindInvalidCredentials    Kind = "invalid_credentials"
	KindMailDeliveryFailed    Kind = "mail_delivery_failed"
	KindValidation            Kind = "validation_error"
	KindNotFound              Kind = "not_found"
	KindUnauthorized          Kind = "unauthorized"
	KindInternal              Kind = "internal"
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so callers can write
// errors.Is(err, apperror.ErrDuplicateAccount).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrDuplicateAccount      = &Error{Kind: KindDuplicateAccount, Status: http.StatusBadRequest, Message: "User already exists"}
	ErrInvalidOrExpiredToken = &Error{Kind: KindInvalidOrExpiredToken, Status: http.StatusBadRequest, Message: "Invalid token"}
	ErrMissingCredentials    = &Error{Kind: KindMissingCredentials, Status: http.StatusBadRequest, Message: "Please provide all the fields!"}
	ErrAccountNotFound       = &Error{Kind: KindAccountNotFound, Status: http.StatusBadRequest, Message: "User doesn't exists!"}
	ErrInvalidCredentials    = &Error{Kind: KindInvalidCredentials, Status: http.StatusBadRequest, Message: "Please provide the correct information"}
	ErrMailDeliveryFailed    = &Error{Kind: KindMailDeliveryFailed, Status: http.StatusInternalServerError, Message: "Mail delivery failed"}
	ErrValidation            = &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: "Validation failed"}
	ErrNotFound              = &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: "Not found"}
	ErrUnauthorized          = &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: "Please login to continue"}
	ErrInternal              = &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "Internal server error"}
)

func DuplicateAccount(message string) *Error {
	return &Error{Kind: KindDuplicateAccount, Status: http.StatusBadRequest, Message: message}
}

func InvalidOrExpiredToken(cause error) *Error {
	return &Error{Kind: KindInvalidOrExpiredToken, Status: http.StatusBadRequest, Message: "Invalid token", Err: cause}
}

func MissingCredentials() *Error {
	return &Error{Kind: KindMissingCredentials, Status: http.StatusBadRequest, Message: ErrMissingCredentials.Message}
}

func AccountNotFound() *Error {
	return &Error{Kind: KindAccountNotFound, Status: http.StatusBadRequest, Message: ErrAccountNotFound.Message}
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Status: http.StatusBadRequest, Message: ErrInvalidCredentials.Message}
}

// MailDeliveryFailed exposes the transport's message to the caller.
func MailDeliveryFailed(cause error) *Error {
	msg := ErrMailDeliveryFailed.Message
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindMailDeliveryFailed, Status: http.StatusInternalServerError, Message: msg, Err: cause}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: ErrInternal.Message, Err: cause}
}

// From unwraps err into an *Error. Anything that is not already an *Error is
// reported as an internal failure.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
