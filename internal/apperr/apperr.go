// Package apperr defines the error taxonomy shared by services and HTTP handlers.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindAuthentication:
		return "authentication_error"
	case KindAuthorization:
		return "authorization_error"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream_error"
	default:
		return "internal_error"
	}
}

// Error is a classified application error. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors carrying the same code and message, so a copy of a
// sentinel compares equal but two different validation failures do not.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code && e.Message == t.Message
}

var (
	ErrInvalidCredentials = &Error{Kind: KindAuthentication, Code: "invalid_credentials", Message: "Incorrect email or password"}
	ErrMissingToken       = &Error{Kind: KindAuthentication, Code: "missing_token", Message: "Not authenticated"}
	ErrTokenExpired       = &Error{Kind: KindAuthentication, Code: "token_expired", Message: "Token has expired"}
	ErrTokenInvalid       = &Error{Kind: KindAuthentication, Code: "token_invalid", Message: "Could not validate credentials"}
	ErrForbidden          = &Error{Kind: KindAuthorization, Code: "forbidden", Message: "Not enough permissions"}
	ErrEmailTaken         = &Error{Kind: KindConflict, Code: "email_taken", Message: "Email already registered"}

	ErrInvalidStateTransition = &Error{Kind: KindValidation, Code: "invalid_state_transition", Message: "Order cannot be cancelled in current status"}
	ErrTransactionNotFound    = &Error{Kind: KindNotFound, Code: "transaction_not_found", Message: "Payment transaction not found"}
	ErrProviderDisabled       = &Error{Kind: KindUpstream, Code: "payment_provider_disabled", Message: "Payment provider is not configured"}
)

// Validation returns a ValidationError with the given message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Code: "validation_error", Message: msg}
}

// NotFound returns a NotFound error for the named resource, e.g. "Order".
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Code: "not_found", Message: resource + " not found"}
}

// PaymentProvider wraps a failure reported by the external payment provider.
func PaymentProvider(err error) *Error {
	return &Error{Kind: KindUpstream, Code: "payment_provider_error", Message: "Payment provider request failed", Err: err}
}

// Upstream wraps a storage or other external dependency failure.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Code: "upstream_error", Message: msg, Err: err}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal_error", Message: "Internal server error", Err: err}
}

// KindOf reports the kind of err, KindInternal if it is unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
