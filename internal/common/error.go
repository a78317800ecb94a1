// Package common defines shared constants and sentinel errors used across
// client and server layers of UserKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrorAlreadyExists     = errors.New("record already exists")
	ErrorDuplicatePublicID = errors.New("duplicate public id")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (missing or malformed input).
	ErrorValidation = errors.New("validation failed")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// Kind is the coarse category of a failure, used by transports to pick a
// status code and by clients to react without inspecting messages.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindAlreadyExists
	KindValidation
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindValidation:
		return "ValidationFailed"
	case KindUnauthorized:
		return "AuthenticationFailed"
	default:
		return "Unexpected"
	}
}

// KindOf reports the Kind of err. Errors that wrap none of the sentinels
// above are KindUnexpected.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnexpected
	case errors.Is(err, ErrorUnauthorized), errors.Is(err, ErrTokenExpired):
		return KindUnauthorized
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrorAlreadyExists):
		return KindAlreadyExists
	case errors.Is(err, ErrorValidation):
		return KindValidation
	default:
		return KindUnexpected
	}
}
