// Package common defines shared sentinel errors used across the Bookkeeper
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrorUnauthorized is the single authentication error the service
	// exposes. Unknown email, wrong password and a missing session all map
	// to this exact value so no detail about account existence leaks.
	ErrorUnauthorized = errors.New("could not authenticate user")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
