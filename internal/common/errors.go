// Package common defines shared constants and sentinel errors used across
// docshare components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorUnsupportedType = errors.New("unsupported file type")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Login errors. ErrorEmailNotVerified is the only login failure that is
	// allowed to be distinguishable; absent user and wrong password both
	// collapse into ErrorUnauthorized.
	ErrorEmailNotVerified = errors.New("email not verified")

	// ErrorDenied covers every download-token redemption failure: unknown
	// token, foreign token, expired token. One outcome, so a caller cannot
	// probe which part failed.
	ErrorDenied = errors.New("invalid or expired download token")

	// Collaborator errors.
	ErrorStorage             = errors.New("storage error")
	ErrorUpstreamUnavailable = errors.New("upstream unavailable")
)
