// Package common contains shared constants and sentinel errors used across
// notez components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation = errors.New("validation error")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Encryption errors.
	ErrDecryptionFailed = errors.New("decryption failed")
)
