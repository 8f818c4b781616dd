// Package common defines shared constants and sentinel errors used across
// the file manager core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Authentication rejections. State does not advance; the caller re-prompts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidCode        = errors.New("invalid verification code")

	// ErrInvalidStage signals a call that is not legal in the current
	// authentication stage. This is a caller contract breach, not a
	// user-facing rejection.
	ErrInvalidStage = errors.New("operation not allowed in current stage")

	// Auth token errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Input validation failures on mutating calls. No state change.
	ErrEmptyName        = errors.New("empty file name")
	ErrEmptyRecipient   = errors.New("empty recipient")
	ErrInvalidRecipient = errors.New("invalid recipient address")

	// Authorization and sharing errors.
	ErrNotOwner      = errors.New("not the owner")
	ErrGrantNotFound = errors.New("grant not found")
)
