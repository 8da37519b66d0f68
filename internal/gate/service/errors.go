package service

import (
	"errors"
)

// Error taxonomy surfaced to the initiating actor. None of these are retried
// automatically; every one requires fresh input or a state refresh.
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrBlacklisted blocks a submission whose id or plate number matches an
	// active blacklist entry.
	ErrBlacklisted = errors.New("visitor is blacklisted")

	// ErrInvalidState marks a stale or conflicting transition attempt; the
	// caller should refetch the current state.
	ErrInvalidState = errors.New("request is not in the expected status")

	// ErrForbidden marks a role or department mismatch. Reaching it from the
	// UI indicates an authorization bug upstream.
	ErrForbidden = errors.New("operation not permitted")

	// ErrNotFound marks a missing request, log or note.
	ErrNotFound = errors.New("record not found")
)
