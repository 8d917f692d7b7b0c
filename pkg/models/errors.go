package models

import "github.com/pkg/errors"

// Error kinds surfaced by the engine. Callers classify failures with
// errors.Is; the transport layer owns translating them into user-facing
// messages. None of these are retried internally.
var (
	// ErrNotFound means a referenced language or word does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidSessionState means a session operation was called in a
	// state that forbids it; the session must be restarted.
	ErrInvalidSessionState = errors.New("invalid session state")
	// ErrStoreUnavailable wraps transient storage failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrSettingsInvalid means user settings failed validation.
	ErrSettingsInvalid = errors.New("settings invalid")
)
