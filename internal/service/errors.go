package service

import "errors"

// Sentinel errors for the matching core. Controllers map these to HTTP codes
// with errors.Is; everything else is a 500.
var (
	// ErrValidation covers malformed input rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound also covers rows that exist but belong to another user, so
	// the API never leaks the existence of other users' records.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks operations against a record already in a state that
	// forbids them (completed session, terminal match).
	ErrConflict = errors.New("conflict")

	// ErrNoQuestions means the active catalog is empty and no session can be
	// generated.
	ErrNoQuestions = errors.New("no active questions available")
)
