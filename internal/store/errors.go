package store

import "errors"

// Sentinel errors shared by the persistence layers. Handlers translate
// these into HTTP statuses at the request boundary.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrAlreadyApplied = errors.New("already applied to this job")
)
