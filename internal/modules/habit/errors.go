package habit

import "errors"

var (
	// ErrNotFound also covers habits owned by another user; ownership checks
	// never reveal that a habit exists.
	ErrNotFound         = errors.New("habit not found")
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrInvalidKind      = errors.New("kind must be \"build\" or \"break\"")
	ErrNoFields         = errors.New("no fields to update")
)
