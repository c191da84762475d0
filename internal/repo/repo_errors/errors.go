package repo_errors

import "errors"

var (
	// ErrNotFound: the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate: a uniqueness constraint was violated, e.g. a second
	// bid for the same (gig, freelancer) pair.
	ErrDuplicate = errors.New("record already exists")

	// ErrConflict: a conditional write matched zero rows because the
	// record's status changed under the caller.
	ErrConflict = errors.New("record state changed")
)
