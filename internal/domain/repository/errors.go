package repository

import "errors"

var (
	// ErrNotFound means no row matched. For owner-scoped resources it also
	// covers rows that exist but belong to someone else.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique constraint rejected the write.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means the store refused the arguments before touching storage.
	ErrInvalidInput = errors.New("invalid input")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
