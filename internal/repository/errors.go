package repository

import "errors"

// ErrNotFound is returned when a requested record is not stored.
// It abstracts the underlying storage from the callers.
var ErrNotFound = errors.New("record not found")
