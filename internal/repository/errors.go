package repository

import "errors"

// ErrNotFound is returned by lookups when no record has the given id,
// regardless of backing store.
var ErrNotFound = errors.New("record not found")
