package store

import "errors"

// ErrNotFound is returned by internal lookups for absent keys.
var ErrNotFound = errors.New("key not found")
