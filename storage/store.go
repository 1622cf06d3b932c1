// Package storage persists generated assessments. PostgresStore is used when
// a database URL is configured, MemoryStore otherwise.
package storage

import "errors"

// ErrNotFound is returned when no assessment exists for an id
var ErrNotFound = errors.New("assessment not found")
