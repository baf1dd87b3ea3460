package repository

import "errors"

// Sentinel errors shared by all repository implementations. Services map
// these onto the client-facing error taxonomy.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
