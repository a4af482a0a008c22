package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph operations. Handlers map these to HTTP
// statuses; nothing in the graph package ever panics on bad input.
var (
	// ErrGraphNotReady distinguishes "graph not built yet" from a
	// genuinely empty traversal result.
	ErrGraphNotReady = errors.New("schema graph not ready")
	ErrTableNotFound = errors.New("table not found")
	ErrNoPath        = errors.New("no path found")
)

// Sentinel errors for request validation.
var (
	ErrMissingStartTable = errors.New("start_table is required")
	ErrMissingTables     = errors.New("at least one table is required")
	ErrMissingTerm       = errors.New("term is required")
	ErrMissingTable      = errors.New("table is required")
)

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
