// Package faults holds the error kinds shared by every domain package.
// Domain errors wrap one of these so edges (REST, client, MCP) can classify
// a failure with errors.Is without knowing every domain sentinel.
package faults

import "errors"

var (
	// ErrValidation marks missing or malformed input. The action is blocked
	// before anything is written.
	ErrValidation = errors.New("validation error")
	// ErrInvalidState marks an action against an entity whose linkage or
	// lifecycle state does not permit it.
	ErrInvalidState = errors.New("invalid state")
	// ErrNotFound marks a reference to an entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNetwork marks a failed round-trip to the backend: transport error
	// or non-2xx response. Never retried.
	ErrNetwork = errors.New("network error")
)
