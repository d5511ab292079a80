package models

import "errors"

// ============================================================
// Error taxonomy
// ============================================================

var (
	// ErrValidation means a request is missing a required field.
	ErrValidation = errors.New("map: missing required field")

	// ErrNotFound means the referenced floor, vertex or edge does not exist.
	ErrNotFound = errors.New("map: not found")

	// ErrInvalidReference means an edge endpoint lies outside the current floor.
	ErrInvalidReference = errors.New("map: edge references vertex outside floor")

	// ErrDuplicateEdge means a connection between the endpoints already
	// exists in either direction.
	ErrDuplicateEdge = errors.New("map: connection already exists")
)
