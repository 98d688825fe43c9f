package store

import "errors"

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint is violated.
var ErrConflict = errors.New("conflict")

// ErrInvalidReference is returned when a foreign key points at a missing row.
var ErrInvalidReference = errors.New("invalid reference")

// ErrInvalidInput is returned for values the schema rejects.
var ErrInvalidInput = errors.New("invalid input")
