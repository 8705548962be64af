package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task does not exist or is owned by
	// a different user. The two cases are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("task not found")
)
