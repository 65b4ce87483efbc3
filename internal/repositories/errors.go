package repositories

import "errors"

// Sentinel errors shared by all repositories. Handlers translate these into
// HTTP status codes with errors.Is.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrValidation    = errors.New("validation failed")
)
