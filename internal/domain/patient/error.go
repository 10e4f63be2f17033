package patient

import "errors"

// Тексты ошибок уходят клиенту как есть.
var (
	ErrNotFound       = errors.New("Patient not found")
	ErrRequiredFields = errors.New("Required fields missing")
	ErrAllFields      = errors.New("All fields required for update")
	ErrAgeNotNumber   = errors.New("Age must be a number")
	ErrEmptyQuery     = errors.New("Search query required")
	ErrUSNRequired    = errors.New("USN required")
)
