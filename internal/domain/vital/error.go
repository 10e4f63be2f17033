package vital

import "errors"

var (
	ErrMissingFields   = errors.New("Required vitals fields missing")
	ErrInvalidNumeric  = errors.New("Invalid numeric values")
	ErrPatientNotFound = errors.New("Patient not found")
	ErrNotFound        = errors.New("vital record not found")
)
