package prescription

import "errors"

var (
	ErrRequiredFields     = errors.New("USN and diagnosis are required")
	ErrPatientNotFound    = errors.New("Patient not found")
	ErrNotFound           = errors.New("Prescription not found")
	ErrItemRequiredFields = errors.New("Prescription and medication required")
	ErrBadMedications     = errors.New("medications must be an array")
)
