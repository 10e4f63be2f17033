package appointment

import "errors"

var (
	ErrRequiredFields  = errors.New("usn, starts_at, ends_at required")
	ErrPatientNotFound = errors.New("Patient not found")
	ErrNotFound        = errors.New("Appointment not found")
)
