package lab

import "errors"

var (
	ErrRequiredFields  = errors.New("usn and test_code required")
	ErrPatientNotFound = errors.New("Patient not found")
	ErrTestNotFound    = errors.New("Lab test not found")
	ErrItemNotFound    = errors.New("Lab order item not found")
)
