package intimation

import "errors"

var (
	ErrRequiredFields = errors.New("intimationNumber and usn are required")
	ErrMissingFields  = errors.New("sickLeaveFrom, sickLeaveTo and reason are required")
)
