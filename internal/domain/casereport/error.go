package casereport

import "errors"

var ErrRequiredFields = errors.New("reportNumber and usn are required")
