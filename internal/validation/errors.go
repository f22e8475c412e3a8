package validation

import "errors"

// Static errors for wrapping.
var (
	ErrNoMessage = errors.New("validation failed without message")
)
