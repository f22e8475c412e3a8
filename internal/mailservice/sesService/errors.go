package sesservice

import "errors"

// Static errors for wrapping.
var (
	ErrRegionMissing = errors.New("ses region is mandatory")
)
