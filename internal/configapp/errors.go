package configapp

import "errors"

// Static errors for wrapping.
var (
	ErrReadConfig  = errors.New("cannot read configuration file")
	ErrParseConfig = errors.New("cannot parse configuration file")
	ErrRetryDelay  = errors.New("invalid retrydelay")
)
