// Package app wires configuration, transports and the dispatcher together
// for the command line and HTTP entry points.
package app

import "errors"

// Static errors for wrapping.
var (
	ErrUnknownTransport = errors.New("unknown transport")
	ErrCronSpec         = errors.New("invalid cron specification")
)
