package dispatcher

import (
	"errors"
	"fmt"
)

// Static errors for wrapping.
var (
	ErrInvalidRecipient = errors.New("not valid email address")
	ErrTransportSetup   = errors.New("cannot create transport")
)

// TransportError is returned once every attempt failed. Err is the failure
// of the last attempt.
type TransportError struct {
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("message not sent after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
