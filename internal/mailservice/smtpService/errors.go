package smtpservice

import "errors"

// Static errors for wrapping.
var (
	ErrSMTPConfigMissing = errors.New("smtp login,password and server are mandatory")
	ErrSMTPPort          = errors.New("smtp port out of range")
)
