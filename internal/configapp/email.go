package configapp

import (
	"strconv"

	"github.com/sgaunet/notifymail/internal/validation"
)

// Keys of the email settings, relative to their section.
const (
	KeySenderEmail    = "senderEmail"
	KeyHost           = "host"
	KeyPort           = "port"
	KeySenderPassword = "senderPassword"
	KeySenderName     = "senderName"
)

const msgCannotParsePort = "Cannot parse port into int"

// EmailConfiguration is a fully validated set of sender settings.
// Only Validate produces values of this type for callers.
type EmailConfiguration struct {
	SenderEmail    string
	Host           string
	Port           int
	SenderPassword string
	SenderName     string
}

// Validate reads the five sender settings from src. Every check runs and
// the result lists all missing or invalid fields in field order.
func Validate(src Source) validation.Result[EmailConfiguration] {
	senderEmail := required(src, KeySenderEmail, "Sender Email")
	host := required(src, KeyHost, "Sender Host")
	port := validation.Bind(required(src, KeyPort, "Sender Port"), parsePort)
	senderPassword := required(src, KeySenderPassword, "Sender Password")
	senderName := required(src, KeySenderName, "Sender Name")

	if msgs := validation.Merge(senderEmail, host, port, senderPassword, senderName); len(msgs) > 0 {
		return validation.Invalid[EmailConfiguration](msgs...)
	}

	str := func(r validation.Result[string]) string {
		v, _ := r.Value()
		return v
	}
	p, _ := port.Value()
	return validation.Valid(EmailConfiguration{
		SenderEmail:    str(senderEmail),
		Host:           str(host),
		Port:           p,
		SenderPassword: str(senderPassword),
		SenderName:     str(senderName),
	})
}

// MissingMessage is the message reported for an absent or empty field.
func MissingMessage(field string) string {
	return "Missing " + field + " in Configuration"
}

func required(src Source, key, field string) validation.Result[string] {
	v, ok := src.Lookup(key)
	if !ok || v == "" {
		return validation.Invalid[string](MissingMessage(field))
	}
	return validation.Valid(v)
}

func parsePort(raw string) validation.Result[int] {
	p, err := strconv.Atoi(raw)
	if err != nil {
		return validation.Invalid[int](msgCannotParsePort)
	}
	return validation.Valid(p)
}
