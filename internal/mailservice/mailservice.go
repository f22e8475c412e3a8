// Package mailservice provides the outbound message and the transport
// interface implemented by the SMTP, Mailgun and SES services.
package mailservice

import (
	"context"
	"net/mail"
)

// Transport delivers one composed message.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}

// Message is a plain-text single-recipient email.
type Message struct {
	From    mail.Address
	To      string
	Subject string
	Body    string
}

// NewMessage builds the message sent from the named sender to recipient.
func NewMessage(senderEmail, senderName, recipient, subject, body string) *Message {
	return &Message{
		From:    mail.Address{Name: senderName, Address: senderEmail},
		To:      recipient,
		Subject: subject,
		Body:    body,
	}
}
