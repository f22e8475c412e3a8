// Package smtpservice provides SMTP email service implementation.
package smtpservice

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/sgaunet/notifymail/internal/mailservice"
	"github.com/wneessen/go-mail"
)

const (
	maxPort         = 65535
	implicitTLSPort = 465
	dialTimeout     = 10 * time.Second
)

type smtpService struct {
	host        string
	port        int
	login       string
	password    string
	tlsConfig   *tls.Config
	implicitTLS bool
}

// Option customizes the SMTP service.
type Option func(*smtpService)

// WithTLSConfig replaces the TLS configuration used to verify the server.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *smtpService) {
		if cfg != nil {
			s.tlsConfig = cfg
		}
	}
}

// NewSMTPService creates a new SMTP service instance. Every session is
// encrypted and authenticated with login/password: STARTTLS is mandatory
// (port 465 uses implicit TLS) and the server must offer AUTH PLAIN, or
// Send fails before any message data is written.
//
//nolint:ireturn // Factory function intentionally returns interface for dependency injection
func NewSMTPService(host string, port int, login string, password string,
	opts ...Option) (mailservice.Transport, error) {
	if err := isSMTPConfigured(host, port, login, password); err != nil {
		return nil, err
	}
	s := &smtpService{
		host:     host,
		port:     port,
		login:    login,
		password: password,
		tlsConfig: &tls.Config{
			InsecureSkipVerify: false,
			ServerName:         host,
			MinVersion:         tls.VersionTLS12,
		},
		implicitTLS: port == implicitTLSPort,
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := s.newClient(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *smtpService) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithPort(s.port),
		mail.WithTLSConfig(s.tlsConfig),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.login),
		mail.WithPassword(s.password),
		mail.WithTimeout(dialTimeout),
	}
	if s.implicitTLS {
		opts = append(opts, mail.WithSSL())
	}
	c, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return c, nil
}

func (s *smtpService) Send(ctx context.Context, msg *mailservice.Message) error {
	m, err := buildEmailMessage(msg)
	if err != nil {
		return err
	}
	c, err := s.newClient()
	if err != nil {
		return err
	}

	// go-mail only honours ctx while dialing; a stalled session is cut by
	// the select below.
	done := make(chan error, 1)
	go func() {
		done <- c.DialAndSendWithContext(ctx, m)
	}()

	select {
	case err := <-done:
		if err != nil && ctx.Err() != nil {
			return fmt.Errorf("smtp send interrupted: %w", ctx.Err())
		}
		if err != nil {
			return fmt.Errorf("failed to send email via smtp: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send interrupted: %w", ctx.Err())
	}
}

func buildEmailMessage(msg *mailservice.Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(msg.From.Name, msg.From.Address); err != nil {
		return nil, fmt.Errorf("failed to set sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("failed to set recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

func isSMTPConfigured(host string, port int, login string, password string) error {
	if login == "" || password == "" || host == "" {
		return fmt.Errorf("%w", ErrSMTPConfigMissing)
	}
	if port <= 0 || port > maxPort {
		return fmt.Errorf("%w: %d", ErrSMTPPort, port)
	}
	return nil
}
