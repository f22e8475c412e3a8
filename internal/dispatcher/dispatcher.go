// Package dispatcher sends one notification email, validating the recipient
// and the sender configuration first and retrying failed transport attempts
// a bounded number of times.
package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/sgaunet/notifymail/internal/address"
	"github.com/sgaunet/notifymail/internal/configapp"
	"github.com/sgaunet/notifymail/internal/logger"
	"github.com/sgaunet/notifymail/internal/mailservice"
	"github.com/sgaunet/notifymail/internal/metrics"
	"github.com/sgaunet/notifymail/internal/validation"
)

// MaxAttempts is the default number of transport attempts per dispatch.
const MaxAttempts = 3

// TransportFactory builds the transport used for one dispatch from the
// validated sender configuration.
type TransportFactory func(cfg configapp.EmailConfiguration) (mailservice.Transport, error)

type Dispatcher struct {
	newTransport TransportFactory
	log          logger.Logger
	subject      string
	body         string
	maxAttempts  int
	retryDelay   time.Duration
	now          func() time.Time
}

type Option func(*Dispatcher)

// WithMessage overrides the subject and body of the notification.
// Empty values keep the defaults.
func WithMessage(subject, body string) Option {
	return func(d *Dispatcher) {
		if subject != "" {
			d.subject = subject
		}
		if body != "" {
			d.body = body
		}
	}
}

// WithMaxAttempts changes the number of transport attempts. Values below 1
// are ignored.
func WithMaxAttempts(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithRetryDelay waits d between two attempts. The default is no delay.
func WithRetryDelay(delay time.Duration) Option {
	return func(d *Dispatcher) {
		if delay > 0 {
			d.retryDelay = delay
		}
	}
}

// WithClock replaces time.Now for the date written in log entries.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func New(newTransport TransportFactory, log logger.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		newTransport: newTransport,
		log:          log,
		subject:      configapp.DefaultSubject,
		body:         configapp.DefaultBody,
		maxAttempts:  MaxAttempts,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SendFrom validates the sender configuration read from src and sends the
// notification to recipient.
func (d *Dispatcher) SendFrom(ctx context.Context, src configapp.Source, recipient string) error {
	return d.Send(ctx, configapp.Validate(src), recipient)
}

// Send delivers the notification to recipient.
//
// The recipient is checked first, then the configuration; either failure is
// returned without contacting the transport. Otherwise the message is built
// once and handed to the transport until it is accepted or the attempts are
// exhausted, in which case a *TransportError holding the last failure is
// returned.
func (d *Dispatcher) Send(ctx context.Context, cfgResult validation.Result[configapp.EmailConfiguration],
	recipient string) error {
	if !address.IsValid(recipient) {
		d.log.Warn("Not a valid email address", "recipient", recipient)
		metrics.Dispatches.WithLabelValues(metrics.OutcomeInvalidRecipient).Inc()
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}

	cfg, ok := cfgResult.Value()
	if !ok {
		d.log.Warn("Invalid email configuration", "recipient", recipient, "errors", cfgResult.Errors())
		metrics.Dispatches.WithLabelValues(metrics.OutcomeInvalidConfiguration).Inc()
		return cfgResult.Err()
	}

	msg := mailservice.NewMessage(cfg.SenderEmail, cfg.SenderName, recipient, d.subject, d.body)

	transport, err := d.newTransport(cfg)
	if err != nil {
		d.log.Error("Cannot create transport", "host", cfg.Host, "port", cfg.Port, "error", err)
		metrics.Dispatches.WithLabelValues(metrics.OutcomeTransportError).Inc()
		return fmt.Errorf("%w: %w", ErrTransportSetup, err)
	}

	return d.retry(ctx, transport, msg)
}

func (d *Dispatcher) retry(ctx context.Context, transport mailservice.Transport, msg *mailservice.Message) error {
	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if err := d.wait(ctx, attempt); err != nil {
			d.log.Warn("Message sending canceled", "recipient", msg.To, "attempt", attempt, "error", err)
			metrics.Dispatches.WithLabelValues(metrics.OutcomeCanceled).Inc()
			return fmt.Errorf("dispatch canceled before attempt %d: %w", attempt, err)
		}

		lastErr = transport.Send(ctx, msg)
		if lastErr == nil {
			d.log.Info("Message sent successfully!", d.logFields(msg, attempt)...)
			metrics.SendAttempts.WithLabelValues(metrics.ResultSuccess).Inc()
			metrics.Dispatches.WithLabelValues(metrics.OutcomeSent).Inc()
			return nil
		}

		d.log.Info("Message failed to send!", append(d.logFields(msg, attempt), "error", lastErr)...)
		metrics.SendAttempts.WithLabelValues(metrics.ResultFailure).Inc()
	}

	metrics.Dispatches.WithLabelValues(metrics.OutcomeTransportError).Inc()
	return &TransportError{Attempts: d.maxAttempts, Err: lastErr}
}

// wait returns ctx's error if the caller gave up, sleeping retryDelay before
// every attempt but the first.
func (d *Dispatcher) wait(ctx context.Context, attempt int) error {
	if attempt == 1 || d.retryDelay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (d *Dispatcher) logFields(msg *mailservice.Message, attempt int) []any {
	return []any{
		"recipient", msg.To,
		"sender", msg.From.Address,
		"subject", msg.Subject,
		"body", msg.Body,
		"date", d.now().Format(time.DateOnly),
		"attempt", attempt,
	}
}
