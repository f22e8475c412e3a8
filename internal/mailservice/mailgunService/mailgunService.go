package mailgunservice

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/sgaunet/notifymail/internal/mailservice"
)

type mailgunService struct {
	mg *mailgun.MailgunImpl
}

// NewMailgunService creates a new Mailgun service instance. apiBase is
// optional and selects another API endpoint, such as mailgun.APIBaseEU.
//
//nolint:ireturn // Factory function intentionally returns interface for dependency injection
func NewMailgunService(domain string, privateAPIKey string, apiBase string) (mailservice.Transport, error) {
	if !isMailGunConfigured(domain, privateAPIKey) {
		return nil, fmt.Errorf("%w", ErrServiceNotConfigured)
	}
	mg := mailgun.NewMailgun(domain, privateAPIKey)
	if apiBase != "" {
		mg.SetAPIBase(apiBase)
	}
	return &mailgunService{mg: mg}, nil
}

func (m *mailgunService) Send(ctx context.Context, msg *mailservice.Message) error {
	message := m.mg.NewMessage(msg.From.String(), msg.Subject, msg.Body, msg.To)
	_, _, err := m.mg.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via mailgun: %w", err)
	}
	return nil
}

func isMailGunConfigured(domain string, apikey string) bool {
	if domain == "" || apikey == "" {
		return false
	}
	return true
}
