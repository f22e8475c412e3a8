package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/sgaunet/notifymail/internal/configapp"
	"github.com/sgaunet/notifymail/internal/dispatcher"
	"github.com/sgaunet/notifymail/internal/logger"
	"github.com/sgaunet/notifymail/internal/mailservice"
	mailgunservice "github.com/sgaunet/notifymail/internal/mailservice/mailgunService"
	sesservice "github.com/sgaunet/notifymail/internal/mailservice/sesService"
	smtpservice "github.com/sgaunet/notifymail/internal/mailservice/smtpService"
	"github.com/sgaunet/notifymail/internal/validation"
)

type App struct {
	cfg        configapp.AppConfig
	source     configapp.Source
	appLog     logger.Logger
	awscfg     aws.Config
	dispatcher *dispatcher.Dispatcher
	transport  mailservice.Transport
}

type Option func(*App)

// WithSource replaces the email settings read from the configuration file
// and the environment.
func WithSource(src configapp.Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithTransport bypasses the configured transport.
func WithTransport(tr mailservice.Transport) Option {
	return func(a *App) {
		a.transport = tr
	}
}

// WithAWSConfig sets the AWS configuration instead of loading the default
// one when the SES transport is selected.
func WithAWSConfig(awscfg aws.Config) Option {
	return func(a *App) {
		a.awscfg = awscfg
	}
}

func New(ctx context.Context, cfg configapp.AppConfig, log logger.Logger, opts ...Option) (*App, error) {
	cfg.SetDefaults()
	a := &App{
		cfg:    cfg,
		source: cfg.EmailSource(),
		appLog: log,
	}
	for _, opt := range opts {
		opt(a)
	}

	retryDelay, err := cfg.RetryDelayDuration()
	if err != nil {
		return nil, err
	}

	factory, err := a.transportFactory(ctx)
	if err != nil {
		return nil, err
	}

	a.dispatcher = dispatcher.New(factory, log,
		dispatcher.WithMessage(cfg.MailConfig.Subject, cfg.MailConfig.Body),
		dispatcher.WithMaxAttempts(cfg.MaxAttempts),
		dispatcher.WithRetryDelay(retryDelay),
	)
	return a, nil
}

// Notify sends the notification to recipient. The email settings are
// validated again on every call.
func (a *App) Notify(ctx context.Context, recipient string) error {
	a.appLog.Debug("notify", "recipient", recipient, "transport", a.cfg.Transport)
	return a.dispatcher.SendFrom(ctx, a.source, recipient)
}

// CheckConfiguration validates the email settings without sending anything.
func (a *App) CheckConfiguration() validation.Result[configapp.EmailConfiguration] {
	return configapp.Validate(a.source)
}

func (a *App) Config() configapp.AppConfig {
	return a.cfg
}

func (a *App) transportFactory(ctx context.Context) (dispatcher.TransportFactory, error) {
	if a.transport != nil {
		tr := a.transport
		return func(configapp.EmailConfiguration) (mailservice.Transport, error) {
			return tr, nil
		}, nil
	}

	switch a.cfg.Transport {
	case configapp.TransportSMTP:
		return SMTPTransport, nil
	case configapp.TransportMailgun:
		if !a.cfg.IsMailGunConfigured() {
			return nil, fmt.Errorf("%w", mailgunservice.ErrServiceNotConfigured)
		}
		mg := a.cfg.MailgunConfig
		return func(configapp.EmailConfiguration) (mailservice.Transport, error) {
			return mailgunservice.NewMailgunService(mg.Domain, mg.ApiKey, mg.APIBase)
		}, nil
	case configapp.TransportSES:
		awscfg, err := a.loadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		return func(configapp.EmailConfiguration) (mailservice.Transport, error) {
			return sesservice.NewSESService(awscfg)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, a.cfg.Transport)
	}
}

// SMTPTransport connects to the configured host and port over mandatory
// TLS, authenticating as the sender.
//
//nolint:ireturn // TransportFactory signature
func SMTPTransport(cfg configapp.EmailConfiguration) (mailservice.Transport, error) {
	return smtpservice.NewSMTPService(cfg.Host, cfg.Port, cfg.SenderEmail, cfg.SenderPassword)
}

func (a *App) loadAWSConfig(ctx context.Context) (aws.Config, error) {
	if a.awscfg.Region != "" {
		return a.awscfg, nil
	}
	if !a.cfg.IsSESConfigured() {
		return aws.Config{}, fmt.Errorf("%w", sesservice.ErrRegionMissing)
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(a.cfg.SESConfig.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	a.awscfg = cfg
	return cfg, nil
}
