// Package sesservice provides an AWS SES (v2 API) email service
// implementation.
package sesservice

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sgaunet/notifymail/internal/mailservice"
)

const charsetUTF8 = "UTF-8"

// SendEmailAPI is the part of the SES client used by the service.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesService struct {
	client SendEmailAPI
}

// NewSESService creates an SES service from an AWS configuration, usually
// obtained with config.LoadDefaultConfig.
//
//nolint:ireturn // Factory function intentionally returns interface for dependency injection
func NewSESService(cfg aws.Config) (mailservice.Transport, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w", ErrRegionMissing)
	}
	return NewWithClient(sesv2.NewFromConfig(cfg)), nil
}

// NewWithClient creates an SES service around an existing client.
//
//nolint:ireturn // Factory function intentionally returns interface for dependency injection
func NewWithClient(client SendEmailAPI) mailservice.Transport {
	return &sesService{client: client}
}

func (s *sesService) Send(ctx context.Context, msg *mailservice.Message) error {
	_, err := s.client.SendEmail(ctx, buildInput(msg))
	if err != nil {
		return fmt.Errorf("failed to send email via ses: %w", err)
	}
	return nil
}

func buildInput(msg *mailservice.Message) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From.String()),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String(charsetUTF8)},
				},
			},
		},
	}
}
