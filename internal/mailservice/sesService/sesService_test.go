package sesservice

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sgaunet/notifymail/internal/mailservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput,
	_ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewSESServiceRequiresRegion(t *testing.T) {
	svc, err := NewSESService(aws.Config{})
	assert.ErrorIs(t, err, ErrRegionMissing)
	assert.Nil(t, svc)

	svc, err = NewSESService(aws.Config{Region: "eu-west-3"})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestSend(t *testing.T) {
	fake := &fakeSES{}
	svc := NewWithClient(fake)

	msg := mailservice.NewMessage("sender@example.com", "Sender", "to@example.com", "Subject", "Body")
	require.NoError(t, svc.Send(context.Background(), msg))

	require.NotNil(t, fake.input)
	assert.Equal(t, `"Sender" <sender@example.com>`, aws.ToString(fake.input.FromEmailAddress))
	assert.Equal(t, []string{"to@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "Subject", aws.ToString(fake.input.Content.Simple.Subject.Data))
	assert.Equal(t, "Body", aws.ToString(fake.input.Content.Simple.Body.Text.Data))
	assert.Nil(t, fake.input.Content.Simple.Body.Html)
}

func TestSendError(t *testing.T) {
	cause := errors.New("throttled")
	svc := NewWithClient(&fakeSES{err: cause})

	err := svc.Send(context.Background(), mailservice.NewMessage("a@b.com", "", "c@d.com", "s", "b"))
	assert.ErrorIs(t, err, cause)
}
