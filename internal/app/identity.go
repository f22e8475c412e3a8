package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentityAPI is the part of the STS client used by CallerIdentity.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Identity describes the AWS principal SES mail is sent as.
type Identity struct {
	Account string
	UserID  string
	ARN     string
}

func (i Identity) String() string {
	return fmt.Sprintf("Account: %s\nUserID: %s\nARN: %s\n", i.Account, i.UserID, i.ARN)
}

// CallerIdentity returns the AWS identity used by the SES transport. client
// may be nil, in which case an STS client is built from the AWS
// configuration.
func (a *App) CallerIdentity(ctx context.Context, client CallerIdentityAPI) (Identity, error) {
	if client == nil {
		awscfg, err := a.loadAWSConfig(ctx)
		if err != nil {
			return Identity{}, err
		}
		client = sts.NewFromConfig(awscfg)
	}
	identity, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to get caller identity: %w", err)
	}
	return Identity{
		Account: aws.ToString(identity.Account),
		UserID:  aws.ToString(identity.UserId),
		ARN:     aws.ToString(identity.Arn),
	}, nil
}
