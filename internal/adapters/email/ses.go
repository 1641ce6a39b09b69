package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventconnect/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type sesMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

// Authorize is a no-op for SES; requests are signed with static credentials.
func (s *sesMailer) Authorize(ctx context.Context) error {
	return nil
}

// Send delivers the message via SendRawEmail so attachments are supported.
func (s *sesMailer) Send(ctx context.Context, msg *domain.OutboundEmail) (string, error) {
	if msg.From == "" {
		msg.From = formatAddress(s.fromName, s.fromAddress)
	}
	raw, err := buildMIME(msg)
	if err != nil {
		return "", fmt.Errorf("failed to build message: %w", err)
	}
	out, err := s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: raw},
		Source:       aws.String(msg.From),
		Destinations: []string{msg.To},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email via SES: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}
