package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"eventconnect/internal/domain"
)

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string // "gmail", "ses", "noop"
	FromAddress string
	FromName    string
	Gmail       GmailConfig
	SES         SESConfig
	Timeout     time.Duration
}

// NewMailer creates a mailer from config. Provider "gmail" sends through the
// Gmail API with an OAuth2 refresh token; "ses" uses AWS SES SendRawEmail;
// "noop" or unknown logs instead of sending.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case "gmail":
		if config.Gmail.ClientID == "" || config.Gmail.ClientSecret == "" || config.Gmail.RefreshToken == "" {
			return nil, fmt.Errorf("gmail mailer requires client id, client secret and refresh token")
		}
		return &gmailMailer{
			client:      &http.Client{Timeout: config.Timeout},
			cfg:         config.Gmail,
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
		}, nil
	case "ses":
		awsCfg := aws.Config{
			Region: config.SES.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.SES.AccessKeyID,
					config.SES.SecretAccessKey,
					"",
				),
			),
		}
		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
		}, nil
	case "noop":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Authorize(ctx context.Context) error {
	return nil
}

func (n *noopMailer) Send(ctx context.Context, msg *domain.OutboundEmail) (string, error) {
	n.logger.Info("email would be sent (noop)", "to", msg.To, "subject", msg.Subject, "attachments", len(msg.Attachments))
	return fmt.Sprintf("noop-%d", time.Now().UnixNano()), nil
}
