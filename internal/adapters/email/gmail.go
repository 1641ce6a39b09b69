package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"eventconnect/internal/domain"
)

const (
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	defaultSendURL  = "https://gmail.googleapis.com/gmail/v1/users/me/messages/send"
)

// GmailConfig holds OAuth2 credentials for sending through a Gmail mailbox.
type GmailConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string // override for tests
	SendURL      string // override for tests
}

type gmailMailer struct {
	client      *http.Client
	cfg         GmailConfig
	fromAddress string
	fromName    string
	accessToken string
}

// Authorize exchanges the refresh token for a fresh access token.
// Called once per dispatch; the token is not reused across dispatches.
func (g *gmailMailer) Authorize(ctx context.Context) error {
	form := url.Values{
		"client_id":     {g.cfg.ClientID},
		"client_secret": {g.cfg.ClientSecret},
		"refresh_token": {g.cfg.RefreshToken},
		"grant_type":    {"refresh_token"},
	}
	tokenURL := g.cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to refresh access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if data.AccessToken == "" {
		return fmt.Errorf("token endpoint returned an empty access token")
	}
	g.accessToken = data.AccessToken
	return nil
}

func (g *gmailMailer) Send(ctx context.Context, msg *domain.OutboundEmail) (string, error) {
	if g.accessToken == "" {
		return "", fmt.Errorf("mailer is not authorized; call Authorize first")
	}
	if msg.From == "" {
		msg.From = formatAddress(g.fromName, g.fromAddress)
	}
	raw, err := buildMIME(msg)
	if err != nil {
		return "", fmt.Errorf("failed to build message: %w", err)
	}
	payload, err := json.Marshal(map[string]string{
		"raw": base64.URLEncoding.EncodeToString(raw),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode send request: %w", err)
	}
	sendURL := g.cfg.SendURL
	if sendURL == "" {
		sendURL = defaultSendURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("send endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var data struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode send response: %w", err)
	}
	return data.ID, nil
}

func formatAddress(name, address string) string {
	if name != "" {
		return fmt.Sprintf("%s <%s>", name, address)
	}
	return address
}
