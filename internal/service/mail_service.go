package service

import (
	"context"
	"fmt"

	"github.com/codewithlokesh/intrvu-backend/internal/config"
	"github.com/go-resty/resty/v2"
)

const resendEndpoint = "https://api.resend.com/emails"

// Mailer sends transactional email.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, verifyCode string) error
}

// ResendService sends mail through the Resend HTTP API.
type ResendService struct {
	APIKey string
	From   string
	client *resty.Client
}

var _ Mailer = (*ResendService)(nil)

func NewResendService() *ResendService {
	cfg := config.LoadResendConfig()
	return &ResendService{
		APIKey: cfg.APIKey,
		From:   cfg.From,
		client: resty.New(),
	}
}

func (s *ResendService) SendVerificationEmail(ctx context.Context, to, verifyCode string) error {
	html := fmt.Sprintf(`<div style="font-family:sans-serif">
<h2>Welcome to Intrvu</h2>
<p>Use this code to verify your account for %s:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>
<p>If you did not sign up, you can ignore this email.</p>
</div>`, to, verifyCode)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"from":    s.From,
			"to":      []string{to},
			"subject": "Intrvu | Verification code",
			"html":    html,
		}).
		Post(resendEndpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("resend API error: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
