package service

import (
	"context"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/jobtrackr/jobtrackr/internal/config"
)

type MailServiceInterface interface {
	SendConfirmation(ctx context.Context, toEmail, confirmToken string) error
}

// MailService sends transactional mail through an HTTP mail provider.
type MailService struct {
	client *resty.Client
	cfg    *config.MailConfig
	appURL string
}

func NewMailService() *MailService {
	return &MailService{
		client: resty.New(),
		cfg:    config.LoadMailConfig(),
		appURL: config.LoadAppConfig().BaseURL,
	}
}

// SendConfirmation mails the sign-up confirmation link. With no provider
// configured the link is logged instead, so local development works without
// a mail account.
func (s *MailService) SendConfirmation(ctx context.Context, toEmail, confirmToken string) error {
	confirmURL := fmt.Sprintf("%s/auth/confirm?token=%s", s.appURL, confirmToken)

	if s.cfg.APIURL == "" {
		log.Printf("[mail] no provider configured, confirmation link for %s: %s", toEmail, confirmURL)
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"from":    s.cfg.FromAddress,
			"to":      []string{toEmail},
			"subject": "Confirm your JobTrackr account",
			"text": fmt.Sprintf(
				"Welcome to JobTrackr!\n\nConfirm your account by opening this link:\n%s\n\nThe link expires in 24 hours.",
				confirmURL,
			),
		}).
		Post(s.cfg.APIURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		if msg := gjson.Get(resp.String(), "message").String(); msg != "" {
			return fmt.Errorf("mail provider: %s", msg)
		}
		return fmt.Errorf("mail provider returned %s", resp.Status())
	}
	return nil
}
