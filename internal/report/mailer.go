package report

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/config"
	"github.com/sitegentech/atendo/internal/service"
)

// SMTPSender delivers reports over SMTP with retry on transient failures.
type SMTPSender struct {
	cfg   config.SMTPConfig
	retry service.RetryOptions
}

// NewSMTPSender creates a sender from the SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, retry: service.RetryOptions{MaxAttempts: 3}}
}

// Send delivers an HTML email to the configured recipients.
func (s *SMTPSender) Send(ctx context.Context, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(s.cfg.Recipients...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password))
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	return common.WithRetry(ctx, func() error {
		if sendErr := client.DialAndSendWithContext(ctx, msg); sendErr != nil {
			return fmt.Errorf("%w: %v", common.ErrMailDelivery, sendErr)
		}
		return nil
	}, s.retry)
}
