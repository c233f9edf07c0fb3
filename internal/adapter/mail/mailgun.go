package mail

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"church-cms/config"
	"church-cms/internal/core/ports"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends through the Mailgun HTTP API.
type Mailgun struct {
	mg *mailgun.MailgunImpl
}

// NewMailgun creates a Mailgun mailer. MailgunAPIBase overrides the region
// endpoint.
func NewMailgun(cfg config.MailConfig) *Mailgun {
	mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	if cfg.MailgunAPIBase != "" {
		mg.SetAPIBase(cfg.MailgunAPIBase)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	mg.SetClient(&http.Client{Timeout: timeout})
	return &Mailgun{mg: mg}
}

// Send implements ports.Mailer.
func (m *Mailgun) Send(ctx context.Context, msg ports.MailMessage) error {
	message := m.mg.NewMessage(msg.From, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}
	if msg.ReplyTo != "" {
		message.SetReplyTo(msg.ReplyTo)
	}

	if _, _, err := m.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
