package service

import (
	"context"
	"fmt"
	"html"

	"church-cms/internal/core/ports"
	"church-cms/pkg/apperror"

	"github.com/rs/zerolog"
)

// ContactConfig addresses contact-form mail. From falls back to To.
type ContactConfig struct {
	From string
	To   string
}

type contactService struct {
	mailer ports.Mailer
	cfg    ContactConfig
	log    zerolog.Logger
}

// NewContactService creates a contact-form relay. mailer may be nil when no
// provider is configured.
func NewContactService(mailer ports.Mailer, cfg ContactConfig, log zerolog.Logger) ports.ContactService {
	if cfg.From == "" {
		cfg.From = cfg.To
	}
	return &contactService{mailer: mailer, cfg: cfg, log: log}
}

// Send mails a submission to the church office with the submitter as
// Reply-To. FullName and Message arrive entity-encoded from binding.
func (s *contactService) Send(ctx context.Context, req ports.ContactRequest) error {
	if s.mailer == nil || s.cfg.To == "" {
		return apperror.ErrMailNotConfigured()
	}

	email := html.EscapeString(req.Email)
	msg := ports.MailMessage{
		From:    s.cfg.From,
		To:      s.cfg.To,
		ReplyTo: req.Email,
		Subject: "New contact form message from " + req.FullName,
		Text:    fmt.Sprintf("From: %s <%s>\n\nMessage:\n%s", req.FullName, email, req.Message),
		HTML: fmt.Sprintf(`<div style="font-family:Arial,Helvetica,sans-serif;line-height:1.6;font-size:14px;color:#111">`+
			`<p><strong>From:</strong> %s &lt;%s&gt;</p>`+
			`<p><strong>Message:</strong></p>`+
			`<pre style="white-space:pre-wrap;background:#f9fafb;padding:12px;border-radius:8px;border:1px solid #eee">%s</pre>`+
			`</div>`, req.FullName, email, req.Message),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Msg("Contact email failed")
		return apperror.ErrUpstream("Failed to send message", err)
	}
	s.log.Info().Msg("Contact message relayed")
	return nil
}
