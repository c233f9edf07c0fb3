// Package mail delivers outbound email over SMTP or the Mailgun API.
package mail

import (
	"errors"
	"fmt"
	"strings"

	"church-cms/config"
	"church-cms/internal/core/ports"
)

// ErrNotConfigured is returned by New when the selected provider lacks
// credentials.
var ErrNotConfigured = errors.New("mail provider not configured")

// New returns the Mailer for cfg.Provider.
func New(cfg config.MailConfig) (ports.Mailer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
			return nil, ErrNotConfigured
		}
		return NewSMTP(cfg), nil
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, ErrNotConfigured
		}
		return NewMailgun(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
