package mail

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"

	"tumblecup_admin/internal/config"
	"tumblecup_admin/internal/usecase/interfaces"
	"tumblecup_admin/pkg/logger"
)

var ErrMailerNotConfigured = errors.New("smtp mailer not configured")

// SMTPNotifier sends customer notifications over SMTP (SSL on port 465 by
// default, matching the console's Gmail setup).
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger logger.Logger
}

var _ interfaces.INotifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier builds the notifier from SMTP settings. An empty host
// returns ErrMailerNotConfigured so callers can run without outbound mail.
func NewSMTPNotifier(cfg config.SMTPConfig, log logger.Logger) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, ErrMailerNotConfigured
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Port == 465

	return &SMTPNotifier{dialer: dialer, from: cfg.From, logger: log}, nil
}

// SendNotification delivers one HTML message. The context is accepted for
// interface symmetry; gomail dials synchronously and the SMTP round trip is
// bounded by the server's own timeouts.
func (n *SMTPNotifier) SendNotification(_ context.Context, toEmail, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Warn("smtp send failed", "to", toEmail, "error", err)
		return err
	}
	return nil
}
