// Package email delivers the account emails over SMTP.
package email

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/middleware"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
	"gopkg.in/gomail.v2"
)

const defaultSMTPPort = 587

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends HTML mail through a single SMTP relay.
type SMTPMailer struct {
	from   string
	dialer sender
}

var _ portssvc.Mailer = (*SMTPMailer)(nil)

// NewMailer returns an SMTP mailer, or a LogMailer when no SMTP host is configured.
func NewMailer(cfg config.SMTPConfig, logger *slog.Logger) portssvc.Mailer {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not set, emails will only be logged")
		return &LogMailer{logger: logger}
	}
	port := cfg.Port
	if port == 0 {
		port = defaultSMTPPort
	}
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Could not send email",
			slog.String("subject", subject), slog.String("error", err.Error()))
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// LogMailer writes emails to the log instead of delivering them. Used in development.
type LogMailer struct {
	logger *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.logger.Info("Email not delivered, SMTP disabled",
		slog.String("to", to), slog.String("subject", subject), slog.String("body", htmlBody))
	return nil
}
