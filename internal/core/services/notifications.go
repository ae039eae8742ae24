package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
)

var (
	verificationEmail = template.Must(template.New("verify").Parse(
		`<p><strong>Please click on the following link to verify your email:</strong></p>` +
			`<p><a href="{{.Link}}">{{.Link}}</a></p>`))
	passwordResetEmail = template.Must(template.New("reset").Parse(
		`<p>We received a request to reset your password. The link is valid for {{.TTL}}.</p>` +
			`<p><a href="{{.Link}}">{{.Link}}</a></p>` +
			`<p>If you did not ask for this, you can ignore this email.</p>`))
)

// notifier renders and dispatches the account emails.
type notifier struct {
	cfg    *config.Config
	mailer portssvc.Mailer
}

// verificationLink points at the API so the click itself verifies the address.
func (n notifier) verificationLink(host, token string) string {
	return fmt.Sprintf("%s://%s/api/users/verify/%s", n.scheme(), host, url.PathEscape(token))
}

func (n notifier) resetLink(host, token string) string {
	if n.cfg.FrontendBaseURL != "" {
		return n.cfg.FrontendBaseURL + "/password-reset?token=" + url.QueryEscape(token)
	}
	return fmt.Sprintf("%s://%s/api/users/password/reset/%s", n.scheme(), host, url.PathEscape(token))
}

func (n notifier) scheme() string {
	if n.cfg.PublicScheme == "" {
		return "http"
	}
	return n.cfg.PublicScheme
}

func (n notifier) sendVerification(ctx context.Context, to, host, token string) error {
	body, err := render(verificationEmail, map[string]any{"Link": n.verificationLink(host, token)})
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, to, "Verify your email", body)
}

func (n notifier) sendPasswordReset(ctx context.Context, to, host, token string) error {
	body, err := render(passwordResetEmail, map[string]any{
		"Link": n.resetLink(host, token),
		"TTL":  n.cfg.PasswordResetTTL.String(),
	})
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, to, "Reset your password", body)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
