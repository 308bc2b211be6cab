// Package mail provides the SMTP implementation of the Mailer service.
package mail

import (
	"context"
	"fmt"

	"zentora/config"
	"zentora/internal/domain/service"
	"zentora/internal/errors"

	"gopkg.in/gomail.v2"
)

// smtpMailer delivers transactional email over SMTP.
type smtpMailer struct {
	dialer      *gomail.Dialer
	from        string
	fromName    string
	frontendURL string
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config) (service.Mailer, error) {
	if cfg.SMTP == nil || cfg.SMTP.Host == "" {
		return nil, errors.New("smtp config must be provided")
	}

	frontendURL := ""
	if cfg.Frontend != nil {
		frontendURL = cfg.Frontend.BaseURL
	}

	return &smtpMailer{
		dialer:      gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:        cfg.SMTP.From,
		fromName:    cfg.SMTP.FromName,
		frontendURL: frontendURL,
	}, nil
}

// SendVerificationEmail delivers the email verification code.
func (m *smtpMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	body := fmt.Sprintf(
		`<p>Welcome! Confirm your email address to finish creating your account.</p>
<p>Your verification code is: <strong>%s</strong></p>
<p>Or open <a href="%s/verify-email?code=%s">this link</a>. The code expires in 24 hours.</p>`,
		code, m.frontendURL, code,
	)

	return m.send(ctx, to, "Verify your email address", body)
}

// SendPasswordResetEmail delivers the password reset code.
func (m *smtpMailer) SendPasswordResetEmail(ctx context.Context, to, code string) error {
	body := fmt.Sprintf(
		`<p>We received a request to reset your password.</p>
<p>Your reset code is: <strong>%s</strong></p>
<p>Or open <a href="%s/reset-password?code=%s">this link</a>. The code expires in 15 minutes.
If you did not request this, you can ignore this email.</p>`,
		code, m.frontendURL, code,
	)

	return m.send(ctx, to, "Reset your password", body)
}

func (m *smtpMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	return nil
}
