// Package mail sends the account emails: verification codes, reset links and
// password change notices.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mailer delivers plain-text account emails.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, otp string) error
	SendPasswordResetLink(ctx context.Context, to, link string) error
	SendPasswordChanged(ctx context.Context, to, name, signInURL string) error
}

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends messages through an SMTP relay.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// New returns an SMTP mailer when a host is configured and a log-only mailer otherwise.
func New(cfg SMTPConfig, logger *zap.Logger) Mailer {
	if cfg.Host == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg, logger)
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, name, otp string) error {
	return m.send(ctx, to, "Welcome to Podify", verificationBody(name, otp))
}

func (m *SMTPMailer) SendPasswordResetLink(ctx context.Context, to, link string) error {
	return m.send(ctx, to, "Reset Password Link", resetBody(link))
}

func (m *SMTPMailer) SendPasswordChanged(ctx context.Context, to, name, signInURL string) error {
	return m.send(ctx, to, "Password Reset Successfully", changedBody(name, signInURL))
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{gomail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}
	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	m.logger.Debug("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used in
// development when no SMTP relay is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a log-only mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerification(_ context.Context, to, name, otp string) error {
	m.logger.Info("verification mail", zap.String("to", to), zap.String("body", verificationBody(name, otp)))
	return nil
}

func (m *LogMailer) SendPasswordResetLink(_ context.Context, to, link string) error {
	m.logger.Info("reset mail", zap.String("to", to), zap.String("body", resetBody(link)))
	return nil
}

func (m *LogMailer) SendPasswordChanged(_ context.Context, to, name, signInURL string) error {
	m.logger.Info("password changed mail", zap.String("to", to), zap.String("body", changedBody(name, signInURL)))
	return nil
}

func verificationBody(name, otp string) string {
	return fmt.Sprintf("Hi %s, welcome to Podify! Use the given OTP to verify your email.\n\n%s\n", name, otp)
}

func resetBody(link string) string {
	return fmt.Sprintf("We just received a request that you forgot your password. Use the link below to create a new one.\n\n%s\n", link)
}

func changedBody(name, signInURL string) string {
	return fmt.Sprintf("Dear %s, we just updated your password. You can now sign in with your new password.\n\n%s\n", name, signInURL)
}
