// Package email sends transactional mail over SMTP. When no SMTP host
// is configured the messages are logged instead, which keeps local
// development working without a mail server.
package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/hassy/readcycle/internal/config"
	"github.com/hassy/readcycle/internal/pkg/logger"
)

// Sender delivers transactional mail.
type Sender interface {
	SendVerificationCode(to, code string) error
	SendPasswordReset(to, resetURL string) error
	SendPasswordChanged(to string) error
}

type smtpSender struct {
	cfg config.EmailConfig
}

// NewSender creates an SMTP-backed sender.
func NewSender(cfg config.EmailConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) SendVerificationCode(to, code string) error {
	subject := "Your ReadCycle verification code"
	body := fmt.Sprintf(
		"Welcome to ReadCycle!\r\n\r\nYour verification code is: %s\r\n\r\nThe code expires in 5 minutes.\r\n",
		code)
	return s.send(to, subject, body)
}

func (s *smtpSender) SendPasswordReset(to, resetURL string) error {
	subject := "Reset your ReadCycle password"
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\nReset link: %s\r\n\r\nThe link expires in 5 minutes. If you did not request this, ignore this email.\r\n",
		resetURL)
	return s.send(to, subject, body)
}

func (s *smtpSender) SendPasswordChanged(to string) error {
	subject := "Your ReadCycle password was changed"
	body := "Your password was changed successfully.\r\n\r\nIf this was not you, request a new reset link immediately.\r\n"
	return s.send(to, subject, body)
}

func (s *smtpSender) send(to, subject, body string) error {
	if s.cfg.Host == "" {
		logger.Info().
			Str("to", to).
			Str("subject", subject).
			Str("body", body).
			Msg("SMTP not configured, logging email instead")
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
