// Package sender delivers rendered notifications over email and SMS.
package sender

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"tripdesk/pkg/config"
	"tripdesk/pkg/logger"
)

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpEmailSender struct {
	addr string
	from string
	log  *logger.Logger
	send func(addr, from string, to []string, msg []byte) error
}

func NewSMTPEmailSender(cfg *config.Config) EmailSender {
	return &smtpEmailSender{
		addr: cfg.SMTPAddr,
		from: cfg.NotificationFromAddress,
		log:  cfg.Log,
		send: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

func (s *smtpEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	if err := s.send(s.addr, s.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.log.Info("Email sent", "to", to, "subject", subject)
	return nil
}
