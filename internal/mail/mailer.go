// Copyright (c) 2026 Critica. All rights reserved.

/*
Package mail implements the outbound email collaborator.

The only mail the platform sends today is the signup confirmation code.
Delivery is synchronous by design: a signup must not report success unless
the code actually left the building, so failures propagate to the caller
instead of being queued for retry.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Sender delivers a single plain-text message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// # SMTP Delivery

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender creates a Sender backed by the relay at addr (host:port).
func NewSMTPSender(addr, from string) *SMTPSender {
	return &SMTPSender{addr: addr, from: from}
}

// Send delivers the message synchronously via the configured relay.
func (sender *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	message := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		sender.from, to, subject, body,
	))

	if err := smtp.SendMail(sender.addr, nil, sender.from, []string{to}, message); err != nil {
		return fmt.Errorf("mail: smtp delivery to %s failed: %w", to, err)
	}

	return nil
}

// # Development Delivery

// LogSender writes messages to the structured log instead of delivering them.
// Used in development where no SMTP relay is available.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a Sender that logs instead of sending.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message at INFO level and always succeeds.
func (sender *LogSender) Send(ctx context.Context, to, subject, body string) error {
	sender.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
