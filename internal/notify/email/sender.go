// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// # Resend

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender for apiKey using the given From header.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) Send(ctx context.Context, message Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      message.To,
		Subject: message.Subject,
		Html:    message.HTML,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: send failed: %w", err)
	}
	return nil
}

// # Log Only

// LogSender writes messages to the log instead of sending them. It is used in
// development when no API key is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, message Message) error {
	s.logger.Info("email_logged",
		slog.Any("to", message.To),
		slog.String("subject", message.Subject),
		slog.Int("html_bytes", len(message.HTML)),
	)
	return nil
}
