// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package email

import (
	"context"
	"log/slog"

	"github.com/taibuivan/directorscut/internal/platform/apperr"
)

// Dispatcher validates, renders and sends account emails.
type Dispatcher struct {
	renderer *Renderer
	sender   Sender
	logger   *slog.Logger
}

func NewDispatcher(renderer *Renderer, sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{renderer: renderer, sender: sender, logger: logger}
}

/*
Dispatch sends one email.

Returns:
  - error: VALIDATION_ERROR for a malformed request, an internal error when
    rendering or delivery fails. The caller sees success or failure only.
*/
func (d *Dispatcher) Dispatch(ctx context.Context, request Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	message, err := d.renderer.Render(request)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := d.sender.Send(ctx, message); err != nil {
		d.logger.Error("email_send_failed",
			slog.String("action", string(request.ActionType)),
			slog.Any("error", err),
		)
		return apperr.Internal(err)
	}

	d.logger.Info("email_sent",
		slog.String("action", string(request.ActionType)),
		slog.String("recipient", request.RecipientEmail),
	)
	return nil
}
