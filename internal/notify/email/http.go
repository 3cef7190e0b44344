// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package email

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/respond"
)

// maxHookBody bounds the webhook payload read into memory.
const maxHookBody = 64 << 10

// hookPayload is the body posted by the identity provider.
type hookPayload struct {
	User struct {
		Email string `json:"email"`
	} `json:"user"`
	EmailData struct {
		Token           string `json:"token"`
		TokenHash       string `json:"token_hash"`
		RedirectTo      string `json:"redirect_to"`
		EmailActionType string `json:"email_action_type"`
		SiteURL         string `json:"site_url"`
	} `json:"email_data"`
}

func (p hookPayload) request() Request {
	return Request{
		RecipientEmail: p.User.Email,
		ActionType:     ActionType(p.EmailData.EmailActionType),
		Token:          p.EmailData.Token,
		TokenHash:      p.EmailData.TokenHash,
		RedirectURL:    p.EmailData.RedirectTo,
	}
}

// HookHandler serves the send-email webhook.
type HookHandler struct {
	dispatcher *Dispatcher
	webhook    *standardwebhooks.Webhook
	logger     *slog.Logger
}

// NewHookHandler verifies deliveries with webhook, built from the
// "whsec_" secret shared with the identity provider.
func NewHookHandler(dispatcher *Dispatcher, webhook *standardwebhooks.Webhook, logger *slog.Logger) *HookHandler {
	return &HookHandler{dispatcher: dispatcher, webhook: webhook, logger: logger}
}

/*
POST /api/v1/hooks/send-email.

Description: Verifies the Standard Webhooks signature (webhook-id,
webhook-timestamp, webhook-signature; five minutes of clock tolerance), then
validates and sends the requested email.

Response:
  - 200: {"success": true}
  - 400: VALIDATION_ERROR with the first invalid field
  - 401: UNAUTHORIZED on a missing or wrong signature
  - 500: INTERNAL_ERROR when delivery fails (generic message)
*/
func (handler *HookHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, err := io.ReadAll(io.LimitReader(request.Body, maxHookBody))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid request body"))
		return
	}

	if err := handler.webhook.Verify(body, request.Header); err != nil {
		handler.logger.Warn("email_hook_rejected", slog.Any("error", err))
		respond.Error(writer, request, apperr.Unauthorized("Invalid webhook signature"))
		return
	}

	var payload hookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid JSON payload"))
		return
	}

	if err := handler.dispatcher.Dispatch(request.Context(), payload.request()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, map[string]bool{"success": true})
}
