// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package email delivers the account emails: signup confirmation and password
recovery.

A [Request] is validated, rendered with one of two fixed HTML templates and
handed to a [Sender]. Requests come from two places: the auth service, which
calls the [Dispatcher] directly, and the signed webhook served by [HookHandler]
for an external identity provider.
*/
package email

import (
	"net/url"
	"regexp"
	"unicode/utf8"

	"github.com/taibuivan/directorscut/internal/platform/validate"
)

// # Action Types

// ActionType is the reason an email is sent.
type ActionType string

const (
	ActionRecovery  ActionType = "recovery"
	ActionSignup    ActionType = "signup"
	ActionInvite    ActionType = "invite"
	ActionMagicLink ActionType = "magiclink"
)

// IsValid reports whether the action is one of the supported types.
func (a ActionType) IsValid() bool {
	switch a {
	case ActionRecovery, ActionSignup, ActionInvite, ActionMagicLink:
		return true
	}
	return false
}

// # Limits

const (
	MaxEmailLength    = 255
	MaxTokenLength    = 500
	MaxRedirectLength = 2000
)

const (
	FieldRecipient  = "email"
	FieldToken      = "token"
	FieldTokenHash  = "token_hash"
	FieldRedirectTo = "redirect_to"
	FieldActionType = "email_action_type"
)

// emailPattern is deliberately loose: something@something.tld, no spaces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// # Request

// Request is one email to send.
type Request struct {
	RecipientEmail string
	ActionType     ActionType
	// Token is shown in the body as a code the user can paste.
	Token string
	// TokenHash goes into the verification link.
	TokenHash   string
	RedirectURL string
}

// Validate checks the request in a fixed order and reports the first problem.
func (r Request) Validate() error {
	v := &validate.Validator{}

	v.Custom(FieldRecipient,
		!emailPattern.MatchString(r.RecipientEmail) || utf8.RuneCountInString(r.RecipientEmail) > MaxEmailLength,
		"Invalid email format")
	v.Custom(FieldToken, !validToken(r.Token), "Invalid token format")
	v.Custom(FieldTokenHash, !validToken(r.TokenHash), "Invalid token format")
	v.Custom(FieldRedirectTo, !validRedirect(r.RedirectURL), "Invalid redirect URL")
	v.Custom(FieldActionType, !r.ActionType.IsValid(), "Invalid email action type")

	return v.FirstErr()
}

func validToken(token string) bool {
	n := utf8.RuneCountInString(token)
	return n > 0 && n <= MaxTokenLength
}

func validRedirect(raw string) bool {
	if raw == "" || len(raw) > MaxRedirectLength {
		return false
	}
	parsed, err := url.Parse(raw)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}
