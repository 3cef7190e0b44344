// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

// Message is a rendered email ready for a [Sender].
type Message struct {
	To      []string
	Subject string
	HTML    string
}

const (
	subjectRecovery     = "Reset your password - Director's Cut"
	subjectConfirmation = "Confirm your account - Director's Cut"
)

// layout wraps both emails. Values are escaped by html/template.
const layout = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
  </head>
  <body style="margin:0;padding:0;background-color:#f6f9fc;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f6f9fc;">
      <tr><td align="center" style="padding:40px 0;">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;margin:0 auto 64px;">
          <tr><td style="background-color:#1a1a1a;padding:32px 24px;text-align:center;">
            <h1 style="color:#ffffff;font-size:32px;margin:0 0 8px;">Director's Cut</h1>
            <p style="color:#cccccc;font-size:16px;margin:0;">Film Platform</p>
          </td></tr>
          <tr><td style="padding:32px 24px;">
            <h2 style="color:#1a1a1a;font-size:24px;margin:0 0 16px;text-align:center;">{{.Heading}}</h2>
            <p style="color:#4a5568;font-size:16px;line-height:1.6;">{{.Intro}}</p>
            <table width="100%" cellpadding="0" cellspacing="0"><tr><td align="center" style="padding:32px 0;">
              <a href="{{.ActionURL}}" style="background-color:#dc2626;border-radius:8px;color:#ffffff;display:inline-block;font-size:16px;font-weight:bold;padding:16px 32px;text-decoration:none;">{{.Button}}</a>
            </td></tr></table>
            <p style="color:#4a5568;font-size:16px;line-height:1.6;">Or copy and paste this temporary code:</p>
            <div style="background-color:#f8f9fa;border:1px solid #e2e8f0;border-radius:8px;margin:16px 0 32px;padding:16px;text-align:center;">
              <p style="color:#1a1a1a;font-size:18px;font-weight:bold;letter-spacing:2px;margin:0;">{{.Token}}</p>
            </div>
            {{if .Expiry}}<p style="color:#e53e3e;font-size:14px;font-weight:bold;text-align:center;">{{.Expiry}}</p>{{end}}
            <p style="color:#718096;font-size:14px;line-height:1.5;text-align:center;">{{.Footnote}}</p>
          </td></tr>
          <tr><td style="border-top:1px solid #e2e8f0;padding:24px;text-align:center;">
            <p style="color:#718096;font-size:12px;margin:0;">Director's Cut - a platform for filmmakers and film students</p>
          </td></tr>
        </table>
      </td></tr>
    </table>
  </body>
</html>`

var page = template.Must(template.New("email").Parse(layout))

type content struct {
	Heading   string
	Intro     string
	Button    string
	ActionURL string
	Token     string
	Expiry    string
	Footnote  string
}

// Renderer builds messages from validated requests.
type Renderer struct {
	authBaseURL      string
	resetRedirectURL string
}

// NewRenderer returns a renderer linking to authBaseURL. Recovery links
// always redirect to resetRedirectURL when it is set.
func NewRenderer(authBaseURL, resetRedirectURL string) *Renderer {
	return &Renderer{
		authBaseURL:      strings.TrimRight(authBaseURL, "/"),
		resetRedirectURL: resetRedirectURL,
	}
}

// Render picks the password reset template for recovery and the account
// confirmation template for every other action.
func (r *Renderer) Render(request Request) (Message, error) {
	redirect := request.RedirectURL
	if request.ActionType == ActionRecovery && r.resetRedirectURL != "" {
		redirect = r.resetRedirectURL
	}

	body := content{
		ActionURL: r.VerifyURL(request.TokenHash, request.ActionType, redirect),
		Token:     request.Token,
	}

	subject := subjectConfirmation
	if request.ActionType == ActionRecovery {
		subject = subjectRecovery
		body.Heading = "Reset your password"
		body.Intro = "We received a request to reset the password of your Director's Cut account. Click the button below to choose a new password."
		body.Button = "Reset password"
		body.Expiry = "This link expires in 1 hour."
		body.Footnote = "If you did not ask for a password reset you can safely ignore this email. Your current password stays active."
	} else {
		body.Heading = "Confirm your account"
		body.Intro = "Thanks for signing up to Director's Cut! Click the button below to confirm your account."
		body.Button = "Confirm account"
		body.Footnote = "If you did not sign up to Director's Cut you can safely ignore this email."
	}

	var html bytes.Buffer
	if err := page.Execute(&html, body); err != nil {
		return Message{}, fmt.Errorf("email: render %s: %w", request.ActionType, err)
	}

	return Message{
		To:      []string{request.RecipientEmail},
		Subject: subject,
		HTML:    html.String(),
	}, nil
}

// VerifyURL is the link the user follows from the email.
func (r *Renderer) VerifyURL(tokenHash string, action ActionType, redirect string) string {
	query := url.Values{}
	query.Set("token", tokenHash)
	query.Set("type", string(action))
	query.Set("redirect_to", redirect)
	return r.authBaseURL + "/verify?" + query.Encode()
}
