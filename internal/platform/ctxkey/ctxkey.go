// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys shared by middleware,
// ctxutil and respond. The unexported key type keeps them from colliding
// with string keys set by other packages.
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser holds the *sec.AuthClaims of the caller, with the role already
	// resolved from the store.
	KeyUser key = "user"

	// KeyLogger holds the per-request *slog.Logger.
	KeyLogger key = "logger"
)
