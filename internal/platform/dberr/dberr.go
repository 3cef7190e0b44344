// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Storage code calls [Wrap] on every error it returns. Known SQLSTATE codes
// map to a fixed client-safe message; the raw driver error travels as the
// Cause so it ends up in the logs and never in a response body.
package dberr

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/directorscut/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// codeTable is the fixed SQLSTATE to user message table. Anything not listed
// falls back to a generic internal error.
var codeTable = map[string]func() *apperr.AppError{
	pgerrcode.UniqueViolation: func() *apperr.AppError {
		return apperr.Conflict("This record already exists.")
	},
	pgerrcode.ForeignKeyViolation: func() *apperr.AppError {
		return apperr.Conflict("Operation not allowed.")
	},
	pgerrcode.NotNullViolation: func() *apperr.AppError {
		return apperr.ValidationError("Required information was not provided.")
	},
	pgerrcode.InsufficientPrivilege: func() *apperr.AppError {
		return apperr.Forbidden("You do not have permission to perform this operation.")
	},
	pgerrcode.UndefinedTable: func() *apperr.AppError {
		return apperr.NotFound("Resource")
	},
	pgerrcode.InvalidTextRepresentation: func() *apperr.AppError {
		return apperr.ValidationError("Invalid data format.")
	},
	pgerrcode.CheckViolation: func() *apperr.AppError {
		return apperr.ValidationError("Invalid data format.")
	},
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Errors that already are an [apperr.AppError] pass through untouched.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 2. SQLSTATE table
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		if build, ok := codeTable[pgError.Code]; ok {
			return build().WithCause(cause)
		}
		return apperr.Internal(cause)
	}

	// 3. Unreachable or slow store
	if IsTransient(err) {
		return apperr.TransientNetwork(cause)
	}

	return apperr.Internal(cause)
}

// IsTransient reports whether err looks like a connectivity failure or a timeout
// rather than a rejected statement.
func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var connectError *pgconn.ConnectError
	if errors.As(err, &connectError) {
		return true
	}

	var netError net.Error
	return errors.As(err, &netError)
}
