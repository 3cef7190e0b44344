// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/dberr"
)

/*
TestWrap_CodeTable checks that every known SQLSTATE gets its fixed message
and that the driver detail is kept only as the cause.
*/
func TestWrap_CodeTable(t *testing.T) {
	tests := []struct {
		name     string
		sqlstate string
		code     string
		message  string
	}{
		{"unique", pgerrcode.UniqueViolation, apperr.CodeConflict, "This record already exists."},
		{"foreign_key", pgerrcode.ForeignKeyViolation, apperr.CodeConflict, "Operation not allowed."},
		{"not_null", pgerrcode.NotNullViolation, apperr.CodeValidation, "Required information was not provided."},
		{"privilege", pgerrcode.InsufficientPrivilege, apperr.CodeForbidden, "You do not have permission to perform this operation."},
		{"undefined_table", pgerrcode.UndefinedTable, apperr.CodeNotFound, "Resource not found"},
		{"bad_text", pgerrcode.InvalidTextRepresentation, apperr.CodeValidation, "Invalid data format."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &pgconn.PgError{Code: tt.sqlstate, Message: "detail from postgres"}

			err := dberr.Wrap(raw, "insert movie")

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.message, ae.Message)
			assert.NotContains(t, ae.Message, "detail from postgres")
			assert.ErrorIs(t, ae.Cause, raw)
		})
	}
}

/*
TestWrap_Fallbacks covers the non-table paths.
*/
func TestWrap_Fallbacks(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "noop"))
	})

	t.Run("no_rows", func(t *testing.T) {
		assert.Same(t, dberr.ErrNotFound, dberr.Wrap(pgx.ErrNoRows, "find movie"))
	})

	t.Run("unknown_sqlstate", func(t *testing.T) {
		err := dberr.Wrap(&pgconn.PgError{Code: pgerrcode.DiskFull}, "insert movie")
		assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	})

	t.Run("timeout", func(t *testing.T) {
		err := dberr.Wrap(context.DeadlineExceeded, "list movies")
		assert.True(t, apperr.HasCode(err, apperr.CodeTransientNetwork))
	})

	t.Run("plain_error", func(t *testing.T) {
		err := dberr.Wrap(errors.New("boom"), "list movies")
		assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	})

	t.Run("app_error_passthrough", func(t *testing.T) {
		quota := apperr.QuotaExceeded(3)
		assert.Same(t, quota, dberr.Wrap(quota, "feature movie"))
	})
}
