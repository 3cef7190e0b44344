// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/directorscut/pkg/pagination"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, pagination.TotalPages(0, 8))
	assert.Equal(t, 1, pagination.TotalPages(8, 8))
	assert.Equal(t, 2, pagination.TotalPages(10, 8))
	assert.Equal(t, 0, pagination.TotalPages(10, 0))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, pagination.ClampPage(0, 3))
	assert.Equal(t, 3, pagination.ClampPage(9, 3))
	assert.Equal(t, 2, pagination.ClampPage(2, 3))
	assert.Equal(t, 1, pagination.ClampPage(4, 0))
}

func TestFromRequest(t *testing.T) {
	request := httptest.NewRequest("GET", "/users?page=-2&limit=500", nil)
	params := pagination.FromRequest(request)

	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)

	request = httptest.NewRequest("GET", "/users?page=3&limit=10", nil)
	params = pagination.FromRequest(request)
	assert.Equal(t, 20, params.Offset())
}
