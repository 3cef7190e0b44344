// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/directorscut/pkg/convert"
)

func TestToIntD(t *testing.T) {
	assert.Equal(t, 3, convert.ToIntD(" 3 ", 1))
	assert.Equal(t, 1, convert.ToIntD("", 1))
	assert.Equal(t, 1, convert.ToIntD("three", 1))
}

func TestToIntPtr(t *testing.T) {
	assert.Nil(t, convert.ToIntPtr(""))
	assert.Nil(t, convert.ToIntPtr("2012a"))

	year := convert.ToIntPtr("2012")
	require.NotNil(t, year)
	assert.Equal(t, 2012, *year)
}
