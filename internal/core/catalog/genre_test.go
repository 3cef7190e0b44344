// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/directorscut/internal/core/catalog"
)

/*
TestNormalizeGenreName covers trimming, whitespace collapsing and per-segment casing.
*/
func TestNormalizeGenreName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"found footage", "Found Footage"},
		{"film-noir", "Film-Noir"},
		{"  SURREAL     horror ", "Surreal Horror"},
		{"neo-noir thriller", "Neo-Noir Thriller"},
		{"ficção científica", "Ficção Científica"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.NormalizeGenreName(tt.raw))
		})
	}
}

/*
TestNormalizeGenreName_Idempotent checks normalize(normalize(x)) == normalize(x)
over generated and hostile inputs.
*/
func TestNormalizeGenreName_Idempotent(t *testing.T) {
	faker := gofakeit.New(7)
	inputs := []string{"a--b", "-x-", "ÉCOLE  du-CINÉMA", "o'brien", "ß", "\tspace\nmixed "}
	for i := 0; i < 200; i++ {
		inputs = append(inputs, faker.Sentence(3), faker.LetterN(12), faker.Lexify("??-?? ???"))
	}

	for _, raw := range inputs {
		once := catalog.NormalizeGenreName(raw)
		assert.Equal(t, once, catalog.NormalizeGenreName(once), "input %q", raw)
	}
}

func TestGenreKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t, catalog.GenreKey("science fiction"), catalog.GenreKey("  SCIENCE   Fiction"))
	assert.NotEqual(t, catalog.GenreKey("Drama"), catalog.GenreKey("Dramedy"))
}

/*
TestGenreList covers storage parsing and both JSON input shapes.
*/
func TestGenreList(t *testing.T) {
	t.Run("parse_dedupes_and_normalizes", func(t *testing.T) {
		list := catalog.ParseGenreList("surreal horror, Experimental,, SURREAL HORROR ")
		assert.Equal(t, catalog.GenreList{"Surreal Horror", "Experimental"}, list)
		assert.Equal(t, "Surreal Horror, Experimental", list.Join())
	})

	t.Run("json_array", func(t *testing.T) {
		var list catalog.GenreList
		require.NoError(t, json.Unmarshal([]byte(`["drama","crime"]`), &list))
		assert.Equal(t, catalog.GenreList{"Drama", "Crime"}, list)
	})

	t.Run("json_joined_string", func(t *testing.T) {
		var list catalog.GenreList
		require.NoError(t, json.Unmarshal([]byte(`"drama, crime"`), &list))
		assert.Equal(t, catalog.GenreList{"Drama", "Crime"}, list)
	})

	t.Run("json_nil_is_empty_array", func(t *testing.T) {
		encoded, err := json.Marshal(catalog.GenreList(nil))
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(encoded))
	})
}
