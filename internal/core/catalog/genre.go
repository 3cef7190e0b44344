// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
)

// # Genre Normalization

// NormalizeGenreName trims, collapses internal whitespace and title-cases every
// space- and hyphen-delimited segment.
//
//	"  found   footage " -> "Found Footage"
//	"film-noir"          -> "Film-Noir"
//
// The function is idempotent.
func NormalizeGenreName(raw string) string {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return ""
	}

	// A Caser keeps state between calls and must not be shared across goroutines.
	title := cases.Title(locale)
	for i, word := range words {
		segments := strings.Split(word, "-")
		for j, segment := range segments {
			segments[j] = title.String(segment)
		}
		words[i] = strings.Join(segments, "-")
	}
	return strings.Join(words, " ")
}

// GenreKey returns the comparison key of a genre name: the normalized name,
// case folded. Two names are the same genre iff their keys are equal.
func GenreKey(raw string) string {
	return cases.Fold().String(NormalizeGenreName(raw))
}

// # Genre List

// GenreList is the ordered genre tags of a movie. Order is kept for display;
// matching only looks at membership through [GenreList.Keys].
type GenreList []string

// ParseGenreList splits a comma-joined genre string into normalized names,
// dropping empty entries and duplicates.
func ParseGenreList(joined string) GenreList {
	return NewGenreList(strings.Split(joined, ","))
}

// NewGenreList normalizes names, dropping empty entries and duplicates while
// keeping the first occurrence.
func NewGenreList(names []string) GenreList {
	result := make(GenreList, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		normalized := NormalizeGenreName(name)
		if normalized == "" {
			continue
		}
		key := cases.Fold().String(normalized)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

// Join returns the storage form, names separated by ", ".
func (list GenreList) Join() string {
	return strings.Join(list, ", ")
}

// Keys returns the set of comparison keys of the list.
func (list GenreList) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(list))
	for _, name := range list {
		keys[GenreKey(name)] = struct{}{}
	}
	return keys
}

// MarshalJSON always encodes an array, never null.
func (list GenreList) MarshalJSON() ([]byte, error) {
	if list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(list))
}

// UnmarshalJSON accepts either an array of names or a single comma-joined string.
func (list *GenreList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*list = NewGenreList(names)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*list = ParseGenreList(joined)
	return nil
}
