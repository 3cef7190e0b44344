// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import "strings"

// StringList flattens a repeated parameter whose values may also be
// comma-joined: ?genre=drama&genre=crime,noir yields [drama crime noir].
// Entries are trimmed and blanks dropped; order is preserved.
func StringList(values []string) []string {
	var result []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if clean := strings.TrimSpace(part); clean != "" {
				result = append(result, clean)
			}
		}
	}
	return result
}
