// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxDurationMinutes is 23:59, the largest duration a movie may declare.
const MaxDurationMinutes = 23*60 + 59

var (
	// "01:29", "1:29"
	clockPattern = regexp.MustCompile(`^(\d{1,4}):([0-5]\d)$`)
	// "1h30m", "1h 30 min", "2h"
	hoursPattern = regexp.MustCompile(`^(\d{1,4})\s*h(?:\s*(\d{1,4})\s*m(?:in)?)?$`)
	// "90m", "90 min"
	minutesPattern = regexp.MustCompile(`^(\d{1,6})\s*m(?:in)?$`)
	// "90"
	barePattern = regexp.MustCompile(`^\d{1,6}$`)
)

// # Parsing

// ParseDurationMinutes converts a free-form duration to minutes.
//
// Accepted forms: "HH:MM", "XhYm", "Xh", "Xm", "X min" and a bare integer
// (minutes). Any other input yields 0. The result is never negative.
func ParseDurationMinutes(raw string) int {
	value := strings.ToLower(strings.TrimSpace(raw))

	if match := clockPattern.FindStringSubmatch(value); match != nil {
		return atoi(match[1])*60 + atoi(match[2])
	}
	if match := hoursPattern.FindStringSubmatch(value); match != nil {
		return atoi(match[1])*60 + atoi(match[2])
	}
	if match := minutesPattern.FindStringSubmatch(value); match != nil {
		return atoi(match[1])
	}
	if barePattern.MatchString(value) {
		return atoi(value)
	}
	return 0
}

// FormatDuration renders minutes as "HH:MM".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// atoi parses digits already validated by a pattern. Empty means zero.
func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// # Canonical Duration

// Duration is a running time in whole minutes. It is stored and compared as
// an integer and rendered as "HH:MM" only when encoded.
type Duration int

// Minutes returns the duration as an int.
func (d Duration) Minutes() int { return int(d) }

// String implements [fmt.Stringer].
func (d Duration) String() string { return FormatDuration(int(d)) }

// MarshalJSON encodes the duration as "HH:MM".
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any form understood by [ParseDurationMinutes] or a
// JSON number of minutes. Unrecognized strings decode to 0.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}

	var minutes int
	if err := json.Unmarshal(data, &minutes); err == nil {
		if minutes < 0 {
			minutes = 0
		}
		*d = Duration(minutes)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Duration(ParseDurationMinutes(raw))
	return nil
}
