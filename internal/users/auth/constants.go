// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Credential Constraints

const (
	// MinPasswordLength applies to registration, reset and change.
	MinPasswordLength = 8

	// MaxNameLength bounds first and last names.
	MaxNameLength = 100

	// MaxEmailLength matches the email column.
	MaxEmailLength = 255
)

// Error messages shared by login and refresh. Kept generic so a caller cannot
// tell an unknown email from a wrong password.
const (
	msgInvalidCredentials = "Invalid login credentials"
	msgInvalidRefresh     = "Invalid or expired refresh token"
)
