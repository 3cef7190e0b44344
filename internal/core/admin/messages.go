// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import "github.com/taibuivan/directorscut/internal/platform/apperr"

// GenericFailureMessage is shown for any failure without a dedicated message.
const GenericFailureMessage = "Something went wrong. Please try again."

// UserMessage returns the one message a user should read for err. Categorized
// errors carry their own message; anything else, including internal errors
// whose detail must stay in the logs, gets the generic one.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	appError := apperr.As(err)
	if appError == nil || appError.Code == apperr.CodeInternal {
		return GenericFailureMessage
	}
	return appError.Message
}
