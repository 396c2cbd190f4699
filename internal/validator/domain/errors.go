package domain

import (
	"errors"
	"net/http"
)

const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgBodyTooLarge     = "Request body too large"
	MsgInvalidBody      = "Invalid request body"
	MsgPromptRequired   = "Prompt is required"
	MsgPromptNotString  = "Prompt must be a string"
	MsgPromptTooLong    = "Prompt is too long. Maximum 50,000 characters."
	MsgPromptTooShort   = "Prompt is too short. Please provide more details."
	MsgAPIKeyMissing    = "API key not configured"
	MsgUpstreamFailed   = "API request failed"
	MsgInternalError    = "Internal server error"

	// Messages shown in production instead of upstream or internal detail.
	MsgRedactedUpstream = "Unable to process your request. Please try again."
	MsgRedactedInternal = "Internal server error. Please try again later."
)

// RequestError is a client-caused failure with a fixed, non-sensitive message.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

var (
	ErrMethodNotAllowed = &RequestError{Status: http.StatusMethodNotAllowed, Message: MsgMethodNotAllowed}
	ErrBodyTooLarge     = &RequestError{Status: http.StatusRequestEntityTooLarge, Message: MsgBodyTooLarge}
	ErrInvalidBody      = &RequestError{Status: http.StatusBadRequest, Message: MsgInvalidBody}
	ErrPromptRequired   = &RequestError{Status: http.StatusBadRequest, Message: MsgPromptRequired}
	ErrPromptNotString  = &RequestError{Status: http.StatusBadRequest, Message: MsgPromptNotString}
	ErrPromptTooLong    = &RequestError{Status: http.StatusBadRequest, Message: MsgPromptTooLong}
	ErrPromptTooShort   = &RequestError{Status: http.StatusBadRequest, Message: MsgPromptTooShort}
)

// ErrAPIKeyMissing is an operator error: the service has no upstream credential.
var ErrAPIKeyMissing = errors.New("api key not configured")
