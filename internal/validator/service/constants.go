package service

import "time"

const (
	// DefaultTimeout bounds a single completion call. Generations of a few thousand
	// tokens routinely take tens of seconds.
	DefaultTimeout = 120 * time.Second

	messagesPath = "/v1/messages"

	headerAPIKey     = "x-api-key"
	headerAPIVersion = "anthropic-version"
)

const (
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type, Accept"
)
