package model

import (
	"encoding/json"
	"fmt"
)

type ValidationReason string

const (
	InvalidAmount ValidationReason = "invalid_amount"
	InvalidPhone  ValidationReason = "invalid_phone"
)

// ValidationError reports malformed client input. It is always detected before any outbound call.
type ValidationError struct {
	Reason  ValidationReason
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError reports a failed client-credentials exchange.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("mvola authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ProviderError reports a non-2xx answer or a transport failure from MVola.
// Body holds the provider's error document when one was returned.
type ProviderError struct {
	Op         string
	StatusCode int
	Body       json.RawMessage
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: provider responded with status %d", e.Op, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
