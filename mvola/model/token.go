package model

import (
	"encoding/json"
	"time"
)

// AccessToken is the body returned by the MVola token endpoint.
type AccessToken struct {
	AccessToken string      `json:"access_token"`
	Scope       string      `json:"scope,omitempty"`
	TokenType   string      `json:"token_type,omitempty"`
	ExpiresIn   json.Number `json:"expires_in"`
}

// CachedToken is an access token together with the instant after which it must not be used.
type CachedToken struct {
	Value     string
	ExpiresAt time.Time
}
