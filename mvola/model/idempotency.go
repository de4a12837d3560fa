package model

import "time"

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

// IdempotencyKey scopes a client-supplied key to the endpoint path it was sent to.
type IdempotencyKey struct {
	Resource string
	Key      string
}

type IdempotencyCacheEntry struct {
	Status          string    `json:"status"`
	RequestBodyHash string    `json:"request_body_hash,omitempty"`
	Response        []byte    `json:"response,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}
