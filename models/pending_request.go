package models

import (
	"encoding/json"
	"time"
)

// RequestStatus is the lifecycle state of a queued mutation.
type RequestStatus string

const (
	// StatusPending marks a mutation that is still waiting to be
	// replayed against the backend.
	StatusPending RequestStatus = "pending"

	// StatusFailed marks a mutation that will no longer be retried
	// automatically: either the backend rejected it with a 4xx, or it
	// exhausted its retry budget. Failed entries stay in the outbox so
	// the caller can surface them.
	StatusFailed RequestStatus = "failed"
)

// PendingRequest is a single not-yet-confirmed mutating operation in the
// outbox. Entries are replayed in CreatedAt order and removed only after
// the backend confirms success.
type PendingRequest struct {
	// ID is a UUIDv7 assigned at enqueue time. It doubles as the
	// idempotency key sent with every replay of this mutation.
	ID string `json:"id"`

	// Method is the HTTP verb (POST, PUT, DELETE).
	Method string `json:"method"`

	// Endpoint is the resource path relative to the API root,
	// e.g. "inventory" or "bills/17".
	Endpoint string `json:"endpoint"`

	// Body is the JSON request body, nil for bodiless requests.
	Body json.RawMessage `json:"body,omitempty"`

	CreatedAt  time.Time     `json:"created_at"`
	RetryCount int           `json:"retry_count"`
	Status     RequestStatus `json:"status"`

	// LastRetryAt is the time of the most recent replay attempt,
	// nil if the entry has never been attempted.
	LastRetryAt *time.Time `json:"last_retry_at,omitempty"`
}
