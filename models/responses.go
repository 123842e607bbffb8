package models

import "encoding/json"

// APIResponse is the successful outcome of a single backend call.
type APIResponse struct {
	// StatusCode is the HTTP status returned by the backend (2xx).
	StatusCode int `json:"status_code"`

	// Payload is the raw JSON response body; nil for empty bodies.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MutationOutcome tells the caller whether a mutation reached the backend
// or was queued for later replay.
type MutationOutcome string

const (
	// MutationApplied means the backend confirmed the write.
	MutationApplied MutationOutcome = "applied"

	// MutationPending means the write was accepted locally and queued in
	// the outbox. The caller may apply an optimistic update; the drain
	// will replay the write once the backend is reachable.
	MutationPending MutationOutcome = "pending"
)

// MutationResult is returned by every mutating call. A pending result is
// not an error: the write is durable and will be replayed.
type MutationResult struct {
	Outcome MutationOutcome `json:"outcome"`

	// RequestID identifies the outbox entry for pending mutations, and
	// the idempotency key that was sent for applied ones.
	RequestID string `json:"request_id"`

	// Payload is the backend response body for applied mutations,
	// nil for pending ones.
	Payload json.RawMessage `json:"payload,omitempty"`
}
