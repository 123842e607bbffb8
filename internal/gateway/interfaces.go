// Package gateway provides the transport layer for talking to the
// Family Manager backend.
//
// The primary abstraction is [Gateway], which performs exactly one
// HTTP attempt per call and owns no retry policy — callers decide what a
// failure means. Transport and HTTP failures are mapped to the sentinel
// values in errors.go so callers can route them with [errors.Is]:
// [ErrTimeout] and [ErrConnectionRefused] are transient, [ErrServerError]
// is treated as transient, [ErrClientError] is permanent, and
// [ErrSerialization] is fatal for the single request that carried the
// malformed payload.
package gateway

import (
	"context"
	"encoding/json"

	"github.com/KrisDawg/family-sync/models"
)

// Call describes one backend request.
type Call struct {
	// Method is the HTTP verb (GET, POST, PUT, DELETE).
	Method string

	// Endpoint is the resource path relative to the API root,
	// e.g. "inventory" or "bills/17".
	Endpoint string

	// Params are optional query parameters.
	Params map[string]string

	// Body is the JSON request body, nil for bodiless requests.
	Body json.RawMessage

	// IdempotencyKey, when non-empty, is sent as the Idempotency-Key
	// header so the backend can deduplicate replayed mutations.
	IdempotencyKey string
}

// Gateway executes single backend calls. Implementations are stateless
// with respect to retries: one Execute is one attempt on the wire.
type Gateway interface {
	// Execute performs the call and returns the decoded response.
	// The attempt is bounded by the configured request timeout; the
	// returned error is one of the package sentinels (wrapped) on
	// failure.
	Execute(ctx context.Context, call Call) (models.APIResponse, error)
}
