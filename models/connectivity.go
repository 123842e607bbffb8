package models

import "time"

// ConnectivityState describes the last known reachability of the backend.
type ConnectivityState string

const (
	// ConnectivityUnknown is the state before the first probe completes.
	ConnectivityUnknown ConnectivityState = "unknown"

	ConnectivityOnline  ConnectivityState = "online"
	ConnectivityOffline ConnectivityState = "offline"
)

// ConnectivityStatus captures the outcome of the most recent probe.
type ConnectivityStatus struct {
	State     ConnectivityState `json:"state"`
	Target    string            `json:"target"`
	LatencyMs int64             `json:"latency_ms"`
	Error     string            `json:"error,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
}

// ConnectivityTransition is emitted once per state change, never on polls
// that confirm an unchanged state.
type ConnectivityTransition struct {
	From ConnectivityState `json:"from"`
	To   ConnectivityState `json:"to"`
	At   time.Time         `json:"at"`
}
