package models

import (
	"encoding/json"
	"time"
)

// CacheEntry is one cached read result. The key is a stable signature of
// endpoint plus query parameters, so the same logical request always maps
// to the same entry.
type CacheEntry struct {
	Key      string          `json:"key"`
	Endpoint string          `json:"endpoint"`
	Payload  json.RawMessage `json:"payload"`
	StoredAt time.Time       `json:"stored_at"`
	TTL      time.Duration   `json:"ttl"`
}

// Expired reports whether the entry is no longer readable at the given
// time, which is the case once now is past StoredAt+TTL for any TTL >= 0.
// A zero TTL expires as soon as the stored instant has passed; a negative
// TTL marks an entry that never expires.
func (e CacheEntry) Expired(now time.Time) bool {
	if e.TTL < 0 {
		return false
	}
	return now.Sub(e.StoredAt) > e.TTL
}
