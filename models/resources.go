package models

import (
	"strings"
	"time"
)

// Per-resource cache lifetimes. Read results for volatile resources
// (notifications) go stale quickly; slow-moving ones (family members)
// are kept for an hour.
var resourceTTLs = map[string]time.Duration{
	"inventory":                  30 * time.Minute,
	"shopping-list":              30 * time.Minute,
	"meals":                      30 * time.Minute,
	"bills":                      30 * time.Minute,
	"chores":                     30 * time.Minute,
	"tasks":                      30 * time.Minute,
	"notifications":              10 * time.Minute,
	"notifications/unread-count": 5 * time.Minute,
	"family-members":             60 * time.Minute,
}

// DefaultTTL applies to endpoints with no dedicated entry.
const DefaultTTL = 60 * time.Minute

// DefaultResourceTTLs returns a copy of the built-in per-resource table,
// suitable as a configuration default.
func DefaultResourceTTLs() map[string]time.Duration {
	out := make(map[string]time.Duration, len(resourceTTLs))
	for name, ttl := range resourceTTLs {
		out[name] = ttl
	}
	return out
}

// TTLPolicy resolves the cache lifetime for an endpoint. Resources takes
// precedence over the built-in table, Default over [DefaultTTL]; the zero
// value reproduces the built-in lifetimes. Sub-resource paths ("bills/17")
// inherit the lifetime of their resource root; exact matches
// ("notifications/unread-count") win over the root.
type TTLPolicy struct {
	Default   time.Duration
	Resources map[string]time.Duration
}

// TTL returns the cache lifetime for an endpoint.
func (p TTLPolicy) TTL(endpoint string) time.Duration {
	endpoint = strings.Trim(endpoint, "/")
	if ttl, ok := p.lookup(endpoint); ok {
		return ttl
	}
	if root, _, found := strings.Cut(endpoint, "/"); found {
		if ttl, ok := p.lookup(root); ok {
			return ttl
		}
	}
	if p.Default != 0 {
		return p.Default
	}
	return DefaultTTL
}

func (p TTLPolicy) lookup(key string) (time.Duration, bool) {
	if ttl, ok := p.Resources[key]; ok {
		return ttl, true
	}
	ttl, ok := resourceTTLs[key]
	return ttl, ok
}

// ResourceRoot returns the first path segment of an endpoint, which is
// the invalidation prefix for mutations touching that resource.
func ResourceRoot(endpoint string) string {
	endpoint = strings.Trim(endpoint, "/")
	root, _, _ := strings.Cut(endpoint, "/")
	return root
}
