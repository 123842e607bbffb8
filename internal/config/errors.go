package config

import "errors"

var (
	ErrEmptyBaseURL      = errors.New("server base url must not be empty")
	ErrBadTimeout        = errors.New("timeouts must be positive")
	ErrBadProbeInterval  = errors.New("probe interval must be positive")
	ErrBadRetryBudget    = errors.New("max retries must not be negative")
	ErrBadCacheCapacity  = errors.New("cache capacity must be positive")
	ErrEmptyDSN          = errors.New("database dsn must not be empty")
	ErrProbeAboveRequest = errors.New("probe timeout must not exceed request timeout")
)
