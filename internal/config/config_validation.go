package config

import "errors"

// validate checks the merged configuration for values no component could
// run with. It reports all violations at once rather than the first one.
func (c *StructuredConfig) validate() error {
	var errs []error

	if c.Server.BaseURL == "" {
		errs = append(errs, ErrEmptyBaseURL)
	}
	if c.Server.RequestTimeout <= 0 || c.Server.ConnectTimeout <= 0 || c.Probe.Timeout <= 0 {
		errs = append(errs, ErrBadTimeout)
	}
	if c.Probe.Interval <= 0 {
		errs = append(errs, ErrBadProbeInterval)
	}
	if c.Probe.Timeout > c.Server.RequestTimeout {
		errs = append(errs, ErrProbeAboveRequest)
	}
	if c.Outbox.MaxRetries < 0 {
		errs = append(errs, ErrBadRetryBudget)
	}
	if c.Cache.MaxEntries <= 0 || c.Cache.HotEntries <= 0 {
		errs = append(errs, ErrBadCacheCapacity)
	}
	if c.Storage.DB.DSN == "" {
		errs = append(errs, ErrEmptyDSN)
	}

	return errors.Join(errs...)
}
