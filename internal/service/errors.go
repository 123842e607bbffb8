package service

import "errors"

var (
	// ErrDrainInProgress is returned when a drain is requested while
	// another drain session holds the lock.
	ErrDrainInProgress = errors.New("drain already in progress")

	// ErrNoCachedData is returned by Fetch when the backend is
	// unreachable and no cached value exists, not even a stale one.
	ErrNoCachedData = errors.New("backend unreachable and no cached data")
)
