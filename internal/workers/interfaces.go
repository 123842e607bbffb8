// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface implemented by every background task: the
// connectivity probe loop and the outbox drain job. Start launches the
// task's goroutine; Stop cancels it and blocks until it has exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
