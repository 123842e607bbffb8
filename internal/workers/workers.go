package workers

import "context"

// Workers starts and stops a set of background workers as a unit.
// Workers are started in registration order and stopped in reverse, so
// consumers outlive their producers during shutdown.
type Workers struct {
	workers []Worker
}

// New builds an aggregate over the given workers.
func New(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Start launches every worker.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every worker in reverse order, blocking until each has
// exited.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
