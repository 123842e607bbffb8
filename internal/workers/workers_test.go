package workers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderWorker struct {
	name string
	log  *[]string
	mu   *sync.Mutex
}

func (w *orderWorker) Start(_ context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	*w.log = append(*w.log, "start "+w.name)
}

func (w *orderWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	*w.log = append(*w.log, "stop "+w.name)
}

func TestWorkers_StartOrderStopReversed(t *testing.T) {
	var (
		log []string
		mu  sync.Mutex
	)
	ws := New(
		&orderWorker{name: "a", log: &log, mu: &mu},
		&orderWorker{name: "b", log: &log, mu: &mu},
	)

	ctx := context.Background()
	ws.Start(ctx)
	ws.Stop()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestWorkers_EmptyAggregate(t *testing.T) {
	ws := New()
	assert.NotPanics(t, func() {
		ws.Start(context.Background())
		ws.Stop()
	})
}
