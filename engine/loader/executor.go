package loader

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Executor runs asset decode jobs off the frame goroutine.
type Executor interface {
	// Submit schedules fn. It may block while the executor's queue is full.
	//
	// Parameters:
	//   - fn: the job to run
	Submit(fn func())

	// Stop shuts the executor down. Jobs not yet started may never run.
	Stop()
}

// DefaultWorkers and DefaultQueueSize size the pool NewGateway creates when no executor is given.
const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

type poolExecutor struct {
	mu     *sync.Mutex
	pool   worker.DynamicWorkerPool
	nextID int
}

var _ Executor = &poolExecutor{}

// NewPoolExecutor creates an Executor backed by a dynamic worker pool.
//
// Parameters:
//   - maxWorkers: the maximum number of concurrent decode jobs
//   - queueSize: how many jobs may wait before Submit blocks
//
// Returns:
//   - Executor: the pool-backed executor
func NewPoolExecutor(maxWorkers, queueSize int) Executor {
	if maxWorkers <= 0 {
		maxWorkers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &poolExecutor{
		mu:   &sync.Mutex{},
		pool: worker.NewDynamicWorkerPool(maxWorkers, queueSize, 1*time.Second),
	}
}

func (e *poolExecutor) Submit(fn func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.mu.Unlock()

	e.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			fn()
			return nil, nil
		},
	})
}

func (e *poolExecutor) Stop() {
	e.pool.Stop()
}

// InlineExecutor runs every job synchronously inside Submit.
type InlineExecutor struct{}

var _ Executor = InlineExecutor{}

func (InlineExecutor) Submit(fn func()) { fn() }

func (InlineExecutor) Stop() {}
