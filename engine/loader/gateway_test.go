package loader

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deferredExecutor holds jobs until run is called, letting tests order completions.
type deferredExecutor struct {
	mu   sync.Mutex
	jobs []func()
}

func (e *deferredExecutor) Submit(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.jobs = append(e.jobs, fn)
}

func (e *deferredExecutor) Stop() {}

func (e *deferredExecutor) run() {
	e.mu.Lock()
	jobs := e.jobs
	e.jobs = nil
	e.mu.Unlock()
	for _, fn := range jobs {
		fn()
	}
}

func newTestGateway(t *testing.T, exec Executor, options ...GatewayBuilderOption) Gateway {
	t.Helper()
	base := []GatewayBuilderOption{
		WithLoader(NewLoader(BackendTypeGLTF, WithFS(testFS(t)))),
		WithExecutor(exec),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	}
	return NewGateway(append(base, options...)...)
}

func TestGateway_EagerLoadDeliversOnDrain(t *testing.T) {
	g := newTestGateway(t, InlineExecutor{})

	var got model.Model
	h := g.Load("models/head.glb", StrategyEager, func(m model.Model) { got = m })

	assert.Equal(t, TaskLoading, h.State(), "finished work waits for Drain")
	assert.Nil(t, got)

	assert.Equal(t, 1, g.Drain())
	require.NotNil(t, got)
	assert.Equal(t, "Head", got.Name())
	assert.Equal(t, TaskLoaded, h.State())
	assert.NoError(t, h.Err())
	assert.Same(t, got, g.Get("models/head.glb"))
	assert.Equal(t, 0, g.Drain())
}

func TestGateway_LazyWaitsForTrigger(t *testing.T) {
	g := newTestGateway(t, InlineExecutor{})

	calls := 0
	h := g.Load("models/car.gltf", StrategyLazy, func(model.Model) { calls++ })
	g.Seal()

	assert.Equal(t, StrategyLazy, h.Strategy())
	assert.Equal(t, TaskPending, h.State())
	assert.Equal(t, 0, g.EagerCount())
	assert.Equal(t, 0, g.Drain())

	h.Trigger()
	h.Trigger()
	assert.Equal(t, 1, g.Drain())
	assert.Equal(t, 1, calls)
	assert.Equal(t, TaskLoaded, h.State())
	assert.False(t, g.Complete(), "lazy loads never feed the aggregator")
}

func TestGateway_ProgressAndCompletion(t *testing.T) {
	exec := &deferredExecutor{}
	g := newTestGateway(t, exec)

	var progress []int
	completions := 0
	g.OnProgress(func(p int) { progress = append(progress, p) })
	g.OnComplete(func() { completions++ })

	g.Load("models/head.glb", StrategyEager, nil)
	g.Load("models/car.gltf", StrategyEager, nil)
	g.Load("models/external.gltf", StrategyEager, nil)
	g.Seal()

	assert.Equal(t, 3, g.EagerCount())
	assert.Equal(t, 0, g.Progress())
	assert.False(t, g.Complete())

	exec.run()
	g.Drain()

	assert.Equal(t, []int{33, 66, 100}, progress)
	assert.Equal(t, 100, g.Progress())
	assert.True(t, g.Complete())
	assert.Equal(t, 1, completions)

	g.Load("models/head.glb", StrategyEager, nil)
	exec.run()
	g.Drain()
	assert.Equal(t, 3, g.EagerCount(), "eager loads after Seal are not tracked")
	assert.Equal(t, 1, completions)
}

func TestGateway_FailureCountsTowardCompletion(t *testing.T) {
	var logs bytes.Buffer
	g := newTestGateway(t, InlineExecutor{}, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	ready := 0
	completed := false
	g.OnComplete(func() { completed = true })

	ok := g.Load("models/head.glb", StrategyEager, func(model.Model) { ready++ })
	bad := g.Load("models/missing.glb", StrategyEager, func(model.Model) { ready++ })
	g.Seal()
	g.Drain()

	assert.Equal(t, TaskLoaded, ok.State())
	assert.Equal(t, TaskFailed, bad.State())
	assert.ErrorIs(t, bad.Err(), ErrInvalidAsset)
	assert.Equal(t, 1, ready, "failed loads never reach their callback")
	assert.True(t, completed)
	assert.Equal(t, 100, g.Progress())
	assert.Contains(t, logs.String(), "asset load failed")
	assert.Contains(t, logs.String(), "models/missing.glb")
}

func TestGateway_SealAfterEverythingFinished(t *testing.T) {
	g := newTestGateway(t, InlineExecutor{})

	completions := 0
	g.OnComplete(func() { completions++ })

	g.Load("models/head.glb", StrategyEager, nil)
	g.Drain()
	assert.False(t, g.Complete(), "unsealed aggregator stays open")

	g.Seal()
	assert.True(t, g.Complete())
	g.Seal()
	assert.Equal(t, 1, completions)
}

func TestGateway_ZeroEagerNeverCompletes(t *testing.T) {
	g := newTestGateway(t, InlineExecutor{})
	g.Seal()
	g.Drain()

	assert.False(t, g.Complete())
	assert.Equal(t, 0, g.Progress())
}

func TestGateway_WorkerPool(t *testing.T) {
	g := NewGateway(
		WithLoader(NewLoader(BackendTypeGLTF, WithFS(testFS(t)))),
		WithWorkers(2, 8),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
	defer g.Close()

	loaded := 0
	g.Load("models/head.glb", StrategyEager, func(model.Model) { loaded++ })
	g.Load("models/car.gltf", StrategyEager, func(model.Model) { loaded++ })
	g.Seal()

	require.Eventually(t, func() bool {
		g.Drain()
		return g.Complete()
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, loaded)
}

func TestTaskState_String(t *testing.T) {
	assert.Equal(t, "pending", TaskPending.String())
	assert.Equal(t, "failed", TaskFailed.String())
	assert.True(t, TaskLoaded.Terminal())
	assert.False(t, TaskLoading.Terminal())
	assert.Equal(t, "lazy", StrategyLazy.String())
}
