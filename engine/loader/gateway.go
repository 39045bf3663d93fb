package loader

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
)

// Strategy selects when a registered asset starts loading.
type Strategy int

const (
	// StrategyEager starts immediately and is tracked by the progress aggregator.
	StrategyEager Strategy = iota
	// StrategyLazy waits for Handle.Trigger and is never tracked by the aggregator.
	StrategyLazy
)

func (s Strategy) String() string {
	if s == StrategyLazy {
		return "lazy"
	}
	return "eager"
}

// TaskState is the lifecycle of one registered load.
type TaskState int

const (
	TaskPending TaskState = iota
	TaskLoading
	TaskLoaded
	TaskFailed
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskLoading:
		return "loading"
	case TaskLoaded:
		return "loaded"
	case TaskFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state can no longer change.
func (s TaskState) Terminal() bool {
	return s == TaskLoaded || s == TaskFailed
}

// Handle observes one registered load.
type Handle interface {
	// Path returns the asset path the handle was registered with.
	Path() string

	// Strategy returns the load strategy.
	Strategy() Strategy

	// State returns the current lifecycle state.
	State() TaskState

	// Err returns the failure cause once State is TaskFailed, nil otherwise.
	Err() error

	// Trigger starts a lazy load. Calling it again, or on an eager handle, does nothing.
	Trigger()
}

// Gateway defines the asynchronous face of the loader. Decoding runs on an Executor;
// results are queued and only delivered to callbacks inside Drain, which the owner calls
// from its frame goroutine so every placeholder swap happens between two frames.
type Gateway interface {
	// Load registers an asset. Eager assets start at once and count toward Progress
	// until Seal; lazy assets wait for Handle.Trigger.
	//
	// Parameters:
	//   - path: the asset path handed to the Loader
	//   - strategy: StrategyEager or StrategyLazy
	//   - onReady: called from Drain with the decoded model; never called on failure
	//
	// Returns:
	//   - Handle: the registered load
	Load(path string, strategy Strategy, onReady func(model.Model)) Handle

	// Seal closes eager registration. Once sealed, the aggregator completes as soon as
	// every tracked eager load is terminal. A sealed gateway with no eager loads never
	// completes on its own.
	Seal()

	// Drain delivers every finished load to its callback and to the progress listeners.
	//
	// Returns:
	//   - int: how many finished loads were delivered
	Drain() int

	// Progress returns the tracked eager completion percentage, floored, in [0, 100].
	//
	// Returns:
	//   - int: percent of tracked eager loads that are terminal
	Progress() int

	// Complete reports whether the aggregator has completed.
	//
	// Returns:
	//   - bool: true once sealed and every tracked eager load is terminal
	Complete() bool

	// EagerCount returns how many eager loads the aggregator tracks.
	//
	// Returns:
	//   - int: tracked eager loads
	EagerCount() int

	// OnProgress registers a listener called from Drain each time Progress changes.
	//
	// Parameters:
	//   - fn: receives the new percentage
	OnProgress(fn func(int))

	// OnComplete registers a listener called once when the aggregator completes.
	//
	// Parameters:
	//   - fn: the completion listener
	OnComplete(fn func())

	// Get returns a decoded model by path, or nil.
	//
	// Parameters:
	//   - path: the asset path
	//
	// Returns:
	//   - model.Model: the decoded model or nil
	Get(path string) model.Model

	// Close stops the executor. Loads still queued may never finish.
	Close()
}

type completion struct {
	h   *handle
	m   model.Model
	err error
}

type gateway struct {
	mu     *sync.Mutex
	logger *slog.Logger

	loader   Loader
	executor Executor

	queue []completion

	tracked  int
	finished int
	sealed   bool
	complete bool
	lastPct  int

	progressListeners []func(int)
	completeListeners []func()
}

var _ Gateway = &gateway{}

type handle struct {
	g        *gateway
	path     string
	strategy Strategy
	tracked  bool
	onReady  func(model.Model)

	state TaskState
	err   error
}

var _ Handle = &handle{}

// NewGateway creates a Gateway. Without options it loads glTF/GLB files relative to the
// working directory on a DynamicWorkerPool of DefaultWorkers workers.
//
// Parameters:
//   - options: a variadic list of GatewayBuilderOption functions
//
// Returns:
//   - Gateway: the new gateway
func NewGateway(options ...GatewayBuilderOption) Gateway {
	g := &gateway{
		mu:      &sync.Mutex{},
		logger:  slog.Default(),
		lastPct: -1,
	}
	for _, option := range options {
		option(g)
	}
	if g.loader == nil {
		g.loader = NewLoader(BackendTypeGLTF)
	}
	if g.executor == nil {
		g.executor = NewPoolExecutor(DefaultWorkers, DefaultQueueSize)
	}
	return g
}

func (g *gateway) Load(path string, strategy Strategy, onReady func(model.Model)) Handle {
	g.mu.Lock()
	h := &handle{
		g:        g,
		path:     path,
		strategy: strategy,
		onReady:  onReady,
		tracked:  strategy == StrategyEager && !g.sealed,
	}
	if h.tracked {
		g.tracked++
	}
	g.mu.Unlock()

	if strategy == StrategyEager {
		g.start(h)
	}
	return h
}

// start moves a pending handle to loading and submits its decode job.
func (g *gateway) start(h *handle) {
	g.mu.Lock()
	if h.state != TaskPending {
		g.mu.Unlock()
		return
	}
	h.state = TaskLoading
	g.mu.Unlock()

	g.executor.Submit(func() {
		m, err := g.loader.Load(h.path)
		g.mu.Lock()
		g.queue = append(g.queue, completion{h: h, m: m, err: err})
		g.mu.Unlock()
	})
}

func (g *gateway) Seal() {
	g.mu.Lock()
	g.sealed = true
	fire := g.checkCompleteLocked()
	listeners := g.completeListeners
	g.mu.Unlock()

	if fire {
		for _, fn := range listeners {
			fn()
		}
	}
}

func (g *gateway) Drain() int {
	g.mu.Lock()
	batch := g.queue
	g.queue = nil
	g.mu.Unlock()

	for _, c := range batch {
		g.deliver(c)
	}
	return len(batch)
}

// deliver finalizes one completion: state, logging, callback, then aggregator.
func (g *gateway) deliver(c completion) {
	g.mu.Lock()
	if c.err != nil {
		c.h.state = TaskFailed
		c.h.err = c.err
	} else {
		c.h.state = TaskLoaded
	}
	g.mu.Unlock()

	if c.err != nil {
		g.logger.Warn("asset load failed", "path", c.h.path, "strategy", c.h.strategy.String(), "err", c.err)
	} else if c.h.onReady != nil {
		c.h.onReady(c.m)
	}

	if !c.h.tracked {
		return
	}

	g.mu.Lock()
	g.finished++
	pct := g.progressLocked()
	progressChanged := pct != g.lastPct
	g.lastPct = pct
	progressListeners := g.progressListeners
	fire := g.checkCompleteLocked()
	completeListeners := g.completeListeners
	g.mu.Unlock()

	if progressChanged {
		for _, fn := range progressListeners {
			fn(pct)
		}
	}
	if fire {
		for _, fn := range completeListeners {
			fn()
		}
	}
}

// checkCompleteLocked flips complete the first time the aggregator is done and reports
// whether listeners should fire. Caller must hold the mutex.
func (g *gateway) checkCompleteLocked() bool {
	if g.complete || !g.sealed || g.tracked == 0 || g.finished < g.tracked {
		return false
	}
	g.complete = true
	return true
}

// progressLocked computes the floored percentage. Caller must hold the mutex.
func (g *gateway) progressLocked() int {
	if g.tracked == 0 {
		return 0
	}
	return g.finished * 100 / g.tracked
}

func (g *gateway) Progress() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.progressLocked()
}

func (g *gateway) Complete() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.complete
}

func (g *gateway) EagerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tracked
}

func (g *gateway) OnProgress(fn func(int)) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.progressListeners = append(g.progressListeners, fn)
}

func (g *gateway) OnComplete(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completeListeners = append(g.completeListeners, fn)
}

func (g *gateway) Get(path string) model.Model {
	return g.loader.Get(path)
}

func (g *gateway) Close() {
	g.executor.Stop()
}

func (h *handle) Path() string {
	return h.path
}

func (h *handle) Strategy() Strategy {
	return h.strategy
}

func (h *handle) State() TaskState {
	h.g.mu.Lock()
	defer h.g.mu.Unlock()
	return h.state
}

func (h *handle) Err() error {
	h.g.mu.Lock()
	defer h.g.mu.Unlock()
	return h.err
}

func (h *handle) Trigger() {
	if h.strategy != StrategyLazy {
		return
	}
	h.g.start(h)
}
