package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/actor"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/clock"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/loader"
	"github.com/Carmen-Shannon/oxy-scroll/engine/mapper"
	"github.com/Carmen-Shannon/oxy-scroll/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scene"
	"github.com/Carmen-Shannon/oxy-scroll/engine/timeline"
	"github.com/Carmen-Shannon/oxy-scroll/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoRenderSurface is returned by Start when the engine has no renderer to draw with.
	// The engine performs no further work.
	ErrNoRenderSurface = errors.New("engine: no render surface")

	// ErrTornDown is returned when starting or running an engine after Teardown.
	ErrTornDown = errors.New("engine: torn down")
)

// State is the render loop lifecycle state.
type State int

const (
	// StateUninitialized is the state before Start.
	StateUninitialized State = iota
	// StateRunning schedules frames.
	StateRunning
	// StatePaused keeps the scene but schedules nothing.
	StatePaused
	// StateTornDown is terminal.
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateTornDown:
		return "torn down"
	default:
		return "unknown"
	}
}

// Actor names registered by the engine.
const (
	BackgroundActor = "background"
	CharacterActor  = "character"
	ShowcaseActor   = "showcase"
)

// engine implements the Engine interface.
// Every scene mutation happens inside Step on the frame goroutine. Other goroutines only post
// tasks, flip the lifecycle state, or register listeners.
type engine struct {
	mu    *sync.Mutex // state, tasks, listeners, clock bookkeeping
	frame *sync.Mutex // serializes Start, Step and Teardown

	logger *slog.Logger
	cfg    *config.Config
	time   clock.TimeProvider

	viewport    viewport.Viewport
	renderer    renderer.Renderer
	gateway     loader.Gateway
	ownsGateway bool

	profiler         *profiler.Profiler
	profilingEnabled bool
	frameInterval    time.Duration

	state     State
	tasks     []func()
	cancelSub func()
	started   time.Time
	last      time.Time

	profile  device.Profile
	settings device.Settings // written under mu, read freely on the frame goroutine
	progress float32
	cam      camera.Camera
	scene    scene.Scene
	mapper   mapper.Mapper
	driver   *timeline.Driver

	background *actor.ParticleField
	character  *actor.Character
	showcase   *actor.Showcase

	loadReady     bool
	loaded        bool
	fallbackArmed bool
	fallbackAt    time.Time
	prewarms      int
	warms         int
	warmPending   bool
	lastPct       int
	inShowcase    bool

	progressListeners []func(int)
	loadedListeners   []func()
	showcaseListeners []func(bool)
}

// Engine is the render loop controller. It owns the scene, camera, renderer and device tier,
// and runs every frame in a fixed order: drain queued work and finished loads, settle loading,
// advance the scroll timeline, update actors, publish the showcase signal, render.
type Engine interface {
	// Start performs one-time setup: tier classification, scene and actors, eager loads,
	// renderer configuration and viewport subscription. Calling it again while running or
	// paused does nothing.
	//
	// Returns:
	//   - error: ErrNoRenderSurface without a renderer, ErrTornDown after Teardown, or a config error
	Start() error

	// Step runs one frame. It does nothing unless the engine is running.
	//
	// Returns:
	//   - error: the render error for this frame, if any
	Step() error

	// Run starts the engine if needed and steps it at the configured frame rate until ctx is done
	// or the engine is torn down. Frame errors are logged and do not stop the loop.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: the Start error, ErrTornDown, or ctx.Err()
	Run(ctx context.Context) error

	// Pause stops frame scheduling without discarding scene state. Loads keep running and
	// are attached on the first frame after Resume.
	Pause()

	// Resume restarts frame scheduling. The frame delta restarts at zero and time-based motion
	// resamples the clock, so nothing jumps.
	Resume()

	// Teardown releases the renderer, stops the loader and clears the scene. Terminal.
	Teardown()

	// State returns the lifecycle state.
	//
	// Returns:
	//   - State: the current state
	State() State

	// OnProgress registers a listener for the loading percentage (0-100). Called on the frame goroutine.
	//
	// Parameters:
	//   - fn: receives each new percentage
	OnProgress(fn func(int))

	// OnLoaded registers a listener for the loading-complete event. It fires once, after pre-warm.
	//
	// Parameters:
	//   - fn: the listener
	OnLoaded(fn func())

	// OnShowcaseChange registers a listener for the camera entering or leaving the showcase region.
	//
	// Parameters:
	//   - fn: receives true on entry and false on exit
	OnShowcaseChange(fn func(bool))

	// NotifyVisible is the external visibility trigger. When region names the showcase region
	// the showcase's lazy load starts. Safe to call from any goroutine.
	//
	// Parameters:
	//   - region: the region that scrolled into view
	NotifyVisible(region string)

	// Drag forwards a horizontal pointer drag to the showcase. It only rotates the vehicle while
	// the camera is inside the showcase region. Safe to call from any goroutine.
	//
	// Parameters:
	//   - dx: horizontal drag delta in pixels
	Drag(dx float32)

	// InShowcase reports whether the camera was inside the showcase region on the last frame.
	//
	// Returns:
	//   - bool: the label visibility signal
	InShowcase() bool

	// Loaded reports whether the loading-complete event has fired.
	//
	// Returns:
	//   - bool: true after pre-warm and the loaded event
	Loaded() bool

	// Progress returns the timeline progress used on the last frame.
	//
	// Returns:
	//   - float32: progress in [0, 1]
	Progress() float32

	// Settings returns the active tier settings.
	//
	// Returns:
	//   - device.Settings: the settings
	Settings() device.Settings

	// Scene returns the scene root, or nil before Start.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Camera returns the camera, or nil before Start.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Character returns the anchored character, or nil when it was never created.
	//
	// Returns:
	//   - *actor.Character: the character
	Character() *actor.Character

	// Showcase returns the showcase actor, or nil when it was never created.
	//
	// Returns:
	//   - *actor.Showcase: the showcase
	Showcase() *actor.Showcase

	// Prewarms returns how many pre-warm passes have run.
	//
	// Returns:
	//   - int: 0 before loading completes, 1 after
	Prewarms() int

	// Warms returns how many compile passes ran after loading completed, for models or actors
	// that arrived late.
	//
	// Returns:
	//   - int: late compile passes
	Warms() int
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Without options it uses the production config, an in-memory viewport over the config layout,
// the system clock and no renderer (Start then fails with ErrNoRenderSurface).
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:            &sync.Mutex{},
		frame:         &sync.Mutex{},
		logger:        slog.Default(),
		time:          clock.NewSystemTimeProvider(),
		frameInterval: time.Second / 60,
		lastPct:       -1,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.cfg == nil {
		e.cfg = config.Default()
	}
	if e.viewport == nil {
		e.viewport = viewport.NewStaticViewport(viewport.WithLayout(e.cfg.Layout.Layout()))
	}
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithTimeProvider(e.time))
	return e
}

func (e *engine) Start() error {
	e.frame.Lock()
	defer e.frame.Unlock()

	switch e.State() {
	case StateTornDown:
		return ErrTornDown
	case StateRunning, StatePaused:
		return nil
	}

	if e.renderer == nil {
		e.logger.Error("engine start aborted", "err", ErrNoRenderSurface)
		return ErrNoRenderSurface
	}

	tl, err := timeline.FromConfig(e.cfg.Timeline)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	e.profile = e.cfg.Profile()
	w, h := e.viewport.Size()
	e.setSettings(e.profile.Settings(w))

	e.cam = camera.NewCamera(
		camera.WithFov(common.DegToRad(e.cfg.Camera.Fov)),
		camera.WithAspect(aspect(w, h)),
		camera.WithNear(e.cfg.Camera.Near),
		camera.WithFar(e.cfg.Camera.Far),
		camera.WithPosition(restPose(e.settings).Position),
	)
	e.scene = scene.NewScene("main", e.cam,
		scene.WithEnvironment(scene.EnvironmentFromConfig(e.cfg.Environment)),
		scene.WithLogger(e.logger),
		scene.WithActive(true),
	)
	e.mapper = mapper.NewMapper(e.viewport, mapper.WithPlaneZ(e.cfg.Camera.PlaneZ))
	e.driver = timeline.NewDriver(tl, e.viewport, e.cam,
		timeline.WithScrub(e.cfg.Timeline.Scrub),
		timeline.WithBase(restPose(e.settings)),
	)

	if e.gateway == nil {
		e.gateway = loader.NewGateway(
			loader.WithLoader(loader.NewLoader(loader.BackendTypeGLTF, loader.WithFS(e.cfg.AssetFS()))),
			loader.WithWorkers(e.cfg.Loading.Workers, e.cfg.Loading.QueueSize),
			loader.WithLogger(e.logger),
		)
		e.ownsGateway = true
	}
	e.gateway.OnProgress(e.emitProgress)
	e.gateway.OnComplete(func() { e.loadReady = true })

	e.background = actor.NewParticleField(BackgroundActor, e.cfg.Background, e.settings.ParticleCount)
	if err := e.scene.Add(e.background); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if e.settings.HeavyActors {
		e.ensureHeavyActors()
	}
	e.gateway.Seal()

	e.renderer.Configure(e.settings)
	e.renderer.Resize(int(w), int(h), e.settings.EffectivePixelRatio(e.viewport.DevicePixelRatio()))

	now := e.time.Now()
	if e.settings.Tier == device.TierMobile || e.gateway.EagerCount() == 0 {
		e.fallbackArmed = true
		e.fallbackAt = now.Add(e.cfg.Loading.Fallback())
	}

	e.mu.Lock()
	e.started = now
	e.last = time.Time{}
	e.state = StateRunning
	e.mu.Unlock()

	e.cancelSub = e.viewport.Subscribe(e.onViewportEvent)

	e.logger.Info("engine started",
		"tier", e.settings.Tier.String(),
		"eager_loads", e.gateway.EagerCount(),
		"fallback", e.fallbackArmed,
	)
	return nil
}

func (e *engine) Step() error {
	e.frame.Lock()
	defer e.frame.Unlock()

	e.mu.Lock()
	if e.state != StateRunning {
		e.mu.Unlock()
		return nil
	}
	tasks := e.tasks
	e.tasks = nil
	now := e.time.Now()
	var dt float32
	if !e.last.IsZero() {
		dt = float32(now.Sub(e.last).Seconds())
	}
	e.last = now
	elapsed := float32(now.Sub(e.started).Seconds())
	e.mu.Unlock()

	// 1. queued viewport events and external signals, then finished loads
	for _, task := range tasks {
		task()
	}
	if e.gateway.Drain() > 0 {
		e.warmPending = true
	}

	// 2. loading completion or fallback, pre-warm, loaded event; late arrivals compile before they draw
	e.settleLoading(now)
	e.warmLate()

	// 3. camera from scroll
	e.driver.Update(dt)
	e.mu.Lock()
	e.progress = e.driver.Progress()
	e.mu.Unlock()

	// 4. actors, after the camera is final for this frame
	w, h := e.viewport.Size()
	for _, err := range e.scene.Update(actor.Frame{
		Elapsed:        elapsed,
		Delta:          dt,
		Progress:       e.driver.Progress(),
		ScrollY:        e.viewport.ScrollOffset(),
		ViewportWidth:  w,
		ViewportHeight: h,
		Tier:           e.settings.Tier,
		Camera:         e.cam,
	}) {
		e.logger.Warn("actor update skipped", "err", err)
	}

	// 5. camera-depth signal for labels
	e.publishShowcase()

	// 6. draw
	err := e.renderer.Render(e.scene, e.cam)
	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return err
}

func (e *engine) Run(ctx context.Context) error {
	if e.State() == StateUninitialized {
		if err := e.Start(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if e.State() == StateTornDown {
				return ErrTornDown
			}
			if err := e.Step(); err != nil {
				e.logger.Warn("frame failed", "err", err)
			}
		}
	}
}

func (e *engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateRunning {
		e.state = StatePaused
		e.logger.Info("engine paused")
	}
}

func (e *engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StatePaused {
		e.state = StateRunning
		e.last = time.Time{}
		e.logger.Info("engine resumed")
	}
}

func (e *engine) Teardown() {
	e.frame.Lock()
	defer e.frame.Unlock()

	e.mu.Lock()
	if e.state == StateTornDown {
		e.mu.Unlock()
		return
	}
	wasStarted := e.state != StateUninitialized
	e.state = StateTornDown
	e.tasks = nil
	e.mu.Unlock()

	if e.cancelSub != nil {
		e.cancelSub()
	}
	if e.gateway != nil && e.ownsGateway {
		e.gateway.Close()
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.scene != nil {
		e.scene.Clear()
	}
	if wasStarted {
		e.logger.Info("engine torn down")
	}
}

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) OnProgress(fn func(int)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progressListeners = append(e.progressListeners, fn)
}

func (e *engine) OnLoaded(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadedListeners = append(e.loadedListeners, fn)
}

func (e *engine) OnShowcaseChange(fn func(bool)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.showcaseListeners = append(e.showcaseListeners, fn)
}

func (e *engine) NotifyVisible(region string) {
	if region != e.cfg.Showcase.Region {
		return
	}
	e.post(func() {
		if e.showcase == nil || !e.scene.IsAttached(ShowcaseActor) {
			return
		}
		e.showcase.LazyLoad(func() {
			e.logger.Info("showcase model attached", "model", e.cfg.Showcase.Model)
		})
	})
}

func (e *engine) Drag(dx float32) {
	e.post(func() {
		if e.showcase == nil || !e.scene.IsAttached(ShowcaseActor) {
			return
		}
		e.showcase.Drag(dx, e.cam.Position().Y())
	})
}

func (e *engine) InShowcase() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inShowcase
}

func (e *engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

func (e *engine) Progress() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress
}

func (e *engine) Settings() device.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.cam
}

func (e *engine) Character() *actor.Character {
	return e.character
}

func (e *engine) Showcase() *actor.Showcase {
	return e.showcase
}

func (e *engine) Prewarms() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prewarms
}

func (e *engine) Warms() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warms
}

func (e *engine) setSettings(s device.Settings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
}

// post queues fn for the start of the next frame.
func (e *engine) post(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateTornDown {
		return
	}
	e.tasks = append(e.tasks, fn)
}

// onViewportEvent runs on whatever goroutine the viewport emits from.
func (e *engine) onViewportEvent(ev viewport.Event) {
	switch ev {
	case viewport.EventResize:
		e.post(e.applyViewport)
	case viewport.EventLayout:
		e.post(e.mapper.Invalidate)
	}
}

// applyViewport reclassifies the tier and pushes the new size everywhere. Frame goroutine only.
func (e *engine) applyViewport() {
	w, h := e.viewport.Size()
	prev := e.settings.Tier
	e.setSettings(e.profile.Settings(w))

	e.cam.SetAspect(aspect(w, h))
	e.driver.SetBase(restPose(e.settings))
	e.renderer.Configure(e.settings)
	e.renderer.Resize(int(w), int(h), e.settings.EffectivePixelRatio(e.viewport.DevicePixelRatio()))

	if e.settings.HeavyActors {
		e.ensureHeavyActors()
	}
	for _, a := range e.scene.Actors() {
		if a.Heavy() {
			if e.settings.HeavyActors {
				e.scene.Attach(a.Name())
			} else {
				e.scene.Detach(a.Name())
			}
		}
		if ta, ok := a.(actor.TierAware); ok {
			ta.ApplyTier(e.settings)
		}
	}
	e.mapper.Invalidate()

	if prev != e.settings.Tier {
		e.logger.Info("device tier changed", "from", prev.String(), "to", e.settings.Tier.String(), "width", w)
	}
}

// ensureHeavyActors creates whichever heavy actors do not exist yet and registers their loads.
func (e *engine) ensureHeavyActors() {
	if e.character == nil {
		e.character = actor.NewCharacter(e.cfg.Character, e.mapper, e.settings.Tier)
		e.addActor(e.character)
		e.warmPending = true
	}
	if e.showcase == nil {
		e.showcase = actor.NewShowcase(e.cfg.Showcase, e.settings.Tier)
		e.addActor(e.showcase)
		e.warmPending = true
	}
}

func (e *engine) addActor(a actor.Actor) {
	if ta, ok := a.(actor.TierAware); ok {
		ta.ApplyTier(e.settings)
	}
	if owner, ok := a.(actor.AssetOwner); ok {
		owner.RegisterLoads(e.gateway)
	}
	if err := e.scene.Add(a); err != nil {
		e.logger.Error("actor not added", "actor", a.Name(), "err", err)
	}
}

// settleLoading fires the loaded event once, after pre-warm, when the aggregator completes or the
// fallback deadline passes.
func (e *engine) settleLoading(now time.Time) {
	if e.Loaded() {
		return
	}
	fallback := e.fallbackArmed && !now.Before(e.fallbackAt)
	if !e.loadReady && !fallback {
		return
	}

	e.prewarm()
	e.emitProgress(100)

	e.mu.Lock()
	e.loaded = true
	listeners := e.loadedListeners
	e.mu.Unlock()

	e.logger.Info("loading complete", "fallback", !e.loadReady, "eager_loads", e.gateway.EagerCount())
	for _, fn := range listeners {
		fn()
	}
}

// prewarm is the startup compile protocol. Eager assets are already attached (phase 1). The camera
// then frames every loaded object, or every attached object when none loaded, and the renderer
// compiles the whole scene (phase 2). Finally the real pose returns before anything is shown (phase 3).
func (e *engine) prewarm() {
	saved := e.cam.Pose()
	bounds, ok := e.scene.Bounds(func(obj game_object.GameObject) bool {
		return obj.Representation() == game_object.RepresentationLoaded
	})
	if !ok {
		bounds, ok = e.scene.Bounds(nil)
	}
	if ok {
		e.cam.SetPose(camera.Framing(bounds, e.cam.Fov(), e.cam.Aspect()))
	}

	if err := e.renderer.Compile(e.scene, e.cam); err != nil {
		e.logger.Warn("pre-warm compile failed", "err", err)
	}
	e.cam.SetPose(saved)
	e.warmPending = false

	e.mu.Lock()
	e.prewarms++
	e.mu.Unlock()
}

// warmLate compiles the scene after loading completed when a swap was delivered or heavy actors
// were created, so lazily loaded models never reach Render unprepared.
func (e *engine) warmLate() {
	if !e.warmPending || !e.Loaded() {
		return
	}
	e.warmPending = false
	if err := e.renderer.Compile(e.scene, e.cam); err != nil {
		e.logger.Warn("late compile failed", "err", err)
		return
	}

	e.mu.Lock()
	e.warms++
	e.mu.Unlock()
	e.logger.Debug("late arrivals compiled")
}

// emitProgress forwards a loading percentage to listeners when it changes.
func (e *engine) emitProgress(pct int) {
	e.mu.Lock()
	if pct == e.lastPct {
		e.mu.Unlock()
		return
	}
	e.lastPct = pct
	listeners := e.progressListeners
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(pct)
	}
}

// publishShowcase recomputes the camera-depth signal and notifies on change.
func (e *engine) publishShowcase() {
	in := e.cam.Position().Y() < e.cfg.Showcase.ThresholdY

	e.mu.Lock()
	if in == e.inShowcase {
		e.mu.Unlock()
		return
	}
	e.inShowcase = in
	listeners := e.showcaseListeners
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(in)
	}
}

// restPose is the camera pose before any timeline phase applies.
func restPose(s device.Settings) camera.Pose {
	return camera.Pose{Position: mgl32.Vec3{0, 0, s.CameraZ}}
}

func aspect(w, h float32) float32 {
	if h <= 0 {
		return 1
	}
	return w / h
}
