package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/Carmen-Shannon/oxy-scroll/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoSurface is returned when a GPU backend is requested without a render surface.
	ErrNoSurface = errors.New("renderer: no render surface")

	// ErrReleased is returned by Compile and Render after Release.
	ErrReleased = errors.New("renderer: released")
)

// Surface is a platform render target. window.Window satisfies it.
type Surface interface {
	// SurfaceDescriptor returns the platform descriptor WebGPU creates its surface from.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	// Width returns the surface width in physical pixels.
	Width() int
	// Height returns the surface height in physical pixels.
	Height() int
}

// Stats is a snapshot of renderer bookkeeping.
type Stats struct {
	// Frames is the number of frames rendered.
	Frames int
	// Compiles is the number of Compile calls.
	Compiles int
	// Compiled is the number of distinct visuals prepared so far.
	Compiled int
	// Stalls counts visuals that were first prepared by Render instead of Compile.
	Stalls int
	// Visible is the number of objects inside the frustum on the last frame.
	Visible int
	// Culled is the number of objects outside the frustum on the last frame.
	Culled int
	// Lights is the number of light records uploaded on the last frame.
	Lights int

	Width       int
	Height      int
	PixelRatio  float32
	SampleCount MSAASampleCount
	Tier        device.Tier
	Exposure    float32
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *slog.Logger

	backendType RendererBackendType
	backend     RendererBackend

	compiled map[model.Visual]struct{}
	stats    Stats
	released bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer draws a Scene from a Camera. It is a black box to the engine: the engine configures it
// per tier, asks for an explicit compile during pre-warm, and renders once per frame.
type Renderer interface {
	// Configure applies tier settings: MSAA follows the antialias flag and exposure is recorded.
	// The surface is rebuilt when the sample count changes.
	//
	// Parameters:
	//   - s: the tier settings
	Configure(s device.Settings)

	// Resize configures the backend for a new viewport size.
	//
	// Parameters:
	//   - width: viewport width in CSS pixels
	//   - height: viewport height in CSS pixels
	//   - pixelRatio: physical pixels per CSS pixel, already capped by the tier
	Resize(width, height int, pixelRatio float32)

	// Compile prepares every attached object of the scene, visible or not, so the first frames
	// that show them do not stall.
	//
	// Parameters:
	//   - sc: the scene to compile
	//   - cam: the camera the scene is framed by
	//
	// Returns:
	//   - error: ErrReleased after Release, or a backend error
	Compile(sc scene.Scene, cam camera.Camera) error

	// Render draws one frame: clear to the scene background, cull by the camera frustum,
	// submit and present.
	//
	// Parameters:
	//   - sc: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: ErrReleased after Release, or a backend error
	Render(sc scene.Scene, cam camera.Camera) error

	// IsCompiled reports whether a visual has been prepared.
	//
	// Parameters:
	//   - v: the visual
	//
	// Returns:
	//   - bool: true once Compile or Render has seen it
	IsCompiled(v model.Visual) bool

	// Stats returns a snapshot of renderer bookkeeping.
	//
	// Returns:
	//   - Stats: the current stats
	Stats() Stats

	// Backend returns the backend type the renderer was created with.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	Backend() RendererBackendType

	// Release frees the backend. Further Compile and Render calls fail with ErrReleased.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type.
// The surface is required for BackendTypeWGPU and ignored for BackendTypeNull.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the platform render surface, typically a window.Window
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: ErrNoSurface when a GPU backend has no surface, or a device setup error
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		logger:      slog.Default(),
		backendType: backendType,
		compiled:    make(map[model.Visual]struct{}),
		stats:       Stats{PixelRatio: 1},
	}

	// Options first so config flags are known before the backend requests an adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}
	r.stats.SampleCount = msaa

	switch backendType {
	case BackendTypeNull:
		r.backend = newNullRendererBackend(msaa)
	case BackendTypeWGPU:
		if surface == nil {
			return nil, ErrNoSurface
		}
		b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		if err != nil {
			return nil, err
		}
		r.backend = b
	default:
		return nil, fmt.Errorf("renderer: unknown backend type %d", backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if surface != nil {
		r.stats.Width, r.stats.Height, r.stats.PixelRatio = surface.Width(), surface.Height(), 1
		if err := r.backend.ConfigureSurface(surface.Width(), surface.Height()); err != nil {
			r.backend.Release()
			return nil, err
		}
	}
	return r, nil
}

func (r *renderer) Configure(s device.Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := MSAAOff
	if s.Antialias {
		count = MSAA4x
	}
	r.stats.Tier = s.Tier
	r.stats.Exposure = s.ToneMappingExposure
	if count == r.stats.SampleCount {
		return
	}
	r.stats.SampleCount = count
	r.backend.SetSampleCount(count)
	r.reconfigure("sample count")
}

func (r *renderer) Resize(width, height int, pixelRatio float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	r.stats.Width, r.stats.Height, r.stats.PixelRatio = width, height, pixelRatio
	r.reconfigure("resize")
}

// reconfigure rebuilds the surface at the current physical size. Caller must hold the mutex.
// The previous surface keeps presenting on failure.
func (r *renderer) reconfigure(cause string) {
	w, h := r.physicalSize()
	if err := r.backend.ConfigureSurface(w, h); err != nil {
		r.logger.Warn("surface reconfigure failed", "cause", cause, "width", w, "height", h, "err", err)
	}
}

// physicalSize converts the CSS size to device pixels. Caller must hold the mutex.
func (r *renderer) physicalSize() (int, int) {
	return int(float32(r.stats.Width) * r.stats.PixelRatio), int(float32(r.stats.Height) * r.stats.PixelRatio)
}

func (r *renderer) Compile(sc scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}
	for _, obj := range sc.Objects() {
		if v := obj.Visual(); v != nil {
			r.compiled[v] = struct{}{}
		}
	}
	r.stats.Compiles++
	r.stats.Compiled = len(r.compiled)

	if err := r.backend.Warm(); err != nil {
		return fmt.Errorf("compile warm-up failed: %w", err)
	}
	return nil
}

func (r *renderer) Render(sc scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}

	frustum := common.ExtractFrustum(cam.ViewProjectionMatrix())
	visible, culled := 0, 0
	for _, obj := range sc.Objects() {
		v := obj.Visual()
		if v == nil || !obj.Enabled() {
			continue
		}
		if !frustum.ContainsSphere(obj.WorldCenter(), obj.WorldRadius()) {
			culled++
			continue
		}
		visible++
		if _, ok := r.compiled[v]; !ok {
			r.compiled[v] = struct{}{}
			r.stats.Stalls++
		}
	}
	r.stats.Visible, r.stats.Culled = visible, culled
	r.stats.Compiled = len(r.compiled)

	env := sc.Environment()
	ambient := env.AmbientIntensity
	lights, count := light.MarshalLightBuffer(sc.Lights(), [3]float32{ambient, ambient, ambient})
	if err := r.backend.UploadLights(lights); err != nil {
		return fmt.Errorf("upload lights: %w", err)
	}
	r.stats.Lights = count

	r.backend.SetClearColor(env.Background)
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.backend.Present()
	r.stats.Frames++
	return nil
}

func (r *renderer) IsCompiled(v model.Visual) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.compiled[v]
	return ok
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Backend() RendererBackendType {
	return r.backendType
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}
