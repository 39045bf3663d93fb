package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/clock"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/loader"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scroll/engine/viewport"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithFrameRate sets the rate Run steps frames at.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.frameInterval = time.Duration(float64(time.Second) / fps)
	}
}

// WithViewport sets the viewport the engine reads scroll, size and element layout from.
//
// Parameters:
//   - vp: the viewport
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(vp viewport.Viewport) EngineBuilderOption {
	return func(e *engine) {
		e.viewport = vp
	}
}

// WithRenderer sets the renderer. Without one, Start fails with ErrNoRenderSurface.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithConfig sets the engine configuration.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg *config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
	}
}

// WithGateway sets a pre-built loader gateway. The engine does not close a gateway it did not create.
//
// Parameters:
//   - g: the gateway
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGateway(g loader.Gateway) EngineBuilderOption {
	return func(e *engine) {
		e.gateway = g
	}
}

// WithTimeProvider sets the clock frames are timed with.
//
// Parameters:
//   - tp: the time provider
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTimeProvider(tp clock.TimeProvider) EngineBuilderOption {
	return func(e *engine) {
		if tp != nil {
			e.time = tp
		}
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
