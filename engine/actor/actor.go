// Package actor holds the scene's animated entities. Each actor keeps its state in an explicit
// struct and derives it with pure functions (Interpolate, Idle, Advance) so the per-frame update
// is reproducible from inputs alone.
package actor

import (
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
	"github.com/Carmen-Shannon/oxy-scroll/engine/loader"
)

// Frame is the per-frame input every actor update receives.
type Frame struct {
	// Elapsed is the absolute time since start in seconds. Idle motion samples it directly.
	Elapsed float32
	// Delta is the time since the previous frame in seconds; zero on the first frame after resume.
	Delta float32
	// Progress is the normalized scroll progress the timeline used this frame.
	Progress float32
	// ScrollY is the document scroll offset in CSS pixels.
	ScrollY        float32
	ViewportWidth  float32
	ViewportHeight float32
	Tier           device.Tier
	// Camera has already been posed by the timeline for this frame.
	Camera camera.Camera
}

// Actor defines the interface for a positioned, animated scene entity.
type Actor interface {
	// Name returns the actor's unique name.
	//
	// Returns:
	//   - string: the actor name
	Name() string

	// Objects returns every GameObject the actor owns, in draw order.
	//
	// Returns:
	//   - []game_object.GameObject: the owned objects
	Objects() []game_object.GameObject

	// Heavy reports whether the actor is only attached on tiers that allow heavy actors.
	//
	// Returns:
	//   - bool: true for heavy actors
	Heavy() bool

	// Update advances the actor by one frame.
	//
	// Parameters:
	//   - f: the frame input
	Update(f Frame)
}

// AssetOwner is implemented by actors that load a model through the gateway.
type AssetOwner interface {
	// RegisterLoads registers the actor's assets. Eager actors start loading immediately.
	//
	// Parameters:
	//   - g: the gateway to register with
	RegisterLoads(g loader.Gateway)
}

// Lazy is implemented by actors whose asset waits for an external visibility trigger.
type Lazy interface {
	// LazyLoad starts the deferred load. onReady runs on the frame goroutine right after the
	// loaded model replaces the placeholder, or immediately if it already has.
	//
	// Parameters:
	//   - onReady: called once the model is shown; may be nil
	LazyLoad(onReady func())
}

// Lit is implemented by actors that carry their own light rig.
type Lit interface {
	// Lights returns the actor's lights. Disabled lights are included.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light
}

// TierAware is implemented by actors whose layout depends on the device tier.
type TierAware interface {
	// ApplyTier adapts the actor to new tier settings.
	//
	// Parameters:
	//   - s: the active settings
	ApplyTier(s device.Settings)
}
