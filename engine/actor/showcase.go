package actor

import (
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
	"github.com/Carmen-Shannon/oxy-scroll/engine/loader"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// solarSystemRadius bounds the decorative sub-scene shown until the vehicle loads.
const solarSystemRadius = 3

// Showcase is the vehicle actor. It sits at a fixed depth far below the hero content and is only
// reached by moving the camera. Until its model loads it shows a spinning decorative sub-scene.
type Showcase struct {
	cfg    config.ShowcaseConfig
	obj    game_object.GameObject
	tier   device.Tier
	handle loader.Handle
	rig    *light.Rig

	yaw     float32
	waiting []func()
}

var (
	_ Actor      = &Showcase{}
	_ AssetOwner = &Showcase{}
	_ Lazy       = &Showcase{}
	_ TierAware  = &Showcase{}
	_ Lit        = &Showcase{}
)

// newShowcaseRig is the cyan underglow plus a white key and cyan fill spot aimed at the vehicle.
func newShowcaseRig() *light.Rig {
	return light.NewRig().
		Add(light.NewLight(light.LightTypePoint, light.WithName("underglow"), light.WithColor(0x00f0ff), light.WithIntensity(2), light.WithRange(8)),
			mgl32.Vec3{0, 0.2, 0}, mgl32.Vec3{}).
		Add(light.NewLight(light.LightTypeSpot, light.WithName("key"), light.WithColor(0xffffff), light.WithIntensity(20), light.WithSpotCone(20, 30)),
			mgl32.Vec3{5, 8, 5}, mgl32.Vec3{}).
		Add(light.NewLight(light.LightTypeSpot, light.WithName("fill"), light.WithColor(0x00f0ff), light.WithIntensity(6)),
			mgl32.Vec3{-5, 4, -5}, mgl32.Vec3{})
}

// NewShowcase creates the showcase at cfg.Position.
//
// Parameters:
//   - cfg: the showcase tunables
//   - tier: the initial device tier
//
// Returns:
//   - *Showcase: the showcase
func NewShowcase(cfg config.ShowcaseConfig, tier device.Tier) *Showcase {
	s := &Showcase{cfg: cfg, tier: tier, rig: newShowcaseRig()}
	pos := cfg.Position.Vec()
	s.rig.Follow(pos)
	s.obj = game_object.NewGameObject(
		game_object.WithName("showcase"),
		game_object.WithPlaceholder(model.NewProcedural("solar-system", solarSystemRadius)),
		game_object.WithPosition(pos.X(), pos.Y(), pos.Z()),
	)
	s.applyMount()
	return s
}

func (s *Showcase) Name() string {
	return "showcase"
}

func (s *Showcase) Objects() []game_object.GameObject {
	return []game_object.GameObject{s.obj}
}

func (s *Showcase) Heavy() bool {
	return true
}

func (s *Showcase) RegisterLoads(g loader.Gateway) {
	s.handle = g.Load(s.cfg.Model, loader.StrategyLazy, func(m model.Model) {
		if !s.obj.Swap(m) {
			return
		}
		s.obj.SetLocal(game_object.Identity())
		waiting := s.waiting
		s.waiting = nil
		for _, fn := range waiting {
			fn()
		}
	})
}

func (s *Showcase) LazyLoad(onReady func()) {
	if s.obj.Representation() == game_object.RepresentationLoaded {
		if onReady != nil {
			onReady()
		}
		return
	}
	if s.handle == nil {
		return
	}
	if onReady != nil {
		s.waiting = append(s.waiting, onReady)
	}
	s.handle.Trigger()
}

func (s *Showcase) ApplyTier(settings device.Settings) {
	s.tier = settings.Tier
	s.rig.SetShadows(settings.Shadows)
	s.applyMount()
}

func (s *Showcase) Lights() []light.Light {
	return s.rig.Lights()
}

func (s *Showcase) Update(f Frame) {
	s.tier = f.Tier
	s.obj.SetRotation(mgl32.Vec3{0, s.yaw, 0})
	if s.obj.Representation() != game_object.RepresentationPlaceholder {
		return
	}
	spin := f.Elapsed * s.cfg.PlaceholderSpin
	s.obj.SetLocal(game_object.Transform{
		Rotation: mgl32.Vec3{math32.Sin(spin) * s.cfg.PlaceholderWobble, spin, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	})
}

// InRegion reports whether a camera at height cameraY is inside the showcase region.
//
// Parameters:
//   - cameraY: the camera's world Y
//
// Returns:
//   - bool: true below the threshold
func (s *Showcase) InRegion(cameraY float32) bool {
	return cameraY < s.cfg.ThresholdY
}

// Drag rotates the vehicle by dx pixels of horizontal drag. It only acts while the camera is
// inside the showcase region.
//
// Parameters:
//   - dx: horizontal drag delta in pixels
//   - cameraY: the camera's world Y
//
// Returns:
//   - bool: true if the drag was applied
func (s *Showcase) Drag(dx, cameraY float32) bool {
	if !s.InRegion(cameraY) {
		return false
	}
	s.yaw += dx * s.cfg.DragSensitivity
	s.obj.SetRotation(mgl32.Vec3{0, s.yaw, 0})
	return true
}

// Yaw returns the accumulated drag rotation in radians.
func (s *Showcase) Yaw() float32 {
	return s.yaw
}

// Object returns the showcase GameObject.
func (s *Showcase) Object() game_object.GameObject {
	return s.obj
}

// Handle returns the model load handle, or nil before RegisterLoads.
func (s *Showcase) Handle() loader.Handle {
	return s.handle
}

func (s *Showcase) applyMount() {
	scale := s.cfg.ModelScaleDesktop
	if s.tier == device.TierMobile {
		scale = s.cfg.ModelScaleMobile
	}
	s.obj.SetMount(game_object.Transform{Scale: mgl32.Vec3{scale, scale, scale}})
}
