package actor

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/light"
	"github.com/Carmen-Shannon/oxy-scroll/engine/loader"
	"github.com/Carmen-Shannon/oxy-scroll/engine/mapper"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CharacterInput is everything the character's scroll interpolation depends on.
type CharacterInput struct {
	ScrollY        float32
	ViewportHeight float32
	Hero           mgl32.Vec3
	Anchor         mgl32.Vec3
	FinalScale     float32
	ExtraYaw       float32
	// SectionFound is false when the hide section is missing; the character then never hides.
	SectionFound bool
	SectionTop   float32
	HideOffset   float32
}

// CharacterPose is the interpolated root state of the character.
type CharacterPose struct {
	// T is the blend factor in [0, 1] between hero (0) and anchor (1).
	T        float32
	Position mgl32.Vec3
	Scale    float32
	Yaw      float32
	Visible  bool
}

// Interpolate blends the character from its hero position to its anchor over the first viewport
// height of scroll. Past that window it stays locked on the anchor. It hides once scroll passes
// SectionTop + HideOffset.
//
// Parameters:
//   - in: the interpolation inputs
//
// Returns:
//   - CharacterPose: the resulting pose
func Interpolate(in CharacterInput) CharacterPose {
	t := common.Saturate(in.ScrollY / in.ViewportHeight)
	return CharacterPose{
		T:        t,
		Position: common.LerpVec3(in.Hero, in.Anchor, t),
		Scale:    1 - (1-in.FinalScale)*t,
		Yaw:      t * (2*math32.Pi + in.ExtraYaw),
		Visible:  !(in.SectionFound && in.ScrollY > in.SectionTop+in.HideOffset),
	}
}

// IdleOffset is the idle motion at one instant: vertical bob, yaw sway and pitch tilt.
type IdleOffset struct {
	Bob  float32
	Sway float32
	Tilt float32
}

// Idle samples the idle motion at an absolute time.
//
// Parameters:
//   - elapsed: seconds since start
//   - cfg: amplitudes and angular frequencies
//
// Returns:
//   - IdleOffset: the offsets at elapsed
func Idle(elapsed float32, cfg config.IdleConfig) IdleOffset {
	return IdleOffset{
		Bob:  math32.Sin(elapsed*cfg.BobFrequency) * cfg.BobAmplitude,
		Sway: math32.Sin(elapsed*cfg.SwayFrequency) * cfg.SwayAmplitude,
		Tilt: math32.Sin(elapsed*cfg.TiltFrequency) * cfg.TiltAmplitude,
	}
}

// Transform converts the offsets into a local-layer transform.
func (o IdleOffset) Transform() game_object.Transform {
	return game_object.Transform{
		Position: mgl32.Vec3{0, o.Bob, 0},
		Rotation: mgl32.Vec3{o.Tilt, o.Sway, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Character is the anchored actor: it starts at a hero position and settles onto a document
// anchor as the first screen scrolls away.
type Character struct {
	cfg     config.CharacterConfig
	mapper  mapper.Mapper
	anchor  *mapper.Anchor
	section *mapper.Anchor

	obj  game_object.GameObject
	halo *ParticleField
	mask *ParticleField
	rig  *light.Rig

	tier   device.Tier
	handle loader.Handle
	pose   CharacterPose
}

var (
	_ Actor      = &Character{}
	_ AssetOwner = &Character{}
	_ TierAware  = &Character{}
	_ Lit        = &Character{}
)

// newCharacterRig is the cyan rim, white key and dim fill that travel with the head.
func newCharacterRig() *light.Rig {
	return light.NewRig().
		Add(light.NewLight(light.LightTypeSpot, light.WithName("rim"), light.WithColor(0x00f0ff), light.WithIntensity(10)),
			mgl32.Vec3{-2, 3, -2}, mgl32.Vec3{}).
		Add(light.NewLight(light.LightTypeDirectional, light.WithName("key"), light.WithColor(0xffffff), light.WithIntensity(1)),
			mgl32.Vec3{2, 2, 5}, mgl32.Vec3{}).
		Add(light.NewLight(light.LightTypeAmbient, light.WithName("fill"), light.WithColor(0x404040), light.WithIntensity(0.5)),
			mgl32.Vec3{}, mgl32.Vec3{})
}

// NewCharacter creates the character with a proxy visual until its model loads.
//
// Parameters:
//   - cfg: the character tunables
//   - m: the mapper resolving the anchor and hide section
//   - tier: the initial device tier
//
// Returns:
//   - *Character: the character
func NewCharacter(cfg config.CharacterConfig, m mapper.Mapper, tier device.Tier) *Character {
	if m == nil {
		panic("actor: NewCharacter requires a mapper")
	}
	c := &Character{
		cfg:     cfg,
		mapper:  m,
		anchor:  m.Anchor(cfg.Anchor),
		section: m.Anchor(cfg.Section),
		halo:    NewParticleField("character-halo", cfg.Halo, cfg.Halo.Count),
		mask:    NewParticleField("character-mask", cfg.Mask, cfg.Mask.Count),
		rig:     newCharacterRig(),
		tier:    tier,
		pose:    CharacterPose{Scale: 1, Visible: true},
	}
	hero := c.hero()
	c.obj = game_object.NewGameObject(
		game_object.WithName("character"),
		game_object.WithPlaceholder(model.NewProcedural("character-proxy", 1)),
		game_object.WithPosition(hero.X(), hero.Y(), hero.Z()),
	)
	c.applyMount()
	c.rig.Follow(hero)
	return c
}

func (c *Character) Name() string {
	return "character"
}

func (c *Character) Objects() []game_object.GameObject {
	return []game_object.GameObject{c.obj, c.halo.Object(), c.mask.Object()}
}

func (c *Character) Heavy() bool {
	return true
}

func (c *Character) RegisterLoads(g loader.Gateway) {
	c.handle = g.Load(c.cfg.Model, loader.StrategyEager, func(m model.Model) {
		c.obj.Swap(m)
	})
}

func (c *Character) ApplyTier(s device.Settings) {
	c.tier = s.Tier
	c.rig.SetShadows(s.Shadows)
	c.applyMount()
}

func (c *Character) Lights() []light.Light {
	return c.rig.Lights()
}

func (c *Character) Update(f Frame) {
	c.tier = f.Tier

	target := c.mapper.Resolve(c.anchor, f.Camera)
	if c.anchor.Found() {
		target = c.AnchorTarget(target)
	}

	in := CharacterInput{
		ScrollY:        f.ScrollY,
		ViewportHeight: f.ViewportHeight,
		Hero:           c.hero(),
		Anchor:         target,
		FinalScale:     c.cfg.FinalScale,
		ExtraYaw:       c.cfg.ExtraYaw,
		HideOffset:     c.cfg.HideOffset,
	}
	if el := c.section.Element(); el != nil {
		in.SectionFound = true
		in.SectionTop = el.OffsetTop()
	}

	c.pose = Interpolate(in)
	c.obj.SetPosition(c.pose.Position)
	c.obj.SetScale(mgl32.Vec3{c.pose.Scale, c.pose.Scale, c.pose.Scale})
	c.obj.SetRotation(mgl32.Vec3{0, c.pose.Yaw, 0})
	c.obj.SetEnabled(c.pose.Visible)
	idle := Idle(f.Elapsed, c.cfg.Idle).Transform()
	c.obj.SetLocal(idle)

	c.halo.Update(f)
	c.halo.Object().SetPosition(c.pose.Position)
	c.halo.Object().SetEnabled(c.pose.Visible)
	c.rig.Follow(c.pose.Position)
	c.rig.SetEnabled(c.pose.Visible)

	// the mask is parented to the head: same root, same idle layer
	c.mask.Update(f)
	mask := c.mask.Object()
	mask.SetPosition(c.pose.Position)
	mask.SetScale(mgl32.Vec3{c.pose.Scale, c.pose.Scale, c.pose.Scale})
	mask.SetRotation(mgl32.Vec3{0, c.pose.Yaw, 0})
	mask.SetLocal(idle)
	mask.SetEnabled(c.pose.Visible)
}

// AnchorTarget applies the tier's anchor offset to a mapped anchor point.
//
// Parameters:
//   - mapped: the mapper's world point for the anchor
//
// Returns:
//   - mgl32.Vec3: the point the character settles on
func (c *Character) AnchorTarget(mapped mgl32.Vec3) mgl32.Vec3 {
	if c.tier == device.TierMobile {
		if c.cfg.CenterOnMobile {
			mapped[0] = 0
		}
		return mapped.Add(c.cfg.AnchorOffsetMobile.Vec())
	}
	return mapped.Add(c.cfg.AnchorOffsetDesktop.Vec())
}

// Object returns the character's main GameObject.
func (c *Character) Object() game_object.GameObject {
	return c.obj
}

// Pose returns the pose computed by the last Update.
func (c *Character) Pose() CharacterPose {
	return c.pose
}

// Handle returns the model load handle, or nil before RegisterLoads.
func (c *Character) Handle() loader.Handle {
	return c.handle
}

// Halo returns the ambient particle halo that follows the character.
func (c *Character) Halo() *ParticleField {
	return c.halo
}

// Mask returns the decorative particle layer that moves and hides with the head.
func (c *Character) Mask() *ParticleField {
	return c.mask
}

func (c *Character) hero() mgl32.Vec3 {
	if c.tier == device.TierMobile {
		return c.cfg.HeroMobile.Vec()
	}
	return c.cfg.HeroDesktop.Vec()
}

func (c *Character) applyMount() {
	scale := c.cfg.ModelScaleDesktop
	if c.tier == device.TierMobile {
		scale = c.cfg.ModelScaleMobile
	}
	c.obj.SetMount(game_object.Transform{
		Position: mgl32.Vec3{0, c.cfg.ModelOffsetY, 0},
		Scale:    mgl32.Vec3{scale, scale, scale},
	})
}
