package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a position, XYZ Euler rotation in radians, and per-axis scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Identity returns a transform with unit scale and no translation or rotation.
func Identity() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix composes translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	return common.BuildModelMatrix(t.Position, t.Rotation, t.Scale)
}

// Representation identifies what a GameObject currently displays.
type Representation int

const (
	// RepresentationNone means no visual has been assigned.
	RepresentationNone Representation = iota
	// RepresentationPlaceholder means the stand-in visual is shown.
	RepresentationPlaceholder
	// RepresentationLoaded means the loaded model replaced the placeholder.
	RepresentationLoaded
)

func (r Representation) String() string {
	switch r {
	case RepresentationPlaceholder:
		return "placeholder"
	case RepresentationLoaded:
		return "loaded"
	default:
		return "none"
	}
}

type gameObject struct {
	id       uint64
	name     string
	enabled  atomic.Bool
	attached atomic.Bool

	transform Transform
	local     Transform
	mount     Transform

	placeholder model.Visual
	mdl         model.Model
}

// GameObject defines the interface for a scene entity owned by an actor.
// Its world matrix is transform * local, followed by mount once the loaded model is shown.
// The transform is the actor-driven root (scroll interpolation, fixed showcase position),
// local is the additive idle-motion layer, and mount places the loaded asset inside the root
// (per-tier model scale and vertical offset). A GameObject shows exactly one visual: its placeholder
// until Swap, then the loaded model. GameObjects are only mutated from the frame goroutine.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is visible.
	//
	// Returns:
	//   - bool: true if visible
	Enabled() bool

	// SetEnabled sets whether the object is visible. Hidden objects stay attached and compiled.
	//
	// Parameters:
	//   - enabled: true to show
	SetEnabled(enabled bool)

	// Attached returns whether the object is part of the scene graph.
	//
	// Returns:
	//   - bool: true if attached
	Attached() bool

	// SetAttached marks the object as attached to or detached from the scene graph.
	//
	// Parameters:
	//   - attached: true to attach
	SetAttached(attached bool)

	// Transform returns the root transform.
	//
	// Returns:
	//   - Transform: the root transform
	Transform() Transform

	// SetTransform replaces the root transform.
	//
	// Parameters:
	//   - t: the new root transform
	SetTransform(t Transform)

	// Position returns the root position.
	//
	// Returns:
	//   - mgl32.Vec3: root position
	Position() mgl32.Vec3

	// SetPosition sets the root position.
	//
	// Parameters:
	//   - pos: the new position
	SetPosition(pos mgl32.Vec3)

	// Rotation returns the root XYZ Euler rotation.
	//
	// Returns:
	//   - mgl32.Vec3: root rotation in radians
	Rotation() mgl32.Vec3

	// SetRotation sets the root rotation.
	//
	// Parameters:
	//   - rot: rotation in radians
	SetRotation(rot mgl32.Vec3)

	// Scale returns the root scale.
	//
	// Returns:
	//   - mgl32.Vec3: per-axis scale
	Scale() mgl32.Vec3

	// SetScale sets the root scale.
	//
	// Parameters:
	//   - scale: per-axis scale
	SetScale(scale mgl32.Vec3)

	// Local returns the idle-motion layer.
	//
	// Returns:
	//   - Transform: the local layer
	Local() Transform

	// SetLocal replaces the idle-motion layer. It never touches the root transform.
	//
	// Parameters:
	//   - t: the new local layer
	SetLocal(t Transform)

	// Mount returns the placement applied to the loaded model.
	//
	// Returns:
	//   - Transform: the mount transform
	Mount() Transform

	// SetMount sets the placement applied to the loaded model.
	//
	// Parameters:
	//   - t: the mount transform
	SetMount(t Transform)

	// Placeholder returns the stand-in visual, or nil once swapped.
	//
	// Returns:
	//   - model.Visual: the placeholder or nil
	Placeholder() model.Visual

	// Model returns the loaded model, or nil before Swap.
	//
	// Returns:
	//   - model.Model: the loaded model or nil
	Model() model.Model

	// Visual returns whichever visual is currently shown.
	//
	// Returns:
	//   - model.Visual: the loaded model, the placeholder, or nil
	Visual() model.Visual

	// Representation reports which visual is shown.
	//
	// Returns:
	//   - Representation: none, placeholder or loaded
	Representation() Representation

	// Swap replaces the placeholder with the loaded model in one step. Only the first call with
	// a non-nil model has any effect.
	//
	// Parameters:
	//   - m: the loaded model
	//
	// Returns:
	//   - bool: true if the swap happened
	Swap(m model.Model) bool

	// WorldMatrix returns the full local-to-world matrix of the shown visual.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix() mgl32.Mat4

	// WorldCenter returns the world position of the shown visual's local origin.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space center
	WorldCenter() mgl32.Vec3

	// WorldRadius returns a radius around WorldCenter that encloses the shown visual.
	//
	// Returns:
	//   - float32: the world-space bounding radius, zero without a visual
	WorldRadius() float32
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled with identity transforms.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		transform: Identity(),
		local:     Identity(),
		mount:     Identity(),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Attached() bool {
	return g.attached.Load()
}

func (g *gameObject) SetAttached(attached bool) {
	g.attached.Store(attached)
}

func (g *gameObject) Transform() Transform {
	return g.transform
}

func (g *gameObject) SetTransform(t Transform) {
	g.transform = t
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.transform.Position
}

func (g *gameObject) SetPosition(pos mgl32.Vec3) {
	g.transform.Position = pos
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	return g.transform.Rotation
}

func (g *gameObject) SetRotation(rot mgl32.Vec3) {
	g.transform.Rotation = rot
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.transform.Scale
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.transform.Scale = scale
}

func (g *gameObject) Local() Transform {
	return g.local
}

func (g *gameObject) SetLocal(t Transform) {
	g.local = t
}

func (g *gameObject) Mount() Transform {
	return g.mount
}

func (g *gameObject) SetMount(t Transform) {
	g.mount = t
}

func (g *gameObject) Placeholder() model.Visual {
	return g.placeholder
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Visual() model.Visual {
	if g.mdl != nil {
		return g.mdl
	}
	return g.placeholder
}

func (g *gameObject) Representation() Representation {
	switch {
	case g.mdl != nil:
		return RepresentationLoaded
	case g.placeholder != nil:
		return RepresentationPlaceholder
	default:
		return RepresentationNone
	}
}

func (g *gameObject) Swap(m model.Model) bool {
	if m == nil || g.mdl != nil {
		return false
	}
	g.mdl = m
	g.placeholder = nil
	return true
}

func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	world := g.transform.Matrix().Mul4(g.local.Matrix())
	if g.mdl != nil {
		world = world.Mul4(g.mount.Matrix())
	}
	return world
}

func (g *gameObject) WorldCenter() mgl32.Vec3 {
	return g.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

func (g *gameObject) WorldRadius() float32 {
	v := g.Visual()
	if v == nil {
		return 0
	}
	scale := mulScale(g.transform.Scale, g.local.Scale)
	if g.mdl != nil {
		scale = mulScale(scale, g.mount.Scale)
	}
	return v.Radius() * maxAbs(scale)
}

func mulScale(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func maxAbs(v mgl32.Vec3) float32 {
	m := float32(0)
	for _, c := range v {
		if c < 0 {
			c = -c
		}
		if c > m {
			m = c
		}
	}
	return m
}
