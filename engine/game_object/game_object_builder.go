package game_object

import (
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the name of the GameObject.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject starts visible.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPlaceholder sets the stand-in visual shown until a model is swapped in.
//
// Parameters:
//   - v: the placeholder visual
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the placeholder
func WithPlaceholder(v model.Visual) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.placeholder = v
	}
}

// WithModel starts the GameObject with an already loaded model and no placeholder.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
		obj.placeholder = nil
	}
}

// WithPosition sets the initial root position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial root rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Rotation = mgl32.Vec3{rx, ry, rz}
	}
}

// WithScale sets the initial root scale.
//
// Parameters:
//   - sx, sy, sz: scale factors
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithMount sets the placement applied to the loaded model.
//
// Parameters:
//   - t: the mount transform
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the mount
func WithMount(t Transform) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mount = t
	}
}
