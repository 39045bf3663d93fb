package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// rigEntry is one light placed relative to the rig origin.
type rigEntry struct {
	light  Light
	offset mgl32.Vec3
	target mgl32.Vec3
}

// Rig is a group of lights that travels with an actor. Each light sits at a fixed offset from
// the rig origin and, for spot and directional lights, aims at a fixed point relative to it.
type Rig struct {
	entries []rigEntry
	enabled bool
	origin  mgl32.Vec3
}

// NewRig creates an empty, enabled rig at the origin.
//
// Returns:
//   - *Rig: the rig
func NewRig() *Rig {
	return &Rig{enabled: true}
}

// Add places l at offset from the rig origin, aimed at target (also relative to the origin).
// Returns the rig for chaining.
//
// Parameters:
//   - l: the light
//   - offset: the light position relative to the origin
//   - target: the aim point relative to the origin
//
// Returns:
//   - *Rig: the rig
func (r *Rig) Add(l Light, offset, target mgl32.Vec3) *Rig {
	r.entries = append(r.entries, rigEntry{light: l, offset: offset, target: target})
	r.place(len(r.entries) - 1)
	l.SetEnabled(r.enabled)
	return r
}

// Follow moves the rig origin and re-places every light.
//
// Parameters:
//   - origin: the new world-space origin
func (r *Rig) Follow(origin mgl32.Vec3) {
	r.origin = origin
	for i := range r.entries {
		r.place(i)
	}
}

// SetEnabled toggles every light in the rig.
func (r *Rig) SetEnabled(enabled bool) {
	r.enabled = enabled
	for _, e := range r.entries {
		e.light.SetEnabled(enabled)
	}
}

// SetShadows toggles shadow casting on every spot and directional light.
func (r *Rig) SetShadows(enabled bool) {
	for _, e := range r.entries {
		if t := e.light.Type(); t == LightTypeSpot || t == LightTypeDirectional {
			e.light.SetCastsShadows(enabled)
		}
	}
}

// Lights returns the rig's lights in insertion order.
func (r *Rig) Lights() []Light {
	out := make([]Light, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.light
	}
	return out
}

// Origin returns the current rig origin.
func (r *Rig) Origin() mgl32.Vec3 {
	return r.origin
}

func (r *Rig) place(i int) {
	e := r.entries[i]
	switch e.light.Type() {
	case LightTypePoint:
		e.light.SetPosition(r.origin.Add(e.offset))
	case LightTypeSpot:
		e.light.SetPosition(r.origin.Add(e.offset))
		e.light.SetDirection(e.target.Sub(e.offset))
	case LightTypeDirectional:
		e.light.SetDirection(e.target.Sub(e.offset))
	}
}
