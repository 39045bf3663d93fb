package light

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithName is an option builder that sets the light identifier.
//
// Parameters:
//   - name: the light name
//
// Returns:
//   - LightBuilderOption: a function that applies the name option to a lightImpl
func WithName(name string) LightBuilderOption {
	return func(l *lightImpl) {
		l.name = name
	}
}

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - pos: the position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(pos mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = pos
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - dir: the direction
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(dir mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = normalize(dir)
	}
}

// WithColor is an option builder that sets the light color from a 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.ColorFromHex(hex)
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the maximum attenuation distance.
//
// Parameters:
//   - lightRange: the range value; zero means no cutoff
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotCone is an option builder that sets the inner and outer cone half-angles.
// Angles are specified in degrees and stored as cosines.
//
// Parameters:
//   - innerDeg: inner cone half-angle in degrees
//   - outerDeg: outer cone half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the cone option to a lightImpl
func WithSpotCone(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.innerCone = math32.Cos(common.DegToRad(innerDeg))
		l.outerCone = math32.Cos(common.DegToRad(outerDeg))
	}
}

// WithCastsShadows is an option builder that marks the light as a shadow caster.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// normalize returns the unit vector of v, or the zero vector when v has no length.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
