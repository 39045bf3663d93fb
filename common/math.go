package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	return mgl32.Clamp(v, lo, hi)
}

// Saturate clamps v to [0, 1]. NaN maps to 0.
func Saturate(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return mgl32.Clamp(v, 0, 1)
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of a toward b by t. t is not clamped.
//
// Parameters:
//   - a: start vector
//   - b: end vector
//   - t: interpolation factor
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Wrap folds v into the half-open range [lo, hi) by modular arithmetic.
// A non-positive span returns lo.
//
// Parameters:
//   - v: the value to wrap
//   - lo: inclusive lower bound
//   - hi: exclusive upper bound
//
// Returns:
//   - float32: the wrapped value
func Wrap(v, lo, hi float32) float32 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	m := math32.Mod(v-lo, span)
	if m < 0 {
		m += span
	}
	return lo + m
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// EulerMatrix builds a rotation matrix from XYZ Euler angles in radians.
// The rotation is applied in intrinsic X, then Y, then Z order (R = Rx * Ry * Rz).
//
// Parameters:
//   - rot: rotation around the X, Y and Z axes in radians
//
// Returns:
//   - mgl32.Mat4: the homogeneous rotation matrix
func EulerMatrix(rot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(rot.X()).
		Mul4(mgl32.HomogRotate3DY(rot.Y())).
		Mul4(mgl32.HomogRotate3DZ(rot.Z()))
}

// BuildModelMatrix computes a model matrix from position, XYZ Euler rotation and scale.
// The result is T * R * S.
//
// Parameters:
//   - pos: world position
//   - rot: Euler rotation in radians
//   - scale: per-axis scale
//
// Returns:
//   - mgl32.Mat4: the model matrix
func BuildModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(EulerMatrix(rot)).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// EulerFromDirection returns the XYZ Euler rotation that turns the -Z axis toward dir.
// Roll is always zero. A zero-length direction returns a zero rotation.
//
// Parameters:
//   - dir: the direction to face
//
// Returns:
//   - mgl32.Vec3: pitch (x) and yaw (y) in radians
func EulerFromDirection(dir mgl32.Vec3) mgl32.Vec3 {
	if dir.Len() == 0 {
		return mgl32.Vec3{}
	}
	d := dir.Normalize()
	// Rx(p) * Ry(y) * (0, 0, -1) = (-sin y, cos y sin p, -cos y cos p)
	yaw := math32.Asin(Clamp(-d.X(), -1, 1))
	pitch := math32.Atan2(d.Y(), -d.Z())
	return mgl32.Vec3{pitch, yaw, 0}
}
