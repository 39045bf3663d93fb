package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, common.DegToRad(60), c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.True(t, c.ViewMatrix().ApproxEqual(mgl32.Ident4()))
}

func TestViewMatrixMatchesLookAt(t *testing.T) {
	eye := mgl32.Vec3{0, -30, 10}
	target := mgl32.Vec3{0, -30, 0}
	c := NewCamera(WithPosition(eye))
	c.LookAt(target)

	expected := mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
	assert.True(t, c.ViewMatrix().ApproxEqualThreshold(expected, 1e-4))
	assert.Equal(t, mgl32.Vec3{}, c.Rotation())
}

func TestSetPoseUpdatesMatrices(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))
	before := c.ViewProjectionMatrix()

	c.SetPose(Pose{Position: mgl32.Vec3{4, -28, 6}, Rotation: mgl32.Vec3{-0.2, 0.5, 0}})

	assert.Equal(t, mgl32.Vec3{4, -28, 6}, c.Position())
	assert.Equal(t, mgl32.Vec3{-0.2, 0.5, 0}, c.Pose().Rotation)
	assert.False(t, before.ApproxEqual(c.ViewProjectionMatrix()))

	// the camera's own position maps to the view-space origin
	origin := c.ViewMatrix().Mul4x1(c.Position().Vec4(1)).Vec3()
	assert.True(t, origin.ApproxEqualThreshold(mgl32.Vec3{}, 1e-4))
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := NewCamera(WithAspect(2))
	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
	c.SetAspect(0.5)
	assert.Equal(t, float32(0.5), c.Aspect())
}

func TestFramingKeepsSphereInFrustum(t *testing.T) {
	sphere := common.Sphere{Center: mgl32.Vec3{0, -30, 0}, Radius: 3}
	for _, aspect := range []float32{16.0 / 9.0, 9.0 / 16.0} {
		pose := Framing(sphere, common.DegToRad(60), aspect)
		assert.Equal(t, mgl32.Vec3{}, pose.Rotation)

		c := NewCamera(WithAspect(aspect))
		c.SetPose(pose)
		f := common.ExtractFrustum(c.ViewProjectionMatrix())
		for _, edge := range []mgl32.Vec3{{2.9, 0, 0}, {-2.9, 0, 0}, {0, 2.9, 0}, {0, -2.9, 0}} {
			assert.True(t, f.ContainsSphere(sphere.Center.Add(edge), 0.01), "aspect %v edge %v", aspect, edge)
		}
	}
}
