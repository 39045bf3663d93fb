package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClampAndSaturate(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(-1, 0, 1))
	assert.Equal(t, float32(1), Clamp(4, 0, 1))
	assert.Equal(t, float32(0.25), Clamp(0.25, 0, 1))

	assert.Equal(t, float32(0), Saturate(math32.NaN()))
	assert.Equal(t, float32(1), Saturate(1.5))
}

func TestLerpVec3(t *testing.T) {
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{2, -4, 8}

	assert.Equal(t, a, LerpVec3(a, b, 0))
	assert.Equal(t, b, LerpVec3(a, b, 1))
	assert.True(t, LerpVec3(a, b, 0.5).ApproxEqual(mgl32.Vec3{1, -2, 4}))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		v        float32
		lo, hi   float32
		expected float32
	}{
		{name: "inside", v: 0, lo: -60, hi: 20, expected: 0},
		{name: "past top", v: 21, lo: -60, hi: 20, expected: -59},
		{name: "exact top", v: 20, lo: -60, hi: 20, expected: -60},
		{name: "below bottom", v: -61, lo: -60, hi: 20, expected: 19},
		{name: "empty span", v: 3, lo: 1, hi: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Wrap(tt.v, tt.lo, tt.hi), 1e-4)
		})
	}
}

func TestEulerFromDirectionRoundTrip(t *testing.T) {
	dirs := []mgl32.Vec3{
		{0, 0, -1},
		{1, 0, -1},
		{0, -1, -2},
		{-0.3, 0.4, -1},
	}
	for _, d := range dirs {
		rot := EulerFromDirection(d)
		forward := EulerMatrix(rot).Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
		assert.True(t, forward.ApproxEqualThreshold(d.Normalize(), 1e-4), "direction %v produced %v", d, forward)
	}

	assert.Equal(t, mgl32.Vec3{}, EulerFromDirection(mgl32.Vec3{}))
}

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0xff8000)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 128.0/255.0, c.G, 1e-9)
	assert.InDelta(t, 0.0, c.B, 1e-9)
	assert.Equal(t, 1.0, c.A)
}

func TestRectCenter(t *testing.T) {
	x, y := Rect{Left: 100, Top: 50, Width: 200, Height: 100}.Center()
	assert.Equal(t, float32(200), x)
	assert.Equal(t, float32(100), y)
}

func TestSphereMerge(t *testing.T) {
	a := Sphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 1}
	b := Sphere{Center: mgl32.Vec3{4, 0, 0}, Radius: 1}

	m := a.Merge(b)
	assert.InDelta(t, 3, m.Radius, 1e-6)
	assert.True(t, m.Center.ApproxEqual(mgl32.Vec3{2, 0, 0}))

	inner := Sphere{Center: mgl32.Vec3{0.5, 0, 0}, Radius: 0.2}
	assert.Equal(t, a, a.Merge(inner))
	assert.Equal(t, a, inner.Merge(a))
}
