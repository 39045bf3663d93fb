package mapper

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/viewport"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldPositionForCenteredElement(t *testing.T) {
	vp := viewport.NewStaticViewport(
		viewport.WithSize(1000, 500),
		viewport.WithElement("center", common.Rect{Left: 450, Top: 200, Width: 100, Height: 100}),
	)
	cam := camera.NewCamera(camera.WithAspect(2), camera.WithPosition(mgl32.Vec3{0, -3, 5}))

	got := WorldPositionFor(vp.Element("center"), cam, 1000, 500, 0)
	assert.True(t, got.ApproxEqual(mgl32.Vec3{0, -3, 0}), "viewport center lands on the camera axis, got %v", got)
}

func TestWorldPositionForCorner(t *testing.T) {
	vp := viewport.NewStaticViewport(
		viewport.WithSize(1000, 500),
		viewport.WithElement("corner", common.Rect{Left: 0, Top: 0, Width: 0.0001, Height: 0.0001}),
	)
	cam := camera.NewCamera(camera.WithAspect(2), camera.WithPosition(mgl32.Vec3{0, 0, 5}))

	halfH := math32.Tan(common.DegToRad(30)) * 5
	halfW := halfH * 2

	got := WorldPositionFor(vp.Element("corner"), cam, 1000, 500, 0)
	assert.InDelta(t, -halfW, got.X(), 1e-3)
	assert.InDelta(t, halfH, got.Y(), 1e-3)
	assert.Equal(t, float32(0), got.Z())
}

func TestWorldPositionForSentinelCases(t *testing.T) {
	vp := viewport.NewStaticViewport(viewport.WithElement("card", common.Rect{Width: 10, Height: 10}))
	cam := camera.NewCamera()

	assert.Equal(t, OffscreenSentinel, WorldPositionFor(nil, cam, 1000, 1000, 0), "missing element")
	assert.Equal(t, OffscreenSentinel, WorldPositionFor(vp.Element("card"), cam, 0, 1000, 0), "zero width viewport")
	assert.Equal(t, OffscreenSentinel, WorldPositionFor(vp.Element("card"), cam, 1000, 0, 0), "zero height viewport")

	vp.SetElement("empty", common.Rect{Left: 10, Top: 10})
	assert.Equal(t, OffscreenSentinel, WorldPositionFor(vp.Element("empty"), cam, 1000, 1000, 0), "zero-sized element")
}

func TestResolveIsIdempotent(t *testing.T) {
	vp := viewport.NewStaticViewport(
		viewport.WithSize(1920, 1080),
		viewport.WithDocumentHeight(4000),
		viewport.WithElement("card", common.Rect{Left: 400, Top: 1300, Width: 300, Height: 300}),
	)
	cam := camera.NewCamera(camera.WithAspect(1920.0/1080.0), camera.WithPosition(mgl32.Vec3{0, 0, 5}))
	m := NewMapper(vp)

	a := m.Anchor("card")
	require.True(t, a.Found())
	assert.Same(t, a, m.Anchor("card"))
	assert.Equal(t, OffscreenSentinel, a.Last())

	first := m.Resolve(a, cam)
	second := m.Resolve(a, cam)
	assert.Equal(t, first, second)
	assert.Equal(t, first, a.Last())

	vp.SetScroll(1000)
	scrolled := m.Resolve(a, cam)
	assert.Greater(t, scrolled.Y(), first.Y(), "scrolling down moves the element up the screen")
}

func TestInvalidateRefreshesLookups(t *testing.T) {
	vp := viewport.NewStaticViewport()
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 5}))
	m := NewMapper(vp, WithPlaneZ(0))

	a := m.Anchor("late")
	assert.False(t, a.Found())
	assert.Equal(t, OffscreenSentinel, m.Resolve(a, cam))

	vp.SetElement("late", common.Rect{Left: 900, Top: 500, Width: 120, Height: 80})
	assert.False(t, a.Found(), "lookups are cached until invalidated")

	m.Invalidate()
	assert.True(t, a.Found())
	assert.NotEqual(t, OffscreenSentinel, m.Resolve(a, cam))
}

func TestResolveNilAnchor(t *testing.T) {
	m := NewMapper(viewport.NewStaticViewport())
	assert.Equal(t, OffscreenSentinel, m.Resolve(nil, camera.NewCamera()))
}
