package timeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y, z float32) *mgl32.Vec3 {
	v := mgl32.Vec3{x, y, z}
	return &v
}

var restPose = camera.Pose{Position: mgl32.Vec3{0, 0, 5}}

func productionTimeline(t *testing.T) *Timeline {
	tl, err := FromConfig(config.Default().Timeline)
	require.NoError(t, err)
	return tl
}

func TestEasingEndpoints(t *testing.T) {
	for _, name := range []string{"linear", "power1.out", "cubic.inOut", "step", ""} {
		e, ok := EasingByName(name)
		require.True(t, ok, name)
		assert.Equal(t, float32(0), e(0), name)
		assert.Equal(t, float32(1), e(1), name)
		assert.Equal(t, float32(1), e(2), "%s clamps input", name)
	}

	_, ok := EasingByName("elastic.out")
	assert.False(t, ok)

	assert.InDelta(t, 0.75, Power1Out(0.5), 1e-6)
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-6)
	assert.Equal(t, float32(0), Step(0.99))
}

func TestProductionChoreography(t *testing.T) {
	tl := productionTimeline(t)
	assert.Equal(t, float32(4), tl.Duration())
	require.Len(t, tl.Phases(), 2)

	assert.Equal(t, restPose, tl.Pose(0, restPose))
	assert.Equal(t, restPose, tl.Pose(0.25, restPose), "nothing applies before the first phase starts")

	atApproach := tl.Pose(0.75, restPose)
	assert.True(t, atApproach.Position.ApproxEqual(mgl32.Vec3{4, -28, 6}))
	assert.True(t, atApproach.Rotation.ApproxEqual(mgl32.Vec3{-0.2, 0.5, 0}))

	end := tl.Pose(1, restPose)
	assert.True(t, end.Position.ApproxEqual(mgl32.Vec3{0, -28.5, 7}))
	assert.True(t, end.Rotation.ApproxEqual(mgl32.Vec3{0, 0, 0}))

	assert.Equal(t, end, tl.Pose(3, restPose), "progress clamps to 1")
	assert.Equal(t, restPose, tl.Pose(-1, restPose))
}

func TestPoseIsContinuous(t *testing.T) {
	tl := productionTimeline(t)
	prev := tl.Pose(0, restPose)
	const steps = 4000
	for i := 1; i <= steps; i++ {
		p := float32(i) / steps
		cur := tl.Pose(p, restPose)
		assert.Less(t, cur.Position.Sub(prev.Position).Len(), float32(0.1), "jump at p=%v", p)
		assert.Less(t, cur.Rotation.Sub(prev.Rotation).Len(), float32(0.01), "jump at p=%v", p)
		prev = cur
	}
}

func TestPoseIsDeterministic(t *testing.T) {
	tl := productionTimeline(t)
	for _, p := range []float32{0, 0.1, 0.33, 0.5, 0.61, 0.9, 1} {
		assert.Equal(t, tl.Pose(p, restPose), tl.Pose(p, restPose))
	}
}

func TestPhaseWeightBounds(t *testing.T) {
	ph := Phase{Start: 1, End: 3, Easing: Linear}
	assert.Equal(t, float32(0), ph.Weight(0.999))
	assert.Equal(t, float32(0), ph.Weight(1))
	assert.InDelta(t, 0.5, ph.Weight(2), 1e-6)
	assert.Equal(t, float32(1), ph.Weight(3))
	assert.Equal(t, float32(1), ph.Weight(10))
}

func TestZeroDurationPhaseSteps(t *testing.T) {
	tl := NewTimeline(2, Phase{Name: "cut", Start: 1, End: 1, Position: vec(0, -10, 5)})

	assert.Equal(t, restPose.Position, tl.Pose(0.49, restPose).Position)
	assert.Equal(t, mgl32.Vec3{0, -10, 5}, tl.Pose(0.5, restPose).Position)
}

func TestPhasesChainPerChannel(t *testing.T) {
	tl := NewTimeline(0,
		Phase{Name: "b", Start: 1, End: 2, Position: vec(2, 0, 5), Easing: Linear},
		Phase{Name: "a", Start: 0, End: 1, Position: vec(1, 0, 5), Rotation: vec(0, 1, 0), Easing: Linear},
	)

	assert.Equal(t, float32(2), tl.Duration())
	assert.Equal(t, "a", tl.Phases()[0].Name)

	mid := tl.Pose(0.75, restPose)
	assert.InDelta(t, 1.5, mid.Position.X(), 1e-6)
	assert.InDelta(t, 1, mid.Rotation.Y(), 1e-6, "rotation untouched by a position-only phase")
}

func TestFromConfigRejectsUnknownEasing(t *testing.T) {
	cfg := config.Default().Timeline
	cfg.Phases[0].Easing = "bounce"
	_, err := FromConfig(cfg)
	assert.ErrorContains(t, err, "unknown easing")
}

func TestDriverFollowsScroll(t *testing.T) {
	vp := viewport.NewStaticViewport(viewport.WithSize(1920, 1080), viewport.WithDocumentHeight(5400))
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 5}))
	d := NewDriver(productionTimeline(t), vp, cam)

	assert.Equal(t, restPose, d.Base())
	d.Update(0.016)
	assert.Equal(t, float32(0), d.Progress())
	assert.Equal(t, restPose.Position, cam.Position())

	vp.SetScroll(4320)
	pose := d.Update(0.016)
	assert.Equal(t, float32(1), d.Progress())
	assert.True(t, cam.Position().ApproxEqual(mgl32.Vec3{0, -28.5, 7}))
	assert.Equal(t, pose, cam.Pose())

	vp.SetScroll(9000)
	d.Update(0.016)
	assert.Equal(t, float32(1), d.Target(), "overscroll clamps")
}

func TestDriverScrubSmoothing(t *testing.T) {
	vp := viewport.NewStaticViewport(viewport.WithSize(1000, 1000), viewport.WithDocumentHeight(2000))
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 5}))
	d := NewDriver(productionTimeline(t), vp, cam, WithScrub(1))

	d.Update(0.016)
	assert.Equal(t, float32(0), d.Progress())

	vp.SetScroll(1000)
	d.Update(0.1)
	assert.Equal(t, float32(1), d.Target())
	assert.Greater(t, d.Progress(), float32(0))
	assert.Less(t, d.Progress(), float32(1))

	for i := 0; i < 200; i++ {
		d.Update(0.016)
	}
	assert.Equal(t, float32(1), d.Progress())

	vp.SetScroll(0)
	d.Reset()
	d.Update(0.016)
	assert.Equal(t, float32(0), d.Progress(), "reset jumps without smoothing")
}

func TestDriverNoScrollableHeight(t *testing.T) {
	vp := viewport.NewStaticViewport(viewport.WithSize(1000, 1000), viewport.WithDocumentHeight(500))
	cam := camera.NewCamera()
	d := NewDriver(productionTimeline(t), vp, cam)
	vp.SetScroll(100)
	d.Update(0.016)
	assert.Equal(t, float32(0), d.Progress())
}
