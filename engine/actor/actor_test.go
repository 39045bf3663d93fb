package actor

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/device"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/loader"
	"github.com/Carmen-Shannon/oxy-scroll/engine/mapper"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/Carmen-Shannon/oxy-scroll/engine/viewport"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func desktopViewport() *viewport.StaticViewport {
	return viewport.NewStaticViewport(
		viewport.WithSize(1920, 1080),
		viewport.WithLayout(config.Default().Layout.Layout()),
	)
}

func desktopCamera() camera.Camera {
	return camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 5}), camera.WithAspect(1920.0/1080.0))
}

func frameFor(vp *viewport.StaticViewport, cam camera.Camera, tier device.Tier, elapsed, delta float32) Frame {
	w, h := vp.Size()
	return Frame{
		Elapsed:        elapsed,
		Delta:          delta,
		ScrollY:        vp.ScrollOffset(),
		ViewportWidth:  w,
		ViewportHeight: h,
		Tier:           tier,
		Camera:         cam,
	}
}

func TestAdvanceWrapsWithinRange(t *testing.T) {
	cfg := config.ParticleConfig{MinY: -13, MaxY: -3, Speed: 0.3}

	s := Advance(ParticleState{}, 10, cfg)
	assert.InDelta(t, 3, s.Offset, 1e-5)

	s = Advance(s, 30, cfg)
	assert.InDelta(t, 2, s.Offset, 1e-4, "12 units of drift wrap over a 10 unit span")

	assert.Equal(t, s, Advance(s, 0, cfg))
	assert.Equal(t, s, Advance(s, -1, cfg))
	assert.Equal(t, ParticleState{Offset: 1}, Advance(ParticleState{Offset: 1}, 1, config.ParticleConfig{MinY: 2, MaxY: 2, Speed: 1}))
}

func TestLayoutIsSeededAndBounded(t *testing.T) {
	cfg := config.Default().Background
	a := Layout(cfg, 500)
	b := Layout(cfg, 500)
	require.Len(t, a, 500)
	assert.Equal(t, a, b)

	for _, p := range a {
		assert.LessOrEqual(t, math32.Abs(p.X()), cfg.HalfExtent[0])
		assert.LessOrEqual(t, math32.Abs(p.Z()), cfg.HalfExtent[2])
		assert.GreaterOrEqual(t, p.Y(), cfg.MinY)
		assert.Less(t, p.Y(), cfg.MaxY)
	}

	cfg.Seed++
	assert.NotEqual(t, a, Layout(cfg, 500))
	assert.Nil(t, Layout(cfg, 0))
}

func TestParticleFieldFollowsTier(t *testing.T) {
	profile := device.DefaultProfile()
	field := NewParticleField("background", config.Default().Background, profile.Desktop.ParticleCount)
	assert.Equal(t, 18000, field.Count())
	assert.False(t, field.Heavy())

	field.ApplyTier(profile.Mobile)
	assert.Equal(t, 6000, field.Count())

	fixed := NewParticleField("mask", config.Default().Character.Mask, 99)
	fixed.ApplyTier(profile.Mobile)
	assert.Equal(t, 600, fixed.Count())
}

func TestParticleFieldPositionsStayInRange(t *testing.T) {
	cfg := config.Default().Character.Mask
	field := NewParticleField("mask", cfg, 0)

	for i := 0; i < 50; i++ {
		field.Update(Frame{Delta: 0.5})
	}
	positions := field.Positions(nil)
	require.Len(t, positions, cfg.Count)
	for _, p := range positions {
		assert.GreaterOrEqual(t, p.Y(), cfg.MinY)
		assert.Less(t, p.Y(), cfg.MaxY)
	}

	reused := field.Positions(positions)
	assert.Same(t, &positions[0], &reused[0])
}

func TestInterpolateEndpoints(t *testing.T) {
	in := CharacterInput{
		ViewportHeight: 1080,
		Hero:           mgl32.Vec3{1.5, 0, 0},
		Anchor:         mgl32.Vec3{-2, 1, 0},
		FinalScale:     0.85,
		ExtraYaw:       0.5,
		SectionFound:   true,
		SectionTop:     1080,
		HideOffset:     500,
	}

	start := Interpolate(in)
	assert.Equal(t, mgl32.Vec3{1.5, 0, 0}, start.Position)
	assert.Equal(t, float32(1), start.Scale)
	assert.Zero(t, start.Yaw)
	assert.True(t, start.Visible)

	in.ScrollY = 1080
	end := Interpolate(in)
	assert.True(t, end.Position.ApproxEqual(mgl32.Vec3{-2, 1, 0}))
	assert.InDelta(t, 0.85, end.Scale, 1e-6)
	assert.InDelta(t, 2*math32.Pi+0.5, end.Yaw, 1e-5)
	assert.True(t, end.Visible)

	in.ScrollY = 540
	mid := Interpolate(in)
	assert.InDelta(t, 0.5, mid.T, 1e-6)
	assert.InDelta(t, 0.925, mid.Scale, 1e-6)

	in.ScrollY = 3000
	locked := Interpolate(in)
	assert.Equal(t, end.Position, locked.Position)
	assert.False(t, locked.Visible)

	in.SectionFound = false
	assert.True(t, Interpolate(in).Visible, "a missing section never hides the character")

	in.ViewportHeight = 0
	in.ScrollY = 0
	assert.Zero(t, Interpolate(in).T)
}

func TestIdle(t *testing.T) {
	cfg := config.Default().Character.Idle

	assert.Equal(t, IdleOffset{}, Idle(0, cfg))

	o := Idle(2, cfg)
	assert.InDelta(t, math32.Sin(1.6)*0.05, o.Bob, 1e-6)
	assert.InDelta(t, math32.Sin(0.4)*0.3, o.Sway, 1e-6)
	assert.InDelta(t, math32.Sin(1.0)*0.05, o.Tilt, 1e-6)
	assert.Equal(t, o, Idle(2, cfg))

	tr := o.Transform()
	assert.Equal(t, mgl32.Vec3{0, o.Bob, 0}, tr.Position)
	assert.Equal(t, mgl32.Vec3{o.Tilt, o.Sway, 0}, tr.Rotation)
}

func TestCharacterScrollScenario(t *testing.T) {
	cfg := config.Default()
	vp := desktopViewport()
	cam := desktopCamera()
	m := mapper.NewMapper(vp)
	c := NewCharacter(cfg.Character, m, device.TierDesktop)

	c.Update(frameFor(vp, cam, device.TierDesktop, 0, 0))
	assert.True(t, c.Object().Position().ApproxEqual(mgl32.Vec3{1.5, 0, 0}))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, c.Object().Scale())
	assert.Zero(t, c.Object().Rotation().Y())

	vp.SetScroll(1080)
	c.Update(frameFor(vp, cam, device.TierDesktop, 0, 0))

	w, h := vp.Size()
	mapped := mapper.WorldPositionFor(vp.Element("profile-card-target"), cam, w, h, 0)
	want := mapped.Add(mgl32.Vec3{-0.3, 1.0, 0})
	assert.True(t, c.Object().Position().ApproxEqualThreshold(want, 1e-4), "got %v want %v", c.Object().Position(), want)
	assert.InDelta(t, 0.85, c.Object().Scale().X(), 1e-6)
	assert.InDelta(t, 2*math32.Pi+0.5, c.Object().Rotation().Y(), 1e-5)
	assert.True(t, c.Object().Enabled())

	mask := c.Mask().Object()
	assert.Equal(t, c.Object().Position(), mask.Position())
	assert.Equal(t, c.Object().Scale(), mask.Scale())
	assert.Equal(t, c.Object().Rotation(), mask.Rotation())
	assert.True(t, mask.Enabled())

	vp.SetScroll(1600)
	c.Update(frameFor(vp, cam, device.TierDesktop, 0, 0))
	assert.False(t, c.Object().Enabled(), "hidden past the about section plus offset")
	assert.False(t, c.Halo().Object().Enabled())
	assert.False(t, c.Mask().Object().Enabled())
}

func TestCharacterIdleOnlyTouchesLocalLayer(t *testing.T) {
	vp := desktopViewport()
	c := NewCharacter(config.Default().Character, mapper.NewMapper(vp), device.TierDesktop)

	c.Update(frameFor(vp, desktopCamera(), device.TierDesktop, 3, 0.016))

	assert.True(t, c.Object().Position().ApproxEqual(mgl32.Vec3{1.5, 0, 0}))
	assert.Zero(t, c.Object().Rotation().Y())
	assert.NotZero(t, c.Object().Local().Position.Y())
	assert.NotZero(t, c.Object().Local().Rotation.Y())
	assert.Equal(t, c.Object().Local(), c.Mask().Object().Local())
}

func TestCharacterMissingAnchorHeadsOffscreen(t *testing.T) {
	vp := viewport.NewStaticViewport(viewport.WithSize(1920, 1080), viewport.WithDocumentHeight(4000))
	c := NewCharacter(config.Default().Character, mapper.NewMapper(vp), device.TierDesktop)

	vp.SetScroll(1080)
	c.Update(frameFor(vp, desktopCamera(), device.TierDesktop, 0, 0))

	assert.Equal(t, mapper.OffscreenSentinel, c.Object().Position())
	assert.True(t, c.Object().Enabled())
}

func TestCharacterMobileAnchorTarget(t *testing.T) {
	cfg := config.Default().Character
	c := NewCharacter(cfg, mapper.NewMapper(desktopViewport()), device.TierMobile)

	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, c.Object().Position(), "mobile hero")
	assert.Equal(t, mgl32.Vec3{0, 2.5, 0}, c.AnchorTarget(mgl32.Vec3{1, 2, 0}))
	assert.Equal(t, float32(6), c.Object().Mount().Scale.X())

	c.ApplyTier(device.DefaultProfile().Desktop)
	assert.True(t, c.AnchorTarget(mgl32.Vec3{1, 2, 0}).ApproxEqual(mgl32.Vec3{0.7, 3, 0}))
	assert.Equal(t, float32(10), c.Object().Mount().Scale.X())
	assert.Equal(t, float32(-8), c.Object().Mount().Position.Y())
}

func TestCharacterEagerLoadSwapsPlaceholder(t *testing.T) {
	c := NewCharacter(config.Default().Character, mapper.NewMapper(desktopViewport()), device.TierDesktop)
	head := model.NewModel(model.WithName("head"))
	g := loader.NewGateway(
		loader.WithLoader(loader.NewLoader(loader.BackendTypeGLTF, loader.WithModel("head.glb", head))),
		loader.WithExecutor(loader.InlineExecutor{}),
	)

	assert.True(t, c.Heavy())
	c.RegisterLoads(g)
	assert.Equal(t, loader.StrategyEager, c.Handle().Strategy())
	assert.Equal(t, game_object.RepresentationPlaceholder, c.Object().Representation())

	g.Drain()
	assert.Equal(t, game_object.RepresentationLoaded, c.Object().Representation())
	assert.Same(t, head, c.Object().Model())
}

func TestShowcaseDragGatedByCameraDepth(t *testing.T) {
	s := NewShowcase(config.Default().Showcase, device.TierDesktop)

	assert.True(t, s.Heavy())
	assert.Equal(t, mgl32.Vec3{0, -30, 0}, s.Object().Position())

	assert.False(t, s.InRegion(0))
	assert.False(t, s.Drag(100, 0))
	assert.Zero(t, s.Yaw())

	assert.True(t, s.InRegion(-28))
	assert.True(t, s.Drag(100, -28))
	assert.InDelta(t, 0.5, s.Yaw(), 1e-6)
	assert.InDelta(t, 0.5, s.Object().Rotation().Y(), 1e-6)
}

func TestShowcasePlaceholderAnimationAndSwap(t *testing.T) {
	cfg := config.Default().Showcase
	s := NewShowcase(cfg, device.TierDesktop)
	car := model.NewModel(model.WithName("car"))
	g := loader.NewGateway(
		loader.WithLoader(loader.NewLoader(loader.BackendTypeGLTF, loader.WithModel("car.glb", car))),
		loader.WithExecutor(loader.InlineExecutor{}),
	)
	s.RegisterLoads(g)
	assert.Equal(t, loader.TaskPending, s.Handle().State())

	s.Update(Frame{Elapsed: 2})
	local := s.Object().Local()
	assert.InDelta(t, 1.0, local.Rotation.Y(), 1e-6)
	assert.InDelta(t, math32.Sin(1.0)*0.1, local.Rotation.X(), 1e-6)

	ready := 0
	s.LazyLoad(func() { ready++ })
	assert.Equal(t, game_object.RepresentationPlaceholder, s.Object().Representation(), "swap waits for the drain")
	g.Drain()

	assert.Equal(t, 1, ready)
	assert.Equal(t, game_object.RepresentationLoaded, s.Object().Representation())
	assert.Nil(t, s.Object().Placeholder())
	assert.Equal(t, game_object.Identity(), s.Object().Local())

	s.Update(Frame{Elapsed: 5})
	assert.Equal(t, game_object.Identity(), s.Object().Local(), "placeholder motion stops after the swap")

	s.LazyLoad(func() { ready++ })
	assert.Equal(t, 2, ready, "already loaded runs the callback at once")
}

func TestShowcaseTierScale(t *testing.T) {
	s := NewShowcase(config.Default().Showcase, device.TierMobile)
	assert.Equal(t, float32(0.45), s.Object().Mount().Scale.X())
	s.ApplyTier(device.DefaultProfile().Desktop)
	assert.Equal(t, float32(0.8), s.Object().Mount().Scale.X())
}

func TestShowcaseLazyLoadWithoutRegistration(t *testing.T) {
	s := NewShowcase(config.Default().Showcase, device.TierDesktop)
	called := false
	s.LazyLoad(func() { called = true })
	assert.False(t, called)
	assert.Nil(t, s.Handle())
}
