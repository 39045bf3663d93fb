package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/actor"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/config"
	"github.com/Carmen-Shannon/oxy-scroll/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubActor struct {
	name    string
	objects []game_object.GameObject
	updates int
	panics  bool
}

func (s *stubActor) Name() string                      { return s.name }
func (s *stubActor) Objects() []game_object.GameObject { return s.objects }
func (s *stubActor) Heavy() bool                       { return false }
func (s *stubActor) Update(actor.Frame) {
	s.updates++
	if s.panics {
		panic("boom")
	}
}

func newStub(name string, x, radius float32) *stubActor {
	obj := game_object.NewGameObject(
		game_object.WithName(name),
		game_object.WithPlaceholder(model.NewProcedural(name, radius)),
		game_object.WithPosition(x, 0, 0),
	)
	return &stubActor{name: name, objects: []game_object.GameObject{obj}}
}

func TestNewSceneRequiresCamera(t *testing.T) {
	assert.Panics(t, func() { NewScene("main", nil) })
}

func TestEnvironmentFromConfig(t *testing.T) {
	env := EnvironmentFromConfig(config.EnvironmentConfig{Background: 0xff0000, FogDensity: 0.02, AmbientIntensity: 0.1, EnvironmentMap: true})
	assert.Equal(t, common.ColorFromHex(0xff0000), env.Background)
	assert.Equal(t, float32(0.02), env.FogDensity)
	assert.True(t, env.EnvironmentMap)
}

func TestAddAssignsIDs(t *testing.T) {
	s := NewScene("main", camera.NewCamera())
	a, b := newStub("a", 0, 1), newStub("b", 0, 1)
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	assert.Equal(t, uint64(1), a.objects[0].ID())
	assert.Equal(t, uint64(2), b.objects[0].ID())
	assert.Same(t, a.objects[0], s.Get(1))
	assert.True(t, a.objects[0].Attached())
	assert.Equal(t, 2, s.Count())

	assert.Error(t, s.Add(newStub("a", 0, 1)))
}

func TestDetachAttach(t *testing.T) {
	a, b := newStub("a", 0, 1), newStub("b", 0, 1)
	s := NewScene("main", camera.NewCamera(), WithActors(a, b))

	assert.True(t, s.Detach("b"))
	assert.False(t, s.Detach("b"))
	assert.False(t, s.IsAttached("b"))
	assert.False(t, b.objects[0].Attached())
	assert.Equal(t, 1, s.Count())
	assert.NotNil(t, s.Get(b.objects[0].ID()))

	s.Update(actor.Frame{})
	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 0, b.updates)

	assert.True(t, s.Attach("b"))
	assert.True(t, s.IsAttached("b"))
	assert.Equal(t, 2, s.Count())
	assert.False(t, s.Attach("missing"))
}

func TestUpdateRecoversFromPanics(t *testing.T) {
	bad := newStub("bad", 0, 1)
	bad.panics = true
	good := newStub("good", 0, 1)
	s := NewScene("main", camera.NewCamera(), WithActors(bad, good))

	errs := s.Update(actor.Frame{Delta: 0.016})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "bad")
	assert.Equal(t, 1, good.updates)
}

func TestBounds(t *testing.T) {
	s := NewScene("main", camera.NewCamera())
	_, ok := s.Bounds(nil)
	assert.False(t, ok)

	require.NoError(t, s.Add(newStub("left", -2, 1)))
	require.NoError(t, s.Add(newStub("right", 2, 1)))
	require.NoError(t, s.Add(newStub("far", 50, 1)))

	sphere, ok := s.Bounds(func(obj game_object.GameObject) bool { return obj.Name() != "far" })
	require.True(t, ok)
	assert.InDelta(t, 0, sphere.Center.X(), 1e-5)
	assert.InDelta(t, 3, sphere.Radius, 1e-5)

	s.Detach("left")
	sphere, ok = s.Bounds(func(obj game_object.GameObject) bool { return obj.Name() != "far" })
	require.True(t, ok)
	assert.InDelta(t, 2, sphere.Center.X(), 1e-5)
	assert.InDelta(t, 1, sphere.Radius, 1e-5)
}

func TestClear(t *testing.T) {
	a := newStub("a", 0, 1)
	s := NewScene("main", camera.NewCamera(), WithActors(a), WithActive(true))
	assert.True(t, s.Active())
	s.Clear()
	assert.Empty(t, s.Actors())
	assert.Nil(t, s.Actor("a"))
	assert.False(t, a.objects[0].Attached())
}
