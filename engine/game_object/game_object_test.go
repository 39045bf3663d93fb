package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithName("head"))

	assert.Equal(t, "head", obj.Name())
	assert.True(t, obj.Enabled())
	assert.False(t, obj.Attached())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, obj.Scale())
	assert.Equal(t, RepresentationNone, obj.Representation())
	assert.Nil(t, obj.Visual())
	assert.Zero(t, obj.WorldRadius())
}

func TestSwapReplacesPlaceholderOnce(t *testing.T) {
	proxy := model.NewProcedural("proxy", 1)
	obj := NewGameObject(WithPlaceholder(proxy))
	assert.Equal(t, RepresentationPlaceholder, obj.Representation())
	assert.Same(t, proxy, obj.Visual())

	assert.False(t, obj.Swap(nil))
	assert.Equal(t, RepresentationPlaceholder, obj.Representation())

	car := model.NewModel(model.WithName("car"))
	assert.True(t, obj.Swap(car))
	assert.Equal(t, RepresentationLoaded, obj.Representation())
	assert.Nil(t, obj.Placeholder())
	assert.Same(t, car, obj.Visual())

	other := model.NewModel(model.WithName("other"))
	assert.False(t, obj.Swap(other))
	assert.Same(t, car, obj.Model())
}

func TestWorldMatrixLayers(t *testing.T) {
	obj := NewGameObject(
		WithPosition(1, 2, 3),
		WithPlaceholder(model.NewProcedural("proxy", 2)),
		WithMount(Transform{Position: mgl32.Vec3{0, -8, 0}, Scale: mgl32.Vec3{10, 10, 10}}),
	)
	obj.SetLocal(Transform{Position: mgl32.Vec3{0, 0.5, 0}, Scale: mgl32.Vec3{1, 1, 1}})

	assert.True(t, obj.WorldCenter().ApproxEqual(mgl32.Vec3{1, 2.5, 3}), "mount ignored for placeholder")
	assert.InDelta(t, 2, obj.WorldRadius(), 1e-6)

	obj.Swap(model.NewModel(model.WithBounds(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})))
	assert.True(t, obj.WorldCenter().ApproxEqual(mgl32.Vec3{1, -5.5, 3}))
	assert.InDelta(t, 10*(mgl32.Vec3{1, 1, 1}).Len(), obj.WorldRadius(), 1e-4)
}

func TestLocalLayerLeavesRootUntouched(t *testing.T) {
	obj := NewGameObject(WithPosition(1.5, 0, 0))
	obj.SetLocal(Transform{Position: mgl32.Vec3{0, 0.05, 0}, Rotation: mgl32.Vec3{0, 0.3, 0}, Scale: mgl32.Vec3{1, 1, 1}})

	assert.Equal(t, mgl32.Vec3{1.5, 0, 0}, obj.Position())
	assert.Equal(t, mgl32.Vec3{}, obj.Rotation())
}

func TestRepresentationString(t *testing.T) {
	assert.Equal(t, "none", RepresentationNone.String())
	assert.Equal(t, "placeholder", RepresentationPlaceholder.String())
	assert.Equal(t, "loaded", RepresentationLoaded.String())
}
