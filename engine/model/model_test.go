package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFromImported(t *testing.T) {
	imported := &ImportedModel{
		Name:          "car",
		Format:        FormatGLB,
		NodeCount:     5,
		MaterialCount: 2,
		Meshes: []ImportedMesh{
			{Name: "body", VertexCount: 100, Min: mgl32.Vec3{-2, 0, -1}, Max: mgl32.Vec3{2, 1, 1}, HasBounds: true},
			{Name: "wheel", VertexCount: 20, Min: mgl32.Vec3{-1, -0.5, -3}, Max: mgl32.Vec3{1, 0.5, 3}, HasBounds: true},
			{Name: "decal", VertexCount: 4},
		},
	}

	m := FromImported("assets/car.glb", imported)

	assert.Equal(t, "car", m.Name())
	assert.Equal(t, "assets/car.glb", m.Path())
	assert.Equal(t, FormatGLB, m.Format())
	assert.Equal(t, 3, m.MeshCount())
	assert.Equal(t, 5, m.NodeCount())
	assert.Equal(t, 2, m.MaterialCount())
	assert.Equal(t, 124, m.VertexCount())

	min, max := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-2, -0.5, -3}, min)
	assert.Equal(t, mgl32.Vec3{2, 1, 3}, max)
	assert.InDelta(t, (mgl32.Vec3{2, 1, 3}).Len(), m.Radius(), 1e-5)
}

func TestImportedModelWithoutBounds(t *testing.T) {
	imported := &ImportedModel{Meshes: []ImportedMesh{{VertexCount: 3}}}
	min, max := imported.Bounds()
	assert.Equal(t, mgl32.Vec3{}, min)
	assert.Equal(t, mgl32.Vec3{}, max)
}

func TestProcedural(t *testing.T) {
	v := NewProcedural("solar-system", 2)
	assert.Equal(t, "solar-system", v.Name())
	assert.Equal(t, float32(2), v.Radius())
	min, max := v.Bounds()
	assert.Equal(t, mgl32.Vec3{-2, -2, -2}, min)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, max)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "glb", FormatGLB.String())
	assert.Equal(t, "gltf", FormatGLTF.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
}
