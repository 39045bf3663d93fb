package model

import "github.com/go-gl/mathgl/mgl32"

// Format is the container format of a model file.
type Format int

const (
	// FormatUnknown is an unrecognized container.
	FormatUnknown Format = iota
	// FormatGLTF is a JSON glTF 2.0 document.
	FormatGLTF
	// FormatGLB is a binary glTF 2.0 container.
	FormatGLB
)

func (f Format) String() string {
	switch f {
	case FormatGLTF:
		return "gltf"
	case FormatGLB:
		return "glb"
	default:
		return "unknown"
	}
}

// ImportedModel is the CPU-side summary a loader backend produces from a model file.
type ImportedModel struct {
	// Name is the asset name, taken from the first scene or the file name.
	Name string

	// Format is the container format.
	Format Format

	// Meshes holds one entry per mesh.
	Meshes []ImportedMesh

	// NodeCount is the number of scene-graph nodes.
	NodeCount int

	// MaterialCount is the number of materials.
	MaterialCount int
}

// ImportedMesh summarizes one mesh: its vertex count and position bounds.
type ImportedMesh struct {
	Name        string
	VertexCount int
	Min         mgl32.Vec3
	Max         mgl32.Vec3
	// HasBounds is false when no primitive declared POSITION min/max.
	HasBounds bool
}

// VertexCount returns the vertex total over every mesh.
func (m *ImportedModel) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.VertexCount
	}
	return n
}

// Bounds returns the union of every mesh's bounds. Meshes without bounds are skipped;
// a model with none returns a zero box.
//
// Returns:
//   - min, max: the union box corners
func (m *ImportedModel) Bounds() (min, max mgl32.Vec3) {
	first := true
	for _, mesh := range m.Meshes {
		if !mesh.HasBounds {
			continue
		}
		if first {
			min, max = mesh.Min, mesh.Max
			first = false
			continue
		}
		for i := 0; i < 3; i++ {
			if mesh.Min[i] < min[i] {
				min[i] = mesh.Min[i]
			}
			if mesh.Max[i] > max[i] {
				max[i] = mesh.Max[i]
			}
		}
	}
	return min, max
}
