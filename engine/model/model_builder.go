package model

import "github.com/go-gl/mathgl/mgl32"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithPath is an option builder that sets the source path of the Model.
//
// Parameters:
//   - path: the asset path
//
// Returns:
//   - ModelBuilderOption: a function that applies the path option to a model
func WithPath(path string) ModelBuilderOption {
	return func(m *model) {
		m.path = path
	}
}

// WithFormat is an option builder that sets the container format.
func WithFormat(format Format) ModelBuilderOption {
	return func(m *model) {
		m.format = format
	}
}

// WithCounts is an option builder that sets the mesh, node, material and vertex counts.
//
// Parameters:
//   - meshes: number of meshes
//   - nodes: number of scene-graph nodes
//   - materials: number of materials
//   - vertices: total vertex count
//
// Returns:
//   - ModelBuilderOption: a function that applies the counts to a model
func WithCounts(meshes, nodes, materials, vertices int) ModelBuilderOption {
	return func(m *model) {
		m.meshCount = meshes
		m.nodeCount = nodes
		m.materialCount = materials
		m.vertexCount = vertices
	}
}

// WithBounds is an option builder that sets the local-space bounding box.
//
// Parameters:
//   - min, max: the box corners
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounds to a model
func WithBounds(min, max mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.min = min
		m.max = max
	}
}

// FromImported converts a decoded ImportedModel into Model options.
//
// Parameters:
//   - path: the source path used as cache key
//   - imported: the decoded asset summary
//
// Returns:
//   - Model: the engine-ready model
func FromImported(path string, imported *ImportedModel) Model {
	min, max := imported.Bounds()
	return NewModel(
		WithName(imported.Name),
		WithPath(path),
		WithFormat(imported.Format),
		WithCounts(len(imported.Meshes), imported.NodeCount, imported.MaterialCount, imported.VertexCount()),
		WithBounds(min, max),
	)
}
