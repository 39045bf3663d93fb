package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Visual is anything a node can display: a loaded model or a procedural stand-in.
type Visual interface {
	// Name retrieves the visual identifier.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Bounds retrieves the local-space axis-aligned bounding box.
	//
	// Returns:
	//   - min, max: the box corners
	Bounds() (min, max mgl32.Vec3)

	// Radius retrieves the radius of a sphere centered on the local origin that encloses the visual.
	//
	// Returns:
	//   - float32: the bounding radius
	Radius() float32
}

// model is the implementation of the Model interface.
type model struct {
	name          string
	path          string
	format        Format
	meshCount     int
	nodeCount     int
	materialCount int
	vertexCount   int
	min, max      mgl32.Vec3
}

// Model defines the interface for a loaded 3D asset.
// It is produced by the loader gateway after decoding a model file and is attached to an actor
// node in place of its placeholder.
type Model interface {
	Visual

	// Path retrieves the source path the model was loaded from. Used as the cache key.
	//
	// Returns:
	//   - string: the asset path
	Path() string

	// Format retrieves the container format of the source file.
	//
	// Returns:
	//   - Format: the file format
	Format() Format

	// MeshCount retrieves the number of meshes in the asset.
	//
	// Returns:
	//   - int: the mesh count
	MeshCount() int

	// NodeCount retrieves the number of scene-graph nodes in the asset.
	//
	// Returns:
	//   - int: the node count
	NodeCount() int

	// MaterialCount retrieves the number of materials in the asset.
	//
	// Returns:
	//   - int: the material count
	MaterialCount() int

	// VertexCount retrieves the total vertex count over every mesh primitive.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int
}

var _ Model = &model{}

// NewModel creates a Model from the provided options.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the new model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Path() string {
	return m.path
}

func (m *model) Format() Format {
	return m.format
}

func (m *model) MeshCount() int {
	return m.meshCount
}

func (m *model) NodeCount() int {
	return m.nodeCount
}

func (m *model) MaterialCount() int {
	return m.materialCount
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) Bounds() (min, max mgl32.Vec3) {
	return m.min, m.max
}

func (m *model) Radius() float32 {
	return boundsRadius(m.min, m.max)
}

// boundsRadius returns the distance from the origin to the farthest box corner.
func boundsRadius(min, max mgl32.Vec3) float32 {
	var r float32
	for _, x := range [2]float32{min.X(), max.X()} {
		for _, y := range [2]float32{min.Y(), max.Y()} {
			for _, z := range [2]float32{min.Z(), max.Z()} {
				if l := (mgl32.Vec3{x, y, z}).Len(); l > r {
					r = l
				}
			}
		}
	}
	return r
}

// procedural is a Visual with no source asset.
type procedural struct {
	name   string
	radius float32
}

var _ Visual = &procedural{}

// NewProcedural creates a stand-in Visual described only by its name and bounding radius.
// Placeholders, particle clouds and decorative sets use it.
//
// Parameters:
//   - name: the visual identifier
//   - radius: the bounding radius around the local origin
//
// Returns:
//   - Visual: the procedural visual
func NewProcedural(name string, radius float32) Visual {
	return &procedural{name: name, radius: radius}
}

func (p *procedural) Name() string {
	return p.name
}

func (p *procedural) Bounds() (min, max mgl32.Vec3) {
	return mgl32.Vec3{-p.radius, -p.radius, -p.radius}, mgl32.Vec3{p.radius, p.radius, p.radius}
}

func (p *procedural) Radius() float32 {
	return p.radius
}
