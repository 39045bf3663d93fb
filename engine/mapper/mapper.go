// Package mapper converts document element rectangles into world-space points on a projection plane.
package mapper

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/engine/viewport"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OffscreenSentinel is returned for anchors that cannot be mapped. It sits well below every
// camera framing so whatever follows it is effectively hidden.
var OffscreenSentinel = mgl32.Vec3{0, -100, 0}

// Projection is the camera state the mapping reads. camera.Camera satisfies it.
type Projection interface {
	Position() mgl32.Vec3
	Fov() float32
	Aspect() float32
}

// WorldPositionFor maps the center of an element's client rectangle onto the plane z = planeZ.
// The element center is converted to normalized device coordinates and scaled by the size of the
// visible frustum slice at the plane's distance from the camera. The vertical result follows the
// camera's Y so anchors track the camera as it travels down the scene.
//
// Parameters:
//   - el: the anchor element; nil yields OffscreenSentinel
//   - cam: the camera whose frustum defines the plane extents
//   - viewportW, viewportH: visible viewport size in CSS pixels
//   - planeZ: the projection plane depth
//
// Returns:
//   - mgl32.Vec3: the world-space point, or OffscreenSentinel when the element is absent,
//     zero-sized, or the viewport has no area
func WorldPositionFor(el viewport.Element, cam Projection, viewportW, viewportH, planeZ float32) mgl32.Vec3 {
	if el == nil || cam == nil || viewportW <= 0 || viewportH <= 0 {
		return OffscreenSentinel
	}
	rect := el.BoundingRect()
	if rect.Width == 0 && rect.Height == 0 {
		return OffscreenSentinel
	}

	cx, cy := rect.Center()
	ndcX := cx/viewportW*2 - 1
	ndcY := -(cy/viewportH)*2 + 1

	pos := cam.Position()
	distance := pos.Z() - planeZ
	planeHeight := 2 * math32.Tan(cam.Fov()/2) * distance
	planeWidth := planeHeight * cam.Aspect()

	return mgl32.Vec3{
		ndcX * planeWidth / 2,
		ndcY*planeHeight/2 + pos.Y(),
		planeZ,
	}
}

// Anchor is a stable handle to a named element. The element lookup happens once and is only
// repeated when the Mapper is invalidated.
type Anchor struct {
	name     string
	element  viewport.Element
	last     mgl32.Vec3
	resolved bool
}

// Name returns the element name the anchor follows.
func (a *Anchor) Name() string {
	return a.name
}

// Found reports whether the element existed at the last lookup.
func (a *Anchor) Found() bool {
	return a.element != nil
}

// Element returns the looked-up element, or nil.
func (a *Anchor) Element() viewport.Element {
	return a.element
}

// Last returns the most recently resolved world position, or OffscreenSentinel before the first resolve.
func (a *Anchor) Last() mgl32.Vec3 {
	if !a.resolved {
		return OffscreenSentinel
	}
	return a.last
}

type mapperImpl struct {
	mu *sync.Mutex

	viewport viewport.Viewport
	planeZ   float32
	anchors  map[string]*Anchor
}

// Mapper resolves anchors against a viewport.
type Mapper interface {
	// Anchor returns the handle for name, looking the element up on first use.
	// Repeated calls return the same handle.
	//
	// Parameters:
	//   - name: the element identifier
	//
	// Returns:
	//   - *Anchor: the stable anchor handle
	Anchor(name string) *Anchor

	// Resolve computes the anchor's current world position from the live layout and caches it on the handle.
	// Resolving twice with no layout, scroll or camera change returns the same point.
	//
	// Parameters:
	//   - a: the anchor to resolve
	//   - cam: the camera defining the projection
	//
	// Returns:
	//   - mgl32.Vec3: the world position, or OffscreenSentinel
	Resolve(a *Anchor, cam Projection) mgl32.Vec3

	// Invalidate repeats the element lookup for every anchor. Call it on layout or resize events.
	Invalidate()

	// PlaneZ returns the projection plane depth.
	PlaneZ() float32
}

var _ Mapper = &mapperImpl{}

// NewMapper creates a Mapper over vp.
//
// Parameters:
//   - vp: the viewport providing elements and size
//   - options: functional options to configure the mapper
//
// Returns:
//   - Mapper: the mapper
func NewMapper(vp viewport.Viewport, options ...MapperBuilderOption) Mapper {
	if vp == nil {
		panic("mapper: NewMapper requires a viewport")
	}
	m := &mapperImpl{
		mu:       &sync.Mutex{},
		viewport: vp,
		anchors:  make(map[string]*Anchor),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *mapperImpl) Anchor(name string) *Anchor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.anchors[name]; ok {
		return a
	}
	a := &Anchor{name: name, element: m.viewport.Element(name)}
	m.anchors[name] = a
	return a
}

func (m *mapperImpl) Resolve(a *Anchor, cam Projection) mgl32.Vec3 {
	if a == nil {
		return OffscreenSentinel
	}
	w, h := m.viewport.Size()
	m.mu.Lock()
	defer m.mu.Unlock()
	a.last = WorldPositionFor(a.element, cam, w, h, m.planeZ)
	a.resolved = true
	return a.last
}

func (m *mapperImpl) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, a := range m.anchors {
		a.element = m.viewport.Element(name)
	}
}

func (m *mapperImpl) PlaneZ() float32 {
	return m.planeZ
}

// MapperBuilderOption is a functional option for configuring a Mapper.
type MapperBuilderOption func(*mapperImpl)

// WithPlaneZ sets the depth of the projection plane.
//
// Parameters:
//   - z: plane depth in world units
//
// Returns:
//   - MapperBuilderOption: option function to apply
func WithPlaneZ(z float32) MapperBuilderOption {
	return func(m *mapperImpl) {
		m.planeZ = z
	}
}
