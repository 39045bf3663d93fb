package viewport

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// StaticViewport is an in-memory document. It backs headless runs and tests and is the
// document model behind WindowViewport. Setters fire the matching event synchronously.
type StaticViewport struct {
	mu *sync.Mutex

	width  float32
	height float32
	dpr    float32
	scroll float32

	layout Layout

	listeners listenerSet
}

var _ Viewport = &StaticViewport{}

// NewStaticViewport creates a StaticViewport. Defaults to a 1920x1080 viewport at pixel ratio 1
// over an empty document the height of the viewport.
//
// Parameters:
//   - options: functional options to configure the viewport
//
// Returns:
//   - *StaticViewport: the configured viewport
func NewStaticViewport(options ...StaticViewportBuilderOption) *StaticViewport {
	v := &StaticViewport{
		mu:     &sync.Mutex{},
		width:  1920,
		height: 1080,
		dpr:    1,
		layout: Layout{Elements: make(map[string]common.Rect)},
	}
	for _, option := range options {
		option(v)
	}
	return v
}

func (v *StaticViewport) ScrollOffset() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scroll
}

func (v *StaticViewport) Size() (width, height float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

func (v *StaticViewport) DevicePixelRatio() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dpr
}

func (v *StaticViewport) ScrollableHeight() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollableHeight()
}

func (v *StaticViewport) Element(name string) Element {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.layout.Elements[name]; !ok {
		return nil
	}
	return &staticElement{viewport: v, name: name}
}

func (v *StaticViewport) Subscribe(listener Listener) func() {
	return v.listeners.add(listener)
}

// SetScroll sets the scroll offset without clamping, so overscroll can be simulated.
//
// Parameters:
//   - y: the new scroll offset in CSS pixels
func (v *StaticViewport) SetScroll(y float32) {
	v.mu.Lock()
	v.scroll = y
	v.mu.Unlock()
	v.listeners.emit(EventScroll)
}

// ScrollBy moves the scroll offset by dy, clamped to [0, ScrollableHeight].
//
// Parameters:
//   - dy: the scroll delta in CSS pixels
func (v *StaticViewport) ScrollBy(dy float32) {
	v.mu.Lock()
	before := v.scroll
	v.scroll = common.Clamp(v.scroll+dy, 0, v.scrollableHeight())
	changed := v.scroll != before
	v.mu.Unlock()
	if changed {
		v.listeners.emit(EventScroll)
	}
}

// Resize changes the viewport size and fires EventResize.
//
// Parameters:
//   - width, height: the new size in CSS pixels
func (v *StaticViewport) Resize(width, height float32) {
	v.mu.Lock()
	v.width = width
	v.height = height
	v.mu.Unlock()
	v.listeners.emit(EventResize)
}

// SetDevicePixelRatio changes the pixel ratio and fires EventResize.
func (v *StaticViewport) SetDevicePixelRatio(dpr float32) {
	v.mu.Lock()
	v.dpr = dpr
	v.mu.Unlock()
	v.listeners.emit(EventResize)
}

// SetLayout replaces the whole document layout and fires EventLayout.
//
// Parameters:
//   - layout: the new layout; it is copied
func (v *StaticViewport) SetLayout(layout Layout) {
	v.mu.Lock()
	v.layout = layout.clone()
	v.mu.Unlock()
	v.listeners.emit(EventLayout)
}

// SetElement adds or moves one element (document coordinates) and fires EventLayout.
//
// Parameters:
//   - name: the element identifier
//   - rect: the element rectangle in document coordinates
func (v *StaticViewport) SetElement(name string, rect common.Rect) {
	v.mu.Lock()
	v.layout.Elements[name] = rect
	v.mu.Unlock()
	v.listeners.emit(EventLayout)
}

// RemoveElement removes an element and fires EventLayout.
func (v *StaticViewport) RemoveElement(name string) {
	v.mu.Lock()
	delete(v.layout.Elements, name)
	v.mu.Unlock()
	v.listeners.emit(EventLayout)
}

// scale returns the layout zoom factor. Caller must hold the mutex.
func (v *StaticViewport) scale() float32 {
	if v.layout.ReferenceWidth <= 0 || v.width <= 0 {
		return 1
	}
	return v.width / v.layout.ReferenceWidth
}

// scrollableHeight returns document height minus viewport height. Caller must hold the mutex.
func (v *StaticViewport) scrollableHeight() float32 {
	docHeight := v.layout.DocumentHeight * v.scale()
	if docHeight < v.height {
		return 0
	}
	return docHeight - v.height
}

// staticElement resolves its rectangle against the current layout on every call.
type staticElement struct {
	viewport *StaticViewport
	name     string
}

func (e *staticElement) BoundingRect() common.Rect {
	v := e.viewport
	v.mu.Lock()
	defer v.mu.Unlock()
	r, ok := v.layout.Elements[e.name]
	if !ok {
		return common.Rect{}
	}
	s := v.scale()
	return common.Rect{Left: r.Left * s, Top: r.Top*s - v.scroll, Width: r.Width * s, Height: r.Height * s}
}

func (e *staticElement) OffsetTop() float32 {
	v := e.viewport
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout.Elements[e.name].Top * v.scale()
}
