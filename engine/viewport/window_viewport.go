package viewport

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
)

// InputSurface is the part of a desktop window a WindowViewport needs. window.Window satisfies it.
type InputSurface interface {
	Width() int
	Height() int
	ContentScale() float32
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetResizeCallback(callback func(width, height int))
}

// DefaultWheelStep is the scroll distance, in CSS pixels, of one wheel notch.
const DefaultWheelStep float32 = 100

// DefaultLineStep is the scroll distance of one arrow key press.
const DefaultLineStep float32 = 40

// WindowViewport simulates a scrolling document on a desktop window. The wheel and the
// navigation keys move the scroll offset; framebuffer resizes change the visible size.
// Element positions come from a Layout that can be swapped at runtime (for example from a
// watched config file), which fires EventLayout.
type WindowViewport struct {
	*StaticViewport

	win       InputSurface
	wheelStep float32
	lineStep  float32
}

var _ Viewport = &WindowViewport{}

// NewWindowViewport creates a viewport over win. It installs the window's scroll, key and
// resize callbacks, so it must be created before any other code sets them.
//
// Parameters:
//   - win: the window providing input and size
//   - layout: the initial document layout
//   - options: functional options to configure the viewport
//
// Returns:
//   - *WindowViewport: the viewport
func NewWindowViewport(win InputSurface, layout Layout, options ...WindowViewportBuilderOption) *WindowViewport {
	if win == nil {
		panic("viewport: NewWindowViewport requires a window")
	}
	scale := win.ContentScale()
	v := &WindowViewport{
		StaticViewport: NewStaticViewport(
			WithSize(float32(win.Width())/scale, float32(win.Height())/scale),
			WithDevicePixelRatio(scale),
			WithLayout(layout),
		),
		win:       win,
		wheelStep: DefaultWheelStep,
		lineStep:  DefaultLineStep,
	}
	for _, option := range options {
		option(v)
	}

	win.SetScrollCallback(func(delta float32) {
		v.ScrollBy(-delta * v.wheelStep)
	})
	win.SetKeyDownCallback(v.handleKey)
	win.SetResizeCallback(func(width, height int) {
		s := win.ContentScale()
		v.mu.Lock()
		v.dpr = s
		v.width = float32(width) / s
		v.height = float32(height) / s
		v.scroll = common.Clamp(v.scroll, 0, v.scrollableHeight())
		v.mu.Unlock()
		v.listeners.emit(EventResize)
	})
	return v
}

// ApplyLayout swaps the document layout and fires EventLayout. The scroll offset is clamped to the new document.
//
// Parameters:
//   - layout: the new layout; it is copied
func (v *WindowViewport) ApplyLayout(layout Layout) {
	v.mu.Lock()
	v.layout = layout.clone()
	v.scroll = common.Clamp(v.scroll, 0, v.scrollableHeight())
	v.mu.Unlock()
	v.listeners.emit(EventLayout)
}

// handleKey maps navigation keys onto scroll movement.
func (v *WindowViewport) handleKey(keyCode uint32) {
	_, h := v.Size()
	switch keyCode {
	case common.KeyDown:
		v.ScrollBy(v.lineStep)
	case common.KeyUp:
		v.ScrollBy(-v.lineStep)
	case common.KeyPageDown, common.KeySpace:
		v.ScrollBy(h * 0.9)
	case common.KeyPageUp:
		v.ScrollBy(-h * 0.9)
	case common.KeyHome:
		v.ScrollBy(-v.ScrollOffset())
	case common.KeyEnd:
		v.ScrollBy(v.ScrollableHeight() - v.ScrollOffset())
	}
}

// WindowViewportBuilderOption is a functional option for configuring a WindowViewport.
type WindowViewportBuilderOption func(*WindowViewport)

// WithWheelStep sets the scroll distance of one wheel notch.
//
// Parameters:
//   - step: CSS pixels per notch
//
// Returns:
//   - WindowViewportBuilderOption: option function to apply
func WithWheelStep(step float32) WindowViewportBuilderOption {
	return func(v *WindowViewport) {
		v.wheelStep = step
	}
}

// WithLineStep sets the scroll distance of one arrow key press.
func WithLineStep(step float32) WindowViewportBuilderOption {
	return func(v *WindowViewport) {
		v.lineStep = step
	}
}
