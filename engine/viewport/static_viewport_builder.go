package viewport

import "github.com/Carmen-Shannon/oxy-scroll/common"

// StaticViewportBuilderOption is a functional option for configuring a StaticViewport.
type StaticViewportBuilderOption func(*StaticViewport)

// WithSize sets the initial viewport size in CSS pixels.
//
// Parameters:
//   - width, height: the viewport dimensions
//
// Returns:
//   - StaticViewportBuilderOption: option function to apply
func WithSize(width, height float32) StaticViewportBuilderOption {
	return func(v *StaticViewport) {
		v.width = width
		v.height = height
	}
}

// WithDevicePixelRatio sets the initial device pixel ratio.
//
// Parameters:
//   - dpr: physical pixels per CSS pixel
//
// Returns:
//   - StaticViewportBuilderOption: option function to apply
func WithDevicePixelRatio(dpr float32) StaticViewportBuilderOption {
	return func(v *StaticViewport) {
		v.dpr = dpr
	}
}

// WithScroll sets the initial scroll offset.
func WithScroll(y float32) StaticViewportBuilderOption {
	return func(v *StaticViewport) {
		v.scroll = y
	}
}

// WithLayout sets the initial document layout.
//
// Parameters:
//   - layout: the document layout; it is copied
//
// Returns:
//   - StaticViewportBuilderOption: option function to apply
func WithLayout(layout Layout) StaticViewportBuilderOption {
	return func(v *StaticViewport) {
		v.layout = layout.clone()
	}
}

// WithElement adds one element in document coordinates.
func WithElement(name string, rect common.Rect) StaticViewportBuilderOption {
	return func(v *StaticViewport) {
		v.layout.Elements[name] = rect
	}
}

// WithDocumentHeight sets the total document height.
func WithDocumentHeight(height float32) StaticViewportBuilderOption {
	return func(v *StaticViewport) {
		v.layout.DocumentHeight = height
	}
}
