// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Rect is an axis-aligned rectangle in viewport (client) coordinates, measured in CSS-style pixels
// from the top-left corner of the visible viewport.
type Rect struct {
	// Left is the distance from the viewport's left edge to the rectangle's left edge.
	Left float32
	// Top is the distance from the viewport's top edge to the rectangle's top edge.
	// Negative when the rectangle has scrolled above the viewport.
	Top float32
	// Width is the rectangle width.
	Width float32
	// Height is the rectangle height.
	Height float32
}

// Center returns the rectangle's center point.
//
// Returns:
//   - x, y: the center coordinates
func (r Rect) Center() (x, y float32) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Offset returns a copy of the rectangle moved by dx, dy.
//
// Parameters:
//   - dx, dy: translation in pixels
//
// Returns:
//   - Rect: the translated rectangle
func (r Rect) Offset(dx, dy float32) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorFromHex converts a 0xRRGGBB value into an opaque Color.
//
// Parameters:
//   - hex: the packed 24-bit color
//
// Returns:
//   - Color: the unpacked color with alpha 1
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255.0,
		G: float64((hex>>8)&0xff) / 255.0,
		B: float64(hex&0xff) / 255.0,
		A: 1.0,
	}
}
