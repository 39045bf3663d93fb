package window

// WindowBuilderOption configures the showcase window before the platform window is created.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the requested client area in screen coordinates. The viewport reads the
// framebuffer size the platform actually grants, which differs on high-density displays.
// Non-positive values keep the default.
//
// Parameters:
//   - width: requested width
//   - height: requested height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}
