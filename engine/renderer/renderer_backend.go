package renderer

import "github.com/Carmen-Shannon/oxy-scroll/common"

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeNull selects a headless backend that draws nothing. Culling and compile
	// bookkeeping still run, so it stands in for the GPU in tests and servers.
	BackendTypeNull
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeNull:
		return "null"
	default:
		return "unknown"
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the device-facing half of the Renderer. The Renderer decides what a frame
// contains; the backend owns the surface and submits the work.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and render targets at the given physical size.
	// Sizes of zero are ignored until a real size arrives.
	//
	// Parameters:
	//   - width: surface width in physical pixels
	//   - height: surface height in physical pixels
	//
	// Returns:
	//   - error: an error if the render targets could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets how frames are delivered to the display. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetSampleCount sets the MSAA sample count. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - count: the sample count
	SetSampleCount(count MSAASampleCount)

	// SetClearColor sets the color the main pass clears to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// UploadLights replaces the light storage buffer contents, growing the buffer when needed.
	//
	// Parameters:
	//   - data: the packed light buffer
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	UploadLights(data []byte) error

	// Warm submits an empty command buffer so device-side setup happens before the first visible frame.
	//
	// Returns:
	//   - error: an error if the submission failed
	Warm() error

	// BeginFrame acquires the next swapchain texture and begins the main render pass.
	// Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// EndFrame ends the main render pass and submits the command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees every device resource. The backend must not be used afterwards.
	Release()
}
