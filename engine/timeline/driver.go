package timeline

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
	"github.com/Carmen-Shannon/oxy-scroll/engine/viewport"
	"github.com/chewxy/math32"
)

// scrubSnap is the distance below which smoothed progress snaps onto its target.
const scrubSnap = 1e-4

// Driver samples scroll progress from a viewport each frame and poses the camera.
type Driver struct {
	timeline *Timeline
	viewport viewport.Viewport
	camera   camera.Camera

	base  camera.Pose
	scrub float32

	progress float32
	target   float32
	primed   bool
}

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(*Driver)

// WithScrub sets the smoothing lag in seconds. Zero makes the camera follow scroll immediately.
//
// Parameters:
//   - seconds: roughly how long progress takes to catch up with scroll
//
// Returns:
//   - DriverBuilderOption: a function that applies the scrub option
func WithScrub(seconds float32) DriverBuilderOption {
	return func(d *Driver) {
		d.scrub = max(seconds, 0)
	}
}

// WithBase sets the rest pose phases apply on top of.
//
// Parameters:
//   - pose: the rest pose
//
// Returns:
//   - DriverBuilderOption: a function that applies the base pose option
func WithBase(pose camera.Pose) DriverBuilderOption {
	return func(d *Driver) {
		d.base = pose
	}
}

// NewDriver creates a Driver. The base pose defaults to the camera's pose at construction.
//
// Parameters:
//   - tl: the timeline
//   - vp: the viewport supplying scroll offset and scrollable height
//   - cam: the camera to pose
//   - options: functional options
//
// Returns:
//   - *Driver: the driver
func NewDriver(tl *Timeline, vp viewport.Viewport, cam camera.Camera, options ...DriverBuilderOption) *Driver {
	if tl == nil || vp == nil || cam == nil {
		panic("timeline: NewDriver requires a timeline, viewport and camera")
	}
	d := &Driver{
		timeline: tl,
		viewport: vp,
		camera:   cam,
		base:     cam.Pose(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// Progress returns the smoothed progress used for the last pose.
func (d *Driver) Progress() float32 {
	return d.progress
}

// Target returns the raw scroll progress sampled on the last update.
func (d *Driver) Target() float32 {
	return d.target
}

// Base returns the rest pose.
func (d *Driver) Base() camera.Pose {
	return d.base
}

// SetBase replaces the rest pose, e.g. when the tier changes the camera distance.
func (d *Driver) SetBase(pose camera.Pose) {
	d.base = pose
}

// Timeline returns the driven timeline.
func (d *Driver) Timeline() *Timeline {
	return d.timeline
}

// Sample reads clamp(scrollY / scrollableHeight, 0, 1). A document that cannot scroll samples 0.
func (d *Driver) Sample() float32 {
	scrollable := d.viewport.ScrollableHeight()
	if scrollable <= 0 {
		return 0
	}
	return common.Saturate(d.viewport.ScrollOffset() / scrollable)
}

// Update samples scroll, advances the smoothed progress by dt seconds, and writes the camera pose.
// The first update after construction or Reset jumps straight to the sampled progress.
//
// Parameters:
//   - dt: seconds since the previous update
//
// Returns:
//   - camera.Pose: the pose written to the camera
func (d *Driver) Update(dt float32) camera.Pose {
	d.target = d.Sample()
	switch {
	case !d.primed || d.scrub <= 0:
		d.progress = d.target
		d.primed = true
	case dt > 0:
		alpha := 1 - math32.Exp(-4*dt/d.scrub)
		d.progress += (d.target - d.progress) * alpha
		if math32.Abs(d.target-d.progress) < scrubSnap {
			d.progress = d.target
		}
	}

	pose := d.timeline.Pose(d.progress, d.base)
	d.camera.SetPose(pose)
	return pose
}

// Reset makes the next Update jump to the sampled progress without smoothing.
func (d *Driver) Reset() {
	d.primed = false
}
