package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a camera position plus XYZ Euler rotation in radians.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	rotation mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for the perspective camera.
// The camera owns its pose directly; the scroll timeline writes it each frame and
// view/projection matrices are recomputed on every change.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Rotation returns the camera's XYZ Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation around X, Y and Z
	Rotation() mgl32.Vec3

	// Pose returns position and rotation together.
	//
	// Returns:
	//   - Pose: the current pose
	Pose() Pose

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current view matrix (world to camera).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - pos: world-space position
	SetPosition(pos mgl32.Vec3)

	// SetRotation sets the XYZ Euler rotation in radians and recomputes matrices.
	//
	// Parameters:
	//   - rot: rotation around X, Y and Z
	SetRotation(rot mgl32.Vec3)

	// SetPose sets position and rotation in one step.
	//
	// Parameters:
	//   - pose: the new pose
	SetPose(pose Pose)

	// LookAt rotates the camera to face target from its current position.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl32.Vec3)

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin facing -Z with a 60 degree field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    common.DegToRad(60),
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Rotation() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Pose{Position: c.position, Rotation: c.rotation}
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetPosition(pos mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pos
	c.updateMatrices()
}

func (c *cameraImpl) SetRotation(rot mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = rot
	c.updateMatrices()
}

func (c *cameraImpl) SetPose(pose Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pose.Position
	c.rotation = pose.Rotation
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = common.EulerFromDirection(target.Sub(c.position))
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices from the pose.
// The view matrix is the inverse of the camera's world transform (translation * rotation).
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	world := mgl32.Translate3D(c.position.X(), c.position.Y(), c.position.Z()).Mul4(common.EulerMatrix(c.rotation))
	c.viewMatrix = world.Inv()
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

// Framing returns a pose looking down -Z that keeps the whole sphere inside a frustum with the
// given vertical field of view and aspect ratio.
//
// Parameters:
//   - sphere: the volume to frame
//   - fov: vertical field of view in radians
//   - aspect: width / height
//
// Returns:
//   - Pose: the framing pose
func Framing(sphere common.Sphere, fov, aspect float32) Pose {
	half := fov / 2
	if aspect > 0 && aspect < 1 {
		half = math32.Atan(math32.Tan(half) * aspect)
	}
	distance := sphere.Radius
	if s := math32.Sin(half); s > 0 {
		distance = sphere.Radius / s
	}
	return Pose{Position: sphere.Center.Add(mgl32.Vec3{0, 0, distance})}
}
