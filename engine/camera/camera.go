// Package camera provides the orthographic camera consumed by the renderer's BeginScene and an
// event-driven controller that pans, rotates and zooms it.
package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	rotation float32 // degrees around +Z

	near float32
	far  float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for an orthographic 2D camera.
// The camera holds the projection bounds, a position and a rotation around the Z axis,
// and keeps the view, projection and view-projection matrices current after every change.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera and recomputes the view matrix.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// Rotation returns the rotation around the Z axis in degrees.
	//
	// Returns:
	//   - float32: rotation in degrees
	Rotation() float32

	// SetRotation sets the rotation around the Z axis in degrees and recomputes the view matrix.
	//
	// Parameters:
	//   - degrees: rotation in degrees
	SetRotation(degrees float32)

	// SetProjection replaces the orthographic bounds and recomputes the projection matrix.
	//
	// Parameters:
	//   - left, right: horizontal clip bounds
	//   - bottom, top: vertical clip bounds
	SetProjection(left, right, bottom, top float32)

	// ViewMatrix returns the current view matrix (inverse of the camera transform).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current orthographic projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjection returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjection() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewOrthographicCamera creates a camera looking down -Z with the given orthographic bounds.
//
// Parameters:
//   - left, right: horizontal clip bounds
//   - bottom, top: vertical clip bounds
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewOrthographicCamera(left, right, bottom, top float32, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		near:       -1,
		far:        1,
		viewMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.projectionMatrix = mgl32.Ortho(left, right, bottom, top, c.near, c.far)
	c.updateView()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateView()
}

func (c *cameraImpl) Rotation() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) SetRotation(degrees float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = degrees
	c.updateView()
}

func (c *cameraImpl) SetProjection(left, right, bottom, top float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectionMatrix = mgl32.Ortho(left, right, bottom, top, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
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

func (c *cameraImpl) ViewProjection() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

// updateView recalculates the view and view-projection matrices from position and rotation.
// Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	transform := mgl32.Translate3D(c.position.X(), c.position.Y(), c.position.Z()).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.rotation)))
	c.viewMatrix = transform.Inv()
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
