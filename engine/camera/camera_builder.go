package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - position: the initial position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithRotation sets the camera's initial rotation around the Z axis in degrees.
//
// Parameters:
//   - degrees: the initial rotation
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera rotation
func WithRotation(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rotation = degrees
	}
}

// WithDepthRange sets the near and far planes of the orthographic volume. The default is [-1, 1].
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the depth range
func WithDepthRange(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
