package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRotationEnabled enables Q/E rotation of the camera.
//
// Returns:
//   - CameraControllerOption: functional option to enable rotation
func WithRotationEnabled() CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotationEnabled = true
	}
}

// WithZoomLevel sets the initial zoom level (half-height of the visible area).
//
// Parameters:
//   - zoom: initial zoom level
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom level
func WithZoomLevel(zoom float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomLevel = zoom
	}
}

// WithMinZoom sets the smallest zoom level scrolling can reach.
//
// Parameters:
//   - zoom: minimum zoom level
//
// Returns:
//   - CameraControllerOption: functional option to set the minimum zoom
func WithMinZoom(zoom float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZoom = zoom
	}
}

// WithZoomStep sets how much one scroll unit changes the zoom level.
//
// Parameters:
//   - step: zoom change per scroll unit
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom step
func WithZoomStep(step float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomStep = step
	}
}

// WithTranslationSpeed sets the pan speed in world units per second at zoom level 1.
//
// Parameters:
//   - speed: pan speed
//
// Returns:
//   - CameraControllerOption: functional option to set the pan speed
func WithTranslationSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.translationSpeed = speed
	}
}

// WithRotationSpeed sets the rotation speed in degrees per second.
//
// Parameters:
//   - speed: rotation speed
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation speed
func WithRotationSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotationSpeed = speed
	}
}

// WithStartPosition sets the initial camera position.
//
// Parameters:
//   - position: initial world-space position
//
// Returns:
//   - CameraControllerOption: functional option to set the start position
func WithStartPosition(position mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = position
	}
}
