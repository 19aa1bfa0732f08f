package camera

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
)

// KeyInput reports the current state of keyboard keys. Windows implement it so a controller can
// poll continuous movement keys once per frame.
type KeyInput interface {
	IsKeyPressed(key common.Key) bool
}

// CameraController drives an orthographic Camera from input.
// WASD pans along the camera's rotated axes, Q and E rotate (when rotation is enabled),
// the mouse wheel zooms and window resizes keep the projection's aspect ratio in sync.
type CameraController interface {
	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the orthographic camera owned by the controller
	Camera() Camera

	// OnUpdate polls movement keys and advances the camera by one frame.
	//
	// Parameters:
	//   - ts: the frame timestep in seconds
	//   - input: the key state source, may be nil
	OnUpdate(ts float32, input KeyInput)

	// OnEvent consumes MouseScrolled and WindowResize events. Neither is marked handled.
	//
	// Parameters:
	//   - e: the event
	OnEvent(e *events.Event)

	// ZoomLevel returns the half-height of the visible area in world units.
	//
	// Returns:
	//   - float32: the zoom level
	ZoomLevel() float32

	// SetZoomLevel sets the zoom level, clamped to the minimum zoom, and updates the projection.
	//
	// Parameters:
	//   - zoom: the new zoom level
	SetZoomLevel(zoom float32)

	// AspectRatio returns the width / height ratio of the projection.
	//
	// Returns:
	//   - float32: the aspect ratio
	AspectRatio() float32

	// Resize updates the aspect ratio from a framebuffer size. A zero height is ignored.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	Resize(width, height float32)
}
