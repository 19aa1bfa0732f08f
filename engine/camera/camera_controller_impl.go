package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
)

type cameraControllerImpl struct {
	mu *sync.Mutex

	camera Camera

	aspectRatio float32
	zoomLevel   float32
	minZoom     float32
	zoomStep    float32

	rotationEnabled bool
	position        mgl32.Vec3
	rotation        float32

	// translationSpeed is scaled by the zoom level so panning feels constant on screen.
	translationSpeed float32
	rotationSpeed    float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller and the orthographic camera it drives.
//
// Parameters:
//   - aspectRatio: the initial width / height ratio
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(aspectRatio float32, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:               &sync.Mutex{},
		aspectRatio:      aspectRatio,
		zoomLevel:        1.0,
		minZoom:          0.25,
		zoomStep:         0.25,
		translationSpeed: 1.0,
		rotationSpeed:    180.0,
	}
	for _, option := range options {
		option(cc)
	}
	cc.zoomLevel = math32.Max(cc.zoomLevel, cc.minZoom)

	l, r, b, t := cc.bounds()
	cc.camera = NewOrthographicCamera(l, r, b, t, WithPosition(cc.position), WithRotation(cc.rotation))
	return cc
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) OnUpdate(ts float32, input KeyInput) {
	if input == nil {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()

	step := cc.translationSpeed * cc.zoomLevel * ts
	rad := mgl32.DegToRad(cc.rotation)
	sin, cos := math32.Sincos(rad)

	moved := false
	if input.IsKeyPressed(common.KeyA) {
		cc.position[0] -= cos * step
		cc.position[1] -= sin * step
		moved = true
	} else if input.IsKeyPressed(common.KeyD) {
		cc.position[0] += cos * step
		cc.position[1] += sin * step
		moved = true
	}
	if input.IsKeyPressed(common.KeyW) {
		cc.position[0] += -sin * step
		cc.position[1] += cos * step
		moved = true
	} else if input.IsKeyPressed(common.KeyS) {
		cc.position[0] -= -sin * step
		cc.position[1] -= cos * step
		moved = true
	}
	if moved {
		cc.camera.SetPosition(cc.position)
	}

	if !cc.rotationEnabled {
		return
	}
	rotated := false
	if input.IsKeyPressed(common.KeyQ) {
		cc.rotation += cc.rotationSpeed * ts
		rotated = true
	}
	if input.IsKeyPressed(common.KeyE) {
		cc.rotation -= cc.rotationSpeed * ts
		rotated = true
	}
	if rotated {
		cc.rotation = wrapDegrees(cc.rotation)
		cc.camera.SetRotation(cc.rotation)
	}
}

func (cc *cameraControllerImpl) OnEvent(e *events.Event) {
	events.Dispatch(e, events.MouseScrolled, func(e *events.Event) bool {
		cc.mu.Lock()
		defer cc.mu.Unlock()
		cc.setZoom(cc.zoomLevel - e.Y*cc.zoomStep)
		return false
	})
	events.Dispatch(e, events.WindowResize, func(e *events.Event) bool {
		cc.Resize(float32(e.Width), float32(e.Height))
		return false
	})
}

func (cc *cameraControllerImpl) ZoomLevel() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomLevel
}

func (cc *cameraControllerImpl) SetZoomLevel(zoom float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setZoom(zoom)
}

func (cc *cameraControllerImpl) AspectRatio() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.aspectRatio
}

func (cc *cameraControllerImpl) Resize(width, height float32) {
	if height == 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.aspectRatio = width / height
	cc.camera.SetProjection(cc.bounds())
}

// setZoom clamps and applies a zoom level. Caller must hold the mutex.
func (cc *cameraControllerImpl) setZoom(zoom float32) {
	cc.zoomLevel = math32.Max(zoom, cc.minZoom)
	cc.camera.SetProjection(cc.bounds())
}

// bounds returns the orthographic bounds for the current aspect ratio and zoom.
func (cc *cameraControllerImpl) bounds() (left, right, bottom, top float32) {
	return -cc.aspectRatio * cc.zoomLevel, cc.aspectRatio * cc.zoomLevel, -cc.zoomLevel, cc.zoomLevel
}

// wrapDegrees maps an angle into (-180, 180].
func wrapDegrees(deg float32) float32 {
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
