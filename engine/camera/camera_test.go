package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
)

type keyState map[common.Key]bool

func (k keyState) IsKeyPressed(key common.Key) bool { return k[key] }

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, m)
}

func TestOrthographicCameraProjection(t *testing.T) {
	c := NewOrthographicCamera(-2, 2, -1, 1)

	assert.True(t, c.ViewMatrix().ApproxEqual(mgl32.Ident4()))
	assert.True(t, c.ViewProjection().ApproxEqual(c.ProjectionMatrix()))

	corner := project(c.ViewProjection(), mgl32.Vec3{2, 1, 0})
	assert.InDelta(t, 1, corner.X(), 1e-5)
	assert.InDelta(t, 1, corner.Y(), 1e-5)
}

func TestOrthographicCameraPositionAndRotation(t *testing.T) {
	c := NewOrthographicCamera(-1, 1, -1, 1)

	c.SetPosition(mgl32.Vec3{0.5, 0, 0})
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0}, c.Position())
	center := project(c.ViewProjection(), mgl32.Vec3{0.5, 0, 0})
	assert.InDelta(t, 0, center.X(), 1e-5, "the camera position maps to the clip-space origin")

	c.SetPosition(mgl32.Vec3{})
	c.SetRotation(90)
	assert.Equal(t, float32(90), c.Rotation())
	up := project(c.ViewProjection(), mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 1, up.X(), 1e-5, "rotating the camera left moves world +Y to screen +X")
	assert.InDelta(t, 0, up.Y(), 1e-5)
}

func TestOrthographicCameraOptions(t *testing.T) {
	c := NewOrthographicCamera(-1, 1, -1, 1, WithPosition(mgl32.Vec3{1, 2, 0}), WithRotation(45), WithDepthRange(-10, 10))
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, c.Position())
	assert.Equal(t, float32(45), c.Rotation())
	assert.InDelta(t, -0.1, c.ProjectionMatrix().At(2, 2), 1e-6)
}

func TestSetProjectionKeepsView(t *testing.T) {
	c := NewOrthographicCamera(-1, 1, -1, 1, WithPosition(mgl32.Vec3{1, 0, 0}))
	view := c.ViewMatrix()
	c.SetProjection(-4, 4, -2, 2)
	assert.Equal(t, view, c.ViewMatrix())
	assert.True(t, c.ViewProjection().ApproxEqual(c.ProjectionMatrix().Mul4(view)))
}

func TestControllerZoom(t *testing.T) {
	cc := NewCameraController(2)
	assert.Equal(t, float32(1), cc.ZoomLevel())

	cc.OnEvent(events.NewMouseScrolled(0, 2))
	assert.Equal(t, float32(0.5), cc.ZoomLevel())

	e := events.NewMouseScrolled(0, 10)
	cc.OnEvent(e)
	assert.Equal(t, float32(0.25), cc.ZoomLevel(), "zoom is clamped to the minimum")
	assert.False(t, e.Handled)

	cc.SetZoomLevel(2)
	edge := project(cc.Camera().ViewProjection(), mgl32.Vec3{4, 2, 0})
	assert.InDelta(t, 1, edge.X(), 1e-5)
	assert.InDelta(t, 1, edge.Y(), 1e-5)
}

func TestControllerResize(t *testing.T) {
	cc := NewCameraController(1)

	e := events.NewWindowResize(800, 400)
	cc.OnEvent(e)
	assert.Equal(t, float32(2), cc.AspectRatio())
	assert.False(t, e.Handled)

	cc.Resize(100, 0)
	assert.Equal(t, float32(2), cc.AspectRatio(), "zero height is ignored")
}

func TestControllerMovement(t *testing.T) {
	cc := NewCameraController(1, WithTranslationSpeed(2))

	cc.OnUpdate(0.5, keyState{common.KeyD: true, common.KeyW: true})
	pos := cc.Camera().Position()
	assert.InDelta(t, 1, pos.X(), 1e-5)
	assert.InDelta(t, 1, pos.Y(), 1e-5)

	cc.OnUpdate(0.5, nil)
	assert.Equal(t, pos, cc.Camera().Position())

	cc.OnUpdate(1, keyState{common.KeyQ: true})
	assert.Equal(t, float32(0), cc.Camera().Rotation(), "rotation is disabled by default")
}

func TestControllerRotation(t *testing.T) {
	cc := NewCameraController(1, WithRotationEnabled(), WithRotationSpeed(90))

	cc.OnUpdate(1, keyState{common.KeyQ: true})
	assert.Equal(t, float32(90), cc.Camera().Rotation())

	cc.OnUpdate(1.5, keyState{common.KeyQ: true})
	assert.Equal(t, float32(-135), cc.Camera().Rotation(), "angles wrap into (-180, 180]")

	cc.OnUpdate(1, keyState{common.KeyE: true})
	assert.Equal(t, float32(135), cc.Camera().Rotation())
}
