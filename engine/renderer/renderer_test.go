package renderer

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

type fixedCamera struct {
	vp mgl32.Mat4
}

func (c fixedCamera) ViewProjection() mgl32.Mat4 { return c.vp }

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newInitialized(t *testing.T, options ...RendererBuilderOption) (Renderer, *gputest.Device) {
	t.Helper()
	dev := gputest.NewDevice()
	r := NewRenderer(dev, append([]RendererBuilderOption{WithLogger(quiet())}, options...)...)
	require.NoError(t, r.Init())
	return r, dev
}

func newTriangle(dev gpu.Device) buffer.VertexArray {
	va := buffer.NewVertexArray(dev)
	va.AddVertexBuffer(buffer.NewVertexBuffer(dev, []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0, 0.5, 0,
	}, buffer.WithLayout(buffer.NewLayout(buffer.NewElement(buffer.Float3, "a_Position")))))
	va.SetIndexBuffer(buffer.NewIndexBuffer(dev, []uint32{0, 1, 2}))
	return va
}

func uploadTo(dev *gputest.Device, program gpu.Handle, name string) (gputest.Upload, bool) {
	var last gputest.Upload
	found := false
	for _, u := range dev.UploadsTo(name) {
		if u.Program == program {
			last, found = u, true
		}
	}
	return last, found
}

func TestSceneStateMachine(t *testing.T) {
	dev := gputest.NewDevice()
	r := NewRenderer(dev, WithLogger(quiet()))
	cam := fixedCamera{vp: mgl32.Ident4()}

	assert.PanicsWithValue(t, "renderer: BeginScene called before Init", func() { r.BeginScene(cam) })
	require.NoError(t, r.Init())

	va := newTriangle(dev)
	program := shader.NewFromStageSources(dev, "flat", "vertex", "fragment", "", shader.WithLogger(quiet()))

	assert.Panics(t, func() { r.Submit(va, program, mgl32.Ident4()) }, "submit before BeginScene")
	assert.Panics(t, func() { r.EndScene() }, "EndScene while idle")

	r.BeginScene(cam)
	assert.Equal(t, StateSceneActive, r.State())
	assert.Panics(t, func() { r.BeginScene(cam) }, "BeginScene twice")

	r.EndScene()
	assert.Equal(t, StateIdle, r.State())
	_, active := r.SceneData()
	assert.False(t, active)

	assert.NotPanics(t, func() {
		r.BeginScene(cam)
		r.EndScene()
	})
}

func TestSubmitUploadsTransformsAndDraws(t *testing.T) {
	r, dev := newInitialized(t)
	va := newTriangle(dev)
	program := shader.NewFromStageSources(dev, "flat", "vertex", "fragment", "", shader.WithLogger(quiet()))
	require.True(t, program.Valid())

	vp := mgl32.Ortho2D(-2, 2, -1, 1)
	model := mgl32.Translate3D(1, 2, 3)

	r.BeginScene(fixedCamera{vp: vp})
	data, active := r.SceneData()
	require.True(t, active)
	assert.Equal(t, vp, data.ViewProjection)

	dev.Reset()
	r.Submit(va, program, model)
	calls := len(dev.Calls)
	r.EndScene()
	assert.Len(t, dev.Calls, calls, "EndScene issues no GPU work")

	modelUpload, ok := uploadTo(dev, program.Handle(), ModelUniform)
	require.True(t, ok)
	assert.Equal(t, model[:], modelUpload.Uniform.Floats)
	assert.Equal(t, gpu.UniformMat4, modelUpload.Uniform.Type)

	vpUpload, ok := uploadTo(dev, program.Handle(), ViewProjectionUniform)
	require.True(t, ok)
	assert.Equal(t, vp[:], vpUpload.Uniform.Floats)

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, gputest.Draw{
		Program:     program.Handle(),
		VertexArray: va.Handle(),
		Textures:    dev.Draws[0].Textures,
		Count:       3,
	}, dev.Draws[0])
	assert.Equal(t, "DrawIndexed", dev.Calls[len(dev.Calls)-1].Name)
}

func TestOnWindowResize(t *testing.T) {
	r, dev := newInitialized(t)

	assert.True(t, r.OnWindowResize(0, 0))
	assert.False(t, dev.ViewportSet, "a zero-area resize leaves the viewport untouched")
	assert.True(t, r.OnWindowResize(800, 0))
	assert.False(t, dev.ViewportSet)

	assert.False(t, r.OnWindowResize(800, 600))
	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.Viewport)
}

func TestInitConfiguresDevice(t *testing.T) {
	r, dev := newInitialized(t, WithClearColor(mgl32.Vec4{1, 0, 0, 1}), WithDepthTest(false))
	assert.True(t, r.Initialized())
	assert.True(t, dev.Initialized)
	assert.True(t, dev.Blending)
	assert.False(t, dev.DepthTest)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, dev.ClearColor)
	assert.Same(t, gpu.Device(dev), r.Device())

	assert.PanicsWithValue(t, "renderer: Init called twice", func() { _ = r.Init() })
}

func TestInitErrors(t *testing.T) {
	boom := errors.New("no context")
	dev := gputest.NewDevice()
	dev.InitErr = boom
	r := NewRenderer(dev, WithLogger(quiet()))
	assert.ErrorIs(t, r.Init(), boom)
	assert.False(t, r.Initialized())
	assert.Panics(t, func() { r.Renderer2D() })

	old := gputest.NewDevice()
	old.DeviceInfo.Version = "3.3.0 Mesa"
	assert.ErrorIs(t, NewRenderer(old, WithLogger(quiet())).Init(), gpu.ErrUnsupportedDevice)

	accepted := gputest.NewDevice()
	accepted.DeviceInfo.Version = "3.3.0 Mesa"
	assert.NoError(t, NewRenderer(accepted, WithLogger(quiet()), WithMinimumVersion("3.3")).Init())

	broken := gputest.NewDevice()
	broken.FailStage(gpu.StageFragment, "0:1: syntax error")
	err := NewRenderer(broken, WithLogger(quiet())).Init()
	assert.ErrorIs(t, err, shader.ErrCompile)
	assert.Zero(t, broken.LivePrograms())
}

func TestShutdownReleasesBatchResources(t *testing.T) {
	r, dev := newInitialized(t)
	r2d := r.Renderer2D()
	program := r2d.Program().Handle()

	r.Shutdown()
	assert.False(t, r.Initialized())
	assert.True(t, dev.Programs[program].Deleted)
	for h, tex := range dev.Textures {
		assert.True(t, tex.Deleted, "texture %d", h)
	}
	for h, buf := range dev.Buffers {
		assert.True(t, buf.Deleted, "buffer %d", h)
	}
	assert.NotPanics(t, r.Shutdown)
}

func TestRenderCommand(t *testing.T) {
	dev := gputest.NewDevice()
	c := NewRenderCommand(dev)

	c.SetClearColor(mgl32.Vec4{0, 0, 1, 1})
	c.Clear()
	c.SetViewport(10, 20, 30, 40)
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 1}, dev.ClearColor)
	assert.Equal(t, 1, dev.Clears)
	assert.Equal(t, [4]int32{10, 20, 30, 40}, dev.Viewport)

	va := newTriangle(dev)
	c.DrawIndexed(va, 0)
	c.DrawIndexed(va, 2)
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, int32(3), dev.Draws[0].Count)
	assert.Equal(t, int32(2), dev.Draws[1].Count)
	assert.Equal(t, va.Handle(), dev.Draws[1].VertexArray)

	assert.Panics(t, func() { c.DrawIndexed(buffer.NewVertexArray(dev), 0) })
}
