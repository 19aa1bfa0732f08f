package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

var (
	red   = mgl32.Vec4{1, 0, 0, 1}
	white = mgl32.Vec4{1, 1, 1, 1}
)

// batchVertices decodes the first n vertices of the batch vertex buffer.
func batchVertices(t *testing.T, dev *gputest.Device, r Renderer2D, n int) [][quadVertexFloats]float32 {
	t.Helper()
	impl := r.(*renderer2D)
	data := dev.Buffers[impl.vertexBuffer.Handle()].Data
	out := make([][quadVertexFloats]float32, n)
	for v := range n {
		for f := range quadVertexFloats {
			off := (v*quadVertexFloats + f) * 4
			out[v][f] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out
}

func TestRenderer2DInit(t *testing.T) {
	r, dev := newInitialized(t)
	r2d := r.Renderer2D()

	require.True(t, r2d.Program().Valid())
	assert.Equal(t, MaxTextureSlots, r2d.TextureSlots())

	samplers, ok := uploadTo(dev, r2d.Program().Handle(), texturesUniform)
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, samplers.Uniform.Ints)

	found := false
	for _, s := range dev.Shaders {
		if s.Stage == gpu.StageVertex {
			assert.Contains(t, s.Source, "uniform mat4 viewProjMat;", "the scene include is expanded")
			found = true
		}
	}
	assert.True(t, found)
}

func TestRenderer2DDrawQuad(t *testing.T) {
	r, dev := newInitialized(t)
	r2d := r.Renderer2D()
	vp := mgl32.Ortho2D(-1, 1, -1, 1)

	r2d.ResetStats()
	r2d.BeginScene(fixedCamera{vp: vp})
	r2d.DrawQuad(mgl32.Vec3{1, 2, 0.5}, mgl32.Vec2{2, 4}, red)
	r2d.EndScene()

	upload, ok := uploadTo(dev, r2d.Program().Handle(), ViewProjectionUniform)
	require.True(t, ok)
	assert.Equal(t, vp[:], upload.Uniform.Floats)

	vertices := batchVertices(t, dev, r2d, 4)
	assert.Equal(t, [quadVertexFloats]float32{0, 0, 0.5, 1, 0, 0, 1, 0, 0, 0, 1}, vertices[0])
	assert.Equal(t, [quadVertexFloats]float32{2, 4, 0.5, 1, 0, 0, 1, 1, 1, 0, 1}, vertices[2])

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, int32(6), dev.Draws[0].Count)
	assert.Equal(t, r2d.Program().Handle(), dev.Draws[0].Program)
	assert.Equal(t, Stats{DrawCalls: 1, QuadCount: 1}, r2d.Stats())
	assert.Equal(t, 4, r2d.Stats().VertexCount())
	assert.Equal(t, 6, r2d.Stats().IndexCount())
}

func TestRenderer2DFlushesFullBatch(t *testing.T) {
	r, dev := newInitialized(t, WithMaxQuads(2))
	r2d := r.Renderer2D()

	r2d.BeginScene(fixedCamera{vp: mgl32.Ident4()})
	for i := range 5 {
		r2d.DrawQuad(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec2{1, 1}, red)
	}
	r2d.EndScene()

	require.Len(t, dev.Draws, 3)
	assert.Equal(t, int32(12), dev.Draws[0].Count)
	assert.Equal(t, int32(12), dev.Draws[1].Count)
	assert.Equal(t, int32(6), dev.Draws[2].Count)
	assert.Equal(t, Stats{DrawCalls: 3, QuadCount: 5}, r2d.Stats())

	r2d.ResetStats()
	assert.Zero(t, r2d.Stats())
}

func TestRenderer2DFlushesOnTextureSlotExhaustion(t *testing.T) {
	dev := gputest.NewDevice()
	dev.DeviceInfo.MaxTextureUnits = 3
	r := NewRenderer(dev, WithLogger(quiet()))
	require.NoError(t, r.Init())
	r2d := r.Renderer2D()
	assert.Equal(t, 3, r2d.TextureSlots())

	samplers, ok := uploadTo(dev, r2d.Program().Handle(), texturesUniform)
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 2, 2, 2}, samplers.Uniform.Ints[:5])

	texs := make([]texture.Texture2D, 3)
	for i := range texs {
		texs[i] = texture.NewTexture2D(dev, 1, 1, []byte{0, 0, 0, 255})
	}

	r2d.BeginScene(fixedCamera{vp: mgl32.Ident4()})
	r2d.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, 0, texs[0], 1, white)
	r2d.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, 0, texs[1], 1, white)
	r2d.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, 0, texs[0], 2, white)
	assert.Empty(t, dev.Draws, "a reused texture does not take a new slot")

	r2d.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, 0, texs[2], 1, white)
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, int32(18), dev.Draws[0].Count)
	assert.Equal(t, texs[0].Handle(), dev.Draws[0].Textures[1])
	assert.Equal(t, texs[1].Handle(), dev.Draws[0].Textures[2])

	r2d.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, red)
	r2d.EndScene()
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, int32(12), dev.Draws[1].Count)
	assert.Equal(t, texs[2].Handle(), dev.Draws[1].Textures[1])

	vertices := batchVertices(t, dev, r2d, 8)
	assert.Equal(t, float32(1), vertices[0][9], "texture index of the first quad in the new batch")
	assert.Equal(t, float32(0), vertices[4][9], "untextured quads sample the white texture")
}

func TestRenderer2DKeepsOneSlotForTexturesBesideWhite(t *testing.T) {
	dev := gputest.NewDevice()
	dev.DeviceInfo.MaxTextureUnits = 1
	r := NewRenderer(dev, WithLogger(quiet()))
	require.NoError(t, r.Init())
	r2d := r.Renderer2D()
	assert.Equal(t, 2, r2d.TextureSlots())

	samplers, ok := uploadTo(dev, r2d.Program().Handle(), texturesUniform)
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 1}, samplers.Uniform.Ints[:3])

	a := texture.NewTexture2D(dev, 1, 1, []byte{0, 0, 0, 255})
	b := texture.NewTexture2D(dev, 1, 1, []byte{255, 255, 255, 255})

	r2d.BeginScene(fixedCamera{vp: mgl32.Ident4()})
	r2d.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, 0, a, 1, white)
	r2d.DrawTexturedQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, 0, b, 1, white)
	r2d.EndScene()

	require.Len(t, dev.Draws, 2)
	assert.Equal(t, a.Handle(), dev.Draws[0].Textures[1])
	assert.Equal(t, b.Handle(), dev.Draws[1].Textures[1])

	vertices := batchVertices(t, dev, r2d, 4)
	assert.Equal(t, float32(1), vertices[0][9], "the second texture samples slot 1 of its own batch")
}

func TestRenderer2DTransformQuad(t *testing.T) {
	r, dev := newInitialized(t)
	r2d := r.Renderer2D()

	tex := texture.NewTexture2D(dev, 1, 1, []byte{0, 0, 0, 255})
	r2d.BeginScene(fixedCamera{vp: mgl32.Ident4()})
	r2d.DrawQuadTransform(mgl32.Translate3D(3, 0, 0).Mul4(mgl32.Scale3D(2, 2, 1)), tex, 4, white)
	r2d.EndScene()

	v := batchVertices(t, dev, r2d, 1)[0]
	assert.Equal(t, float32(2), v[0])
	assert.Equal(t, float32(-1), v[1])
	assert.Equal(t, float32(1), v[9])
	assert.Equal(t, float32(4), v[10])
}

func TestRenderer2DMisusePanics(t *testing.T) {
	r, _ := newInitialized(t)
	r2d := r.Renderer2D()
	cam := fixedCamera{vp: mgl32.Ident4()}

	assert.Panics(t, func() { r2d.DrawQuad(mgl32.Vec3{}, mgl32.Vec2{1, 1}, red) })
	assert.Panics(t, r2d.EndScene)

	r2d.BeginScene(cam)
	assert.Panics(t, func() { r2d.BeginScene(cam) })
	r2d.EndScene()
}

func TestRotatedCorners(t *testing.T) {
	corners := rotatedCorners(mgl32.Vec3{0, 0, 1}, mgl32.Vec2{2, 1}, 90)
	assert.InDelta(t, 0.5, corners[0].X(), 1e-6)
	assert.InDelta(t, -1, corners[0].Y(), 1e-6)
	assert.Equal(t, float32(1), corners[0].Z())

	flat := rotatedCorners(mgl32.Vec3{1, 1, 0}, mgl32.Vec2{2, 2}, 0)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, flat[0])
	assert.Equal(t, mgl32.Vec3{2, 2, 0}, flat[2])
}
