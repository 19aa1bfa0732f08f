package renderer

import (
	_ "embed"
	"log/slog"
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

//go:embed assets/renderer2d.glsl
var renderer2DSource string

const (
	// DefaultMaxQuads is the default number of quads per batch.
	DefaultMaxQuads = 10000

	// MaxTextureSlots is the number of samplers declared by the batch shader. Slot 0 always holds
	// the white texture used by untextured quads.
	MaxTextureSlots = 16

	renderer2DShaderName = "Renderer2D"
	texturesUniform      = "u_Textures"

	// floats per vertex: position(3) color(4) texcoord(2) tex index(1) tiling(1)
	quadVertexFloats = 11
)

var (
	quadCorners = [4]mgl32.Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	quadUVs     = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
)

// Stats counts the work done by a Renderer2D since the last ResetStats.
type Stats struct {
	DrawCalls int
	QuadCount int
}

// VertexCount returns the number of vertices submitted.
func (s Stats) VertexCount() int {
	return s.QuadCount * 4
}

// IndexCount returns the number of indices drawn.
func (s Stats) IndexCount() int {
	return s.QuadCount * 6
}

// LogAttrs returns the stats as log attributes.
func (s Stats) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("draw_calls", s.DrawCalls),
		slog.Int("quads", s.QuadCount),
		slog.Int("vertices", s.VertexCount()),
	}
}

// renderer2D is the implementation of the Renderer2D interface.
type renderer2D struct {
	mu *sync.Mutex

	device  gpu.Device
	command *RenderCommand
	logger  *slog.Logger

	program      shader.Program
	vertexArray  buffer.VertexArray
	vertexBuffer buffer.VertexBuffer
	whiteTexture texture.Texture2D

	maxQuads int
	maxSlots int

	vertices  []float32
	quadCount int
	textures  []texture.Texture2D

	active bool
	stats  Stats
}

// Renderer2D batches coloured and textured quads into as few draw calls as possible.
// A batch is flushed when it is full, when it runs out of texture slots, and at EndScene.
type Renderer2D interface {
	// BeginScene opens a 2D scene and uploads the camera transform to the batch shader.
	// Panics if a 2D scene is already active.
	//
	// Parameters:
	//   - camera: the scene camera
	BeginScene(camera Camera)

	// EndScene flushes the pending batch and closes the scene. Panics outside of a scene.
	EndScene()

	// Flush draws the pending batch, if any, and starts a new one.
	Flush()

	// DrawQuad draws an axis aligned quad centred on position.
	//
	// Parameters:
	//   - position: the quad centre; Z orders quads when depth testing is enabled
	//   - size: width and height
	//   - color: RGBA color
	DrawQuad(position mgl32.Vec3, size mgl32.Vec2, color mgl32.Vec4)

	// DrawRotatedQuad draws a quad rotated around its centre.
	//
	// Parameters:
	//   - position: the quad centre
	//   - size: width and height
	//   - degrees: counter-clockwise rotation
	//   - color: RGBA color
	DrawRotatedQuad(position mgl32.Vec3, size mgl32.Vec2, degrees float32, color mgl32.Vec4)

	// DrawTexturedQuad draws a textured quad.
	//
	// Parameters:
	//   - position: the quad centre
	//   - size: width and height
	//   - degrees: counter-clockwise rotation
	//   - tex: the texture
	//   - tiling: texture coordinate scale, 1 for no tiling
	//   - tint: RGBA color multiplied with the texture
	DrawTexturedQuad(position mgl32.Vec3, size mgl32.Vec2, degrees float32, tex texture.Texture2D, tiling float32, tint mgl32.Vec4)

	// DrawQuadTransform draws the unit quad transformed by transform.
	//
	// Parameters:
	//   - transform: the model transform of the unit quad
	//   - tex: the texture, or nil for a solid color
	//   - tiling: texture coordinate scale
	//   - color: RGBA color or tint
	DrawQuadTransform(transform mgl32.Mat4, tex texture.Texture2D, tiling float32, color mgl32.Vec4)

	// Stats returns the counters accumulated since the last ResetStats.
	//
	// Returns:
	//   - Stats: draw call and quad counters
	Stats() Stats

	// ResetStats zeroes the counters. The application calls it at the start of every frame.
	ResetStats()

	// Program returns the batch shader program.
	//
	// Returns:
	//   - shader.Program: the program
	Program() shader.Program

	// TextureSlots returns the number of texture slots available to a batch, including the white texture.
	//
	// Returns:
	//   - int: the slot count
	TextureSlots() int
}

var _ Renderer2D = &renderer2D{}

func newRenderer2D(device gpu.Device, command *RenderCommand, maxQuads int, logger *slog.Logger) (*renderer2D, error) {
	r := &renderer2D{
		mu:       &sync.Mutex{},
		device:   device,
		command:  command,
		logger:   logger,
		maxQuads: maxQuads,
		maxSlots: MaxTextureSlots,
	}
	// Slot 0 always holds the white texture, so a batch needs at least one more for textured quads.
	if units := int(device.Info().MaxTextureUnits); units > 0 {
		r.maxSlots = common.Clamp(units, 2, MaxTextureSlots)
	}

	pp := shader.NewPreProcessor(map[string]string{
		"scene": "uniform mat4 " + ViewProjectionUniform + ";",
	})
	r.program = shader.NewFromSource(device, renderer2DShaderName, renderer2DSource,
		shader.WithPreProcessor(pp),
		shader.WithLogger(logger),
	)
	if !r.program.Valid() {
		err := r.program.Err()
		r.program.Destroy()
		return nil, err
	}

	r.vertexArray = buffer.NewVertexArray(device)
	r.vertexBuffer = buffer.NewDynamicVertexBuffer(device, maxQuads*4*quadVertexFloats*4,
		buffer.WithLayout(buffer.NewLayout(
			buffer.NewElement(buffer.Float3, "a_Position"),
			buffer.NewElement(buffer.Float4, "a_Color"),
			buffer.NewElement(buffer.Float2, "a_TexCoord"),
			buffer.NewElement(buffer.Float, "a_TexIndex"),
			buffer.NewElement(buffer.Float, "a_TilingFactor"),
		)),
	)
	r.vertexArray.AddVertexBuffer(r.vertexBuffer)
	r.vertexArray.SetIndexBuffer(buffer.NewIndexBuffer(device, quadIndices(maxQuads)))
	r.vertexArray.Unbind()

	r.whiteTexture = texture.NewSolidTexture(device, [4]byte{255, 255, 255, 255})

	samplers := make([]int32, MaxTextureSlots)
	for i := range samplers {
		samplers[i] = int32(min(i, r.maxSlots-1))
	}
	shader.SetInts(r.program, shader.Name(texturesUniform), samplers)

	r.vertices = make([]float32, 0, maxQuads*4*quadVertexFloats)
	r.textures = make([]texture.Texture2D, 1, r.maxSlots)
	r.textures[0] = r.whiteTexture
	return r, nil
}

// quadIndices returns the index pattern 0,1,2,2,3,0 repeated for n quads.
func quadIndices(n int) []uint32 {
	indices := make([]uint32, 0, n*6)
	for q := range n {
		base := uint32(q * 4)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return indices
}

func (r *renderer2D) BeginScene(camera Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		panic("renderer2d: BeginScene called while a scene is active")
	}
	shader.SetMatrix(r.program, shader.Name(ViewProjectionUniform), camera.ViewProjection(), false)
	r.active = true
	r.startBatch()
}

func (r *renderer2D) EndScene() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		panic("renderer2d: EndScene called outside of a scene")
	}
	r.flush()
	r.active = false
}

func (r *renderer2D) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flush()
	r.startBatch()
}

func (r *renderer2D) DrawQuad(position mgl32.Vec3, size mgl32.Vec2, color mgl32.Vec4) {
	r.DrawRotatedQuad(position, size, 0, color)
}

func (r *renderer2D) DrawRotatedQuad(position mgl32.Vec3, size mgl32.Vec2, degrees float32, color mgl32.Vec4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeActive()
	r.pushQuad(rotatedCorners(position, size, degrees), 0, 1, color)
}

func (r *renderer2D) DrawTexturedQuad(position mgl32.Vec3, size mgl32.Vec2, degrees float32, tex texture.Texture2D, tiling float32, tint mgl32.Vec4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeActive()
	slot := 0
	if tex != nil {
		slot = r.textureSlot(tex)
	}
	r.pushQuad(rotatedCorners(position, size, degrees), slot, tiling, tint)
}

func (r *renderer2D) DrawQuadTransform(transform mgl32.Mat4, tex texture.Texture2D, tiling float32, color mgl32.Vec4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeActive()
	var corners [4]mgl32.Vec3
	for i, c := range quadCorners {
		corners[i] = transform.Mul4x1(mgl32.Vec4{c.X(), c.Y(), 0, 1}).Vec3()
	}
	slot := 0
	if tex != nil {
		slot = r.textureSlot(tex)
	}
	r.pushQuad(corners, slot, tiling, color)
}

func (r *renderer2D) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer2D) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = Stats{}
}

func (r *renderer2D) Program() shader.Program {
	return r.program
}

func (r *renderer2D) TextureSlots() int {
	return r.maxSlots
}

// rotatedCorners returns the world-space corners of a quad.
func rotatedCorners(position mgl32.Vec3, size mgl32.Vec2, degrees float32) [4]mgl32.Vec3 {
	sin, cos := float32(0), float32(1)
	if degrees != 0 {
		sin, cos = math32.Sincos(mgl32.DegToRad(degrees))
	}
	var corners [4]mgl32.Vec3
	for i, c := range quadCorners {
		x, y := c.X()*size.X(), c.Y()*size.Y()
		corners[i] = mgl32.Vec3{
			position.X() + x*cos - y*sin,
			position.Y() + x*sin + y*cos,
			position.Z(),
		}
	}
	return corners
}

// textureSlot returns the batch slot of tex, flushing first if every slot is taken.
// Caller must hold the mutex.
func (r *renderer2D) textureSlot(tex texture.Texture2D) int {
	for i, t := range r.textures {
		if t.Handle() == tex.Handle() {
			return i
		}
	}
	if len(r.textures) >= r.maxSlots {
		r.flush()
		r.startBatch()
	}
	r.textures = append(r.textures, tex)
	return len(r.textures) - 1
}

// pushQuad appends one quad, flushing first if the batch is full. Caller must hold the mutex.
func (r *renderer2D) pushQuad(corners [4]mgl32.Vec3, slot int, tiling float32, color mgl32.Vec4) {
	if r.quadCount >= r.maxQuads {
		tex := r.textures[slot]
		r.flush()
		r.startBatch()
		if slot != 0 {
			r.textures = append(r.textures, tex)
			slot = len(r.textures) - 1
		}
	}
	for i, p := range corners {
		r.vertices = append(r.vertices,
			p.X(), p.Y(), p.Z(),
			color.X(), color.Y(), color.Z(), color.W(),
			quadUVs[i].X(), quadUVs[i].Y(),
			float32(slot),
			tiling,
		)
	}
	r.quadCount++
	r.stats.QuadCount++
}

// flush uploads and draws the pending quads. Caller must hold the mutex.
func (r *renderer2D) flush() {
	if r.quadCount == 0 {
		return
	}
	r.vertexBuffer.SetData(r.vertices)
	for i, t := range r.textures {
		t.Bind(uint32(i))
	}
	r.program.Bind()
	r.command.DrawIndexed(r.vertexArray, int32(r.quadCount*6))
	r.stats.DrawCalls++
}

// startBatch clears the pending quads and textures. Caller must hold the mutex.
func (r *renderer2D) startBatch() {
	r.vertices = r.vertices[:0]
	r.quadCount = 0
	clear(r.textures[1:])
	r.textures = r.textures[:1]
}

// mustBeActive panics outside of a 2D scene. Caller must hold the mutex.
func (r *renderer2D) mustBeActive() {
	if !r.active {
		panic("renderer2d: draw called outside of a scene")
	}
}

func (r *renderer2D) destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertexArray.Destroy()
	r.whiteTexture.Destroy()
	r.program.Destroy()
}
