// Package gpu defines the draw-command backend used by the renderer. The Device interface is a thin,
// handle-based view over the graphics API so that buffers, shader programs and the renderer can be
// written once and exercised against either the OpenGL implementation or the recording test device.
//
// A Device is bound to the thread that owns the graphics context. None of its methods are safe for
// concurrent use.
package gpu

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Handle is an opaque GPU object name (shader, program, buffer, vertex array or texture).
// The zero Handle never names a live object.
type Handle uint32

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// UniformLocation addresses a uniform inside a linked program.
type UniformLocation int32

// InvalidLocation is returned when a uniform name does not resolve to an active uniform.
// Uploads to InvalidLocation are silently ignored by the graphics API.
const InvalidLocation UniformLocation = -1

// InvalidIndex is returned when a uniform block name does not resolve to an active block.
const InvalidIndex uint32 = 0xFFFFFFFF

// ShaderStage identifies one programmable stage of a shader program.
type ShaderStage int

const (
	// StageVertex is the vertex processing stage.
	StageVertex ShaderStage = iota

	// StageFragment is the fragment (pixel) processing stage.
	StageFragment

	// StageGeometry is the optional geometry processing stage.
	StageGeometry
)

// Stages lists the supported stages in compile order.
var Stages = []ShaderStage{StageVertex, StageFragment, StageGeometry}

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// BufferTarget selects the binding point of a buffer object.
type BufferTarget int

const (
	// ArrayBuffer holds vertex attribute data.
	ArrayBuffer BufferTarget = iota

	// ElementArrayBuffer holds index data.
	ElementArrayBuffer
)

// BufferUsage is a hint describing how often a buffer's contents change.
type BufferUsage int

const (
	// StaticDraw buffers are written once and drawn many times.
	StaticDraw BufferUsage = iota

	// DynamicDraw buffers are rewritten frequently (e.g. every frame by a batch renderer).
	DynamicDraw
)

// AttribType is the component type of a vertex attribute stream.
type AttribType int

const (
	AttribFloat AttribType = iota
	AttribInt
	AttribBool
)

// VertexAttrib describes one enabled attribute slot of the currently bound vertex array.
type VertexAttrib struct {
	// Index is the attribute slot (layout(location = Index) in GLSL).
	Index uint32
	// Components is the number of components per vertex (1..4).
	Components int32
	// Type is the component type.
	Type AttribType
	// Normalized requests fixed-point normalization of integer data read as float.
	Normalized bool
	// Stride is the byte distance between consecutive vertices.
	Stride int32
	// Offset is the byte offset of the first component inside a vertex.
	Offset uintptr
}

// UniformType is the shader-side type of a uniform upload.
type UniformType int

const (
	UniformBool UniformType = iota
	UniformInt
	UniformFloat
	UniformVec2
	UniformVec3
	UniformVec4
	UniformMat3
	UniformMat4
)

// Components returns the number of scalar components of one element of the uniform type.
//
// Returns:
//   - int: component count (1 for scalars, 2..4 for vectors, 9 or 16 for matrices)
func (t UniformType) Components() int {
	switch t {
	case UniformVec2:
		return 2
	case UniformVec3:
		return 3
	case UniformVec4:
		return 4
	case UniformMat3:
		return 9
	case UniformMat4:
		return 16
	default:
		return 1
	}
}

func (t UniformType) String() string {
	switch t {
	case UniformBool:
		return "bool"
	case UniformInt:
		return "int"
	case UniformFloat:
		return "float"
	case UniformVec2:
		return "vec2"
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	case UniformMat3:
		return "mat3"
	case UniformMat4:
		return "mat4"
	default:
		return "unknown"
	}
}

// Uniform is one typed upload of Count consecutive elements starting at a location.
// Bool and Int uniforms carry their data in Ints, every other type in Floats.
type Uniform struct {
	Type      UniformType
	Count     int32
	Ints      []int32
	Floats    []float32
	Transpose bool
}

// TextureFormat is the pixel layout of texture data supplied by the caller.
type TextureFormat int

const (
	FormatRGBA8 TextureFormat = iota
	FormatRGB8
)

// TextureFilter selects the sampling filter for minification and magnification.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// TextureWrap selects the addressing mode outside of [0, 1].
type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClampToEdge
)

// TextureDesc describes a 2D texture upload.
type TextureDesc struct {
	Width  int32
	Height int32
	Format TextureFormat
	Filter TextureFilter
	Wrap   TextureWrap
	// Pixels is copied to the GPU; it may be nil to allocate storage only.
	Pixels []byte
}

// Info describes the graphics context a Device is bound to.
type Info struct {
	Vendor          string
	Renderer        string
	Version         string
	ShadingLanguage string
	MaxTextureUnits int32
}

// Device is the draw-command backend. Implementations translate every call into exactly one
// (or a fixed small number of) graphics API calls; they never cache state on behalf of callers.
type Device interface {
	// Init loads the graphics API entry points for the current context and reads the context Info.
	//
	// Returns:
	//   - error: error if the API could not be loaded
	Init() error

	// Info returns the context description collected by Init.
	//
	// Returns:
	//   - Info: vendor, renderer, version and limits of the context
	Info() Info

	// CreateShader creates an empty shader object for the given stage.
	//
	// Parameters:
	//   - stage: the stage the shader object will be compiled for
	//
	// Returns:
	//   - Handle: the new shader object
	CreateShader(stage ShaderStage) Handle

	// CompileShader uploads source to the shader object and compiles it.
	//
	// Parameters:
	//   - shader: a shader object created by CreateShader
	//   - source: the complete stage source
	//
	// Returns:
	//   - bool: true if compilation succeeded
	//   - string: the compiler info log (may be non-empty on success)
	CompileShader(shader Handle, source string) (bool, string)

	// DeleteShader releases a shader object.
	//
	// Parameters:
	//   - shader: the shader object to release
	DeleteShader(shader Handle)

	// CreateProgram creates an empty program object.
	//
	// Returns:
	//   - Handle: the new program object
	CreateProgram() Handle

	// AttachShader attaches a compiled shader object to a program prior to linking.
	//
	// Parameters:
	//   - program: the program object
	//   - shader: the shader object to attach
	AttachShader(program, shader Handle)

	// DetachShader detaches a shader object from a program.
	//
	// Parameters:
	//   - program: the program object
	//   - shader: the shader object to detach
	DetachShader(program, shader Handle)

	// LinkProgram links all attached shader objects into an executable program.
	//
	// Parameters:
	//   - program: the program object
	//
	// Returns:
	//   - bool: true if linking succeeded
	//   - string: the linker info log
	LinkProgram(program Handle) (bool, string)

	// DeleteProgram releases a program object.
	//
	// Parameters:
	//   - program: the program object to release
	DeleteProgram(program Handle)

	// UseProgram makes the program current; uniform uploads target the current program.
	//
	// Parameters:
	//   - program: the program object, or NoHandle to unbind
	UseProgram(program Handle)

	// UniformLocation resolves a uniform name inside a linked program.
	//
	// Parameters:
	//   - program: the linked program
	//   - name: the fully qualified uniform name (e.g. "lights[2].color")
	//
	// Returns:
	//   - UniformLocation: the location, or InvalidLocation if the name is not active
	UniformLocation(program Handle, name string) UniformLocation

	// UniformBlockIndex resolves a named uniform block inside a linked program.
	//
	// Parameters:
	//   - program: the linked program
	//   - name: the block name
	//
	// Returns:
	//   - uint32: the block index, or InvalidIndex
	UniformBlockIndex(program Handle, name string) uint32

	// UniformBlockBinding assigns a uniform block to a buffer binding point.
	//
	// Parameters:
	//   - program: the linked program
	//   - blockIndex: the block index returned by UniformBlockIndex
	//   - bindingPoint: the buffer binding point
	UniformBlockBinding(program Handle, blockIndex, bindingPoint uint32)

	// SetUniform uploads one typed uniform value (or array) to the current program.
	//
	// Parameters:
	//   - location: the resolved location
	//   - u: the typed payload
	SetUniform(location UniformLocation, u Uniform)

	// CreateBuffer creates a buffer object, binds it to target and allocates size bytes.
	// When data is non-nil it is copied into the new storage.
	//
	// Parameters:
	//   - target: the binding point
	//   - data: initial contents, or nil
	//   - size: the storage size in bytes
	//   - usage: the update frequency hint
	//
	// Returns:
	//   - Handle: the new buffer object
	CreateBuffer(target BufferTarget, data []byte, size int, usage BufferUsage) Handle

	// BufferSubData binds the buffer and overwrites a byte range of its storage.
	//
	// Parameters:
	//   - target: the binding point
	//   - buffer: the buffer object
	//   - offset: byte offset of the write
	//   - data: bytes to copy
	BufferSubData(target BufferTarget, buffer Handle, offset int, data []byte)

	// BindBuffer binds a buffer object (or NoHandle) to target.
	//
	// Parameters:
	//   - target: the binding point
	//   - buffer: the buffer object
	BindBuffer(target BufferTarget, buffer Handle)

	// DeleteBuffer releases a buffer object.
	//
	// Parameters:
	//   - buffer: the buffer object
	DeleteBuffer(buffer Handle)

	// CreateVertexArray creates a vertex array object.
	//
	// Returns:
	//   - Handle: the new vertex array
	CreateVertexArray() Handle

	// BindVertexArray binds a vertex array object (or NoHandle).
	//
	// Parameters:
	//   - vertexArray: the vertex array object
	BindVertexArray(vertexArray Handle)

	// EnableVertexAttrib enables and describes one attribute slot of the bound vertex array,
	// sourcing data from the buffer bound to ArrayBuffer.
	//
	// Parameters:
	//   - attrib: the attribute description
	EnableVertexAttrib(attrib VertexAttrib)

	// DeleteVertexArray releases a vertex array object.
	//
	// Parameters:
	//   - vertexArray: the vertex array object
	DeleteVertexArray(vertexArray Handle)

	// CreateTexture creates and uploads a 2D texture.
	//
	// Parameters:
	//   - desc: size, format, sampling and pixel data
	//
	// Returns:
	//   - Handle: the new texture
	CreateTexture(desc TextureDesc) Handle

	// BindTexture binds a texture to a texture unit.
	//
	// Parameters:
	//   - texture: the texture object
	//   - slot: the texture unit index
	BindTexture(texture Handle, slot uint32)

	// DeleteTexture releases a texture object.
	//
	// Parameters:
	//   - texture: the texture object
	DeleteTexture(texture Handle)

	// SetViewport sets the active viewport rectangle in pixels.
	SetViewport(x, y, width, height int32)

	// SetClearColor sets the color used by Clear.
	SetClearColor(color mgl32.Vec4)

	// Clear clears the color and depth attachments of the current framebuffer.
	Clear()

	// SetBlending toggles standard alpha blending (src alpha, one minus src alpha).
	SetBlending(enabled bool)

	// SetDepthTest toggles depth testing.
	SetDepthTest(enabled bool)

	// DrawIndexed issues an indexed triangle draw of count uint32 indices from the bound vertex array.
	//
	// Parameters:
	//   - count: the number of indices to draw
	DrawIndexed(count int32)
}
