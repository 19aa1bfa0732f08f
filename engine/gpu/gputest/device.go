// Package gputest provides an in-memory gpu.Device that records every call, for use in tests
// that exercise buffers, shader programs and the renderer without a graphics context.
package gputest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// Call is one recorded Device method invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Shader is the recorded state of a shader object.
type Shader struct {
	Stage    gpu.ShaderStage
	Source   string
	Compiled bool
	Deleted  bool
}

// Program is the recorded state of a program object.
type Program struct {
	Attached []gpu.Handle
	Linked   bool
	Deleted  bool
	// Blocks maps uniform block index to its binding point.
	Blocks map[uint32]uint32
}

// Buffer is the recorded state of a buffer object.
type Buffer struct {
	Target  gpu.BufferTarget
	Usage   gpu.BufferUsage
	Data    []byte
	Deleted bool
}

// VertexArray is the recorded state of a vertex array object.
type VertexArray struct {
	Attribs       []gpu.VertexAttrib
	ElementBuffer gpu.Handle
	Deleted       bool
}

// Texture is the recorded state of a texture object.
type Texture struct {
	Desc    gpu.TextureDesc
	Deleted bool
}

// Upload is one SetUniform call together with the program that was current when it happened.
type Upload struct {
	Program  gpu.Handle
	Location gpu.UniformLocation
	// Name is the uniform name the location was resolved from, or "" for unknown locations.
	Name    string
	Uniform gpu.Uniform
}

// Draw is one DrawIndexed call with the state it was issued under.
type Draw struct {
	Program     gpu.Handle
	VertexArray gpu.Handle
	Textures    map[uint32]gpu.Handle
	Count       int32
}

// Device records calls and object state. The zero value is not usable, construct with NewDevice.
type Device struct {
	// CompileFunc decides the outcome of CompileShader. Defaults to success with an empty log.
	CompileFunc func(stage gpu.ShaderStage, source string) (bool, string)
	// LinkFunc decides the outcome of LinkProgram. Defaults to success with an empty log.
	LinkFunc func(program gpu.Handle) (bool, string)
	// InitErr is returned by Init.
	InitErr error
	// DeviceInfo is returned by Info.
	DeviceInfo gpu.Info
	// Inactive lists uniform names that resolve to gpu.InvalidLocation.
	Inactive map[string]bool

	Calls        []Call
	Shaders      map[gpu.Handle]*Shader
	Programs     map[gpu.Handle]*Program
	Buffers      map[gpu.Handle]*Buffer
	VertexArrays map[gpu.Handle]*VertexArray
	Textures     map[gpu.Handle]*Texture
	Uploads      []Upload
	Draws        []Draw

	Initialized     bool
	CurrentProgram  gpu.Handle
	BoundArray      gpu.Handle
	BoundBuffers    map[gpu.BufferTarget]gpu.Handle
	BoundTextures   map[uint32]gpu.Handle
	Viewport        [4]int32
	ViewportSet     bool
	ClearColor      mgl32.Vec4
	Clears          int
	Blending        bool
	DepthTest       bool
	LocationLookups int

	next      gpu.Handle
	locations map[gpu.Handle]map[string]gpu.UniformLocation
	names     map[gpu.Handle]map[gpu.UniformLocation]string
	blocks    map[gpu.Handle]map[string]uint32
}

var _ gpu.Device = &Device{}

// NewDevice creates an empty recording device.
//
// Returns:
//   - *Device: the recording device
func NewDevice() *Device {
	return &Device{
		DeviceInfo: gpu.Info{
			Vendor:          "gputest",
			Renderer:        "recording device",
			Version:         "4.1.0",
			ShadingLanguage: "4.10",
			MaxTextureUnits: 16,
		},
		Inactive:      map[string]bool{},
		Shaders:       map[gpu.Handle]*Shader{},
		Programs:      map[gpu.Handle]*Program{},
		Buffers:       map[gpu.Handle]*Buffer{},
		VertexArrays:  map[gpu.Handle]*VertexArray{},
		Textures:      map[gpu.Handle]*Texture{},
		BoundBuffers:  map[gpu.BufferTarget]gpu.Handle{},
		BoundTextures: map[uint32]gpu.Handle{},
		locations:     map[gpu.Handle]map[string]gpu.UniformLocation{},
		names:         map[gpu.Handle]map[gpu.UniformLocation]string{},
		blocks:        map[gpu.Handle]map[string]uint32{},
	}
}

// FailStage makes every compile of the given stage fail with log.
//
// Parameters:
//   - stage: the stage to fail
//   - log: the compiler log to report
func (d *Device) FailStage(stage gpu.ShaderStage, log string) {
	d.CompileFunc = func(s gpu.ShaderStage, _ string) (bool, string) {
		if s == stage {
			return false, log
		}
		return true, ""
	}
}

// LiveShaders returns the number of shader objects that were created and not deleted.
//
// Returns:
//   - int: live shader object count
func (d *Device) LiveShaders() int {
	n := 0
	for _, s := range d.Shaders {
		if !s.Deleted {
			n++
		}
	}
	return n
}

// LivePrograms returns the number of program objects that were created and not deleted.
//
// Returns:
//   - int: live program count
func (d *Device) LivePrograms() int {
	n := 0
	for _, p := range d.Programs {
		if !p.Deleted {
			n++
		}
	}
	return n
}

// CallNames returns the recorded method names in call order.
//
// Returns:
//   - []string: method names
func (d *Device) CallNames() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Name
	}
	return names
}

// UploadsTo returns every upload to the named uniform, in order.
//
// Parameters:
//   - name: the fully qualified uniform name
//
// Returns:
//   - []Upload: matching uploads
func (d *Device) UploadsTo(name string) []Upload {
	var out []Upload
	for _, u := range d.Uploads {
		if u.Name == name {
			out = append(out, u)
		}
	}
	return out
}

// LastUpload returns the most recent upload to the named uniform.
//
// Parameters:
//   - name: the fully qualified uniform name
//
// Returns:
//   - Upload: the upload
//   - bool: false if the uniform was never uploaded
func (d *Device) LastUpload(name string) (Upload, bool) {
	uploads := d.UploadsTo(name)
	if len(uploads) == 0 {
		return Upload{}, false
	}
	return uploads[len(uploads)-1], true
}

// Reset clears the call log, uploads and draws but keeps object state.
func (d *Device) Reset() {
	d.Calls = nil
	d.Uploads = nil
	d.Draws = nil
	d.LocationLookups = 0
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) handle() gpu.Handle {
	d.next++
	return d.next
}

func (d *Device) Init() error {
	d.record("Init")
	if d.InitErr != nil {
		return d.InitErr
	}
	d.Initialized = true
	return nil
}

func (d *Device) Info() gpu.Info {
	return d.DeviceInfo
}

func (d *Device) CreateShader(stage gpu.ShaderStage) gpu.Handle {
	h := d.handle()
	d.record("CreateShader", stage)
	d.Shaders[h] = &Shader{Stage: stage}
	return h
}

func (d *Device) CompileShader(shader gpu.Handle, source string) (bool, string) {
	d.record("CompileShader", shader)
	s, ok := d.Shaders[shader]
	if !ok {
		return false, "no such shader"
	}
	s.Source = source
	success, log := true, ""
	if d.CompileFunc != nil {
		success, log = d.CompileFunc(s.Stage, source)
	}
	s.Compiled = success
	return success, log
}

func (d *Device) DeleteShader(shader gpu.Handle) {
	d.record("DeleteShader", shader)
	if s, ok := d.Shaders[shader]; ok {
		s.Deleted = true
	}
}

func (d *Device) CreateProgram() gpu.Handle {
	h := d.handle()
	d.record("CreateProgram")
	d.Programs[h] = &Program{Blocks: map[uint32]uint32{}}
	return h
}

func (d *Device) AttachShader(program, shader gpu.Handle) {
	d.record("AttachShader", program, shader)
	if p, ok := d.Programs[program]; ok {
		p.Attached = append(p.Attached, shader)
	}
}

func (d *Device) DetachShader(program, shader gpu.Handle) {
	d.record("DetachShader", program, shader)
	p, ok := d.Programs[program]
	if !ok {
		return
	}
	for i, s := range p.Attached {
		if s == shader {
			p.Attached = append(p.Attached[:i], p.Attached[i+1:]...)
			return
		}
	}
}

func (d *Device) LinkProgram(program gpu.Handle) (bool, string) {
	d.record("LinkProgram", program)
	p, ok := d.Programs[program]
	if !ok {
		return false, "no such program"
	}
	success, log := true, ""
	for _, s := range p.Attached {
		if sh := d.Shaders[s]; sh == nil || !sh.Compiled {
			success, log = false, "attached shader is not compiled"
		}
	}
	if d.LinkFunc != nil {
		success, log = d.LinkFunc(program)
	}
	p.Linked = success
	return success, log
}

func (d *Device) DeleteProgram(program gpu.Handle) {
	d.record("DeleteProgram", program)
	if p, ok := d.Programs[program]; ok {
		p.Deleted = true
	}
	if d.CurrentProgram == program {
		d.CurrentProgram = gpu.NoHandle
	}
}

func (d *Device) UseProgram(program gpu.Handle) {
	d.record("UseProgram", program)
	d.CurrentProgram = program
}

func (d *Device) UniformLocation(program gpu.Handle, name string) gpu.UniformLocation {
	d.record("UniformLocation", program, name)
	d.LocationLookups++
	if d.Inactive[name] {
		return gpu.InvalidLocation
	}
	locs, ok := d.locations[program]
	if !ok {
		locs = map[string]gpu.UniformLocation{}
		d.locations[program] = locs
		d.names[program] = map[gpu.UniformLocation]string{}
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := gpu.UniformLocation(len(locs))
	locs[name] = loc
	d.names[program][loc] = name
	return loc
}

func (d *Device) UniformBlockIndex(program gpu.Handle, name string) uint32 {
	d.record("UniformBlockIndex", program, name)
	if d.Inactive[name] {
		return gpu.InvalidIndex
	}
	blocks, ok := d.blocks[program]
	if !ok {
		blocks = map[string]uint32{}
		d.blocks[program] = blocks
	}
	if idx, ok := blocks[name]; ok {
		return idx
	}
	idx := uint32(len(blocks))
	blocks[name] = idx
	return idx
}

func (d *Device) UniformBlockBinding(program gpu.Handle, blockIndex, bindingPoint uint32) {
	d.record("UniformBlockBinding", program, blockIndex, bindingPoint)
	if p, ok := d.Programs[program]; ok {
		p.Blocks[blockIndex] = bindingPoint
	}
}

func (d *Device) SetUniform(location gpu.UniformLocation, u gpu.Uniform) {
	d.record("SetUniform", location, u.Type, u.Count)
	d.Uploads = append(d.Uploads, Upload{
		Program:  d.CurrentProgram,
		Location: location,
		Name:     d.names[d.CurrentProgram][location],
		Uniform:  u,
	})
}

func (d *Device) CreateBuffer(target gpu.BufferTarget, data []byte, size int, usage gpu.BufferUsage) gpu.Handle {
	h := d.handle()
	d.record("CreateBuffer", target, size, usage)
	buf := &Buffer{Target: target, Usage: usage, Data: make([]byte, size)}
	copy(buf.Data, data)
	d.Buffers[h] = buf
	d.bind(target, h)
	return h
}

func (d *Device) BufferSubData(target gpu.BufferTarget, buffer gpu.Handle, offset int, data []byte) {
	d.record("BufferSubData", target, buffer, offset, len(data))
	d.bind(target, buffer)
	if b, ok := d.Buffers[buffer]; ok {
		copy(b.Data[offset:], data)
	}
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buffer gpu.Handle) {
	d.record("BindBuffer", target, buffer)
	d.bind(target, buffer)
}

func (d *Device) bind(target gpu.BufferTarget, buffer gpu.Handle) {
	d.BoundBuffers[target] = buffer
	if target == gpu.ElementArrayBuffer {
		if va, ok := d.VertexArrays[d.BoundArray]; ok {
			va.ElementBuffer = buffer
		}
	}
}

func (d *Device) DeleteBuffer(buffer gpu.Handle) {
	d.record("DeleteBuffer", buffer)
	if b, ok := d.Buffers[buffer]; ok {
		b.Deleted = true
	}
}

func (d *Device) CreateVertexArray() gpu.Handle {
	h := d.handle()
	d.record("CreateVertexArray")
	d.VertexArrays[h] = &VertexArray{}
	return h
}

func (d *Device) BindVertexArray(vertexArray gpu.Handle) {
	d.record("BindVertexArray", vertexArray)
	d.BoundArray = vertexArray
}

func (d *Device) EnableVertexAttrib(attrib gpu.VertexAttrib) {
	d.record("EnableVertexAttrib", attrib.Index)
	if va, ok := d.VertexArrays[d.BoundArray]; ok {
		va.Attribs = append(va.Attribs, attrib)
	}
}

func (d *Device) DeleteVertexArray(vertexArray gpu.Handle) {
	d.record("DeleteVertexArray", vertexArray)
	if va, ok := d.VertexArrays[vertexArray]; ok {
		va.Deleted = true
	}
}

func (d *Device) CreateTexture(desc gpu.TextureDesc) gpu.Handle {
	h := d.handle()
	d.record("CreateTexture", desc.Width, desc.Height)
	d.Textures[h] = &Texture{Desc: desc}
	return h
}

func (d *Device) BindTexture(texture gpu.Handle, slot uint32) {
	d.record("BindTexture", texture, slot)
	d.BoundTextures[slot] = texture
}

func (d *Device) DeleteTexture(texture gpu.Handle) {
	d.record("DeleteTexture", texture)
	if t, ok := d.Textures[texture]; ok {
		t.Deleted = true
	}
}

func (d *Device) SetViewport(x, y, width, height int32) {
	d.record("SetViewport", x, y, width, height)
	d.Viewport = [4]int32{x, y, width, height}
	d.ViewportSet = true
}

func (d *Device) SetClearColor(color mgl32.Vec4) {
	d.record("SetClearColor", color)
	d.ClearColor = color
}

func (d *Device) Clear() {
	d.record("Clear")
	d.Clears++
}

func (d *Device) SetBlending(enabled bool) {
	d.record("SetBlending", enabled)
	d.Blending = enabled
}

func (d *Device) SetDepthTest(enabled bool) {
	d.record("SetDepthTest", enabled)
	d.DepthTest = enabled
}

func (d *Device) DrawIndexed(count int32) {
	d.record("DrawIndexed", count)
	textures := make(map[uint32]gpu.Handle, len(d.BoundTextures))
	for slot, tex := range d.BoundTextures {
		textures[slot] = tex
	}
	d.Draws = append(d.Draws, Draw{
		Program:     d.CurrentProgram,
		VertexArray: d.BoundArray,
		Textures:    textures,
		Count:       count,
	})
}
