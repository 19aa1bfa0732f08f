// Package opengl implements gpu.Device on top of OpenGL 4.1 core profile.
// A context must be current on the calling thread before Init is called.
package opengl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
)

// device is the OpenGL implementation of gpu.Device.
type device struct {
	logger *slog.Logger
	info   gpu.Info

	// minVersion is the lowest context version accepted by Init.
	minVersion string
}

var _ gpu.Device = &device{}

// NewDevice creates an OpenGL device. Nothing touches the graphics API until Init is called.
//
// Parameters:
//   - options: functional options to configure the device
//
// Returns:
//   - gpu.Device: the OpenGL device
func NewDevice(options ...DeviceBuilderOption) gpu.Device {
	d := &device{
		logger:     logger.Core(),
		minVersion: gpu.MinimumVersion,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *device) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to load OpenGL entry points: %w", err)
	}

	var maxUnits int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &maxUnits)
	d.info = gpu.Info{
		Vendor:          gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:        gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:         gl.GoStr(gl.GetString(gl.VERSION)),
		ShadingLanguage: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		MaxTextureUnits: maxUnits,
	}
	d.logger.Info("OpenGL context",
		"vendor", d.info.Vendor,
		"renderer", d.info.Renderer,
		"version", d.info.Version,
		"glsl", d.info.ShadingLanguage,
	)
	return gpu.CheckVersion(d.info, d.minVersion)
}

func (d *device) Info() gpu.Info {
	return d.info
}

func (d *device) CreateShader(stage gpu.ShaderStage) gpu.Handle {
	return gpu.Handle(gl.CreateShader(glStages[stage]))
}

func (d *device) CompileShader(shader gpu.Handle, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csources, nil)
	free()
	gl.CompileShader(uint32(shader))

	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)

	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	msg := ""
	if logLength > 0 {
		buf := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(uint32(shader), logLength, nil, gl.Str(buf))
		msg = strings.TrimRight(buf, "\x00")
	}
	return status != gl.FALSE, msg
}

func (d *device) DeleteShader(shader gpu.Handle) {
	gl.DeleteShader(uint32(shader))
}

func (d *device) CreateProgram() gpu.Handle {
	return gpu.Handle(gl.CreateProgram())
}

func (d *device) AttachShader(program, shader gpu.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (d *device) DetachShader(program, shader gpu.Handle) {
	gl.DetachShader(uint32(program), uint32(shader))
}

func (d *device) LinkProgram(program gpu.Handle) (bool, string) {
	gl.LinkProgram(uint32(program))

	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)

	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	msg := ""
	if logLength > 0 {
		buf := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(uint32(program), logLength, nil, gl.Str(buf))
		msg = strings.TrimRight(buf, "\x00")
	}
	return status != gl.FALSE, msg
}

func (d *device) DeleteProgram(program gpu.Handle) {
	gl.DeleteProgram(uint32(program))
}

func (d *device) UseProgram(program gpu.Handle) {
	gl.UseProgram(uint32(program))
}

func (d *device) UniformLocation(program gpu.Handle, name string) gpu.UniformLocation {
	return gpu.UniformLocation(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (d *device) UniformBlockIndex(program gpu.Handle, name string) uint32 {
	return gl.GetUniformBlockIndex(uint32(program), gl.Str(name+"\x00"))
}

func (d *device) UniformBlockBinding(program gpu.Handle, blockIndex, bindingPoint uint32) {
	gl.UniformBlockBinding(uint32(program), blockIndex, bindingPoint)
}

func (d *device) SetUniform(location gpu.UniformLocation, u gpu.Uniform) {
	loc := int32(location)
	count := u.Count
	if count <= 0 {
		count = 1
	}
	switch u.Type {
	case gpu.UniformBool, gpu.UniformInt:
		if len(u.Ints) == 0 {
			return
		}
		gl.Uniform1iv(loc, count, &u.Ints[0])
	default:
		if len(u.Floats) == 0 {
			return
		}
		ptr := &u.Floats[0]
		switch u.Type {
		case gpu.UniformFloat:
			gl.Uniform1fv(loc, count, ptr)
		case gpu.UniformVec2:
			gl.Uniform2fv(loc, count, ptr)
		case gpu.UniformVec3:
			gl.Uniform3fv(loc, count, ptr)
		case gpu.UniformVec4:
			gl.Uniform4fv(loc, count, ptr)
		case gpu.UniformMat3:
			gl.UniformMatrix3fv(loc, count, u.Transpose, ptr)
		case gpu.UniformMat4:
			gl.UniformMatrix4fv(loc, count, u.Transpose, ptr)
		}
	}
}

func (d *device) CreateBuffer(target gpu.BufferTarget, data []byte, size int, usage gpu.BufferUsage) gpu.Handle {
	var handle uint32
	gl.GenBuffers(1, &handle)
	gl.BindBuffer(glTargets[target], handle)
	if len(data) > 0 {
		gl.BufferData(glTargets[target], size, gl.Ptr(data), glUsages[usage])
	} else {
		gl.BufferData(glTargets[target], size, nil, glUsages[usage])
	}
	return gpu.Handle(handle)
}

func (d *device) BufferSubData(target gpu.BufferTarget, buffer gpu.Handle, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(glTargets[target], uint32(buffer))
	gl.BufferSubData(glTargets[target], offset, len(data), gl.Ptr(data))
}

func (d *device) BindBuffer(target gpu.BufferTarget, buffer gpu.Handle) {
	gl.BindBuffer(glTargets[target], uint32(buffer))
}

func (d *device) DeleteBuffer(buffer gpu.Handle) {
	handle := uint32(buffer)
	gl.DeleteBuffers(1, &handle)
}

func (d *device) CreateVertexArray() gpu.Handle {
	var handle uint32
	gl.GenVertexArrays(1, &handle)
	return gpu.Handle(handle)
}

func (d *device) BindVertexArray(vertexArray gpu.Handle) {
	gl.BindVertexArray(uint32(vertexArray))
}

func (d *device) EnableVertexAttrib(attrib gpu.VertexAttrib) {
	gl.EnableVertexAttribArray(attrib.Index)
	switch attrib.Type {
	case gpu.AttribInt:
		gl.VertexAttribIPointerWithOffset(attrib.Index, attrib.Components, gl.INT, attrib.Stride, attrib.Offset)
	case gpu.AttribBool:
		gl.VertexAttribIPointerWithOffset(attrib.Index, attrib.Components, gl.UNSIGNED_BYTE, attrib.Stride, attrib.Offset)
	default:
		gl.VertexAttribPointerWithOffset(attrib.Index, attrib.Components, gl.FLOAT, attrib.Normalized, attrib.Stride, attrib.Offset)
	}
}

func (d *device) DeleteVertexArray(vertexArray gpu.Handle) {
	handle := uint32(vertexArray)
	gl.DeleteVertexArrays(1, &handle)
}

func (d *device) CreateTexture(desc gpu.TextureDesc) gpu.Handle {
	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)

	filter := int32(gl.LINEAR)
	if desc.Filter == gpu.FilterNearest {
		filter = gl.NEAREST
	}
	wrap := int32(gl.REPEAT)
	if desc.Wrap == gpu.WrapClampToEdge {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	internal, format := int32(gl.RGBA8), uint32(gl.RGBA)
	if desc.Format == gpu.FormatRGB8 {
		internal, format = gl.RGB8, gl.RGB
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	}
	if len(desc.Pixels) > 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, internal, desc.Width, desc.Height, 0, format, gl.UNSIGNED_BYTE, gl.Ptr(desc.Pixels))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, internal, desc.Width, desc.Height, 0, format, gl.UNSIGNED_BYTE, nil)
	}
	return gpu.Handle(handle)
}

func (d *device) BindTexture(texture gpu.Handle, slot uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + slot)
	gl.BindTexture(gl.TEXTURE_2D, uint32(texture))
}

func (d *device) DeleteTexture(texture gpu.Handle) {
	handle := uint32(texture)
	gl.DeleteTextures(1, &handle)
}

func (d *device) SetViewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *device) SetClearColor(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
}

func (d *device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *device) SetBlending(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		return
	}
	gl.Disable(gl.BLEND)
}

func (d *device) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
		return
	}
	gl.Disable(gl.DEPTH_TEST)
}

func (d *device) DrawIndexed(count int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
}

var glStages = map[gpu.ShaderStage]uint32{
	gpu.StageVertex:   gl.VERTEX_SHADER,
	gpu.StageFragment: gl.FRAGMENT_SHADER,
	gpu.StageGeometry: gl.GEOMETRY_SHADER,
}

var glTargets = map[gpu.BufferTarget]uint32{
	gpu.ArrayBuffer:        gl.ARRAY_BUFFER,
	gpu.ElementArrayBuffer: gl.ELEMENT_ARRAY_BUFFER,
}

var glUsages = map[gpu.BufferUsage]uint32{
	gpu.StaticDraw:  gl.STATIC_DRAW,
	gpu.DynamicDraw: gl.DYNAMIC_DRAW,
}
