package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// VertexArray records the attribute bindings of one or more vertex buffers and a single index
// buffer, so that a draw only needs to bind the array.
type VertexArray interface {
	// Bind binds the vertex array.
	Bind()

	// Unbind clears the vertex array binding.
	Unbind()

	// AddVertexBuffer binds vb into the array and enables one attribute slot per layout element,
	// continuing the slot numbering of previously added buffers. Panics if vb has no layout.
	//
	// Parameters:
	//   - vb: the vertex buffer with its layout set
	AddVertexBuffer(vb VertexBuffer)

	// SetIndexBuffer attaches the index buffer used by draws of this array.
	//
	// Parameters:
	//   - ib: the index buffer
	SetIndexBuffer(ib IndexBuffer)

	// VertexBuffers returns the buffers added so far, in order.
	//
	// Returns:
	//   - []VertexBuffer: the vertex buffers
	VertexBuffers() []VertexBuffer

	// IndexBuffer returns the attached index buffer, or nil.
	//
	// Returns:
	//   - IndexBuffer: the index buffer
	IndexBuffer() IndexBuffer

	// Handle returns the GPU vertex array object.
	//
	// Returns:
	//   - gpu.Handle: the vertex array object
	Handle() gpu.Handle

	// Destroy releases the vertex array and every buffer it owns.
	Destroy()
}

// vertexArray is the implementation of the VertexArray interface.
type vertexArray struct {
	device        gpu.Device
	handle        gpu.Handle
	vertexBuffers []VertexBuffer
	indexBuffer   IndexBuffer

	// nextAttrib is the first free attribute slot.
	nextAttrib uint32
}

var _ VertexArray = &vertexArray{}

// NewVertexArray creates an empty vertex array.
//
// Parameters:
//   - device: the GPU device
//
// Returns:
//   - VertexArray: the new vertex array
func NewVertexArray(device gpu.Device) VertexArray {
	return &vertexArray{
		device: device,
		handle: device.CreateVertexArray(),
	}
}

func (va *vertexArray) Bind() {
	va.device.BindVertexArray(va.handle)
}

func (va *vertexArray) Unbind() {
	va.device.BindVertexArray(gpu.NoHandle)
}

func (va *vertexArray) AddVertexBuffer(vb VertexBuffer) {
	layout := vb.Layout()
	if layout.Len() == 0 {
		panic(fmt.Sprintf("vertex buffer %d has no layout", vb.Handle()))
	}

	va.Bind()
	vb.Bind()

	stride := int32(layout.Stride())
	for _, e := range layout.Elements() {
		slots, components := e.Type.columns()
		columnSize := uintptr(components) * 4
		for i := 0; i < slots; i++ {
			va.device.EnableVertexAttrib(gpu.VertexAttrib{
				Index:      va.nextAttrib,
				Components: components,
				Type:       e.Type.attribType(),
				Normalized: e.Normalized,
				Stride:     stride,
				Offset:     uintptr(e.Offset) + uintptr(i)*columnSize,
			})
			va.nextAttrib++
		}
	}
	va.vertexBuffers = append(va.vertexBuffers, vb)
}

func (va *vertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.indexBuffer = ib
}

func (va *vertexArray) VertexBuffers() []VertexBuffer {
	return va.vertexBuffers
}

func (va *vertexArray) IndexBuffer() IndexBuffer {
	return va.indexBuffer
}

func (va *vertexArray) Handle() gpu.Handle {
	return va.handle
}

func (va *vertexArray) Destroy() {
	if va.handle == gpu.NoHandle {
		return
	}
	for _, vb := range va.vertexBuffers {
		vb.Destroy()
	}
	if va.indexBuffer != nil {
		va.indexBuffer.Destroy()
	}
	va.device.DeleteVertexArray(va.handle)
	va.handle = gpu.NoHandle
}
