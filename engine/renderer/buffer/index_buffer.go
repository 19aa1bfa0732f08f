package buffer

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// IndexBuffer is a GPU buffer of uint32 triangle indices.
type IndexBuffer interface {
	// Bind binds the buffer to the element array target.
	Bind()

	// Unbind clears the element array binding.
	Unbind()

	// Count returns the number of indices in the buffer.
	//
	// Returns:
	//   - int32: index count
	Count() int32

	// Handle returns the GPU buffer object.
	//
	// Returns:
	//   - gpu.Handle: the buffer object
	Handle() gpu.Handle

	// Destroy releases the GPU buffer. Further calls are no-ops.
	Destroy()
}

// indexBuffer is the implementation of the IndexBuffer interface.
type indexBuffer struct {
	device gpu.Device
	handle gpu.Handle
	count  int32
}

var _ IndexBuffer = &indexBuffer{}

// NewIndexBuffer creates an index buffer and uploads a copy of indices.
//
// Parameters:
//   - device: the GPU device
//   - indices: the index data
//
// Returns:
//   - IndexBuffer: the new index buffer
func NewIndexBuffer(device gpu.Device, indices []uint32) IndexBuffer {
	data := common.SliceToBytes(indices)
	return &indexBuffer{
		device: device,
		handle: device.CreateBuffer(gpu.ElementArrayBuffer, data, len(data), gpu.StaticDraw),
		count:  int32(len(indices)),
	}
}

func (ib *indexBuffer) Bind() {
	ib.device.BindBuffer(gpu.ElementArrayBuffer, ib.handle)
}

func (ib *indexBuffer) Unbind() {
	ib.device.BindBuffer(gpu.ElementArrayBuffer, gpu.NoHandle)
}

func (ib *indexBuffer) Count() int32 {
	return ib.count
}

func (ib *indexBuffer) Handle() gpu.Handle {
	return ib.handle
}

func (ib *indexBuffer) Destroy() {
	if ib.handle == gpu.NoHandle {
		return
	}
	ib.device.DeleteBuffer(ib.handle)
	ib.handle = gpu.NoHandle
}
