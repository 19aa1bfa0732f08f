package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
)

func TestShaderDataTypeSizes(t *testing.T) {
	cases := []struct {
		t          ShaderDataType
		size       uint32
		components int32
	}{
		{Float, 4, 1},
		{Float2, 8, 2},
		{Float3, 12, 3},
		{Float4, 16, 4},
		{Mat3, 36, 9},
		{Mat4, 64, 16},
		{Int, 4, 1},
		{Int2, 8, 2},
		{Int3, 12, 3},
		{Int4, 16, 4},
		{Bool, 1, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.size, c.t.Size(), c.t.String())
		assert.Equal(t, c.components, c.t.ComponentCount(), c.t.String())
	}
}

func TestShaderDataTypeUnknownPanics(t *testing.T) {
	assert.Panics(t, func() { None.Size() })
	assert.Panics(t, func() { ShaderDataType(99).ComponentCount() })
	assert.Panics(t, func() { NewElement(None, "broken") })
}

func TestLayoutOffsetsAndStride(t *testing.T) {
	l := NewLayout(
		NewElement(Float3, "a_Position"),
		NewElement(Float4, "a_Color"),
		NewElement(Float2, "a_TexCoord"),
	)

	elements := l.Elements()
	require.Len(t, elements, 3)
	assert.Equal(t, uint32(0), elements[0].Offset)
	assert.Equal(t, uint32(12), elements[1].Offset)
	assert.Equal(t, uint32(28), elements[2].Offset)
	assert.Equal(t, uint32(36), l.Stride())
	assert.Equal(t, []string{"a_Position", "a_Color", "a_TexCoord"},
		[]string{elements[0].Name, elements[1].Name, elements[2].Name})
}

func TestLayoutRecomputeIsIdempotent(t *testing.T) {
	l := NewLayout(NewElement(Float3, "a_Position"), NewElement(Bool, "a_Flag"), NewElement(Int, "a_ID"))
	first := l.Elements()
	firstStride := l.Stride()

	l.SetElements(first...)
	assert.Equal(t, first, l.Elements())
	assert.Equal(t, firstStride, l.Stride())
	assert.Equal(t, uint32(17), l.Stride())
	assert.Equal(t, uint32(13), first[2].Offset)
}

func TestLayoutIgnoresCallerOffsets(t *testing.T) {
	e := NewElement(Float2, "a_UV")
	e.Offset = 100
	l := NewLayout(NewElement(Float, "a_Weight"), e)
	assert.Equal(t, uint32(4), l.Elements()[1].Offset)
}

func TestEmptyLayout(t *testing.T) {
	var l Layout
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, uint32(0), l.Stride())
}

func TestVertexBufferUpload(t *testing.T) {
	dev := gputest.NewDevice()
	vb := NewVertexBuffer(dev, []float32{1, 2, 3, 4})

	buf := dev.Buffers[vb.Handle()]
	require.NotNil(t, buf)
	assert.Equal(t, gpu.ArrayBuffer, buf.Target)
	assert.Equal(t, gpu.StaticDraw, buf.Usage)
	assert.Len(t, buf.Data, 16)
	assert.Equal(t, 16, vb.Size())

	vb.Destroy()
	vb.Destroy()
	assert.True(t, buf.Deleted)
	assert.Equal(t, gpu.NoHandle, vb.Handle())
}

func TestDynamicVertexBufferSetData(t *testing.T) {
	dev := gputest.NewDevice()
	vb := NewDynamicVertexBuffer(dev, 8)
	buf := dev.Buffers[vb.Handle()]
	assert.Equal(t, gpu.DynamicDraw, buf.Usage)

	vb.SetData([]float32{1})
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f, 0, 0, 0, 0}, buf.Data)
	assert.Panics(t, func() { vb.SetData([]float32{1, 2, 3}) })
}

func TestIndexBuffer(t *testing.T) {
	dev := gputest.NewDevice()
	ib := NewIndexBuffer(dev, []uint32{0, 1, 2, 2, 3, 0})
	assert.Equal(t, int32(6), ib.Count())
	assert.Equal(t, gpu.ElementArrayBuffer, dev.Buffers[ib.Handle()].Target)
	assert.Len(t, dev.Buffers[ib.Handle()].Data, 24)
}

func TestVertexArrayAttributes(t *testing.T) {
	dev := gputest.NewDevice()
	va := NewVertexArray(dev)

	vb := NewVertexBuffer(dev, make([]float32, 9), WithLayout(NewLayout(
		NewElement(Float3, "a_Position"),
		NewElement(Int, "a_Index"),
		NewElement(Float4, "a_Color", true),
	)))
	va.AddVertexBuffer(vb)

	instances := NewVertexBuffer(dev, make([]float32, 16))
	instances.SetLayout(NewLayout(NewElement(Mat4, "a_Transform")))
	va.AddVertexBuffer(instances)

	attribs := dev.VertexArrays[va.Handle()].Attribs
	require.Len(t, attribs, 7)

	assert.Equal(t, gpu.VertexAttrib{Index: 0, Components: 3, Type: gpu.AttribFloat, Stride: 32, Offset: 0}, attribs[0])
	assert.Equal(t, gpu.VertexAttrib{Index: 1, Components: 1, Type: gpu.AttribInt, Stride: 32, Offset: 12}, attribs[1])
	assert.Equal(t, gpu.VertexAttrib{Index: 2, Components: 4, Type: gpu.AttribFloat, Normalized: true, Stride: 32, Offset: 16}, attribs[2])
	for i := 0; i < 4; i++ {
		a := attribs[3+i]
		assert.Equal(t, uint32(3+i), a.Index)
		assert.Equal(t, int32(4), a.Components)
		assert.Equal(t, int32(64), a.Stride)
		assert.Equal(t, uintptr(16*i), a.Offset)
	}
	assert.Len(t, va.VertexBuffers(), 2)
}

func TestVertexArrayWithoutLayoutPanics(t *testing.T) {
	dev := gputest.NewDevice()
	va := NewVertexArray(dev)
	vb := NewVertexBuffer(dev, []float32{0, 0, 0})
	assert.Panics(t, func() { va.AddVertexBuffer(vb) })
}

func TestVertexArrayIndexBufferAndDestroy(t *testing.T) {
	dev := gputest.NewDevice()
	va := NewVertexArray(dev)
	vb := NewVertexBuffer(dev, []float32{0, 0, 0}, WithLayout(NewLayout(NewElement(Float3, "a_Position"))))
	ib := NewIndexBuffer(dev, []uint32{0, 0, 0})
	va.AddVertexBuffer(vb)
	va.SetIndexBuffer(ib)

	assert.Equal(t, ib.Handle(), dev.VertexArrays[va.Handle()].ElementBuffer)
	assert.Equal(t, ib, va.IndexBuffer())

	handle := va.Handle()
	vbHandle, ibHandle := vb.Handle(), ib.Handle()
	va.Destroy()
	assert.True(t, dev.VertexArrays[handle].Deleted)
	assert.True(t, dev.Buffers[vbHandle].Deleted)
	assert.True(t, dev.Buffers[ibHandle].Deleted)
}
