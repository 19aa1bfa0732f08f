package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
)

// RenderCommand issues stateless draw-state commands to the device. It holds no scene state and may
// be used outside of BeginScene/EndScene, e.g. to clear the framebuffer at the start of a frame.
type RenderCommand struct {
	device gpu.Device
}

// NewRenderCommand creates a RenderCommand for the given device.
//
// Parameters:
//   - device: the GPU device
//
// Returns:
//   - *RenderCommand: the command helper
func NewRenderCommand(device gpu.Device) *RenderCommand {
	return &RenderCommand{device: device}
}

// SetClearColor sets the color used by Clear.
func (c *RenderCommand) SetClearColor(color mgl32.Vec4) {
	c.device.SetClearColor(color)
}

// Clear clears the color and depth attachments.
func (c *RenderCommand) Clear() {
	c.device.Clear()
}

// SetViewport sets the viewport rectangle in pixels.
func (c *RenderCommand) SetViewport(x, y, width, height uint32) {
	c.device.SetViewport(int32(x), int32(y), int32(width), int32(height))
}

// DrawIndexed binds the vertex array and draws count of its indices. A count of 0 draws the full
// index buffer. Panics if the vertex array has no index buffer.
//
// Parameters:
//   - va: the vertex array to draw
//   - count: the number of indices, or 0 for all of them
func (c *RenderCommand) DrawIndexed(va buffer.VertexArray, count int32) {
	ib := va.IndexBuffer()
	if ib == nil {
		panic(fmt.Sprintf("renderer: vertex array %d has no index buffer", va.Handle()))
	}
	if count == 0 {
		count = ib.Count()
	}
	va.Bind()
	c.device.DrawIndexed(count)
}
