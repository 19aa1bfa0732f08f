// Package texture uploads decoded images to the GPU as 2D textures and decodes image files on a
// worker pool so that only the final upload happens on the GPU thread.
package texture

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// Texture2D is a GPU-resident 2D texture.
type Texture2D interface {
	// Width returns the texture width in pixels.
	//
	// Returns:
	//   - int32: width in pixels
	Width() int32

	// Height returns the texture height in pixels.
	//
	// Returns:
	//   - int32: height in pixels
	Height() int32

	// Path returns the file the texture was loaded from, empty for generated textures.
	//
	// Returns:
	//   - string: the source path
	Path() string

	// Handle returns the GPU texture object.
	//
	// Returns:
	//   - gpu.Handle: the texture object, gpu.NoHandle after Destroy
	Handle() gpu.Handle

	// Bind binds the texture to a texture unit.
	//
	// Parameters:
	//   - slot: the texture unit index
	Bind(slot uint32)

	// Destroy releases the GPU texture. Further calls are no-ops.
	Destroy()
}

// texture2D is the implementation of the Texture2D interface.
type texture2D struct {
	device gpu.Device
	handle gpu.Handle
	width  int32
	height int32
	path   string
	filter gpu.TextureFilter
	wrap   gpu.TextureWrap
}

var _ Texture2D = &texture2D{}

// NewTexture2D uploads width*height RGBA pixels as a new texture.
// Panics if pixels does not hold exactly width*height*4 bytes.
//
// Parameters:
//   - device: the GPU device
//   - width: width in pixels
//   - height: height in pixels
//   - pixels: RGBA pixel data, row-major
//   - options: functional options to configure the texture
//
// Returns:
//   - Texture2D: the texture
func NewTexture2D(device gpu.Device, width, height int32, pixels []byte, options ...TextureBuilderOption) Texture2D {
	if int(width)*int(height)*4 != len(pixels) {
		panic(fmt.Sprintf("texture data of %d bytes does not match %dx%d RGBA", len(pixels), width, height))
	}
	t := &texture2D{
		device: device,
		width:  width,
		height: height,
		filter: gpu.FilterLinear,
		wrap:   gpu.WrapRepeat,
	}
	for _, opt := range options {
		opt(t)
	}
	t.handle = device.CreateTexture(gpu.TextureDesc{
		Width:  width,
		Height: height,
		Format: gpu.FormatRGBA8,
		Filter: t.filter,
		Wrap:   t.wrap,
		Pixels: pixels,
	})
	return t
}

// NewTexture2DFromImage uploads a decoded image as a new texture.
//
// Parameters:
//   - device: the GPU device
//   - img: the decoded image
//   - options: functional options to configure the texture
//
// Returns:
//   - Texture2D: the texture
func NewTexture2DFromImage(device gpu.Device, img *common.DecodedImage, options ...TextureBuilderOption) Texture2D {
	return NewTexture2D(device, int32(img.Width), int32(img.Height), img.Pixels, options...)
}

// NewSolidTexture creates a 1x1 texture of a single RGBA color, used as the default white texture
// by the 2D renderer.
//
// Parameters:
//   - device: the GPU device
//   - rgba: the color
//
// Returns:
//   - Texture2D: the texture
func NewSolidTexture(device gpu.Device, rgba [4]byte) Texture2D {
	return NewTexture2D(device, 1, 1, rgba[:], WithFilter(gpu.FilterNearest))
}

func (t *texture2D) Width() int32 {
	return t.width
}

func (t *texture2D) Height() int32 {
	return t.height
}

func (t *texture2D) Path() string {
	return t.path
}

func (t *texture2D) Handle() gpu.Handle {
	return t.handle
}

func (t *texture2D) Bind(slot uint32) {
	t.device.BindTexture(t.handle, slot)
}

func (t *texture2D) Destroy() {
	if t.handle == gpu.NoHandle {
		return
	}
	t.device.DeleteTexture(t.handle)
	t.handle = gpu.NoHandle
}
