// Package common contains small helpers shared across the engine: key codes, generic value helpers,
// byte views for GPU uploads and image decoding.
package common

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// ErrEmptyImage is returned when an image decodes to zero width or height.
var ErrEmptyImage = errors.New("image has no pixels")

// imageFormat is a decoder selected by its leading magic bytes; '?' matches any byte.
// The tga package registers itself with image.RegisterFormat under an empty magic that matches
// every input, so image.Decode cannot be used once it is linked.
type imageFormat struct {
	name   string
	magic  string
	decode func(io.Reader) (image.Image, error)
}

var imageFormats = []imageFormat{
	{name: "png", magic: "\x89PNG\r\n\x1a\n", decode: png.Decode},
	{name: "jpeg", magic: "\xff\xd8", decode: jpeg.Decode},
	{name: "bmp", magic: "BM????\x00\x00\x00\x00", decode: bmp.Decode},
	{name: "webp", magic: "RIFF????WEBPVP8", decode: webp.Decode},
}

func (f imageFormat) matches(head []byte) bool {
	if len(head) < len(f.magic) {
		return false
	}
	for i := 0; i < len(f.magic); i++ {
		if f.magic[i] != '?' && f.magic[i] != head[i] {
			return false
		}
	}
	return true
}

// sniff picks the decoder for the data in br. TGA has no signature and is the fallback.
func sniff(br *bufio.Reader) (string, func(io.Reader) (image.Image, error)) {
	head, _ := br.Peek(16)
	for _, f := range imageFormats {
		if f.matches(head) {
			return f.name, f.decode
		}
	}
	return "tga", tga.Decode
}

// DecodedImage holds tightly packed RGBA pixels ready for texture upload.
type DecodedImage struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major order.
	Pixels []byte
	// Width is the image width in pixels.
	Width int
	// Height is the image height in pixels.
	Height int
	// Format is the name the decoder registered under (png, jpeg, bmp, webp, tga).
	Format string
}

// DecodeImage decodes PNG, JPEG, BMP, WebP or TGA data into RGBA pixels.
// When flipY is set the rows are reversed so that the first row is the bottom of the image,
// which is the order OpenGL expects for texture coordinates with a bottom-left origin.
// Reference: https://pkg.go.dev/golang.org/x/image/draw
//
// Parameters:
//   - r: the encoded image data
//   - flipY: reverse row order after decoding
//
// Returns:
//   - *DecodedImage: the decoded pixels
//   - error: error if the data cannot be decoded
func DecodeImage(r io.Reader, flipY bool) (*DecodedImage, error) {
	br := bufio.NewReader(r)
	format, decode := sniff(br)
	img, err := decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}

	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	if flipY {
		flipRows(rgba)
	}

	return &DecodedImage{
		Pixels: rgba.Pix,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}, nil
}

// DecodeImageBytes is DecodeImage over an in-memory buffer.
//
// Parameters:
//   - data: the encoded image data
//   - flipY: reverse row order after decoding
//
// Returns:
//   - *DecodedImage: the decoded pixels
//   - error: error if the data cannot be decoded
func DecodeImageBytes(data []byte, flipY bool) (*DecodedImage, error) {
	return DecodeImage(bytes.NewReader(data), flipY)
}

func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	tmp := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
