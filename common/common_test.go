package common

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodeTestImage(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImagePNG(t *testing.T) {
	data := encodeTestImage(t, func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })

	decoded, err := DecodeImageBytes(data, false)
	require.NoError(t, err)
	assert.Equal(t, "png", decoded.Format)
	assert.Equal(t, 2, decoded.Width)
	assert.Equal(t, 2, decoded.Height)
	require.Len(t, decoded.Pixels, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, decoded.Pixels[0:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, decoded.Pixels[8:12])
}

func TestDecodeImageFlipY(t *testing.T) {
	data := encodeTestImage(t, func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })

	decoded, err := DecodeImageBytes(data, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255, 255}, decoded.Pixels[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, decoded.Pixels[8:12])
}

func TestDecodeImageBMP(t *testing.T) {
	data := encodeTestImage(t, func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) })

	decoded, err := DecodeImageBytes(data, false)
	require.NoError(t, err)
	assert.Equal(t, "bmp", decoded.Format)
	assert.Equal(t, []byte{0, 255, 0, 255}, decoded.Pixels[4:8])
}

func TestDecodeImageTGA(t *testing.T) {
	data := encodeTestImage(t, func(b *bytes.Buffer, img image.Image) error { return tga.Encode(b, img) })

	decoded, err := DecodeImageBytes(data, false)
	require.NoError(t, err)
	assert.Equal(t, "tga", decoded.Format)
	assert.Equal(t, 2, decoded.Width)
	assert.Equal(t, 2, decoded.Height)
	assert.Equal(t, []byte{255, 0, 0, 255}, decoded.Pixels[0:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, decoded.Pixels[8:12])
}

func TestDecodeImageSniffsBeforeTGAFallback(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer, image.Image) error{
		"png": func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) },
		"bmp": func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) },
		"jpeg": func(b *bytes.Buffer, img image.Image) error {
			return jpeg.Encode(b, img, &jpeg.Options{Quality: 100})
		},
		"tga": func(b *bytes.Buffer, img image.Image) error { return tga.Encode(b, img) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			decoded, err := DecodeImageBytes(encodeTestImage(t, encode), false)
			require.NoError(t, err)
			assert.Equal(t, name, decoded.Format)
			assert.Len(t, decoded.Pixels, 16)
		})
	}
}

func TestDecodeImageGarbage(t *testing.T) {
	_, err := DecodeImageBytes([]byte("not an image"), false)
	assert.Error(t, err)
}

func TestCoalesceAndClamp(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.Equal(t, float32(0.25), Clamp(float32(0.25), 0, 1))
	assert.Equal(t, -1, Clamp(-3, -1, 1))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]float32{1, 2, 3}), 12)
	assert.Len(t, SliceToBytes([]uint32{1, 2}), 8)
	assert.Equal(t, []byte{1, 0, 0, 0}, SliceToBytes([]uint32{1}))
}
