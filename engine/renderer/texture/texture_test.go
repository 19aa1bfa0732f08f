package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func quietLoader() LoaderBuilderOption {
	return WithLoaderLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewTexture2D(t *testing.T) {
	dev := gputest.NewDevice()
	tex := NewTexture2D(dev, 2, 1, make([]byte, 8), WithWrap(gpu.WrapClampToEdge))

	assert.Equal(t, int32(2), tex.Width())
	assert.Equal(t, int32(1), tex.Height())
	desc := dev.Textures[tex.Handle()].Desc
	assert.Equal(t, gpu.WrapClampToEdge, desc.Wrap)
	assert.Equal(t, gpu.FilterLinear, desc.Filter)

	tex.Bind(3)
	assert.Equal(t, tex.Handle(), dev.BoundTextures[3])

	handle := tex.Handle()
	tex.Destroy()
	tex.Destroy()
	assert.True(t, dev.Textures[handle].Deleted)
}

func TestNewTexture2DSizeMismatchPanics(t *testing.T) {
	dev := gputest.NewDevice()
	assert.Panics(t, func() { NewTexture2D(dev, 2, 2, make([]byte, 4)) })
}

func TestSolidTexture(t *testing.T) {
	dev := gputest.NewDevice()
	tex := NewSolidTexture(dev, [4]byte{255, 255, 255, 255})
	desc := dev.Textures[tex.Handle()].Desc
	assert.Equal(t, []byte{255, 255, 255, 255}, desc.Pixels)
	assert.Equal(t, gpu.FilterNearest, desc.Filter)
}

func TestLoaderLoadSync(t *testing.T) {
	dev := gputest.NewDevice()
	fsys := fstest.MapFS{"checker.png": {Data: pngBytes(t, 4, 2)}}
	l := NewLoader(dev, WithFS(fsys), quietLoader())
	t.Cleanup(l.Close)

	tex, err := l.LoadSync("checker.png")
	require.NoError(t, err)
	assert.Equal(t, int32(4), tex.Width())
	assert.Equal(t, int32(2), tex.Height())
	assert.Equal(t, "checker.png", tex.Path())

	_, err = l.LoadSync("missing.png")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestLoaderAsync(t *testing.T) {
	dev := gputest.NewDevice()
	fsys := fstest.MapFS{
		"a.png":   {Data: pngBytes(t, 1, 1)},
		"bad.png": {Data: []byte("nope")},
	}
	l := NewLoader(dev, WithFS(fsys), WithWorkers(2), quietLoader())
	t.Cleanup(l.Close)

	var loaded []Texture2D
	var failures []error
	cb := func(tex Texture2D, err error) {
		if err != nil {
			failures = append(failures, err)
			return
		}
		loaded = append(loaded, tex)
	}
	l.Load("a.png", cb)
	l.Load("bad.png", cb)
	assert.Equal(t, 2, l.Pending())
	assert.Empty(t, dev.Textures, "nothing is uploaded before ProcessUploads")

	processed := 0
	assert.Eventually(t, func() bool {
		processed += l.ProcessUploads()
		return processed == 2
	}, 5*time.Second, 10*time.Millisecond)

	require.Len(t, loaded, 1)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrDecode)
	assert.Equal(t, "a.png", loaded[0].Path())
	assert.Zero(t, l.Pending())
	assert.Len(t, dev.Textures, 1)
}
