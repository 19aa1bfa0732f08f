package shader

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
)

func TestLibraryAddGet(t *testing.T) {
	dev := gputest.NewDevice()
	lib := NewLibrary(dev)

	p := NewFromSource(dev, "flat", basicSource, quietLogger())
	require.NoError(t, lib.Add(p))
	assert.ErrorIs(t, lib.Add(p), ErrDuplicateProgram)
	require.NoError(t, lib.AddAs("flat2", p))

	got, ok := lib.Get("flat")
	assert.True(t, ok)
	assert.Same(t, p, got)
	assert.True(t, lib.Exists("flat2"))
	assert.False(t, lib.Exists("textured"))
	_, ok = lib.Get("textured")
	assert.False(t, ok)
	assert.Equal(t, []string{"flat", "flat2"}, lib.Names())
}

func TestLibraryLoad(t *testing.T) {
	dev := gputest.NewDevice()
	fsys := fstest.MapFS{"assets/textured.glsl": {Data: []byte(basicSource)}}
	lib := NewLibrary(dev, WithSourceProvider(FSProvider{FS: fsys}), quietLogger())

	p, err := lib.Load("assets/textured.glsl")
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.True(t, lib.Exists("textured"))

	_, err = lib.Load("other/textured.glsl")
	assert.ErrorIs(t, err, ErrDuplicateProgram)

	require.NoError(t, lib.Close())
	assert.Equal(t, gpu.NoHandle, p.Handle())
	assert.Empty(t, lib.Names())
}

func TestLibraryProcessReloads(t *testing.T) {
	dev := gputest.NewDevice()
	fsys := fstest.MapFS{
		"a.glsl": {Data: []byte(basicSource)},
		"b.glsl": {Data: []byte(basicSource)},
	}
	lib := NewLibrary(dev, WithSourceProvider(FSProvider{FS: fsys}), quietLogger())
	a, err := lib.Load("a.glsl")
	require.NoError(t, err)
	b, err := lib.Load("b.glsl")
	require.NoError(t, err)
	aHandle, bHandle := a.Handle(), b.Handle()

	assert.Zero(t, lib.ProcessReloads())

	l := lib.(*library)
	l.notify("./a.glsl")
	assert.Equal(t, 1, lib.ProcessReloads())
	assert.NotEqual(t, aHandle, a.Handle())
	assert.Equal(t, bHandle, b.Handle())

	fsys["b.glsl"] = &fstest.MapFile{Data: []byte("#type vertex\nV\n#type vertex\nV\n")}
	l.notify("b.glsl")
	assert.Zero(t, lib.ProcessReloads())
	assert.Equal(t, bHandle, b.Handle(), "failed reload keeps the previous program")
	assert.True(t, b.Valid())
}

func TestLibraryLogsThroughProgramLogger(t *testing.T) {
	var buf bytes.Buffer
	dev := gputest.NewDevice()
	fsys := fstest.MapFS{"a.glsl": {Data: []byte(basicSource)}}
	lib := NewLibrary(dev, WithSourceProvider(FSProvider{FS: fsys}), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	_, err := lib.Load("a.glsl")
	require.NoError(t, err)

	fsys["a.glsl"] = &fstest.MapFile{Data: []byte("#type vertex\nV\n#type vertex\nV\n")}
	lib.(*library).notify("a.glsl")
	assert.Zero(t, lib.ProcessReloads())
	assert.Contains(t, buf.String(), "shader reload failed, keeping previous program")
	assert.Contains(t, buf.String(), "program=a")
}

func TestLibraryWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.glsl")
	require.NoError(t, os.WriteFile(path, []byte(basicSource), 0o644))

	dev := gputest.NewDevice()
	lib := NewLibrary(dev, quietLogger())
	p, err := lib.Load(path)
	require.NoError(t, err)
	require.True(t, p.Valid())
	first := p.Handle()

	require.NoError(t, lib.Watch())
	assert.ErrorIs(t, lib.Watch(), ErrWatcherRunning)
	t.Cleanup(func() { _ = lib.Close() })

	require.NoError(t, os.WriteFile(path, []byte(basicSource+"// edited\n"), 0o644))

	assert.Eventually(t, func() bool {
		return lib.ProcessReloads() > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotEqual(t, first, p.Handle())
}
