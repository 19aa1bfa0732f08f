package overlay

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
)

func newTestOverlay(buf *bytes.Buffer, options ...OverlayBuilderOption) (Overlay, *time.Time) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	log := slog.New(slog.NewTextHandler(buf, nil))
	p := profiler.NewProfiler(profiler.WithClock(clock), profiler.WithInterval(time.Second), profiler.WithQuiet())
	options = append([]OverlayBuilderOption{WithLogger(log), WithProfiler(p)}, options...)
	return NewOverlay(options...), &now
}

func TestBracketsPanicOnMisuse(t *testing.T) {
	var buf bytes.Buffer
	o, _ := newTestOverlay(&buf)

	assert.Panics(t, func() { o.End() })
	o.Begin()
	assert.Panics(t, func() { o.Begin() })
	o.End()
	assert.Equal(t, uint64(1), o.Frames())
}

func TestEndReportsPanelsWhenSampled(t *testing.T) {
	var buf bytes.Buffer
	o, now := newTestOverlay(&buf)
	o.AddPanel("renderer2d", func() []slog.Attr {
		return []slog.Attr{slog.Int("draw_calls", 3)}
	})

	o.Begin()
	o.End()
	assert.Empty(t, buf.String(), "nothing is reported before the first window elapses")

	*now = now.Add(time.Second)
	o.Begin()
	o.End()
	assert.Contains(t, buf.String(), "msg=overlay")
	assert.Contains(t, buf.String(), "renderer2d.draw_calls=3")
	assert.Contains(t, buf.String(), "profiler.fps=2.00")
	assert.Equal(t, 2, o.Stats().Frames)
}

func TestHiddenOverlayReportsNothing(t *testing.T) {
	var buf bytes.Buffer
	o, now := newTestOverlay(&buf, WithHidden())
	assert.False(t, o.Visible())

	*now = now.Add(2 * time.Second)
	o.Begin()
	o.End()
	assert.Empty(t, buf.String())
	assert.Equal(t, 1, o.Stats().Frames, "stats are still sampled while hidden")
}

func TestToggleKey(t *testing.T) {
	var buf bytes.Buffer
	o, _ := newTestOverlay(&buf, WithToggleKey(common.KeyF1))

	e := events.NewKeyPressed(common.KeyF1, false)
	o.OnEvent(e)
	assert.True(t, e.Handled)
	assert.False(t, o.Visible())

	repeat := events.NewKeyPressed(common.KeyF1, true)
	o.OnEvent(repeat)
	assert.False(t, repeat.Handled)
	assert.False(t, o.Visible())

	other := events.NewKeyPressed(common.KeyF3, false)
	o.OnEvent(other)
	assert.False(t, other.Handled)

	o.OnEvent(events.NewKeyPressed(common.KeyF1, false))
	assert.True(t, o.Visible())
}

func TestAddPanelRejectsNil(t *testing.T) {
	var buf bytes.Buffer
	o, _ := newTestOverlay(&buf)
	assert.Panics(t, func() { o.AddPanel("empty", nil) })
}

func TestDetachClosesOpenFrame(t *testing.T) {
	var buf bytes.Buffer
	o, _ := newTestOverlay(&buf)
	o.OnAttach()
	o.Begin()
	o.OnDetach()
	assert.NotPanics(t, func() { o.Begin() })
}
