// Package overlay implements the engine's built-in debug overlay: the layer that brackets every
// frame's OnImGuiRender calls and reports profiler statistics and registered panels.
package overlay

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
	"github.com/Carmen-Shannon/oxy-gl/engine/layer"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
)

// Panel reports a named group of attributes each time the overlay samples statistics.
type Panel func() []slog.Attr

type panel struct {
	name string
	fn   Panel
}

type overlayImpl struct {
	layer.Base

	mu *sync.Mutex

	profiler  *profiler.Profiler
	logger    *slog.Logger
	toggleKey common.Key
	visible   bool
	attached  bool
	inFrame   bool
	frames    uint64
	panels    []panel
}

// Overlay is the debug UI layer pushed by the application as an overlay.
// Begin and End bracket the OnImGuiRender calls of every layer once per frame.
type Overlay interface {
	layer.Layer

	// Begin opens the UI frame. Calling Begin twice without End panics.
	Begin()

	// End closes the UI frame, ticks the profiler and, when a new statistics window was sampled
	// and the overlay is visible, reports every panel. Calling End without Begin panics.
	End()

	// Visible reports whether panels are reported.
	//
	// Returns:
	//   - bool: true if the overlay is visible
	Visible() bool

	// SetVisible shows or hides the overlay.
	//
	// Parameters:
	//   - visible: the new visibility
	SetVisible(visible bool)

	// AddPanel registers a panel. Panels are reported in registration order.
	//
	// Parameters:
	//   - name: the group name of the panel's attributes
	//   - fn: produces the panel's attributes
	AddPanel(name string, fn Panel)

	// Frames returns the number of completed Begin/End brackets.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Stats returns the most recent profiler window.
	//
	// Returns:
	//   - profiler.Stats: the last sampled stats
	Stats() profiler.Stats
}

var _ Overlay = &overlayImpl{}

// NewOverlay creates the debug overlay. It is visible by default and toggled with F3.
//
// Parameters:
//   - options: functional options to configure the overlay
//
// Returns:
//   - Overlay: the newly created overlay
func NewOverlay(options ...OverlayBuilderOption) Overlay {
	o := &overlayImpl{
		Base:      layer.NewBase("DebugOverlay"),
		mu:        &sync.Mutex{},
		toggleKey: common.KeyF3,
		visible:   true,
	}
	for _, option := range options {
		option(o)
	}
	if o.logger == nil {
		o.logger = logger.Core()
	}
	if o.profiler == nil {
		o.profiler = profiler.NewProfiler(profiler.WithLogger(o.logger), profiler.WithQuiet())
	}
	return o
}

func (o *overlayImpl) OnAttach() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attached = true
	o.logger.Debug("overlay attached", slog.String("layer", o.Name()))
}

func (o *overlayImpl) OnDetach() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attached = false
	o.inFrame = false
}

func (o *overlayImpl) OnEvent(e *events.Event) {
	events.Dispatch(e, events.KeyPressed, func(e *events.Event) bool {
		if e.Key != o.toggleKey || e.Repeat {
			return false
		}
		o.SetVisible(!o.Visible())
		return true
	})
}

func (o *overlayImpl) Begin() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFrame {
		panic("overlay: Begin called twice without End")
	}
	o.inFrame = true
}

func (o *overlayImpl) End() {
	o.mu.Lock()
	if !o.inFrame {
		o.mu.Unlock()
		panic("overlay: End called without Begin")
	}
	o.inFrame = false
	o.frames++
	stats, sampled := o.profiler.Tick()
	visible := o.visible
	panels := o.panels
	o.mu.Unlock()

	if !sampled || !visible {
		return
	}
	attrs := make([]any, 0, len(panels)+1)
	attrs = append(attrs, slog.Any("profiler", stats))
	for _, p := range panels {
		group := p.fn()
		args := make([]any, len(group))
		for i, a := range group {
			args[i] = a
		}
		attrs = append(attrs, slog.Group(p.name, args...))
	}
	o.logger.Info("overlay", attrs...)
}

func (o *overlayImpl) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

func (o *overlayImpl) SetVisible(visible bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = visible
}

func (o *overlayImpl) AddPanel(name string, fn Panel) {
	if fn == nil {
		panic(fmt.Sprintf("overlay: panel %q has no render function", name))
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.panels = append(o.panels, panel{name: name, fn: fn})
}

func (o *overlayImpl) Frames() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.frames
}

func (o *overlayImpl) Stats() profiler.Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.profiler.Last()
}
