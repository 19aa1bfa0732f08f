package window

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
)

// Headless is a Window without an OS surface. Events queued with Push are delivered on the next
// OnUpdate, in order, and update the polled input state the way a platform window would.
type Headless struct {
	cfg      Config
	callback EventCallback
	queue    []*events.Event

	keys    map[common.Key]bool
	buttons map[common.MouseButton]bool
	cursorX float32
	cursorY float32

	frames int
	closed bool

	// OnFrame, when set, runs at the end of every OnUpdate with the number of presented frames.
	OnFrame func(frame int)
}

var _ Window = &Headless{}

// NewHeadless creates a headless window.
//
// Parameters:
//   - cfg: the window configuration; Width and Height are the initial framebuffer size
//
// Returns:
//   - *Headless: the window
func NewHeadless(cfg Config) *Headless {
	return &Headless{
		cfg:     cfg,
		keys:    map[common.Key]bool{},
		buttons: map[common.MouseButton]bool{},
	}
}

// HeadlessFactory is a Factory producing headless windows.
func HeadlessFactory(cfg Config) (Window, error) {
	return NewHeadless(cfg), nil
}

// Push queues an event for delivery on the next OnUpdate.
//
// Parameters:
//   - e: the event
func (w *Headless) Push(e *events.Event) {
	w.queue = append(w.queue, e)
}

// Frames returns the number of OnUpdate calls.
func (w *Headless) Frames() int {
	return w.frames
}

// Closed reports whether Close was called.
func (w *Headless) Closed() bool {
	return w.closed
}

func (w *Headless) SetEventCallback(callback EventCallback) {
	w.callback = callback
}

func (w *Headless) OnUpdate() {
	queue := w.queue
	w.queue = nil
	for _, e := range queue {
		w.apply(e)
		if w.callback != nil {
			w.callback(e)
		}
	}
	w.frames++
	if w.OnFrame != nil {
		w.OnFrame(w.frames)
	}
}

// apply mirrors an event into the polled state.
func (w *Headless) apply(e *events.Event) {
	switch e.Kind {
	case events.WindowResize:
		w.cfg.Width, w.cfg.Height = e.Width, e.Height
	case events.KeyPressed:
		w.keys[e.Key] = true
	case events.KeyReleased:
		delete(w.keys, e.Key)
	case events.MouseButtonPressed:
		w.buttons[e.Button] = true
	case events.MouseButtonReleased:
		delete(w.buttons, e.Button)
	case events.MouseMoved:
		w.cursorX, w.cursorY = e.X, e.Y
	}
}

func (w *Headless) Width() uint32 {
	return w.cfg.Width
}

func (w *Headless) Height() uint32 {
	return w.cfg.Height
}

func (w *Headless) Title() string {
	return w.cfg.Title
}

func (w *Headless) SetVSync(enabled bool) {
	w.cfg.VSync = enabled
}

func (w *Headless) VSync() bool {
	return w.cfg.VSync
}

func (w *Headless) IsKeyPressed(key common.Key) bool {
	return w.keys[key]
}

func (w *Headless) IsMouseButtonPressed(button common.MouseButton) bool {
	return w.buttons[button]
}

func (w *Headless) CursorPosition() (x, y float32) {
	return w.cursorX, w.cursorY
}

func (w *Headless) Close() error {
	w.closed = true
	w.queue = nil
	return nil
}
