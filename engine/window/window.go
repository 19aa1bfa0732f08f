// Package window defines the platform window contract used by the application: a surface that
// delivers typed events through a single callback, exposes its framebuffer size and polled input
// state, and presents a frame on every OnUpdate. The GLFW implementation lives in glfwwindow; the
// headless implementation in this package drives tests and offscreen runs.
package window

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
)

// EventCallback receives every event produced by a window.
type EventCallback func(e *events.Event)

// Window provides platform windowing and input event handling.
// Every method must be called from the thread that created the window.
type Window interface {
	// SetEventCallback sets the function receiving every window and input event.
	//
	// Parameters:
	//   - callback: the event sink, or nil to drop events
	SetEventCallback(callback EventCallback)

	// OnUpdate processes pending OS events, delivering them to the event callback, and presents
	// the back buffer.
	OnUpdate()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - uint32: width in pixels
	Width() uint32

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - uint32: height in pixels
	Height() uint32

	// Title returns the window title.
	//
	// Returns:
	//   - string: the title
	Title() string

	// SetVSync toggles waiting for vertical sync when presenting.
	//
	// Parameters:
	//   - enabled: true to synchronise presentation with the display
	SetVSync(enabled bool)

	// VSync reports whether vertical sync is enabled.
	//
	// Returns:
	//   - bool: true if vsync is enabled
	VSync() bool

	// IsKeyPressed reports whether a key is currently held down.
	//
	// Parameters:
	//   - key: the key
	//
	// Returns:
	//   - bool: true while the key is pressed
	IsKeyPressed(key common.Key) bool

	// IsMouseButtonPressed reports whether a mouse button is currently held down.
	//
	// Parameters:
	//   - button: the mouse button
	//
	// Returns:
	//   - bool: true while the button is pressed
	IsMouseButtonPressed(button common.MouseButton) bool

	// CursorPosition returns the cursor position in window coordinates.
	//
	// Returns:
	//   - x, y: the cursor position
	CursorPosition() (x, y float32)

	// Close destroys the window. Further calls are no-ops.
	//
	// Returns:
	//   - error: error if the platform window could not be released
	Close() error
}

// Factory creates a window from a configuration. The application receives one so it can open its
// window without depending on a platform package.
type Factory func(cfg Config) (Window, error)

// Config holds the window creation parameters.
type Config struct {
	Title  string
	Width  uint32
	Height uint32
	VSync  bool

	// Size limits; zero means unconstrained.
	MinWidth  uint32
	MinHeight uint32
	MaxWidth  uint32
	MaxHeight uint32
}

// DefaultConfig returns a 1280x720 window titled "oxy-gl" with vsync enabled.
//
// Returns:
//   - Config: the default window configuration
func DefaultConfig() Config {
	return Config{
		Title:  "oxy-gl",
		Width:  1280,
		Height: 720,
		VSync:  true,
	}
}

// NewConfig applies options on top of DefaultConfig.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Config: the resulting configuration
func NewConfig(options ...WindowBuilderOption) Config {
	cfg := DefaultConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
