// Package glfwwindow implements window.Window on GLFW with an OpenGL 4.1 core context.
// The window locks the calling goroutine to its OS thread; every method, and every GPU call made
// against the context, must happen on that goroutine.
package glfwwindow

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	cfg      window.Config
	window   *glfw.Window
	callback window.EventCallback
	logger   *slog.Logger
	closed   bool
}

var _ window.Window = &glfwWindow{}

// NewWindow creates a GLFW window with a current OpenGL 4.1 core context.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
//
// Parameters:
//   - options: functional options applied on top of window.DefaultConfig
//
// Returns:
//   - window.Window: the open window
//   - error: error if GLFW or the window could not be initialised
func NewWindow(options ...window.WindowBuilderOption) (window.Window, error) {
	return Open(window.NewConfig(options...))
}

// Open creates a GLFW window from a configuration. It satisfies window.Factory.
//
// Parameters:
//   - cfg: the window configuration
//
// Returns:
//   - window.Window: the open window
//   - error: error if GLFW or the window could not be initialised
func Open(cfg window.Config) (window.Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()

	w := &glfwWindow{
		cfg:    cfg,
		window: win,
		logger: logger.Core(),
	}
	win.SetSizeLimits(sizeLimit(cfg.MinWidth), sizeLimit(cfg.MinHeight), sizeLimit(cfg.MaxWidth), sizeLimit(cfg.MaxHeight))
	w.SetVSync(cfg.VSync)
	w.registerCallbacks()

	// On high-DPI displays the framebuffer size differs from the requested window size.
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.cfg.Width, w.cfg.Height = uint32(fbWidth), uint32(fbHeight)

	w.logger.Info("window created",
		slog.String("title", cfg.Title),
		slog.Int("width", fbWidth),
		slog.Int("height", fbHeight),
		slog.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// registerCallbacks translates GLFW callbacks into events.
func (w *glfwWindow) registerCallbacks() {
	win := w.window

	// Framebuffer size is pixel accurate, which is what the viewport needs.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.cfg.Width, w.cfg.Height = uint32(width), uint32(height)
		w.emit(events.NewWindowResize(uint32(width), uint32(height)))
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		w.emit(events.NewWindowClose())
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.emit(events.NewWindowFocus(focused))
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			w.emit(events.NewKeyPressed(common.Key(key), false))
		case glfw.Repeat:
			w.emit(events.NewKeyPressed(common.Key(key), true))
		case glfw.Release:
			w.emit(events.NewKeyReleased(common.Key(key)))
		}
	})
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.emit(events.NewKeyTyped(char))
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.emit(events.NewMouseButton(common.MouseButton(button), action == glfw.Press))
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.emit(events.NewMouseScrolled(float32(xoff), float32(yoff)))
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.emit(events.NewMouseMoved(float32(xpos), float32(ypos)))
	})
}

func (w *glfwWindow) emit(e *events.Event) {
	if w.callback != nil {
		w.callback(e)
	}
}

func (w *glfwWindow) SetEventCallback(callback window.EventCallback) {
	w.callback = callback
}

// OnUpdate polls GLFW without blocking and swaps the back buffer.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (w *glfwWindow) OnUpdate() {
	if w.closed {
		return
	}
	glfw.PollEvents()
	w.window.SwapBuffers()
}

func (w *glfwWindow) Width() uint32 {
	return w.cfg.Width
}

func (w *glfwWindow) Height() uint32 {
	return w.cfg.Height
}

func (w *glfwWindow) Title() string {
	return w.cfg.Title
}

func (w *glfwWindow) SetVSync(enabled bool) {
	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	w.cfg.VSync = enabled
}

func (w *glfwWindow) VSync() bool {
	return w.cfg.VSync
}

func (w *glfwWindow) IsKeyPressed(key common.Key) bool {
	if w.closed {
		return false
	}
	state := w.window.GetKey(glfw.Key(key))
	return state == glfw.Press || state == glfw.Repeat
}

func (w *glfwWindow) IsMouseButtonPressed(button common.MouseButton) bool {
	if w.closed {
		return false
	}
	return w.window.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

func (w *glfwWindow) CursorPosition() (x, y float32) {
	if w.closed {
		return 0, 0
	}
	xpos, ypos := w.window.GetCursorPos()
	return float32(xpos), float32(ypos)
}

// Close destroys the GLFW window and terminates the GLFW library.
func (w *glfwWindow) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.window.SetShouldClose(true)
	w.window.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
	return nil
}

// sizeLimit maps an unset (zero) limit to glfw.DontCare.
func sizeLimit(v uint32) int {
	if v == 0 {
		return glfw.DontCare
	}
	return int(v)
}
