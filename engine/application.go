// Package engine runs the main loop: it owns the window, the renderer and the layer stack, feeds
// window events through the stack and drives one update/render/present cycle per frame.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/layer"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/overlay"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

var (
	// ErrNoWindow is returned when neither a window nor a window factory was supplied.
	ErrNoWindow = errors.New("engine: no window or window factory configured")

	// ErrNoDevice is returned when no GPU device was supplied.
	ErrNoDevice = errors.New("engine: no GPU device configured")
)

// Only one Application may be alive at a time.
var (
	instanceMu sync.Mutex
	instance   *application
)

// application implements the Application interface.
type application struct {
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time

	windowFactory window.Factory
	window        window.Window
	device        gpu.Device
	renderer      renderer.Renderer
	overlay       overlay.Overlay
	stack         *layer.Stack

	shaders  shader.Library
	textures texture.Loader

	running   bool
	minimized bool
	lastFrame time.Time
	closed    bool
}

// Application is the process-wide engine instance. It owns the window, renderer and layer stack
// and must be used from the thread that created it.
type Application interface {
	// Run executes frames until Quit is called or the window is closed. Each frame computes the
	// timestep, drains main-thread work, updates the layers (unless minimized), renders the
	// debug overlay and presents the window.
	Run()

	// Quit stops the loop at the start of the next iteration.
	Quit()

	// Close detaches every layer, shuts down the renderer and closes the window. It frees the
	// application slot so a new Application can be created. Further calls are no-ops.
	//
	// Returns:
	//   - error: the joined errors of the resources that failed to close
	Close() error

	// OnEvent handles a window event. Close and resize events update the application state
	// before the event is offered to the layers back-to-front.
	//
	// Parameters:
	//   - e: the event
	OnEvent(e *events.Event)

	// PushLayer adds a layer below the overlays and attaches it.
	//
	// Parameters:
	//   - l: the layer
	PushLayer(l layer.Layer)

	// PushOverlay adds a layer above all others and attaches it.
	//
	// Parameters:
	//   - l: the overlay layer
	PushOverlay(l layer.Layer)

	// PopLayer detaches and removes a layer pushed with PushLayer.
	//
	// Parameters:
	//   - l: the layer
	//
	// Returns:
	//   - bool: true if the layer was found
	PopLayer(l layer.Layer) bool

	// PopOverlay detaches and removes a layer pushed with PushOverlay.
	//
	// Parameters:
	//   - l: the overlay layer
	//
	// Returns:
	//   - bool: true if the layer was found
	PopOverlay(l layer.Layer) bool

	// Layers returns the layer stack in update order.
	//
	// Returns:
	//   - []layer.Layer: a copy of the stack
	Layers() []layer.Layer

	// Running reports whether the loop will run another frame.
	Running() bool

	// Minimized reports whether the last resize had a zero area.
	Minimized() bool

	// Window returns the application window.
	Window() window.Window

	// Renderer returns the initialized renderer.
	Renderer() renderer.Renderer

	// Overlay returns the debug overlay layer.
	Overlay() overlay.Overlay

	// Shaders returns the shader library. Reloads it queues are applied at the start of a frame.
	Shaders() shader.Library

	// Textures returns the asynchronous texture loader. Finished decodes are uploaded at the
	// start of a frame.
	Textures() texture.Loader

	// Config returns the configuration the application was built from.
	Config() config.Config
}

// NewApplication creates the application: it opens the window, initializes the renderer and
// pushes the debug overlay. Creating a second Application while one is alive panics.
//
// Parameters:
//   - options: functional options for the application
//
// Returns:
//   - Application: the application
//   - error: error if the window or renderer could not be created
func NewApplication(options ...ApplicationBuilderOption) (Application, error) {
	a := &application{
		cfg:   config.Default(),
		now:   time.Now,
		stack: layer.NewStack(),
	}
	for _, opt := range options {
		opt(a)
	}

	instanceMu.Lock()
	if instance != nil {
		instanceMu.Unlock()
		panic("engine: application already exists")
	}
	instance = a
	instanceMu.Unlock()

	if err := a.init(); err != nil {
		_ = a.release()
		return nil, err
	}
	return a, nil
}

// Current returns the live application, or nil if none exists.
//
// Returns:
//   - Application: the live application
func Current() Application {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		return nil
	}
	return instance
}

func (a *application) init() error {
	if a.logger == nil {
		logger.SetDefault(a.cfg.LoggerOptions())
		a.logger = logger.Core()
	}
	if a.device == nil {
		return ErrNoDevice
	}

	if a.window == nil {
		if a.windowFactory == nil {
			return ErrNoWindow
		}
		w, err := a.windowFactory(a.cfg.WindowOptions())
		if err != nil {
			return fmt.Errorf("failed to open window: %w", err)
		}
		a.window = w
	}
	a.window.SetEventCallback(a.OnEvent)

	a.renderer = renderer.NewRenderer(a.device,
		renderer.WithLogger(a.logger),
		renderer.WithClearColor(a.cfg.ClearColor()),
		renderer.WithBlending(a.cfg.Renderer.Blend),
		renderer.WithDepthTest(a.cfg.Renderer.DepthTest),
		renderer.WithMaxQuads(a.cfg.Renderer.MaxQuads),
	)
	if err := a.renderer.Init(); err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	a.renderer.OnWindowResize(a.window.Width(), a.window.Height())

	if a.shaders == nil {
		a.shaders = shader.NewLibrary(a.device, shader.WithLogger(a.logger))
	}
	if err := a.loadShaders(); err != nil {
		return err
	}
	if a.textures == nil {
		a.textures = texture.NewLoader(a.device,
			texture.WithWorkers(a.cfg.Textures.Workers),
			texture.WithFlipY(a.cfg.Textures.FlipY),
			texture.WithLoaderLogger(a.logger),
		)
	}

	if a.overlay == nil {
		a.overlay = a.newOverlay()
	}
	r2d := a.renderer.Renderer2D()
	a.overlay.AddPanel("renderer2d", func() []slog.Attr {
		return r2d.Stats().LogAttrs()
	})
	a.stack.PushOverlay(a.overlay)

	a.running = true
	a.logger.Info("application created",
		slog.String("window", a.window.Title()),
		slog.Any("width", a.window.Width()),
		slog.Any("height", a.window.Height()),
	)
	return nil
}

// loadShaders compiles every .glsl file of the configured shader directory into the library and
// starts watching them when hot reload is enabled.
func (a *application) loadShaders() error {
	dir, err := a.cfg.ShaderDirectory()
	if err != nil {
		return err
	}
	if dir == "" {
		return nil
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.glsl"))
	if err != nil {
		return fmt.Errorf("failed to list shaders in %s: %w", dir, err)
	}
	for _, path := range paths {
		if _, err := a.shaders.Load(path); err != nil {
			a.logger.Error("shader load failed", slog.String("path", path), slog.Any("error", err))
		}
	}
	if a.cfg.Shaders.HotReload {
		if err := a.shaders.Watch(); err != nil {
			return fmt.Errorf("failed to watch shaders: %w", err)
		}
	}
	return nil
}

func (a *application) newOverlay() overlay.Overlay {
	opts := []overlay.OverlayBuilderOption{overlay.WithLogger(a.logger)}
	if a.cfg.Profiling.Enabled {
		opts = append(opts, overlay.WithProfiler(profiler.NewProfiler(
			profiler.WithLogger(a.logger),
			profiler.WithInterval(a.cfg.Profiling.Interval.Duration()),
			profiler.WithClock(a.now),
			profiler.WithQuiet(),
		)))
	} else {
		opts = append(opts, overlay.WithHidden())
	}
	return overlay.NewOverlay(opts...)
}

func (a *application) Run() {
	a.lastFrame = a.now()
	for a.running {
		a.frame()
	}
}

func (a *application) frame() {
	now := a.now()
	ts := float32(now.Sub(a.lastFrame).Seconds())
	a.lastFrame = now

	a.shaders.ProcessReloads()
	a.textures.ProcessUploads()
	a.renderer.Renderer2D().ResetStats()

	if !a.minimized {
		a.stack.OnUpdate(ts)
	}

	a.overlay.Begin()
	a.stack.OnImGuiRender()
	a.overlay.End()

	a.window.OnUpdate()
}

func (a *application) Quit() {
	a.running = false
}

func (a *application) Close() error {
	if a.closed {
		return nil
	}
	a.running = false
	a.stack.Clear()
	return a.release()
}

// release closes whatever init managed to create and frees the application slot.
func (a *application) release() error {
	a.closed = true
	var errs []error
	if a.renderer != nil {
		a.renderer.Shutdown()
	}
	if a.textures != nil {
		a.textures.Close()
	}
	if a.shaders != nil {
		if err := a.shaders.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close shader library: %w", err))
		}
	}
	if a.window != nil {
		if err := a.window.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close window: %w", err))
		}
	}

	instanceMu.Lock()
	if instance == a {
		instance = nil
	}
	instanceMu.Unlock()
	return errors.Join(errs...)
}

func (a *application) OnEvent(e *events.Event) {
	events.Dispatch(e, events.WindowClose, a.onWindowClose)
	events.Dispatch(e, events.WindowResize, a.onWindowResize)
	a.stack.OnEvent(e)
}

func (a *application) onWindowClose(*events.Event) bool {
	a.running = false
	return true
}

func (a *application) onWindowResize(e *events.Event) bool {
	if e.Width == 0 || e.Height == 0 {
		a.minimized = true
		return false
	}
	a.minimized = false
	return a.renderer.OnWindowResize(e.Width, e.Height)
}

func (a *application) PushLayer(l layer.Layer) {
	a.stack.PushLayer(l)
}

func (a *application) PushOverlay(l layer.Layer) {
	a.stack.PushOverlay(l)
}

func (a *application) PopLayer(l layer.Layer) bool {
	return a.stack.PopLayer(l)
}

func (a *application) PopOverlay(l layer.Layer) bool {
	return a.stack.PopOverlay(l)
}

func (a *application) Layers() []layer.Layer {
	return a.stack.Layers()
}

func (a *application) Running() bool {
	return a.running
}

func (a *application) Minimized() bool {
	return a.minimized
}

func (a *application) Window() window.Window {
	return a.window
}

func (a *application) Renderer() renderer.Renderer {
	return a.renderer
}

func (a *application) Overlay() overlay.Overlay {
	return a.overlay
}

func (a *application) Shaders() shader.Library {
	return a.shaders
}

func (a *application) Textures() texture.Loader {
	return a.textures
}

func (a *application) Config() config.Config {
	return a.cfg
}
