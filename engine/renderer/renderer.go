// Package renderer drives scene submission on top of the GPU device: the BeginScene/Submit/EndScene
// state machine, viewport handling on window resize, stateless render commands and the batched 2D
// quad renderer.
package renderer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// Uniform names written by Submit.
const (
	ModelUniform          = "modelMat"
	ViewProjectionUniform = "viewProjMat"
)

// Camera is anything that provides a view-projection transform for a scene.
type Camera interface {
	ViewProjection() mgl32.Mat4
}

// State is the scene state of a Renderer.
type State int

const (
	// StateIdle accepts BeginScene.
	StateIdle State = iota
	// StateSceneActive accepts Submit and EndScene.
	StateSceneActive
)

func (s State) String() string {
	if s == StateSceneActive {
		return "scene-active"
	}
	return "idle"
}

// SceneData is the per-scene state captured by BeginScene.
type SceneData struct {
	ViewProjection mgl32.Mat4
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	device  gpu.Device
	command *RenderCommand
	logger  *slog.Logger

	initialized bool
	state       State
	scene       SceneData

	clearColor mgl32.Vec4
	blending   bool
	depthTest  bool
	maxQuads   int
	minVersion string

	renderer2D *renderer2D
}

// Renderer defines the interface for the scene renderer.
//
// A scene is opened with BeginScene, which captures the camera transform, filled with Submit calls
// and closed with EndScene. Calling these out of order is a programmer error and panics, as does any
// scene activity before Init.
type Renderer interface {
	// Init initialises the device, checks its capabilities, applies the blend and depth state and
	// builds the 2D batch renderer. It must be called exactly once, before any scene.
	//
	// Returns:
	//   - error: an error if the device could not be initialised or is unsupported
	Init() error

	// Initialized reports whether Init succeeded.
	//
	// Returns:
	//   - bool: true after a successful Init
	Initialized() bool

	// State returns the current scene state.
	//
	// Returns:
	//   - State: StateIdle or StateSceneActive
	State() State

	// BeginScene opens a scene and captures the camera's view-projection transform.
	// Panics if a scene is already active or Init has not run.
	//
	// Parameters:
	//   - camera: the scene camera
	BeginScene(camera Camera)

	// Submit draws a vertex array with a program. The program is bound, the model transform and the
	// scene's view-projection transform are uploaded as "modelMat" and "viewProjMat", and the full
	// index buffer is drawn. Panics outside of a scene.
	//
	// Parameters:
	//   - va: the vertex array to draw, with an index buffer
	//   - program: the shader program
	//   - transform: the model transform
	Submit(va buffer.VertexArray, program shader.Program, transform mgl32.Mat4)

	// EndScene closes the active scene. It performs no GPU work. Panics outside of a scene.
	EndScene()

	// SceneData returns the state captured by the active scene.
	//
	// Returns:
	//   - SceneData: the scene data
	//   - bool: false if no scene is active
	SceneData() (SceneData, bool)

	// OnWindowResize applies a new framebuffer size. A zero-area size leaves the viewport untouched
	// and is reported as minimized.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	//
	// Returns:
	//   - bool: true if the size has zero area
	OnWindowResize(width, height uint32) bool

	// Command returns the stateless command helper.
	//
	// Returns:
	//   - *RenderCommand: the render command helper
	Command() *RenderCommand

	// Renderer2D returns the batched quad renderer. Panics before Init.
	//
	// Returns:
	//   - Renderer2D: the 2D renderer
	Renderer2D() Renderer2D

	// Device returns the GPU device.
	//
	// Returns:
	//   - gpu.Device: the device
	Device() gpu.Device

	// Shutdown releases the 2D renderer's GPU resources. The renderer cannot be used afterwards.
	Shutdown()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given device. The device is not touched until Init.
//
// Parameters:
//   - device: the GPU device
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(device gpu.Device, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:         &sync.Mutex{},
		device:     device,
		command:    NewRenderCommand(device),
		clearColor: mgl32.Vec4{0.1, 0.1, 0.1, 1},
		blending:   true,
		depthTest:  true,
		maxQuads:   DefaultMaxQuads,
		minVersion: gpu.MinimumVersion,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Core()
	}
	return r
}

func (r *renderer) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialized {
		panic("renderer: Init called twice")
	}

	if err := r.device.Init(); err != nil {
		return fmt.Errorf("renderer: init device: %w", err)
	}
	info := r.device.Info()
	if err := gpu.CheckVersion(info, r.minVersion); err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	r.device.SetBlending(r.blending)
	r.device.SetDepthTest(r.depthTest)
	r.command.SetClearColor(r.clearColor)

	r2d, err := newRenderer2D(r.device, r.command, r.maxQuads, r.logger)
	if err != nil {
		return fmt.Errorf("renderer: init 2d renderer: %w", err)
	}
	r.renderer2D = r2d
	r.initialized = true

	r.logger.Info("renderer initialised",
		slog.String("vendor", info.Vendor),
		slog.String("renderer", info.Renderer),
		slog.String("version", info.Version),
		slog.Int("max_quads", r.maxQuads),
	)
	return nil
}

func (r *renderer) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

func (r *renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *renderer) BeginScene(camera Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeInitialized("BeginScene")
	if r.state != StateIdle {
		panic("renderer: BeginScene called while a scene is active")
	}
	r.scene = SceneData{ViewProjection: camera.ViewProjection()}
	r.state = StateSceneActive
}

func (r *renderer) Submit(va buffer.VertexArray, program shader.Program, transform mgl32.Mat4) {
	r.mu.Lock()
	vp := r.scene.ViewProjection
	active := r.state == StateSceneActive
	r.mu.Unlock()
	if !active {
		panic("renderer: Submit called outside of a scene")
	}

	program.Bind()
	shader.SetMatrix(program, shader.Name(ModelUniform), transform, false)
	shader.SetMatrix(program, shader.Name(ViewProjectionUniform), vp, false)
	r.command.DrawIndexed(va, 0)
}

func (r *renderer) EndScene() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateSceneActive {
		panic("renderer: EndScene called outside of a scene")
	}
	r.state = StateIdle
	r.scene = SceneData{}
}

func (r *renderer) SceneData() (SceneData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scene, r.state == StateSceneActive
}

func (r *renderer) OnWindowResize(width, height uint32) bool {
	if width == 0 || height == 0 {
		return true
	}
	r.command.SetViewport(0, 0, width, height)
	return false
}

func (r *renderer) Command() *RenderCommand {
	return r.command
}

func (r *renderer) Renderer2D() Renderer2D {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeInitialized("Renderer2D")
	return r.renderer2D
}

func (r *renderer) Device() gpu.Device {
	return r.device
}

func (r *renderer) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderer2D != nil {
		r.renderer2D.destroy()
		r.renderer2D = nil
	}
	r.initialized = false
	r.state = StateIdle
}

// mustBeInitialized panics if Init has not succeeded. Caller must hold the mutex.
func (r *renderer) mustBeInitialized(op string) {
	if !r.initialized {
		panic(fmt.Sprintf("renderer: %s called before Init", op))
	}
}
