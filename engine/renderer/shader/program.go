// Package shader compiles GLSL stage sources into linked shader programs and exposes the uniform
// protocol used to feed them. A program is built from a combined "#type" source, from one file per
// stage, or from in-memory strings; compile and link failures leave the program invalid with
// typed diagnostics instead of aborting.
package shader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
)

// Program is a linked GPU shader program.
type Program interface {
	// Name returns the display name of the program.
	//
	// Returns:
	//   - string: the program name
	Name() string

	// Handle returns the GPU program object.
	//
	// Returns:
	//   - gpu.Handle: the program object, gpu.NoHandle after Destroy
	Handle() gpu.Handle

	// Valid reports whether every stage compiled and the program linked.
	//
	// Returns:
	//   - bool: true if the program can be used for drawing
	Valid() bool

	// Err returns the diagnostics of the last build, joined, or nil for a valid program.
	//
	// Returns:
	//   - error: CompileError, LinkError and SourceError values joined with errors.Join
	Err() error

	// Paths returns the source files the program was built from, empty for in-memory sources.
	//
	// Returns:
	//   - []string: file paths
	Paths() []string

	// Bind makes the program current on the device.
	Bind()

	// Unbind clears the current program.
	Unbind()

	// Location resolves a uniform address to a location, caching the result.
	//
	// Parameters:
	//   - addr: the uniform address
	//
	// Returns:
	//   - gpu.UniformLocation: the location, gpu.InvalidLocation if the uniform is not active
	Location(addr Address) gpu.UniformLocation

	// Upload binds the program, resolves addr and uploads u. Every typed setter is built on it.
	//
	// Parameters:
	//   - addr: the uniform address
	//   - u: the typed payload
	Upload(addr Address, u gpu.Uniform)

	// UploadAt binds the program and uploads u to an already resolved location.
	//
	// Parameters:
	//   - location: the uniform location
	//   - u: the typed payload
	UploadAt(location gpu.UniformLocation, u gpu.Uniform)

	// BindUniformBlock assigns the named uniform block to a buffer binding point.
	//
	// Parameters:
	//   - block: the uniform block name
	//   - bindingPoint: the buffer binding point
	//
	// Returns:
	//   - bool: false if the block is not active in the program
	BindUniformBlock(block string, bindingPoint uint32) bool

	// Reload rebuilds the program from its sources. On success the new program object replaces the
	// old one and cached locations are dropped; on failure the current program is kept.
	//
	// Returns:
	//   - error: the diagnostics of the failed rebuild
	Reload() error

	// Destroy releases the program object. Further calls are no-ops.
	Destroy()
}

// program is the implementation of the Program interface.
type program struct {
	device   gpu.Device
	logger   *slog.Logger
	provider SourceProvider
	pp       PreProcessor

	name   string
	handle gpu.Handle
	valid  bool
	err    error

	// combinedPath is set for programs built from a single #type file.
	combinedPath string
	// stagePaths holds one file per stage for programs built from separate files.
	stagePaths map[gpu.ShaderStage]string
	// stageSources holds in-memory stage sources.
	stageSources map[gpu.ShaderStage]string

	locations map[string]gpu.UniformLocation
}

var _ Program = &program{}

// NewFromFile builds a program from one file containing "#type" sections. The program is named
// after the file unless WithName is given. Panics if the file names an unknown stage.
//
// Parameters:
//   - device: the GPU device
//   - path: the combined source file
//   - options: functional options to configure the program
//
// Returns:
//   - Program: the program, check Valid or Err for build failures
func NewFromFile(device gpu.Device, path string, options ...ProgramBuilderOption) Program {
	p := newProgram(device, DeriveName(path), options)
	p.combinedPath = path
	p.build()
	return p
}

// NewFromFiles builds a program from one file per stage. geometryPath may be empty. The program is
// named after the vertex file unless WithName is given.
//
// Parameters:
//   - device: the GPU device
//   - vertexPath: the vertex stage file
//   - fragmentPath: the fragment stage file
//   - geometryPath: the optional geometry stage file
//   - options: functional options to configure the program
//
// Returns:
//   - Program: the program, check Valid or Err for build failures
func NewFromFiles(device gpu.Device, vertexPath, fragmentPath, geometryPath string, options ...ProgramBuilderOption) Program {
	p := newProgram(device, DeriveName(vertexPath), options)
	p.stagePaths = map[gpu.ShaderStage]string{
		gpu.StageVertex:   vertexPath,
		gpu.StageFragment: fragmentPath,
	}
	if geometryPath != "" {
		p.stagePaths[gpu.StageGeometry] = geometryPath
	}
	p.build()
	return p
}

// NewFromSource builds a program from an in-memory source containing "#type" sections.
// Panics if the source names an unknown stage.
//
// Parameters:
//   - device: the GPU device
//   - name: the program name
//   - src: the combined source
//   - options: functional options to configure the program
//
// Returns:
//   - Program: the program, check Valid or Err for build failures
func NewFromSource(device gpu.Device, name, src string, options ...ProgramBuilderOption) Program {
	p := newProgram(device, name, options)
	stages, err := ParseStages(src)
	if err != nil {
		if errors.Is(err, ErrUnknownStage) {
			panic(fmt.Sprintf("shader %s: %v", name, err))
		}
		p.fail(err)
		return p
	}
	p.stageSources = stages
	p.build()
	return p
}

// NewFromStageSources builds a program from in-memory vertex, fragment and optional geometry sources.
//
// Parameters:
//   - device: the GPU device
//   - name: the program name
//   - vertex: the vertex stage source
//   - fragment: the fragment stage source
//   - geometry: the optional geometry stage source, empty to omit the stage
//   - options: functional options to configure the program
//
// Returns:
//   - Program: the program, check Valid or Err for build failures
func NewFromStageSources(device gpu.Device, name, vertex, fragment, geometry string, options ...ProgramBuilderOption) Program {
	p := newProgram(device, name, options)
	p.stageSources = map[gpu.ShaderStage]string{
		gpu.StageVertex:   vertex,
		gpu.StageFragment: fragment,
	}
	if geometry != "" {
		p.stageSources[gpu.StageGeometry] = geometry
	}
	p.build()
	return p
}

func newProgram(device gpu.Device, name string, options []ProgramBuilderOption) *program {
	p := &program{
		device:    device,
		logger:    logger.Core(),
		provider:  OSProvider{},
		pp:        NewPreProcessor(nil),
		name:      name,
		locations: make(map[string]gpu.UniformLocation),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *program) Name() string {
	return p.name
}

func (p *program) Handle() gpu.Handle {
	return p.handle
}

func (p *program) Valid() bool {
	return p.valid
}

func (p *program) Err() error {
	return p.err
}

func (p *program) Paths() []string {
	if p.combinedPath != "" {
		return []string{p.combinedPath}
	}
	paths := make([]string, 0, len(p.stagePaths))
	for _, stage := range gpu.Stages {
		if path, ok := p.stagePaths[stage]; ok {
			paths = append(paths, path)
		}
	}
	return paths
}

func (p *program) Bind() {
	p.device.UseProgram(p.handle)
}

func (p *program) Unbind() {
	p.device.UseProgram(gpu.NoHandle)
}

func (p *program) Location(addr Address) gpu.UniformLocation {
	key := addr.String()
	if loc, ok := p.locations[key]; ok {
		return loc
	}
	loc := p.device.UniformLocation(p.handle, key)
	p.locations[key] = loc
	return loc
}

func (p *program) Upload(addr Address, u gpu.Uniform) {
	p.Bind()
	p.device.SetUniform(p.Location(addr), u)
}

func (p *program) UploadAt(location gpu.UniformLocation, u gpu.Uniform) {
	p.Bind()
	p.device.SetUniform(location, u)
}

func (p *program) BindUniformBlock(block string, bindingPoint uint32) bool {
	index := p.device.UniformBlockIndex(p.handle, block)
	if index == gpu.InvalidIndex {
		p.logger.Warn("uniform block not found", "program", p.name, "block", block)
		return false
	}
	p.device.UniformBlockBinding(p.handle, index, bindingPoint)
	return true
}

func (p *program) Reload() error {
	sources, err := p.sources()
	if err != nil {
		return err
	}
	handle, err := p.link(sources)
	if err != nil {
		p.device.DeleteProgram(handle)
		return err
	}
	if p.handle != gpu.NoHandle {
		p.device.DeleteProgram(p.handle)
	}
	p.handle = handle
	p.valid = true
	p.err = nil
	clear(p.locations)
	p.logger.Info("shader program reloaded", "program", p.name)
	return nil
}

func (p *program) Destroy() {
	if p.handle == gpu.NoHandle {
		return
	}
	p.device.DeleteProgram(p.handle)
	p.handle = gpu.NoHandle
	p.valid = false
}

// build performs the initial build. Failures are recorded on the program, never returned.
func (p *program) build() {
	sources, err := p.sources()
	if err != nil {
		if errors.Is(err, ErrUnknownStage) {
			panic(fmt.Sprintf("shader %s: %v", p.name, err))
		}
		p.fail(err)
		return
	}
	p.handle, p.err = p.link(sources)
	p.valid = p.err == nil
}

func (p *program) fail(err error) {
	p.valid = false
	p.err = err
	p.logger.Error("shader program unavailable", "program", p.name, "error", err)
}

// stageSource is one stage ready for compilation.
type stageSource struct {
	label  string
	source string
}

// sources reads and splits the program's inputs into per-stage sources.
func (p *program) sources() (map[gpu.ShaderStage]stageSource, error) {
	out := make(map[gpu.ShaderStage]stageSource)
	switch {
	case p.combinedPath != "":
		src, err := p.provider.ReadSource(p.combinedPath)
		if err != nil {
			return nil, &SourceError{Path: p.combinedPath, Err: err}
		}
		stages, err := ParseStages(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.combinedPath, err)
		}
		for stage, s := range stages {
			out[stage] = stageSource{label: p.combinedPath, source: s}
		}
	case p.stagePaths != nil:
		var errs []error
		for stage, path := range p.stagePaths {
			src, err := p.provider.ReadSource(path)
			if err != nil {
				errs = append(errs, &SourceError{Path: path, Err: err})
				continue
			}
			out[stage] = stageSource{label: path, source: src}
		}
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
	default:
		for stage, s := range p.stageSources {
			out[stage] = stageSource{label: p.name, source: s}
		}
	}
	return out, nil
}

// link compiles every stage, links them into a new program object and releases the stage objects.
// The program object is returned even when the build fails.
func (p *program) link(sources map[gpu.ShaderStage]stageSource) (gpu.Handle, error) {
	handle := p.device.CreateProgram()

	var errs []error
	var shaders []gpu.Handle
	defer func() {
		for _, s := range shaders {
			p.device.DetachShader(handle, s)
			p.device.DeleteShader(s)
		}
	}()

	for _, stage := range gpu.Stages {
		src, ok := sources[stage]
		if !ok {
			continue
		}
		code, err := p.pp.Process(src.source)
		if err != nil {
			errs = append(errs, fmt.Errorf("shader %s: %s stage (%s): %w", p.name, stage, src.label, err))
			p.logger.Error("shader pre-processing failed", "program", p.name, "stage", stage.String(), "label", src.label, "error", err)
			code = src.source
		}

		shader := p.device.CreateShader(stage)
		shaders = append(shaders, shader)
		if ok, log := p.device.CompileShader(shader, code); !ok {
			errs = append(errs, &CompileError{Program: p.name, Stage: stage, Label: src.label, Log: log})
			p.logger.Error("shader compilation failed", "program", p.name, "stage", stage.String(), "label", src.label, "log", log)
		}
		p.device.AttachShader(handle, shader)
	}

	if ok, log := p.device.LinkProgram(handle); !ok {
		errs = append(errs, &LinkError{Program: p.name, Log: log})
		p.logger.Error("shader program link failed", "program", p.name, "log", log)
	}
	return handle, errors.Join(errs...)
}
