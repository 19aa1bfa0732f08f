package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

var (
	// ErrUnknownStage is returned for a #type directive naming an unsupported stage.
	ErrUnknownStage = errors.New("unknown shader stage")

	// ErrSyntax is returned for a malformed #type directive.
	ErrSyntax = errors.New("shader source syntax error")

	// ErrNoStages is returned when a combined source has no #type directive.
	ErrNoStages = errors.New("shader source has no #type directive")

	// ErrDuplicateStage is returned when a combined source declares the same stage twice.
	ErrDuplicateStage = errors.New("duplicate shader stage")

	// ErrSourceUnavailable is returned when a shader file cannot be read.
	ErrSourceUnavailable = errors.New("shader source unavailable")

	// ErrCompile is wrapped by every CompileError.
	ErrCompile = errors.New("shader compilation failed")

	// ErrLink is wrapped by every LinkError.
	ErrLink = errors.New("shader program link failed")

	// ErrDuplicateProgram is returned when a Library already holds a program with the same name.
	ErrDuplicateProgram = errors.New("shader program already exists")

	// ErrUnknownInclude is returned by the pre-processor for an #include with no registered source.
	ErrUnknownInclude = errors.New("unknown shader include")
)

// CompileError describes a stage that failed to compile.
type CompileError struct {
	// Program is the name of the program the stage belongs to.
	Program string
	// Stage is the failing stage.
	Stage gpu.ShaderStage
	// Label identifies the stage source, the file path or the program name for inline sources.
	Label string
	// Log is the compiler info log.
	Log string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %s: %s stage (%s) failed to compile: %s", e.Program, e.Stage, e.Label, e.Log)
}

func (e *CompileError) Unwrap() error {
	return ErrCompile
}

// LinkError describes a program that failed to link.
type LinkError struct {
	// Program is the program name.
	Program string
	// Log is the linker info log.
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader %s: link failed: %s", e.Program, e.Log)
}

func (e *LinkError) Unwrap() error {
	return ErrLink
}

// SourceError describes a shader file that could not be read.
type SourceError struct {
	// Path is the file path.
	Path string
	// Err is the underlying read error.
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("shader source %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}
