package shader

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// typeToken starts a stage section in a combined shader source.
const typeToken = "#type"

// StageFromString maps a #type stage name to a shader stage. "pixel" is accepted as an alias of
// "fragment".
//
// Parameters:
//   - name: the stage name as written after #type
//
// Returns:
//   - gpu.ShaderStage: the matching stage
//   - error: an error wrapping ErrUnknownStage if the name is not recognised
func StageFromString(name string) (gpu.ShaderStage, error) {
	switch name {
	case "vertex":
		return gpu.StageVertex, nil
	case "fragment", "pixel":
		return gpu.StageFragment, nil
	case "geometry":
		return gpu.StageGeometry, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStage, name)
}

// ParseStages splits a combined source into per-stage sources. Each section starts with a
// "#type <stage>" directive at the beginning of a line and runs from the first byte after the
// directive's line terminator(s) up to the next directive or the end of src. Text before the first
// directive is ignored.
//
// Parameters:
//   - src: the combined shader source
//
// Returns:
//   - map[gpu.ShaderStage]string: stage sources keyed by stage
//   - error: ErrUnknownStage, ErrSyntax, ErrNoStages or ErrDuplicateStage (wrapped)
func ParseStages(src string) (map[gpu.ShaderStage]string, error) {
	pos := nextDirective(src, 0)
	if pos < 0 {
		return nil, ErrNoStages
	}

	sources := make(map[gpu.ShaderStage]string)
	for pos >= 0 {
		eol := strings.IndexAny(src[pos:], "\r\n")
		if eol < 0 {
			return nil, fmt.Errorf("%w: %s directive at offset %d is not terminated by a newline", ErrSyntax, typeToken, pos)
		}
		eol += pos

		rest := src[pos+len(typeToken) : eol]
		if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			return nil, fmt.Errorf("%w: malformed directive %q at offset %d", ErrSyntax, src[pos:eol], pos)
		}
		stage, err := StageFromString(strings.TrimSpace(rest))
		if err != nil {
			return nil, err
		}
		if _, dup := sources[stage]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, stage)
		}

		body := eol
		for body < len(src) && (src[body] == '\r' || src[body] == '\n') {
			body++
		}
		next := nextDirective(src, body)
		end := next
		if end < 0 {
			end = len(src)
		}
		sources[stage] = src[body:end]
		pos = next
	}
	return sources, nil
}

// nextDirective returns the offset of the next #type token at the start of a line at or after from,
// or -1.
func nextDirective(src string, from int) int {
	for from <= len(src) {
		i := strings.Index(src[from:], typeToken)
		if i < 0 {
			return -1
		}
		i += from
		if i == 0 || src[i-1] == '\n' || src[i-1] == '\r' {
			return i
		}
		from = i + len(typeToken)
	}
	return -1
}

// DeriveName returns the program name for a source path: the final path element with its
// extension removed. Both '/' and '\' separate directories.
//
// Parameters:
//   - path: the shader file path
//
// Returns:
//   - string: the derived name
func DeriveName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

// SourceProvider supplies shader source text by path.
type SourceProvider interface {
	// ReadSource returns the contents of the shader file at path.
	//
	// Parameters:
	//   - path: the shader file path
	//
	// Returns:
	//   - string: the file contents
	//   - error: error if the file cannot be read
	ReadSource(path string) (string, error)
}

// OSProvider reads shader sources from the operating system file system.
type OSProvider struct{}

// ReadSource reads path with os.ReadFile.
func (OSProvider) ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FSProvider reads shader sources from an fs.FS, such as an embed.FS.
type FSProvider struct {
	FS fs.FS
}

// ReadSource reads path from the wrapped file system. Backslashes are normalised to slashes.
func (p FSProvider) ReadSource(path string) (string, error) {
	data, err := fs.ReadFile(p.FS, strings.ReplaceAll(path, `\`, "/"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
