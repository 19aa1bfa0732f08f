// pre_processor.go implements the GLSL include pre-processor. Stage sources may contain lines of the
// form
//
//	#include "name"
//
// which are replaced with the registered snippet of that name before compilation. Snippets may
// include other snippets; each name is expanded at most once per stage so shared blocks are not
// declared twice.
package shader

import (
	"fmt"
	"maps"
	"strings"
)

const includeToken = "#include"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes maps an include name to its GLSL source.
	includes map[string]string
}

// PreProcessor expands #include directives in GLSL stage sources.
type PreProcessor interface {
	// Register adds or replaces the snippet for an include name.
	//
	// Parameters:
	//   - name: the name used in #include "name"
	//   - source: the GLSL text substituted for the directive
	Register(name, source string)

	// Process returns source with every #include directive expanded.
	//
	// Parameters:
	//   - source: a single stage source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error wrapping ErrUnknownInclude, or ErrSyntax for a malformed directive
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a pre-processor seeded with the given snippets.
//
// Parameters:
//   - includes: initial include name to source mapping, may be nil
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor(includes map[string]string) PreProcessor {
	p := &preProcessor{includes: make(map[string]string, len(includes))}
	maps.Copy(p.includes, includes)
	return p
}

func (p *preProcessor) Register(name, source string) {
	p.includes[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	if !strings.Contains(source, includeToken) {
		return source, nil
	}
	return p.expand(source, map[string]bool{})
}

func (p *preProcessor) expand(source string, seen map[string]bool) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(trimmed, includeToken)
		if !ok {
			out = append(out, line)
			continue
		}

		name := strings.TrimSpace(rest)
		if len(name) < 2 || name[0] != '"' || name[len(name)-1] != '"' {
			return "", fmt.Errorf("%w: line %d: malformed include %q", ErrSyntax, i+1, trimmed)
		}
		name = name[1 : len(name)-1]
		if seen[name] {
			continue
		}
		snippet, ok := p.includes[name]
		if !ok {
			return "", fmt.Errorf("%w: line %d: %q", ErrUnknownInclude, i+1, name)
		}
		seen[name] = true

		expanded, err := p.expand(snippet, seen)
		if err != nil {
			return "", fmt.Errorf("include %q: %w", name, err)
		}
		out = append(out, strings.TrimRight(expanded, "\r\n"))
	}
	return strings.Join(out, "\n"), nil
}
