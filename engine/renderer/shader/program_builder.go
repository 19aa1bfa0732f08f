package shader

import "log/slog"

// ProgramBuilderOption is a functional option applied to a program during construction.
type ProgramBuilderOption func(*program)

// WithName overrides the name derived from the source path.
//
// Parameters:
//   - name: the program name
//
// Returns:
//   - ProgramBuilderOption: a function that applies the name option to a program
func WithName(name string) ProgramBuilderOption {
	return func(p *program) {
		p.name = name
	}
}

// WithLogger sets the logger that receives compile and link diagnostics.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - ProgramBuilderOption: a function that applies the logger option to a program
func WithLogger(l *slog.Logger) ProgramBuilderOption {
	return func(p *program) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSourceProvider sets where file-based programs read their sources from. Defaults to OSProvider.
//
// Parameters:
//   - provider: the source provider
//
// Returns:
//   - ProgramBuilderOption: a function that applies the provider option to a program
func WithSourceProvider(provider SourceProvider) ProgramBuilderOption {
	return func(p *program) {
		p.provider = provider
	}
}

// WithPreProcessor sets the pre-processor used to expand #include directives.
//
// Parameters:
//   - pp: the pre-processor
//
// Returns:
//   - ProgramBuilderOption: a function that applies the pre-processor option to a program
func WithPreProcessor(pp PreProcessor) ProgramBuilderOption {
	return func(p *program) {
		p.pp = pp
	}
}
