package texture

import (
	"io/fs"
	"log/slog"
)

// LoaderBuilderOption is a functional option applied to a loader during construction via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFS reads texture files from fsys instead of the operating system.
//
// Parameters:
//   - fsys: the file system
//
// Returns:
//   - LoaderBuilderOption: a function that applies the file system option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithWorkers sets the number of decode workers. Defaults to 2.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}

// WithFlipY controls whether decoded rows are reversed for a bottom-left texture origin. Defaults to true.
//
// Parameters:
//   - flip: reverse rows after decoding
//
// Returns:
//   - LoaderBuilderOption: a function that applies the flip option to a loader
func WithFlipY(flip bool) LoaderBuilderOption {
	return func(l *loader) {
		l.flipY = flip
	}
}

// WithTextureOptions sets options applied to every texture the loader uploads.
//
// Parameters:
//   - options: texture options
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture options to a loader
func WithTextureOptions(options ...TextureBuilderOption) LoaderBuilderOption {
	return func(l *loader) {
		l.options = options
	}
}

// WithLoaderLogger sets the logger used to report failed loads.
//
// Parameters:
//   - lg: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLoaderLogger(lg *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}
