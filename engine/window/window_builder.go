package window

// WindowBuilderOption is a functional option for configuring a window.
// Use the With* functions to create options.
type WindowBuilderOption func(cfg *Config)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(cfg *Config) {
		cfg.Title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width uint32) WindowBuilderOption {
	return func(cfg *Config) {
		cfg.Width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height uint32) WindowBuilderOption {
	return func(cfg *Config) {
		cfg.Height = height
	}
}

// WithVSync toggles vertical sync.
//
// Parameters:
//   - enabled: true to enable vsync
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithVSync(enabled bool) WindowBuilderOption {
	return func(cfg *Config) {
		cfg.VSync = enabled
	}
}

// WithMinSize sets the minimum allowed window size.
//
// Parameters:
//   - width, height: minimum size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height uint32) WindowBuilderOption {
	return func(cfg *Config) {
		cfg.MinWidth = width
		cfg.MinHeight = height
	}
}

// WithMaxSize sets the maximum allowed window size.
//
// Parameters:
//   - width, height: maximum size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height uint32) WindowBuilderOption {
	return func(cfg *Config) {
		cfg.MaxWidth = width
		cfg.MaxHeight = height
	}
}

// WithConfig replaces every field with cfg. Later options still apply on top.
//
// Parameters:
//   - c: the configuration to copy
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithConfig(c Config) WindowBuilderOption {
	return func(cfg *Config) {
		*cfg = c
	}
}
