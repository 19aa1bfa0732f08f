// Package config loads engine configuration from TOML or YAML files. Values missing from a file
// keep their defaults, so a file only needs to name what it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid config")
)

// Format is a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath derives the encoding from a file extension.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Format: the encoding
//   - error: ErrUnsupportedFormat for unknown extensions
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Duration is a time.Duration written as a Go duration string ("500ms", "2s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the complete engine configuration.
type Config struct {
	Window    WindowConfig    `toml:"window" yaml:"window"`
	Renderer  RendererConfig  `toml:"renderer" yaml:"renderer"`
	Log       LogConfig       `toml:"log" yaml:"log"`
	Profiling ProfilingConfig `toml:"profiling" yaml:"profiling"`
	Shaders   ShaderConfig    `toml:"shaders" yaml:"shaders"`
	Textures  TextureConfig   `toml:"textures" yaml:"textures"`
}

// WindowConfig configures the application window.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  uint32 `toml:"width" yaml:"width"`
	Height uint32 `toml:"height" yaml:"height"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	ClearColor [4]float32 `toml:"clear_color" yaml:"clear_color"`
	Blend      bool       `toml:"blend" yaml:"blend"`
	DepthTest  bool       `toml:"depth_test" yaml:"depth_test"`
	MaxQuads   int        `toml:"max_quads" yaml:"max_quads"`
}

// LogConfig configures the engine loggers.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// ProfilingConfig configures the debug overlay's profiler.
type ProfilingConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	Interval Duration `toml:"interval" yaml:"interval"`
}

// ShaderConfig configures the shader library.
type ShaderConfig struct {
	// Directory is searched for program files; "~" is expanded.
	Directory string `toml:"directory" yaml:"directory"`
	HotReload bool   `toml:"hot_reload" yaml:"hot_reload"`
}

// TextureConfig configures the asynchronous texture loader.
type TextureConfig struct {
	Workers int  `toml:"workers" yaml:"workers"`
	FlipY   bool `toml:"flip_y" yaml:"flip_y"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-gl",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Renderer: RendererConfig{
			ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
			Blend:      true,
			DepthTest:  true,
			MaxQuads:   10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logger.FormatText),
		},
		Profiling: ProfilingConfig{
			Enabled:  true,
			Interval: Duration(time.Second),
		},
		Textures: TextureConfig{
			Workers: 4,
			FlipY:   true,
		},
	}
}

// Load reads, decodes and validates a configuration file on top of Default. "~" in path is
// expanded to the user's home directory and the encoding is chosen by extension.
//
// Parameters:
//   - path: the configuration file
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("expand config path %q: %w", path, err)
	}
	format, err := FormatFromPath(expanded)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the encoded configuration
//   - format: the encoding
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if decoding or validation fails
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and keeps the defaults.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration.
//
// Parameters:
//   - format: the encoding
//
// Returns:
//   - []byte: the encoded configuration
//   - error: error if encoding fails or the format is unknown
func (c Config) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(c)
	case FormatYAML:
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Validate checks every field and returns all failures joined, each wrapping ErrInvalid.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width == 0 || c.Window.Height == 0 {
		invalid("window size %dx%d must be non-zero", c.Window.Width, c.Window.Height)
	}
	for i, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			invalid("renderer.clear_color[%d] = %g is outside [0, 1]", i, v)
		}
	}
	if c.Renderer.MaxQuads <= 0 {
		invalid("renderer.max_quads = %d must be positive", c.Renderer.MaxQuads)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		invalid("log.level: %v", err)
	}
	switch logger.Format(c.Log.Format) {
	case logger.FormatText, logger.FormatJSON:
	default:
		invalid("log.format %q must be %q or %q", c.Log.Format, logger.FormatText, logger.FormatJSON)
	}
	if c.Profiling.Enabled && c.Profiling.Interval <= 0 {
		invalid("profiling.interval must be positive")
	}
	if c.Textures.Workers <= 0 {
		invalid("textures.workers = %d must be positive", c.Textures.Workers)
	}
	return errors.Join(errs...)
}

// WindowOptions returns the window creation parameters.
func (c Config) WindowOptions() window.Config {
	cfg := window.DefaultConfig()
	cfg.Title = c.Window.Title
	cfg.Width = c.Window.Width
	cfg.Height = c.Window.Height
	cfg.VSync = c.Window.VSync
	return cfg
}

// LoggerOptions returns the logger options. An invalid level falls back to info.
func (c Config) LoggerOptions() logger.Options {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return logger.Options{Level: level, Format: logger.Format(c.Log.Format)}
}

// ClearColor returns the renderer clear color as a vector.
func (c Config) ClearColor() mgl32.Vec4 {
	return mgl32.Vec4(c.Renderer.ClearColor)
}

// ShaderDirectory returns the shader directory with "~" expanded.
//
// Returns:
//   - string: the directory, empty if unset
//   - error: error if the home directory cannot be resolved
func (c Config) ShaderDirectory() (string, error) {
	if c.Shaders.Directory == "" {
		return "", nil
	}
	return homedir.Expand(c.Shaders.Directory)
}
