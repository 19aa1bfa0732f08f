package opengl

import "log/slog"

// DeviceBuilderOption is a functional option applied to a device during construction via NewDevice.
type DeviceBuilderOption func(*device)

// WithLogger sets the logger used to report the context description.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - DeviceBuilderOption: a function that applies the logger option to a device
func WithLogger(l *slog.Logger) DeviceBuilderOption {
	return func(d *device) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMinimumVersion overrides the lowest OpenGL version Init accepts, e.g. "3.3".
//
// Parameters:
//   - version: a semantic version string (major.minor is enough)
//
// Returns:
//   - DeviceBuilderOption: a function that applies the version option to a device
func WithMinimumVersion(version string) DeviceBuilderOption {
	return func(d *device) {
		d.minVersion = version
	}
}
