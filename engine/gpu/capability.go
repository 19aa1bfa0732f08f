package gpu

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// MinimumVersion is the lowest OpenGL context version the engine runs on.
const MinimumVersion = "4.1"

// ErrUnsupportedDevice is returned when the graphics context does not meet the minimum version.
var ErrUnsupportedDevice = errors.New("unsupported graphics device")

// versionPrefix matches the leading "major.minor[.patch]" of a GL_VERSION string such as
// "4.6.0 NVIDIA 535.54.03" or "4.1 Metal - 88".
var versionPrefix = regexp.MustCompile(`^\s*(?:OpenGL ES\s+)?(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the numeric version from a driver version string.
//
// Parameters:
//   - raw: the GL_VERSION string reported by the driver
//
// Returns:
//   - *semver.Version: the parsed version
//   - error: error if raw does not start with a version number
func ParseVersion(raw string) (*semver.Version, error) {
	m := versionPrefix.FindStringSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("%w: cannot parse version %q", ErrUnsupportedDevice, raw)
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(fmt.Sprintf("%s.%s.%s", m[1], m[2], patch))
}

// CheckVersion verifies that the context described by info satisfies the minimum version.
//
// Parameters:
//   - info: the context description returned by Device.Init
//   - minimum: the lowest accepted version, e.g. "4.1"
//
// Returns:
//   - error: an error wrapping ErrUnsupportedDevice if the context is too old or unparseable
func CheckVersion(info Info, minimum string) error {
	version, err := ParseVersion(info.Version)
	if err != nil {
		return err
	}
	constraint, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version %q: %w", minimum, err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s %s is older than %s", ErrUnsupportedDevice, info.Renderer, version, minimum)
	}
	return nil
}
