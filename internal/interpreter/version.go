package interpreter

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionPattern pulls the numeric part out of outputs such as
// "Python 3.11.4" or "Python 3.13.0rc1".
var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Version is a parsed interpreter version.
type Version struct {
	v *semver.Version
}

// Tag returns the "major.minor" form used in identifiers.
func (v Version) Tag() string {
	return fmt.Sprintf("%d.%d", v.v.Major(), v.v.Minor())
}

// String returns the full version.
func (v Version) String() string {
	return v.v.String()
}

// Semver exposes the underlying semantic version.
func (v Version) Semver() *semver.Version {
	return v.v
}

// Parse extracts a version from interpreter output or a pinned value such
// as "3.11". A leading "v" is tolerated.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if m == nil {
		return Version{}, fmt.Errorf("no version number in %q", s)
	}
	raw := m[1] + "." + m[2]
	if m[3] != "" {
		raw += "." + m[3]
	}
	sv, err := semver.NewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("parsing version %q: %w", raw, err)
	}
	return Version{v: sv}, nil
}

// Resolver asks an interpreter for its version string.
type Resolver func(ctx context.Context, python string) (string, error)

// ExecResolver runs "<python> --version" and returns its combined output.
// Python 2 printed the version on stderr, hence CombinedOutput.
func ExecResolver(ctx context.Context, python string) (string, error) {
	bin, err := exec.LookPath(python)
	if err != nil {
		return "", fmt.Errorf("interpreter %q not found: %w", python, err)
	}
	out, err := exec.CommandContext(ctx, bin, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", python, err)
	}
	return string(out), nil
}

// Detect returns the pinned version when pinned is non-empty, otherwise the
// version reported by python via resolve.
func Detect(ctx context.Context, python, pinned string, resolve Resolver) (Version, error) {
	if pinned != "" {
		v, err := Parse(pinned)
		if err != nil {
			return Version{}, fmt.Errorf("python_version: %w", err)
		}
		return v, nil
	}
	if resolve == nil {
		resolve = ExecResolver
	}
	out, err := resolve(ctx, python)
	if err != nil {
		return Version{}, err
	}
	return Parse(out)
}
