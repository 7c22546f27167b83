// Package version holds build information set at link time.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables - set via ldflags
var (
	// Version is the semantic version (e.g., "1.0.0")
	Version = "dev"

	// Commit is the git commit hash
	Commit = "unknown"

	// BuildDate is the build timestamp
	BuildDate = "unknown"
)

// Info contains all version information
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the current version info
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String returns a formatted version string
func (i Info) String() string {
	return fmt.Sprintf("%s (%s/%s)", i.Version, i.OS, i.Arch)
}

// UserAgent returns a User-Agent string for HTTP clients
func (i Info) UserAgent(binaryName string) string {
	return fmt.Sprintf("%s/%s", binaryName, i.Version)
}

// GetShort returns just the version string, never empty.
func GetShort() string {
	if strings.TrimSpace(Version) == "" {
		return "dev"
	}
	return Version
}
