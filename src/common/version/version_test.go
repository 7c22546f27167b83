package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
}

func TestInfoString(t *testing.T) {
	info := Get()
	if !strings.Contains(info.String(), info.Version) {
		t.Errorf("String() = %q, should contain version", info.String())
	}
}

func TestUserAgent(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "1.2.3"

	if got := Get().UserAgent("cwe-cli"); got != "cwe-cli/1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "cwe-cli/1.2.3")
	}
}

func TestGetShort(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = ""
	if got := GetShort(); got != "dev" {
		t.Errorf("GetShort() with empty Version = %q, want dev", got)
	}
	Version = "2.0.0"
	if got := GetShort(); got != "2.0.0" {
		t.Errorf("GetShort() = %q, want 2.0.0", got)
	}
}
