// Package paths resolves where the CLI keeps its config and log files.
// Linux and macOS follow XDG; Windows uses APPDATA and LOCALAPPDATA.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	projectOrg  = "apimgr"
	projectName = "cwe"
)

// ConfigDir returns the CLI config directory
// Linux: $XDG_CONFIG_HOME/apimgr/cwe/ (default ~/.config/apimgr/cwe/)
// Windows: %APPDATA%\apimgr\cwe\
func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, projectOrg, projectName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", projectOrg, projectName)
}

// LogDir returns the CLI log directory
// Linux: $XDG_STATE_HOME/apimgr/cwe/ (default ~/.local/state/apimgr/cwe/)
// Windows: %LOCALAPPDATA%\apimgr\cwe\log\
func LogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "log")
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, projectOrg, projectName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", projectOrg, projectName)
}

// ConfigFile returns the default config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "cli.yml")
}

// LogFile returns the default log file path, used when CWE_LOG_FILE is
// set to a bare name.
func LogFile() string {
	return filepath.Join(LogDir(), "cli.log")
}

// EnsureFile creates the parent directories of path with owner-only
// permissions.
func EnsureFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return nil
}

// ResolveConfigPath resolves the --config flag to a file path.
// Empty selects ConfigFile, "~/" is expanded, relative names resolve
// inside ConfigDir and a missing extension becomes .yml (or .yaml when
// only that exists).
func ResolveConfigPath(configFlag string) (string, error) {
	if configFlag == "" {
		return ConfigFile(), nil
	}

	if strings.HasPrefix(configFlag, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		configFlag = filepath.Join(home, configFlag[2:])
	}

	if filepath.IsAbs(configFlag) {
		return addExtIfNeeded(configFlag), nil
	}
	return addExtIfNeeded(filepath.Join(ConfigDir(), configFlag)), nil
}

// ResolveLogPath resolves CWE_LOG_FILE the same way as ResolveConfigPath
// resolves --config, relative to LogDir.
func ResolveLogPath(logFlag string) string {
	if logFlag == "" {
		return ""
	}
	if strings.HasPrefix(logFlag, "~/") {
		home, _ := os.UserHomeDir()
		logFlag = filepath.Join(home, logFlag[2:])
	}
	if filepath.IsAbs(logFlag) {
		return logFlag
	}
	return filepath.Join(LogDir(), logFlag)
}

func addExtIfNeeded(path string) string {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return path
	case "":
		ymlPath := path + ".yml"
		if _, err := os.Stat(ymlPath); err == nil {
			return ymlPath
		}
		yamlPath := path + ".yaml"
		if _, err := os.Stat(yamlPath); err == nil {
			return yamlPath
		}
		return ymlPath
	default:
		return path
	}
}
