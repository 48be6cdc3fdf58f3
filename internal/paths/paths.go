package paths

import (
	"AppBuilder/internal/constants"
	"AppBuilder/internal/version"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

var (
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
)

// GetConfigFilePath returns the absolute path to the appbuilder.toml file.
// It places it in a subdirectory named after the application (e.g., ~/.config/appbuilder/appbuilder.toml).
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), constants.AppConfigFileName)
}

// GetConfigDir returns the absolute path to the appbuilder configuration directory.
func GetConfigDir() string {
	appName := strings.ToLower(version.ApplicationName)
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appName)
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetStateDir returns the absolute path to the appbuilder state directory.
func GetStateDir() string {
	appName := strings.ToLower(version.ApplicationName)
	if StateHomeOverride != "" {
		return filepath.Join(StateHomeOverride, appName)
	}
	return filepath.Join(xdg.StateHome, appName)
}

// GetLogFilePath returns the absolute path to the log file.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}

// ProjectDir resolves the directory a command operates on.
// An empty dir means the current working directory.
func ProjectDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}
