// Package paths resolves where steane keeps its configuration and its trial
// store.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "steane"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".steane"
	DefaultDataDirName   = ".steane-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "STEANE_CONFIG_DIR"
	EnvDataDir   = "STEANE_DATA_DIR"
)

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// userDir returns $xdgEnv/steane, or ~/<fallback...>/steane when unset.
// Outside Linux it returns os.UserConfigDir()/steane.
func userDir(xdgEnv string, fallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/steane (fallback ~/.config/steane)
// macOS:   ~/Library/Application Support/steane
// Windows: %APPDATA%/steane
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/steane (fallback ~/.local/share/steane)
// macOS and Windows: same as the config directory.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > STEANE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml value > STEANE_DATA_DIR env > $(CWD)/.steane-db.
// Trial stores live next to the experiment they belong to, so the fallback
// is CWD-relative rather than DefaultDataDir.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
