package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const AppName = "todo"

// ErrConfigDirUnavailable is returned when the per-user config directory
// cannot be located or created.
var ErrConfigDirUnavailable = errors.New("config directory unavailable")

// Paths holds the per-user locations the app reads and writes.
type Paths struct {
	ConfigDir  string
	ConfigPath string
	DataPath   string
	LogPath    string
}

// DefaultPaths resolves paths under the user config directory.
func DefaultPaths() (Paths, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("%w: %w", ErrConfigDirUnavailable, err)
	}
	env := map[string]string{
		"XDG_CONFIG_HOME": os.Getenv("XDG_CONFIG_HOME"),
		"APPDATA":         os.Getenv("APPDATA"),
	}
	return PathsFor(runtime.GOOS, env, base, AppName)
}

// PathsFor computes paths for goos without touching the filesystem.
func PathsFor(goos string, env map[string]string, userConfigDir, appName string) (Paths, error) {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, fmt.Errorf("%w: empty app name", ErrConfigDirUnavailable)
	}
	base := userConfigDir
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		if v := env["XDG_CONFIG_HOME"]; v != "" {
			base = v
		}
	case "windows":
		if v := env["APPDATA"]; v != "" {
			base = v
		}
	}
	if base == "" {
		return Paths{}, fmt.Errorf("%w: empty base dir", ErrConfigDirUnavailable)
	}

	dir := filepath.Join(base, appName)
	return Paths{
		ConfigDir:  dir,
		ConfigPath: filepath.Join(dir, "config.toml"),
		DataPath:   filepath.Join(dir, appName+".db"),
		LogPath:    filepath.Join(dir, appName+".log"),
	}, nil
}

// Ensure creates the config directory if it does not exist yet.
func (p Paths) Ensure() error {
	if err := os.MkdirAll(p.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigDirUnavailable, err)
	}
	return nil
}
