package profile

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.chatwidget.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".chatwidget")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// WidgetConfigPath returns the profile's widget.toml.
func WidgetConfigPath(name string) string {
	return filepath.Join(Dir(name), "widget.toml")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the widget log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "chatwidget.log")
}

// GlobalConfigPath returns the global config file path.
func GlobalConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with owner-only permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
