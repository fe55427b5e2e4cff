// Package paths knows where qshare keeps its files.
package paths

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.qshare.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".qshare")
}

// ConfigPath returns the config file path inside base.
func ConfigPath(base string) string {
	return filepath.Join(base, "config.toml")
}

// LogDir returns the log directory inside base.
func LogDir(base string) string {
	return filepath.Join(base, "logs")
}

// LogPath returns the log file path inside base.
func LogPath(base string) string {
	return filepath.Join(LogDir(base), "qshare.log")
}

// Resolve picks the config file: the flag override if set, otherwise the
// default location inside base.
func Resolve(flagOverride, base string) string {
	if flagOverride != "" {
		return flagOverride
	}
	return ConfigPath(base)
}

// EnsureDir creates base and its log directory with private permissions.
func EnsureDir(base string) error {
	for _, d := range []string{base, LogDir(base)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
