package config

import (
	"os"
	"path/filepath"
)

const appName = "countdown"

// DefaultPath returns ~/.config/countdown/config.yaml, or a file in the
// working directory when there is no home.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appName, "config.yaml")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, appName+"-config.yaml")
}

// DefaultHistoryPath returns the sqlite file that records past sessions.
func DefaultHistoryPath() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appName, "history.db")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, appName+"-history.db")
}
