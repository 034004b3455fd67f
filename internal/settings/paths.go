package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modsmith-labs/modsmith/internal/branding"
)

const (
	fileName   = "settings.json"
	backupName = "settings.json.bak"
	logsDir    = "logs"
)

// Dir returns the path to the ModSmith home directory (~/.modsmith/).
// The MODSMITH_HOME environment variable overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the settings file (~/.modsmith/settings.json).
func FilePath() string {
	return filepath.Join(Dir(), fileName)
}

// BackupPath returns the path the previous settings file is copied to on save.
func BackupPath() string {
	return filepath.Join(Dir(), backupName)
}

// LogsDir returns the directory run logs are written to (~/.modsmith/logs/).
// The MODSMITH_LOGS environment variable overrides it.
func LogsDir() string {
	if v := os.Getenv(branding.EnvVar("LOGS")); v != "" {
		return v
	}
	return filepath.Join(Dir(), logsDir)
}

// DefaultModsRoot returns the stock Sims 4 Mods directory under the user's
// Documents folder, matching the game's own default install layout.
func DefaultModsRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "Mods")
	}
	return filepath.Join(home, "Documents", "Electronic Arts", "The Sims 4", "Mods")
}

// EnsureDir creates the ModSmith home directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}
	return nil
}
