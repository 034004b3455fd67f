// Package platform wraps the OS-specific pieces: launching the system file
// manager and permission handling that differs on Windows.
package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// OpenFolder shows a directory in the system file manager.
// It uses open on macOS, explorer.exe on Windows, and xdg-open on Linux.
func OpenFolder(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer.exe", path)
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("no file manager launcher found: install xdg-utils")
		}
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("opening a file manager is not supported on %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching file manager: %w", err)
	}
	// The file manager outlives the CLI; release the process without waiting.
	return cmd.Process.Release()
}
