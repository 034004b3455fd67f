// Package backup snapshots a previously generated mod folder before it is
// overwritten. A snapshot is a plain recursive copy to a timestamped sibling
// directory next to the mod folder, so recovery is a rename away.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// excludedNames are entries never carried into a snapshot.
var excludedNames = map[string]bool{
	".DS_Store": true,
	"Thumbs.db": true,
}

const timestampLayout = "20060102_150405"

// Snapshot copies the contents of modDir to a timestamped backup directory
// beside it and returns the backup path. modDir must exist. Successive
// snapshots never overwrite each other, including within the same second.
func Snapshot(modDir string) (string, error) {
	return snapshotAt(modDir, time.Now())
}

func snapshotAt(modDir string, at time.Time) (string, error) {
	info, err := os.Stat(modDir)
	if err != nil {
		return "", fmt.Errorf("inspecting %s: %w", modDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", modDir)
	}

	// The timestamp has one-second granularity; a counter suffix keeps
	// back-to-back snapshots apart.
	base := backupDirFor(modDir, at)
	dst := base
	for n := 2; ; n++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		dst = fmt.Sprintf("%s_%d", base, n)
	}

	if err := copyDir(modDir, dst); err != nil {
		return "", fmt.Errorf("copying %s to %s: %w", modDir, dst, err)
	}
	return dst, nil
}

// backupDirFor derives the snapshot path for a mod folder at a given time.
func backupDirFor(modDir string, at time.Time) string {
	parent := filepath.Dir(modDir)
	name := filepath.Base(modDir)
	return filepath.Join(parent, fmt.Sprintf("%s_backup_%s", name, at.Format(timestampLayout)))
}

// copyDir recursively copies src to dst, skipping excluded entries.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Skip symlinks and other special files during copy.
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode())
}
