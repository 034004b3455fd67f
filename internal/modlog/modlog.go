// Package modlog writes the per-run action log. Each CLI invocation gets its
// own timestamped file under the logs directory with human-readable
// timestamped lines; every generation attempt records exactly one outcome
// entry there.
package modlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/modsmith-labs/modsmith/internal/branding"
	"github.com/modsmith-labs/modsmith/internal/platform"
)

const fileTimestampLayout = "20060102_150405"

// Run is an open per-run log.
type Run struct {
	Logger *slog.Logger
	Path   string

	file *os.File
}

// Open creates dir if needed and opens a fresh run log inside it. With
// verbose set, entries are mirrored to stderr and the level drops to debug.
func Open(dir string, verbose bool) (*Run, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating logs directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%s.log", branding.CLIName(), time.Now().Format(fileTimestampLayout))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	if err := platform.Chmod(path, 0644); err != nil {
		f.Close()
		return nil, fmt.Errorf("setting mode on %s: %w", path, err)
	}

	var w io.Writer = f
	level := slog.LevelInfo
	if verbose {
		w = io.MultiWriter(f, os.Stderr)
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	return &Run{Logger: logger, Path: path, file: f}, nil
}

// Discard returns a run whose entries go nowhere, for callers that could not
// open a real log but must keep going.
func Discard() *Run {
	return &Run{
		Logger: slog.New(slog.DiscardHandler),
		Path:   "",
	}
}

// Close flushes and closes the underlying file.
func (r *Run) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}
