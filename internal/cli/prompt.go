package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/modsmith-labs/modsmith/internal/platform"
)

// confirmOpen asks whether to open the generated folder and launches the
// system file manager on a yes. EOF (e.g. a closed stdin in scripts) counts
// as a no.
func confirmOpen(r io.Reader, w io.Writer, path string) error {
	fmt.Fprintf(w, "\nOpen the mod folder now? [y/N]: ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading response: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		if err := platform.OpenFolder(path); err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
	}
	return nil
}
