package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/modsmith-labs/modsmith/internal/platform"
	"github.com/modsmith-labs/modsmith/internal/settings"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt to repair issues")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the ModSmith environment",
	Long: `Validate the settings file, the mods root, and the logs directory.

With --fix, missing directories are created.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Settings check:")
		s := checkSettings(out)

		fmt.Fprintln(out, "\nMods root check:")
		checkDir(out, s.ModsRoot, doctorFix)

		fmt.Fprintln(out, "\nLogs check:")
		checkDir(out, settings.LogsDir(), doctorFix)

		return nil
	},
}

// checkSettings reports the state of the settings file and returns the
// resolved record (which is always usable).
func checkSettings(w io.Writer) settings.Settings {
	path := settings.FilePath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist (defaults in use)\n", path)
		fmt.Fprintf(w, "         Run '%s init' to create it\n", rootCmd.Name())
		return settings.Default()
	}

	s, problems := settings.LoadFile(path)
	if len(problems) == 0 {
		fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)
		return s
	}

	fmt.Fprintf(w, "  [WARN] %s has problems; defaults in use:\n", path)
	for _, p := range problems {
		fmt.Fprintf(w, "         - %s\n", p)
	}
	return s
}

func checkDir(w io.Writer, path string, fix bool) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if mkErr := os.MkdirAll(path, 0755); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
				return
			}
			fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		} else {
			fmt.Fprintf(w, "         Run with --fix to create\n")
		}
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", path)
		return
	}
	if !platform.Writable(path) {
		fmt.Fprintf(w, "  [WARN] %s is not writable\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists and is writable\n", path)
}
