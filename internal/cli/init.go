package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/modsmith-labs/modsmith/internal/settings"
)

var initRoot string

func init() {
	initCmd.Flags().StringVar(&initRoot, "root", "", "Mods root to configure (default: the Sims 4 Mods folder under Documents)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ModSmith workspace",
	Long: `Create the mods root, the logs directory, and a default settings file.

Existing items are left alone, so init is safe to re-run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		s := settings.Load()
		if initRoot != "" {
			s.ModsRoot = initRoot
		}

		fmt.Fprintf(out, "Initializing ModSmith workspace\n")

		if err := ensureDir(out, s.ModsRoot); err != nil {
			return err
		}
		if err := ensureDir(out, settings.LogsDir()); err != nil {
			return err
		}

		// Write the settings file only when absent so a re-run never
		// clobbers user preferences.
		path := settings.FilePath()
		if _, err := os.Stat(path); err == nil {
			if initRoot != "" {
				if err := settings.Save(s); err != nil {
					return fmt.Errorf("updating settings: %w", err)
				}
				fmt.Fprintf(out, "  [ OK ] Updated mods_root in %s\n", path)
			} else {
				fmt.Fprintf(out, "  [SKIP] %s already exists\n", path)
			}
		} else {
			if err := settings.Save(s); err != nil {
				return fmt.Errorf("writing default settings: %w", err)
			}
			fmt.Fprintf(out, "  [ OK ] Created %s\n", path)
		}

		fmt.Fprintf(out, "\nWorkspace ready. Generate your first mod with '%s generate <name> --all'.\n", rootCmd.Name())
		return nil
	},
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
