package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modsmith-labs/modsmith/internal/branding"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds The Sims 4 mod folders: it creates a named folder with
modinfo and init templates plus optional script, tuning, and package
placeholders, applying your configured naming rules and backing up any
previous output first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Mirror log entries to stderr and include debug detail")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
