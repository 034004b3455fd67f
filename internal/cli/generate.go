package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/modsmith-labs/modsmith/internal/modlog"
	"github.com/modsmith-labs/modsmith/internal/naming"
	"github.com/modsmith-labs/modsmith/internal/scaffold"
	"github.com/modsmith-labs/modsmith/internal/settings"
)

var (
	genScript     bool
	genTuning     bool
	genPackage    bool
	genAll        bool
	genMatch      bool
	genAuthor     string
	genModVersion string
	genRoot       string
	genNoPrompt   bool
)

var generateCmd = &cobra.Command{
	Use:     "generate <folder-name> [file-name]",
	Aliases: []string{"gen"},
	Short:   "Generate a mod folder with template files",
	Long: `Generate a mod folder under the configured mods root.

The folder always receives modinfo.py and an __init__.py; --script, --tuning,
and --package add the corresponding placeholder artifacts (--all selects every
type). Naming rules from your settings are applied to both names before
anything is written. Omitting the file name, or passing --match, derives it
from the folder name.

Examples:
  modsmith generate "My Cool Mod" --all
  modsmith generate BetterStairs better_stairs --script --tuning
  modsmith generate QuickFix --package --author "Me" --mod-version 1.2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&genScript, "script", false, "Create a script placeholder (Scripts/<file>.py)")
	generateCmd.Flags().BoolVar(&genTuning, "tuning", false, "Create a tuning placeholder (Tuning/<file>.xml)")
	generateCmd.Flags().BoolVar(&genPackage, "package", false, "Create a package placeholder (<file>.package)")
	generateCmd.Flags().BoolVar(&genAll, "all", false, "Create all artifact types")
	generateCmd.Flags().BoolVarP(&genMatch, "match", "m", false, "Match the file name to the folder name")
	generateCmd.Flags().StringVar(&genAuthor, "author", "", "Author written to modinfo (default: default_author setting)")
	generateCmd.Flags().StringVar(&genModVersion, "mod-version", "", "Mod version written to modinfo (default: 1.0)")
	generateCmd.Flags().StringVar(&genRoot, "root", "", "Override the configured mods root for this run")
	generateCmd.Flags().BoolVar(&genNoPrompt, "no-prompt", false, "Skip the open-folder prompt")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s := settings.Load()

	// A broken log destination must not block generation; fall back to a
	// discard log and tell the user.
	run, err := modlog.Open(settings.LogsDir(), verbose)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; continuing without a run log\n", err)
		run = modlog.Discard()
	}
	defer run.Close()

	requestID := uuid.NewString()
	logger := run.Logger.With("request_id", requestID)

	folderName := args[0]
	fileName := ""
	sync := genMatch
	if len(args) == 2 {
		fileName = args[1]
	} else {
		sync = true
	}

	resolved, err := naming.Apply(s.NamingRules, folderName, fileName, sync)
	if err != nil {
		logger.Error("mod generation failed", "stage", scaffold.StageValidating, "error", err.Error())
		return err
	}

	types := scaffold.FileTypes{Script: genScript, Tuning: genTuning, Package: genPackage}
	if genAll {
		types = scaffold.AllFileTypes()
	}

	author := genAuthor
	if author == "" {
		author = s.DefaultAuthor
	}

	root := s.ModsRoot
	if genRoot != "" {
		root = genRoot
	}

	req := scaffold.Request{
		FolderName: resolved.FolderName,
		FileName:   resolved.FileName,
		Types:      types,
		Author:     author,
		Version:    genModVersion,
	}
	opts := scaffold.Options{
		ModsRoot:      root,
		AlwaysBackup:  s.AlwaysBackup,
		InitInScripts: s.InitInScripts,
	}

	result, err := scaffold.Generate(req, opts)
	if err != nil {
		stage := scaffold.StageValidating
		var stageErr *scaffold.StageError
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
		}
		logger.Error("mod generation failed",
			"stage", stage,
			"folder", resolved.FolderName,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("mod generated",
		"folder", resolved.FolderName,
		"path", result.ModDir,
		"files", len(result.Files),
		"types", types.Names(),
		"backup", result.BackupDir,
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Created mod at %s/\n", result.ModDir)
	for _, f := range result.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}
	if result.BackupDir != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nPrevious contents backed up to %s/\n", result.BackupDir)
	}

	if s.ShowOpenPrompt && !genNoPrompt {
		if err := confirmOpen(cmd.InOrStdin(), cmd.OutOrStdout(), result.ModDir); err != nil {
			// The mod exists; a failed prompt or launcher is not a
			// generation failure.
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}

	return nil
}
