package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modsmith-labs/modsmith/internal/settings"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated mods",
	Long:  `List the mod folders under the configured mods root with their detected artifacts.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents one mod folder for display.
type listEntry struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Artifacts []string `json:"artifacts"`
}

func runList(cmd *cobra.Command, args []string) error {
	root := settings.Load().ModsRoot

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "No mods generated yet.")
			return nil
		}
		return fmt.Errorf("reading mods root %s: %w", root, err)
	}

	var mods []listEntry
	for _, entry := range entries {
		if !entry.IsDir() || strings.Contains(entry.Name(), "_backup_") {
			continue
		}
		modDir := filepath.Join(root, entry.Name())
		artifacts := detectArtifacts(modDir)
		if len(artifacts) == 0 {
			// Not something we generated; leave foreign folders out.
			continue
		}
		mods = append(mods, listEntry{
			Name:      entry.Name(),
			Path:      modDir,
			Artifacts: artifacts,
		})
	}

	if len(mods) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No mods generated yet.")
		return nil
	}

	if listJSON {
		out, err := json.MarshalIndent(mods, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling mod list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tARTIFACTS\tPATH")
	for _, m := range mods {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, strings.Join(m.Artifacts, ","), m.Path)
	}
	return w.Flush()
}

// detectArtifacts reports which generated pieces a mod folder contains.
// A folder without modinfo.py is not considered a generated mod.
func detectArtifacts(modDir string) []string {
	if _, err := os.Stat(filepath.Join(modDir, "modinfo.py")); err != nil {
		return nil
	}

	artifacts := []string{"modinfo"}

	if hasFileWithExt(filepath.Join(modDir, "Scripts"), ".py") {
		artifacts = append(artifacts, "script")
	}
	if hasFileWithExt(filepath.Join(modDir, "Tuning"), ".xml") {
		artifacts = append(artifacts, "tuning")
	}
	if hasFileWithExt(modDir, ".package") {
		artifacts = append(artifacts, "package")
	}
	return artifacts
}

func hasFileWithExt(dir, ext string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ext && e.Name() != "__init__.py" {
			return true
		}
	}
	return false
}
