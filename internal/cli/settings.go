package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/modsmith-labs/modsmith/internal/settings"
)

var settingsJSON bool

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsJSON, "json", false, "Output in JSON format")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage generation settings",
	Long: `Read and write the settings record stored at ~/.modsmith/settings.json.

Keys:
  mods_root                              Mods directory mods are generated into
  naming_rules.no_spaces_folders         Strip spaces from folder names
  naming_rules.no_spaces_files           Strip spaces from file names
  naming_rules.convert_spaces_underscores Convert remaining spaces to underscores
  always_backup                          Snapshot existing output before overwriting
  show_open_location_prompt              Offer to open the folder after generating
  init_in_scripts                        Place __init__.py in Scripts/ instead of the mod root
  default_author                         Author written to modinfo when --author is omitted`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved settings record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := settings.Load()

		if settingsJSON {
			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		for _, key := range settingKeys {
			value, _ := getSetting(s, key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
		}
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a settings value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := getSetting(settings.Load(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a settings value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		s := settings.Load()
		if err := setSetting(&s, key, value); err != nil {
			return err
		}
		if err := settings.Save(s); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), settings.FilePath())
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all settings to their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := settings.Save(settings.Default()); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults.")
		return nil
	},
}

// settingKeys lists every key in display order.
var settingKeys = []string{
	"mods_root",
	"naming_rules.no_spaces_folders",
	"naming_rules.no_spaces_files",
	"naming_rules.convert_spaces_underscores",
	"always_backup",
	"show_open_location_prompt",
	"init_in_scripts",
	"default_author",
}

func getSetting(s settings.Settings, key string) (string, error) {
	switch key {
	case "mods_root":
		return s.ModsRoot, nil
	case "naming_rules.no_spaces_folders":
		return strconv.FormatBool(s.NamingRules.NoSpacesFolders), nil
	case "naming_rules.no_spaces_files":
		return strconv.FormatBool(s.NamingRules.NoSpacesFiles), nil
	case "naming_rules.convert_spaces_underscores":
		return strconv.FormatBool(s.NamingRules.SpacesToUnderscores), nil
	case "always_backup":
		return strconv.FormatBool(s.AlwaysBackup), nil
	case "show_open_location_prompt":
		return strconv.FormatBool(s.ShowOpenPrompt), nil
	case "init_in_scripts":
		return strconv.FormatBool(s.InitInScripts), nil
	case "default_author":
		return s.DefaultAuthor, nil
	default:
		return "", fmt.Errorf("unknown settings key %q", key)
	}
}

func setSetting(s *settings.Settings, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("value for %s must be true or false, got %q", key, value)
		}
		return b, nil
	}

	switch key {
	case "mods_root":
		s.ModsRoot = value
	case "naming_rules.no_spaces_folders":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.NamingRules.NoSpacesFolders = b
	case "naming_rules.no_spaces_files":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.NamingRules.NoSpacesFiles = b
	case "naming_rules.convert_spaces_underscores":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.NamingRules.SpacesToUnderscores = b
	case "always_backup":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.AlwaysBackup = b
	case "show_open_location_prompt":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.ShowOpenPrompt = b
	case "init_in_scripts":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.InitInScripts = b
	case "default_author":
		s.DefaultAuthor = value
	default:
		return fmt.Errorf("unknown settings key %q", key)
	}
	return nil
}
