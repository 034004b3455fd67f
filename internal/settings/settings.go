package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/modsmith-labs/modsmith/internal/branding"
	"github.com/modsmith-labs/modsmith/internal/naming"
)

// Settings is the persisted user preference record controlling generation
// behavior. Every field has a documented default; loading never fails.
type Settings struct {
	ModsRoot       string       `mapstructure:"mods_root" json:"mods_root"`
	NamingRules    naming.Rules `mapstructure:"naming_rules" json:"naming_rules"`
	AlwaysBackup   bool         `mapstructure:"always_backup" json:"always_backup"`
	ShowOpenPrompt bool         `mapstructure:"show_open_location_prompt" json:"show_open_location_prompt"`
	InitInScripts  bool         `mapstructure:"init_in_scripts" json:"init_in_scripts"`
	DefaultAuthor  string       `mapstructure:"default_author" json:"default_author"`
}

// Default returns the documented default record.
func Default() Settings {
	return Settings{
		ModsRoot:       DefaultModsRoot(),
		NamingRules:    naming.Rules{},
		AlwaysBackup:   true,
		ShowOpenPrompt: true,
		InitInScripts:  true,
		DefaultAuthor:  "",
	}
}

// Load reads the settings file at the default location. Absent keys take
// defaults; an absent, malformed, or schema-invalid file yields exactly the
// default record. Load never returns an error by contract.
func Load() Settings {
	s, _ := LoadFile(FilePath())
	return s
}

// LoadFile reads and resolves a settings file. The second return lists
// human-readable problems found with the file (empty when the file is absent
// or clean); regardless of problems the returned record is always usable.
func LoadFile(path string) (Settings, []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fromViper(path, false)
		}
		return Default(), []string{fmt.Sprintf("reading %s: %v", path, err)}
	}

	// A file that fails schema validation counts as corrupt: the whole
	// record reverts to defaults rather than guessing at half-valid input.
	result, err := Validate(data)
	if err != nil {
		return Default(), []string{fmt.Sprintf("parsing %s: %v", path, err)}
	}
	if !result.Valid {
		problems := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			problems = append(problems, msg)
		}
		return Default(), problems
	}

	return fromViper(path, true)
}

// fromViper resolves the record through viper so absent keys fall back to
// per-key defaults and MODSMITH_* environment variables override the file.
func fromViper(path string, readFile bool) (Settings, []string) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if readFile {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Default(), []string{fmt.Sprintf("reading %s: %v", path, err)}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Default(), []string{fmt.Sprintf("decoding %s: %v", path, err)}
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("mods_root", d.ModsRoot)
	v.SetDefault("naming_rules.no_spaces_folders", d.NamingRules.NoSpacesFolders)
	v.SetDefault("naming_rules.no_spaces_files", d.NamingRules.NoSpacesFiles)
	v.SetDefault("naming_rules.convert_spaces_underscores", d.NamingRules.SpacesToUnderscores)
	v.SetDefault("always_backup", d.AlwaysBackup)
	v.SetDefault("show_open_location_prompt", d.ShowOpenPrompt)
	v.SetDefault("init_in_scripts", d.InitInScripts)
	v.SetDefault("default_author", d.DefaultAuthor)
}

// Save writes the record to the default settings location.
func Save(s Settings) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	return SaveFile(FilePath(), BackupPath(), s)
}

// SaveFile serializes the record to path, keeping a copy of the previous file
// at backupPath so a bad save is recoverable.
func SaveFile(path, backupPath string, s Settings) error {
	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(backupPath, prev, 0644); err != nil {
			return fmt.Errorf("backing up previous settings: %w", err)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
