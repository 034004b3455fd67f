package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, problems := LoadFile(path)
	assert.Empty(t, problems)
	assert.Equal(t, Default(), s)
}

func TestLoadFilePartial(t *testing.T) {
	path := writeSettings(t, `{
  "mods_root": "/tmp/mods",
  "naming_rules": {"convert_spaces_underscores": true}
}`)

	s, problems := LoadFile(path)
	require.Empty(t, problems)

	assert.Equal(t, "/tmp/mods", s.ModsRoot)
	assert.True(t, s.NamingRules.SpacesToUnderscores)
	// Absent keys keep their defaults.
	assert.False(t, s.NamingRules.NoSpacesFolders)
	assert.True(t, s.AlwaysBackup)
	assert.True(t, s.ShowOpenPrompt)
	assert.True(t, s.InitInScripts)
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeSettings(t, `{"mods_root": "/tmp/mods",`)

	s, problems := LoadFile(path)
	assert.NotEmpty(t, problems)
	assert.Equal(t, Default(), s, "corrupt file reverts the whole record")
}

func TestLoadFileWrongTypes(t *testing.T) {
	path := writeSettings(t, `{"always_backup": "yes", "mods_root": 7}`)

	s, problems := LoadFile(path)
	assert.NotEmpty(t, problems)
	assert.Equal(t, Default(), s, "schema-invalid file reverts the whole record")
}

func TestLoadFileEnvOverride(t *testing.T) {
	path := writeSettings(t, `{"default_author": "FromFile"}`)
	t.Setenv("MODSMITH_DEFAULT_AUTHOR", "FromEnv")

	s, problems := LoadFile(path)
	require.Empty(t, problems)
	assert.Equal(t, "FromEnv", s.DefaultAuthor)
}

func TestSaveFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	bak := filepath.Join(dir, "settings.json.bak")

	s := Default()
	s.ModsRoot = "/tmp/mods"
	s.NamingRules.NoSpacesFiles = true
	s.AlwaysBackup = false
	s.DefaultAuthor = "Tester"

	require.NoError(t, SaveFile(path, bak, s))

	got, problems := LoadFile(path)
	require.Empty(t, problems)
	assert.Equal(t, s, got)

	// First save has nothing to back up.
	_, err := os.Stat(bak)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveFileBacksUpPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	bak := filepath.Join(dir, "settings.json.bak")

	first := Default()
	first.DefaultAuthor = "First"
	require.NoError(t, SaveFile(path, bak, first))

	second := Default()
	second.DefaultAuthor = "Second"
	require.NoError(t, SaveFile(path, bak, second))

	prev, err := os.ReadFile(bak)
	require.NoError(t, err)
	assert.Contains(t, string(prev), "First")

	got, problems := LoadFile(path)
	require.Empty(t, problems)
	assert.Equal(t, "Second", got.DefaultAuthor)
}

func TestValidate(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		result, err := Validate([]byte(`{"mods_root": "/x", "always_backup": true}`))
		require.NoError(t, err)
		assert.True(t, result.Valid)
	})

	t.Run("type violation", func(t *testing.T) {
		result, err := Validate([]byte(`{"always_backup": 1}`))
		require.NoError(t, err)
		require.False(t, result.Valid)
		require.NotEmpty(t, result.Issues)
		assert.Equal(t, "/always_backup", result.Issues[0].Path)
	})

	t.Run("unknown naming rule", func(t *testing.T) {
		result, err := Validate([]byte(`{"naming_rules": {"shout": true}}`))
		require.NoError(t, err)
		assert.False(t, result.Valid)
	})

	t.Run("unparseable", func(t *testing.T) {
		_, err := Validate([]byte(`{`))
		require.Error(t, err)
	})
}
