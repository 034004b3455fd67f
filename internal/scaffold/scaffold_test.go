package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		ModsRoot:      t.TempDir(),
		AlwaysBackup:  true,
		InitInScripts: true,
	}
}

func TestGenerateAll(t *testing.T) {
	opts := testOptions(t)
	req := Request{
		FolderName: "MyMod",
		FileName:   "my_mod",
		Types:      AllFileTypes(),
		Author:     "Tester",
		Version:    "2.1",
	}

	result, err := Generate(req, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if result.ModDir != filepath.Join(opts.ModsRoot, "MyMod") {
		t.Errorf("ModDir = %q", result.ModDir)
	}

	wantFiles := []string{
		"modinfo.py",
		filepath.Join("Scripts", "__init__.py"),
		filepath.Join("Scripts", "my_mod.py"),
		filepath.Join("Tuning", "my_mod.xml"),
		"my_mod.package",
	}
	assertFiles(t, result, wantFiles)

	modinfo := readGenerated(t, result.ModDir, "modinfo.py")
	assertContains(t, modinfo, `"Name": "my_mod"`)
	assertContains(t, modinfo, `"Author": "Tester"`)
	assertContains(t, modinfo, `"Version": "2.1.0"`)

	script := readGenerated(t, result.ModDir, filepath.Join("Scripts", "my_mod.py"))
	assertContains(t, script, "my_mod")
	assertContains(t, script, "placeholder script")

	tuning := readGenerated(t, result.ModDir, filepath.Join("Tuning", "my_mod.xml"))
	assertContains(t, tuning, "placeholder tuning")

	pkg := readGenerated(t, result.ModDir, "my_mod.package")
	if pkg != "" {
		t.Errorf("package placeholder should be empty, got %q", pkg)
	}

	if result.BackupDir != "" {
		t.Errorf("no backup expected for a fresh folder, got %q", result.BackupDir)
	}
}

func TestGenerateSubset(t *testing.T) {
	opts := testOptions(t)
	req := Request{
		FolderName: "TuneOnly",
		FileName:   "tune_only",
		Types:      FileTypes{Tuning: true},
	}

	result, err := Generate(req, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	wantFiles := []string{
		"modinfo.py",
		filepath.Join("Scripts", "__init__.py"),
		filepath.Join("Tuning", "tune_only.xml"),
	}
	assertFiles(t, result, wantFiles)

	// Nothing outside the selection exists on disk.
	if _, err := os.Stat(filepath.Join(result.ModDir, "Scripts", "tune_only.py")); !os.IsNotExist(err) {
		t.Error("script artifact should not exist for a tuning-only request")
	}
	if _, err := os.Stat(filepath.Join(result.ModDir, "tune_only.package")); !os.IsNotExist(err) {
		t.Error("package artifact should not exist for a tuning-only request")
	}
}

func TestGenerateNoTypes(t *testing.T) {
	opts := testOptions(t)
	req := Request{FolderName: "Bare", FileName: "bare"}

	result, err := Generate(req, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	wantFiles := []string{"modinfo.py", filepath.Join("Scripts", "__init__.py")}
	assertFiles(t, result, wantFiles)
}

func TestGenerateInitAtRoot(t *testing.T) {
	opts := testOptions(t)
	opts.InitInScripts = false
	req := Request{FolderName: "RootInit", FileName: "root_init"}

	result, err := Generate(req, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertFiles(t, result, []string{"modinfo.py", "__init__.py"})
	if _, err := os.Stat(filepath.Join(result.ModDir, "Scripts")); !os.IsNotExist(err) {
		t.Error("Scripts/ should not exist when init goes to the mod root and no script was requested")
	}
}

func TestRegenerateWithBackup(t *testing.T) {
	opts := testOptions(t)
	req := Request{FolderName: "Again", FileName: "again", Author: "First"}

	if _, err := Generate(req, opts); err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}

	req.Author = "Second"
	result, err := Generate(req, opts)
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}

	if result.BackupDir == "" {
		t.Fatal("expected a backup of the existing folder")
	}
	if result.BackupDir == result.ModDir {
		t.Fatal("backup location must be distinct from the mod folder")
	}

	// Prior contents preserved at the backup location.
	prev := readGenerated(t, result.BackupDir, "modinfo.py")
	assertContains(t, prev, `"Author": "First"`)

	// New contents written to the mod folder.
	current := readGenerated(t, result.ModDir, "modinfo.py")
	assertContains(t, current, `"Author": "Second"`)
}

func TestRegenerateWithoutBackup(t *testing.T) {
	opts := testOptions(t)
	opts.AlwaysBackup = false
	req := Request{FolderName: "NoBak", FileName: "no_bak", Author: "First"}

	if _, err := Generate(req, opts); err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}

	req.Author = "Second"
	result, err := Generate(req, opts)
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}
	if result.BackupDir != "" {
		t.Errorf("no backup expected, got %q", result.BackupDir)
	}

	// Prior contents are simply overwritten.
	current := readGenerated(t, result.ModDir, "modinfo.py")
	assertContains(t, current, `"Author": "Second"`)

	entries, err := os.ReadDir(opts.ModsRoot)
	if err != nil {
		t.Fatalf("reading mods root: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), "_backup_") {
			t.Errorf("unexpected backup directory %s", e.Name())
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	opts := testOptions(t)

	tests := []struct {
		name string
		req  Request
	}{
		{"empty folder name", Request{FolderName: "  ", FileName: "f"}},
		{"empty file name", Request{FolderName: "F", FileName: ""}},
		{"separator in folder name", Request{FolderName: "a/b", FileName: "f"}},
		{"separator in file name", Request{FolderName: "F", FileName: `a\b`}},
		{"dot folder name", Request{FolderName: ".", FileName: "f"}},
		{"dot-dot folder name", Request{FolderName: "..", FileName: "f"}},
		{"dot-dot file name", Request{FolderName: "F", FileName: ".."}},
		{"bad version", Request{FolderName: "F", FileName: "f", Version: "not-a-version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.req, opts)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("expected *StageError, got %T", err)
			}
			if stageErr.Stage != StageValidating {
				t.Errorf("Stage = %q, want %q", stageErr.Stage, StageValidating)
			}
			// Validation failures must not touch the filesystem.
			entries, _ := os.ReadDir(opts.ModsRoot)
			if len(entries) != 0 {
				t.Errorf("mods root should be untouched, found %d entries", len(entries))
			}
			// A name like ".." would otherwise land files beside the root.
			if _, err := os.Stat(filepath.Join(filepath.Dir(opts.ModsRoot), "modinfo.py")); !os.IsNotExist(err) {
				t.Error("nothing may be written outside the mods root")
			}
		})
	}
}

func TestGenerateFileModes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}

	opts := testOptions(t)
	req := Request{FolderName: "Moded", FileName: "moded", Types: FileTypes{Package: true}}

	result, err := Generate(req, opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// Modes are pinned after creation, so the umask must not leak through.
	assertMode(t, result.ModDir, 0755)
	assertMode(t, filepath.Join(result.ModDir, "modinfo.py"), 0644)
	assertMode(t, filepath.Join(result.ModDir, "moded.package"), 0644)
}

func TestGenerateNoModsRoot(t *testing.T) {
	_, err := Generate(Request{FolderName: "F", FileName: "f"}, Options{})
	if err == nil {
		t.Fatal("expected error for missing mods root")
	}
}

func TestNewModData(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		d, err := NewModData(Request{FileName: "thing"})
		if err != nil {
			t.Fatalf("NewModData() error: %v", err)
		}
		if d.Author != "YourNameHere" {
			t.Errorf("Author = %q", d.Author)
		}
		if d.Version != "1.0.0" {
			t.Errorf("Version = %q", d.Version)
		}
		if d.Year == 0 {
			t.Error("Year should not be zero")
		}
	})

	t.Run("v prefix tolerated", func(t *testing.T) {
		d, err := NewModData(Request{FileName: "thing", Version: "v3.2.1"})
		if err != nil {
			t.Fatalf("NewModData() error: %v", err)
		}
		if d.Version != "3.2.1" {
			t.Errorf("Version = %q", d.Version)
		}
	})
}

func TestFileTypesNames(t *testing.T) {
	got := AllFileTypes().Names()
	want := []string{"package", "script", "tuning"}
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if names := (FileTypes{}).Names(); len(names) != 0 {
		t.Errorf("empty selection Names() = %v", names)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func readGenerated(t *testing.T, dir, relPath string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, relPath))
	if err != nil {
		t.Fatalf("reading %s: %v", relPath, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
	for _, f := range expected {
		if _, err := os.Stat(filepath.Join(result.ModDir, f)); err != nil {
			t.Errorf("expected file %s on disk: %v", f, err)
		}
	}
}

func assertMode(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Mode().Perm() != want {
		t.Errorf("%s mode = %v, want %v", path, info.Mode().Perm(), want)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}
