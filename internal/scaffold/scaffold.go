package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/modsmith-labs/modsmith/internal/backup"
	"github.com/modsmith-labs/modsmith/internal/platform"
)

// Stage names the phases a generation moves through. Failure at any stage
// leaves already-written files in place; the operation is user-visible and
// re-runnable, not transactional.
type Stage string

const (
	StageValidating Stage = "validating"
	StageBackingUp  Stage = "backing-up"
	StageWriting    Stage = "writing"
)

// StageError reports which stage a generation failed in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// FileTypes selects which template artifacts a request wants.
type FileTypes struct {
	Script  bool
	Tuning  bool
	Package bool
}

// AllFileTypes returns the full selection.
func AllFileTypes() FileTypes {
	return FileTypes{Script: true, Tuning: true, Package: true}
}

// Names lists the selected types for display and logging.
func (ft FileTypes) Names() []string {
	var names []string
	if ft.Script {
		names = append(names, "script")
	}
	if ft.Tuning {
		names = append(names, "tuning")
	}
	if ft.Package {
		names = append(names, "package")
	}
	return names
}

// Request is one generation invocation: resolved names plus the selected
// file types. Names must already have the naming rules applied.
type Request struct {
	FolderName string
	FileName   string
	Types      FileTypes
	Author     string
	Version    string
}

// Options carries the settings the generator needs.
type Options struct {
	ModsRoot      string
	AlwaysBackup  bool
	InitInScripts bool
}

// Result holds the outcome of a successful generation.
type Result struct {
	ModDir    string   // absolute path of the generated folder
	Files     []string // created files, relative to ModDir, in write order
	BackupDir string   // non-empty when a pre-write snapshot was taken
}

// ModData holds the template variables available to the artifact templates.
type ModData struct {
	Name    string // resolved file name, used as the mod's display name
	Author  string
	Version string // normalized semver
	Year    int
}

// NewModData derives template data from a request, normalizing the mod
// version through semver (leading "v" and short forms like "1.0" accepted).
func NewModData(req Request) (*ModData, error) {
	author := req.Author
	if author == "" {
		author = "YourNameHere"
	}

	version := req.Version
	if version == "" {
		version = "1.0"
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing mod version %q: %w", version, err)
	}

	return &ModData{
		Name:    req.FileName,
		Author:  author,
		Version: v.String(),
		Year:    time.Now().Year(),
	}, nil
}

// Generate produces the mod folder on disk: <root>/<folder>/ with modinfo.py,
// an __init__.py (in Scripts/ or the mod root per opts), and one artifact per
// selected type. When the target folder already exists and backups are
// enabled, its contents are snapshotted before anything is written;
// with backups disabled, existing files are overwritten in place.
func Generate(req Request, opts Options) (*Result, error) {
	// Validating.
	data, err := validate(req, opts)
	if err != nil {
		return nil, &StageError{Stage: StageValidating, Err: err}
	}

	modDir := filepath.Join(opts.ModsRoot, req.FolderName)
	result := &Result{ModDir: modDir}

	// BackingUp.
	if opts.AlwaysBackup {
		if _, statErr := os.Stat(modDir); statErr == nil {
			backupDir, bakErr := backup.Snapshot(modDir)
			if bakErr != nil {
				return nil, &StageError{Stage: StageBackingUp, Err: bakErr}
			}
			result.BackupDir = backupDir
		}
	}

	// Writing.
	if err := write(req, opts, data, result); err != nil {
		return result, &StageError{Stage: StageWriting, Err: err}
	}

	return result, nil
}

// validate checks the request before any filesystem action.
func validate(req Request, opts Options) (*ModData, error) {
	if strings.TrimSpace(req.FolderName) == "" {
		return nil, fmt.Errorf("no folder name specified")
	}
	if strings.TrimSpace(req.FileName) == "" {
		return nil, fmt.Errorf("no file name specified")
	}
	for _, name := range []string{req.FolderName, req.FileName} {
		// "." and ".." pass filepath.Base unchanged but would resolve the
		// mod directory outside the mods root.
		if name == "." || name == ".." {
			return nil, fmt.Errorf("name %q is not a valid mod name", name)
		}
		if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
			return nil, fmt.Errorf("name %q must not contain path separators", name)
		}
	}
	if opts.ModsRoot == "" {
		return nil, fmt.Errorf("no mods root configured")
	}
	return NewModData(req)
}

func write(req Request, opts Options, data *ModData, result *Result) error {
	modDir := result.ModDir
	if err := os.MkdirAll(modDir, 0755); err != nil {
		return fmt.Errorf("creating mod directory %s: %w", modDir, err)
	}
	// Creation modes are masked by the umask; chmod pins them.
	if err := platform.Chmod(modDir, 0755); err != nil {
		return fmt.Errorf("setting mode on %s: %w", modDir, err)
	}

	emit := func(relPath, templateName string) error {
		if err := renderTemplate(modDir, relPath, templateName, data); err != nil {
			return err
		}
		result.Files = append(result.Files, relPath)
		return nil
	}

	if err := emit("modinfo.py", "modinfo.py.tmpl"); err != nil {
		return err
	}

	initPath := "__init__.py"
	if opts.InitInScripts {
		initPath = filepath.Join("Scripts", "__init__.py")
	}
	if err := emit(initPath, "init.py.tmpl"); err != nil {
		return err
	}

	if req.Types.Script {
		if err := emit(filepath.Join("Scripts", req.FileName+".py"), "script.py.tmpl"); err != nil {
			return err
		}
	}

	if req.Types.Tuning {
		if err := emit(filepath.Join("Tuning", req.FileName+".xml"), "tuning.xml.tmpl"); err != nil {
			return err
		}
	}

	if req.Types.Package {
		// Packages are binary placeholders; an empty file marks the slot.
		relPath := req.FileName + ".package"
		pkgPath := filepath.Join(modDir, relPath)
		if err := os.WriteFile(pkgPath, nil, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", relPath, err)
		}
		if err := platform.Chmod(pkgPath, 0644); err != nil {
			return fmt.Errorf("setting mode on %s: %w", relPath, err)
		}
		result.Files = append(result.Files, relPath)
	}

	return nil
}

// renderTemplate executes an embedded template into modDir/relPath, creating
// intermediate directories as needed.
func renderTemplate(modDir, relPath, templateName string, data *ModData) error {
	tmplBytes, err := scaffoldFS.ReadFile("templates/" + templateName)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", templateName, err)
	}

	tmpl, err := template.New(templateName).Parse(string(tmplBytes))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template %s: %w", templateName, err)
	}

	outPath := filepath.Join(modDir, relPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}
	return platform.Chmod(outPath, 0644)
}
