// Package naming applies the user-configured naming rules to folder and file
// names before anything touches the filesystem. Rules are deterministic string
// transforms; space handling runs first on each name independently, and the
// sync rule runs last so the file name inherits the already-resolved folder
// name.
package naming

import (
	"fmt"
	"strings"
)

// Rules holds the persisted naming-rule toggles.
type Rules struct {
	NoSpacesFolders     bool `mapstructure:"no_spaces_folders" json:"no_spaces_folders"`
	NoSpacesFiles       bool `mapstructure:"no_spaces_files" json:"no_spaces_files"`
	SpacesToUnderscores bool `mapstructure:"convert_spaces_underscores" json:"convert_spaces_underscores"`
}

// Resolved is the outcome of applying rules to a raw name pair.
type Resolved struct {
	FolderName string
	FileName   string
}

// Apply resolves a raw folder/file name pair. When sync is true the resolved
// file name is the resolved folder name regardless of the raw file name.
// A name that is empty (or collapses to empty) is an input error; no
// filesystem action should be attempted for it.
func Apply(r Rules, folderName, fileName string, sync bool) (Resolved, error) {
	folder := transform(r, strings.TrimSpace(folderName), true)
	if folder == "" {
		return Resolved{}, fmt.Errorf("folder name %q resolves to an empty name", folderName)
	}

	if sync {
		return Resolved{FolderName: folder, FileName: folder}, nil
	}

	file := transform(r, strings.TrimSpace(fileName), false)
	if file == "" {
		return Resolved{}, fmt.Errorf("file name %q resolves to an empty name", fileName)
	}

	return Resolved{FolderName: folder, FileName: file}, nil
}

// transform applies the space rules to a single name. Strip runs before the
// underscore conversion, so with both enabled there are no spaces left for
// the underscore rule to touch.
func transform(r Rules, name string, isFolder bool) string {
	if r.NoSpacesFolders && isFolder {
		name = strings.ReplaceAll(name, " ", "")
	}
	if r.NoSpacesFiles && !isFolder {
		name = strings.ReplaceAll(name, " ", "")
	}
	if r.SpacesToUnderscores {
		name = strings.ReplaceAll(name, " ", "_")
	}
	return name
}
