package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project descriptor that enables the whole-project
// build strategy.
const ManifestName = "Cargo.toml"

// Manifest is a decoded project descriptor. Root is the build working
// directory for every diagnostic produced under the manifest strategy.
type Manifest struct {
	Path string
	Root string

	Package    PackageMeta
	HasPackage bool
	Workspace  bool
	Members    []string
}

// PackageMeta mirrors the informational fields of the [package] table.
type PackageMeta struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

type manifestDoc struct {
	Package   PackageMeta   `toml:"package"`
	Workspace workspaceMeta `toml:"workspace"`
}

type workspaceMeta struct {
	Members []string `toml:"members"`
}

// FindManifest reports the closest manifest at or above startDir.
// Existence is all the build strategy needs; decoding is LoadManifest's
// concern and failure to decode does not disable the strategy.
func FindManifest(startDir string) (string, bool, error) {
	return FindUpward(startDir, ManifestName)
}

// LoadManifest decodes a manifest for informational use. A workspace-only
// manifest (no [package] table) is valid; broken TOML is not.
func LoadManifest(path string) (*Manifest, error) {
	var doc manifestDoc
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	m := &Manifest{
		Path:       path,
		Root:       filepath.Dir(path),
		Package:    doc.Package,
		HasPackage: meta.IsDefined("package"),
		Workspace:  meta.IsDefined("workspace"),
		Members:    doc.Workspace.Members,
	}
	if m.HasPackage && strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	return m, nil
}
