package build

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkspaceExtension describes one extension entry in a weld.workspace.yaml
// manifest.
type WorkspaceExtension struct {
	Module     string `yaml:"module"`
	Specifier  string `yaml:"specifier"`
	Shim       string `yaml:"shim"`
	EntryPoint string `yaml:"entry_point"`
	OutDir     string `yaml:"out_dir,omitempty"`
	GenDir     string `yaml:"gen_dir,omitempty"`
}

// WorkspaceManifest lists every extension in a repository that builds more
// than one, so a single build script can enumerate them without a
// hand-maintained Go slice.
type WorkspaceManifest struct {
	Extensions []WorkspaceExtension `yaml:"extensions"`
}

// LoadWorkspaceManifest reads and parses a weld.workspace.yaml file at path.
func LoadWorkspaceManifest(path string) (*WorkspaceManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load workspace manifest: %w", err)
	}
	var m WorkspaceManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse workspace manifest %s: %w", path, err)
	}
	return &m, nil
}

// Builder returns an ExtensionBuilder pre-configured from this manifest
// entry. Callers still supply the op-name list via WithOps before calling
// Build, since the manifest only carries build-location metadata.
func (e WorkspaceExtension) Builder() *ExtensionBuilder {
	b := NewExtensionBuilder(e.Module).
		WithSpecifier(e.Specifier).
		WithShim(e.Shim).
		WithEntryPoint(e.EntryPoint)
	if e.OutDir != "" {
		b = b.WithOutDir(e.OutDir)
	}
	if e.GenDir != "" {
		b = b.WithGenDir(e.GenDir)
	}
	return b
}
