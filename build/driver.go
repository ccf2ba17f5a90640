// Package build implements the build-time driver that orchestrates a single
// extension's generation run: transpile the shim, pull the module's slice
// out of the inventory, cross-check it against the declared op list,
// generate the declaration file and the registration fragment, and emit
// re-run directives so the host build system caches correctly.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/weldrs/weld/codegen"
	"github.com/weldrs/weld/inventory"
	"github.com/weldrs/weld/welderrs"
)

// DeclGenFunc is the escape hatch an ExtensionBuilder can install in place
// of codegen.DeclEmitter, for callers that need hand-written augmentations
// to the generated declaration surface.
type DeclGenFunc func(view *inventory.ModuleView, moduleDoc string) (string, error)

// ExtensionBuilder configures and runs one extension's generation pass. Zero
// value is not usable; construct with NewExtensionBuilder.
type ExtensionBuilder struct {
	module     string
	specifier  string
	shimPath   string
	entryPoint string
	opNames    []string
	outDir     string
	genDir     string
	moduleDoc  string

	declGen          DeclGenFunc
	includeInventory bool
}

// NewExtensionBuilder starts a builder for the named module. Name must match
// the module field the extension's Ops were registered under.
func NewExtensionBuilder(module string) *ExtensionBuilder {
	return &ExtensionBuilder{module: module, includeInventory: true}
}

// WithSpecifier sets the two-segment "<namespace>:<name>" module specifier.
func (b *ExtensionBuilder) WithSpecifier(specifier string) *ExtensionBuilder {
	b.specifier = specifier
	return b
}

// WithShim sets the path to the handwritten script shim.
func (b *ExtensionBuilder) WithShim(path string) *ExtensionBuilder {
	b.shimPath = path
	return b
}

// WithEntryPoint sets the ESM entry point path recorded in the registration
// fragment.
func (b *ExtensionBuilder) WithEntryPoint(path string) *ExtensionBuilder {
	b.entryPoint = path
	return b
}

// WithOps sets the explicit list of op source names this extension expects
// to find in the inventory. Build cross-checks this list against the
// inventory and fails on any mismatch.
func (b *ExtensionBuilder) WithOps(names ...string) *ExtensionBuilder {
	b.opNames = append(b.opNames, names...)
	return b
}

// WithOutDir overrides the declaration-file output directory. When unset,
// Build falls back to the WELD_OUT_DIR environment variable, then to the
// current directory.
func (b *ExtensionBuilder) WithOutDir(dir string) *ExtensionBuilder {
	b.outDir = dir
	return b
}

// WithGenDir overrides the registration-fragment output directory. When
// unset, Build falls back to WELD_GEN_DIR, then to the resolved out
// directory.
func (b *ExtensionBuilder) WithGenDir(dir string) *ExtensionBuilder {
	b.genDir = dir
	return b
}

// WithModuleDoc sets the documentation block written at the top of the
// generated declaration file, under the banner.
func (b *ExtensionBuilder) WithModuleDoc(doc string) *ExtensionBuilder {
	b.moduleDoc = doc
	return b
}

// WithDeclGen installs a custom declaration generator in place of
// codegen.DeclEmitter, for hand-written augmentations to the generated
// surface.
func (b *ExtensionBuilder) WithDeclGen(fn DeclGenFunc) *ExtensionBuilder {
	b.declGen = fn
	return b
}

// IncludeInventoryTypes controls whether the Records/Tags reachable from
// this module's Ops are emitted in the declaration file at all. True by
// default. An extension that hand-rolls its own type declarations
// elsewhere can set this false to emit function signatures only.
func (b *ExtensionBuilder) IncludeInventoryTypes(include bool) *ExtensionBuilder {
	b.includeInventory = include
	return b
}

// Result is everything one Build call produced, for callers (tests, a
// go:generate wrapper) that want the in-memory artifacts rather than just
// the on-disk side effects.
type Result struct {
	DeclPath     string
	RegisterPath string
	Decl         string
	Register     string
	ShimJS       string
}

// Build runs the six-step generation pass described in the package doc. ctx
// is threaded through but not used for cancellation — a build script either
// completes or the host build system kills it — so callers that already
// carry a context (a go:generate-invoked CLI wrapper, for instance) are not
// forced to drop it.
func (b *ExtensionBuilder) Build(ctx context.Context) (*Result, error) {
	_ = ctx
	if err := validateSpecifier(b.specifier); err != nil {
		return nil, fmt.Errorf("build: module %q: %w", b.module, err)
	}
	if b.shimPath == "" {
		return nil, fmt.Errorf("build: module %q: shim path is required", b.module)
	}

	shimJS, err := codegen.ShimEmitter(b.shimPath)
	if err != nil {
		return nil, err
	}

	snap, err := inventory.Build()
	if err != nil {
		return nil, err
	}
	views, err := inventory.Group(snap)
	if err != nil {
		return nil, err
	}
	view, ok := views[b.module]
	if !ok {
		view = &inventory.ModuleView{Name: b.module}
	}

	if err := b.checkOpList(view); err != nil {
		return nil, err
	}

	if !b.includeInventory {
		view = &inventory.ModuleView{Name: view.Name, Ops: view.Ops}
	}

	declGen := b.declGen
	if declGen == nil {
		declGen = codegen.DeclEmitter
	}
	decl, err := declGen(view, b.moduleDoc)
	if err != nil {
		return nil, err
	}

	register, err := codegen.RegisterEmitter(view, b.specifier, b.entryPoint, shimJS)
	if err != nil {
		return nil, err
	}

	outDir := resolveDir(b.outDir, "WELD_OUT_DIR", ".")
	genDir := resolveDir(b.genDir, "WELD_GEN_DIR", outDir)

	declPath := filepath.Join(outDir, specifierFileName(b.specifier))
	registerPath := filepath.Join(genDir, b.module+"_extension.rs")

	if err := writeFile(declPath, decl); err != nil {
		return nil, err
	}
	if err := writeFile(registerPath, register); err != nil {
		return nil, err
	}

	fmt.Fprintf(os.Stderr, "weld[%s]: generated %s and %s\n", inventory.BuildID(), declPath, registerPath)
	b.emitRerunDirectives()

	return &Result{
		DeclPath:     declPath,
		RegisterPath: registerPath,
		Decl:         decl,
		Register:     register,
		ShimJS:       shimJS,
	}, nil
}

// checkOpList cross-checks the builder's declared op-name list against what
// the inventory actually holds for this module; any mismatch is fatal.
func (b *ExtensionBuilder) checkOpList(view *inventory.ModuleView) error {
	if len(b.opNames) == 0 {
		return nil
	}
	declared := make(map[string]bool, len(b.opNames))
	for _, n := range b.opNames {
		declared[n] = true
	}
	present := make(map[string]bool, len(view.Ops))
	for _, o := range view.Ops {
		present[o.SourceName] = true
	}

	var missing, extra []string
	for n := range declared {
		if !present[n] {
			missing = append(missing, n)
		}
	}
	for n := range present {
		if !declared[n] {
			extra = append(extra, n)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return &welderrs.InventoryMismatch{Module: b.module, Missing: missing, Extra: extra}
}

// emitRerunDirectives writes cargo:rerun-if-changed lines for every file
// this build consumed, so the host build system caches correctly on source
// changes.
func (b *ExtensionBuilder) emitRerunDirectives() {
	fmt.Fprintf(os.Stdout, "cargo:rerun-if-changed=%s\n", b.shimPath)
	fmt.Fprintf(os.Stdout, "cargo:rerun-if-env-changed=WELD_OUT_DIR\n")
	fmt.Fprintf(os.Stdout, "cargo:rerun-if-env-changed=WELD_GEN_DIR\n")
}

// validateSpecifier enforces the two-segment "<namespace>:<name>" grammar:
// exactly one colon, both segments lowercase alphanumeric plus underscore.
func validateSpecifier(specifier string) error {
	parts := splitOnce(specifier, ':')
	if parts == nil {
		return fmt.Errorf("specifier %q must be exactly one colon-separated pair, e.g. \"runtime:fs\"", specifier)
	}
	for _, part := range parts {
		if part == "" || !isLowerAlnumUnderscore(part) {
			return fmt.Errorf("specifier %q: segments must be non-empty lowercase alphanumeric plus underscore", specifier)
		}
	}
	return nil
}

func splitOnce(s string, sep byte) []string {
	idx := -1
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if idx != -1 {
				return nil // more than one separator
			}
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}
	return []string{s[:idx], s[idx+1:]}
}

func isLowerAlnumUnderscore(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

func resolveDir(explicit, envVar, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &welderrs.IOError{Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &welderrs.IOError{Path: path, Err: err}
	}
	return nil
}

// specifierFileName derives "<namespace>.<name>.d.ts" from a
// "<namespace>:<name>" specifier.
func specifierFileName(specifier string) string {
	out := make([]byte, len(specifier))
	for i := 0; i < len(specifier); i++ {
		if specifier[i] == ':' {
			out[i] = '.'
			continue
		}
		out[i] = specifier[i]
	}
	return string(out) + ".d.ts"
}
