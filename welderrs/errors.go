// Package welderrs defines the closed set of error kinds a Weld generator
// run can fail with. Every kind aborts the build script: none are retried,
// logged-and-swallowed, or best-effort.
package welderrs

import (
	"fmt"

	"github.com/weldrs/weld/ir"
)

// UnsupportedType is returned by rustsyn when a type expression names a
// construct outside the closed recognition table (function pointers, trait
// objects, impl Trait, inferred placeholders, macro-generated types).
type UnsupportedType struct {
	Span  ir.Span
	Token string
}

func (e *UnsupportedType) Error() string {
	return fmt.Sprintf("%s: unsupported type: %q", spanString(e.Span), e.Token)
}

// UnresolvedReference is returned when a NamedRecord or NamedTag appearing
// in some signature does not resolve to a registered Record/Tag of the same
// source name.
type UnresolvedReference struct {
	Span ir.Span
	Name string
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("%s: unresolved type reference: %q is not a registered record or tag", spanString(e.Span), e.Name)
}

// DuplicateSurfaceName is returned when two ops in the same module, or two
// records, would share a surface name.
type DuplicateSurfaceName struct {
	Kind string // "op" or "record"
	Name string
	A, B ir.Span
}

func (e *DuplicateSurfaceName) Error() string {
	return fmt.Sprintf("duplicate %s surface name %q (declared at %s and %s)", e.Kind, e.Name, spanString(e.A), spanString(e.B))
}

// NameCollisionAcrossKinds is returned when a Record and a Tag share one
// source name; they occupy a single namespace.
type NameCollisionAcrossKinds struct {
	Name string
	A, B ir.Span
}

func (e *NameCollisionAcrossKinds) Error() string {
	return fmt.Sprintf("record and tag both named %q (declared at %s and %s)", e.Name, spanString(e.A), spanString(e.B))
}

// UnrepresentableVariant is returned when a Tag variant has a struct-shaped
// or multi-field payload, which the surface language cannot express
// faithfully.
type UnrepresentableVariant struct {
	Tag     string
	Variant string
	Span    ir.Span
}

func (e *UnrepresentableVariant) Error() string {
	return fmt.Sprintf("%s: variant %s::%s has no faithful surface representation (struct-shaped or multi-field payload)", spanString(e.Span), e.Tag, e.Variant)
}

// MissingShim is returned when the handwritten script shim named by an
// ExtensionBuilder cannot be found on disk.
type MissingShim struct {
	Path string
}

func (e *MissingShim) Error() string {
	return fmt.Sprintf("missing script shim: %s", e.Path)
}

// TranspileError is returned when the handwritten script shim fails to
// transpile.
type TranspileError struct {
	Path    string
	Message string
}

func (e *TranspileError) Error() string {
	return fmt.Sprintf("%s: transpile error: %s", e.Path, e.Message)
}

// InventoryMismatch is returned when the build driver's declared op list
// disagrees with what the inventory holds for the module.
type InventoryMismatch struct {
	Module  string
	Missing []string // declared but absent from the inventory
	Extra   []string // present in the inventory but not declared
}

func (e *InventoryMismatch) Error() string {
	return fmt.Sprintf("inventory mismatch for module %q: missing=%v extra=%v", e.Module, e.Missing, e.Extra)
}

// IOError wraps a failure to read a shim or write a generated output.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func spanString(s ir.Span) string {
	if s.File == "" {
		return "<generated>"
	}
	if s.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}
