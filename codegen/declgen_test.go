package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldrs/weld/inventory"
	"github.com/weldrs/weld/ir"
)

func TestDeclEmitterBannerAndBlankLineSpacing(t *testing.T) {
	view := &inventory.ModuleView{
		Name: "fs",
		Records: []ir.Record{
			{SourceName: "FileStat", SurfaceName: "FileStat", Fields: []ir.RecordField{
				{SourceName: "size", SurfaceName: "size", Type: ir.Primitive{Kind: ir.U64}},
			}},
		},
	}

	out, err := DeclEmitter(view, "")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.True(t, len(lines) >= 3)
	assert.Equal(t, Banner, lines[0])
	assert.Equal(t, "", lines[1], "exactly one blank line must separate the banner from the first block")
	assert.Equal(t, "export interface FileStat {", lines[2])
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestDeclEmitterModuleDocIsFirstBlock(t *testing.T) {
	view := &inventory.ModuleView{Name: "fs"}
	out, err := DeclEmitter(view, "Filesystem operations.")
	require.NoError(t, err)
	assert.Contains(t, out, Banner+"\n\n/** Filesystem operations. */\n")
}

func TestDeclEmitterSortsDeclarationsBySurfaceName(t *testing.T) {
	view := &inventory.ModuleView{
		Name: "fs",
		Records: []ir.Record{
			{SourceName: "Zeta", SurfaceName: "Zeta"},
			{SourceName: "Alpha", SurfaceName: "Alpha"},
		},
	}
	out, err := DeclEmitter(view, "")
	require.NoError(t, err)
	alphaIdx := strings.Index(out, "Alpha")
	zetaIdx := strings.Index(out, "Zeta")
	assert.True(t, alphaIdx < zetaIdx)
}

func TestDeclEmitterPreservesFieldDeclarationOrder(t *testing.T) {
	view := &inventory.ModuleView{
		Name: "fs",
		Records: []ir.Record{
			{SourceName: "FileStat", SurfaceName: "FileStat", Fields: []ir.RecordField{
				{SourceName: "is_file", SurfaceName: "isFile", Type: ir.Primitive{Kind: ir.Bool}},
				{SourceName: "size", SurfaceName: "size", Type: ir.Primitive{Kind: ir.U64}},
				{SourceName: "modified", SurfaceName: "modified", Type: ir.Option{Elem: ir.Primitive{Kind: ir.U64}}, Optional: true},
			}},
		},
	}
	out, err := DeclEmitter(view, "")
	require.NoError(t, err)
	isFileIdx := strings.Index(out, "isFile")
	sizeIdx := strings.Index(out, "size:")
	modifiedIdx := strings.Index(out, "modified")
	assert.True(t, isFileIdx < sizeIdx)
	assert.True(t, sizeIdx < modifiedIdx)
	assert.Contains(t, out, "modified?: bigint;")
}

func TestDeclEmitterUnionForPayloadlessTag(t *testing.T) {
	view := &inventory.ModuleView{
		Name: "fs",
		Tags: []ir.Tag{
			{SourceName: "WatchEventKind", SurfaceName: "WatchEventKind", Variants: []ir.TagVariant{
				{Name: "Created"}, {Name: "Removed"},
			}},
		},
	}
	out, err := DeclEmitter(view, "")
	require.NoError(t, err)
	assert.Contains(t, out, `export type WatchEventKind = "Created" | "Removed";`)
}

func TestDeclEmitterUnionForTaggedVariant(t *testing.T) {
	view := &inventory.ModuleView{
		Name: "fs",
		Tags: []ir.Tag{
			{SourceName: "WatchEvent", SurfaceName: "WatchEvent", Variants: []ir.TagVariant{
				{Name: "Created", PayloadType: ir.Primitive{Kind: ir.OwnedString}},
			}},
		},
	}
	out, err := DeclEmitter(view, "")
	require.NoError(t, err)
	assert.Contains(t, out, `{ type: "Created"; value: string }`)
}

func TestDeclEmitterFunctionSignature(t *testing.T) {
	view := &inventory.ModuleView{
		Name: "fs",
		Ops: []ir.Op{
			{SourceName: "op_fs_read_text", SurfaceName: "readText", Params: []ir.Parameter{
				{SourceName: "path", SurfaceName: "path", Type: ir.Primitive{Kind: ir.OwnedString}},
			}, Returns: ir.Primitive{Kind: ir.OwnedString}},
		},
	}
	out, err := DeclEmitter(view, "")
	require.NoError(t, err)
	assert.Contains(t, out, "export function readText(path: string): string;")
}

func TestDeclEmitterRendersTagKeyedMapField(t *testing.T) {
	view := &inventory.ModuleView{
		Name: "crypto",
		Tags: []ir.Tag{
			{SourceName: "HashAlgorithm", SurfaceName: "HashAlgorithm", Variants: []ir.TagVariant{
				{Name: "Sha256"}, {Name: "Blake3"},
			}},
		},
		Records: []ir.Record{
			{SourceName: "Digests", SurfaceName: "Digests", Fields: []ir.RecordField{
				{SourceName: "by_algorithm", SurfaceName: "byAlgorithm", Type: ir.KeyedMap{
					Key:   ir.NamedRecord{Name: "HashAlgorithm"},
					Value: ir.Primitive{Kind: ir.OwnedString},
				}},
			}},
		},
	}

	out, err := DeclEmitter(view, "")
	require.NoError(t, err, "an enum-keyed map must render as a string union index, not fail stringifiability")
	assert.Contains(t, out, "byAlgorithm: Record<HashAlgorithm, string>;")
}

func TestDeclEmitterPropagatesTypeMappingError(t *testing.T) {
	view := &inventory.ModuleView{
		Name: "fs",
		Ops: []ir.Op{
			{SourceName: "op_fs_bad", SurfaceName: "bad", Returns: ir.ContextHandle{}},
		},
	}
	_, err := DeclEmitter(view, "")
	require.Error(t, err)
}

func TestFormatDeclIsIdempotent(t *testing.T) {
	raw := "line one\nline two\r\n\n\n"
	once := FormatDecl(raw)
	twice := FormatDecl(once)
	assert.Equal(t, once, twice)
	assert.True(t, strings.HasSuffix(once, "\n"))
	assert.False(t, strings.HasSuffix(once, "\n\n"))
	assert.NotContains(t, once, "\r")
}
