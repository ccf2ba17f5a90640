package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldrs/weld/inventory"
	"github.com/weldrs/weld/ir"
	"github.com/weldrs/weld/welderrs"
)

func registerFsReadText(t *testing.T) {
	t.Cleanup(inventory.Reset)
	inventory.Reset()
	inventory.RegisterOp(func() (ir.Op, error) {
		return ir.Op{
			SourceName:  "op_fs_read_text",
			Module:      "fs",
			SurfaceName: "readText",
			Params: []ir.Parameter{
				{SourceName: "path", SurfaceName: "path", Type: ir.Primitive{Kind: ir.OwnedString}},
			},
			Returns: ir.Primitive{Kind: ir.OwnedString},
		}, nil
	})
}

func writeShim(t *testing.T, dir string) string {
	path := filepath.Join(dir, "shim.ts")
	require.NoError(t, os.WriteFile(path, []byte("export function readText(path: string): Promise<string> { return Promise.resolve(path); }\n"), 0o644))
	return path
}

func TestBuildProducesDeclAndRegisterFiles(t *testing.T) {
	registerFsReadText(t)
	dir := t.TempDir()
	shim := writeShim(t, dir)

	res, err := NewExtensionBuilder("fs").
		WithSpecifier("weld:fs").
		WithShim(shim).
		WithEntryPoint("./index.js").
		WithOutDir(dir).
		Build(context.Background())

	require.NoError(t, err)
	assert.FileExists(t, res.DeclPath)
	assert.FileExists(t, res.RegisterPath)
	assert.Contains(t, res.Decl, "export function readText")
	assert.Contains(t, res.Register, `specifier = "weld:fs"`)
}

func TestBuildRejectsInvalidSpecifier(t *testing.T) {
	registerFsReadText(t)
	dir := t.TempDir()
	shim := writeShim(t, dir)

	_, err := NewExtensionBuilder("fs").
		WithSpecifier("bad specifier").
		WithShim(shim).
		Build(context.Background())
	require.Error(t, err)
}

func TestBuildRequiresShimPath(t *testing.T) {
	registerFsReadText(t)
	_, err := NewExtensionBuilder("fs").WithSpecifier("weld:fs").Build(context.Background())
	require.Error(t, err)
}

func TestBuildDetectsInventoryMismatch(t *testing.T) {
	registerFsReadText(t)
	dir := t.TempDir()
	shim := writeShim(t, dir)

	_, err := NewExtensionBuilder("fs").
		WithSpecifier("weld:fs").
		WithShim(shim).
		WithOps("op_fs_read_text", "op_fs_write_text").
		WithOutDir(dir).
		Build(context.Background())

	var mismatch *welderrs.InventoryMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"op_fs_write_text"}, mismatch.Missing)
}

func TestBuildOutDirFallsBackToEnvVar(t *testing.T) {
	registerFsReadText(t)
	dir := t.TempDir()
	shim := writeShim(t, dir)

	t.Setenv("WELD_OUT_DIR", dir)
	res, err := NewExtensionBuilder("fs").
		WithSpecifier("weld:fs").
		WithShim(shim).
		Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "weld.fs.d.ts"), res.DeclPath)
}

func TestBuildGenDirFallsBackToOutDir(t *testing.T) {
	registerFsReadText(t)
	dir := t.TempDir()
	shim := writeShim(t, dir)

	res, err := NewExtensionBuilder("fs").
		WithSpecifier("weld:fs").
		WithShim(shim).
		WithOutDir(dir).
		Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(res.DeclPath), filepath.Dir(res.RegisterPath))
}

func TestBuildIncludeInventoryTypesFalseOmitsRecords(t *testing.T) {
	t.Cleanup(inventory.Reset)
	inventory.Reset()
	inventory.RegisterOp(func() (ir.Op, error) {
		return ir.Op{
			SourceName:  "op_fs_stat",
			Module:      "fs",
			SurfaceName: "stat",
			Returns:     ir.NamedRecord{Name: "FileStat"},
		}, nil
	})
	inventory.RegisterRecord(func() (ir.Record, error) {
		return ir.Record{SourceName: "FileStat", SurfaceName: "FileStat"}, nil
	})

	dir := t.TempDir()
	shim := writeShim(t, dir)

	res, err := NewExtensionBuilder("fs").
		WithSpecifier("weld:fs").
		WithShim(shim).
		WithOutDir(dir).
		IncludeInventoryTypes(false).
		Build(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, res.Decl, "export interface FileStat")
}

func TestValidateSpecifier(t *testing.T) {
	require.NoError(t, validateSpecifier("weld:fs"))
	require.Error(t, validateSpecifier("weldfs"))
	require.Error(t, validateSpecifier("weld:fs:extra"))
	require.Error(t, validateSpecifier("Weld:fs"))
	require.Error(t, validateSpecifier(":fs"))
}

func TestSpecifierFileName(t *testing.T) {
	assert.Equal(t, "weld.fs.d.ts", specifierFileName("weld:fs"))
}
