package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldrs/weld/welderrs"
)

func TestShimEmitterTranspilesTypeScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shim.ts")
	require.NoError(t, os.WriteFile(path, []byte("const greet = (name: string): string => `hi ${name}`;\nexport { greet };\n"), 0o644))

	out, err := ShimEmitter(path)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.NotContains(t, out, ": string", "type annotations must be stripped by transpilation")
}

func TestShimEmitterMissingFile(t *testing.T) {
	_, err := ShimEmitter(filepath.Join(t.TempDir(), "does-not-exist.ts"))
	var missing *welderrs.MissingShim
	assert.ErrorAs(t, err, &missing)
}

func TestShimEmitterSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ts")
	require.NoError(t, os.WriteFile(path, []byte("const x: = ;;;\n"), 0o644))

	_, err := ShimEmitter(path)
	var transpile *welderrs.TranspileError
	assert.ErrorAs(t, err, &transpile)
}
