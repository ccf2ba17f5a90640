package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldrs/weld/ir"
)

func TestBuildSortsByIndependentOfRegistrationOrder(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	RegisterOp(func() (ir.Op, error) {
		return ir.Op{SourceName: "op_fs_write_text", Module: "fs", SurfaceName: "writeText"}, nil
	})
	RegisterOp(func() (ir.Op, error) {
		return ir.Op{SourceName: "op_fs_read_text", Module: "fs", SurfaceName: "readText"}, nil
	})

	snap, err := Build()
	require.NoError(t, err)
	require.Len(t, snap.Ops, 2)
	assert.Equal(t, "op_fs_read_text", snap.Ops[0].SourceName)
	assert.Equal(t, "op_fs_write_text", snap.Ops[1].SourceName)
}

func TestBuildPropagatesThunkError(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	boom := assert.AnError
	RegisterRecord(func() (ir.Record, error) { return ir.Record{}, boom })

	_, err := Build()
	assert.ErrorIs(t, err, boom)
}

func TestResetClearsInventory(t *testing.T) {
	Reset()
	RegisterTag(func() (ir.Tag, error) { return ir.Tag{SourceName: "Kind"}, nil })
	Reset()

	snap, err := Build()
	require.NoError(t, err)
	assert.Empty(t, snap.Tags)
}
