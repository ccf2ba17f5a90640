package weld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecordComputesCamelFieldNames(t *testing.T) {
	r, err := buildRecord(RecordDesc{
		Name: "FileStat",
		Fields: []FieldDesc{
			{Name: "is_file", Type: "bool"},
			{Name: "modified", Type: "Option<u64>"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "FileStat", r.SurfaceName)
	require.Len(t, r.Fields, 2)
	assert.Equal(t, "isFile", r.Fields[0].SurfaceName)
	assert.Equal(t, "modified", r.Fields[1].SurfaceName)
	assert.True(t, r.Fields[1].Optional)
}

func TestBuildRecordPreservesDeclaredFieldOrder(t *testing.T) {
	r, err := buildRecord(RecordDesc{
		Name: "FileStat",
		Fields: []FieldDesc{
			{Name: "is_file", Type: "bool"},
			{Name: "is_directory", Type: "bool"},
			{Name: "size", Type: "u64"},
			{Name: "modified", Type: "Option<u64>"},
		},
	})
	require.NoError(t, err)
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.SourceName
	}
	assert.Equal(t, []string{"is_file", "is_directory", "size", "modified"}, names)
}

func TestBuildRecordPropagatesParseError(t *testing.T) {
	_, err := buildRecord(RecordDesc{
		Name:   "Bad",
		Fields: []FieldDesc{{Name: "f", Type: "fn(u32)"}},
	})
	require.Error(t, err)
}

func TestBuildRecordDefaultSurfaceNameIsPascalCase(t *testing.T) {
	r, err := buildRecord(RecordDesc{Name: "watch_event", Fields: nil})
	require.NoError(t, err)
	assert.Equal(t, "WatchEvent", r.SurfaceName)
	assert.Empty(t, r.Fields)
}
