package weld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weldrs/weld/ir"
	"github.com/weldrs/weld/welderrs"
)

func TestBuildTagPayloadlessVariants(t *testing.T) {
	tag, err := buildTag(TagDesc{
		Name: "WatchEventKind",
		Variants: []VariantDesc{
			{Name: "Created"},
			{Name: "Modified"},
			{Name: "Removed"},
		},
	})
	require.NoError(t, err)
	assert.True(t, tag.Payloadless())
	assert.Len(t, tag.Variants, 3)
}

func TestBuildTagWithPayloadVariant(t *testing.T) {
	tag, err := buildTag(TagDesc{
		Name: "WatchEvent",
		Variants: []VariantDesc{
			{Name: "Created", Payload: "String"},
			{Name: "Removed", Payload: "String"},
		},
	})
	require.NoError(t, err)
	assert.False(t, tag.Payloadless())
	assert.Equal(t, ir.Primitive{Kind: ir.OwnedString}, tag.Variants[0].PayloadType)
}

func TestBuildTagRejectsUnrepresentableVariant(t *testing.T) {
	_, err := buildTag(TagDesc{
		Name: "Weird",
		Variants: []VariantDesc{
			{Name: "StructLike", Unrepresentable: true},
		},
	})
	var unrep *welderrs.UnrepresentableVariant
	assert.ErrorAs(t, err, &unrep)
}

func TestBuildTagRejectsZeroVariants(t *testing.T) {
	_, err := buildTag(TagDesc{Name: "Empty"})
	require.Error(t, err)
}
