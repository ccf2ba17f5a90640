package weld

import (
	"github.com/weldrs/weld/codegen/naming"
	"github.com/weldrs/weld/inventory"
	"github.com/weldrs/weld/ir"
	"github.com/weldrs/weld/rustsyn"
	"github.com/weldrs/weld/welderrs"
)

// VariantDesc describes one enum variant. Payload is empty for a
// payloadless (unit-like) variant or a single Rust type expression for a
// tuple-payload variant. Unrepresentable is set for a struct-shaped or
// multi-field payload, which is rejected when the tag's thunk is evaluated
// since the surface language has no faithful mapping for it.
type VariantDesc struct {
	Name            string
	Payload         string
	Unrepresentable bool
	Doc             string
}

// TagDesc describes one annotated enum-like type.
type TagDesc struct {
	// Name is the Rust source name, e.g. "WatchEventKind".
	Name        string
	SurfaceName string
	Variants    []VariantDesc
	Doc         string
	File        string
	Line        int
}

// Tag registers desc with the global inventory, exactly as Op and Record
// do.
func Tag(desc TagDesc) {
	inventory.RegisterTag(func() (ir.Tag, error) { return buildTag(desc) })
}

func buildTag(desc TagDesc) (ir.Tag, error) {
	span := ir.Span{File: desc.File, Line: desc.Line}
	surface := desc.SurfaceName
	if surface == "" {
		surface = naming.ToPascal(desc.Name)
	}
	if len(desc.Variants) == 0 {
		return ir.Tag{}, &welderrs.UnrepresentableVariant{Tag: desc.Name, Variant: "<none>", Span: span}
	}

	variants := make([]ir.TagVariant, 0, len(desc.Variants))
	for _, vd := range desc.Variants {
		if vd.Unrepresentable {
			return ir.Tag{}, &welderrs.UnrepresentableVariant{Tag: desc.Name, Variant: vd.Name, Span: span}
		}
		var payload ir.Type
		if vd.Payload != "" {
			t, err := rustsyn.Parse(vd.Payload, desc.File)
			if err != nil {
				return ir.Tag{}, err
			}
			payload = t
		}
		variants = append(variants, ir.TagVariant{Name: vd.Name, PayloadType: payload, Doc: vd.Doc})
	}

	return ir.Tag{
		SourceName:  desc.Name,
		SurfaceName: surface,
		Variants:    variants,
		Doc:         desc.Doc,
		Span:        span,
	}, nil
}
