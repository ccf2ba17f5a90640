package weld

import (
	"github.com/weldrs/weld/codegen/naming"
	"github.com/weldrs/weld/inventory"
	"github.com/weldrs/weld/ir"
	"github.com/weldrs/weld/rustsyn"
)

// FieldDesc describes one public struct field; callers simply omit
// private fields from Fields.
type FieldDesc struct {
	Name     string
	Type     string
	ReadOnly bool
	Doc      string
}

// RecordDesc describes one annotated struct-like type.
type RecordDesc struct {
	// Name is the Rust source name, e.g. "FileStat".
	Name        string
	SurfaceName string
	Fields      []FieldDesc
	TypeParams  []string
	Doc         string
	File        string
	Line        int
}

// Record registers desc with the global inventory, exactly as Op does.
func Record(desc RecordDesc) {
	inventory.RegisterRecord(func() (ir.Record, error) { return buildRecord(desc) })
}

func buildRecord(desc RecordDesc) (ir.Record, error) {
	span := ir.Span{File: desc.File, Line: desc.Line}
	surface := desc.SurfaceName
	if surface == "" {
		surface = naming.ToPascal(desc.Name)
	}

	fields := make([]ir.RecordField, 0, len(desc.Fields))
	for _, fd := range desc.Fields {
		t, err := rustsyn.Parse(fd.Type, desc.File)
		if err != nil {
			return ir.Record{}, err
		}
		_, optional := t.(ir.Option)
		fields = append(fields, ir.RecordField{
			SourceName:  fd.Name,
			SurfaceName: naming.ToCamel(fd.Name),
			Type:        t,
			Optional:    optional,
			ReadOnly:    fd.ReadOnly,
			Doc:         fd.Doc,
		})
	}

	return ir.Record{
		SourceName:  desc.Name,
		SurfaceName: surface,
		Fields:      fields,
		Doc:         desc.Doc,
		TypeParams:  desc.TypeParams,
		Span:        span,
	}, nil
}
