// Package weld is the Go stand-in for a set of Rust attribute macros. Go
// has no attribute-macro facility, so instead of annotating a
// function/struct/enum in place, an extension author calls Op/Record/Tag
// once per item — typically from an init() func directly beside the
// native declaration it describes, to keep the "annotation lives next to
// the code" ergonomics an attribute macro would otherwise provide.
//
// Each registration function parses its declared parameter/field/variant
// types through rustsyn, computes surface names deterministically, and
// appends a thunk to the global inventory. There is nothing to rewrite in
// Go: the call site is already ordinary code, so registration is the
// entire contract.
package weld

import (
	"fmt"

	"github.com/weldrs/weld/codegen/naming"
	"github.com/weldrs/weld/inventory"
	"github.com/weldrs/weld/ir"
	"github.com/weldrs/weld/rustsyn"
	"github.com/weldrs/weld/welderrs"
)

// ParamDesc describes one op parameter as the extension author declares it:
// a name, a Rust type-expression string (parsed by rustsyn), an optional
// marshalling-attribute override, and an optional doc string.
type ParamDesc struct {
	Name      string
	Type      string
	Attribute ir.MarshalAttr
	Doc       string
}

// OpDesc describes one annotated function.
type OpDesc struct {
	// Name is the Rust source name, e.g. "op_fs_read_text".
	Name string
	// Module overrides the module inferred from Name's op_<module>_ prefix.
	Module string
	// SurfaceName overrides the computed camelCase surface name.
	SurfaceName string
	Async       bool
	Params      []ParamDesc
	// Returns is the Rust return type expression; for a Result<T, E> this
	// becomes a Fallible in the IR and triggers promise wrapping.
	Returns string
	// ReturnAttribute overrides the marshalling attribute applied to the
	// Ok value of a fallible return (or the bare return value otherwise).
	ReturnAttribute ir.MarshalAttr
	Doc             string
	// File/Line locate this declaration for diagnostics; Line is typically
	// the call site of Op(). Both are copied into the resulting ir.Op's Span.
	File string
	Line int
}

// Op registers desc with the global inventory, deferring IR construction to
// a thunk evaluated when the inventory is first snapshotted. It returns
// immediately; parse errors surface only when the thunk runs, not at the
// call site.
func Op(desc OpDesc) {
	inventory.RegisterOp(func() (ir.Op, error) { return buildOp(desc) })
}

func buildOp(desc OpDesc) (ir.Op, error) {
	span := ir.Span{File: desc.File, Line: desc.Line}
	module := desc.Module
	if module == "" {
		module = naming.InferModule(desc.Name)
	}
	surface := desc.SurfaceName
	if surface == "" {
		surface = naming.OpSurfaceName(desc.Name, module)
	}

	params := make([]ir.Parameter, 0, len(desc.Params))
	sawContextHandle := false
	for i, pd := range desc.Params {
		t, err := rustsyn.Parse(pd.Type, desc.File)
		if err != nil {
			return ir.Op{}, err
		}
		if _, ok := t.(ir.ContextHandle); ok {
			if sawContextHandle {
				return ir.Op{}, fmt.Errorf("op %q: at most one ContextHandle parameter is allowed", desc.Name)
			}
			if i != 0 {
				return ir.Op{}, fmt.Errorf("op %q: ContextHandle parameter %q must be first positional parameter", desc.Name, pd.Name)
			}
			sawContextHandle = true
			continue // filtered out of the exposed parameter list
		}
		_, optional := t.(ir.Option)
		params = append(params, ir.Parameter{
			SourceName:  pd.Name,
			SurfaceName: naming.ToCamel(pd.Name),
			Type:        t,
			Attribute:   pd.Attribute,
			Optional:    optional,
			Doc:         pd.Doc,
		})
	}

	returns, err := rustsyn.Parse(nonEmpty(desc.Returns, "()"), desc.File)
	if err != nil {
		return ir.Op{}, err
	}
	if err := rejectNestedFallible(returns, false); err != nil {
		return ir.Op{}, &welderrs.UnsupportedType{Span: span, Token: desc.Returns}
	}

	return ir.Op{
		SourceName:        desc.Name,
		SurfaceName:       surface,
		IsAsync:           desc.Async,
		Params:            params,
		Returns:           returns,
		Doc:               desc.Doc,
		ReturnMarshalling: desc.ReturnAttribute,
		Module:            module,
		Span:              span,
	}, nil
}

// rejectNestedFallible enforces that Fallible may only appear at the top
// level of an Op's return type; nested tracks whether we have descended
// past the outermost position.
func rejectNestedFallible(t ir.Type, nested bool) error {
	switch v := t.(type) {
	case ir.Fallible:
		if nested {
			return fmt.Errorf("fallible return type nested inside another type")
		}
		if err := rejectNestedFallible(v.Ok, true); err != nil {
			return err
		}
		return rejectNestedFallible(v.Err, true)
	case ir.Option:
		return rejectNestedFallible(v.Elem, true)
	case ir.Sequence:
		return rejectNestedFallible(v.Elem, true)
	case ir.KeyedMap:
		if err := rejectNestedFallible(v.Key, true); err != nil {
			return err
		}
		return rejectNestedFallible(v.Value, true)
	case ir.OrderedMap:
		if err := rejectNestedFallible(v.Key, true); err != nil {
			return err
		}
		return rejectNestedFallible(v.Value, true)
	case ir.Set:
		return rejectNestedFallible(v.Elem, true)
	case ir.OrderedSet:
		return rejectNestedFallible(v.Elem, true)
	case ir.Tuple:
		for _, e := range v.Elems {
			if err := rejectNestedFallible(e, true); err != nil {
				return err
			}
		}
		return nil
	case ir.OwnedWrapper:
		return rejectNestedFallible(v.Elem, true)
	case ir.SharedWrapper:
		return rejectNestedFallible(v.Elem, true)
	case ir.InteriorMutable:
		return rejectNestedFallible(v.Elem, true)
	case ir.Lock:
		return rejectNestedFallible(v.Elem, true)
	case ir.SharedLock:
		return rejectNestedFallible(v.Elem, true)
	case ir.Borrow:
		return rejectNestedFallible(v.Elem, true)
	case ir.RawPointer:
		return rejectNestedFallible(v.Elem, true)
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
