// Package codegen implements the type-mapping function and the three
// emitters that consume a module's inventory slice (declaration file,
// runtime shim, registration fragment), plus the formatter that makes their
// output bit-stable.
package codegen

import (
	"fmt"
	"strings"

	"github.com/weldrs/weld/codegen/naming"
	"github.com/weldrs/weld/ir"
)

// MapType is the single authority for Type -> surface-language-string:
// total and deterministic, and never falls back to an "unimplemented"
// branch for any value reachable from an emitted declaration.
func MapType(t ir.Type) (string, error) {
	switch v := t.(type) {
	case ir.Primitive:
		return mapPrimitive(v.Kind), nil
	case ir.Option:
		inner, err := MapType(v.Elem)
		if err != nil {
			return "", err
		}
		return inner + " | null", nil
	case ir.Sequence:
		inner, err := MapType(v.Elem)
		if err != nil {
			return "", err
		}
		return arrayOf(inner), nil
	case ir.ByteBuffer:
		return "Uint8Array", nil
	case ir.Fallible:
		// Fallible is only valid at the top level of an Op's return; see
		// MapReturn. Anywhere else it is a hard error.
		return "", fmt.Errorf("fallible type is not representable outside an op's top-level return")
	case ir.KeyedMap:
		return mapMap(v.Key, v.Value)
	case ir.OrderedMap:
		return mapMap(v.Key, v.Value)
	case ir.Set:
		inner, err := MapType(v.Elem)
		if err != nil {
			return "", err
		}
		return "Set<" + inner + ">", nil
	case ir.OrderedSet:
		inner, err := MapType(v.Elem)
		if err != nil {
			return "", err
		}
		return "Set<" + inner + ">", nil
	case ir.Tuple:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			s, err := MapType(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case ir.OwnedWrapper:
		return MapType(v.Elem)
	case ir.SharedWrapper:
		return MapType(v.Elem)
	case ir.InteriorMutable:
		return MapType(v.Elem)
	case ir.Lock:
		return MapType(v.Elem)
	case ir.SharedLock:
		return MapType(v.Elem)
	case ir.Borrow:
		return MapType(v.Elem)
	case ir.RawPointer:
		return MapType(v.Elem)
	case ir.Untyped:
		return "unknown", nil
	case ir.NeverReturns:
		return "never", nil
	case ir.ContextHandle:
		// Filtered out before emission ever reaches here; a ContextHandle
		// surviving to MapType is a generator bug, not a user error.
		return "", fmt.Errorf("internal error: ContextHandle reached type mapping")
	case ir.NamedRecord:
		return naming.ToPascal(v.Name), nil
	case ir.NamedTag:
		return naming.ToPascal(v.Name), nil
	default:
		return "", fmt.Errorf("internal error: unmapped IR type %T", t)
	}
}

func mapPrimitive(k ir.PrimitiveKind) string {
	switch k {
	case ir.Bool:
		return "boolean"
	case ir.OwnedString, ir.BorrowedString, ir.Char:
		return "string"
	case ir.I64, ir.U64:
		return "bigint"
	case ir.Unit:
		return "void"
	default:
		return "number"
	}
}

// mapMap renders a KeyedMap/OrderedMap as a record shape, rejecting keys
// that have no faithful string/number index representation.
func mapMap(key, value ir.Type) (string, error) {
	if !stringifiable(key) {
		return "", fmt.Errorf("map key type is not stringifiable: %T", key)
	}
	keyType, err := MapType(key)
	if err != nil {
		return "", err
	}
	if keyType == "bigint" {
		// bigint is not a legal TypeScript index type; a 64-bit integer key
		// is still stringifiable, it just renders through its string form.
		keyType = "string"
	}
	valType, err := MapType(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Record<%s, %s>", keyType, valType), nil
}

func stringifiable(t ir.Type) bool {
	switch v := t.(type) {
	case ir.Primitive:
		return v.Kind == ir.OwnedString || v.Kind == ir.BorrowedString || v.Kind == ir.Char || isIntegerKind(v.Kind)
	case ir.NamedTag:
		return true // renders as a string union, a valid index type
	default:
		return false
	}
}

func isIntegerKind(k ir.PrimitiveKind) bool {
	switch k {
	case ir.I8, ir.I16, ir.I32, ir.I64, ir.U8, ir.U16, ir.U32, ir.U64, ir.ISize, ir.USize:
		return true
	default:
		return false
	}
}

func arrayOf(elem string) string {
	// A union (e.g. "T | null") needs parens to bind before "[]"; every
	// other shape this grammar produces (tuples, Record<K,V>, plain names)
	// is already unambiguous as an array element.
	if strings.Contains(elem, " | ") {
		return "(" + elem + ")[]"
	}
	return elem + "[]"
}

// MapReturn maps an Op's return type, applying the promise-wrapping rule:
// is_async and a top-level Fallible return independently trigger exactly
// one promise layer, never two.
func MapReturn(o ir.Op) (string, error) {
	inner := o.Returns
	promise := o.IsAsync
	if f, ok := inner.(ir.Fallible); ok {
		promise = true
		inner = f.Ok
	}
	s, err := MapType(inner)
	if err != nil {
		return "", err
	}
	if promise {
		return "Promise<" + s + ">", nil
	}
	return s, nil
}

// ResolveAmbiguousNamedType disambiguates every NamedRecord produced by
// rustsyn against the tag registry, wherever it occurs in t's type tree:
// rustsyn cannot tell a struct-like reference from an enum-like one apart
// on its own, so the disambiguation happens here, at emission time. A
// NamedRecord nested inside a map key, sequence element, tuple slot, and
// so on is resolved exactly like a top-level one — e.g. a
// HashMap<HashAlgorithm, V> keyed by a registered tag must see NamedTag
// before the stringifiability check in mapMap, not a NamedRecord it can
// never satisfy.
func ResolveAmbiguousNamedType(t ir.Type, tagNames map[string]bool) ir.Type {
	switch v := t.(type) {
	case ir.NamedRecord:
		if tagNames[v.Name] {
			return ir.NamedTag{Name: v.Name}
		}
		return v
	case ir.Option:
		return ir.Option{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.Sequence:
		return ir.Sequence{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.Fallible:
		return ir.Fallible{
			Ok:  ResolveAmbiguousNamedType(v.Ok, tagNames),
			Err: ResolveAmbiguousNamedType(v.Err, tagNames),
		}
	case ir.KeyedMap:
		return ir.KeyedMap{
			Key:   ResolveAmbiguousNamedType(v.Key, tagNames),
			Value: ResolveAmbiguousNamedType(v.Value, tagNames),
		}
	case ir.OrderedMap:
		return ir.OrderedMap{
			Key:   ResolveAmbiguousNamedType(v.Key, tagNames),
			Value: ResolveAmbiguousNamedType(v.Value, tagNames),
		}
	case ir.Set:
		return ir.Set{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.OrderedSet:
		return ir.OrderedSet{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.Tuple:
		elems := make([]ir.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = ResolveAmbiguousNamedType(e, tagNames)
		}
		return ir.Tuple{Elems: elems}
	case ir.OwnedWrapper:
		return ir.OwnedWrapper{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.SharedWrapper:
		return ir.SharedWrapper{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.InteriorMutable:
		return ir.InteriorMutable{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.Lock:
		return ir.Lock{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.SharedLock:
		return ir.SharedLock{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.Borrow:
		return ir.Borrow{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	case ir.RawPointer:
		return ir.RawPointer{Elem: ResolveAmbiguousNamedType(v.Elem, tagNames)}
	default:
		return t
	}
}

// TagNameSet builds the tagNames set ResolveAmbiguousNamedType expects from
// a Tag slice (typically a ModuleView's Tags).
func TagNameSet(tags []ir.Tag) map[string]bool {
	out := make(map[string]bool, len(tags))
	for _, t := range tags {
		out[t.SourceName] = true
	}
	return out
}
