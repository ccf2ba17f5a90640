// Package rustsyn implements the Weld type parser: a single pure
// function that converts a Rust type-expression string into the Weld type
// IR (ir.Type), or fails with a welderrs.UnsupportedType citing the exact
// unsupported syntax.
//
// Because there is no Rust compiler frontend available to hook into,
// rustsyn parses the type expression text directly with a small
// recursive-descent parser rather than shelling out to an external AST
// library. The grammar it accepts is exactly a closed recognition table of
// primitives, containers, and wrapper types — nothing more, nothing less.
package rustsyn

import (
	"fmt"
	"strconv"

	"github.com/weldrs/weld/ir"
	"github.com/weldrs/weld/welderrs"
)

// Parse converts a Rust type-expression string into the Weld IR. file is
// used only to annotate the returned error's span; pass "" when the caller
// has no better location to offer.
func Parse(expr string, file string) (ir.Type, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, &welderrs.UnsupportedType{Span: ir.Span{File: file}, Token: err.Error() + ": " + expr}
	}
	p := &parser{toks: toks, file: file, src: expr}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, p.errorf("trailing input after type expression")
	}
	return t, nil
}

type parser struct {
	toks []token
	pos  int
	file string
	src  string
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return &welderrs.UnsupportedType{
		Span:  ir.Span{File: p.file, Column: p.cur().column},
		Token: fmt.Sprintf(format, args...) + ": " + p.src,
	}
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	if p.cur().kind != k {
		return token{}, p.errorf("expected %s", what)
	}
	return p.advance(), nil
}

// parseType is the top-level dispatcher, recursing into every generic
// argument, tuple element, pointer target, and slice element.
func (p *parser) parseType() (ir.Type, error) {
	switch p.cur().kind {
	case tokBang:
		p.advance()
		return ir.NeverReturns{}, nil
	case tokLParen:
		return p.parseTuple()
	case tokAmp:
		return p.parseBorrow()
	case tokStar:
		return p.parseRawPointer()
	case tokLBracket:
		return p.parseArrayOrSlice()
	case tokIdent:
		return p.parsePath()
	default:
		return nil, p.errorf("unexpected token while parsing a type")
	}
}

func (p *parser) parseTuple() (ir.Type, error) {
	p.advance() // consume '('
	if p.cur().kind == tokRParen {
		p.advance()
		return ir.Primitive{Kind: ir.Unit}, nil
	}
	var elems []ir.Type
	trailingComma := false
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, t)
		if p.cur().kind == tokComma {
			p.advance()
			trailingComma = true
			if p.cur().kind == tokRParen {
				break
			}
			trailingComma = false
			continue
		}
		trailingComma = false
		break
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	if len(elems) == 1 && !trailingComma {
		// (T) is a parenthesized grouping of T, not a 1-tuple.
		return elems[0], nil
	}
	return ir.Tuple{Elems: elems}, nil
}

func (p *parser) parseBorrow() (ir.Type, error) {
	p.advance() // consume '&'
	if p.cur().kind == tokLifetime {
		p.advance()
	}
	mut := false
	if p.cur().kind == tokIdent && p.cur().text == "mut" {
		mut = true
		p.advance()
	}
	inner, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if prim, ok := inner.(ir.Primitive); ok && prim.Kind == ir.BorrowedString {
		// &str is the borrowed-string primitive itself, not a Borrow of it.
		return inner, nil
	}
	return ir.Borrow{Elem: inner, Mut: mut}, nil
}

func (p *parser) parseRawPointer() (ir.Type, error) {
	p.advance() // consume '*'
	if p.cur().kind != tokIdent || (p.cur().text != "const" && p.cur().text != "mut") {
		return nil, p.errorf("expected 'const' or 'mut' after '*'")
	}
	mut := p.cur().text == "mut"
	p.advance()
	inner, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ir.RawPointer{Elem: inner, Mut: mut}, nil
}

// parseArrayOrSlice handles [T; N] and [T]. Both produce Sequence(T) in
// the IR: fixed-length arrays carry no length information forward since
// the surface language has no fixed-length array type of its own (see
// DESIGN.md).
func (p *parser) parseArrayOrSlice() (ir.Type, error) {
	p.advance() // consume '['
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.cur().kind == tokSemi {
		p.advance()
		lenTok, err := p.expect(tokNumber, "array length")
		if err != nil {
			return nil, err
		}
		if _, err := parseArrayLen(lenTok.text); err != nil {
			return nil, p.errorf("invalid array length %q", lenTok.text)
		}
	}
	if _, err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, err
	}
	return ir.Sequence{Elem: elem}, nil
}

func (p *parser) parsePath() (ir.Type, error) {
	var segs []string
	first, err := p.expect(tokIdent, "identifier")
	if err != nil {
		return nil, err
	}
	segs = append(segs, first.text)
	for p.cur().kind == tokColonColon {
		p.advance()
		seg, err := p.expect(tokIdent, "identifier")
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg.text)
	}
	name := segs[len(segs)-1]

	var args []ir.Type
	if p.cur().kind == tokLt {
		p.advance()
		for {
			if p.cur().kind == tokGt {
				break
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
			if p.cur().kind == tokComma {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(tokGt, "'>'"); err != nil {
			return nil, err
		}
	}

	return p.resolvePath(name, args)
}

func (p *parser) resolvePath(name string, args []ir.Type) (ir.Type, error) {
	switch name {
	case "u8":
		return prim(args, p, ir.U8)
	case "u16":
		return prim(args, p, ir.U16)
	case "u32":
		return prim(args, p, ir.U32)
	case "u64":
		return prim(args, p, ir.U64)
	case "usize":
		return prim(args, p, ir.USize)
	case "i8":
		return prim(args, p, ir.I8)
	case "i16":
		return prim(args, p, ir.I16)
	case "i32":
		return prim(args, p, ir.I32)
	case "i64":
		return prim(args, p, ir.I64)
	case "isize":
		return prim(args, p, ir.ISize)
	case "f32":
		return prim(args, p, ir.F32)
	case "f64":
		return prim(args, p, ir.F64)
	case "bool":
		return prim(args, p, ir.Bool)
	case "char":
		return prim(args, p, ir.Char)
	case "String":
		return prim(args, p, ir.OwnedString)
	case "str":
		return prim(args, p, ir.BorrowedString)
	case "Option":
		if len(args) != 1 {
			return nil, p.errorf("Option requires exactly one type argument")
		}
		return ir.Option{Elem: args[0]}, nil
	case "Vec":
		if len(args) != 1 {
			return nil, p.errorf("Vec requires exactly one type argument")
		}
		if prim, ok := args[0].(ir.Primitive); ok && prim.Kind == ir.U8 {
			return ir.ByteBuffer{}, nil
		}
		return ir.Sequence{Elem: args[0]}, nil
	case "Result":
		if len(args) != 2 {
			return nil, p.errorf("Result requires exactly two type arguments")
		}
		return ir.Fallible{Ok: args[0], Err: args[1]}, nil
	case "HashMap":
		if len(args) != 2 {
			return nil, p.errorf("HashMap requires exactly two type arguments")
		}
		return ir.KeyedMap{Key: args[0], Value: args[1]}, nil
	case "BTreeMap":
		if len(args) != 2 {
			return nil, p.errorf("BTreeMap requires exactly two type arguments")
		}
		return ir.OrderedMap{Key: args[0], Value: args[1]}, nil
	case "HashSet":
		if len(args) != 1 {
			return nil, p.errorf("HashSet requires exactly one type argument")
		}
		return ir.Set{Elem: args[0]}, nil
	case "BTreeSet":
		if len(args) != 1 {
			return nil, p.errorf("BTreeSet requires exactly one type argument")
		}
		return ir.OrderedSet{Elem: args[0]}, nil
	case "Box":
		if len(args) != 1 {
			return nil, p.errorf("Box requires exactly one type argument")
		}
		return ir.OwnedWrapper{Elem: args[0]}, nil
	case "Arc", "Rc":
		if len(args) != 1 {
			return nil, p.errorf("%s requires exactly one type argument", name)
		}
		return ir.SharedWrapper{Elem: args[0]}, nil
	case "RefCell":
		if len(args) != 1 {
			return nil, p.errorf("RefCell requires exactly one type argument")
		}
		return ir.InteriorMutable{Elem: args[0]}, nil
	case "Mutex":
		if len(args) != 1 {
			return nil, p.errorf("Mutex requires exactly one type argument")
		}
		return ir.Lock{Elem: args[0]}, nil
	case "RwLock":
		if len(args) != 1 {
			return nil, p.errorf("RwLock requires exactly one type argument")
		}
		return ir.SharedLock{Elem: args[0]}, nil
	case "Value":
		if len(args) != 0 {
			return nil, p.errorf("Value takes no type arguments")
		}
		return ir.Untyped{}, nil
	case "OpState":
		if len(args) != 0 {
			return nil, p.errorf("OpState takes no type arguments")
		}
		return ir.ContextHandle{}, nil
	case "_":
		return nil, p.errorf("inferred placeholder types are not supported")
	default:
		if len(args) != 0 {
			return nil, p.errorf("user-defined generic type %q is not supported (closed recognition table)", name)
		}
		return ir.NamedRecord{Name: name}, nil
	}
}

func prim(args []ir.Type, p *parser, kind ir.PrimitiveKind) (ir.Type, error) {
	if len(args) != 0 {
		return nil, p.errorf("%s takes no type arguments", kind)
	}
	return ir.Primitive{Kind: kind}, nil
}

// parseArrayLen validates a fixed-array length token. The value itself is
// not retained in the IR since Array/Slice both collapse to Sequence; only
// its well-formedness is checked here.
func parseArrayLen(s string) (int, error) {
	return strconv.Atoi(s)
}
