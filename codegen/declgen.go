package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/weldrs/weld/inventory"
	"github.com/weldrs/weld/ir"
)

// Banner is the first line of every generated declaration file.
const Banner = "// GENERATED FILE — DO NOT EDIT"

// DeclEmitter produces the declaration-only surface file: banner, module
// doc, then interface declarations for every Record, union-type
// declarations for every Tag, and function signature declarations for
// every Op, each sorted alphabetically by surface name.
//
// Emit is all-or-nothing: on the first error it returns immediately with
// no partial output.
func DeclEmitter(view *inventory.ModuleView, moduleDoc string) (string, error) {
	tagNames := TagNameSet(view.Tags)

	records := append([]ir.Record(nil), view.Records...)
	sort.Slice(records, func(i, j int) bool { return records[i].SurfaceName < records[j].SurfaceName })

	tags := append([]ir.Tag(nil), view.Tags...)
	sort.Slice(tags, func(i, j int) bool { return tags[i].SurfaceName < tags[j].SurfaceName })

	ops := append([]ir.Op(nil), view.Ops...)
	sort.Slice(ops, func(i, j int) bool { return ops[i].SurfaceName < ops[j].SurfaceName })

	// Every block after the banner (the module doc, then each declaration)
	// is preceded by exactly one blank line, so blocks are built independently
	// and joined rather than having each loop iteration guess whether it is
	// "first".
	var blocks []string
	if moduleDoc != "" {
		var db strings.Builder
		writeDoc(&db, moduleDoc)
		blocks = append(blocks, db.String())
	}
	for _, r := range records {
		var db strings.Builder
		writeDoc(&db, r.Doc)
		if err := writeInterface(&db, r, tagNames); err != nil {
			return "", err
		}
		blocks = append(blocks, db.String())
	}
	for _, t := range tags {
		var db strings.Builder
		writeDoc(&db, t.Doc)
		if err := writeUnion(&db, t, tagNames); err != nil {
			return "", err
		}
		blocks = append(blocks, db.String())
	}
	for _, o := range ops {
		var db strings.Builder
		writeDoc(&db, o.Doc)
		if err := writeSignature(&db, o, tagNames); err != nil {
			return "", err
		}
		blocks = append(blocks, db.String())
	}

	var b strings.Builder
	b.WriteString(Banner)
	b.WriteString("\n")
	for _, block := range blocks {
		b.WriteString("\n")
		b.WriteString(block)
	}

	return FormatDecl(b.String()), nil
}

func writeDoc(b *strings.Builder, doc string) {
	if doc == "" {
		return
	}
	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	if len(lines) == 1 {
		fmt.Fprintf(b, "/** %s */\n", lines[0])
		return
	}
	b.WriteString("/**\n")
	for _, l := range lines {
		fmt.Fprintf(b, " * %s\n", l)
	}
	b.WriteString(" */\n")
}

func writeInterface(b *strings.Builder, r ir.Record, tagNames map[string]bool) error {
	// Fields keep their declared order: sorting applies to Records/Tags/Ops
	// as a whole, not to a record's own fields, so a FileStat-like record
	// renders its fields in declaration order, not alphabetical.
	fields := r.Fields
	name := r.SurfaceName
	if len(r.TypeParams) > 0 {
		name += "<" + strings.Join(r.TypeParams, ", ") + ">"
	}
	if len(fields) == 0 {
		fmt.Fprintf(b, "export interface %s {}\n", name)
		return nil
	}
	fmt.Fprintf(b, "export interface %s {\n", name)
	for _, f := range fields {
		t := ResolveAmbiguousNamedType(f.Type, tagNames)
		ts, err := MapType(t)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", r.SourceName, f.SourceName, err)
		}
		opt := ""
		if f.Optional {
			opt = "?"
			ts = unwrapOptional(t, ts)
		}
		ro := ""
		if f.ReadOnly {
			ro = "readonly "
		}
		fmt.Fprintf(b, "  %s%s%s: %s;\n", ro, f.SurfaceName, opt, ts)
	}
	b.WriteString("}\n")
	return nil
}

// unwrapOptional renders the field's type without the trailing "| null"
// when the field is already marked optional with "?", since TypeScript
// expresses "absent" through "?" and an explicit Option(T) through "| null"
// — a field that is both uses "?" only, to match spec example 3 (FileStat's
// "modified?: bigint;" rather than "modified?: bigint | null;").
func unwrapOptional(t ir.Type, mapped string) string {
	if _, ok := t.(ir.Option); ok {
		return strings.TrimSuffix(mapped, " | null")
	}
	return mapped
}

func writeUnion(b *strings.Builder, t ir.Tag, tagNames map[string]bool) error {
	if t.Payloadless() {
		parts := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			parts[i] = fmt.Sprintf("%q", v.Name)
		}
		fmt.Fprintf(b, "export type %s = %s;\n", t.SurfaceName, strings.Join(parts, " | "))
		return nil
	}
	parts := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		if v.PayloadType == nil {
			parts[i] = fmt.Sprintf("{ type: %q }", v.Name)
			continue
		}
		ts, err := MapType(ResolveAmbiguousNamedType(v.PayloadType, tagNames))
		if err != nil {
			return fmt.Errorf("tag %s variant %s: %w", t.SourceName, v.Name, err)
		}
		parts[i] = fmt.Sprintf("{ type: %q; value: %s }", v.Name, ts)
	}
	fmt.Fprintf(b, "export type %s = %s;\n", t.SurfaceName, strings.Join(parts, " | "))
	return nil
}

func writeSignature(b *strings.Builder, o ir.Op, tagNames map[string]bool) error {
	params := make([]string, 0, len(o.Params))
	for _, p := range o.Params {
		pt := ResolveAmbiguousNamedType(p.Type, tagNames)
		ts, err := MapType(pt)
		if err != nil {
			return fmt.Errorf("op %s param %s: %w", o.SourceName, p.SourceName, err)
		}
		opt := ""
		if p.Optional {
			opt = "?"
			ts = unwrapOptional(pt, ts)
		}
		params = append(params, fmt.Sprintf("%s%s: %s", p.SurfaceName, opt, ts))
	}
	ret, err := MapReturn(o)
	if err != nil {
		return fmt.Errorf("op %s return: %w", o.SourceName, err)
	}
	fmt.Fprintf(b, "export function %s(%s): %s;\n", o.SurfaceName, strings.Join(params, ", "), ret)
	return nil
}
