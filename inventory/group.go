package inventory

import (
	"sort"

	"github.com/weldrs/weld/ir"
	"github.com/weldrs/weld/welderrs"
)

// ModuleView is a Snapshot grouped by module, with every NamedRecord/NamedTag
// reference resolved and validated. A Record or Tag has no module field of
// its own; it belongs to every module that references it, so it is
// deliberately duplicated across ModuleViews rather than deduplicated — the
// surface language lacks a shared-types facility across modules.
type ModuleView struct {
	Name    string
	Ops     []ir.Op
	Records []ir.Record
	Tags    []ir.Tag
}

// Group validates a Snapshot and returns one ModuleView per module name
// present in snap.Ops.
//
//   - No two ops may share both module and surface name.
//   - No two records reachable within one module's view may share a
//     surface name, even when their source names differ.
//   - Every NamedRecord/NamedTag must resolve to a registered Record/Tag of
//     the same source name.
//   - A Record's source name and a Tag's source name occupy one namespace;
//     they must not collide.
//
// ContextHandle placement is checked by weld.Op at registration time, where
// the parameter list is still in source order. Acyclicity holds by
// construction: ir.Type never embeds a referenced Record/Tag, only its name.
func Group(snap Snapshot) (map[string]*ModuleView, error) {
	recordByName := make(map[string]ir.Record, len(snap.Records))
	for _, r := range snap.Records {
		recordByName[r.SourceName] = r
	}
	tagByName := make(map[string]ir.Tag, len(snap.Tags))
	for _, t := range snap.Tags {
		tagByName[t.SourceName] = t
	}
	for name, r := range recordByName {
		if t, ok := tagByName[name]; ok {
			return nil, &welderrs.NameCollisionAcrossKinds{Name: name, A: r.Span, B: t.Span}
		}
	}

	seenOpKey := make(map[string]ir.Span)
	for _, o := range snap.Ops {
		key := o.Module + "\x00" + o.SurfaceName
		if prior, ok := seenOpKey[key]; ok {
			return nil, &welderrs.DuplicateSurfaceName{Kind: "op", Name: o.SurfaceName, A: prior, B: o.Span}
		}
		seenOpKey[key] = o.Span
	}

	if err := checkReferences(snap, recordByName, tagByName); err != nil {
		return nil, err
	}

	views := make(map[string]*ModuleView)
	view := func(name string) *ModuleView {
		v, ok := views[name]
		if !ok {
			v = &ModuleView{Name: name}
			views[name] = v
		}
		return v
	}

	for _, o := range snap.Ops {
		v := view(o.Module)
		v.Ops = append(v.Ops, o)
	}
	for name, v := range views {
		reachable := map[string]bool{}
		for _, o := range opsForModule(snap, name) {
			for k := range collectReachable(o.Returns, recordByName, tagByName, map[string]bool{}) {
				reachable[k] = true
			}
			for _, p := range o.Params {
				for k := range collectReachable(p.Type, recordByName, tagByName, map[string]bool{}) {
					reachable[k] = true
				}
			}
		}
		for _, r := range snap.Records {
			if reachable[r.SourceName] {
				v.Records = append(v.Records, r)
			}
		}
		for _, t := range snap.Tags {
			if reachable[t.SourceName] {
				v.Tags = append(v.Tags, t)
			}
		}
		if err := checkRecordSurfaceNames(v.Records); err != nil {
			return nil, err
		}
	}

	for _, v := range views {
		sort.Slice(v.Ops, func(i, j int) bool { return v.Ops[i].SurfaceName < v.Ops[j].SurfaceName })
		sort.Slice(v.Records, func(i, j int) bool { return v.Records[i].SurfaceName < v.Records[j].SurfaceName })
		sort.Slice(v.Tags, func(i, j int) bool { return v.Tags[i].SurfaceName < v.Tags[j].SurfaceName })
	}
	return views, nil
}

// checkRecordSurfaceNames rejects two records in the same ModuleView that
// collapse to the same surface name — e.g. two distinct source names whose
// PascalCase forms collide, or the same record reachable twice under
// different reference paths with inconsistent data. Left unchecked, both
// would be appended and rendered as two conflicting "export interface"
// declarations in one declaration file.
func checkRecordSurfaceNames(records []ir.Record) error {
	seen := make(map[string]ir.Span, len(records))
	for _, r := range records {
		if prior, ok := seen[r.SurfaceName]; ok {
			return &welderrs.DuplicateSurfaceName{Kind: "record", Name: r.SurfaceName, A: prior, B: r.Span}
		}
		seen[r.SurfaceName] = r.Span
	}
	return nil
}

func opsForModule(snap Snapshot, module string) []ir.Op {
	var out []ir.Op
	for _, o := range snap.Ops {
		if o.Module == module {
			out = append(out, o)
		}
	}
	return out
}

// collectReachable walks a type tree and every record/tag reachable through
// named references, returning the set of reached source names.
func collectReachable(t ir.Type, recordByName map[string]ir.Record, tagByName map[string]ir.Tag, visited map[string]bool) map[string]bool {
	out := map[string]bool{}
	var walk func(ir.Type)
	walk = func(t ir.Type) {
		switch v := t.(type) {
		case ir.Option:
			walk(v.Elem)
		case ir.Sequence:
			walk(v.Elem)
		case ir.Fallible:
			walk(v.Ok)
			walk(v.Err)
		case ir.KeyedMap:
			walk(v.Key)
			walk(v.Value)
		case ir.OrderedMap:
			walk(v.Key)
			walk(v.Value)
		case ir.Set:
			walk(v.Elem)
		case ir.OrderedSet:
			walk(v.Elem)
		case ir.Tuple:
			for _, e := range v.Elems {
				walk(e)
			}
		case ir.OwnedWrapper:
			walk(v.Elem)
		case ir.SharedWrapper:
			walk(v.Elem)
		case ir.InteriorMutable:
			walk(v.Elem)
		case ir.Lock:
			walk(v.Elem)
		case ir.SharedLock:
			walk(v.Elem)
		case ir.Borrow:
			walk(v.Elem)
		case ir.RawPointer:
			walk(v.Elem)
		case ir.NamedRecord:
			if out[v.Name] || visited[v.Name] {
				return
			}
			out[v.Name] = true
			if r, ok := recordByName[v.Name]; ok {
				visited[v.Name] = true
				for _, f := range r.Fields {
					walk(f.Type)
				}
			}
		case ir.NamedTag:
			if out[v.Name] || visited[v.Name] {
				return
			}
			out[v.Name] = true
			if tg, ok := tagByName[v.Name]; ok {
				visited[v.Name] = true
				for _, variant := range tg.Variants {
					if variant.PayloadType != nil {
						walk(variant.PayloadType)
					}
				}
			}
		}
	}
	walk(t)
	return out
}

// checkReferences validates that every named reference used anywhere
// resolves to a registered record or tag, disambiguating NamedRecord
// references produced by rustsyn (which cannot tell records from tags
// apart on its own) against both registries.
func checkReferences(snap Snapshot, recordByName map[string]ir.Record, tagByName map[string]ir.Tag) error {
	var walk func(ir.Type, ir.Span) error
	walk = func(t ir.Type, span ir.Span) error {
		switch v := t.(type) {
		case ir.Option:
			return walk(v.Elem, span)
		case ir.Sequence:
			return walk(v.Elem, span)
		case ir.Fallible:
			if err := walk(v.Ok, span); err != nil {
				return err
			}
			return walk(v.Err, span)
		case ir.KeyedMap:
			if err := walk(v.Key, span); err != nil {
				return err
			}
			return walk(v.Value, span)
		case ir.OrderedMap:
			if err := walk(v.Key, span); err != nil {
				return err
			}
			return walk(v.Value, span)
		case ir.Set:
			return walk(v.Elem, span)
		case ir.OrderedSet:
			return walk(v.Elem, span)
		case ir.Tuple:
			for _, e := range v.Elems {
				if err := walk(e, span); err != nil {
					return err
				}
			}
			return nil
		case ir.OwnedWrapper:
			return walk(v.Elem, span)
		case ir.SharedWrapper:
			return walk(v.Elem, span)
		case ir.InteriorMutable:
			return walk(v.Elem, span)
		case ir.Lock:
			return walk(v.Elem, span)
		case ir.SharedLock:
			return walk(v.Elem, span)
		case ir.Borrow:
			return walk(v.Elem, span)
		case ir.RawPointer:
			return walk(v.Elem, span)
		case ir.NamedRecord:
			if _, ok := recordByName[v.Name]; ok {
				return nil
			}
			if _, ok := tagByName[v.Name]; ok {
				return nil
			}
			return &welderrs.UnresolvedReference{Span: span, Name: v.Name}
		case ir.NamedTag:
			if _, ok := tagByName[v.Name]; ok {
				return nil
			}
			if _, ok := recordByName[v.Name]; ok {
				return nil
			}
			return &welderrs.UnresolvedReference{Span: span, Name: v.Name}
		}
		return nil
	}

	for _, o := range snap.Ops {
		for _, p := range o.Params {
			if err := walk(p.Type, o.Span); err != nil {
				return err
			}
		}
		if err := walk(o.Returns, o.Span); err != nil {
			return err
		}
	}
	for _, r := range snap.Records {
		for _, f := range r.Fields {
			if err := walk(f.Type, r.Span); err != nil {
				return err
			}
		}
	}
	for _, t := range snap.Tags {
		for _, v := range t.Variants {
			if v.PayloadType != nil {
				if err := walk(v.PayloadType, t.Span); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
