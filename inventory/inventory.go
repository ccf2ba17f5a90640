// Package inventory implements three append-only, compile-time collections
// (ops, records, tags) populated from many packages' init() functions,
// approximating a linker distributed-slice mechanism. There is no linker
// facility in Go that collects entries across independently compiled
// packages, so registration is explicit: weld.Op/Record/Tag append a thunk
// to one of the slices below the first time their owning package is
// initialized.
package inventory

import (
	"sort"
	"sync"

	"github.com/weldrs/weld/ir"
)

// OpThunk, RecordThunk, and TagThunk defer construction of their IR record
// until the inventory is first iterated. Thunks are functions, not data,
// so registering one during package initialization does no non-trivial
// work until Build runs.
type (
	OpThunk     func() (ir.Op, error)
	RecordThunk func() (ir.Record, error)
	TagThunk    func() (ir.Tag, error)
)

var (
	mu      sync.Mutex
	ops     []OpThunk
	records []RecordThunk
	tags    []TagThunk
)

// RegisterOp appends an op thunk to the global inventory. Called by
// weld.Op; not meant to be called directly by extension authors.
func RegisterOp(t OpThunk) {
	mu.Lock()
	defer mu.Unlock()
	ops = append(ops, t)
}

// RegisterRecord appends a record thunk to the global inventory. Called by
// weld.Record.
func RegisterRecord(t RecordThunk) {
	mu.Lock()
	defer mu.Unlock()
	records = append(records, t)
}

// RegisterTag appends a tag thunk to the global inventory. Called by
// weld.Tag.
func RegisterTag(t TagThunk) {
	mu.Lock()
	defer mu.Unlock()
	tags = append(tags, t)
}

// Reset clears every registered thunk. It exists for tests that need a
// clean inventory between cases; production builds never call it since a
// build script process runs once and exits.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ops = nil
	records = nil
	tags = nil
}

// Snapshot holds the evaluated, sorted results of a Build. Registration
// order within a kind is never meaningful, so Build sorts by source name —
// this is what makes every downstream consumer's output deterministic
// without having to re-sort itself.
type Snapshot struct {
	Ops     []ir.Op
	Records []ir.Record
	Tags    []ir.Tag
}

// Build evaluates every thunk registered so far and returns a sorted
// Snapshot. Thunk evaluation errors (a malformed type expression surfacing
// only when the thunk finally runs) are returned immediately; Build does
// not partially succeed.
func Build() (Snapshot, error) {
	mu.Lock()
	opThunks := append([]OpThunk(nil), ops...)
	recordThunks := append([]RecordThunk(nil), records...)
	tagThunks := append([]TagThunk(nil), tags...)
	mu.Unlock()

	var snap Snapshot
	for _, t := range opThunks {
		o, err := t()
		if err != nil {
			return Snapshot{}, err
		}
		snap.Ops = append(snap.Ops, o)
	}
	for _, t := range recordThunks {
		r, err := t()
		if err != nil {
			return Snapshot{}, err
		}
		snap.Records = append(snap.Records, r)
	}
	for _, t := range tagThunks {
		tg, err := t()
		if err != nil {
			return Snapshot{}, err
		}
		snap.Tags = append(snap.Tags, tg)
	}

	sort.Slice(snap.Ops, func(i, j int) bool { return snap.Ops[i].SourceName < snap.Ops[j].SourceName })
	sort.Slice(snap.Records, func(i, j int) bool { return snap.Records[i].SourceName < snap.Records[j].SourceName })
	sort.Slice(snap.Tags, func(i, j int) bool { return snap.Tags[i].SourceName < snap.Tags[j].SourceName })
	return snap, nil
}
