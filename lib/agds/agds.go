// Package agds is the thin AGDS glue layer spec.md §4.E describes: it
// links rows of a tabular dataset to one ASA engine per column. The
// ASA core neither knows nor cares about rows or columns; this
// package consumes only the Value Node handle insert returns, exactly
// as §4.E requires.
package agds

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/google/uuid"

	"github.com/MaciejGeldon/agds/lib/asa"
	"github.com/MaciejGeldon/agds/lib/containers"
)

// ColumnName names one attribute of a row; AGDS keeps one ASA engine
// per distinct ColumnName.
type ColumnName string

// RowID identifies a row. It wraps uuid.UUID rather than aliasing it
// so it can carry the Cmp method containers.SortedMap needs for the
// row registry, replacing the teacher's bespoke util.UUID with the
// ecosystem-standard generator.
type RowID uuid.UUID

func (r RowID) Cmp(o RowID) int {
	return bytes.Compare(r[:], o[:])
}

func (r RowID) String() string {
	return uuid.UUID(r).String()
}

var _ containers.Ordered[RowID] = RowID{}

// attrKey is the (row, column) pair the design notes for §9's "dynamic
// attribute attachment" re-architect as the key of a mapping to a
// Value Node handle.
type attrKey struct {
	Row    RowID
	Column ColumnName
}

func (a attrKey) Cmp(b attrKey) int {
	if c := a.Row.Cmp(b.Row); c != 0 {
		return c
	}
	return strings.Compare(string(a.Column), string(b.Column))
}

var _ containers.Ordered[attrKey] = attrKey{}

// AGDS links rows to columns. Every column shares key domain K — per
// spec.md's Non-goals, heterogeneous key types live in separate AGDS
// instances, not mixed into one.
//
// The zero value is not usable; construct with New.
type AGDS[K containers.Ordered[K]] struct {
	columns map[ColumnName]*asa.Engine[K]
	rows    containers.SortedMap[RowID, containers.Set[ColumnName]]
	attrs   containers.SortedMap[attrKey, K]
	// index is the AttributeIndex: an ARC cache memoizing the last-resolved
	// (row, column) -> Value Node handle, so repeated Get calls on a
	// hot row/column pair skip Column(column).Search entirely. Wired
	// directly against hashicorp/golang-lru rather than through a
	// wrapper type, since this is the only LRU need in this module.
	index *lru.ARCCache
}

// New returns an empty AGDS whose AttributeIndex memoizes up to
// indexSize (row, column) lookups, evicting beyond that by the
// adaptive replacement (ARC) policy, which weighs both recency and
// frequency of use.
func New[K containers.Ordered[K]](indexSize int) *AGDS[K] {
	index, err := lru.NewARC(indexSize)
	if err != nil {
		panic(fmt.Errorf("agds: %w", err))
	}
	return &AGDS[K]{
		columns: make(map[ColumnName]*asa.Engine[K]),
		index:   index,
	}
}

// Column returns the ASA engine backing name, creating an empty one on
// first use.
func (a *AGDS[K]) Column(name ColumnName) *asa.Engine[K] {
	e, ok := a.columns[name]
	if !ok {
		e = &asa.Engine[K]{}
		a.columns[name] = e
	}
	return e
}

// Columns returns the names of every column touched so far, sorted.
func (a *AGDS[K]) Columns() []ColumnName {
	names := make([]ColumnName, 0, len(a.columns))
	for name := range a.columns {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Rows returns the number of rows registered so far.
func (a *AGDS[K]) Rows() int {
	return a.rows.Len()
}

// NewRow registers a fresh row with no attributes attached and returns
// its identity.
func (a *AGDS[K]) NewRow() RowID {
	id := RowID(uuid.New())
	a.rows.Store(id, containers.NewSet[ColumnName]())
	return id
}

// HasRow reports whether row was returned by NewRow and not since
// deleted.
func (a *AGDS[K]) HasRow(row RowID) bool {
	return a.rows.Has(row)
}

// Set attaches value to row under column: it inserts value into that
// column's ASA engine (replacing whatever row previously held there,
// if anything) and memoizes the resulting Value Node handle in the
// AttributeIndex.
func (a *AGDS[K]) Set(row RowID, column ColumnName, value K) *containers.ValueNode[K] {
	cols, ok := a.rows.Load(row)
	if !ok {
		panic(fmt.Errorf("agds: Set on unregistered row %s", row))
	}
	ak := attrKey{row, column}
	if old, had := a.attrs.Load(ak); had {
		if old.Cmp(value) == 0 {
			if v, ok := a.Get(row, column); ok {
				return v
			}
		}
		a.Column(column).Delete(old)
	}

	v := a.Column(column).Insert(value)
	a.attrs.Store(ak, value)
	a.index.Add(ak, v)
	cols.Insert(column)
	return v
}

// Get resolves row's attribute under column, consulting the
// AttributeIndex before falling back to a fresh Column(column).Search.
func (a *AGDS[K]) Get(row RowID, column ColumnName) (*containers.ValueNode[K], bool) {
	ak := attrKey{row, column}
	if cached, ok := a.index.Get(ak); ok {
		return cached.(*containers.ValueNode[K]), true
	}
	key, ok := a.attrs.Load(ak)
	if !ok {
		return nil, false
	}
	v, _ := a.Column(column).Search(key)
	if v == nil {
		return nil, false
	}
	a.index.Add(ak, v)
	return v, true
}

// Unset detaches row's attribute under column, if any is attached, and
// reports whether there was one.
func (a *AGDS[K]) Unset(row RowID, column ColumnName) bool {
	ak := attrKey{row, column}
	key, ok := a.attrs.Load(ak)
	if !ok {
		return false
	}
	a.attrs.Delete(ak)
	a.index.Remove(ak)
	if cols, ok := a.rows.Load(row); ok {
		cols.Delete(column)
	}
	return a.Column(column).Delete(key)
}

// DeleteRow unsets every attribute row holds and forgets row itself.
func (a *AGDS[K]) DeleteRow(row RowID) {
	cols, ok := a.rows.Load(row)
	if !ok {
		return
	}
	for column := range cols {
		a.Unset(row, column)
	}
	a.rows.Delete(row)
}
