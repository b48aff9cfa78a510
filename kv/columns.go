// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package kv

import "fmt"

// Enum is the constraint a closed column-family enumeration must satisfy to
// index a ColumnGroup: a small integer whose values are used directly as
// array offsets. Concrete enums (ReceiptsColumn, BlobTxColumn, or a caller's
// own) declare their own compile-time-constant Keys list alongside the type,
// mirroring ReceiptsColumnKeys / BlobTxColumnKeys.
type Enum interface {
	~int | ~uint8 | ~uint16 | ~uint32
}

// ColumnGroup is a dense, non-owning E-indexed mapping from column variant
// to handle. It never owns the handles it holds - building one does not
// transfer backend lifetime responsibility to the group.
type ColumnGroup[E Enum] struct {
	handles []Database
}

// NewColumnGroup builds a ColumnGroup over the given keys, each mapped to
// its handle via handles. keys must cover a dense range starting at 0 for
// direct indexing to stay valid; it is an error for any key in keys to be
// missing from handles.
func NewColumnGroup[E Enum](keys []E, handles map[E]Database) (*ColumnGroup[E], error) {
	size := 0
	for _, k := range keys {
		if int(k)+1 > size {
			size = int(k) + 1
		}
	}
	dense := make([]Database, size)
	for _, k := range keys {
		h, ok := handles[k]
		if !ok {
			return nil, fmt.Errorf("kv: missing handle for column variant %v", k)
		}
		dense[int(k)] = h
	}
	return &ColumnGroup[E]{handles: dense}, nil
}

// Get returns the handle for column variant e. Panics if e was not part of
// the keys the group was built with - a programmer error, not a runtime
// condition callers are expected to recover from.
func (g *ColumnGroup[E]) Get(e E) Database {
	h := g.handles[int(e)]
	if h == nil {
		panic(fmt.Sprintf("kv: column variant %v not present in group", e))
	}
	return h
}

// Batch builds a CrossColumnBatch covering the given variants, one
// WriteBatch per variant.
func (g *ColumnGroup[E]) Batch(keys []E) *CrossColumnBatch[E] {
	batches := make(map[E]*WriteBatch, len(keys))
	for _, k := range keys {
		batches[k] = NewWriteBatch(g.Get(k))
	}
	return &CrossColumnBatch[E]{keys: keys, batches: batches}
}

// Snapshot walks the given variants and snapshots each in turn. If the Kth
// snapshot fails, the first K-1 successful snapshots are closed before the
// error is returned - no engine-side handle is left dangling.
func (g *ColumnGroup[E]) Snapshot(keys []E) (*CrossColumnSnapshot[E], error) {
	snaps := make(map[E]Snapshot, len(keys))
	for i, k := range keys {
		s, err := g.Get(k).Snapshot()
		if err != nil {
			for j := 0; j < i; j++ {
				snaps[keys[j]].Close()
			}
			return nil, err
		}
		snaps[k] = s
	}
	return &CrossColumnSnapshot[E]{keys: keys, snapshots: snaps}, nil
}

// CrossColumnBatch holds one WriteBatch per column variant and commits them
// in enumeration order as a single logical unit.
type CrossColumnBatch[E Enum] struct {
	keys    []E
	batches map[E]*WriteBatch
}

// For returns the per-column WriteBatch for variant e so callers can
// accumulate puts/deletes routed to that column.
func (b *CrossColumnBatch[E]) For(e E) *WriteBatch {
	return b.batches[e]
}

// Pending sums pending ops across all columns.
func (b *CrossColumnBatch[E]) Pending() int {
	total := 0
	for _, wb := range b.batches {
		total += wb.Pending()
	}
	return total
}

// Commit walks columns in enumeration order and commits each in turn. The
// first failure aborts without rolling back columns already committed.
func (b *CrossColumnBatch[E]) Commit() error {
	for _, k := range b.keys {
		if err := b.batches[k].Commit(); err != nil {
			return err
		}
	}
	return nil
}

// Close drops all per-column batches.
func (b *CrossColumnBatch[E]) Close() {
	for _, wb := range b.batches {
		wb.Close()
	}
}

// CrossColumnSnapshot holds one Snapshot per column variant, all taken at
// the same logical instant.
type CrossColumnSnapshot[E Enum] struct {
	keys      []E
	snapshots map[E]Snapshot
}

// Get returns the snapshot for column variant e.
func (s *CrossColumnSnapshot[E]) Get(e E) Snapshot {
	return s.snapshots[e]
}

// Close releases every contained snapshot.
func (s *CrossColumnSnapshot[E]) Close() {
	for _, snap := range s.snapshots {
		snap.Close()
	}
}

// OwningColumnGroup owns one backend per column variant and exposes a
// non-owning ColumnGroup view over them. newHandle is supplied by the
// caller (typically a concrete backend package's constructor) so this type
// stays decoupled from any particular backend implementation; the close
// func newHandle returns alongside each handle tears that handle down.
type OwningColumnGroup[E Enum] struct {
	group   *ColumnGroup[E]
	closers map[E]func()
}

// NewOwningColumnGroup constructs one backend per key via newHandle(name)
// and wraps them in a ColumnGroup. nameOf maps a column variant to the
// ColumnName its backend should report via Database.Name. If newHandle
// fails for any key, every handle already opened is closed before the
// error is returned - no engine-side handle is left dangling, and the
// underlying open failure reaches the caller rather than being deferred to
// first use of that column.
func NewOwningColumnGroup[E Enum](keys []E, nameOf func(E) ColumnName, newHandle func(ColumnName) (Database, func(), error)) (*OwningColumnGroup[E], error) {
	handles := make(map[E]Database, len(keys))
	closers := make(map[E]func(), len(keys))
	for i, k := range keys {
		h, closeFn, err := newHandle(nameOf(k))
		if err != nil {
			for j := 0; j < i; j++ {
				if c := closers[keys[j]]; c != nil {
					c()
				}
			}
			return nil, err
		}
		handles[k] = h
		closers[k] = closeFn
	}
	group, err := NewColumnGroup(keys, handles)
	if err != nil {
		for _, c := range closers {
			if c != nil {
				c()
			}
		}
		return nil, err
	}
	return &OwningColumnGroup[E]{group: group, closers: closers}, nil
}

// ColumnsDB returns the non-owning ColumnGroup view over the owned
// backends.
func (o *OwningColumnGroup[E]) ColumnsDB() *ColumnGroup[E] {
	return o.group
}

// Close releases every owned backend.
func (o *OwningColumnGroup[E]) Close() {
	for _, c := range o.closers {
		if c != nil {
			c()
		}
	}
}
