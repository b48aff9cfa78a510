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

// Iterator is a type-erased cursor over a backend-defined order of entries.
// Close must be called exactly once, whether the iterator was drained or
// abandoned early.
type Iterator interface {
	// Next advances the cursor and returns the entry at the new position.
	// ok is false once the cursor is exhausted; err is non-nil only on
	// backend failure, in which case ok is also false.
	Next() (entry Entry, ok bool, err error)

	// Close releases cursor-side resources. Safe to call after Next has
	// already returned ok=false, but must be called exactly once overall.
	Close()
}

// sliceIterator adapts a pre-materialized slice of entries into an Iterator.
// Used by backends (null, memory, the overlay composer) whose working set is
// small enough to snapshot eagerly rather than hold a live cursor open.
type sliceIterator struct {
	entries []Entry
	pos     int
}

// NewSliceIterator builds an Iterator that simply walks entries in order.
func NewSliceIterator(entries []Entry) Iterator {
	return &sliceIterator{entries: entries}
}

func (it *sliceIterator) Next() (Entry, bool, error) {
	if it.pos >= len(it.entries) {
		return Entry{}, false, nil
	}
	e := it.entries[it.pos]
	it.pos++
	return e, true, nil
}

func (it *sliceIterator) Close() {
	it.entries = nil
}
