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

// ReadFlags is a single-byte bit set of read-path hints. Backends that can't
// act on a hint just ignore it.
type ReadFlags uint8

const (
	ReadFlagNone              ReadFlags = 0
	ReadFlagHintCacheMiss     ReadFlags = 1 << 0
	ReadFlagHintReadAhead     ReadFlags = 1 << 1
	ReadFlagHintReadAhead2    ReadFlags = 1 << 2
	ReadFlagHintReadAhead3    ReadFlags = 1 << 3
	ReadFlagSkipDuplicateRead ReadFlags = 1 << 4
)

// Has reports whether every bit of other is set in f. A strict subset of
// other being present is not enough - this is an AND-equality test, not an
// overlap test.
func (f ReadFlags) Has(other ReadFlags) bool {
	return f&other == other
}

// Merge ORs other into f.
func (f ReadFlags) Merge(other ReadFlags) ReadFlags {
	return f | other
}

// WriteFlags is a single-byte bit set of write-path hints.
type WriteFlags uint8

const (
	WriteFlagNone        WriteFlags = 0
	WriteFlagLowPriority WriteFlags = 1 << 0
	WriteFlagDisableWAL  WriteFlags = 1 << 1

	// WriteFlagLowPriorityAndNoWAL is the OR of the two flags above.
	WriteFlagLowPriorityAndNoWAL WriteFlags = WriteFlagLowPriority | WriteFlagDisableWAL
)

// Has reports whether every bit of other is set in f.
func (f WriteFlags) Has(other WriteFlags) bool {
	return f&other == other
}

// Merge ORs other into f.
func (f WriteFlags) Merge(other WriteFlags) WriteFlags {
	return f | other
}
