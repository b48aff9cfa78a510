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

// Snapshot is a type-erased, point-in-time read view. Its observable
// contents are fixed at creation and are never affected by writes the
// backend sees afterwards. Close releases any engine-side handle.
type Snapshot interface {
	Get(key []byte, flags ReadFlags) (Value, bool, error)
	Contains(key []byte) (bool, error)

	// Iterator returns ErrUnsupportedOperation if the backend can't walk a
	// snapshot.
	Iterator(ordered bool) (Iterator, error)

	Close()
}
