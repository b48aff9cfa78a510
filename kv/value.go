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

// Value is a borrowed read result. A Value with a release callback is
// "pinned": its bytes are owned by the backend (e.g. a memory-mapped page)
// and Release must be called exactly once to free them. A Value without one
// is "inert": its bytes are borrowed from a longer-lived arena and the
// caller must not call Release and must not hold onto them past the next
// mutation that could invalidate the backing slice.
type Value struct {
	data    []byte
	ctx     any
	release func(ctx any)
	done    bool
}

// InertValue wraps bytes that need no release - they're stable for the
// borrower's scope without any cleanup call.
func InertValue(data []byte) Value {
	return Value{data: data}
}

// PinnedValue wraps bytes that must be released exactly once. ctx is handed
// back to release unchanged; it typically carries the backend handle needed
// to free the underlying page.
func PinnedValue(data []byte, ctx any, release func(ctx any)) Value {
	return Value{data: data, ctx: ctx, release: release}
}

// Bytes returns the borrowed payload. Valid only until Release (for pinned
// values) or until the next invalidating mutation (for inert values).
func (v Value) Bytes() []byte { return v.data }

// Pinned reports whether this value owns backend resources that must be
// released.
func (v Value) Pinned() bool { return v.release != nil }

// Release frees any backend-held resources. Calling it twice on the same
// pinned value is a bug and panics; calling it on an inert value is a no-op.
func (v *Value) Release() {
	if v.done {
		panic("kv: double release of pinned value")
	}
	if v.release == nil {
		return
	}
	v.done = true
	v.release(v.ctx)
	v.release = nil
}

// Entry is a key/value pair yielded by an Iterator. Releasing it releases
// both halves.
type Entry struct {
	Key   Value
	Value Value
}

// Release releases both the key and the value.
func (e *Entry) Release() {
	e.Key.Release()
	e.Value.Release()
}
