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

// Database is the polymorphic key/value façade every backend presents.
// Handles are trivially copyable (non-owning): destroying a Database value
// never destroys the backend behind it. A Database must never outlive the
// backend it points at.
type Database interface {
	// Get reads a key with default flags. ok is false when absent.
	Get(key []byte) (Value, bool, error)
	// GetFlags reads a key with explicit read hints.
	GetFlags(key []byte, flags ReadFlags) (Value, bool, error)

	// Put writes a key. A nil value is a delete; an empty-but-non-nil value
	// is a present, zero-length record.
	Put(key, value []byte) error
	PutFlags(key, value []byte, flags WriteFlags) error

	Delete(key []byte) error
	DeleteFlags(key []byte, flags WriteFlags) error

	Contains(key []byte) (bool, error)

	// Iterator returns ErrUnsupportedOperation if the backend has no cursor
	// support at all.
	Iterator(ordered bool) (Iterator, error)
	// Snapshot returns ErrUnsupportedOperation if the backend can't produce
	// a point-in-time view.
	Snapshot() (Snapshot, error)

	Flush(wait bool) error
	Clear() error
	Compact() error

	GatherMetric() DbMetric
	Name() ColumnName
}

// Ops is the typed function-pointer record a concrete backend type T
// supplies to build a Database. Every entry is signed to *T, not an opaque
// pointer - a backend that gets a field wrong is a compile error, not a
// runtime crash behind a cast.
type Ops[T any] struct {
	Get          func(t *T, key []byte, flags ReadFlags) (Value, bool, error)
	Put          func(t *T, key, value []byte, flags WriteFlags) error
	Delete       func(t *T, key []byte, flags WriteFlags) error
	Contains     func(t *T, key []byte) (bool, error)
	Iterator     func(t *T, ordered bool) (Iterator, error)
	Snapshot     func(t *T) (Snapshot, error)
	Flush        func(t *T, wait bool) error
	Clear        func(t *T) error
	Compact      func(t *T) error
	GatherMetric func(t *T) DbMetric
	Name         func(t *T) ColumnName

	// CommitBatch is optional: a backend that can apply a whole recorded
	// op sequence in one call (e.g. under a single lock acquisition or a
	// single native transaction) supplies it here. Left nil, the erased
	// handle still satisfies NativeBatcher by replaying ops one at a time
	// through Put/Delete, stopping at the first failure - the same
	// fallback WriteBatch.Commit would otherwise have to apply itself.
	CommitBatch func(t *T, ops []BatchOp) error
}

// erased is the invisible shim the generic constructor below synthesizes:
// one instantiation per concrete backend type T, generated once at compile
// time rather than hand-written per call site.
type erased[T any] struct {
	backend *T
	ops     Ops[T]
}

// NewDatabase builds a type-erased Database handle from a typed backend
// pointer and its typed operation table. This is the vtable-construction
// contract: callers never write an unsafe.Pointer cast themselves, and a
// mis-signed Ops field fails to compile rather than misdispatching at
// runtime.
//
// backend may be nil only for a stateless backend whose Ops never
// dereference it. The null backend is not such a case: its Ops read the
// column name from the backend struct, so it passes a non-nil pointer.
func NewDatabase[T any](backend *T, ops Ops[T]) Database {
	return &erased[T]{backend: backend, ops: ops}
}

func (e *erased[T]) Get(key []byte) (Value, bool, error) {
	return e.ops.Get(e.backend, key, ReadFlagNone)
}

func (e *erased[T]) GetFlags(key []byte, flags ReadFlags) (Value, bool, error) {
	return e.ops.Get(e.backend, key, flags)
}

func (e *erased[T]) Put(key, value []byte) error {
	return e.PutFlags(key, value, WriteFlagNone)
}

// PutFlags honors the "nil value is a delete" contract centrally, so no
// backend's own put needs to special-case a nil value itself.
func (e *erased[T]) PutFlags(key, value []byte, flags WriteFlags) error {
	if value == nil {
		return e.ops.Delete(e.backend, key, flags)
	}
	return e.ops.Put(e.backend, key, value, flags)
}

func (e *erased[T]) Delete(key []byte) error {
	return e.ops.Delete(e.backend, key, WriteFlagNone)
}

func (e *erased[T]) DeleteFlags(key []byte, flags WriteFlags) error {
	return e.ops.Delete(e.backend, key, flags)
}

func (e *erased[T]) Contains(key []byte) (bool, error) {
	return e.ops.Contains(e.backend, key)
}

func (e *erased[T]) Iterator(ordered bool) (Iterator, error) {
	return e.ops.Iterator(e.backend, ordered)
}

func (e *erased[T]) Snapshot() (Snapshot, error) {
	return e.ops.Snapshot(e.backend)
}

func (e *erased[T]) Flush(wait bool) error {
	return e.ops.Flush(e.backend, wait)
}

func (e *erased[T]) Clear() error {
	return e.ops.Clear(e.backend)
}

func (e *erased[T]) Compact() error {
	return e.ops.Compact(e.backend)
}

func (e *erased[T]) GatherMetric() DbMetric {
	return e.ops.GatherMetric(e.backend)
}

func (e *erased[T]) Name() ColumnName {
	return e.ops.Name(e.backend)
}

// CommitBatch makes every erased handle satisfy NativeBatcher. If the
// backend supplied a CommitBatch op it is used directly; otherwise ops
// replay sequentially through the same Put/Delete path WriteBatch.Commit
// would use without a native batcher.
func (e *erased[T]) CommitBatch(ops []BatchOp) error {
	if e.ops.CommitBatch != nil {
		return e.ops.CommitBatch(e.backend, ops)
	}
	for _, op := range ops {
		var err error
		if op.Value == nil {
			err = e.Delete(op.Key)
		} else {
			err = e.Put(op.Key, op.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
