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

// BatchOp is one accumulated write, in the order it was recorded. A nil
// Value means delete.
type BatchOp struct {
	Key   []byte
	Value []byte
}

// NativeBatcher is an optional capability a backend's Database can implement
// to commit a whole batch atomically in one call, instead of the generic
// WriteBatch replaying ops one at a time. ops is handed over in recorded
// order so a backend that can't be fully atomic can still apply it
// sequentially and report the first failure.
type NativeBatcher interface {
	CommitBatch(ops []BatchOp) error
}

// WriteBatch accumulates puts and deletes against one handle and applies
// them with a single Commit call. Not safe for concurrent use.
type WriteBatch struct {
	db  Database
	ops []BatchOp
}

// NewWriteBatch binds a batch to db. The batch holds no reference to
// anything else; if db's backend is torn down before Commit, the batch must
// not be used further.
func NewWriteBatch(db Database) *WriteBatch {
	return &WriteBatch{db: db}
}

// Put appends an accumulated put; it owns a copy of key and value.
func (b *WriteBatch) Put(key, value []byte) {
	k := append([]byte(nil), key...)
	var v []byte
	if value != nil {
		v = append(make([]byte, 0, len(value)), value...)
	}
	b.ops = append(b.ops, BatchOp{Key: k, Value: v})
}

// Delete appends an accumulated delete.
func (b *WriteBatch) Delete(key []byte) {
	k := append([]byte(nil), key...)
	b.ops = append(b.ops, BatchOp{Key: k, Value: nil})
}

// Pending returns the number of ops accumulated since the last Commit.
func (b *WriteBatch) Pending() int {
	return len(b.ops)
}

// Commit replays accumulated ops against the bound handle in order. If the
// handle implements NativeBatcher, the whole sequence is handed to its
// CommitBatch in one call; how atomic that is depends on the backend.
// Otherwise Commit iterates and stops at the first
// failing op - already-applied ops are not rolled back. On success (or on
// failure) the pending list is emptied; a batch may be reused for a new
// accumulation immediately after.
func (b *WriteBatch) Commit() error {
	defer func() { b.ops = b.ops[:0] }()

	if nb, ok := b.db.(NativeBatcher); ok {
		return nb.CommitBatch(b.ops)
	}

	for _, op := range b.ops {
		var err error
		if op.Value == nil {
			err = b.db.Delete(op.Key)
		} else {
			err = b.db.Put(op.Key, op.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Close releases the ops list. Safe to call on an already-committed batch.
func (b *WriteBatch) Close() {
	b.ops = nil
}
