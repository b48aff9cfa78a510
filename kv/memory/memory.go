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

// Package memory implements the in-memory storage backend: an ordered
// key/value map good for tests, the overlay wrapper's shadow state, and
// small column families that never need to survive a restart.
package memory

import (
	"bytes"
	"math"
	"sync"

	"github.com/erigontech/erigon-storage/internal/mathutil"
	"github.com/erigontech/erigon-storage/kv"
	"github.com/tidwall/btree"
)

type pair struct {
	key   []byte
	value []byte
}

func less(a, b pair) bool { return bytes.Compare(a.key, b.key) < 0 }

// backend is an ordered, mutable key/value map. Values returned from Get
// are inert copies - mutating the tree after a Get does not retroactively
// change bytes the caller already holds.
type backend struct {
	name kv.ColumnName

	mu   sync.RWMutex
	tree *btree.BTreeG[pair]

	getOps, putOps, deleteOps uint64
}

var opsTable = kv.Ops[backend]{
	Get:          (*backend).get,
	Put:          (*backend).put,
	Delete:       (*backend).delete,
	Contains:     (*backend).contains,
	Iterator:     (*backend).iterator,
	Snapshot:     (*backend).snapshot,
	Flush:        (*backend).flush,
	Clear:        (*backend).clear,
	Compact:      (*backend).compact,
	GatherMetric: (*backend).gatherMetric,
	Name:         (*backend).gatherName,
	CommitBatch:  (*backend).CommitBatch,
}

// New returns an empty in-memory Database for name.
func New(name kv.ColumnName) kv.Database {
	b := &backend{name: name, tree: btree.NewBTreeG(less)}
	return kv.NewDatabase(b, opsTable)
}

func (b *backend) get(key []byte, flags kv.ReadFlags) (kv.Value, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.getOps++
	kv.RecordOp(b.name, "get")
	p, ok := b.tree.Get(pair{key: key})
	if !ok {
		return kv.Value{}, false, nil
	}
	return kv.InertValue(append([]byte(nil), p.value...)), true, nil
}

// put never sees a nil value: erased.PutFlags routes those to delete before
// a backend's Ops.Put is ever reached.
func (b *backend) put(key, value []byte, flags kv.WriteFlags) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.putOps++
	k := append([]byte(nil), key...)
	v := append([]byte(nil), value...)
	b.tree.Set(pair{key: k, value: v})
	kv.RecordOp(b.name, "put")
	return nil
}

func (b *backend) delete(key []byte, flags kv.WriteFlags) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteOps++
	b.tree.Delete(pair{key: key})
	kv.RecordOp(b.name, "delete")
	return nil
}

func (b *backend) contains(key []byte) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.tree.Get(pair{key: key})
	return ok, nil
}

func (b *backend) iterator(ordered bool) (kv.Iterator, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := make([]kv.Entry, 0, b.tree.Len())
	walk := func(p pair) bool {
		entries = append(entries, kv.Entry{
			Key:   kv.InertValue(append([]byte(nil), p.key...)),
			Value: kv.InertValue(append([]byte(nil), p.value...)),
		})
		return true
	}
	// The tree is always key-ordered; ordered is accepted for interface
	// parity with backends where unordered iteration is materially
	// cheaper.
	b.tree.Scan(walk)
	return kv.NewSliceIterator(entries), nil
}

// snapshot takes an O(1) copy-on-write clone of the tree via btree's Copy,
// so later mutations to the live backend never perturb what was captured.
func (b *backend) snapshot() (kv.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &memSnapshot{tree: b.tree.Copy()}, nil
}

func (b *backend) flush(wait bool) error { return nil }

func (b *backend) clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tree = btree.NewBTreeG(less)
	return nil
}

func (b *backend) compact() error { return nil }

func (b *backend) gatherMetric() kv.DbMetric {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var size uint64
	b.tree.Scan(func(p pair) bool {
		entrySize := uint64(len(p.key) + len(p.value))
		sum, overflow := mathutil.SafeAdd(size, entrySize)
		if overflow {
			sum = math.MaxUint64
		}
		size = sum
		return true
	})
	keyCount := b.tree.Len()
	kv.RecordKeyCount(b.name, keyCount)
	return kv.DbMetric{
		Name:      b.name,
		KeyCount:  uint64(keyCount),
		SizeBytes: size,
		GetOps:    b.getOps,
		PutOps:    b.putOps,
		DeleteOps: b.deleteOps,
	}
}

func (b *backend) gatherName() kv.ColumnName { return b.name }

// CommitBatch implements kv.NativeBatcher: every op in a batch applies
// under one lock acquisition instead of one per op.
func (b *backend) CommitBatch(ops []kv.BatchOp) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, op := range ops {
		if op.Value == nil {
			b.deleteOps++
			b.tree.Delete(pair{key: op.Key})
			kv.RecordOp(b.name, "delete")
			continue
		}
		b.putOps++
		b.tree.Set(pair{key: op.Key, value: op.Value})
		kv.RecordOp(b.name, "put")
	}
	return nil
}

// memSnapshot holds a copy-on-write tree clone taken at one instant.
type memSnapshot struct {
	tree *btree.BTreeG[pair]
}

func (s *memSnapshot) Get(key []byte, flags kv.ReadFlags) (kv.Value, bool, error) {
	p, ok := s.tree.Get(pair{key: key})
	if !ok {
		return kv.Value{}, false, nil
	}
	return kv.InertValue(append([]byte(nil), p.value...)), true, nil
}

func (s *memSnapshot) Contains(key []byte) (bool, error) {
	_, ok := s.tree.Get(pair{key: key})
	return ok, nil
}

func (s *memSnapshot) Iterator(ordered bool) (kv.Iterator, error) {
	entries := make([]kv.Entry, 0, s.tree.Len())
	s.tree.Scan(func(p pair) bool {
		entries = append(entries, kv.Entry{
			Key:   kv.InertValue(append([]byte(nil), p.key...)),
			Value: kv.InertValue(append([]byte(nil), p.value...)),
		})
		return true
	})
	return kv.NewSliceIterator(entries), nil
}

func (s *memSnapshot) Close() {}

// factory produces in-memory backends; Settings.Path is accepted but
// ignored since nothing here touches a filesystem.
type factory struct{}

// NewFactory returns a kv.Factory that produces in-memory handles.
func NewFactory() kv.Factory { return factory{} }

func (factory) CreateDB(settings kv.Settings) (kv.OwnedDatabase, error) {
	return kv.NewOwnedDatabase(New(settings.Name), nil), nil
}

func (factory) GetFullDBPath(settings kv.Settings) string { return settings.Path }

func (factory) Close() {}
