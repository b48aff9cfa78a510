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

// Package null implements the zero-cost storage backend: every read
// reports absent, every write silently succeeds, every iterator is
// immediately empty. It exists for benchmarking call overhead with no
// storage behind it and for columns a given build deliberately leaves
// unbacked.
package null

import "github.com/erigontech/erigon-storage/kv"

// backend carries nothing but the column name it was opened under - no
// heap allocation beyond the struct itself.
type backend struct {
	name kv.ColumnName
}

var ops = kv.Ops[backend]{
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
}

// New returns a null-object Database for name. Writes through it silently
// succeed; this is a deliberate contract change from a backend that would
// error on every write, so callers composing an overlay or a benchmark
// harness over null never have to special-case write failures.
func New(name kv.ColumnName) kv.Database {
	return kv.NewDatabase(&backend{name: name}, ops)
}

func (b *backend) get(key []byte, flags kv.ReadFlags) (kv.Value, bool, error) {
	return kv.Value{}, false, nil
}

func (b *backend) put(key, value []byte, flags kv.WriteFlags) error {
	return nil
}

func (b *backend) delete(key []byte, flags kv.WriteFlags) error {
	return nil
}

func (b *backend) contains(key []byte) (bool, error) {
	return false, nil
}

func (b *backend) iterator(ordered bool) (kv.Iterator, error) {
	return kv.NewSliceIterator(nil), nil
}

func (b *backend) snapshot() (kv.Snapshot, error) {
	return nullSnapshot{}, nil
}

func (b *backend) flush(wait bool) error { return nil }
func (b *backend) clear() error          { return nil }
func (b *backend) compact() error        { return nil }

func (b *backend) gatherMetric() kv.DbMetric {
	return kv.DbMetric{Name: b.name}
}

func (b *backend) gatherName() kv.ColumnName {
	return b.name
}

// nullSnapshot mirrors the backend's always-empty contract; it holds no
// engine-side resource so Close is a no-op.
type nullSnapshot struct{}

func (nullSnapshot) Get(key []byte, flags kv.ReadFlags) (kv.Value, bool, error) {
	return kv.Value{}, false, nil
}
func (nullSnapshot) Contains(key []byte) (bool, error)       { return false, nil }
func (nullSnapshot) Iterator(ordered bool) (kv.Iterator, error) { return kv.NewSliceIterator(nil), nil }
func (nullSnapshot) Close()                                  {}

// factory produces null backends. It never touches a filesystem, so
// Settings.Path is accepted but ignored.
type factory struct{}

// NewFactory returns a kv.Factory that produces null-object handles.
func NewFactory() kv.Factory { return factory{} }

func (factory) CreateDB(settings kv.Settings) (kv.OwnedDatabase, error) {
	return kv.OwnedDatabase{DB: New(settings.Name)}, nil
}

func (factory) GetFullDBPath(settings kv.Settings) string { return settings.Path }

func (factory) Close() {}
