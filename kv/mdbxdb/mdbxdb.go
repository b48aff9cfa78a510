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

// Package mdbxdb is the persistent-engine adapter stub: it opens and holds
// a real MDBX environment per column so the lifetime and path-handling
// contract is exercised end to end, but every read/write operation still
// returns kv.ErrStorageFailure until the cursor and transaction plumbing
// above the open environment is implemented.
package mdbxdb

import (
	"os"
	"path/filepath"

	"github.com/erigontech/erigon-lib/log/v3"
	"github.com/erigontech/erigon-storage/kv"
	"github.com/erigontech/mdbx-go/mdbx"
)

// backend holds an opened MDBX environment. Every operation beyond open and
// close is unimplemented, matching the spec's stub contract for the
// persistent engine: callers can stand one up and tear it down safely
// without a single byte of real storage behind it yet.
type backend struct {
	name kv.ColumnName
	path string
	env  *mdbx.Env
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
}

// Open creates the directory at settings.Path if needed and opens an MDBX
// environment rooted there. The returned close func must be called exactly
// once to release the environment.
func Open(settings kv.Settings) (kv.Database, func(), error) {
	if settings.DeleteOnStart {
		if err := os.RemoveAll(settings.Path); err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(settings.Path, 0o755); err != nil {
		return nil, nil, err
	}

	env, err := mdbx.NewEnv()
	if err != nil {
		log.Error("mdbxdb: environment create failed", "column", settings.Name, "err", err)
		return nil, nil, err
	}
	if err := env.Open(settings.Path, mdbx.Coalesce, 0o664); err != nil {
		log.Error("mdbxdb: environment open failed", "column", settings.Name, "path", settings.Path, "err", err)
		env.Close()
		return nil, nil, kv.ErrStorageFailure
	}

	b := &backend{name: settings.Name, path: settings.Path, env: env}
	closeFn := func() {
		log.Info("mdbxdb: closing environment", "column", settings.Name)
		env.Close()
	}
	return kv.NewDatabase(b, opsTable), closeFn, nil
}

func (b *backend) get(key []byte, flags kv.ReadFlags) (kv.Value, bool, error) {
	return kv.Value{}, false, kv.ErrStorageFailure
}

func (b *backend) put(key, value []byte, flags kv.WriteFlags) error {
	return kv.ErrStorageFailure
}

func (b *backend) delete(key []byte, flags kv.WriteFlags) error {
	return kv.ErrStorageFailure
}

func (b *backend) contains(key []byte) (bool, error) {
	return false, kv.ErrStorageFailure
}

func (b *backend) iterator(ordered bool) (kv.Iterator, error) {
	return nil, kv.ErrStorageFailure
}

func (b *backend) snapshot() (kv.Snapshot, error) {
	return nil, kv.ErrStorageFailure
}

func (b *backend) flush(wait bool) error { return kv.ErrStorageFailure }
func (b *backend) clear() error          { return kv.ErrStorageFailure }
func (b *backend) compact() error        { return kv.ErrStorageFailure }

func (b *backend) gatherMetric() kv.DbMetric {
	return kv.DbMetric{Name: b.name}
}

func (b *backend) gatherName() kv.ColumnName { return b.name }

// factory opens one MDBX environment per CreateDB call, under a shared
// root directory.
type factory struct {
	root string
}

// NewFactory returns a kv.Factory rooted at dir. Each column gets its own
// subdirectory and its own MDBX environment.
func NewFactory(dir string) kv.Factory { return factory{root: dir} }

func (f factory) CreateDB(settings kv.Settings) (kv.OwnedDatabase, error) {
	if settings.Path == "" {
		settings.Path = f.GetFullDBPath(settings)
	}
	db, closeFn, err := Open(settings)
	if err != nil {
		return kv.OwnedDatabase{}, err
	}
	return kv.NewOwnedDatabase(db, closeFn), nil
}

func (f factory) GetFullDBPath(settings kv.Settings) string {
	return filepath.Join(f.root, settings.Name.String())
}

func (f factory) Close() {}
