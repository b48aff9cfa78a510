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

import (
	"fmt"
	"path/filepath"
)

// Settings configures one column's on-disk or in-memory footprint. Path is
// ignored by backends that don't persist (memory, null).
type Settings struct {
	Name ColumnName
	Path string

	// DeleteOnStart wipes any existing data at Path before opening.
	DeleteOnStart bool
	// CanDeleteFolder marks Path as safe to remove entirely once the handle
	// it backed is torn down. Defaults true. No Factory in this module reads
	// it: none of them removes Path on Close or on Release.
	CanDeleteFolder bool
}

// DefaultSettings returns Settings for name rooted under dir, with
// CanDeleteFolder true and DeleteOnStart false.
func DefaultSettings(name ColumnName, dir string) Settings {
	return Settings{
		Name:            name,
		Path:            filepath.Join(dir, name.String()),
		DeleteOnStart:   false,
		CanDeleteFolder: true,
	}
}

// OwnedDatabase pairs a handle with the teardown its Factory requires.
// Release must be called exactly once, after every use of DB has stopped;
// calling any DB method afterward violates the handle's lifetime contract.
type OwnedDatabase struct {
	DB      Database
	release func()
}

// Release tears down the backend behind DB. Safe to call on a zero value
// (release nil) as a no-op.
func (o *OwnedDatabase) Release() {
	if o.release != nil {
		o.release()
	}
}

// NewOwnedDatabase pairs db with its teardown. Backend packages outside kv
// use this to construct the OwnedDatabase their Factory.CreateDB returns,
// since the release field itself is not exported.
func NewOwnedDatabase(db Database, release func()) OwnedDatabase {
	return OwnedDatabase{DB: db, release: release}
}

// Factory builds column handles for one backend kind (memory, null, the
// persistent engine). A Factory owns no state of its own beyond what it
// needs to open new handles; handle lifetime is owned by the returned
// OwnedDatabase, not by the Factory.
type Factory interface {
	// CreateDB opens (or creates) the backend for settings and returns an
	// owned handle.
	CreateDB(settings Settings) (OwnedDatabase, error)
	// GetFullDBPath reports where settings would place its data on disk,
	// without opening anything. Backends with no on-disk footprint return
	// settings.Path unchanged.
	GetFullDBPath(settings Settings) string
	// Close releases factory-level resources (e.g. a shared engine
	// environment). Handles already produced by CreateDB remain valid
	// until their own Release is called.
	Close()
}

// ReadOnlyFactory wraps another Factory so every handle it produces is
// read-only, in the given mode. Overlay mode needs an in-memory backend
// constructor to build the shadow/tombstone pair; Strict mode ignores it.
type ReadOnlyFactory struct {
	inner       Factory
	mode        OverlayMode
	newInMemory func(name ColumnName) Database
}

// NewReadOnlyFactory wraps inner. Pass newInMemory as nil for Strict mode.
func NewReadOnlyFactory(inner Factory, mode OverlayMode, newInMemory func(name ColumnName) Database) *ReadOnlyFactory {
	return &ReadOnlyFactory{inner: inner, mode: mode, newInMemory: newInMemory}
}

func (f *ReadOnlyFactory) CreateDB(settings Settings) (OwnedDatabase, error) {
	owned, err := f.inner.CreateDB(settings)
	if err != nil {
		return OwnedDatabase{}, err
	}

	var wrapped Database
	switch f.mode {
	case Overlay:
		wrapped = NewOverlayReadOnly(owned.DB, f.newInMemory)
	default:
		wrapped = NewStrictReadOnly(owned.DB)
	}

	return OwnedDatabase{DB: wrapped, release: owned.release}, nil
}

func (f *ReadOnlyFactory) GetFullDBPath(settings Settings) string {
	return f.inner.GetFullDBPath(settings)
}

func (f *ReadOnlyFactory) Close() {
	f.inner.Close()
}

// NewColumnGroupFactory produces an OwningColumnGroup[E] by opening one handle
// per enum variant through a shared Factory, deriving each variant's
// Settings from base with Name set to nameOf(variant) and Path set to that
// name's wire string inside base.Path's parent directory. A failed open for any variant aborts
// construction immediately: every handle already opened is closed, and the
// underlying error reaches the caller wrapped in ErrStorageFailure rather
// than being deferred to a later operation on that column.
func NewColumnGroupFactory[E Enum](factory Factory, keys []E, nameOf func(E) ColumnName, base Settings) (*OwningColumnGroup[E], error) {
	return NewOwningColumnGroup(keys, nameOf, func(name ColumnName) (Database, func(), error) {
		settings := base
		settings.Name = name
		settings.Path = filepath.Join(filepath.Dir(base.Path), name.String())

		owned, err := factory.CreateDB(settings)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
		}
		return owned.DB, owned.Release, nil
	})
}
