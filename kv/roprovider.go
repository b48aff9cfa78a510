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

import "sync"

// OverlayMode selects what kind of read-only wrapper a ReadOnlyProvider
// hands out for each base handle it serves.
type OverlayMode uint8

const (
	// Strict wrappers reject every mutation without consulting base.
	Strict OverlayMode = iota
	// Overlay wrappers accept writes into an owned in-memory shadow that
	// base never observes, until explicitly cleared.
	Overlay
)

// ReadOnlyProvider lazily builds and caches one read-only wrapper per
// column name, so repeated calls for the same name return the same handle
// instead of constructing a fresh overlay/tombstone pair each time.
type ReadOnlyProvider struct {
	mu         sync.Mutex
	base       *Provider
	mode       OverlayMode
	newInMemory func(name ColumnName) Database

	built  [NumColumns]bool
	cached [NumColumns]Database
}

// NewReadOnlyProvider wraps base, serving every column through a read-only
// handle of the given mode. newInMemory is only consulted in Overlay mode;
// pass nil in Strict mode.
func NewReadOnlyProvider(base *Provider, mode OverlayMode, newInMemory func(name ColumnName) Database) *ReadOnlyProvider {
	return &ReadOnlyProvider{base: base, mode: mode, newInMemory: newInMemory}
}

// Get returns the cached read-only wrapper for name, building it on first
// use. Returns ErrNotRegistered if base has no handle under name.
func (p *ReadOnlyProvider) Get(name ColumnName) (Database, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.built[name] {
		return p.cached[name], nil
	}

	baseHandle, err := p.base.Get(name)
	if err != nil {
		return nil, err
	}

	var wrapped Database
	switch p.mode {
	case Overlay:
		wrapped = NewOverlayReadOnly(baseHandle, p.newInMemory)
	default:
		wrapped = NewStrictReadOnly(baseHandle)
	}

	p.cached[name] = wrapped
	p.built[name] = true
	return wrapped, nil
}

// ClearAllTempChanges clears speculative state on every wrapper built so
// far that carries any (Overlay mode); a no-op under Strict mode since
// readOnlyStrict never implements TempChangesClearer.
func (p *ReadOnlyProvider) ClearAllTempChanges() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, built := range p.built {
		if !built {
			continue
		}
		if clearer, ok := p.cached[i].(TempChangesClearer); ok {
			if err := clearer.ClearTempChanges(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close drops the cache; it does not close the underlying base handles,
// which the ReadOnlyProvider never owned.
func (p *ReadOnlyProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.cached {
		p.cached[i] = nil
		p.built[i] = false
	}
}
