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

// Provider is a sparse column-name -> handle registry. It never owns the
// handles it holds; the registrant keeps backend ownership and teardown
// responsibility.
type Provider struct {
	mu      sync.RWMutex
	handles map[ColumnName]Database
}

// NewProvider returns an empty Provider.
func NewProvider() *Provider {
	return &Provider{handles: make(map[ColumnName]Database)}
}

// Register associates name with h, overwriting any previous registration.
func (p *Provider) Register(name ColumnName, h Database) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handles[name] = h
}

// Get returns the handle registered under name, or ErrNotRegistered.
func (p *Provider) Get(name ColumnName) (Database, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.handles[name]
	if !ok {
		return nil, ErrNotRegistered
	}
	return h, nil
}

// Contains reports whether name has a registered handle.
func (p *Provider) Contains(name ColumnName) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.handles[name]
	return ok
}
