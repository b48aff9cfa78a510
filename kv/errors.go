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

import "errors"

// The storage layer has a flat, closed error taxonomy: every backend maps
// whatever it sees internally onto one of these. No wrapping hierarchy -
// callers compare with errors.Is and move on.
var (
	// ErrStorageFailure covers backend I/O errors and on-disk corruption.
	ErrStorageFailure = errors.New("kv: storage failure")

	// ErrKeyTooLarge is returned when a key exceeds a backend's key size limit.
	ErrKeyTooLarge = errors.New("kv: key too large")

	// ErrValueTooLarge is returned when a value exceeds a backend's value size limit.
	ErrValueTooLarge = errors.New("kv: value too large")

	// ErrDatabaseClosed is returned by any operation issued against a handle
	// whose backend has already been torn down.
	ErrDatabaseClosed = errors.New("kv: database closed")

	// ErrOutOfMemory is allocator exhaustion. Kept distinct from
	// ErrStorageFailure so callers never mistake it for an I/O error.
	ErrOutOfMemory = errors.New("kv: out of memory")

	// ErrUnsupportedOperation signals a capability gap in a given backend
	// (e.g. no snapshot support), never masked by another error.
	ErrUnsupportedOperation = errors.New("kv: unsupported operation")

	// ErrNotRegistered is returned by Provider.Get when no handle is
	// registered under the requested column name.
	ErrNotRegistered = errors.New("kv: column not registered")
)
