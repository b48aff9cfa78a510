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

// TempChangesClearer is implemented by read-only wrappers that carry
// speculative state (the overlay mode). ClearAllTempChanges on a
// ReadOnlyProvider type-asserts for this; strict wrappers don't implement
// it, so clearing them is correctly a no-op.
type TempChangesClearer interface {
	ClearTempChanges() error
}

// --- Strict mode ---------------------------------------------------------

// readOnlyStrict forwards every read verbatim to base and rejects every
// mutation without ever consulting base. No allocator, no state beyond the
// reference - this is the hot read path for eth_call and similar.
type readOnlyStrict struct {
	base Database
}

// NewStrictReadOnly wraps base so that writes through the returned handle
// fail with ErrStorageFailure while reads pass straight through.
func NewStrictReadOnly(base Database) Database {
	return &readOnlyStrict{base: base}
}

func (r *readOnlyStrict) Get(key []byte) (Value, bool, error) { return r.base.Get(key) }
func (r *readOnlyStrict) GetFlags(key []byte, flags ReadFlags) (Value, bool, error) {
	return r.base.GetFlags(key, flags)
}
func (r *readOnlyStrict) Put(key, value []byte) error                         { return ErrStorageFailure }
func (r *readOnlyStrict) PutFlags(key, value []byte, flags WriteFlags) error   { return ErrStorageFailure }
func (r *readOnlyStrict) Delete(key []byte) error                             { return ErrStorageFailure }
func (r *readOnlyStrict) DeleteFlags(key []byte, flags WriteFlags) error      { return ErrStorageFailure }
func (r *readOnlyStrict) Contains(key []byte) (bool, error)                  { return r.base.Contains(key) }
func (r *readOnlyStrict) Iterator(ordered bool) (Iterator, error)            { return r.base.Iterator(ordered) }
func (r *readOnlyStrict) Snapshot() (Snapshot, error)                        { return r.base.Snapshot() }
func (r *readOnlyStrict) Flush(wait bool) error                              { return nil }
func (r *readOnlyStrict) Clear() error                                       { return ErrStorageFailure }
func (r *readOnlyStrict) Compact() error                                     { return ErrStorageFailure }
func (r *readOnlyStrict) GatherMetric() DbMetric                            { return r.base.GatherMetric() }
func (r *readOnlyStrict) Name() ColumnName                                   { return r.base.Name() }

// --- Overlay mode ---------------------------------------------------------

// readOnlyOverlay fronts base with an owned in-memory overlay plus an owned
// in-memory tombstone set. Read resolution order: tombstoned -> absent;
// else overlay value if present; else forward to base. Implements both
// speculative block execution (pile up writes, discard at block end) and
// read-only RPC execution (same type, just never mutated).
type readOnlyOverlay struct {
	base       Database
	overlay    Database
	tombstones Database
}

// NewOverlayReadOnly wraps base with a writable in-memory overlay; writes
// land in the overlay and never reach base. newInMemory
// constructs the two in-memory backends the overlay needs (one for
// shadowed values, one for the tombstone set) - injected so this package
// stays decoupled from any one in-memory backend implementation.
func NewOverlayReadOnly(base Database, newInMemory func(name ColumnName) Database) Database {
	name := base.Name()
	return &readOnlyOverlay{
		base:       base,
		overlay:    newInMemory(name),
		tombstones: newInMemory(name),
	}
}

func (r *readOnlyOverlay) Get(key []byte) (Value, bool, error) {
	return r.GetFlags(key, ReadFlagNone)
}

func (r *readOnlyOverlay) GetFlags(key []byte, flags ReadFlags) (Value, bool, error) {
	tomb, err := r.tombstones.Contains(key)
	if err != nil {
		return Value{}, false, err
	}
	if tomb {
		return Value{}, false, nil
	}
	if v, ok, err := r.overlay.GetFlags(key, flags); err != nil {
		return Value{}, false, err
	} else if ok {
		return v, true, nil
	}
	return r.base.GetFlags(key, flags)
}

func (r *readOnlyOverlay) Put(key, value []byte) error {
	return r.PutFlags(key, value, WriteFlagNone)
}

func (r *readOnlyOverlay) PutFlags(key, value []byte, flags WriteFlags) error {
	if value == nil {
		return r.DeleteFlags(key, flags)
	}
	if err := r.tombstones.DeleteFlags(key, flags); err != nil {
		return err
	}
	return r.overlay.PutFlags(key, value, flags)
}

func (r *readOnlyOverlay) Delete(key []byte) error {
	return r.DeleteFlags(key, WriteFlagNone)
}

func (r *readOnlyOverlay) DeleteFlags(key []byte, flags WriteFlags) error {
	if err := r.overlay.DeleteFlags(key, flags); err != nil {
		return err
	}
	return r.tombstones.PutFlags(key, []byte{}, flags)
}

func (r *readOnlyOverlay) Contains(key []byte) (bool, error) {
	_, ok, err := r.GetFlags(key, ReadFlagNone)
	return ok, err
}

// Iterator materializes the merged view: base entries not shadowed by a
// tombstone or overlay write, followed by the overlay's own entries. The
// small-working-set assumption matches the in-memory backends this wrapper
// is built from.
func (r *readOnlyOverlay) Iterator(ordered bool) (Iterator, error) {
	baseIt, err := r.base.Iterator(ordered)
	if err != nil {
		return nil, err
	}
	defer baseIt.Close()

	var out []Entry
	for {
		e, ok, err := baseIt.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tomb, err := r.tombstones.Contains(e.Key.Bytes())
		if err != nil {
			return nil, err
		}
		if tomb {
			continue
		}
		if shadowed, err := r.overlay.Contains(e.Key.Bytes()); err != nil {
			return nil, err
		} else if shadowed {
			continue
		}
		out = append(out, e)
	}

	overlayIt, err := r.overlay.Iterator(ordered)
	if err != nil {
		return nil, err
	}
	defer overlayIt.Close()
	for {
		e, ok, err := overlayIt.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, e)
	}

	return NewSliceIterator(out), nil
}

// ClearTempChanges drops every overlay entry and every tombstone, restoring
// the wrapper to a pristine view of base.
func (r *readOnlyOverlay) ClearTempChanges() error {
	if err := r.overlay.Clear(); err != nil {
		return err
	}
	return r.tombstones.Clear()
}

func (r *readOnlyOverlay) Flush(wait bool) error { return r.overlay.Flush(wait) }
func (r *readOnlyOverlay) Clear() error          { return r.ClearTempChanges() }
func (r *readOnlyOverlay) Compact() error        { return nil }
func (r *readOnlyOverlay) GatherMetric() DbMetric {
	return r.overlay.GatherMetric()
}
func (r *readOnlyOverlay) Name() ColumnName { return r.base.Name() }

// overlaySnapshot composes a base snapshot, an overlay snapshot, and a
// tombstone snapshot taken at the same logical instant, applying the same
// resolution order as the live wrapper.
type overlaySnapshot struct {
	base       Snapshot
	overlay    Snapshot
	tombstones Snapshot
}

func (r *readOnlyOverlay) Snapshot() (Snapshot, error) {
	baseSnap, err := r.base.Snapshot()
	if err != nil {
		return nil, err
	}
	overlaySnap, err := r.overlay.Snapshot()
	if err != nil {
		baseSnap.Close()
		return nil, err
	}
	tombSnap, err := r.tombstones.Snapshot()
	if err != nil {
		baseSnap.Close()
		overlaySnap.Close()
		return nil, err
	}
	return &overlaySnapshot{base: baseSnap, overlay: overlaySnap, tombstones: tombSnap}, nil
}

func (s *overlaySnapshot) Get(key []byte, flags ReadFlags) (Value, bool, error) {
	tomb, err := s.tombstones.Contains(key)
	if err != nil {
		return Value{}, false, err
	}
	if tomb {
		return Value{}, false, nil
	}
	if v, ok, err := s.overlay.Get(key, flags); err != nil {
		return Value{}, false, err
	} else if ok {
		return v, true, nil
	}
	return s.base.Get(key, flags)
}

func (s *overlaySnapshot) Contains(key []byte) (bool, error) {
	_, ok, err := s.Get(key, ReadFlagNone)
	return ok, err
}

func (s *overlaySnapshot) Iterator(ordered bool) (Iterator, error) {
	return nil, ErrUnsupportedOperation
}

func (s *overlaySnapshot) Close() {
	s.base.Close()
	s.overlay.Close()
	s.tombstones.Close()
}
