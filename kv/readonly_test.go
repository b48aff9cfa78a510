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

package kv_test

import (
	"testing"

	"github.com/erigontech/erigon-storage/kv"
	"github.com/erigontech/erigon-storage/kv/memory"
	"github.com/stretchr/testify/require"
)

func TestStrictReadOnlyLaws(t *testing.T) {
	base := memory.New(kv.Peers)
	require.NoError(t, base.Put([]byte("k"), []byte("v")))

	ro := kv.NewStrictReadOnly(base)

	v, ok, err := ro.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), v.Bytes())

	require.ErrorIs(t, ro.Put([]byte("k"), []byte("x")), kv.ErrStorageFailure)
	require.ErrorIs(t, ro.Delete([]byte("k")), kv.ErrStorageFailure)

	v, ok, err = base.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), v.Bytes())
}

func TestStrictReadOnlyScenario(t *testing.T) {
	base := memory.New(kv.Peers)
	require.NoError(t, base.Put([]byte("k"), []byte("v")))

	ro := kv.NewStrictReadOnly(base)
	v, ok, err := ro.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(v.Bytes()))

	err = ro.Put([]byte("k"), []byte("x"))
	require.ErrorIs(t, err, kv.ErrStorageFailure)

	v, ok, err = base.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(v.Bytes()))
}

func TestOverlayLaws(t *testing.T) {
	base := memory.New(kv.BadBlocks)
	require.NoError(t, base.Put([]byte("K"), []byte("V0")))

	wrap := kv.NewOverlayReadOnly(base, memory.New)

	require.NoError(t, wrap.Put([]byte("K"), []byte("V1")))
	v, ok, err := wrap.Get([]byte("K"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("V1"), v.Bytes())

	v, ok, err = base.Get([]byte("K"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("V0"), v.Bytes())

	require.NoError(t, wrap.Delete([]byte("K")))
	_, ok, err = wrap.Get([]byte("K"))
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err = base.Get([]byte("K"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("V0"), v.Bytes())
}

func TestOverlayPutNilValueMasksBase(t *testing.T) {
	base := memory.New(kv.BadBlocks)
	require.NoError(t, base.Put([]byte("K"), []byte("V0")))

	wrap := kv.NewOverlayReadOnly(base, memory.New)

	require.NoError(t, wrap.Put([]byte("K"), nil))
	_, ok, err := wrap.Get([]byte("K"))
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err := base.Get([]byte("K"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("V0"), v.Bytes())
}

func TestOverlayClearCycle(t *testing.T) {
	base := memory.New(kv.Bloom)
	require.NoError(t, base.Put([]byte("k"), []byte("old")))

	wrap := kv.NewOverlayReadOnly(base, memory.New)
	require.NoError(t, wrap.Put([]byte("k"), []byte("new")))
	require.NoError(t, wrap.Put([]byte("t"), []byte("1")))

	v, ok, err := wrap.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", string(v.Bytes()))

	v, ok, err = wrap.Get([]byte("t"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", string(v.Bytes()))

	clearer, ok := wrap.(kv.TempChangesClearer)
	require.True(t, ok)
	require.NoError(t, clearer.ClearTempChanges())

	v, ok, err = wrap.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "old", string(v.Bytes()))

	_, ok, err = wrap.Get([]byte("t"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOverlayAfterAnySequenceClearMatchesBase(t *testing.T) {
	base := memory.New(kv.Headers)
	require.NoError(t, base.Put([]byte("a"), []byte("1")))
	require.NoError(t, base.Put([]byte("b"), []byte("2")))

	wrap := kv.NewOverlayReadOnly(base, memory.New)
	require.NoError(t, wrap.Put([]byte("a"), []byte("override")))
	require.NoError(t, wrap.Delete([]byte("b")))
	require.NoError(t, wrap.Put([]byte("c"), []byte("3")))

	clearer := wrap.(kv.TempChangesClearer)
	require.NoError(t, clearer.ClearTempChanges())

	for _, k := range []string{"a", "b", "c"} {
		wv, wok, werr := wrap.Get([]byte(k))
		bv, bok, berr := base.Get([]byte(k))
		require.NoError(t, werr)
		require.NoError(t, berr)
		require.Equal(t, bok, wok)
		require.Equal(t, bv.Bytes(), wv.Bytes())
	}
}

func TestReadOnlyProviderCachesWrappers(t *testing.T) {
	provider := kv.NewProvider()
	base := memory.New(kv.Storage)
	provider.Register(kv.Storage, base)

	rop := kv.NewReadOnlyProvider(provider, kv.Strict, nil)

	h1, err := rop.Get(kv.Storage)
	require.NoError(t, err)
	h2, err := rop.Get(kv.Storage)
	require.NoError(t, err)
	require.Same(t, h1, h2)

	_, err = rop.Get(kv.Code)
	require.ErrorIs(t, err, kv.ErrNotRegistered)
}

func TestReadOnlyProviderClearAllTempChanges(t *testing.T) {
	provider := kv.NewProvider()
	base := memory.New(kv.DiscoveryV4Nodes)
	require.NoError(t, base.Put([]byte("k"), []byte("v")))
	provider.Register(kv.DiscoveryV4Nodes, base)

	rop := kv.NewReadOnlyProvider(provider, kv.Overlay, memory.New)
	h, err := rop.Get(kv.DiscoveryV4Nodes)
	require.NoError(t, err)
	require.NoError(t, h.Put([]byte("k"), []byte("shadowed")))

	require.NoError(t, rop.ClearAllTempChanges())

	v, ok, err := h.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(v.Bytes()))
}
