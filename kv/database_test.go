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
	"github.com/erigontech/erigon-storage/kv/null"
	"github.com/stretchr/testify/require"
)

func TestDatabaseRoundTrip(t *testing.T) {
	db := memory.New(kv.State)

	require.NoError(t, db.Put([]byte("hello"), []byte("world")))
	v, ok, err := db.Get([]byte("hello"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("world"), v.Bytes())

	require.NoError(t, db.Put([]byte("hello"), []byte("again")))
	v2, ok, err := db.Get([]byte("hello"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("again"), v2.Bytes())

	require.NoError(t, db.Delete([]byte("hello")))
	_, ok, err = db.Get([]byte("hello"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetMatchesGetFlagsNone(t *testing.T) {
	db := memory.New(kv.Code)
	require.NoError(t, db.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, db.Put([]byte("k2"), []byte("v2")))

	for _, k := range [][]byte{[]byte("k1"), []byte("k2"), []byte("missing")} {
		v1, ok1, err1 := db.Get(k)
		v2, ok2, err2 := db.GetFlags(k, kv.ReadFlagNone)
		require.Equal(t, err1, err2)
		require.Equal(t, ok1, ok2)
		require.Equal(t, v1.Bytes(), v2.Bytes())
	}
}

func TestNullObjectLaws(t *testing.T) {
	n := null.New(kv.Metadata)

	require.NoError(t, n.Put([]byte("k"), []byte("v")))

	_, ok, err := n.Get([]byte("k"))
	require.NoError(t, err)
	require.False(t, ok)

	contains, err := n.Contains([]byte("k"))
	require.NoError(t, err)
	require.False(t, contains)

	it, err := n.Iterator(true)
	require.NoError(t, err)
	_, ok, err = it.Next()
	require.NoError(t, err)
	require.False(t, ok)
	it.Close()

	snap, err := n.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	_, ok, err = snap.Get([]byte("k"), kv.ReadFlagNone)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, n.Flush(true))
	require.NoError(t, n.Clear())
	require.NoError(t, n.Compact())

	require.Equal(t, kv.Metadata, n.Name())
}

func TestSnapshotIsolation(t *testing.T) {
	db := memory.New(kv.Blocks)
	require.NoError(t, db.Put([]byte("K"), []byte("V0")))

	snap, err := db.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	require.NoError(t, db.Put([]byte("K"), []byte("V1")))

	v, ok, err := snap.Get([]byte("K"), kv.ReadFlagNone)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("V0"), v.Bytes())

	v, ok, err = db.Get([]byte("K"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("V1"), v.Bytes())
}

func TestColumnWireStrings(t *testing.T) {
	cases := map[kv.ColumnName]string{
		kv.State:            "state",
		kv.Storage:          "storage",
		kv.Code:             "code",
		kv.Blocks:           "blocks",
		kv.Headers:          "headers",
		kv.BlockNumbers:     "blockNumbers",
		kv.BlockInfos:       "blockInfos",
		kv.Receipts:         "receipts",
		kv.BadBlocks:        "badBlocks",
		kv.Bloom:            "bloom",
		kv.Metadata:         "metadata",
		kv.BlobTransactions: "blobTransactions",
		kv.DiscoveryV4Nodes: "discoveryNodes",
		kv.DiscoveryV5Nodes: "discoveryV5Nodes",
		kv.Peers:            "peers",
	}
	for name, wire := range cases {
		require.Equal(t, wire, name.String())
		resolved, err := kv.ColumnNameFromWire(wire)
		require.NoError(t, err)
		require.Equal(t, name, resolved)
	}
	require.Len(t, kv.ColumnNames, len(cases))
}
