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

func newReceiptsGroup(t *testing.T) *kv.ColumnGroup[kv.ReceiptsColumn] {
	t.Helper()
	handles := map[kv.ReceiptsColumn]kv.Database{
		kv.ReceiptsDefault:      memory.New(kv.Receipts),
		kv.ReceiptsTransactions: memory.New(kv.Receipts),
		kv.ReceiptsBlocks:       memory.New(kv.Receipts),
	}
	group, err := kv.NewColumnGroup(kv.ReceiptsColumnKeys, handles)
	require.NoError(t, err)
	return group
}

func TestCrossColumnIsolation(t *testing.T) {
	group := newReceiptsGroup(t)

	require.NoError(t, group.Get(kv.ReceiptsDefault).Put([]byte("K"), []byte("V")))

	_, ok, err := group.Get(kv.ReceiptsTransactions).Get([]byte("K"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCrossColumnBatchCommit(t *testing.T) {
	group := newReceiptsGroup(t)

	b := group.Batch(kv.ReceiptsColumnKeys)
	b.For(kv.ReceiptsDefault).Put([]byte("k1"), []byte("v1"))
	b.For(kv.ReceiptsBlocks).Put([]byte("k2"), []byte("v2"))
	require.Equal(t, 2, b.Pending())

	require.NoError(t, b.Commit())
	require.Equal(t, 0, b.Pending())

	v, ok, err := group.Get(kv.ReceiptsDefault).Get([]byte("k1"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", string(v.Bytes()))

	v, ok, err = group.Get(kv.ReceiptsBlocks).Get([]byte("k2"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", string(v.Bytes()))

	_, ok, err = group.Get(kv.ReceiptsTransactions).Get([]byte("k1"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestColumnGroupSnapshotIsolation(t *testing.T) {
	group := newReceiptsGroup(t)
	require.NoError(t, group.Get(kv.ReceiptsDefault).Put([]byte("k"), []byte("before")))

	snap, err := group.Snapshot(kv.ReceiptsColumnKeys)
	require.NoError(t, err)
	defer snap.Close()

	require.NoError(t, group.Get(kv.ReceiptsDefault).Put([]byte("k"), []byte("after")))

	v, ok, err := snap.Get(kv.ReceiptsDefault).Get([]byte("k"), kv.ReadFlagNone)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "before", string(v.Bytes()))

	v, ok, err = group.Get(kv.ReceiptsDefault).Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "after", string(v.Bytes()))
}

func TestOwningColumnGroupLifecycle(t *testing.T) {
	closed := map[kv.ColumnName]bool{}
	owning, err := kv.NewOwningColumnGroup(
		kv.BlobTxColumnKeys,
		func(kv.BlobTxColumn) kv.ColumnName { return kv.BlobTransactions },
		func(name kv.ColumnName) (kv.Database, func(), error) {
			return memory.New(name), func() { closed[name] = true }, nil
		},
	)
	require.NoError(t, err)

	group := owning.ColumnsDB()
	require.NoError(t, group.Get(kv.FullBlobTxs).Put([]byte("k"), []byte("v")))

	owning.Close()
	require.True(t, closed[kv.BlobTransactions])
}

func TestBlobTxColumnWireStrings(t *testing.T) {
	require.Equal(t, "FullBlobTxs", kv.FullBlobTxs.String())
	require.Equal(t, "LightBlobTxs", kv.LightBlobTxs.String())
	require.Equal(t, "ProcessedTxs", kv.ProcessedTxs.String())
}

func TestReceiptsColumnWireStrings(t *testing.T) {
	require.Equal(t, "Default", kv.ReceiptsDefault.String())
	require.Equal(t, "Transactions", kv.ReceiptsTransactions.String())
	require.Equal(t, "Blocks", kv.ReceiptsBlocks.String())
}
