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

import "fmt"

// ColumnName is the closed, dense enumeration of logical partitions the
// storage layer knows about. The ordinal value doubles as an array index
// for column groups, so new members must be appended, never inserted.
type ColumnName uint8

const (
	State ColumnName = iota
	Storage
	Code
	Blocks
	Headers
	BlockNumbers
	BlockInfos
	Receipts
	BadBlocks
	Bloom
	Metadata
	BlobTransactions
	DiscoveryV4Nodes
	DiscoveryV5Nodes
	Peers

	// columnNameLen is the number of real members above. Not a column itself.
	columnNameLen
)

// columnWire holds the bit-exact wire strings used for interop with peer
// clients. Index position must track the const block above.
var columnWire = [columnNameLen]string{
	State:            "state",
	Storage:          "storage",
	Code:             "code",
	Blocks:           "blocks",
	Headers:          "headers",
	BlockNumbers:     "blockNumbers",
	BlockInfos:       "blockInfos",
	Receipts:         "receipts",
	BadBlocks:        "badBlocks",
	Bloom:            "bloom",
	Metadata:         "metadata",
	BlobTransactions: "blobTransactions",
	DiscoveryV4Nodes: "discoveryNodes",
	DiscoveryV5Nodes: "discoveryV5Nodes",
	Peers:            "peers",
}

// String returns the bit-exact wire form of the column name.
func (c ColumnName) String() string {
	if c < columnNameLen {
		return columnWire[c]
	}
	return "unknown"
}

// Valid reports whether c is one of the 15 defined members.
func (c ColumnName) Valid() bool {
	return c < columnNameLen
}

// ColumnNames is the compile-time-constant list of every ColumnName, in
// ordinal order. Column groups iterate this to build dense arrays.
var ColumnNames = func() []ColumnName {
	out := make([]ColumnName, 0, columnNameLen)
	for c := ColumnName(0); c < columnNameLen; c++ {
		out = append(out, c)
	}
	return out
}()

// NumColumns is the width a dense ColumnName-indexed array must have.
const NumColumns = int(columnNameLen)

// ColumnNameFromWire resolves a wire string back to a ColumnName.
func ColumnNameFromWire(wire string) (ColumnName, error) {
	for c := ColumnName(0); c < columnNameLen; c++ {
		if columnWire[c] == wire {
			return c, nil
		}
	}
	return 0, fmt.Errorf("kv: unknown column wire name %q", wire)
}

// ReceiptsColumn is the column family carried inside the Receipts partition:
// the tiny/default table, the per-transaction index, and the per-block index.
type ReceiptsColumn uint8

const (
	ReceiptsDefault ReceiptsColumn = iota
	ReceiptsTransactions
	ReceiptsBlocks

	receiptsColumnLen
)

var receiptsColumnWire = [receiptsColumnLen]string{
	ReceiptsDefault:      "Default",
	ReceiptsTransactions: "Transactions",
	ReceiptsBlocks:       "Blocks",
}

func (r ReceiptsColumn) String() string {
	if r < receiptsColumnLen {
		return receiptsColumnWire[r]
	}
	return "unknown"
}

// ReceiptsColumnKeys is the compile-time-constant variant list for
// ReceiptsColumn, used to build a ColumnGroup[ReceiptsColumn].
var ReceiptsColumnKeys = []ReceiptsColumn{ReceiptsDefault, ReceiptsTransactions, ReceiptsBlocks}

// BlobTxColumn is the column family carried inside the BlobTransactions
// partition: full blobs, light (header-only) blobs, and already-processed.
type BlobTxColumn uint8

const (
	FullBlobTxs BlobTxColumn = iota
	LightBlobTxs
	ProcessedTxs

	blobTxColumnLen
)

var blobTxColumnWire = [blobTxColumnLen]string{
	FullBlobTxs:  "FullBlobTxs",
	LightBlobTxs: "LightBlobTxs",
	ProcessedTxs: "ProcessedTxs",
}

func (b BlobTxColumn) String() string {
	if b < blobTxColumnLen {
		return blobTxColumnWire[b]
	}
	return "unknown"
}

// BlobTxColumnKeys is the compile-time-constant variant list for
// BlobTxColumn, used to build a ColumnGroup[BlobTxColumn].
var BlobTxColumnKeys = []BlobTxColumn{FullBlobTxs, LightBlobTxs, ProcessedTxs}
