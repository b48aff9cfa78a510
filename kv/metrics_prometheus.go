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

import "github.com/prometheus/client_golang/prometheus"

// Process-wide counters, one series per column x op. The in-memory backend
// calls RecordOp on every get/put/delete (including the batched fast path)
// and RecordKeyCount each time its metric is gathered; the null backend and
// the persistent-engine stub do not instrument themselves, since null holds
// no real keys and the stub's operations never succeed. GatherMetric on a
// handle still returns only that handle's own local DbMetric - this is the
// opt-in Prometheus export layered alongside it, not a replacement for it.
var (
	opsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "erigon",
		Subsystem: "storage",
		Name:      "ops_total",
		Help:      "count of key/value storage operations by column and op kind",
	}, []string{"column", "op"})

	keyCountGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "erigon",
		Subsystem: "storage",
		Name:      "key_count",
		Help:      "approximate number of keys held per column",
	}, []string{"column"})
)

func init() {
	prometheus.MustRegister(opsTotal, keyCountGauge)
}

// RecordOp increments the op counter for a column/op pair. op is a short
// label such as "get", "put", "delete".
func RecordOp(name ColumnName, op string) {
	opsTotal.WithLabelValues(name.String(), op).Inc()
}

// RecordKeyCount sets the current key-count gauge for a column.
func RecordKeyCount(name ColumnName, n int) {
	keyCountGauge.WithLabelValues(name.String()).Set(float64(n))
}
