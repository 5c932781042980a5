// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

type metrics struct {
	cellsCreated *prometheus.CounterVec
	reads        prometheus.Counter
	updates      prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, ns string) *metrics {
	if ns == "" {
		ns = "vc"
	}
	m := &metrics{
		cellsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "store",
			Name:      "cells_created_total",
			Help:      "Cells allocated, by value type.",
		}, []string{"value_type"}),
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "store",
			Name:      "cell_reads_total",
			Help:      "Snapshot reads of cell content.",
		}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "store",
			Name:      "cell_updates_total",
			Help:      "Snapshots published by external updates.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.cellsCreated, m.reads, m.updates)
	}
	return m
}

// Reads returns the number of content reads served so far.
func (s *Store) Reads() float64 {
	return counterValue(s.metrics.reads)
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
