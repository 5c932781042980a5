// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	executions  *prometheus.CounterVec
	memoHits    prometheus.Counter
	resolutions prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, ns string) *metrics {
	m := &metrics{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "engine",
			Name:      "executions_total",
			Help:      "Task executions, by outcome.",
		}, []string{"outcome"}),
		memoHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "engine",
			Name:      "memo_hits_total",
			Help:      "Calls answered from an already computed task output.",
		}),
		resolutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "engine",
			Name:      "resolutions_total",
			Help:      "Context-bound handles resolved to cells.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.executions, m.memoHits, m.resolutions)
	}
	return m
}
