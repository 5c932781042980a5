// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

type options struct {
	log        *slog.Logger
	registerer prometheus.Registerer
	namespace  string
}

// Option configures a Store.
type Option func(*options)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRegisterer registers the store's metrics with r.
// Without it the metrics are kept but not exported.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// WithNamespace sets the metrics namespace. The default is "vc".
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}
