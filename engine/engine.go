// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package engine executes computations over vc references.
//
// It memoizes functions per argument, hands out context-bound references
// for calls made inside a running computation, and serves the suspending
// cell operations of package vc (read, resolve, debug) against a
// [store.Store].
//
// A computation is driven with [vc.Step]: whenever it suspends, the engine
// checks the context, serves the operation (which may run another task),
// and resumes it. A cancelled context abandons the suspension.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"code.hybscloud.com/vc"
	"code.hybscloud.com/vc/store"
)

type options struct {
	log        *slog.Logger
	registerer prometheus.Registerer
	tracers    trace.TracerProvider
	store      *store.Store
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger, overriding Config.LogLevel.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRegisterer registers engine and store metrics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
// The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracers = tp }
}

// WithStore makes the engine use s for cell storage.
func WithStore(s *store.Store) Option {
	return func(o *options) { o.store = s }
}

// Engine runs memoized tasks. It is safe for concurrent use.
type Engine struct {
	id      uuid.UUID
	cfg     Config
	store   *store.Store
	log     *slog.Logger
	tracer  trace.Tracer
	metrics *metrics

	mu     sync.Mutex
	tasks  map[taskKey]*task
	waits  map[vc.TaskID]vc.TaskID // blocked task -> task it waits on
	nextID atomic.Uint32
	flight singleflight.Group
}

// New returns an Engine configured by cfg.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = cfg.logger()
	}
	if o.tracers == nil {
		o.tracers = otel.GetTracerProvider()
	}
	if o.store == nil {
		o.store = store.New(
			store.WithLogger(o.log),
			store.WithRegisterer(o.registerer),
			store.WithNamespace(cfg.MetricsNamespace),
		)
	}
	e := &Engine{
		id:      uuid.New(),
		cfg:     cfg,
		store:   o.store,
		tracer:  o.tracers.Tracer(cfg.TracerName),
		metrics: newMetrics(o.registerer, cfg.MetricsNamespace),
		tasks:   make(map[taskKey]*task),
		waits:   make(map[vc.TaskID]vc.TaskID),
	}
	e.log = o.log.With(slog.String("engine", e.id.String()))
	return e, nil
}

// ID returns the engine's identity.
func (e *Engine) ID() uuid.UUID { return e.id }

// Store returns the cell store.
func (e *Engine) Store() *store.Store { return e.store }

type taskKey struct {
	fn  uint32
	arg any
}

type task struct {
	id   vc.TaskID
	name string

	mu     sync.Mutex
	done   bool
	output vc.RawVc
}

func (t *task) result() (vc.RawVc, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.output, t.done
}

func (t *task) finish(out vc.RawVc) {
	t.mu.Lock()
	t.output, t.done = out, true
	t.mu.Unlock()
}

func (e *Engine) newTask(name string) *task {
	return &task{id: vc.TaskID(e.nextID.Add(1)), name: name}
}

// memoTask returns the task for key, creating it on first use.
// An argument whose dynamic type cannot be a map key is reported as
// ErrUnhashableArgument.
func (e *Engine) memoTask(key taskKey, name string) (t *task, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%w: %s: %v", ErrUnhashableArgument, name, r)
		}
	}()
	t, ok := e.tasks[key]
	if !ok {
		t = e.newTask(name)
		e.tasks[key] = t
	}
	return t, nil
}

// Tasks returns the number of memoized tasks.
func (e *Engine) Tasks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

// invoke returns the output of t, executing it with run the first time.
// Concurrent first calls share one execution. The shared execution is not
// cancelled with any single caller; each caller stops waiting when its own
// ctx is done.
func (e *Engine) invoke(ctx context.Context, t *task, run func(context.Context) (vc.RawVc, error)) (vc.RawVc, error) {
	if out, ok := t.result(); ok {
		e.metrics.memoHits.Inc()
		return out, nil
	}
	chain := chainFrom(ctx)
	if chain.contains(t.id) {
		return vc.RawVc{}, fmt.Errorf("%w: task %d (%s)", ErrCycle, t.id, t.name)
	}
	if chain.depth() >= e.cfg.MaxCallDepth {
		return vc.RawVc{}, fmt.Errorf("%w: %d", ErrCallDepth, e.cfg.MaxCallDepth)
	}
	if chain != nil {
		if !e.await(chain.id, t.id) {
			return vc.RawVc{}, fmt.Errorf("%w: task %d (%s) waits on task %d", ErrCycle, t.id, t.name, chain.id)
		}
		defer e.release(chain.id)
	}

	inner := chain.push(context.WithoutCancel(ctx), t.id)
	ch := e.flight.DoChan(fmt.Sprint(t.id), func() (any, error) {
		if out, ok := t.result(); ok {
			return out, nil
		}
		out, err := run(inner)
		if err != nil {
			return nil, err
		}
		t.finish(out)
		return out, nil
	})
	select {
	case <-ctx.Done():
		return vc.RawVc{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return vc.RawVc{}, res.Err
		}
		return res.Val.(vc.RawVc), nil
	}
}

// await records that from is blocked until to completes. It reports false,
// recording nothing, if to already waits on from through other tasks.
func (e *Engine) await(from, to vc.TaskID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, ok := to, true; ok; id, ok = e.waits[id] {
		if id == from {
			return false
		}
	}
	e.waits[from] = to
	return true
}

func (e *Engine) release(from vc.TaskID) {
	e.mu.Lock()
	delete(e.waits, from)
	e.mu.Unlock()
}

type chainKey struct{}

// callChain is the stack of tasks whose resolution led to the current one.
type callChain struct {
	id     vc.TaskID
	parent *callChain
	n      int
}

func chainFrom(ctx context.Context) *callChain {
	c, _ := ctx.Value(chainKey{}).(*callChain)
	return c
}

func (c *callChain) push(ctx context.Context, id vc.TaskID) context.Context {
	return context.WithValue(ctx, chainKey{}, &callChain{id: id, parent: c, n: c.depth() + 1})
}

func (c *callChain) contains(id vc.TaskID) bool {
	for ; c != nil; c = c.parent {
		if c.id == id {
			return true
		}
	}
	return false
}

func (c *callChain) depth() int {
	if c == nil {
		return 0
	}
	return c.n
}
