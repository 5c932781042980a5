// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package store is an in-memory cell storage engine for vc references.
//
// Cells are addressed by (task, value type, index). Each cell holds an
// immutable snapshot; Update publishes a new snapshot and bumps the cell's
// version, which is how external invalidation is modelled here. Reads never
// observe a torn value.
package store

import (
	"fmt"
	"log/slog"
	"sync"

	"code.hybscloud.com/vc"
)

type cellKey struct {
	task vc.TaskID
	cell vc.CellID
}

type counterKey struct {
	task vc.TaskID
	typ  vc.ValueTypeID
}

type snapshot struct {
	value   any
	version uint64
}

type slot struct {
	mu   sync.RWMutex
	snap snapshot
}

// Store holds cell contents. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	cells   map[cellKey]*slot
	next    map[counterKey]uint32
	log     *slog.Logger
	metrics *metrics
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	o := options{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		cells:   make(map[cellKey]*slot),
		next:    make(map[counterKey]uint32),
		log:     o.log,
		metrics: newMetrics(o.registerer, o.namespace),
	}
}

// NewCell allocates the next cell of vt in task and stores payload in it.
func (s *Store) NewCell(task vc.TaskID, vt *vc.ValueType, payload any) vc.RawVc {
	s.mu.Lock()
	ck := counterKey{task: task, typ: vt.ID()}
	index := s.next[ck]
	s.next[ck] = index + 1
	raw := vc.CellRaw(task, vt, index)
	s.cells[cellKey{task: task, cell: raw.Cell()}] = &slot{snap: snapshot{value: payload, version: 1}}
	s.mu.Unlock()

	s.metrics.cellsCreated.WithLabelValues(vt.Name()).Inc()
	s.log.Debug("cell created", slog.String("cell", raw.String()))
	return raw
}

// Creator returns a [vc.CellCreator] that allocates cells owned by task.
func (s *Store) Creator(task vc.TaskID) vc.CellCreator {
	return taskCreator{s: s, task: task}
}

type taskCreator struct {
	s    *Store
	task vc.TaskID
}

func (c taskCreator) CreateCell(vt *vc.ValueType, payload any) vc.RawVc {
	return c.s.NewCell(c.task, vt, payload)
}

func (s *Store) slot(raw vc.RawVc) (*slot, error) {
	if !raw.IsResolved() {
		return nil, fmt.Errorf("%w: %s", vc.ErrNotResolved, raw)
	}
	s.mu.RLock()
	sl, ok := s.cells[cellKey{task: raw.Task(), cell: raw.Cell()}]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchCell, raw)
	}
	return sl, nil
}

// Read returns the current snapshot of the cell behind raw.
func (s *Store) Read(raw vc.RawVc) (any, error) {
	v, _, err := s.ReadVersion(raw)
	return v, err
}

// ReadVersion returns the current snapshot and its version.
func (s *Store) ReadVersion(raw vc.RawVc) (any, uint64, error) {
	sl, err := s.slot(raw)
	if err != nil {
		return nil, 0, err
	}
	sl.mu.RLock()
	snap := sl.snap
	sl.mu.RUnlock()
	s.metrics.reads.Inc()
	return snap.value, snap.version, nil
}

// Update replaces the content of the cell behind raw. Handles to the cell
// stay equal; subsequent reads observe the new snapshot.
//
// The payload must have the cell's value type.
func (s *Store) Update(raw vc.RawVc, payload any) error {
	sl, err := s.slot(raw)
	if err != nil {
		return err
	}
	if want := raw.ValueType().Type(); payload == nil || !typeOf(payload).AssignableTo(want) {
		return fmt.Errorf("%w: %T into %s", ErrTypeMismatch, payload, raw)
	}
	sl.mu.Lock()
	sl.snap = snapshot{value: payload, version: sl.snap.version + 1}
	version := sl.snap.version
	sl.mu.Unlock()

	s.metrics.updates.Inc()
	s.log.Debug("cell updated", slog.String("cell", raw.String()), slog.Uint64("version", version))
	return nil
}

// Version returns the number of snapshots published for the cell.
func (s *Store) Version(raw vc.RawVc) (uint64, error) {
	sl, err := s.slot(raw)
	if err != nil {
		return 0, err
	}
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.snap.version, nil
}

// Len returns the number of allocated cells.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}
