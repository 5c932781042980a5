// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import "sync/atomic"

// Suspension is a computation parked on a cell operation.
// An executor inspects [Suspension.Op], performs the work (which may itself
// wait for another computation), and then resumes.
//
// Resume may be called at most once. Use Discard to abandon a suspension,
// for example when the owning computation is cancelled.
type Suspension[A any] struct {
	used atomic.Uintptr
	op   Operation
	p    pendingOp
}

// Op returns the operation the computation is waiting on.
func (s *Suspension[A]) Op() Operation { return s.op }

// Resume continues the computation with v.
// Returns the final value with a nil suspension, or the next suspension.
// Panics if the suspension has already been resumed or discarded.
func (s *Suspension[A]) Resume(v Resumed) (A, *Suspension[A]) {
	if s.used.Add(1) != 1 {
		panic("vc: suspension resumed twice")
	}
	return classify[A](s.p.Resume(v))
}

// TryResume is the non-panicking form of Resume.
// Returns ok=false if the suspension was already used.
func (s *Suspension[A]) TryResume(v Resumed) (a A, next *Suspension[A], ok bool) {
	if s.used.Add(1) != 1 {
		return a, nil, false
	}
	a, next = classify[A](s.p.Resume(v))
	return a, next, true
}

// Discard abandons the suspension without resuming it.
func (s *Suspension[A]) Discard() {
	if s.used.Add(1) != 1 {
		return
	}
	if m, ok := s.p.(*opMarker); ok {
		releaseMarker(m)
	}
	s.p = nil
}

// Step runs m until it completes or suspends on an operation.
// Returns (value, nil) on completion, or (zero, suspension) when pending.
//
//	v, susp := vc.Step(m)
//	for susp != nil {
//	    v, susp = susp.Resume(serve(susp.Op()))
//	}
func Step[A any](m Eff[A]) (A, *Suspension[A]) {
	return classify[A](m(toResumed[A]))
}

func classify[A any](result Resumed) (A, *Suspension[A]) {
	var zero A
	if p, ok := result.(pendingOp); ok {
		return zero, &Suspension[A]{op: p.Op(), p: p}
	}
	if result == nil {
		return zero, nil
	}
	return result.(A), nil
}
