// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

// Operation is a pending request from a computation to its executor.
// The cell operations in this package are [ReadCell], [ResolveCell] and
// [DebugCell].
type Operation any

// Resumed is the type of values flowing back from the executor into a
// suspended computation.
type Resumed any

// Op is the F-bounded interface for operations.
// The result type parameter A is the type the executor resumes with.
type Op[O Op[O, A], A any] interface {
	OpResult() A
}

// Phantom is an embeddable zero-size marker that satisfies [Op].
type Phantom[A any] struct{}

// OpResult implements the phantom result marker for [Op].
func (Phantom[A]) OpResult() A { panic("phantom") }

// Handler interprets operations for a computation.
// Dispatch returns (resumeValue, true) to continue, or (finalResult, false)
// to stop the computation with finalResult.
type Handler[H Handler[H, R], R any] interface {
	Dispatch(op Operation) (Resumed, bool)
}

type handlerFunc[R any] struct {
	f func(op Operation) (Resumed, bool)
}

func (h *handlerFunc[R]) Dispatch(op Operation) (Resumed, bool) {
	return h.f(op)
}

// HandleFunc creates a [Handler] from a dispatch function.
func HandleFunc[R any](f func(op Operation) (Resumed, bool)) *handlerFunc[R] {
	return &handlerFunc[R]{f: f}
}

// pendingOp is a computation parked on an operation.
// Implemented by opMarker.
type pendingOp interface {
	Op() Operation
	Resume(Resumed) Resumed
}

func opMarkerResume[A any](m *opMarker, v Resumed) Resumed {
	k := m.k.(func(A) Resumed)
	releaseMarker(m)
	return k(v.(A))
}

// Perform suspends the computation on op.
// The driving executor receives op and resumes with a value of type A.
func Perform[O Op[O, A], A any](op O) Eff[A] {
	return func(k func(A) Resumed) Resumed {
		m := acquireMarker()
		m.op = op
		m.k = k
		m.resume = opMarkerResume[A]
		return m
	}
}

// toResumed is the identity continuation for Handle and Step.
func toResumed[A any](a A) Resumed { return a }

// Handle runs m to completion, answering every operation with h.
// It is the synchronous driver; executors that need to interleave
// cancellation checks or scheduling use [Step].
func Handle[H Handler[H, R], R any](m Eff[R], h H) R {
	result := m(toResumed[R])
	for {
		if s, ok := result.(pendingOp); ok {
			v, resume := h.Dispatch(s.Op())
			if !resume {
				if p, ok := s.(*opMarker); ok {
					releaseMarker(p)
				}
				return v.(R)
			}
			result = s.Resume(v)
			continue
		}
		if result == nil {
			var zero R
			return zero
		}
		return result.(R)
	}
}
