// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"code.hybscloud.com/vc"
)

var nextFunctionID atomic.Uint32

// Function is a memoized function from A to a reference to R.
// One task exists per distinct argument; its body runs once and its output
// is always a resolved reference.
type Function[A comparable, R any] struct {
	id   uint32
	name string
	body func(tc *TaskContext, arg A) vc.Eff[vc.Vc[R]]
}

// NewFunction declares a memoized function.
//
// Arguments are memo keys. An interface-typed A whose dynamic value is not
// hashable fails the call with ErrUnhashableArgument. Only a top-level
// argument that is itself a reference is checked for being context-bound;
// references nested inside a struct argument must be resolved by the
// caller.
//
//	var double = engine.NewFunction("double", func(tc *engine.TaskContext, n int) vc.Eff[vc.Vc[Count]] {
//		return vc.Pure(vc.NewCell[Count](tc, 2*n).Vc())
//	})
func NewFunction[A comparable, R any](name string, body func(tc *TaskContext, arg A) vc.Eff[vc.Vc[R]]) *Function[A, R] {
	return &Function[A, R]{id: nextFunctionID.Add(1), name: name, body: body}
}

// Name returns the declared name.
func (f *Function[A, R]) Name() string { return f.name }

func (f *Function[A, R]) invoke(ctx context.Context, e *Engine, arg A) (vc.RawVc, error) {
	if h, ok := any(arg).(interface{ Raw() vc.RawVc }); ok && !h.Raw().IsResolved() {
		return vc.RawVc{}, fmt.Errorf("%w: %s(%s)", ErrLocalArgument, f.name, h.Raw())
	}
	t, err := e.memoTask(taskKey{fn: f.id, arg: arg}, f.name)
	if err != nil {
		return vc.RawVc{}, err
	}
	return e.invoke(ctx, t, func(ctx context.Context) (vc.RawVc, error) {
		return execute(ctx, e, t, func(tc *TaskContext) vc.Eff[vc.RawVc] {
			return vc.Map(vc.Bind(f.body(tc, arg), vc.Vc[R].ToResolved), vc.ResolvedVc[R].Raw)
		})
	})
}

// Call records a call of f with arg in the running computation and returns
// a context-bound reference to its result. Nothing runs until the reference
// is read or resolved. Arguments that are references must be resolved.
func Call[A comparable, R any](tc *TaskContext, f *Function[A, R], arg A) vc.Vc[R] {
	e := tc.x.e
	return vc.FromRaw[R](tc.x.record(func(ctx context.Context) (vc.RawVc, error) {
		return f.invoke(ctx, e, arg)
	}))
}

// Invoke runs f with arg outside any computation and returns a resolved
// reference to its output.
func Invoke[A comparable, R any](ctx context.Context, e *Engine, f *Function[A, R], arg A) (vc.ResolvedVc[R], error) {
	raw, err := f.invoke(ctx, e, arg)
	if err != nil {
		return vc.ResolvedVc[R]{}, err
	}
	return vc.ToResolvedVc[R](raw)
}
