// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"code.hybscloud.com/vc"
)

type pendingCall func(ctx context.Context) (vc.RawVc, error)

// execution is one run of a task body. Context-bound handles minted during
// it carry its id and index into calls.
type execution struct {
	id   vc.ExecutionID
	task *task
	e    *Engine

	mu    sync.Mutex
	calls []pendingCall
}

// TaskContext is the view a running computation has of the engine.
// It allocates cells owned by the current task and records calls.
// A TaskContext must not be used after its computation returns.
type TaskContext struct {
	x *execution
}

// CreateCell implements [vc.CellCreator].
func (tc *TaskContext) CreateCell(vt *vc.ValueType, payload any) vc.RawVc {
	return tc.x.e.store.NewCell(tc.x.task.id, vt, payload)
}

// Task returns the task being executed.
func (tc *TaskContext) Task() vc.TaskID { return tc.x.task.id }

// Execution returns the identity that context-bound handles of this
// execution carry.
func (tc *TaskContext) Execution() vc.ExecutionID { return tc.x.id }

func (x *execution) record(c pendingCall) vc.RawVc {
	x.mu.Lock()
	defer x.mu.Unlock()
	id := vc.LocalCallID(len(x.calls))
	x.calls = append(x.calls, c)
	return vc.LocalRaw(x.id, id)
}

// resolve turns raw into a cell handle. Resolved handles pass through;
// context-bound ones must belong to this execution.
func (x *execution) resolve(ctx context.Context, raw vc.RawVc) (vc.RawVc, error) {
	if raw.IsResolved() {
		return raw, nil
	}
	if !raw.IsLocal() {
		return vc.RawVc{}, fmt.Errorf("%w: %s", vc.ErrMalformedHandle, raw)
	}
	if raw.Execution() != x.id {
		return vc.RawVc{}, fmt.Errorf("%w: %s in execution %s", ErrForeignHandle, raw, x.id)
	}
	x.mu.Lock()
	if int(raw.Call()) >= len(x.calls) {
		x.mu.Unlock()
		return vc.RawVc{}, fmt.Errorf("%w: %s", ErrForeignHandle, raw)
	}
	call := x.calls[raw.Call()]
	x.mu.Unlock()

	out, err := call(ctx)
	if err != nil {
		return vc.RawVc{}, err
	}
	x.e.metrics.resolutions.Inc()
	return out, nil
}

// dispatch serves one suspended operation.
func (x *execution) dispatch(ctx context.Context, op vc.Operation) (vc.Resumed, error) {
	switch op := op.(type) {
	case vc.ReadCell:
		raw, err := x.resolve(ctx, op.Raw)
		if err != nil {
			return nil, err
		}
		return x.e.store.Read(raw)
	case vc.ResolveCell:
		raw, err := x.resolve(ctx, op.Raw)
		if err != nil {
			return nil, err
		}
		return raw, nil
	case vc.DebugCell:
		raw, err := x.resolve(ctx, op.Raw)
		if err != nil {
			return nil, err
		}
		v, err := x.e.store.Read(raw)
		if err != nil {
			return nil, err
		}
		return vc.FormatValue(v, op.Depth), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownOperation, op)
	}
}

// drive steps m to completion, serving each suspension. Between
// suspensions it honours ctx; a failed or cancelled run discards the
// pending suspension.
func drive[A any](ctx context.Context, x *execution, m vc.Eff[A]) (A, error) {
	a, susp := vc.Step(m)
	for susp != nil {
		if err := ctx.Err(); err != nil {
			susp.Discard()
			var zero A
			return zero, err
		}
		v, err := x.dispatch(ctx, susp.Op())
		if err != nil {
			susp.Discard()
			var zero A
			return zero, err
		}
		a, susp = susp.Resume(v)
	}
	return a, nil
}

// execute runs body as a fresh execution of t.
func execute[A any](ctx context.Context, e *Engine, t *task, body func(tc *TaskContext) vc.Eff[A]) (A, error) {
	x := &execution{id: uuid.New(), task: t, e: e}
	ctx, span := e.tracer.Start(ctx, t.name, trace.WithAttributes(
		attribute.Int64("vc.task", int64(t.id)),
		attribute.String("vc.execution", x.id.String()),
	))
	defer span.End()

	out, err := drive(ctx, x, body(&TaskContext{x: x}))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.metrics.executions.WithLabelValues("error").Inc()
		e.log.Debug("task failed", slog.String("task", t.name), slog.Any("id", t.id), slog.Any("err", err))
		return out, err
	}
	e.metrics.executions.WithLabelValues("ok").Inc()
	e.log.Debug("task executed", slog.String("task", t.name), slog.Any("id", t.id), slog.Int("calls", len(x.calls)))
	return out, nil
}

// Run executes body as a new, unmemoized root task and returns its result.
func Run[R any](ctx context.Context, e *Engine, body func(tc *TaskContext) vc.Eff[R]) (R, error) {
	t := e.newTask("root")
	return execute(chainFrom(ctx).push(ctx, t.id), e, t, body)
}
