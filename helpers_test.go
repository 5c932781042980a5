// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc_test

import (
	"fmt"

	"code.hybscloud.com/vc"
)

// --- value types and capabilities shared by the tests ---

type Shape interface{ Area() int }

type Named interface{ Name() string }

// NamedShape is a sub-interface of Shape.
type NamedShape interface {
	Shape
	Named
}

type Unrelated interface{ Frobnicate() }

type Square struct{ Side int }

func (s Square) Area() int      { return s.Side * s.Side }
func (s Square) Name() string   { return "square" }
func (s Square) String() string { return fmt.Sprintf("Square(%d)", s.Side) }

type Dot struct{}

func (Dot) Area() int { return 0 }

type Valued interface{ Value() int }

// Number is transparent over int.
type Number struct{ n int }

func (Number) Wrap(n int) Number { return Number{n} }
func (x Number) Unwrap() int     { return x.n }
func (x Number) Value() int      { return x.n }

// Holder is a value that keeps a reference to another cell.
type Holder struct {
	Ref vc.ResolvedVc[Number]
}

func (h Holder) TraceRawVcs(tc *vc.TraceContext) { h.Ref.TraceRawVcs(tc) }

var (
	_ = vc.RegisterValueType[Square]("square")
	_ = vc.RegisterValueType[Dot]("dot")
	_ = vc.RegisterValueType[Number]("number")
	_ = vc.RegisterTrait[Shape]("Shape")
	_ = vc.RegisterTrait[Named]("Named")
	_ = vc.RegisterTrait[NamedShape]("NamedShape")
	_ = vc.RegisterTrait[Unrelated]("Unrelated")
	_ = vc.RegisterTrait[Valued]("Valued")

	squareIsShape      = vc.Implements(func(s Square) Shape { return s })
	dotIsShape         = vc.Implements(func(d Dot) Shape { return d })
	numberIsValued     = vc.Implements(func(n Number) Valued { return n })
	namedShapeIsShape  = vc.Implements(func(s NamedShape) Shape { return s })
	squareIsNamedShape = vc.Implements(func(s Square) NamedShape { return s })
)

// --- in-memory collaborator ---

// cells is a minimal cell store and executor. It panics on any content read
// while forbid is set, which lets tests prove that casts stay off the read
// path.
type cells struct {
	task     vc.TaskID
	next     map[vc.ValueTypeID]uint32
	data     map[vc.RawVc]any
	pending  map[vc.RawVc]vc.RawVc
	exec     vc.ExecutionID
	calls    vc.LocalCallID
	reads    int
	resolves int
	forbid   bool
}

func newCells() *cells {
	return &cells{
		task:    1,
		next:    make(map[vc.ValueTypeID]uint32),
		data:    make(map[vc.RawVc]any),
		pending: make(map[vc.RawVc]vc.RawVc),
		exec:    vc.ExecutionID{1},
	}
}

func (c *cells) CreateCell(vt *vc.ValueType, payload any) vc.RawVc {
	i := c.next[vt.ID()]
	c.next[vt.ID()] = i + 1
	raw := vc.CellRaw(c.task, vt, i)
	c.data[raw] = payload
	return raw
}

// local returns a context-bound handle that resolves to target.
func (c *cells) local(target vc.RawVc) vc.RawVc {
	raw := vc.LocalRaw(c.exec, c.calls)
	c.calls++
	c.pending[raw] = target
	return raw
}

func (c *cells) resolve(raw vc.RawVc) vc.RawVc {
	if raw.IsResolved() {
		return raw
	}
	c.resolves++
	out, ok := c.pending[raw]
	if !ok {
		panic("unknown local handle " + raw.String())
	}
	return out
}

func (c *cells) serve(op vc.Operation) (vc.Resumed, bool) {
	switch op := op.(type) {
	case vc.ReadCell:
		if c.forbid {
			panic("cell content read while forbidden")
		}
		c.reads++
		return c.data[c.resolve(op.Raw)], true
	case vc.ResolveCell:
		return c.resolve(op.Raw), true
	case vc.DebugCell:
		if c.forbid {
			panic("cell content read while forbidden")
		}
		c.reads++
		return vc.FormatValue(c.data[c.resolve(op.Raw)], op.Depth), true
	default:
		panic(fmt.Sprintf("unexpected operation %T", op))
	}
}

func run[A any](c *cells, m vc.Eff[A]) A {
	return vc.Handle(m, vc.HandleFunc[A](c.serve))
}
