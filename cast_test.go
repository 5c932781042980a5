// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc_test

import (
	"testing"

	"code.hybscloud.com/vc"
)

func TestScenarioUpcastAndBack(t *testing.T) {
	c := newCells()
	n := vc.NewCell[Number](c, 42)
	if got := run(c, vc.ReadInner(n.Vc())); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}

	valued := vc.UpcastResolved(n, numberIsValued)
	if valued.Raw() != n.Raw() {
		t.Fatal("upcast changed the handle")
	}

	c.forbid = true
	back, ok := vc.TryDowncastType(valued, numberIsValued)
	if !ok {
		t.Fatal("downcast to the original type missed")
	}
	side, ok := vc.TrySidecast[Number](valued)
	if !ok || side != back {
		t.Fatal("sidecast to the original type missed")
	}
	if _, ok := vc.TrySidecast[Unrelated](valued); ok {
		t.Fatal("sidecast to an unimplemented capability hit")
	}
	c.forbid = false

	if back != n {
		t.Fatalf("got %s, want %s", back, n)
	}
	if got := run(c, vc.ReadInner(back.Vc())); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if got := run(c, valued.Read()).Get().Value(); got != 42 {
		t.Fatalf("read through capability: got %d, want 42", got)
	}
}

func TestSidecastMatchesCapabilityTable(t *testing.T) {
	c := newCells()
	sq := vc.UpcastResolved(vc.Cell(c, Square{2}), squareIsShape)
	dot := vc.UpcastResolved(vc.Cell(c, Dot{}), dotIsShape)
	c.forbid = true

	if _, ok := vc.TrySidecast[Named](sq); !ok {
		t.Fatal("square implements Named")
	}
	if _, ok := vc.TrySidecast[Named](dot); ok {
		t.Fatal("dot does not implement Named")
	}
	if _, ok := vc.TrySidecast[Valued](sq); ok {
		t.Fatal("square does not implement Valued")
	}
	if _, ok := vc.TrySidecast[Shape](dot); !ok {
		t.Fatal("dot implements Shape")
	}
	if c.reads != 0 {
		t.Fatalf("casts read %d cells", c.reads)
	}
}

func TestDowncastToSubInterface(t *testing.T) {
	c := newCells()
	sq := vc.UpcastResolved(vc.Cell(c, Square{3}), squareIsShape)
	dot := vc.UpcastResolved(vc.Cell(c, Dot{}), dotIsShape)
	c.forbid = true

	ns, ok := vc.TryDowncast(sq, namedShapeIsShape)
	if !ok {
		t.Fatal("square is a NamedShape")
	}
	if ns.Raw() != sq.Raw() {
		t.Fatal("downcast changed the handle")
	}
	if _, ok := vc.TryDowncast(dot, namedShapeIsShape); ok {
		t.Fatal("dot is not a NamedShape")
	}
	c.forbid = false

	if got := run(c, ns.Read()).Get().Name(); got != "square" {
		t.Fatalf("got %q, want square", got)
	}
}

func TestDowncastTypeComparesValueType(t *testing.T) {
	c := newCells()
	dot := vc.UpcastResolved(vc.Cell(c, Dot{}), dotIsShape)
	if _, ok := vc.TryDowncastType(dot, squareIsShape); ok {
		t.Fatal("dot downcast to square hit")
	}
	if _, ok := vc.TryDowncastType(dot, dotIsShape); !ok {
		t.Fatal("dot downcast to dot missed")
	}
}

func TestUpcastDowncastRoundTrip(t *testing.T) {
	c := newCells()
	ns := vc.UpcastResolved(vc.Cell(c, Square{4}), squareIsNamedShape)
	shape := vc.UpcastResolved(ns, namedShapeIsShape)
	back, ok := vc.TryDowncast(shape, namedShapeIsShape)
	if !ok || back != ns {
		t.Fatalf("round trip: got %s (%v), want %s", back, ok, ns)
	}
}

func TestUpcastPlainVc(t *testing.T) {
	c := newCells()
	target := vc.Cell(c, Square{2})
	local := vc.FromRaw[Square](c.local(target.Raw()))
	shape := vc.Upcast(local, squareIsShape)
	if shape.Raw() != local.Raw() || shape.IsResolved() {
		t.Fatal("upcast must keep the context-bound handle")
	}
	if got := run(c, shape.Read()).Get().Area(); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
}

func TestFallibleCastsNeverError(t *testing.T) {
	c := newCells()
	sq := vc.UpcastResolved(vc.Cell(c, Square{2}), squareIsShape)
	c.forbid = true

	if _, ok, err := vc.ResolveSidecast[Named](sq); err != nil || !ok {
		t.Fatalf("ResolveSidecast: ok=%v err=%v", ok, err)
	}
	if _, ok, err := vc.ResolveSidecast[Unrelated](sq); err != nil || ok {
		t.Fatalf("ResolveSidecast miss: ok=%v err=%v", ok, err)
	}
	if _, ok, err := vc.ResolveDowncast(sq, namedShapeIsShape); err != nil || !ok {
		t.Fatalf("ResolveDowncast: ok=%v err=%v", ok, err)
	}
	if _, ok, err := vc.ResolveDowncastType(sq, dotIsShape); err != nil || ok {
		t.Fatalf("ResolveDowncastType miss: ok=%v err=%v", ok, err)
	}
}

func TestTryResolveCastsOnLocal(t *testing.T) {
	c := newCells()
	target := vc.UpcastResolved(vc.Cell(c, Square{2}), squareIsShape)
	local := vc.FromRaw[Shape](c.local(target.Raw()))

	got := run(c, vc.TryResolveSidecast[Named](local))
	if n, ok := got.Get(); !ok || n.Raw() != target.Raw() {
		t.Fatalf("TryResolveSidecast: %v", got)
	}
	if run(c, vc.TryResolveDowncast(local, namedShapeIsShape)).IsSome() != true {
		t.Fatal("TryResolveDowncast missed")
	}
	if run(c, vc.TryResolveDowncastType(local, dotIsShape)).IsSome() {
		t.Fatal("TryResolveDowncastType hit a dot on a square")
	}
	if c.reads != 0 {
		t.Fatalf("resolve-then-cast read %d cells", c.reads)
	}
	if c.resolves != 3 {
		t.Fatalf("got %d resolutions, want 3", c.resolves)
	}
}

func TestZeroWitnessPanics(t *testing.T) {
	c := newCells()
	sq := vc.Cell(c, Square{1})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a zero witness")
		}
	}()
	vc.UpcastResolved(sq, vc.Upcasts[Square, Shape]{})
}

func TestCastAllocations(t *testing.T) {
	c := newCells()
	sq := vc.UpcastResolved(vc.Cell(c, Square{2}), squareIsShape)
	allocs := testing.AllocsPerRun(100, func() {
		_, _ = vc.TrySidecast[Named](sq)
		_, _ = vc.TryDowncast(sq, namedShapeIsShape)
		_, _ = vc.TryDowncastType(sq, squareIsShape)
		_ = vc.UpcastResolved(sq, vc.Implements(func(s Shape) any { return s }))
	})
	if allocs > 0 {
		t.Errorf("casts allocate %v times; want 0", allocs)
	}
}
