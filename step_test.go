// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc_test

import (
	"testing"

	"code.hybscloud.com/vc"
)

// --- Step ---

func TestStepPure(t *testing.T) {
	result, susp := vc.Step(vc.Pure(42))
	if susp != nil {
		t.Fatal("expected nil suspension for pure computation")
	}
	if result != 42 {
		t.Fatalf("got %d, want 42", result)
	}
}

func TestStepRead(t *testing.T) {
	c := newCells()
	r := vc.NewCell[Number](c, 11)
	_, susp := vc.Step(vc.ReadInner(r.Vc()))
	if susp == nil {
		t.Fatal("expected suspension")
	}
	op, ok := susp.Op().(vc.ReadCell)
	if !ok {
		t.Fatalf("expected ReadCell, got %T", susp.Op())
	}
	if op.Raw != r.Raw() {
		t.Fatalf("reading %s, want %s", op.Raw, r.Raw())
	}
	result, susp := susp.Resume(Number{12})
	if susp != nil {
		t.Fatal("expected nil suspension after resume")
	}
	if result != 12 {
		t.Fatalf("got %d, want 12", result)
	}
}

func TestStepChainedReads(t *testing.T) {
	c := newCells()
	a := vc.NewCell[Number](c, 2)
	b := vc.NewCell[Number](c, 3)
	m := vc.Bind(vc.ReadInner(a.Vc()), func(x int) vc.Eff[int] {
		return vc.Map(vc.ReadInner(b.Vc()), func(y int) int { return x * y })
	})

	_, susp := vc.Step(m)
	var served []vc.RawVc
	for susp != nil {
		op := susp.Op().(vc.ReadCell)
		served = append(served, op.Raw)
		var result int
		result, susp = susp.Resume(c.data[op.Raw])
		if susp == nil && result != 6 {
			t.Fatalf("got %d, want 6", result)
		}
	}
	if len(served) != 2 || served[0] != a.Raw() || served[1] != b.Raw() {
		t.Fatalf("served %v", served)
	}
}

func TestStepResumeTwicePanics(t *testing.T) {
	c := newCells()
	r := vc.NewCell[Number](c, 1)
	_, susp := vc.Step(vc.ReadInner(r.Vc()))
	susp.Resume(Number{1})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second resume")
		}
	}()
	susp.Resume(Number{1})
}

func TestStepDiscard(t *testing.T) {
	c := newCells()
	r := vc.NewCell[Number](c, 1)
	_, susp := vc.Step(vc.ReadInner(r.Vc()))
	susp.Discard()
	susp.Discard()
	if _, _, ok := susp.TryResume(Number{1}); ok {
		t.Fatal("TryResume after Discard should fail")
	}
}

func TestStepTryResume(t *testing.T) {
	c := newCells()
	r := vc.NewCell[Number](c, 1)
	_, susp := vc.Step(vc.ReadInner(r.Vc()))
	v, next, ok := susp.TryResume(Number{5})
	if !ok || next != nil || v != 5 {
		t.Fatalf("got (%d, %v, %v)", v, next, ok)
	}
	if _, _, ok := susp.TryResume(Number{5}); ok {
		t.Fatal("second TryResume should fail")
	}
}

func TestStepDebugCell(t *testing.T) {
	c := newCells()
	r := vc.Cell(c, Square{3})
	_, susp := vc.Step(r.ValueDebugFormat(2))
	op, ok := susp.Op().(vc.DebugCell)
	if !ok {
		t.Fatalf("expected DebugCell, got %T", susp.Op())
	}
	if op.Raw != r.Raw() || op.Depth != 2 {
		t.Fatalf("unexpected operation %+v", op)
	}
	s, _ := susp.Resume("square of 3")
	if s != "square of 3" {
		t.Fatalf("got %q", s)
	}
}

// --- Handle ---

func TestHandleShortCircuit(t *testing.T) {
	c := newCells()
	r := vc.NewCell[Number](c, 1)
	m := vc.Then(vc.ReadInner(r.Vc()), vc.Pure(1))
	got := vc.Handle(m, vc.HandleFunc[int](func(vc.Operation) (vc.Resumed, bool) {
		return -1, false
	}))
	if got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestSequenceEmpty(t *testing.T) {
	got, susp := vc.Step(vc.Sequence[int]())
	if susp != nil || len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

// --- Benchmarks ---

func BenchmarkStepRead(b *testing.B) {
	c := newCells()
	r := vc.NewCell[Number](c, 1)
	m := vc.ReadInner(r.Vc())
	payload := c.data[r.Raw()]
	b.ReportAllocs()
	for b.Loop() {
		_, susp := vc.Step(m)
		susp.Resume(payload)
	}
}

func BenchmarkStepPure(b *testing.B) {
	m := vc.Pure(42)
	b.ReportAllocs()
	for b.Loop() {
		vc.Step(m)
	}
}
