// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc_test

import (
	"testing"

	"code.hybscloud.com/vc"
)

// BenchmarkTrySidecast measures a capability bit test.
func BenchmarkTrySidecast(b *testing.B) {
	c := newCells()
	sq := vc.UpcastResolved(vc.Cell(c, Square{1}), squareIsShape)
	for b.Loop() {
		_, _ = vc.TrySidecast[Named](sq)
	}
}

// BenchmarkTryDowncastType measures a value type comparison.
func BenchmarkTryDowncastType(b *testing.B) {
	c := newCells()
	sq := vc.UpcastResolved(vc.Cell(c, Square{1}), squareIsShape)
	for b.Loop() {
		_, _ = vc.TryDowncastType(sq, squareIsShape)
	}
}

// BenchmarkHash measures hashing a resolved handle.
func BenchmarkHash(b *testing.B) {
	c := newCells()
	r := vc.Cell(c, Square{1})
	b.ReportAllocs()
	for b.Loop() {
		_ = r.Hash()
	}
}

// BenchmarkMarshalBinary measures encoding a handle.
func BenchmarkMarshalBinary(b *testing.B) {
	c := newCells()
	r := vc.Cell(c, Square{1})
	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.MarshalBinary()
	}
}

// BenchmarkHandleRead measures a full read through the synchronous driver.
func BenchmarkHandleRead(b *testing.B) {
	c := newCells()
	r := vc.NewCell[Number](c, 1)
	m := vc.ReadInner(r.Vc())
	b.ReportAllocs()
	for b.Loop() {
		_ = run(c, m)
	}
}

// BenchmarkSequenceReads measures reading several cells in order.
func BenchmarkSequenceReads(b *testing.B) {
	c := newCells()
	ms := make([]vc.Eff[int], 8)
	for i := range ms {
		ms[i] = vc.ReadInner(vc.NewCell[Number](c, i).Vc())
	}
	m := vc.Sequence(ms...)
	b.ReportAllocs()
	for b.Loop() {
		_ = run(c, m)
	}
}
