// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

// CellCreator allocates cells. It is implemented by the cell store on behalf
// of the running task. CreateCell is synchronous and must return a resolved
// handle whose value type is vt.
type CellCreator interface {
	CreateCell(vt *ValueType, payload any) RawVc
}

// Cell stores value in a new cell owned by cc and returns a reference to
// it. T must be a concrete type; capability-typed references come from
// [UpcastResolved].
func Cell[T any](cc CellCreator, value T) ResolvedVc[T] {
	vt := ValueTypeOf[T]()
	raw := cc.CreateCell(vt, value)
	if !raw.IsResolved() || raw.cell.Type != vt.id {
		panic("vc: cell creator returned " + raw.String() + " for " + vt.Name())
	}
	return ResolvedVc[T]{node: Vc[T]{node: raw}}
}

// Transparent is implemented by value types whose read representation is
// an inner payload I, such as
//
//	type Count struct{ n int }
//
//	func (Count) Wrap(n int) Count { return Count{n} }
//	func (c Count) Unwrap() int    { return c.n }
//
// Wrap is called on the zero T.
type Transparent[T, I any] interface {
	Wrap(I) T
	Unwrap() I
}

// NewCell stores inner in a new cell of the transparent value type T.
func NewCell[T Transparent[T, I], I any](cc CellCreator, inner I) ResolvedVc[T] {
	var zero T
	return Cell(cc, zero.Wrap(inner))
}

// Default stores the zero I in a new cell of the transparent value type T.
// Every call allocates a distinct cell; there is no shared empty reference.
func Default[T Transparent[T, I], I any](cc CellCreator) ResolvedVc[T] {
	var inner I
	return NewCell[T](cc, inner)
}

// ReadInner reads a transparent cell and unwraps its payload.
func ReadInner[T Transparent[T, I], I any](v Vc[T]) Eff[I] {
	return Map(v.Read(), func(r ReadRef[T]) I {
		return r.Get().Unwrap()
	})
}
