// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import (
	"fmt"
	"reflect"
)

// Vc is a typed reference to a memoized cell.
//
// T is the value type or capability interface the reference claims to point
// to. The claim is checked at construction and at cast points only.
//
// A Vc may still be context-bound: it may name a call made by the running
// computation whose result has not been pinned to a cell. Such a Vc must not
// leave that computation; resolve it with [Vc.ToResolved] before storing it
// or sharing it.
//
// Vc is comparable. Equality is handle identity, never content.
type Vc[T any] struct {
	node RawVc
}

// FromRaw annotates a raw handle with T. The annotation is not verified;
// executors use it to hand out references to call results.
func FromRaw[T any](r RawVc) Vc[T] {
	return Vc[T]{node: r}
}

// Raw returns the underlying handle.
func (v Vc[T]) Raw() RawVc { return v.node }

// IsResolved reports whether v already points at a concrete cell.
func (v Vc[T]) IsResolved() bool { return v.node.IsResolved() }

// Read suspends until the cell's current content is available and returns
// an immutable snapshot. A context-bound reference is resolved first.
//
// Panics if the cell holds a value that is not a T.
func (v Vc[T]) Read() Eff[ReadRef[T]] {
	node := v.node
	return Map(performRead(node), func(c any) ReadRef[T] {
		return ReadRef[T]{v: contentAs[T](node, c)}
	})
}

// Resolve returns a Vc whose handle is resolved. It suspends only when v
// is context-bound.
func (v Vc[T]) Resolve() Eff[Vc[T]] {
	return Map(performResolve(v.node), FromRaw[T])
}

// ToResolved resolves v into a [ResolvedVc]. It suspends only when v is
// context-bound.
func (v Vc[T]) ToResolved() Eff[ResolvedVc[T]] {
	if v.node.IsResolved() {
		return Pure(ResolvedVc[T]{node: v})
	}
	return Map(performResolve(v.node), func(r RawVc) ResolvedVc[T] {
		return mustResolved[T](r)
	})
}

// ValueDebugFormat asks the executor for a content-aware description of the
// cell, nested at most depth levels.
func (v Vc[T]) ValueDebugFormat(depth int) Eff[string] {
	return Perform[DebugCell, string](DebugCell{Raw: v.node, Depth: depth})
}

// TraceRawVcs reports the handle to tc.
func (v Vc[T]) TraceRawVcs(tc *TraceContext) {
	v.node.TraceRawVcs(tc)
}

// Hash returns the hash of the handle identity.
func (v Vc[T]) Hash() uint64 { return v.node.Hash() }

// String formats the handle only; content is never read.
func (v Vc[T]) String() string {
	return fmt.Sprintf("Vc{node: %s}", v.node)
}

// GoString implements fmt.GoStringer.
func (v Vc[T]) GoString() string { return v.String() }

// MarshalBinary encodes v as exactly its handle.
func (v Vc[T]) MarshalBinary() ([]byte, error) {
	return v.node.MarshalBinary()
}

// UnmarshalBinary decodes a handle. The annotation T is not verified.
func (v *Vc[T]) UnmarshalBinary(data []byte) error {
	return v.node.UnmarshalBinary(data)
}

// Upcast widens a reference to T into a reference to K.
// The witness proves at compile time that T is assignable to K, so the
// conversion is free and cannot fail.
func Upcast[K, T any](v Vc[T], w Upcasts[T, K]) Vc[K] {
	w.check()
	return Vc[K]{node: v.node}
}

// TryResolveSidecast resolves v and then sidecasts it to K.
// See [TrySidecast].
func TryResolveSidecast[K, T any](v Vc[T]) Eff[Option[ResolvedVc[K]]] {
	return Map(v.ToResolved(), func(r ResolvedVc[T]) Option[ResolvedVc[K]] {
		k, ok := TrySidecast[K](r)
		return optionOf(k, ok)
	})
}

// TryResolveDowncast resolves v and then downcasts it to the capability K.
// See [TryDowncast].
func TryResolveDowncast[K, T any](v Vc[T], w Upcasts[K, T]) Eff[Option[ResolvedVc[K]]] {
	return Map(v.ToResolved(), func(r ResolvedVc[T]) Option[ResolvedVc[K]] {
		k, ok := TryDowncast(r, w)
		return optionOf(k, ok)
	})
}

// TryResolveDowncastType resolves v and then downcasts it to the value type
// K. See [TryDowncastType].
func TryResolveDowncastType[K, T any](v Vc[T], w Upcasts[K, T]) Eff[Option[ResolvedVc[K]]] {
	return Map(v.ToResolved(), func(r ResolvedVc[T]) Option[ResolvedVc[K]] {
		k, ok := TryDowncastType(r, w)
		return optionOf(k, ok)
	})
}

// ReadRef is an immutable snapshot of a cell's content as observed by one
// read. Later reads of the same reference may observe newer snapshots.
//
// Payloads are shared with the store; values reachable through pointers,
// slices or maps inside T must be treated as read-only.
type ReadRef[T any] struct {
	v T
}

// Get returns the snapshot value.
func (r ReadRef[T]) Get() T { return r.v }

func contentAs[T any](r RawVc, c any) T {
	t, ok := c.(T)
	if !ok {
		panic(fmt.Sprintf("vc: %s holds %T, not %s", r, c, reflect.TypeFor[T]()))
	}
	return t
}

// Resolvable is implemented by [Vc] and [ResolvedVc]. Generic code that
// needs a storable reference calls ToResolved; on a ResolvedVc that is free.
type Resolvable[T any] interface {
	ToResolved() Eff[ResolvedVc[T]]
}
