// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import (
	"fmt"
)

// ResolvedVc is a [Vc] that always points at one concrete cell.
//
// Unlike Vc it carries no execution-local state, so it may be stored inside
// cell values, used as a map key, and shared between goroutines. Every
// constructor establishes the invariant; it is never re-checked.
//
// Two ResolvedVcs are equal iff they point at the same cell. Equality is
// synchronous and cannot read content: unequal references may hold equal
// values, and one reference read twice may observe different snapshots if
// the cell is invalidated in between.
type ResolvedVc[T any] struct {
	node Vc[T]
}

// ToResolvedVc converts a raw handle into a ResolvedVc.
// Returns ErrNotResolved if r is context-bound or zero.
func ToResolvedVc[T any](r RawVc) (ResolvedVc[T], error) {
	if !r.IsResolved() {
		return ResolvedVc[T]{}, fmt.Errorf("%w: %s", ErrNotResolved, r)
	}
	return ResolvedVc[T]{node: Vc[T]{node: r}}, nil
}

// mustResolved is used where an executor has promised a resolved handle.
func mustResolved[T any](r RawVc) ResolvedVc[T] {
	if !r.IsResolved() {
		panic(fmt.Sprintf("vc: executor resolved to %s", r))
	}
	return ResolvedVc[T]{node: Vc[T]{node: r}}
}

// Vc returns the reference as a plain [Vc]. The result is already resolved.
func (r ResolvedVc[T]) Vc() Vc[T] { return r.node }

// Raw returns the underlying handle.
func (r ResolvedVc[T]) Raw() RawVc { return r.node.node }

// IsZero reports whether r is the zero ResolvedVc, which points nowhere.
func (r ResolvedVc[T]) IsZero() bool { return r.node.node.IsZero() }

// Read suspends until the cell's current content is available.
// See [Vc.Read].
func (r ResolvedVc[T]) Read() Eff[ReadRef[T]] { return r.node.Read() }

// ToResolved returns r unchanged without suspending.
//
// Deprecated: r is already resolved; use it directly.
func (r ResolvedVc[T]) ToResolved() Eff[ResolvedVc[T]] { return Pure(r) }

// Resolve returns r as a Vc without suspending.
//
// Deprecated: r is already resolved; use [ResolvedVc.Vc].
func (r ResolvedVc[T]) Resolve() Eff[Vc[T]] { return Pure(r.node) }

// ValueDebugFormat forwards to [Vc.ValueDebugFormat].
func (r ResolvedVc[T]) ValueDebugFormat(depth int) Eff[string] {
	return r.node.ValueDebugFormat(depth)
}

// TraceRawVcs reports the handle to tc.
func (r ResolvedVc[T]) TraceRawVcs(tc *TraceContext) {
	r.node.TraceRawVcs(tc)
}

// Hash returns the hash of the cell identity.
func (r ResolvedVc[T]) Hash() uint64 { return r.node.node.Hash() }

// String formats the handle only; content is never read.
func (r ResolvedVc[T]) String() string {
	return fmt.Sprintf("ResolvedVc{node: %s}", r.node.node)
}

// GoString implements fmt.GoStringer.
func (r ResolvedVc[T]) GoString() string { return r.String() }

// MarshalBinary encodes r as exactly its handle.
func (r ResolvedVc[T]) MarshalBinary() ([]byte, error) {
	return r.node.node.MarshalBinary()
}

// UnmarshalBinary decodes a handle and rejects context-bound ones with
// ErrNotResolved.
func (r *ResolvedVc[T]) UnmarshalBinary(data []byte) error {
	var raw RawVc
	if err := raw.UnmarshalBinary(data); err != nil {
		return err
	}
	out, err := ToResolvedVc[T](raw)
	if err != nil {
		return err
	}
	*r = out
	return nil
}

// UpcastResolved widens a ResolvedVc. See [Upcast].
func UpcastResolved[K, T any](r ResolvedVc[T], w Upcasts[T, K]) ResolvedVc[K] {
	return ResolvedVc[K]{node: Upcast(r.node, w)}
}
