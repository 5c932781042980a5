// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vc provides typed references to memoized cells for an incremental
// computation engine.
//
// Callers never hold cell values. They hold references and read through
// them to obtain immutable snapshots. Two reference types exist:
//
//   - [Vc]: may still be context-bound, naming a pending call of the running
//     computation. Used for function inputs and outputs.
//   - [ResolvedVc]: always points at one concrete cell. Comparable by cell
//     identity, safe to store in cell values and to share across goroutines.
//
// The only way from Vc to ResolvedVc is resolution ([Vc.ToResolved]) or one
// of the constructors ([Cell], [NewCell], [Default], [ToResolvedVc]).
//
// # Suspension
//
// Reading a cell and resolving a context-bound reference may have to wait
// for another computation. Both are expressed as operations performed by a
// continuation-passing computation ([Eff]); the executor driving it decides
// how to wait. Nothing else in this package suspends.
//
//   - [Vc.Read]: performs [ReadCell], returns a [ReadRef]
//   - [Vc.ToResolved], [Vc.Resolve]: perform [ResolveCell] when context-bound
//   - [Vc.ValueDebugFormat]: performs [DebugCell]
//
// Computations are composed with [Bind], [Map], [Then] and [Sequence], and
// driven with [Step] (one suspension at a time) or [Handle] (synchronous).
//
//	m := vc.Map(count.Read(), func(r vc.ReadRef[Count]) int {
//		return r.Get().Unwrap() * 2
//	})
//	v, susp := vc.Step(m)
//	for susp != nil {
//		v, susp = susp.Resume(serve(susp.Op()))
//	}
//
// Calling ToResolved or Resolve on a ResolvedVc is an identity operation
// that never suspends; both are deprecated so that such calls get removed.
//
// # Type identities
//
// Every concrete value type and every capability interface has a numeric
// identity in a process-wide registry ([RegisterValueType],
// [RegisterTrait]). A resolved handle caches its value type's capability
// set, a bitset of [TraitID]s, so runtime casts are a bit test.
//
// # Casts
//
//   - [Upcast], [UpcastResolved]: widen T to K given an [Upcasts] witness
//     built by [Implements]. The compiler proves the relation; no runtime
//     cost, never fails.
//   - [TrySidecast]: reinterpret as any capability K, present iff the value
//     type implements K.
//   - [TryDowncast]: sidecast where K is known to be a sub-interface of T.
//   - [TryDowncastType]: narrow to a concrete value type K.
//   - [ResolveSidecast], [ResolveDowncast], [ResolveDowncastType]: the same
//     with a reserved error result ([ResolveTypeError]) that is always nil.
//   - [TryResolveSidecast] and friends: resolve a Vc first, then cast.
//
// Casts never read cell content and never suspend. A miss is (zero, false),
// not an error.
//
// # Construction
//
// [Cell] stores a value in a new cell through a [CellCreator]. Transparent
// value types ([Transparent]) wrap an inner payload: [NewCell] builds one
// from the payload, [Default] from the payload's zero value. Default
// allocates a fresh cell every time.
//
// # Introspection
//
// String and GoString show the handle only. Content-aware formatting goes
// through [DebugCell] and [ValueDebug]. References report themselves to a
// [TraceContext] for reachability walks.
//
// # Wire form
//
// [RawVc] has a protobuf-compatible binary encoding. [Vc] and [ResolvedVc]
// encode as exactly their handle.
package vc
