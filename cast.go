// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import "reflect"

// Runtime-checked casts. A resolved handle caches its value type's
// capability set, so every check here is a bit test or an integer compare;
// no cell is read and nothing suspends.

// TrySidecast reinterprets r as a reference to the capability interface K.
// Returns false if the cell's value type does not implement K. When K is a
// concrete type the check is the value type comparison of
// [TryDowncastType].
//
// If every T is statically a K, use [UpcastResolved] instead.
func TrySidecast[K, T any](r ResolvedVc[T]) (ResolvedVc[K], bool) {
	raw := r.node.node
	if !isA[K](raw) {
		return ResolvedVc[K]{}, false
	}
	return ResolvedVc[K]{node: Vc[K]{node: raw}}, true
}

// TryDowncast narrows r to the capability interface K, which the witness
// shows is a sub-interface of T. Same mechanism as [TrySidecast].
func TryDowncast[K, T any](r ResolvedVc[T], w Upcasts[K, T]) (ResolvedVc[K], bool) {
	w.check()
	return TrySidecast[K](r)
}

// TryDowncastType narrows r to the concrete value type K by comparing the
// handle's value type identity.
func TryDowncastType[K, T any](r ResolvedVc[T], w Upcasts[K, T]) (ResolvedVc[K], bool) {
	w.check()
	raw := r.node.node
	if !raw.IsType(ValueTypeOf[K]().id) {
		return ResolvedVc[K]{}, false
	}
	return ResolvedVc[K]{node: Vc[K]{node: raw}}, true
}

// ResolveSidecast is the fallible form of [TrySidecast].
// The error is reserved for membership checks that can fail; it is always
// nil today.
func ResolveSidecast[K, T any](r ResolvedVc[T]) (ResolvedVc[K], bool, error) {
	k, ok := TrySidecast[K](r)
	return k, ok, nil
}

// ResolveDowncast is the fallible form of [TryDowncast].
// The error is always nil today.
func ResolveDowncast[K, T any](r ResolvedVc[T], w Upcasts[K, T]) (ResolvedVc[K], bool, error) {
	k, ok := TryDowncast(r, w)
	return k, ok, nil
}

// ResolveDowncastType is the fallible form of [TryDowncastType].
// The error is always nil today.
func ResolveDowncastType[K, T any](r ResolvedVc[T], w Upcasts[K, T]) (ResolvedVc[K], bool, error) {
	k, ok := TryDowncastType(r, w)
	return k, ok, nil
}

// isA reports whether the cell behind raw can be viewed as a K.
func isA[K any](raw RawVc) bool {
	rt := reflect.TypeFor[K]()
	if rt.Kind() == reflect.Interface {
		return raw.HasTrait(types.trait(rt, "").id)
	}
	return raw.IsType(types.valueType(rt, "").id)
}
