// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// ValueTypeID identifies a concrete value type. Zero is never assigned.
type ValueTypeID uint32

// TraitID identifies a capability interface. Zero is never assigned.
type TraitID uint32

// ValueType is the registry entry of a concrete value type.
// Resolved handles keep a pointer to it so that capability checks never
// touch cell storage.
type ValueType struct {
	id     ValueTypeID
	name   string
	rtype  reflect.Type
	traits atomic.Pointer[bitset.BitSet]
}

// ID returns the numeric identity of the value type.
func (t *ValueType) ID() ValueTypeID { return t.id }

// Name returns the registered name.
func (t *ValueType) Name() string { return t.name }

// Type returns the Go type backing the value type.
func (t *ValueType) Type() reflect.Type { return t.rtype }

// Implements reports whether the value type implements the capability
// interface id. Lock-free.
func (t *ValueType) Implements(id TraitID) bool {
	return t.traits.Load().Test(uint(id))
}

// Traits returns the identities of all registered capability interfaces the
// value type implements, in ascending order.
func (t *ValueType) Traits() []TraitID {
	set := t.traits.Load()
	out := make([]TraitID, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, TraitID(i))
	}
	return out
}

func (t *ValueType) String() string { return t.name }

// addTrait publishes a new membership set; readers keep the old one.
func (t *ValueType) addTrait(id TraitID) {
	next := t.traits.Load().Clone()
	next.Set(uint(id))
	t.traits.Store(next)
}

// Trait is the registry entry of a capability interface.
type Trait struct {
	id    TraitID
	name  string
	rtype reflect.Type
}

// ID returns the numeric identity of the capability interface.
func (t *Trait) ID() TraitID { return t.id }

// Name returns the registered name.
func (t *Trait) Name() string { return t.name }

func (t *Trait) String() string { return t.name }

// registry is the process-wide type identity table.
// Lookups go through sync.Map; registration is serialized by mu.
type registry struct {
	mu      sync.Mutex
	byValue sync.Map // reflect.Type -> *ValueType
	byTrait sync.Map // reflect.Type -> *Trait
	values  []*ValueType
	traits  []*Trait
}

var types = &registry{}

func (r *registry) valueType(rt reflect.Type, name string) *ValueType {
	if v, ok := r.byValue.Load(rt); ok {
		return v.(*ValueType)
	}
	if rt.Kind() == reflect.Interface {
		panic(fmt.Sprintf("vc: %s is an interface and cannot be a value type", rt))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.byValue.Load(rt); ok {
		return v.(*ValueType)
	}
	if name == "" {
		name = rt.String()
	}
	vt := &ValueType{id: ValueTypeID(len(r.values) + 1), name: name, rtype: rt}
	set := bitset.New(uint(len(r.traits) + 1))
	for _, tr := range r.traits {
		if rt.Implements(tr.rtype) {
			set.Set(uint(tr.id))
		}
	}
	vt.traits.Store(set)
	r.values = append(r.values, vt)
	r.byValue.Store(rt, vt)
	return vt
}

func (r *registry) trait(rt reflect.Type, name string) *Trait {
	if v, ok := r.byTrait.Load(rt); ok {
		return v.(*Trait)
	}
	if rt.Kind() != reflect.Interface {
		panic(fmt.Sprintf("vc: %s is not an interface and cannot be a capability", rt))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.byTrait.Load(rt); ok {
		return v.(*Trait)
	}
	if name == "" {
		name = rt.String()
	}
	tr := &Trait{id: TraitID(len(r.traits) + 1), name: name, rtype: rt}
	r.traits = append(r.traits, tr)
	for _, vt := range r.values {
		if vt.rtype.Implements(rt) {
			vt.addTrait(tr.id)
		}
	}
	r.byTrait.Store(rt, tr)
	return tr
}

func (r *registry) lookupValue(id ValueTypeID) (*ValueType, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == 0 || int(id) > len(r.values) {
		return nil, false
	}
	return r.values[id-1], true
}

func (r *registry) lookupTrait(id TraitID) (*Trait, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == 0 || int(id) > len(r.traits) {
		return nil, false
	}
	return r.traits[id-1], true
}

// RegisterValueType assigns T a value type identity under name.
// Registration is idempotent and the first name wins. Types that are used
// before being registered are registered under their Go type name.
// Panics if T is an interface type.
func RegisterValueType[T any](name string) *ValueType {
	return types.valueType(reflect.TypeFor[T](), name)
}

// RegisterTrait assigns the interface type K a capability identity under
// name and records it in the membership set of every value type that
// implements it. Panics if K is not an interface type.
func RegisterTrait[K any](name string) *Trait {
	return types.trait(reflect.TypeFor[K](), name)
}

// ValueTypeOf returns the registry entry of T, registering it if needed.
func ValueTypeOf[T any]() *ValueType {
	return types.valueType(reflect.TypeFor[T](), "")
}

// TraitOf returns the registry entry of the interface type K, registering
// it if needed.
func TraitOf[K any]() *Trait {
	return types.trait(reflect.TypeFor[K](), "")
}

// LookupValueType returns the value type registered under id.
func LookupValueType(id ValueTypeID) (*ValueType, bool) {
	return types.lookupValue(id)
}

// LookupTrait returns the capability interface registered under id.
func LookupTrait(id TraitID) (*Trait, bool) {
	return types.lookupTrait(id)
}

// Upcasts is a static proof that a reference to T may be viewed as a
// reference to K. Build one with [Implements].
type Upcasts[T, K any] struct {
	proven bool
}

// Implements builds an [Upcasts] witness. The conversion function is only
// type-checked, never called, so the compiler is what proves that T is
// assignable to K:
//
//	var circleIsShape = vc.Implements(func(c Circle) Shape { return c })
func Implements[T, K any](func(T) K) Upcasts[T, K] {
	return Upcasts[T, K]{proven: true}
}

func (w Upcasts[T, K]) check() {
	if !w.proven {
		panic("vc: zero Upcasts witness; build it with vc.Implements")
	}
}
