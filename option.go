// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

// Option is a value that may be absent. Casts that go through a suspending
// resolution return it, since an Eff carries a single result.
type Option[A any] struct {
	ok bool
	v  A
}

// Some returns a present Option.
func Some[A any](a A) Option[A] { return Option[A]{ok: true, v: a} }

// None returns an absent Option.
func None[A any]() Option[A] { return Option[A]{} }

func optionOf[A any](a A, ok bool) Option[A] {
	if !ok {
		return None[A]()
	}
	return Some(a)
}

// IsSome reports whether the value is present.
func (o Option[A]) IsSome() bool { return o.ok }

// Get returns the value and whether it is present.
func (o Option[A]) Get() (A, bool) { return o.v, o.ok }
