// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

// Sequencing for computations.
// Bind is the primitive; Map and Then save a closure when the second
// step is pure or does not need the first result.

// Bind runs m and passes its result to f.
func Bind[R, A, B any](m Cont[R, A], f func(A) Cont[R, B]) Cont[R, B] {
	return func(k func(B) R) R {
		return m(func(a A) R {
			return f(a)(k)
		})
	}
}

// Map applies a pure function to the result of m.
func Map[R, A, B any](m Cont[R, A], f func(A) B) Cont[R, B] {
	return func(k func(B) R) R {
		return m(func(a A) R {
			return k(f(a))
		})
	}
}

// Then runs m, drops its result, and continues with n.
func Then[R, A, B any](m Cont[R, A], n Cont[R, B]) Cont[R, B] {
	return func(k func(B) R) R {
		return m(func(_ A) R {
			return n(k)
		})
	}
}

// Sequence runs ms in order and collects their results.
// Reading several references one after another is the common use:
//
//	vc.Sequence(a.Read(), b.Read(), c.Read())
func Sequence[A any](ms ...Eff[A]) Eff[[]A] {
	out := Pure[[]A](nil)
	for _, m := range ms {
		out = Bind(out, func(acc []A) Eff[[]A] {
			return Map(m, func(a A) []A { return append(acc, a) })
		})
	}
	return out
}
