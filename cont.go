// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

// Cont is a computation in continuation-passing style.
// Cont[R, A] produces a value of type A for a continuation whose final
// answer has type R.
//
// Computations that touch cells are written as Cont values so that the two
// suspending operations, reading a cell and resolving a context-bound
// reference, can hand control back to whatever executor is driving them.
type Cont[R, A any] func(k func(A) R) R

// Return lifts a pure value into a computation.
func Return[R, A any](a A) Cont[R, A] {
	return func(k func(A) R) R {
		return k(a)
	}
}

// Eff is a computation that may suspend on cell operations and eventually
// produces a value of type A. Every suspending method in this package
// returns an Eff.
type Eff[A any] = Cont[Resumed, A]

// Pure lifts a value into an Eff that never suspends.
func Pure[A any](a A) Eff[A] {
	return Return[Resumed](a)
}
