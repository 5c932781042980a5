// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import "errors"

var (
	// ErrForeignHandle is returned when a context-bound reference is used
	// outside the execution that created it.
	ErrForeignHandle = errors.New("engine: context-bound handle used outside its execution")

	// ErrLocalArgument is returned when a call argument is a context-bound
	// reference. Resolve arguments before passing them.
	ErrLocalArgument = errors.New("engine: context-bound reference passed as call argument")

	// ErrUnhashableArgument is returned when a call argument's dynamic
	// type cannot be used as a memo key, such as a slice held in an any.
	ErrUnhashableArgument = errors.New("engine: call argument is not hashable")

	// ErrCycle is returned when a task waits on its own result, directly or
	// through tasks running on other goroutines.
	ErrCycle = errors.New("engine: call cycle")

	// ErrCallDepth is returned when nested resolution exceeds
	// Config.MaxCallDepth.
	ErrCallDepth = errors.New("engine: call depth exceeded")

	// ErrUnknownOperation is returned when a computation performs an
	// operation the engine does not serve.
	ErrUnknownOperation = errors.New("engine: unknown operation")

	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("engine: invalid config")
)
