// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import (
	"errors"
	"fmt"
)

var (
	// ErrNotResolved is returned where a resolved handle is required but a
	// context-bound one was supplied.
	ErrNotResolved = errors.New("vc: handle is not resolved")

	// ErrMalformedHandle is returned when decoding an invalid wire form.
	ErrMalformedHandle = errors.New("vc: malformed handle")

	// ErrUnknownValueType is returned when a decoded handle names a value
	// type that is not registered in this process.
	ErrUnknownValueType = errors.New("vc: unknown value type")
)

// ResolveTypeError reports that capability membership of a reference could
// not be determined. It is reserved for the fallible cast entry points;
// membership is answered from cached metadata today, so it is never
// produced.
type ResolveTypeError struct {
	Raw    RawVc
	Target string
	Err    error
}

func (e *ResolveTypeError) Error() string {
	return fmt.Sprintf("vc: cannot determine whether %s is a %s: %v", e.Raw, e.Target, e.Err)
}

func (e *ResolveTypeError) Unwrap() error { return e.Err }
