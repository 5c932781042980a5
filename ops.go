// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

// Cell operations. These are the only points at which a computation
// suspends; casts and cell construction never perform them.

// ReadCell asks the executor for the current content of Raw.
// A context-bound Raw is resolved first. The executor resumes with the
// snapshot payload.
type ReadCell struct {
	Phantom[any]
	Raw RawVc
}

// ResolveCell asks the executor to turn the context-bound Raw into a
// resolved handle. The executor resumes with a resolved [RawVc].
type ResolveCell struct {
	Phantom[RawVc]
	Raw RawVc
}

// DebugCell asks the executor for a content-aware description of Raw,
// nested at most Depth levels. The executor resumes with a string.
type DebugCell struct {
	Phantom[string]
	Raw   RawVc
	Depth int
}

func performRead(r RawVc) Eff[any] {
	return Perform[ReadCell, any](ReadCell{Raw: r})
}

func performResolve(r RawVc) Eff[RawVc] {
	if r.IsResolved() {
		return Pure(r)
	}
	return Perform[ResolveCell, RawVc](ResolveCell{Raw: r})
}
