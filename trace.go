// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import "fmt"

// TraceRawVcs is implemented by values that hold references. A reachability
// walker calls it to enumerate the handles a cell value points at.
type TraceRawVcs interface {
	TraceRawVcs(tc *TraceContext)
}

// TraceContext collects handles reported during a trace.
type TraceContext struct {
	list []RawVc
}

// Visit records r.
func (tc *TraceContext) Visit(r RawVc) {
	tc.list = append(tc.list, r)
}

// Handles returns the handles recorded so far, in visit order.
func (tc *TraceContext) Handles() []RawVc { return tc.list }

// Reset clears the recorded handles, keeping the backing storage.
func (tc *TraceContext) Reset() { tc.list = tc.list[:0] }

// Trace reports the handles held by v, if v implements [TraceRawVcs].
func Trace(tc *TraceContext, v any) {
	if t, ok := v.(TraceRawVcs); ok {
		t.TraceRawVcs(tc)
	}
}

// ValueDebug is implemented by cell values that describe themselves for
// content-aware debugging.
type ValueDebug interface {
	DebugString(depth int) string
}

// FormatValue describes a cell value for [DebugCell], using [ValueDebug]
// when implemented. Depth zero or less yields the type name only.
func FormatValue(v any, depth int) string {
	if depth <= 0 {
		return fmt.Sprintf("%T{...}", v)
	}
	if d, ok := v.(ValueDebug); ok {
		return d.DebugString(depth)
	}
	return fmt.Sprintf("%+v", v)
}
