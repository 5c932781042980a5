// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import "sync"

var opMarkerPool = sync.Pool{
	New: func() any { return new(opMarker) },
}

// opMarker is the value a suspended computation returns to its driver.
// It carries the operation and the typed continuation to resume.
type opMarker struct {
	op     Operation
	resume func(*opMarker, Resumed) Resumed
	k      any
}

func (m *opMarker) Op() Operation            { return m.op }
func (m *opMarker) Resume(v Resumed) Resumed { return m.resume(m, v) }

func acquireMarker() *opMarker {
	return opMarkerPool.Get().(*opMarker)
}

func releaseMarker(m *opMarker) {
	m.op = nil
	m.resume = nil
	m.k = nil
	opMarkerPool.Put(m)
}
