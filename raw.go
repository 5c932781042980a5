// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// TaskID identifies a memoized task instance.
type TaskID uint32

// ExecutionID identifies one execution of a task. Context-bound handles are
// only meaningful inside the execution that minted them.
type ExecutionID = uuid.UUID

// LocalCallID identifies a call made within one execution.
type LocalCallID uint32

// CellID addresses a cell inside the task that owns it.
type CellID struct {
	Type  ValueTypeID
	Index uint32
}

func (c CellID) String() string {
	if vt, ok := LookupValueType(c.Type); ok {
		return fmt.Sprintf("%s#%d", vt.Name(), c.Index)
	}
	return fmt.Sprintf("type%d#%d", c.Type, c.Index)
}

type rawKind uint8

const (
	rawInvalid rawKind = iota
	rawLocal
	rawCell
)

// RawVc is the untyped handle behind every reference.
// It is either context-bound (a pending call in the current execution) or
// resolved (a concrete task cell). Two handles are equal iff they denote the
// same call or the same cell; content is never compared.
//
// A resolved handle carries a pointer to its value type's registry entry.
// The pointer is canonical per ValueTypeID, so == stays identity-based.
type RawVc struct {
	kind rawKind
	exec ExecutionID
	call LocalCallID
	task TaskID
	cell CellID
	meta *ValueType
}

// LocalRaw returns a context-bound handle for call within exec.
func LocalRaw(exec ExecutionID, call LocalCallID) RawVc {
	return RawVc{kind: rawLocal, exec: exec, call: call}
}

// CellRaw returns a resolved handle for cell index of value type vt owned
// by task.
func CellRaw(task TaskID, vt *ValueType, index uint32) RawVc {
	if vt == nil {
		panic("vc: nil value type")
	}
	return RawVc{kind: rawCell, task: task, cell: CellID{Type: vt.id, Index: index}, meta: vt}
}

// IsResolved reports whether r denotes a concrete cell.
func (r RawVc) IsResolved() bool { return r.kind == rawCell }

// IsLocal reports whether r is context-bound.
func (r RawVc) IsLocal() bool { return r.kind == rawLocal }

// IsZero reports whether r is the zero handle.
func (r RawVc) IsZero() bool { return r.kind == rawInvalid }

// Execution returns the execution a context-bound handle belongs to.
func (r RawVc) Execution() ExecutionID { return r.exec }

// Call returns the call index of a context-bound handle.
func (r RawVc) Call() LocalCallID { return r.call }

// Task returns the owning task of a resolved handle.
func (r RawVc) Task() TaskID { return r.task }

// Cell returns the cell address of a resolved handle.
func (r RawVc) Cell() CellID { return r.cell }

// ValueType returns the cached value type of a resolved handle, or nil.
func (r RawVc) ValueType() *ValueType { return r.meta }

// HasTrait reports whether the cell's value type implements the capability
// interface id. Only resolved handles can answer; others report false.
func (r RawVc) HasTrait(id TraitID) bool {
	return r.kind == rawCell && r.meta.Implements(id)
}

// IsType reports whether the cell's value type is id.
func (r RawVc) IsType(id ValueTypeID) bool {
	return r.kind == rawCell && r.cell.Type == id
}

// Hash returns a 64-bit hash of the handle identity.
// Equal handles hash equally.
func (r RawVc) Hash() uint64 {
	var buf [maxRawWireSize]byte
	return xxhash.Sum64(r.appendWire(buf[:0]))
}

// String formats the handle identity without touching cell content.
func (r RawVc) String() string {
	switch r.kind {
	case rawLocal:
		return fmt.Sprintf("LocalOutput(%s, %d)", r.exec, r.call)
	case rawCell:
		return fmt.Sprintf("TaskCell(%d, %s)", r.task, r.cell)
	default:
		return "RawVc(invalid)"
	}
}

// GoString implements fmt.GoStringer.
func (r RawVc) GoString() string { return r.String() }

// TraceRawVcs registers r with the tracing context.
func (r RawVc) TraceRawVcs(tc *TraceContext) {
	tc.Visit(r)
}
