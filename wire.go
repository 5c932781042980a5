// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vc

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire form of a handle, protobuf-compatible:
//
//	1: kind       varint
//	2: execution  bytes (16)   context-bound only
//	3: call       varint       context-bound only
//	4: task       varint       resolved only
//	5: value type varint       resolved only
//	6: cell index varint       resolved only
//
// References serialize as exactly this form, with no extra framing.
const (
	fieldKind protowire.Number = iota + 1
	fieldExecution
	fieldCall
	fieldTask
	fieldValueType
	fieldIndex
)

// maxRawWireSize bounds the encoding: six one-byte tags, a 16-byte
// execution with its length prefix, and five varints of at most 10 bytes.
const maxRawWireSize = 6 + 17 + 5*10

func (r RawVc) appendWire(b []byte) []byte {
	b = protowire.AppendTag(b, fieldKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.kind))
	switch r.kind {
	case rawLocal:
		b = protowire.AppendTag(b, fieldExecution, protowire.BytesType)
		b = protowire.AppendBytes(b, r.exec[:])
		b = protowire.AppendTag(b, fieldCall, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.call))
	case rawCell:
		b = protowire.AppendTag(b, fieldTask, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.task))
		b = protowire.AppendTag(b, fieldValueType, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.cell.Type))
		b = protowire.AppendTag(b, fieldIndex, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.cell.Index))
	}
	return b
}

// AppendBinary appends the wire form of r to b.
func (r RawVc) AppendBinary(b []byte) ([]byte, error) {
	return r.appendWire(b), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r RawVc) MarshalBinary() ([]byte, error) {
	return r.appendWire(make([]byte, 0, maxRawWireSize)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// A resolved handle is re-attached to its value type's registry entry, so
// the value type must be registered in this process.
func (r *RawVc) UnmarshalBinary(data []byte) error {
	var out RawVc
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformedHandle, protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == fieldExecution && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrMalformedHandle, protowire.ParseError(n))
			}
			if len(v) != len(out.exec) {
				return fmt.Errorf("%w: execution id has %d bytes", ErrMalformedHandle, len(v))
			}
			copy(out.exec[:], v)
			data = data[n:]
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrMalformedHandle, protowire.ParseError(n))
			}
			data = data[n:]
			if err := out.setField(num, v); err != nil {
				return err
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrMalformedHandle, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	switch out.kind {
	case rawLocal:
		out.task, out.cell = 0, CellID{}
	case rawCell:
		vt, ok := LookupValueType(out.cell.Type)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownValueType, out.cell.Type)
		}
		out.meta = vt
		out.exec, out.call = ExecutionID{}, 0
	default:
		return fmt.Errorf("%w: kind %d", ErrMalformedHandle, out.kind)
	}
	*r = out
	return nil
}

func (r *RawVc) setField(num protowire.Number, v uint64) error {
	const max32 = 1<<32 - 1
	switch num {
	case fieldKind:
		if v > uint64(rawCell) {
			return fmt.Errorf("%w: kind %d", ErrMalformedHandle, v)
		}
		r.kind = rawKind(v)
		return nil
	case fieldCall, fieldTask, fieldValueType, fieldIndex:
		if v > max32 {
			return fmt.Errorf("%w: field %d overflows", ErrMalformedHandle, num)
		}
	default:
		return nil
	}
	switch num {
	case fieldCall:
		r.call = LocalCallID(v)
	case fieldTask:
		r.task = TaskID(v)
	case fieldValueType:
		r.cell.Type = ValueTypeID(v)
	case fieldIndex:
		r.cell.Index = uint32(v)
	}
	return nil
}
