// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"errors"
	"reflect"
)

var (
	// ErrNoSuchCell is returned for a resolved handle this store never
	// allocated.
	ErrNoSuchCell = errors.New("store: no such cell")

	// ErrTypeMismatch is returned when an update does not match the cell's
	// value type.
	ErrTypeMismatch = errors.New("store: payload does not match cell type")
)

func typeOf(v any) reflect.Type { return reflect.TypeOf(v) }
