// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"log/slog"

	"code.hybscloud.com/vc"
)

// Reachable returns every resolved cell reachable from roots, roots
// included, in breadth-first order. Cell values are traced with
// [vc.Trace]; context-bound handles and cells this store does not hold are
// skipped.
func (s *Store) Reachable(roots ...vc.RawVc) []vc.RawVc {
	seen := make(map[vc.RawVc]struct{}, len(roots))
	queue := make([]vc.RawVc, 0, len(roots))
	for _, r := range roots {
		if _, ok := seen[r]; ok || !r.IsResolved() {
			continue
		}
		seen[r] = struct{}{}
		queue = append(queue, r)
	}

	out := make([]vc.RawVc, 0, len(queue))
	var tc vc.TraceContext
	for i := 0; i < len(queue); i++ {
		sl, err := s.slot(queue[i])
		if err != nil {
			s.log.Debug("trace skipped", slog.String("cell", queue[i].String()), slog.Any("err", err))
			continue
		}
		out = append(out, queue[i])
		sl.mu.RLock()
		value := sl.snap.value
		sl.mu.RUnlock()

		tc.Reset()
		vc.Trace(&tc, value)
		for _, h := range tc.Handles() {
			if _, ok := seen[h]; ok || !h.IsResolved() {
				continue
			}
			seen[h] = struct{}{}
			queue = append(queue, h)
		}
	}
	return out
}
