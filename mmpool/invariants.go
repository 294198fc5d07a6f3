// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmpool

import "github.com/belka-ew/mmpool/mmerr"

// checkInvariants walks every region and block when Debug is set,
// verifying block list back-pointer symmetry, region.blocks matching the
// count of non-free blocks, and no two consecutive blocks both free. It
// panics with mmerr.ErrInvariantViolated on the first violation found.
//
// Gated behind Debug so the allocation fast path performs no list-walk
// beyond the allocation search itself.
func (p *Pool) checkInvariants() {
	if !Debug {
		return
	}

	for r := p.head; r != nil; r = r.next {
		if r.prev != nil && r.prev.next != r {
			panic(mmerr.ErrInvariantViolated)
		}
		if r.next != nil && r.next.prev != r {
			panic(mmerr.ErrInvariantViolated)
		}

		live := 0
		prevFree := false
		for b := r.firstBlock(); b != nil; b = b.next {
			if b.prev != nil && b.prev.next != b {
				panic(mmerr.ErrInvariantViolated)
			}
			if b.next != nil && b.next.prev != b {
				panic(mmerr.ErrInvariantViolated)
			}
			if b.region != r {
				panic(mmerr.ErrInvariantViolated)
			}
			if b.free && prevFree {
				panic(mmerr.ErrInvariantViolated)
			}
			if !b.free {
				live++
			}
			prevFree = b.free
		}
		if live != r.blocks {
			panic(mmerr.ErrInvariantViolated)
		}
	}
}
