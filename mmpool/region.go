// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmpool

import "unsafe"

// regionHeader sits at the start of every OS-mapped region. prev/next
// thread the process-wide, doubly-linked list of live regions; blocks
// counts currently-allocated (non-free) blocks in this region and drives
// the region's lifecycle (it is unmapped the moment blocks would drop to
// zero); size is the region's total mapped byte length, header included.
type regionHeader struct {
	prev, next *regionHeader
	blocks     int
	size       int
}

var regionHeaderSize = int(unsafe.Sizeof(regionHeader{}))

// firstBlock returns the region's first block header, always the block
// immediately following the region header; the region carries no
// separate "block list head" field because this address is always
// derivable.
func (r *regionHeader) firstBlock() *blockHeader {
	return (*blockHeader)(unsafe.Pointer(uintptr(unsafe.Pointer(r)) + uintptr(regionHeaderSize)))
}

// bytes reconstructs the region's full mapped byte range, used only when
// handing the region back to ospages.Unmap.
func (r *regionHeader) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(r)), r.size)
}

// unlink removes r from the pool's region list, updating the neighbours
// and, if r was the head, the pool's head pointer.
func (r *regionHeader) unlink(p *Pool) {
	if r.prev != nil {
		r.prev.next = r.next
	} else {
		p.head = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	}
}

// prepend splices r in as the new head of the pool's region list, the
// policy used when a fresh region is created.
func (r *regionHeader) prepend(p *Pool) {
	r.prev = nil
	r.next = p.head
	if p.head != nil {
		p.head.prev = r
	}
	p.head = r
}
