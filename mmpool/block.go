// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmpool

import (
	"unsafe"

	"github.com/belka-ew/mmpool/mmconfig"
)

// blockHeader precedes every block's payload. prev/next thread this
// region's address-ordered block list; region is a plain (non-owning)
// back-reference used only to reach the containing region when freeing,
// since regions are variably sized and the region can't be recovered by
// masking the block's address the way a fixed-size-page allocator would
// (see DESIGN.md); size is the payload's byte length, not counting this
// header; free marks whether the payload is available.
type blockHeader struct {
	prev, next *blockHeader
	region     *regionHeader
	size       int
	free       bool
}

var blockHeaderSize = int(unsafe.Sizeof(blockHeader{}))

// align rounds n up to the next multiple of mmconfig.Alignment().
// Callers must have already checked n > 0; align(0) returns the alignment
// itself rather than 0 (Go's integer division truncates (0-1)/a to 0),
// which is why Allocate special-cases size == 0 itself.
func align(n int) int {
	a := mmconfig.Alignment()
	return ((n-1)/a)*a + a
}

// payload returns the byte slice view over b's payload, with len set to
// logicalLen (the size the caller originally asked for or has since
// reslice-shrunk to) and cap set to b.size (the block's full aligned
// capacity), so a caller can recover the usable size via cap().
func (b *blockHeader) payload(logicalLen int) []byte {
	base := (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(b)) + uintptr(blockHeaderSize)))
	return unsafe.Slice(base, b.size)[:logicalLen]
}

// blockFromPayload recovers the block header immediately preceding a
// payload slice's first byte.
func blockFromPayload(p []byte) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(uintptr(unsafe.Pointer(&p[0])) - uintptr(blockHeaderSize)))
}

// addr is b's own address as a uintptr, used for pointer-arithmetic
// neighbour computations (split, in-place grow).
func (b *blockHeader) addr() uintptr { return uintptr(unsafe.Pointer(b)) }

// split partitions a free block so that it serves exactly want bytes of
// payload, leaving a new free sibling block with the remainder, when
// there is room for one: b.size >= want + alignment + sizeof(blockHeader).
// split is a no-op (besides the size check) when there isn't room; the
// caller then hands out the whole block, possibly oversized.
func (b *blockHeader) split(want int) {
	a := mmconfig.Alignment()
	if b.size < want+a+blockHeaderSize {
		return
	}

	sibling := (*blockHeader)(unsafe.Pointer(b.addr() + uintptr(blockHeaderSize) + uintptr(want)))
	sibling.size = b.size - blockHeaderSize - want
	sibling.free = true
	sibling.region = b.region
	sibling.prev = b
	sibling.next = b.next
	if sibling.next != nil {
		sibling.next.prev = sibling
	}
	b.next = sibling
	b.size = want
}

// coalesceWithNext absorbs b.next into b: b grows by its neighbour's
// header and payload, and b.next's successor (if any) is relinked to
// point back at b. Used both by deallocate-time coalescing and by
// in-place grow when the following free block can't supply delta bytes
// without disappearing entirely.
func (b *blockHeader) coalesceWithNext() {
	n := b.next
	b.size += blockHeaderSize + n.size
	b.next = n.next
	if n.next != nil {
		n.next.prev = b
	}
}

// coalesceWithPrev absorbs b into b.prev and returns the surviving block,
// so callers that were tracking b can switch to tracking the result.
func (b *blockHeader) coalesceWithPrev() *blockHeader {
	p := b.prev
	p.coalesceWithNext()
	return p
}

// shrinkFront moves the first delta bytes of b's storage to its
// predecessor by relocating b's header forward by delta bytes and
// reducing its size accordingly; used by in-place reallocation to take
// bytes from a following free block, seen from the donor's side. The
// caller is responsible for growing the recipient by the same delta. The
// old header is copied out first, since the old and new headers overlap
// whenever delta is smaller than a header.
func (b *blockHeader) shrinkFront(delta int) *blockHeader {
	old := *b
	moved := (*blockHeader)(unsafe.Pointer(b.addr() + uintptr(delta)))
	moved.size = old.size - delta
	moved.free = old.free
	moved.region = old.region
	moved.prev = old.prev
	moved.next = old.next
	if moved.prev != nil {
		moved.prev.next = moved
	}
	if moved.next != nil {
		moved.next.prev = moved
	}
	return moved
}
