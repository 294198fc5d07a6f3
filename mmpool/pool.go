// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmpool implements MmapPool, the region-and-block memory
// allocator at the core of this module. User allocations are served out
// of large OS-mapped regions, subdivided into address-ordered,
// split-and-coalesced blocks; a region is returned to the OS the instant
// its last live block is freed.
//
// Pool's zero value is ready to use, but New() (and the process-wide
// default installed by this package's init) is the normal entry point.
package mmpool

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/belka-ew/mmpool/allocator"
	"github.com/belka-ew/mmpool/mmconfig"
	"github.com/belka-ew/mmpool/mmerr"
	"github.com/belka-ew/mmpool/ospages"
)

var _ allocator.Allocator = (*Pool)(nil)

// Trace gates per-call debug tracing: off by default, flipped on by
// tests or callers that want to watch allocate/deallocate/reallocate
// traffic on stderr.
var Trace = false

// Debug gates the invariant-consistency walk in invariants.go. Off by
// default, since the pool's fast path must perform no list-walk other
// than the allocation search itself.
var Debug = false

// Pool is the process-wide allocator state: the head of the region list
// plus running totals used for Stats.
type Pool struct {
	head *regionHeader

	allocs  int
	mmaps   int
	bytes   int
	regions int
}

// New returns a ready-to-use Pool. Equivalent to new(Pool) or var p Pool;
// provided because most callers want a *Pool to satisfy allocator.Allocator.
func New() *Pool { return &Pool{} }

func init() {
	mmconfig.SetDefaultAllocator(New())
}

// Stats reports the pool's running totals: the number of in-flight
// allocations, live regions, active OS mappings, and bytes currently
// mapped from the OS.
type Stats struct {
	Allocs  int
	Regions int
	Mmaps   int
	Bytes   int
}

// Stats returns a snapshot of p's counters.
func (p *Pool) Stats() Stats {
	return Stats{Allocs: p.allocs, Regions: p.regions, Mmaps: p.mmaps, Bytes: p.bytes}
}

// Alignment reports the pool's guaranteed minimum payload alignment.
func (p *Pool) Alignment() int { return mmconfig.Alignment() }

// sizeFor computes the aligned payload size for a request of n bytes,
// reporting mmerr.ErrOverflow if the alignment arithmetic would overflow.
func sizeFor(n int) (int, error) {
	a := mmconfig.Alignment()
	const maxInt = int(^uint(0) >> 1)
	if n > maxInt-a {
		return 0, errors.Wrap(mmerr.ErrOverflow, "mmpool: size computation overflow")
	}
	return align(n), nil
}

// findFree performs a first-fit search: walk the region list head to
// tail, and within each region walk the address-ordered block list head
// to tail, stopping at the first free block big enough to serve s bytes.
func (p *Pool) findFree(s int) *blockHeader {
	for r := p.head; r != nil; r = r.next {
		for b := r.firstBlock(); b != nil; b = b.next {
			if b.free && b.size >= s {
				return b
			}
		}
	}
	return nil
}

// newRegion maps a fresh region sized to hold one allocated block of s
// payload bytes plus a trailing free block, rounded up to a whole number
// of region-size quanta, and lays out both blocks.
func (p *Pool) newRegion(s int) (*regionHeader, error) {
	page := mmconfig.RegionSize()
	const maxInt = int(^uint(0) >> 1)
	if s > maxInt-regionHeaderSize-2*blockHeaderSize-page {
		return nil, errors.Wrap(mmerr.ErrOverflow, "mmpool: region size computation overflow")
	}
	want := s + regionHeaderSize + 2*blockHeaderSize
	total := (want/page)*page + page

	buf, err := ospages.Map(total)
	if err != nil {
		return nil, errors.Wrap(mmerr.ErrOutOfMemory, err.Error())
	}

	region := (*regionHeader)(unsafe.Pointer(&buf[0]))
	region.size = total
	region.blocks = 0
	region.prev, region.next = nil, nil

	first := region.firstBlock()
	first.region = region
	first.size = s
	first.free = false
	first.prev = nil

	tailSize := total - regionHeaderSize - 2*blockHeaderSize - s
	tail := (*blockHeader)(unsafe.Pointer(first.addr() + uintptr(blockHeaderSize) + uintptr(s)))
	tail.region = region
	tail.size = tailSize
	tail.free = true
	tail.prev = first
	tail.next = nil
	first.next = tail

	return region, nil
}

// Allocate computes the aligned size, searches for a fitting free block
// (splitting it if there's room to spare), and falls back to mapping a
// fresh region when no free block fits.
func (p *Pool) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Wrap(mmerr.ErrInvalidArgument, "mmpool: negative size")
	}
	if size == 0 {
		return []byte{}, nil
	}

	s, err := sizeFor(size)
	if err != nil {
		return nil, err
	}

	p.allocs++

	if b := p.findFree(s); b != nil {
		b.split(s)
		b.free = false
		b.region.blocks++
		if Trace {
			trace("Allocate(%#x) reuse %p", size, unsafe.Pointer(b))
		}
		p.checkInvariants()
		return b.payload(size), nil
	}

	region, err := p.newRegion(s)
	if err != nil {
		p.allocs--
		return nil, err
	}
	region.blocks = 1
	region.prepend(p)
	p.regions++
	p.mmaps++
	p.bytes += region.size

	if Trace {
		trace("Allocate(%#x) new region, total=%#x", size, region.size)
	}
	p.checkInvariants()
	return region.firstBlock().payload(size), nil
}

// AllocateZeroed is Calloc: Allocate followed by zeroing.
func (p *Pool) AllocateZeroed(size int) ([]byte, error) {
	b, err := p.Allocate(size)
	if err != nil {
		return nil, err
	}
	for i := range b {
		b[i] = 0
	}
	return b, nil
}

// deallocateBlock is the shared tail of Deallocate and DeallocateRaw: it
// unmaps the whole region when b is its last live block, otherwise marks
// b free and coalesces it with a free neighbour on either side.
func (p *Pool) deallocateBlock(b *blockHeader) bool {
	p.allocs--
	region := b.region

	if region.blocks <= 1 {
		region.unlink(p)
		p.regions--
		p.mmaps--
		p.bytes -= region.size
		bytes := region.bytes()
		if err := ospages.Unmap(bytes); err != nil {
			return false
		}
		p.checkInvariants()
		return true
	}

	b.free = true
	if b.next != nil && b.next.free {
		b.coalesceWithNext()
	}
	if b.prev != nil && b.prev.free {
		b = b.coalesceWithPrev()
	}
	region.blocks--

	p.checkInvariants()
	return true
}

// Deallocate frees b. b[:0] of a real allocation is still freed (the
// payload is recovered via cap, not len); a genuinely empty/nil slice is
// a successful no-op.
func (p *Pool) Deallocate(b []byte) bool {
	b = b[:cap(b)]
	if len(b) == 0 {
		return true
	}

	if Trace {
		trace("Deallocate(%p)", unsafe.Pointer(&b[0]))
	}
	return p.deallocateBlock(blockFromPayload(b))
}

// ReallocateInPlace attempts to resize b to n bytes without moving it,
// taking bytes from a following free block when b itself has no room.
func (p *Pool) ReallocateInPlace(b []byte, n int) ([]byte, bool) {
	if len(b) == 0 || n == 0 {
		return b, false
	}

	blk := blockFromPayload(b)

	if n <= len(b) {
		return blk.payload(n), true
	}
	if blk.size >= n {
		return blk.payload(n), true
	}

	sNew, err := sizeFor(n)
	if err != nil {
		return b, false
	}

	delta := sNew - blk.size
	next := blk.next
	if next == nil || !next.free || next.size+blockHeaderSize < delta {
		return b, false
	}

	a := mmconfig.Alignment()
	if next.size >= delta+a {
		blk.next = next.shrinkFront(delta)
		blk.size += delta
	} else {
		blk.coalesceWithNext()
	}

	if Trace {
		trace("ReallocateInPlace -> %#x", blk.size)
	}
	p.checkInvariants()
	return blk.payload(n), true
}

// Reallocate tries an in-place resize first, then falls back to
// allocate+copy+free, preserving the original allocation on failure.
func (p *Pool) Reallocate(b []byte, n int) ([]byte, bool) {
	if n == 0 {
		ok := p.Deallocate(b)
		return nil, ok
	}

	if out, ok := p.ReallocateInPlace(b, n); ok {
		return out, true
	}

	out, err := p.Allocate(n)
	if err != nil {
		return b, false
	}

	copy(out, b[:min(len(b), n)])
	p.Deallocate(b)
	return out, true
}

// UsableSize reports the full payload capacity backing b's block, which
// may exceed the size originally requested.
func (p *Pool) UsableSize(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return blockFromPayload(b[:cap(b)]).size
}

// AllocateRaw is Allocate's unsafe.Pointer-shaped twin, used by callers
// that need a typed pointer rather than a slice header.
func (p *Pool) AllocateRaw(size int) (unsafe.Pointer, error) {
	b, err := p.Allocate(size)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return unsafe.Pointer(&b[0]), nil
}

// DeallocateRaw is Deallocate's unsafe.Pointer-shaped twin. size must be
// the size most recently allocated, reallocated, or in-place-resized for
// ptr, since a raw pointer carries no cap of its own.
func (p *Pool) DeallocateRaw(ptr unsafe.Pointer, size int) bool {
	if ptr == nil {
		return true
	}
	b := unsafe.Slice((*byte)(ptr), size)
	return p.deallocateBlock(blockFromPayload(b))
}

// ReallocateRaw is Reallocate's unsafe.Pointer-shaped twin.
func (p *Pool) ReallocateRaw(ptr unsafe.Pointer, oldSize, newSize int) (unsafe.Pointer, bool) {
	var b []byte
	if ptr != nil {
		b = unsafe.Slice((*byte)(ptr), oldSize)
	}
	out, ok := p.Reallocate(b, newSize)
	if !ok {
		return ptr, false
	}
	if len(out) == 0 {
		return nil, true
	}
	return unsafe.Pointer(&out[0]), true
}
