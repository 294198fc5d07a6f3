// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import "github.com/belka-ew/mmpool/mmerr"

// Heap is a trivial allocator: a thin pass-through over the Go runtime's
// own GC heap, with none of MmapPool's region/block bookkeeping. It
// exists so callers that don't want mmap'd memory (e.g. very small,
// short-lived allocations, or tests that want GC-backed storage) can
// still program against the Allocator trait.
//
// Heap's zero value is ready to use.
type Heap struct{}

const heapAlignment = 8

// Allocate returns a freshly made, GC-owned byte slice. A negative size
// yields a nil slice and mmerr.ErrInvalidArgument.
func (Heap) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, mmerr.ErrInvalidArgument
	}
	if size == 0 {
		return []byte{}, nil
	}
	return make([]byte, size), nil
}

// Deallocate is a no-op: the Go garbage collector reclaims b once it is
// unreferenced. It always reports success, matching the contract that
// freeing an empty/nil slice is a successful no-op.
func (Heap) Deallocate(b []byte) bool { return true }

// Reallocate grows or shrinks b, copying into a freshly made slice when
// growing beyond cap(b).
func (h Heap) Reallocate(b []byte, newSize int) ([]byte, bool) {
	if newSize == 0 {
		h.Deallocate(b)
		return nil, true
	}
	if out, ok := h.ReallocateInPlace(b, newSize); ok {
		return out, true
	}

	out := make([]byte, newSize)
	copy(out, b)
	return out, true
}

// ReallocateInPlace resizes b without reallocating when newSize fits
// within cap(b); otherwise it reports failure so the caller falls back to
// Reallocate.
func (Heap) ReallocateInPlace(b []byte, newSize int) ([]byte, bool) {
	if len(b) == 0 || newSize == 0 {
		return b, false
	}
	if newSize <= cap(b) {
		return b[:newSize], true
	}
	return b, false
}

// Alignment reports the minimum alignment Go's allocator guarantees for
// general-purpose allocations.
func (Heap) Alignment() int { return heapAlignment }
