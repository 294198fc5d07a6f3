// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package allocator defines the polymorphic allocator trait consumed by
// every upper layer in this module (lifetime, refcounted, unique); they
// program against Allocator and never against mmpool.Pool directly.
package allocator

// Allocator is the capability set every allocator in this module
// implements: allocate, deallocate, reallocate, reallocate-in-place, and
// alignment. Implementations in this module: mmpool.Pool (the default)
// and Heap (a trivial wrapper around the Go runtime's own heap).
type Allocator interface {
	// Allocate requests a fresh, uninitialized block of size bytes,
	// aligned to at least Alignment(). Returns an empty, non-nil slice
	// when size == 0. Returns a nil slice and a non-nil error on OOM or
	// invalid input.
	Allocate(size int) ([]byte, error)

	// Deallocate returns b's storage to the allocator. It reports
	// whether b was recognized and freed; deallocating an empty or nil
	// slice is a successful no-op.
	Deallocate(b []byte) bool

	// Reallocate grows or shrinks b to newSize bytes, possibly moving
	// it, and returns the new view. A newSize of zero is equivalent to
	// Deallocate. On failure the original allocation and its contents
	// are preserved and ok is false.
	Reallocate(b []byte, newSize int) (out []byte, ok bool)

	// ReallocateInPlace attempts to resize b to newSize without moving
	// it. It returns the resliced view and whether it succeeded; a nil
	// b or newSize of zero always fails. Never used to allocate or
	// free.
	ReallocateInPlace(b []byte, newSize int) (out []byte, ok bool)

	// Alignment reports the minimum alignment, in bytes, guaranteed for
	// every payload this allocator returns.
	Alignment() int
}
