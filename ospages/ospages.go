// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ospages is a thin wrapper around the OS page map/unmap
// primitives consumed by mmpool.Pool. It hides the platform-specific
// mmap/CreateFileMapping plumbing behind two calls, Map and Unmap, and a
// PageSize query used to keep the pool's region quantum a multiple of
// the true OS page size.
package ospages

// Trace gates the per-call debug tracing this package emits. Off by
// default; callers can flip it on to watch map/unmap traffic.
var Trace = false

// Map requests size bytes of fresh, anonymous, read+write, private memory
// from the OS. The returned slice's address is aligned to at least the
// platform's page boundary. An error is returned if the OS refuses the
// mapping.
func Map(size int) ([]byte, error) {
	b, err := mmap(size)
	if Trace {
		trace("Map(%#x) -> len=%d err=%v", size, len(b), err)
	}
	return b, err
}

// Unmap releases a byte range previously obtained from Map. b must be the
// exact slice (same address and length) returned by Map; sub-slices are
// not accepted.
func Unmap(b []byte) error {
	err := unmap(b)
	if Trace {
		trace("Unmap(len=%d) err=%v", len(b), err)
	}
	return err
}
