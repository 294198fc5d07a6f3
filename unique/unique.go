// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package unique implements Unique[T], a move-only owning handle: sole
// ownership of a value plus the allocator that must reclaim it, disposed
// when Destroy runs (or when Reset or a MoveTo into the handle replaces
// it) unless released first; nothing disposes it implicitly.
package unique

import (
	"github.com/belka-ew/mmpool/allocator"
	"github.com/belka-ew/mmpool/lifetime"
)

// Unique owns a *T allocated against a, disposing both when Destroy runs.
// There is no copy constructor; duplicating a Unique by value would
// produce two owners of the same storage, so Unique offers no Clone and
// no exported fields. Go does not forbid a plain struct copy, though
// (New returns a Unique by value), and such a copy shares the same
// storage. The operations that relinquish ownership are Release and
// MoveTo, both of which leave the source empty.
//
// The zero value is empty and owns nothing; Destroy on a zero Unique is
// a no-op, and Reset on one simply takes ownership of the new value.
type Unique[T any] struct {
	ptr *T
	a   allocator.Allocator
}

// New takes ownership of value: it allocates storage from a, emplaces
// value into it, and returns a Unique bound to that storage.
func New[T any](a allocator.Allocator, value T) Unique[T] {
	return Unique[T]{ptr: lifetime.Make(a, value), a: a}
}

// FromPointer wraps a pointer already allocated against a (e.g. by
// lifetime.Make or mmpool.Pool.AllocateRaw plus Emplace), taking over
// responsibility for disposing it.
func FromPointer[T any](a allocator.Allocator, ptr *T) Unique[T] {
	return Unique[T]{ptr: ptr, a: a}
}

// Get returns the owned value, or nil if u is empty.
func (u *Unique[T]) Get() *T { return u.ptr }

// Valid reports whether u currently owns a value.
func (u *Unique[T]) Valid() bool { return u.ptr != nil }

// Release yields the raw owned pointer and resets u to empty without
// destroying or deallocating anything. The caller becomes responsible
// for eventually disposing the returned pointer against the same
// allocator (available via the companion Allocator method before
// calling Release, if needed).
func (u *Unique[T]) Release() *T {
	p := u.ptr
	u.ptr, u.a = nil, nil
	return p
}

// Allocator returns the allocator u's storage was taken from, or nil for
// an empty handle.
func (u *Unique[T]) Allocator() allocator.Allocator { return u.a }

// Reset disposes u's current value, if any, and rebinds u to own a fresh
// value allocated from a.
func (u *Unique[T]) Reset(a allocator.Allocator, value T) {
	u.Destroy()
	u.ptr, u.a = lifetime.Make(a, value), a
}

// MoveTo transfers ownership from u to dst, disposing dst's current
// value first. u is left empty. A no-op when u and dst are the same
// handle.
func (u *Unique[T]) MoveTo(dst *Unique[T]) {
	if u == dst {
		return
	}
	dst.Destroy()
	dst.ptr, dst.a = u.ptr, u.a
	u.ptr, u.a = nil, nil
}

// Destroy disposes u's owned value, if any, returning its storage to the
// allocator it came from and leaving u empty. Safe to call on an
// already-empty handle.
func (u *Unique[T]) Destroy() {
	if u.ptr == nil {
		return
	}
	lifetime.Dispose(u.a, u.ptr)
	u.ptr, u.a = nil, nil
}
