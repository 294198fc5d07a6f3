// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refcounted implements RefCounted[T], a shared-ownership
// handle: a reference count living alongside (or pointing at) a
// payload, released through a deleter the instant the count reaches
// zero.
package refcounted

import (
	"github.com/pkg/errors"

	"github.com/belka-ew/mmpool/allocator"
	"github.com/belka-ew/mmpool/lifetime"
	"github.com/belka-ew/mmpool/mmerr"
)

// combinedStore is the preferred layout: counter and payload allocated
// as one contiguous chunk, so a single Dispose call reclaims both (a
// unified deleter). Its Destroy forwards to value's, if value implements
// lifetime.Destroyer; combinedStore itself always satisfies
// lifetime.Destroyer so lifetime.Dispose always runs this forwarding
// step, regardless of T.
type combinedStore[T any] struct {
	count int
	value T
}

func (c *combinedStore[T]) Destroy() { lifetime.DestroyOne(&c.value) }

// counterOnly is the separate-store layout: just a counter, used when
// RefCounted wraps a payload that was allocated (and will be disposed)
// independently of the counter itself.
type counterOnly struct {
	count int
}

// RefCounted is a shared-ownership handle over a T living in allocator
// storage. Its zero value is not usable; construct one with New or
// FromPointer. Copying a *RefCounted (taking a Go pointer to it) does not
// share ownership; call Clone to get a second handle that does.
type RefCounted[T any] struct {
	value   *T
	count   *int
	a       allocator.Allocator
	release func()
}

// New is the preferred factory: it allocates the combined store+payload
// chunk, emplaces value, and sets the counter to 1.
func New[T any](a allocator.Allocator, value T) *RefCounted[T] {
	cb := lifetime.Make(a, combinedStore[T]{count: 1, value: value})
	rc := &RefCounted[T]{value: &cb.value, count: &cb.count, a: a}
	rc.release = func() { lifetime.Dispose(a, cb) }
	return rc
}

// FromPointer wraps an already-allocated payload (ptr must have come from
// an allocation against a, e.g. via lifetime.Make) with a separately
// allocated counter. Releasing the last handle disposes ptr and then the
// counter block, two deallocations instead of combinedStore's one.
func FromPointer[T any](a allocator.Allocator, ptr *T) *RefCounted[T] {
	cb := lifetime.Make(a, counterOnly{count: 1})
	rc := &RefCounted[T]{value: ptr, count: &cb.count, a: a}
	rc.release = func() {
		lifetime.Dispose(a, ptr)
		lifetime.Dispose(a, cb)
	}
	return rc
}

// Clone increments the reference count and returns a second handle
// sharing the same store.
func (r *RefCounted[T]) Clone() *RefCounted[T] {
	if r.count == nil {
		panic(errors.Wrap(mmerr.ErrInvalidArgument, "refcounted: Clone of an empty handle"))
	}
	*r.count++
	return &RefCounted[T]{value: r.value, count: r.count, a: r.a, release: r.release}
}

// Release decrements the reference count and, if it reaches zero,
// invokes the store's deleter. Calling Release more than once on the
// same handle is a programming error (the handle is left empty after the
// first call, so a second Release is a no-op rather than a double free).
func (r *RefCounted[T]) Release() {
	if r.count == nil {
		return
	}

	*r.count--
	if *r.count == 0 {
		r.release()
	}
	r.value, r.count, r.release = nil, nil, nil
}

// Get returns the payload. Precondition: Count() > 0.
func (r *RefCounted[T]) Get() *T {
	if r.count == nil || *r.count <= 0 {
		panic(errors.Wrap(mmerr.ErrInvalidArgument, "refcounted: Get on an empty handle"))
	}
	return r.value
}

// Count returns the current reference count, or 0 for an empty handle.
func (r *RefCounted[T]) Count() int {
	if r.count == nil {
		return 0
	}
	return *r.count
}

// Reset replaces r's payload with value: if r is not the sole owner, it
// detaches from the shared store (decrementing, freeing if that was the
// last reference) and allocates a fresh combined store; if r is the sole
// owner, the existing payload is destroyed and replaced in place without
// reallocating the store.
func (r *RefCounted[T]) Reset(a allocator.Allocator, value T) {
	if r.count == nil {
		*r = *New(a, value)
		return
	}

	if *r.count > 1 {
		*r.count--
		*r = *New(a, value)
		return
	}

	lifetime.DestroyOne(r.value)
	*r.value = value
}

// Clear detaches r from its store: decrements the count, freeing it if r
// was the last owner.
func (r *RefCounted[T]) Clear() { r.Release() }
