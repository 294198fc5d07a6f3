// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lifetime implements the primitives that turn raw allocator
// bytes into live values and back: emplacement, move and
// move-emplacement, swap, bulk destruction, disposal, and the
// allocate-and-construct helpers used by refcounted and unique.
//
// Ordinary Go generics stand in for manual per-type construction code:
// callers build the value to emplace themselves, since there is no
// separate constructor-call phase in Go and assignment already is
// construction, and a value's destructor, if it has one, is modeled by
// the optional Destroyer interface rather than a language-level dtor.
package lifetime

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/belka-ew/mmpool/allocator"
	"github.com/belka-ew/mmpool/mmerr"
)

// Destroyer is implemented by values that own resources needing explicit
// release before their storage is reclaimed. Types without state to
// release simply don't implement it; DestroyAll, Move, and Dispose all
// treat a non-implementing T as a no-op.
type Destroyer interface {
	Destroy()
}

func destroy[T any](v *T) {
	if d, ok := any(v).(Destroyer); ok {
		d.Destroy()
	}
}

// DestroyOne invokes v's Destroyer if it implements one; a no-op
// otherwise. Exported for refcounted and unique, which need the same
// "destroy if destroyable" check lifetime applies internally in Move,
// DestroyAll, and Dispose.
func DestroyOne[T any](v *T) { destroy(v) }

// Emplace writes value into raw, which must be at least sizeof(T) bytes
// and suitably aligned (callers get this for free from allocator.Allocate,
// whose minimum alignment of 8 covers every T this module constructs).
// It returns a pointer aliasing raw's storage. Panics if raw is too small.
func Emplace[T any](raw []byte, value T) *T {
	size := int(unsafe.Sizeof(value))
	if len(raw) < size {
		panic(errors.Wrapf(mmerr.ErrInvalidArgument, "lifetime: storage of %d bytes too small for %d-byte value", len(raw), size))
	}

	ptr := (*T)(unsafe.Pointer(unsafe.SliceData(raw)))
	*ptr = value
	return ptr
}

// MoveEmplace copies src's bit pattern into dst, treated as uninitialized
// storage, and resets src to T's zero value. Neither value's Destroyer is
// invoked; this is a raw bitwise relocation. src and dst must not be the
// same address.
func MoveEmplace[T any](src, dst *T) {
	if src == dst {
		panic(errors.Wrap(mmerr.ErrInvalidArgument, "lifetime: moveEmplace src and dst must differ"))
	}

	*dst = *src
	var zero T
	*src = zero
}

// Move is MoveEmplace, except dst is destroyed first when it has a
// Destroyer: dst's existing resource is released before src's bits are
// copied in. A no-op when src and dst are the same address.
func Move[T any](src, dst *T) {
	if src == dst {
		return
	}

	destroy(dst)
	*dst = *src
	var zero T
	*src = zero
}

// MoveOut returns src's value and resets src to its zero value.
func MoveOut[T any](src *T) T {
	v := *src
	var zero T
	*src = zero
	return v
}

// Swap exchanges a and b's values via a scratch value and three
// MoveEmplace calls. A no-op when a and b are the same address.
func Swap[T any](a, b *T) {
	if a == b {
		return
	}

	var scratch T
	MoveEmplace(a, &scratch)
	MoveEmplace(b, a)
	MoveEmplace(&scratch, b)
}

// DestroyAll invokes each element's Destroyer, in order.
func DestroyAll[T any](items []T) {
	for i := range items {
		destroy(&items[i])
	}
}

// Dispose destroys ptr's value, then returns its storage to a, the same
// allocator that produced it. A nil ptr is a no-op. Panics with
// mmerr.ErrInvariantViolated if a does not recognize the storage (foreign
// bytes passed to Dispose is a programming error, not a recoverable
// condition).
func Dispose[T any](a allocator.Allocator, ptr *T) {
	if ptr == nil {
		return
	}

	destroy(ptr)

	size := int(unsafe.Sizeof(*ptr))
	b := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size)
	if !a.Deallocate(b) {
		panic(errors.Wrap(mmerr.ErrInvariantViolated, "lifetime: dispose: allocator did not recognize storage"))
	}
}

// Make allocates sized storage from a, emplaces value into it, and
// returns a pointer to the live value. Panics with mmerr.ErrOutOfMemory
// if a cannot satisfy the allocation; there is no recursive-allocation
// hazard to guard against in a GC'd runtime, so the panic value itself
// doesn't need to be pre-allocated.
func Make[T any](a allocator.Allocator, value T) *T {
	size := int(unsafe.Sizeof(value))
	b, err := a.Allocate(size)
	if err != nil {
		panic(errors.Wrap(mmerr.ErrOutOfMemory, err.Error()))
	}
	return Emplace(b, value)
}

// MakeSlice allocates storage for n default-initialized T's from a.
// Memory handed back by an allocator that recycles freed blocks
// (mmpool.Pool) is not guaranteed zeroed, so each element is explicitly
// set to T's zero value rather than relying on the backing bytes.
func MakeSlice[T any](a allocator.Allocator, n int) ([]T, error) {
	if n < 0 {
		panic(errors.Wrap(mmerr.ErrInvalidArgument, "lifetime: negative count"))
	}
	if n == 0 {
		return nil, nil
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	b, err := a.Allocate(elemSize * n)
	if err != nil {
		return nil, err
	}

	out := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
	for i := range out {
		out[i] = zero
	}
	return out, nil
}
