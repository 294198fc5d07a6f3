// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmerr collects the sentinel errors shared across the allocator
// core.
package mmerr

import "errors"

// OOM is the error kind returned when the OS refuses a mapping or no
// allocator in the chain can satisfy a request. allocate-family operations
// surface it as a nil/empty result; the escalating helpers in lifetime,
// refcounted and unique wrap it and panic with it instead.
var ErrOutOfMemory = errors.New("mmpool: out of memory")

// InvalidArgument covers inputs an operation doesn't accept, such as a
// negative size, storage too small for the value emplaced into it, or use
// of an empty handle. ReallocateInPlace reports its own invalid inputs
// (nil slice, zero size) by returning false rather than this error.
var ErrInvalidArgument = errors.New("mmpool: invalid argument")

// Overflow is returned when a size computation (alignment rounding, region
// sizing) would overflow the platform's int range.
var ErrOverflow = errors.New("mmpool: size overflow")

// InvariantViolated marks a programming error such as passing bytes to
// Deallocate that were never returned by this allocator. It is raised by
// mmpool's Debug-gated consistency walk (Pool.checkInvariants) and by
// lifetime.Dispose when the allocator does not recognize the storage.
var ErrInvariantViolated = errors.New("mmpool: invariant violated")
