// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmconfig exposes this module's three recognized configuration
// options: alignment, region size, and the default allocator. Callers
// read Alignment/RegionSize/DefaultAllocator; the default allocator is
// the only one settable at runtime, and only once per process, a setting
// that mmpool's package init uses to install its pool.
package mmconfig

import (
	"sync"

	"github.com/belka-ew/mmpool/allocator"
	"github.com/belka-ew/mmpool/ospages"
)

// alignment is fixed at 8 bytes. Implementations may raise but never
// lower it; this module does not.
const alignment = 8

// regionSize is the pool's minimum/quantum per-region OS mapping. It
// starts at a 65536-byte baseline and is rounded up, once at package
// init, to a multiple of the true OS page size reported by
// ospages.PageSize, so a region mapping is always a whole number of OS
// pages even on hosts whose page size exceeds 65536.
var regionSize = func() int {
	const base = 65536
	p := ospages.PageSize()
	if p <= base {
		return base
	}
	return ((base + p - 1) / p) * p
}()

// Alignment reports the minimum alignment, in bytes, every allocator in
// this module guarantees.
func Alignment() int { return alignment }

// RegionSize reports the minimum and quantum, in bytes, of a single
// MmapPool region's OS mapping.
func RegionSize() int { return regionSize }

var (
	mu                  sync.Mutex
	defaultAllocator    allocator.Allocator
	defaultAllocatorSet bool
)

// SetDefaultAllocator installs a as the process-wide default allocator.
// It panics if called more than once, since the default allocator is
// settable only once per process.
func SetDefaultAllocator(a allocator.Allocator) {
	mu.Lock()
	defer mu.Unlock()
	if defaultAllocatorSet {
		panic("mmconfig: default allocator already set")
	}
	defaultAllocator = a
	defaultAllocatorSet = true
}

// DefaultAllocator returns the process-wide default allocator, the one
// installed through SetDefaultAllocator. mmpool registers an mmpool.New()
// instance that way from its own package init(), so this package never
// imports mmpool directly (mmpool imports mmconfig for
// Alignment/RegionSize, not the other way around). Because that init
// uses the single allowed SetDefaultAllocator call, a program that
// imports mmpool cannot install a different default: a later call
// panics, and an earlier one makes mmpool's init panic. Panics if no
// default has been registered.
func DefaultAllocator() allocator.Allocator {
	mu.Lock()
	defer mu.Unlock()
	if !defaultAllocatorSet {
		panic("mmconfig: no default allocator registered; import github.com/belka-ew/mmpool/mmpool for its side-effecting init")
	}
	return defaultAllocator
}
