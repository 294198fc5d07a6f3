// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unique

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/belka-ew/mmpool/allocator"
	"github.com/belka-ew/mmpool/lifetime"
)

type resource struct {
	val      int
	released *int
}

func (r *resource) Destroy() { *r.released++ }

func TestNewAndGet(t *testing.T) {
	h := allocator.Heap{}
	u := New(h, resource{val: 7, released: new(int)})
	require.True(t, u.Valid())
	require.Equal(t, 7, u.Get().val)
}

func TestDestroyDisposesOwnedValue(t *testing.T) {
	h := allocator.Heap{}
	var released int
	u := New(h, resource{val: 1, released: &released})

	u.Destroy()
	require.Equal(t, 1, released)
	require.False(t, u.Valid())
}

func TestDestroyOnEmptyIsNoop(t *testing.T) {
	var u Unique[resource]
	require.NotPanics(t, func() { u.Destroy() })
}

func TestReleaseTransfersOwnershipWithoutDisposing(t *testing.T) {
	h := allocator.Heap{}
	var released int
	u := New(h, resource{val: 3, released: &released})

	a := u.Allocator()
	p := u.Release()
	require.False(t, u.Valid())
	require.Zero(t, released, "release must not destroy or deallocate")

	lifetime.Dispose(a, p)
	require.Equal(t, 1, released)
}

func TestMoveToTransfersAndEmptiesSource(t *testing.T) {
	h := allocator.Heap{}
	var released int
	src := New(h, resource{val: 4, released: &released})
	var dst Unique[resource]

	src.MoveTo(&dst)
	require.False(t, src.Valid())
	require.True(t, dst.Valid())
	require.Equal(t, 4, dst.Get().val)

	dst.Destroy()
	require.Equal(t, 1, released)
}

func TestMoveToDisposesDestinationsPriorValue(t *testing.T) {
	h := allocator.Heap{}
	var releasedOld, releasedNew int
	dst := New(h, resource{val: 1, released: &releasedOld})
	src := New(h, resource{val: 2, released: &releasedNew})

	src.MoveTo(&dst)
	require.Equal(t, 1, releasedOld, "dst's prior value must be destroyed before the move")
	require.Equal(t, 2, dst.Get().val)

	dst.Destroy()
	require.Equal(t, 1, releasedNew)
}

func TestMoveToSameHandleNoop(t *testing.T) {
	h := allocator.Heap{}
	var released int
	u := New(h, resource{val: 5, released: &released})

	u.MoveTo(&u)
	require.True(t, u.Valid())
	require.Equal(t, 5, u.Get().val)
	require.Zero(t, released)
}

func TestResetReplacesOwnedValue(t *testing.T) {
	h := allocator.Heap{}
	var releasedOld, releasedNew int
	u := New(h, resource{val: 1, released: &releasedOld})

	u.Reset(h, resource{val: 2, released: &releasedNew})
	require.Equal(t, 1, releasedOld)
	require.Equal(t, 2, u.Get().val)

	u.Destroy()
	require.Equal(t, 1, releasedNew)
}

func TestFromPointerTakesOwnership(t *testing.T) {
	h := allocator.Heap{}
	var released int
	ptr := lifetime.Make(h, resource{val: 6, released: &released})

	u := FromPointer(h, ptr)
	require.Equal(t, 6, u.Get().val)

	u.Destroy()
	require.Equal(t, 1, released)
}
