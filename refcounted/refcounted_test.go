// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refcounted

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

// TestNewSingleOwnerReleaseInvokesDeleterOnce builds a RefCounted value
// at count 1; dropping its last handle must run the unified deleter
// exactly once, reclaiming store and payload together.
func TestNewSingleOwnerReleaseInvokesDeleterOnce(t *testing.T) {
	h := allocator.Heap{}
	var released int
	rc := New(h, resource{val: 9, released: &released})

	require.Equal(t, 1, rc.Count())
	require.Equal(t, 9, rc.Get().val)

	rc.Release()
	require.Equal(t, 1, released)
	require.Equal(t, 0, rc.Count())
}

func TestCloneSharesStoreAndIncrementsCount(t *testing.T) {
	h := allocator.Heap{}
	var released int
	rc := New(h, resource{val: 1, released: &released})
	clone := rc.Clone()

	require.Equal(t, 2, rc.Count())
	require.Equal(t, 2, clone.Count())
	require.Same(t, rc.Get(), clone.Get())

	rc.Release()
	require.Zero(t, released, "deleter must not run while a clone is still live")
	require.Equal(t, 1, clone.Count())

	clone.Release()
	require.Equal(t, 1, released)
}

func TestFromPointerSeparateStore(t *testing.T) {
	h := allocator.Heap{}
	var released int
	payload := lifetime.Make[resource](h, resource{val: 5, released: &released})

	rc := FromPointer(h, payload)
	require.Equal(t, 1, rc.Count())
	require.Equal(t, 5, rc.Get().val)

	rc.Release()
	require.Equal(t, 1, released)
}

func TestReleaseTwiceIsNoop(t *testing.T) {
	h := allocator.Heap{}
	var released int
	rc := New(h, resource{val: 1, released: &released})

	rc.Release()
	require.Equal(t, 1, released)
	require.NotPanics(t, func() { rc.Release() })
	require.Equal(t, 1, released, "second release must not invoke the deleter again")
}

func TestResetSoleOwnerReplacesInPlace(t *testing.T) {
	h := allocator.Heap{}
	var releasedOld, releasedNew int
	rc := New(h, resource{val: 1, released: &releasedOld})

	rc.Reset(h, resource{val: 2, released: &releasedNew})
	require.Equal(t, 1, releasedOld, "old payload must be destroyed on replacement")
	require.Equal(t, 2, rc.Get().val)
	require.Equal(t, 1, rc.Count())

	rc.Release()
	require.Equal(t, 1, releasedNew)
}

func TestResetSharedOwnerDetaches(t *testing.T) {
	h := allocator.Heap{}
	var released int
	rc := New(h, resource{val: 1, released: &released})
	clone := rc.Clone()

	rc.Reset(h, resource{val: 99})
	require.Zero(t, released, "detaching must not run the deleter while clone still holds a reference")
	require.Equal(t, 1, clone.Count())
	require.Equal(t, 1, clone.Get().val)
	require.Equal(t, 1, rc.Count())
	require.Equal(t, 99, rc.Get().val)

	clone.Release()
	require.Equal(t, 1, released)
}

func TestClearDetachesFromStore(t *testing.T) {
	h := allocator.Heap{}
	var released int
	rc := New(h, resource{val: 1, released: &released})

	rc.Clear()
	require.Equal(t, 1, released)
	require.Equal(t, 0, rc.Count())
}

func TestGetOnEmptyHandlePanics(t *testing.T) {
	h := allocator.Heap{}
	rc := New(h, resource{val: 1, released: new(int)})
	rc.Release()
	require.Panics(t, func() { rc.Get() })
}

func TestCloneOfEmptyHandlePanics(t *testing.T) {
	h := allocator.Heap{}
	rc := New(h, resource{val: 1, released: new(int)})
	rc.Release()
	require.Panics(t, func() { rc.Clone() })
}
