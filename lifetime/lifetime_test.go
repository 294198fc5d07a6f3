// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lifetime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/belka-ew/mmpool/allocator"
)

type point struct {
	X, Y int
}

// destroyCounter records how many times Destroy ran: moving this type
// must never invoke any copy path, only DestroyAll/Move touching it
// directly.
type destroyCounter struct {
	val   int
	count *int
}

func (d *destroyCounter) Destroy() { *d.count++ }

func TestEmplace(t *testing.T) {
	raw := make([]byte, 64)
	p := Emplace(raw, point{X: 1, Y: 2})
	require.Equal(t, point{1, 2}, *p)
}

func TestEmplaceTooSmall(t *testing.T) {
	raw := make([]byte, 1)
	require.Panics(t, func() { Emplace(raw, point{1, 2}) })
}

func TestMoveEmplace(t *testing.T) {
	src := point{X: 3, Y: 4}
	var dst point
	MoveEmplace(&src, &dst)
	require.Equal(t, point{3, 4}, dst)
	require.Equal(t, point{}, src)
}

func TestMoveEmplaceSameAddressPanics(t *testing.T) {
	v := point{1, 1}
	require.Panics(t, func() { MoveEmplace(&v, &v) })
}

// TestMoveDoesNotCopy moves a value whose would-be copy path must never
// run; the destination still ends up holding the original value and the
// source holding the zero value.
func TestMoveDoesNotCopy(t *testing.T) {
	var destroys int
	src := destroyCounter{val: 7, count: &destroys}
	var dst destroyCounter
	dst.count = &destroys

	Move(&src, &dst)

	require.Equal(t, 7, dst.val)
	require.Equal(t, 0, src.val)
	require.Equal(t, 1, destroys, "dst's prior value must be destroyed exactly once")
}

func TestMoveSameAddressNoop(t *testing.T) {
	var destroys int
	v := destroyCounter{val: 5, count: &destroys}
	Move(&v, &v)
	require.Equal(t, 5, v.val)
	require.Zero(t, destroys)
}

func TestMoveOut(t *testing.T) {
	src := point{X: 9, Y: 9}
	v := MoveOut(&src)
	require.Equal(t, point{9, 9}, v)
	require.Equal(t, point{}, src)
}

func TestSwap(t *testing.T) {
	a := point{X: 1, Y: 2}
	b := point{X: 3, Y: 4}
	Swap(&a, &b)
	require.Equal(t, point{3, 4}, a)
	require.Equal(t, point{1, 2}, b)
}

func TestSwapSameAddressNoop(t *testing.T) {
	v := point{X: 1, Y: 2}
	Swap(&v, &v)
	require.Equal(t, point{1, 2}, v)
}

func TestDestroyAll(t *testing.T) {
	var destroys int
	items := []destroyCounter{{val: 1, count: &destroys}, {val: 2, count: &destroys}, {val: 3, count: &destroys}}
	DestroyAll(items)
	require.Equal(t, 3, destroys)
}

func TestMakeAndDispose(t *testing.T) {
	h := allocator.Heap{}
	var destroys int
	p := Make(h, destroyCounter{val: 42, count: &destroys})
	require.Equal(t, 42, p.val)

	Dispose(h, p)
	require.Equal(t, 1, destroys)
}

func TestMakeSlice(t *testing.T) {
	h := allocator.Heap{}
	s, err := MakeSlice[point](h, 3)
	require.NoError(t, err)
	require.Len(t, s, 3)
	for _, v := range s {
		require.Equal(t, point{}, v)
	}
}

func TestMakeSliceZero(t *testing.T) {
	h := allocator.Heap{}
	s, err := MakeSlice[point](h, 0)
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestDisposeNil(t *testing.T) {
	h := allocator.Heap{}
	require.NotPanics(t, func() { Dispose[point](h, nil) })
}
