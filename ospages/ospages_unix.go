// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin || dragonfly || freebsd || linux || openbsd || solaris || netbsd

package ospages

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// pageSize is the true OS page size, queried once at process start so
// mmconfig can round the pool's region quantum up to a multiple of it.
var pageSize = unix.Getpagesize()

// PageSize reports the OS page size in bytes.
func PageSize() int { return pageSize }

func mmap(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, errors.Wrap(err, "ospages: mmap")
	}

	if uintptr(unsafe.Pointer(&b[0]))&uintptr(pageSize-1) != 0 {
		panic("ospages: mmap returned a misaligned address")
	}

	return b, nil
}

func unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := unix.Munmap(b); err != nil {
		return errors.Wrap(err, "ospages: munmap")
	}
	return nil
}
