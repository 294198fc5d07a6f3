// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package ospages

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var pageSize = func() int {
	var si windows.SystemInfo
	windows.GetSystemInfo(&si)
	return int(si.PageSize)
}()

// PageSize reports the OS page size in bytes.
func PageSize() int { return pageSize }

// handles maps a mapping's base address back to the Windows handle needed
// to unmap it: mapping on Windows is a CreateFileMapping + MapViewOfFile
// pair, and Go's byte slice alone doesn't carry the handle.
var handles = map[uintptr]windows.Handle{}

func mmap(size int) ([]byte, error) {
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, uint32(uint64(size)>>32), uint32(size&0xFFFFFFFF), nil)
	if err != nil {
		return nil, errors.Wrap(err, "ospages: CreateFileMapping")
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, errors.Wrap(err, "ospages: MapViewOfFile")
	}

	handles[addr] = h
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	addr := uintptr(unsafe.Pointer(&b[0]))
	if err := windows.UnmapViewOfFile(addr); err != nil {
		return errors.Wrap(err, "ospages: UnmapViewOfFile")
	}

	if h, ok := handles[addr]; ok {
		delete(handles, addr)
		if err := windows.CloseHandle(h); err != nil {
			return errors.Wrap(err, "ospages: CloseHandle")
		}
	}
	return nil
}
