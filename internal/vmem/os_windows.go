//go:build windows

package vmem

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func osPageSize() int {
	return os.Getpagesize()
}

func osReserve(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil //nolint:gosec // address comes from VirtualAlloc
}

func osCommit(data []byte) error {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	_, err := windows.VirtualAlloc(addr, uintptr(len(data)), windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

func osRelease(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	// MEM_RELEASE frees the whole reservation and requires size 0.
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

func osAdvise(data []byte, pattern AccessPattern) error {
	// PrefetchVirtualMemory could serve AccessWillNeed; not wired yet.
	_ = data
	_ = pattern
	return nil
}
