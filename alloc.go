package vmarena

import (
	"fmt"
	"math"
	"unsafe"
)

// The helpers below place values outside the Go heap. The garbage collector
// does not scan arena memory, so T must not contain pointers, slices, maps,
// strings, interfaces, channels or funcs that reference heap objects.

// Alloc returns a pointer to a zeroed T stored inside the arena.
func Alloc[T any](a *Arena) (*T, error) {
	var zero T
	b, err := a.PushZeroed(int(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil //nolint:gosec // unsafe is required for arena implementation
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The elements are not initialized. Returns nil if n == 0.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	return allocSlice[T](a, n, false)
}

// AllocSliceZeroed allocates a slice of n zeroed elements of type T.
func AllocSliceZeroed[T any](a *Arena, n int) ([]T, error) {
	return allocSlice[T](a, n, true)
}

func allocSlice[T any](a *Arena, n int, zeroed bool) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d elements", ErrInvalidSize, n)
	}
	if n == 0 {
		return nil, nil
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize > 0 && n > math.MaxInt/elemSize {
		return nil, fmt.Errorf("%w: %d elements of %d bytes", ErrInvalidSize, n, elemSize)
	}

	push := a.Push
	if zeroed {
		push = a.PushZeroed
	}
	b, err := push(n * elemSize)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil //nolint:gosec // unsafe is required for arena implementation
}
