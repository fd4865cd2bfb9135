package vmem

import "errors"

// AccessPattern provides hints to the kernel about how committed memory will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects memory to be accessed sequentially.
	AccessSequential
	// AccessRandom expects memory to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects memory to be accessed in the near future.
	AccessWillNeed
)

var (
	// ErrReleased is returned when operating on a released region.
	ErrReleased = errors.New("vmem: region is released")
	// ErrInvalidSize is returned for non-positive or non page-aligned sizes.
	ErrInvalidSize = errors.New("vmem: invalid size")
	// ErrOutOfBounds is returned when a range lies outside the reservation.
	ErrOutOfBounds = errors.New("vmem: out of bounds")
	// ErrUnaligned is returned when a commit range is not page-aligned.
	ErrUnaligned = errors.New("vmem: range is not page-aligned")
)

// Provider reserves address space.
// System is the implementation backed by the operating system.
type Provider interface {
	// PageSize returns the commit granularity in bytes.
	PageSize() int
	// Reserve claims size bytes of address space without backing them.
	Reserve(size int) (Reservation, error)
}

// Reservation is a reserved address range.
type Reservation interface {
	// Commit backs [off, off+size) with read/write memory.
	Commit(off, size int) error
	// Bytes returns the whole reserved range. Only committed bytes may be touched.
	Bytes() []byte
	// Advise hints the kernel about [off, off+size) of committed memory.
	Advise(off, size int, pattern AccessPattern) error
	// Release returns the range to the operating system.
	Release() error
}
