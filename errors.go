package vmarena

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for negative sizes and for reservation or
	// commit sizes that are zero or overflow when rounded to the page size.
	ErrInvalidSize = errors.New("invalid size")

	// ErrInvalidAlignment is returned when WithAlignment is given a value that
	// is not a power of two between DefaultAlignment and the page size.
	ErrInvalidAlignment = errors.New("invalid alignment")

	// ErrReserveFailed matches every *ReserveError.
	ErrReserveFailed = errors.New("address space reservation failed")

	// ErrCommitFailed matches every *CommitError.
	ErrCommitFailed = errors.New("memory commit failed")

	// ErrOutOfSpace is returned when an allocation would run past the
	// reservation. No operating system call is made in that case.
	ErrOutOfSpace = errors.New("arena reservation exhausted")

	// ErrInvalidRollback matches every *RollbackError.
	ErrInvalidRollback = errors.New("invalid rollback target")

	// ErrClosed is returned by every operation on a closed arena.
	ErrClosed = errors.New("arena is closed")

	// ErrStaleRef is returned when a Ref points at memory discarded by a rollback.
	ErrStaleRef = errors.New("stale arena reference")
)

// ReserveError indicates that the operating system refused an address space
// reservation.
//
// It matches ErrReserveFailed; the original error can be accessed via errors.Unwrap.
type ReserveError struct {
	Size  int
	cause error
}

func (e *ReserveError) Error() string {
	return fmt.Sprintf("reserve %d bytes: %v", e.Size, e.cause)
}

func (e *ReserveError) Unwrap() error { return e.cause }

func (e *ReserveError) Is(target error) bool { return target == ErrReserveFailed }

// CommitError indicates that the range [Offset, Offset+Size) of the
// reservation could not be backed with memory. The arena state is unchanged.
//
// It matches ErrCommitFailed; the original error (an operating system error or
// resource.ErrMemoryLimitExceeded) can be accessed via errors.Unwrap.
type CommitError struct {
	Offset int
	Size   int
	cause  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit [%d, %d): %v", e.Offset, e.Offset+e.Size, e.cause)
}

func (e *CommitError) Unwrap() error { return e.cause }

func (e *CommitError) Is(target error) bool { return target == ErrCommitFailed }

// RollbackError is a caller bug: PopTo was asked to move the cursor forward
// or below zero. The cursor is never clamped.
//
// It matches ErrInvalidRollback.
type RollbackError struct {
	Target int
	Pos    int
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("invalid rollback target %d: cursor is at %d", e.Target, e.Pos)
}

func (e *RollbackError) Is(target error) bool { return target == ErrInvalidRollback }
