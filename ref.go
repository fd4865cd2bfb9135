package vmarena

import "sort"

// Ref is a checked handle to an arena allocation.
//
// Unlike the slices returned by Push, a Ref can tell whether its memory is
// still live: once a rollback discards any of its bytes, Bytes reports
// ErrStaleRef, even if later pushes have reused the space. A Ref must only be
// used with the arena that created it.
type Ref struct {
	Offset int
	Size   int
	gen    uint64
}

// rollbackMark records the target of the rollback that produced generation gen.
type rollbackMark struct {
	gen    uint64
	target int
}

// PushRef is like PushZeroed but returns a checked handle.
func (a *Arena) PushRef(size int) (Ref, error) {
	b, err := a.PushZeroed(size)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Offset: a.pos - len(b), Size: size, gen: a.gen}, nil
}

// Bytes returns the memory of ref, or ErrStaleRef if it has been discarded.
func (a *Arena) Bytes(ref Ref) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if !a.Valid(ref) {
		return nil, ErrStaleRef
	}
	end := ref.Offset + ref.Size
	return a.mem[ref.Offset:end:end], nil
}

// Valid reports whether ref still designates live memory.
func (a *Arena) Valid(ref Ref) bool {
	if a.closed || ref.Offset < 0 || ref.Size < 0 || ref.Offset > a.pos-ref.Size {
		return false
	}
	if ref.gen > a.gen {
		return false
	}
	low, ok := a.lowestTargetSince(ref.gen)
	return !ok || low >= ref.Offset+ref.Size
}

// recordRollback keeps marks ordered by both gen and target: a mark whose
// target is at or above a newer one can never be the lowest for any Ref.
func (a *Arena) recordRollback(target int) {
	a.gen++
	i := len(a.marks)
	for i > 0 && a.marks[i-1].target >= target {
		i--
	}
	a.marks = append(a.marks[:i], rollbackMark{gen: a.gen, target: target})
}

// lowestTargetSince returns the lowest rollback target after generation gen.
func (a *Arena) lowestTargetSince(gen uint64) (int, bool) {
	i := sort.Search(len(a.marks), func(i int) bool {
		return a.marks[i].gen > gen
	})
	if i == len(a.marks) {
		return 0, false
	}
	return a.marks[i].target, true
}
