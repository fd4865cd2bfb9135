package vmem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSize(t *testing.T) {
	ps := PageSize()
	require.Positive(t, ps)
	assert.Zero(t, ps&(ps-1), "page size %d is not a power of two", ps)
	assert.Equal(t, ps, System.PageSize())
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, align, want int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{4095, 4096, 4096},
		{4097, 4096, 8192},
	}
	for _, tt := range tests {
		got, ok := AlignUp(tt.n, tt.align)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "AlignUp(%d, %d)", tt.n, tt.align)
	}

	_, ok := AlignUp(math.MaxInt, 8)
	assert.False(t, ok)
}

func TestRegion_ReserveCommitRelease(t *testing.T) {
	ps := PageSize()

	r, err := Reserve(8 * ps)
	require.NoError(t, err)
	defer r.Release()

	assert.Equal(t, 8*ps, r.Size())
	assert.Len(t, r.Bytes(), 8*ps)

	require.NoError(t, r.Commit(0, 2*ps))

	buf := r.Bytes()[:2*ps]
	for i := range buf {
		assert.Zero(t, buf[i])
		buf[i] = byte(i)
	}
	assert.Equal(t, byte(1), buf[1])

	// Committing again keeps the contents.
	require.NoError(t, r.Commit(0, 2*ps))
	assert.Equal(t, byte(1), buf[1])

	require.NoError(t, r.Commit(2*ps, 6*ps))
	r.Bytes()[8*ps-1] = 0xff

	require.NoError(t, r.Advise(0, 8*ps, AccessWillNeed))
	require.NoError(t, r.Advise(0, ps, AccessSequential))

	require.NoError(t, r.Release())
	require.NoError(t, r.Release())
	assert.Nil(t, r.Bytes())
}

func TestRegion_InvalidReserve(t *testing.T) {
	ps := PageSize()

	for _, size := range []int{0, -ps, ps + 1} {
		_, err := Reserve(size)
		assert.ErrorIs(t, err, ErrInvalidSize, "size=%d", size)
	}
}

func TestRegion_CommitErrors(t *testing.T) {
	ps := PageSize()

	r, err := Reserve(4 * ps)
	require.NoError(t, err)

	t.Run("out of bounds", func(t *testing.T) {
		assert.ErrorIs(t, r.Commit(3*ps, 2*ps), ErrOutOfBounds)
		assert.ErrorIs(t, r.Commit(-ps, ps), ErrOutOfBounds)
		assert.ErrorIs(t, r.Advise(4*ps, ps, AccessRandom), ErrOutOfBounds)
	})

	t.Run("unaligned", func(t *testing.T) {
		assert.ErrorIs(t, r.Commit(1, ps), ErrUnaligned)
		assert.ErrorIs(t, r.Commit(0, ps-1), ErrUnaligned)
	})

	t.Run("empty range", func(t *testing.T) {
		assert.NoError(t, r.Commit(ps, 0))
	})

	require.NoError(t, r.Release())

	t.Run("after release", func(t *testing.T) {
		assert.ErrorIs(t, r.Commit(0, ps), ErrReleased)
		assert.ErrorIs(t, r.Advise(0, ps, AccessDefault), ErrReleased)
	})
}

func TestSystemProvider(t *testing.T) {
	res, err := System.Reserve(System.PageSize())
	require.NoError(t, err)
	defer res.Release()

	require.NoError(t, res.Commit(0, System.PageSize()))
	res.Bytes()[0] = 42
	assert.Equal(t, byte(42), res.Bytes()[0])

	_, err = System.Reserve(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
