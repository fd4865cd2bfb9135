package vmarena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vmarena/internal/vmem"
)

func TestRef(t *testing.T) {
	ps := vmem.PageSize()

	t.Run("live until discarded", func(t *testing.T) {
		a, _ := newTestArena(t, 4*ps, ps)

		keep, err := a.PushRef(16)
		require.NoError(t, err)
		mark := a.Pos()

		tmp, err := a.PushRef(32)
		require.NoError(t, err)
		assert.Equal(t, 16, tmp.Offset)
		assert.Equal(t, 32, tmp.Size)

		b, err := a.Bytes(tmp)
		require.NoError(t, err)
		assert.Len(t, b, 32)
		b[0] = 7

		require.NoError(t, a.PopTo(mark))
		assert.False(t, a.Valid(tmp))
		_, err = a.Bytes(tmp)
		assert.ErrorIs(t, err, ErrStaleRef)

		// Reusing the space does not revive the old handle.
		_, err = a.Push(64)
		require.NoError(t, err)
		assert.False(t, a.Valid(tmp))

		assert.True(t, a.Valid(keep))
		kb, err := a.Bytes(keep)
		require.NoError(t, err)
		assert.Len(t, kb, 16)
	})

	t.Run("rollback above the ref keeps it", func(t *testing.T) {
		a, _ := newTestArena(t, 4*ps, ps)

		ref, err := a.PushRef(8)
		require.NoError(t, err)
		_, err = a.Push(100)
		require.NoError(t, err)

		require.NoError(t, a.PopTo(8))
		assert.True(t, a.Valid(ref))
	})

	t.Run("older rollbacks do not affect newer refs", func(t *testing.T) {
		a, _ := newTestArena(t, 4*ps, ps)

		_, err := a.Push(64)
		require.NoError(t, err)
		require.NoError(t, a.PopTo(0))

		ref, err := a.PushRef(64)
		require.NoError(t, err)
		assert.True(t, a.Valid(ref))

		_, err = a.Push(64)
		require.NoError(t, err)
		require.NoError(t, a.PopTo(64))
		require.NoError(t, a.PopTo(32))
		assert.False(t, a.Valid(ref))
	})

	t.Run("lowest target across several rollbacks", func(t *testing.T) {
		a, _ := newTestArena(t, 4*ps, ps)

		r1, err := a.PushRef(8) // [0, 8)
		require.NoError(t, err)
		r2, err := a.PushRef(8) // [8, 16)
		require.NoError(t, err)
		_, err = a.Push(16)
		require.NoError(t, err)

		require.NoError(t, a.PopTo(24))
		require.NoError(t, a.PopTo(8))
		_, err = a.Push(100)
		require.NoError(t, err)
		require.NoError(t, a.PopTo(50))

		assert.True(t, a.Valid(r1))
		assert.False(t, a.Valid(r2))
	})

	t.Run("foreign or closed", func(t *testing.T) {
		a, _ := newTestArena(t, ps, ps)

		ref, err := a.PushRef(8)
		require.NoError(t, err)

		assert.False(t, a.Valid(Ref{Offset: 0, Size: 64}))
		assert.False(t, a.Valid(Ref{Offset: -1, Size: 1}))

		require.NoError(t, a.Close())
		assert.False(t, a.Valid(ref))
		_, err = a.Bytes(ref)
		assert.ErrorIs(t, err, ErrClosed)

		_, err = a.PushRef(8)
		assert.ErrorIs(t, err, ErrClosed)
	})
}
