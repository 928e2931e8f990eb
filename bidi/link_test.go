package bidi

import (
	"testing"

	"github.com/delaneyj/fxprops/observe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	x, y, z := new(int), new(int), new(int)

	t.Run("order does not matter", func(t *testing.T) {
		xy, err := newKey(x, y)
		require.NoError(t, err)
		yx, err := newKey(y, x)
		require.NoError(t, err)

		assert.Equal(t, xy.hash, yx.hash)
		assert.True(t, xy.matches(yx))
		assert.True(t, yx.matches(xy))

		a := &side[int]{key: xy}
		b := &side[string]{key: yx}
		assert.True(t, a.Equal(b))
		assert.True(t, b.Equal(a))
		assert.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("different pairs differ", func(t *testing.T) {
		xy, _ := newKey(x, y)
		xz, _ := newKey(x, z)
		assert.False(t, xy.matches(xz))
		assert.False(t, (&side[int]{key: xy}).Equal(&side[int]{key: xz}))
		assert.False(t, (&side[int]{key: xy}).Equal("not a side"))
	})

	t.Run("identity is required", func(t *testing.T) {
		_, err := newKey(x, x)
		assert.ErrorIs(t, err, observe.ErrSelfBinding)
		_, err = newKey(3, y)
		assert.ErrorIs(t, err, observe.ErrUnidentifiable)
	})

	t.Run("sides go stale with their cells", func(t *testing.T) {
		k, _ := newKey(x, y)
		gone := false
		s := &side[int]{key: k, stale: func() bool { return gone }}
		assert.False(t, s.IsStale())
		gone = true
		assert.True(t, s.IsStale())
		assert.True(t, observe.IsStale(s))
	})
}
