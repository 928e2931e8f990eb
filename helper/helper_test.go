package helper

import (
	"errors"
	"runtime"
	"testing"

	"github.com/delaneyj/fxprops/observe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cell is the smallest observable value that drives a scalar helper.
type cell struct {
	value  int
	reads  int
	helper Scalar[int]
	target *Target[int, None, None]
}

func newCell(v int) *cell {
	c := &cell{value: v}
	c.target = NewScalarTarget[int](c, nil)
	return c
}

func (c *cell) AddInvalidationListener(l observe.InvalidationListener) {
	c.helper = AddInvalidationListener(c.helper, c.target, l)
}

func (c *cell) RemoveInvalidationListener(l observe.InvalidationListener) {
	c.helper = RemoveInvalidationListener(c.helper, l)
}

func (c *cell) AddChangeListener(l observe.ChangeListener[int]) {
	c.helper = AddChangeListener(c.helper, c.target, l)
}

func (c *cell) RemoveChangeListener(l observe.ChangeListener[int]) {
	c.helper = RemoveChangeListener(c.helper, l)
}

func (c *cell) Value() (int, error) {
	c.reads++
	return c.value, nil
}

func (c *cell) set(v int) error {
	c.value = v
	return Fire(c.helper)
}

func TestHelperStates(t *testing.T) {
	t.Run("adding then removing the sole listener collapses to empty", func(t *testing.T) {
		c := newCell(1)
		l := observe.OnInvalidated(func(observe.Observable) error { return nil })

		c.AddInvalidationListener(l)
		_, ok := c.helper.(*single[int, None, None])
		require.True(t, ok)

		c.RemoveInvalidationListener(l)
		assert.Nil(t, c.helper)
	})

	t.Run("two listeners minus one leaves a single carrying the other", func(t *testing.T) {
		c := newCell(1)
		inv := observe.OnInvalidated(func(observe.Observable) error { return nil })
		chg := observe.OnChanged(func(observe.ObservableValue[int], int, int) error { return nil })

		c.AddInvalidationListener(inv)
		c.AddChangeListener(chg)
		_, ok := c.helper.(*generic[int, None, None])
		require.True(t, ok)

		c.RemoveInvalidationListener(inv)
		s, ok := c.helper.(*single[int, None, None])
		require.True(t, ok)
		assert.Equal(t, kindChange, s.kind)
		assert.Same(t, chg, s.chg)
	})

	t.Run("removing an unknown listener keeps the helper", func(t *testing.T) {
		c := newCell(1)
		l := observe.OnInvalidated(func(observe.Observable) error { return nil })
		other := observe.OnInvalidated(func(observe.Observable) error { return nil })

		c.AddInvalidationListener(l)
		before := c.helper
		c.RemoveInvalidationListener(other)
		assert.Same(t, before, c.helper)
	})

	t.Run("many listeners collapse step by step", func(t *testing.T) {
		c := newCell(1)
		ls := make([]observe.InvalidationListener, 4)
		for i := range ls {
			ls[i] = observe.OnInvalidated(func(observe.Observable) error { return nil })
			c.AddInvalidationListener(ls[i])
		}
		inv, chg, col := Count(c.helper)
		assert.Equal(t, []int{4, 0, 0}, []int{inv, chg, col})

		for _, l := range ls[:3] {
			c.RemoveInvalidationListener(l)
		}
		s, ok := c.helper.(*single[int, None, None])
		require.True(t, ok)
		assert.Same(t, ls[3], s.inv)

		c.RemoveInvalidationListener(ls[3])
		assert.Nil(t, c.helper)
	})

	t.Run("nil listener panics", func(t *testing.T) {
		c := newCell(1)
		assert.PanicsWithValue(t, observe.ErrNilListener, func() {
			c.AddInvalidationListener(nil)
		})
	})
}

func TestHelperDispatch(t *testing.T) {
	t.Run("invalidation before change, registration order within a kind", func(t *testing.T) {
		c := newCell(1)
		log := []string{}
		c.AddChangeListener(observe.OnChanged(func(_ observe.ObservableValue[int], o, n int) error {
			log = append(log, "change 1")
			return nil
		}))
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			log = append(log, "invalidation 1")
			return nil
		}))
		c.AddChangeListener(observe.OnChanged(func(_ observe.ObservableValue[int], o, n int) error {
			log = append(log, "change 2")
			return nil
		}))
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			log = append(log, "invalidation 2")
			return nil
		}))

		require.NoError(t, c.set(2))
		assert.Equal(t, []string{"invalidation 1", "invalidation 2", "change 1", "change 2"}, log)
	})

	t.Run("change listeners see old and new, only on a real change", func(t *testing.T) {
		c := newCell(1)
		type pair struct{ o, n int }
		seen := []pair{}
		c.AddChangeListener(observe.OnChanged(func(_ observe.ObservableValue[int], o, n int) error {
			seen = append(seen, pair{o, n})
			return nil
		}))

		require.NoError(t, c.set(2))
		require.NoError(t, c.set(2))
		require.NoError(t, c.set(5))
		assert.Equal(t, []pair{{1, 2}, {2, 5}}, seen)
	})

	t.Run("invalidation only helpers never read the value", func(t *testing.T) {
		c := newCell(1)
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error { return nil }))
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error { return nil }))
		reads := c.reads

		require.NoError(t, c.set(2))
		assert.Equal(t, reads, c.reads)
	})

	t.Run("listener errors abort the pass", func(t *testing.T) {
		c := newCell(1)
		boom := errors.New("boom")
		calls := 0
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			calls++
			return boom
		}))
		c.AddChangeListener(observe.OnChanged(func(observe.ObservableValue[int], int, int) error {
			calls++
			return nil
		}))

		assert.ErrorIs(t, c.set(2), boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("listener removing itself mid dispatch", func(t *testing.T) {
		c := newCell(1)
		log := []string{}
		var self observe.InvalidationListener
		self = observe.OnInvalidated(func(observe.Observable) error {
			log = append(log, "self")
			c.RemoveInvalidationListener(self)
			return nil
		})
		c.AddInvalidationListener(self)
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			log = append(log, "second")
			return nil
		}))
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			log = append(log, "third")
			return nil
		}))

		require.NoError(t, c.set(2))
		assert.Equal(t, []string{"self", "second", "third"}, log)

		log = log[:0]
		require.NoError(t, c.set(3))
		assert.Equal(t, []string{"second", "third"}, log)
	})

	t.Run("listener removing a later listener mid dispatch", func(t *testing.T) {
		c := newCell(1)
		log := []string{}
		last := observe.OnInvalidated(func(observe.Observable) error {
			log = append(log, "last")
			return nil
		})
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			log = append(log, "first")
			c.RemoveInvalidationListener(last)
			return nil
		}))
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			log = append(log, "middle")
			return nil
		}))
		c.AddInvalidationListener(last)

		require.NoError(t, c.set(2))
		assert.Equal(t, []string{"first", "middle", "last"}, log, "the running pass keeps its snapshot")

		log = log[:0]
		require.NoError(t, c.set(3))
		assert.Equal(t, []string{"first", "middle"}, log)
	})

	t.Run("listener added mid dispatch waits for the next pass", func(t *testing.T) {
		c := newCell(1)
		added := 0
		late := observe.OnInvalidated(func(observe.Observable) error {
			added++
			return nil
		})
		once := false
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			if !once {
				once = true
				c.AddInvalidationListener(late)
			}
			return nil
		}))
		c.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error { return nil }))

		require.NoError(t, c.set(2))
		assert.Equal(t, 0, added)
		require.NoError(t, c.set(3))
		assert.Equal(t, 1, added)
	})
}

func TestListenerArray(t *testing.T) {
	t.Run("grows by half plus one", func(t *testing.T) {
		ls := listeners[int]{}
		caps := []int{}
		for i := 0; i < 6; i++ {
			ls.add(i, false)
			caps = append(caps, len(ls.items))
		}
		assert.Equal(t, []int{1, 2, 4, 4, 7, 7}, caps)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ls.snapshot())
	})

	t.Run("unlocked removal clears the vacated slot", func(t *testing.T) {
		ls := listeners[*int]{}
		a, b, c := new(int), new(int), new(int)
		ls.add(a, false)
		ls.add(b, false)
		ls.add(c, false)
		ls.removeAt(0, false)
		assert.Equal(t, []*int{b, c}, ls.snapshot())
		assert.Nil(t, ls.items[2])
	})

	t.Run("locked mutations leave the snapshot alone", func(t *testing.T) {
		ls := listeners[int]{}
		ls.add(1, false)
		ls.add(2, false)
		ls.add(3, false)
		snap := ls.snapshot()

		ls.removeAt(0, true)
		ls.add(4, true)
		assert.Equal(t, []int{1, 2, 3}, snap)
		assert.Equal(t, []int{2, 3, 4}, ls.snapshot())
	})

	t.Run("stale weak listeners are trimmed before growing", func(t *testing.T) {
		type target struct {
			hits int
			name *string
		}
		ls := listeners[observe.InvalidationListener]{}
		keep := &target{}
		keepL := observe.WeakInvalidationListener(keep, func(t *target, _ observe.Observable) error {
			t.hits++
			return nil
		})
		ls.add(keepL, false)
		func() {
			gone := &target{}
			ls.add(observe.WeakInvalidationListener(gone, func(*target, observe.Observable) error { return nil }), false)
		}()
		for i := 0; i < 3 && !observe.IsStale(ls.items[1]); i++ {
			runtime.GC()
		}
		require.True(t, observe.IsStale(ls.items[1]))

		capBefore := len(ls.items)
		ls.add(observe.OnInvalidated(func(observe.Observable) error { return nil }), false)
		assert.Equal(t, capBefore, len(ls.items), "the stale slot was reused")
		assert.Equal(t, 2, ls.size)
		assert.Same(t, keepL, ls.items[0])
		runtime.KeepAlive(keep)
	})
}
