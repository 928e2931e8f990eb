package property_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/delaneyj/fxprops/binding"
	"github.com/delaneyj/fxprops/collections"
	"github.com/delaneyj/fxprops/observe"
	"github.com/delaneyj/fxprops/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty(t *testing.T) {
	t.Run("set fires once per valid to invalid transition", func(t *testing.T) {
		p := property.New(1)
		n := 0
		p.AddInvalidationListener(observe.OnInvalidated(func(o observe.Observable) error {
			assert.Same(t, p, o)
			n++
			return nil
		}))

		require.NoError(t, p.Set(2))
		require.NoError(t, p.Set(3))
		assert.Equal(t, 1, n, "still invalid, nobody read")

		assert.Equal(t, 3, p.Get())
		require.NoError(t, p.Set(4))
		assert.Equal(t, 2, n)

		p.Get()
		require.NoError(t, p.Set(4))
		assert.Equal(t, 2, n, "equal value is not a change")
	})

	t.Run("values holding slices behind interfaces", func(t *testing.T) {
		type tagged struct{ V any }
		p := property.New(tagged{V: []int{1}})
		require.NoError(t, p.Set(tagged{V: []int{2}}))
		assert.Equal(t, []int{2}, p.Get().V)
		n := 0
		p.AddChangeListener(observe.OnChanged(func(observe.ObservableValue[tagged], tagged, tagged) error {
			n++
			return nil
		}))
		require.NoError(t, p.Set(tagged{V: []int{2}}))
		assert.Equal(t, 0, n, "deeply equal value is not a change")
	})

	t.Run("change listeners see old and new", func(t *testing.T) {
		p := property.New("a")
		var got [][2]string
		p.AddChangeListener(observe.OnChanged(func(_ observe.ObservableValue[string], o, n string) error {
			got = append(got, [2]string{o, n})
			return nil
		}))
		require.NoError(t, p.Set("b"))
		require.NoError(t, p.Set("c"))
		assert.Equal(t, [][2]string{{"a", "b"}, {"b", "c"}}, got)
	})

	t.Run("invalidated hook runs before listeners", func(t *testing.T) {
		var order []string
		p := property.New(0, property.WithInvalidated(func() { order = append(order, "hook") }))
		p.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			order = append(order, "listener")
			return nil
		}))
		require.NoError(t, p.Set(1))
		assert.Equal(t, []string{"hook", "listener"}, order)
	})

	t.Run("validator rejects writes", func(t *testing.T) {
		p := property.New(5, property.WithValidator(property.Range(0, 10)))
		assert.ErrorIs(t, p.Set(11), property.ErrOutOfRange)
		assert.Equal(t, 5, p.Get())
		require.NoError(t, p.Set(10))
	})

	t.Run("custom equality", func(t *testing.T) {
		p := property.New("Go", property.WithEqual(func(a, b string) bool {
			return len(a) == len(b)
		}))
		n := 0
		p.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			n++
			return nil
		}))
		require.NoError(t, p.Set("Hi"))
		assert.Equal(t, 0, n)
		assert.Equal(t, "Go", p.Get())
	})

	t.Run("mismatched option type panics", func(t *testing.T) {
		assert.Panics(t, func() {
			property.New(1, property.WithValidator(func(string) error { return nil }))
		})
	})

	t.Run("listener errors reach the writer", func(t *testing.T) {
		boom := errors.New("boom")
		p := property.New(1)
		p.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error { return boom }))
		assert.ErrorIs(t, p.Set(2), boom)
		assert.Equal(t, 2, p.Get(), "value is stored before listeners run")
	})

	t.Run("string", func(t *testing.T) {
		p := property.New(3, property.WithName("count"))
		assert.Equal(t, "Property [name: count, value: 3]", p.String())
		assert.Equal(t, "count", p.Name())

		src := property.New(4)
		require.NoError(t, p.Bind(src))
		assert.Equal(t, "Property [name: count, bound, invalid]", p.String())
		p.Get()
		assert.Equal(t, "Property [name: count, bound, value: 4]", p.String())
	})

	t.Run("weak reference resolves while reachable", func(t *testing.T) {
		p := property.New(1)
		ref := p.WeakRef()
		assert.Equal(t, observe.WritableValue[int](p), ref())
	})
}

func TestPropertyBind(t *testing.T) {
	t.Run("a bound property mirrors its source", func(t *testing.T) {
		src, p := property.New(1), property.New(0)
		require.NoError(t, p.Bind(src))
		assert.True(t, p.IsBound())
		assert.Equal(t, 1, p.Get())

		require.NoError(t, src.Set(7))
		assert.Equal(t, 7, p.Get())
		assert.ErrorIs(t, p.Set(3), observe.ErrBound)
	})

	t.Run("binding errors", func(t *testing.T) {
		src, other, p := property.New(1), property.New(2), property.New(0)
		assert.ErrorIs(t, p.Bind(nil), observe.ErrNilObservable)
		assert.ErrorIs(t, p.Bind(p), observe.ErrSelfBinding)

		require.NoError(t, p.Bind(src))
		require.NoError(t, p.Bind(src), "same source again is fine")
		assert.ErrorIs(t, p.Bind(other), observe.ErrAlreadyBound)
		assert.Equal(t, 1, p.Get())
	})

	t.Run("unbind keeps the last value", func(t *testing.T) {
		src, p := property.New(1), property.New(0)
		require.NoError(t, p.Bind(src))
		require.NoError(t, src.Set(5))
		require.NoError(t, p.Unbind())
		assert.False(t, p.IsBound())
		assert.Equal(t, 5, p.Get())

		require.NoError(t, src.Set(6))
		assert.Equal(t, 5, p.Get())
		require.NoError(t, p.Set(8))
	})

	t.Run("bidirectional", func(t *testing.T) {
		a, b := property.New(1), property.New(2)
		require.NoError(t, a.BindBidirectional(b))
		assert.Equal(t, 2, a.Get())
		require.NoError(t, a.Set(5))
		assert.Equal(t, 5, b.Get())

		require.NoError(t, a.UnbindBidirectional(b))
		require.NoError(t, a.Set(1))
		assert.Equal(t, 5, b.Get())
		assert.ErrorIs(t, a.BindBidirectional(a), observe.ErrSelfBinding)
	})
}

func TestConfinement(t *testing.T) {
	p := property.New(1, property.WithConfinement())
	require.NoError(t, p.Set(2))

	var err error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err = p.Set(3)
	}()
	wg.Wait()

	var ce *observe.ConfinementError
	require.ErrorAs(t, err, &ce)
	assert.NotEqual(t, ce.Owner, ce.Caller)
	assert.Equal(t, 2, p.Get())
}

func TestReadOnly(t *testing.T) {
	p := property.New(1, property.WithName("x"))
	r := p.ReadOnly()
	assert.Same(t, r, p.ReadOnly())

	var sources []observe.Observable
	r.AddInvalidationListener(observe.OnInvalidated(func(o observe.Observable) error {
		sources = append(sources, o)
		return nil
	}))
	var got []int
	r.AddChangeListener(observe.OnChanged(func(_ observe.ObservableValue[int], _, n int) error {
		got = append(got, n)
		return nil
	}))

	require.NoError(t, p.Set(2))
	require.NoError(t, p.Set(3))
	assert.Equal(t, []int{2, 3}, got)
	require.Len(t, sources, 2)
	assert.Same(t, r, sources[0])
	assert.Equal(t, 3, r.Get())
	assert.Equal(t, "x", r.Name())
}

func TestNumericViews(t *testing.T) {
	t.Run("boxed view of a number", func(t *testing.T) {
		p := property.New(5)
		obj, err := property.AsObject(p)
		require.NoError(t, err)
		assert.Equal(t, 5, *obj.Get())

		require.NoError(t, p.Set(6))
		assert.Equal(t, 6, *obj.Get())

		three := 3
		require.NoError(t, obj.Set(&three))
		assert.Equal(t, 3, p.Get())

		require.NoError(t, obj.Set(nil))
		assert.Equal(t, 0, p.Get(), "nil stores zero")
	})

	t.Run("number view of a box", func(t *testing.T) {
		four := 4
		p := property.New(&four)
		n, err := property.AsNumber(p)
		require.NoError(t, err)
		assert.Equal(t, 4, n.Get())

		require.NoError(t, n.Set(9))
		assert.Equal(t, 9, *p.Get())

		require.NoError(t, p.Set(nil))
		assert.Equal(t, 0, n.Get())
	})
}

func TestListProperty(t *testing.T) {
	t.Run("element changes reach every listener kind in order", func(t *testing.T) {
		p := property.NewList[string](collections.NewList("a"))
		var order []string
		p.AddInvalidationListener(observe.OnInvalidated(func(observe.Observable) error {
			order = append(order, "L1")
			return nil
		}))
		p.AddChangeListener(observe.OnChanged(func(_ observe.ObservableValue[collections.ObservableList[string]], o, n collections.ObservableList[string]) error {
			assert.Same(t, o, n)
			order = append(order, "L2")
			return nil
		}))
		p.AddListChangeListener(collections.OnListChanged(func(c *collections.ListChange[string]) error {
			assert.Same(t, p, c.Source)
			require.True(t, c.Next())
			assert.Equal(t, []string{"b"}, c.Added())
			order = append(order, "L3")
			return nil
		}))

		require.NoError(t, p.Append("b"))
		assert.Equal(t, []string{"L1", "L2", "L3"}, order)
		assert.Equal(t, []string{"a", "b"}, p.All())
	})

	t.Run("replacing the list reports the difference", func(t *testing.T) {
		old := collections.NewList("a", "b", "c")
		p := property.NewList[string](old)
		var subs []collections.ListSubChange[string]
		p.AddListChangeListener(collections.OnListChanged(func(c *collections.ListChange[string]) error {
			subs = append(subs, c.SubChanges()...)
			return nil
		}))

		fresh := collections.NewList("b", "c", "d")
		require.NoError(t, p.Set(fresh))
		assert.Equal(t, []collections.ListSubChange[string]{
			{From: 0, To: 0, Removed: []string{"a"}},
			{From: 2, To: 3, Added: []string{"d"}},
		}, subs)

		subs = nil
		require.NoError(t, old.Append("x"))
		assert.Empty(t, subs, "old list is no longer forwarded")
		require.NoError(t, fresh.Append("e"))
		require.Len(t, subs, 1)
		assert.Equal(t, []string{"e"}, subs[0].Added)
	})

	t.Run("nil list", func(t *testing.T) {
		p := property.NewList[int](nil)
		assert.Equal(t, 0, p.Len())
		assert.ErrorIs(t, p.Append(1), property.ErrNoCollection)
	})

	t.Run("failing source reaches the caller", func(t *testing.T) {
		boom := errors.New("boom")
		src := binding.NewList[int](func() (collections.ObservableList[int], error) { return nil, boom })
		p := property.NewList[int](collections.NewList(1))
		require.NoError(t, p.Bind(src))

		err := p.Append(1)
		var ee *observe.EvaluationError
		require.ErrorAs(t, err, &ee)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, property.ErrNoCollection)

		_, err = p.SetAt(0, 2)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, p.Len())
		assert.Panics(t, func() { p.At(0) })

		set := property.NewSet[string](nil)
		require.NoError(t, set.Bind(binding.NewSet[string](func() (collections.ObservableSet[string], error) { return nil, boom })))
		assert.ErrorIs(t, set.Add("a"), boom)

		m := property.NewMap[string, int](nil)
		require.NoError(t, m.Bind(binding.NewMap[string, int](func() (collections.ObservableMap[string, int], error) { return nil, boom })))
		assert.ErrorIs(t, m.Put("a", 1), boom)
	})

	t.Run("content binding through the property", func(t *testing.T) {
		p := property.NewList[int](collections.NewList(1, 2))
		target := collections.NewList[int]()
		require.NoError(t, collections.BindContent[int](target, p))
		assert.Equal(t, []int{1, 2}, target.All())
		require.NoError(t, p.Append(3))
		assert.Equal(t, []int{1, 2, 3}, target.All())
	})
}

func TestSetProperty(t *testing.T) {
	p := property.NewSet[string](collections.NewSet("a"))
	var added, removed []string
	p.AddSetChangeListener(collections.OnSetChanged(func(c collections.SetChange[string]) error {
		assert.Same(t, p, c.Source)
		if c.WasAdded {
			added = append(added, c.ElementAdded)
		}
		if c.WasRemoved {
			removed = append(removed, c.ElementRemoved)
		}
		return nil
	}))

	require.NoError(t, p.Add("b"))
	assert.Equal(t, []string{"b"}, added)
	assert.True(t, p.Contains("b"))

	require.NoError(t, p.Set(collections.NewSet("b", "c")))
	assert.Equal(t, []string{"b", "c"}, added)
	assert.Equal(t, []string{"a"}, removed)
}

func TestMapProperty(t *testing.T) {
	p := property.NewMap[string, int](collections.NewMap[string, int]())
	var keys []string
	p.AddMapChangeListener(collections.OnMapChanged(func(c collections.MapChange[string, int]) error {
		assert.Same(t, p, c.Source)
		keys = append(keys, c.Key)
		return nil
	}))

	require.NoError(t, p.Put("a", 1))
	v, ok := p.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	require.NoError(t, p.Set(collections.NewMap(collections.Entry[string, int]{Key: "b", Value: 2})))
	assert.Equal(t, []string{"a", "a", "b"}, keys)
	assert.Equal(t, []string{"b"}, p.Keys())
}
