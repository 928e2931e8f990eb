package bidi_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/fxprops/bidi"
	"github.com/delaneyj/fxprops/observe"
	"github.com/delaneyj/fxprops/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var errTooBig = errors.New("too big")

func counter[T any](p *property.Property[T]) *int {
	n := 0
	p.AddChangeListener(observe.OnChanged(func(observe.ObservableValue[T], T, T) error {
		n++
		return nil
	}))
	return &n
}

func TestBind(t *testing.T) {
	t.Run("both sides converge and each change fires once", func(t *testing.T) {
		a, b := property.New(1), property.New(2)
		require.NoError(t, bidi.Bind[int](a, b))
		assert.Equal(t, 2, a.Get(), "a adopts b")

		na, nb := counter(a), counter(b)

		require.NoError(t, a.Set(5))
		assert.Equal(t, 5, b.Get())
		assert.Equal(t, 1, *na)
		assert.Equal(t, 1, *nb)

		require.NoError(t, b.Set(7))
		assert.Equal(t, 7, a.Get())
		assert.Equal(t, 2, *na)
		assert.Equal(t, 2, *nb)
	})

	t.Run("rejected write restores the source", func(t *testing.T) {
		a := property.New(1)
		b := property.New(1, property.WithValidator(func(v int) error {
			if v > 10 {
				return errTooBig
			}
			return nil
		}))
		require.NoError(t, bidi.Bind[int](a, b))

		err := a.Set(20)
		var syncErr *observe.SyncError
		require.ErrorAs(t, err, &syncErr)
		assert.ErrorIs(t, err, errTooBig)
		assert.False(t, syncErr.Unbound)
		assert.Equal(t, 1, a.Get())
		assert.Equal(t, 1, b.Get())

		require.NoError(t, a.Set(3), "link survives a rejected write")
		assert.Equal(t, 3, b.Get())
	})

	t.Run("failed restore removes the link", func(t *testing.T) {
		errFrozen := errors.New("frozen")
		frozen := false
		a := property.New(1, property.WithValidator(func(v int) error {
			if frozen && v == 1 {
				return errFrozen
			}
			return nil
		}))
		b := property.New(1, property.WithValidator(func(v int) error {
			if v > 10 {
				return errTooBig
			}
			return nil
		}))
		require.NoError(t, bidi.Bind[int](a, b))
		frozen = true

		err := a.Set(20)
		var syncErr *observe.SyncError
		require.ErrorAs(t, err, &syncErr)
		assert.True(t, syncErr.Unbound)
		assert.ErrorIs(t, err, errTooBig)
		assert.ErrorIs(t, err, errFrozen)
		assert.Equal(t, 20, a.Get())
		assert.Equal(t, 1, b.Get())

		require.NoError(t, a.Set(5))
		assert.Equal(t, 1, b.Get(), "no longer linked")
	})

	t.Run("self and nil are rejected", func(t *testing.T) {
		a := property.New(1)
		assert.ErrorIs(t, bidi.Bind[int](a, a), observe.ErrSelfBinding)
		assert.ErrorIs(t, bidi.Bind[int](a, nil), observe.ErrNilObservable)
		assert.ErrorIs(t, bidi.Unbind[int](nil, a), observe.ErrNilObservable)
		require.NoError(t, a.Set(2))
	})

	t.Run("unbind works in either order", func(t *testing.T) {
		a, b := property.New("x"), property.New("y")
		require.NoError(t, bidi.Bind[string](a, b))
		require.NoError(t, bidi.Unbind[string](b, a))

		require.NoError(t, a.Set("z"))
		assert.Equal(t, "y", b.Get())
		require.NoError(t, b.Set("w"))
		assert.Equal(t, "z", a.Get())
	})

	t.Run("rebinding after unbind links again", func(t *testing.T) {
		a, b := property.New(1), property.New(2)
		require.NoError(t, bidi.Bind[int](a, b))
		require.NoError(t, bidi.Unbind[int](a, b))
		require.NoError(t, bidi.Bind[int](b, a))
		assert.Equal(t, 2, b.Get())

		require.NoError(t, a.Set(4))
		assert.Equal(t, 4, b.Get())
	})
}

func TestBindNumber(t *testing.T) {
	i, f := property.New(5), property.New(5.9)
	require.NoError(t, bidi.BindNumber[int, float64](i, f))
	assert.Equal(t, 5, i.Get(), "float is truncated toward zero")

	require.NoError(t, i.Set(7))
	assert.Equal(t, 7.0, f.Get())

	require.NoError(t, f.Set(-2.5))
	assert.Equal(t, -2, i.Get())

	require.NoError(t, bidi.UnbindNumber[int, float64](i, f))
	require.NoError(t, i.Set(1))
	assert.Equal(t, -2.5, f.Get())
}

func TestBindString(t *testing.T) {
	t.Run("text follows the typed value and parses back", func(t *testing.T) {
		text, n := property.New(""), property.New(42)
		require.NoError(t, bidi.BindString[int](text, n, bidi.IntConverter[int]{}))
		assert.Equal(t, "42", text.Get())

		require.NoError(t, text.Set("7"))
		assert.Equal(t, 7, n.Get())

		require.NoError(t, n.Set(9))
		assert.Equal(t, "9", text.Get())
	})

	t.Run("text that does not parse is restored", func(t *testing.T) {
		text, n := property.New(""), property.New(42)
		require.NoError(t, bidi.BindString[int](text, n, bidi.IntConverter[int]{}))

		err := text.Set("forty")
		var syncErr *observe.SyncError
		require.ErrorAs(t, err, &syncErr)
		assert.Equal(t, "42", text.Get())
		assert.Equal(t, 42, n.Get())
	})

	t.Run("nil converter", func(t *testing.T) {
		text, n := property.New(""), property.New(1)
		assert.ErrorIs(t, bidi.BindString[int](text, n, nil), bidi.ErrNilConverter)
	})
}

func TestConverters(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		c := bidi.IntConverter[int8]{}
		v, err := c.FromString(" 42 ")
		require.NoError(t, err)
		assert.Equal(t, int8(42), v)
		_, err = c.FromString("300")
		assert.Error(t, err, "out of range for int8")
		assert.Equal(t, "-7", c.ToString(-7))
	})

	t.Run("floats", func(t *testing.T) {
		c := bidi.FloatConverter[float64]{}
		assert.Equal(t, "0.1", c.ToString(0.1))
		v, err := c.FromString("2.5")
		require.NoError(t, err)
		assert.Equal(t, 2.5, v)
	})

	t.Run("bools", func(t *testing.T) {
		c := bidi.BoolConverter{}
		v, err := c.FromString("true")
		require.NoError(t, err)
		assert.True(t, v)
		_, err = c.FromString("maybe")
		assert.Error(t, err)
	})

	t.Run("layout", func(t *testing.T) {
		c := bidi.FormatConverter[int]{Layout: "#%d"}
		assert.Equal(t, "#5", c.ToString(5))
		v, err := c.FromString("#7")
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("locale aware numbers", func(t *testing.T) {
		en := bidi.NewNumberConverter[int](language.English)
		assert.Equal(t, "1,234,567", en.ToString(1234567))
		v, err := en.FromString("1,234,567")
		require.NoError(t, err)
		assert.Equal(t, 1234567, v)

		de := bidi.NewNumberConverter[float64](language.German)
		assert.Equal(t, "1.234,5", de.ToString(1234.5))
		f, err := de.FromString("1.234,5")
		require.NoError(t, err)
		assert.Equal(t, 1234.5, f)
	})
}
