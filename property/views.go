package property

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/delaneyj/fxprops/bidi"
	"github.com/delaneyj/fxprops/observe"
)

var ErrOutOfRange = errors.New("value out of range")

// Range returns a validator accepting values in [lo, hi].
func Range[N cmp.Ordered](lo, hi N) func(N) error {
	return func(v N) error {
		if v < lo || v > hi {
			return fmt.Errorf("%v not in [%v, %v]: %w", v, lo, hi, ErrOutOfRange)
		}
		return nil
	}
}

func equalBoxed[N observe.Number](a, b *N) bool {
	if a == nil || b == nil {
		return a == b
	}
	return observe.Equal(*a, *b)
}

// AsObject returns a boxed view of p, kept equal to it in both directions.
// Writing nil into the view stores zero in p.
func AsObject[N observe.Number](p *Property[N]) (*Property[*N], error) {
	v, err := p.Value()
	if err != nil {
		return nil, err
	}
	view := New(&v, WithBean(p), WithName(p.Name()), WithEqual(equalBoxed[N]))
	if err := bidi.BindMapped(view, observe.WritableValue[N](p), unbox[N], box[N]); err != nil {
		return nil, err
	}
	return view, nil
}

// AsNumber is the inverse of AsObject: a plain numeric view of a boxed
// property. A nil box reads as zero.
func AsNumber[N observe.Number](p *Property[*N]) (*Property[N], error) {
	view := New[N](0, WithBean(p), WithName(p.Name()))
	if err := bidi.BindMapped(view, observe.WritableValue[*N](p), box[N], unbox[N]); err != nil {
		return nil, err
	}
	return view, nil
}

func box[N observe.Number](v N) (*N, error) {
	return &v, nil
}

func unbox[N observe.Number](v *N) (N, error) {
	if v == nil {
		return 0, nil
	}
	return *v, nil
}
