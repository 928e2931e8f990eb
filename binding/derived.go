package binding

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/delaneyj/fxprops/observe"
)

var ErrDivisionByZero = errors.New("integer division by zero")

// Computed1 derives a value from one observable value.
func Computed1[A, T any](a observe.ObservableValue[A], fn func(A) (T, error)) *Binding[T] {
	return New(func() (T, error) {
		va, err := a.Value()
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(va)
	}, a)
}

// Computed2 derives a value from two observable values.
func Computed2[A, B, T any](a observe.ObservableValue[A], b observe.ObservableValue[B], fn func(A, B) (T, error)) *Binding[T] {
	return New(func() (T, error) {
		var zero T
		va, err := a.Value()
		if err != nil {
			return zero, err
		}
		vb, err := b.Value()
		if err != nil {
			return zero, err
		}
		return fn(va, vb)
	}, a, b)
}

// Computed3 derives a value from three observable values.
func Computed3[A, B, C, T any](a observe.ObservableValue[A], b observe.ObservableValue[B], c observe.ObservableValue[C], fn func(A, B, C) (T, error)) *Binding[T] {
	return New(func() (T, error) {
		var zero T
		va, err := a.Value()
		if err != nil {
			return zero, err
		}
		vb, err := b.Value()
		if err != nil {
			return zero, err
		}
		vc, err := c.Value()
		if err != nil {
			return zero, err
		}
		return fn(va, vb, vc)
	}, a, b, c)
}

func pure2[A, B, T any](fn func(A, B) T) func(A, B) (T, error) {
	return func(a A, b B) (T, error) { return fn(a, b), nil }
}

func Add[N observe.Number](a, b observe.ObservableValue[N]) *Binding[N] {
	return Computed2(a, b, pure2(func(x, y N) N { return x + y }))
}

func Subtract[N observe.Number](a, b observe.ObservableValue[N]) *Binding[N] {
	return Computed2(a, b, pure2(func(x, y N) N { return x - y }))
}

func Multiply[N observe.Number](a, b observe.ObservableValue[N]) *Binding[N] {
	return Computed2(a, b, pure2(func(x, y N) N { return x * y }))
}

// Divide divides a by b. Integer division by zero is an evaluation error,
// float division follows IEEE 754.
func Divide[N observe.Number](a, b observe.ObservableValue[N]) *Binding[N] {
	return Computed2(a, b, func(x, y N) (N, error) {
		if y == 0 && isInteger[N]() {
			return 0, ErrDivisionByZero
		}
		return x / y, nil
	})
}

func isInteger[N observe.Number]() bool {
	var one N = 1
	return one/2 == 0
}

func Negate[N observe.Number](a observe.ObservableValue[N]) *Binding[N] {
	return Computed1(a, func(x N) (N, error) { return -x, nil })
}

// Convert converts between numeric kinds with Go conversion rules, so floats
// truncate toward zero when converted to integers.
func Convert[From, To observe.Number](a observe.ObservableValue[From]) *Binding[To] {
	return Computed1(a, func(x From) (To, error) { return To(x), nil })
}

func Min[N cmp.Ordered](a, b observe.ObservableValue[N]) *Binding[N] {
	return Computed2(a, b, pure2(func(x, y N) N { return min(x, y) }))
}

func Max[N cmp.Ordered](a, b observe.ObservableValue[N]) *Binding[N] {
	return Computed2(a, b, pure2(func(x, y N) N { return max(x, y) }))
}

// And is true when both are true. b is not read when a is false.
func And(a, b observe.ObservableValue[bool]) *Binding[bool] {
	return New(func() (bool, error) {
		va, err := a.Value()
		if err != nil || !va {
			return false, err
		}
		return b.Value()
	}, a, b)
}

// Or is true when either is true. b is not read when a is true.
func Or(a, b observe.ObservableValue[bool]) *Binding[bool] {
	return New(func() (bool, error) {
		va, err := a.Value()
		if err != nil || va {
			return va, err
		}
		return b.Value()
	}, a, b)
}

func Not(a observe.ObservableValue[bool]) *Binding[bool] {
	return Computed1(a, func(x bool) (bool, error) { return !x, nil })
}

func Equal[T any](a, b observe.ObservableValue[T]) *Binding[bool] {
	return Computed2(a, b, pure2(observe.Equal[T]))
}

func NotEqual[T any](a, b observe.ObservableValue[T]) *Binding[bool] {
	return Computed2(a, b, pure2(func(x, y T) bool { return !observe.Equal(x, y) }))
}

func Greater[N cmp.Ordered](a, b observe.ObservableValue[N]) *Binding[bool] {
	return Computed2(a, b, pure2(func(x, y N) bool { return x > y }))
}

func Less[N cmp.Ordered](a, b observe.ObservableValue[N]) *Binding[bool] {
	return Computed2(a, b, pure2(func(x, y N) bool { return x < y }))
}

// Arg is one observable operand of Format or Concat.
type Arg struct {
	dep   observe.Observable
	value func() (any, error)
}

// ArgOf adapts an observable value of any type to an Arg.
func ArgOf[T any](v observe.ObservableValue[T]) Arg {
	return Arg{dep: v, value: func() (any, error) { return v.Value() }}
}

// Text is a constant Arg.
func Text(s string) Arg {
	return Arg{value: func() (any, error) { return s, nil }}
}

func values(args []Arg) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := a.value()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func deps(args []Arg) []observe.Observable {
	var ds []observe.Observable
	for _, a := range args {
		if a.dep != nil {
			ds = append(ds, a.dep)
		}
	}
	return ds
}

// Concat joins the string form of every part.
func Concat(parts ...Arg) *Binding[string] {
	return New(func() (string, error) {
		vs, err := values(parts)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		for _, v := range vs {
			fmt.Fprint(&sb, v)
		}
		return sb.String(), nil
	}, deps(parts)...)
}

// Format renders args with a fmt layout.
func Format(layout string, args ...Arg) *Binding[string] {
	return New(func() (string, error) {
		vs, err := values(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(layout, vs...), nil
	}, deps(args)...)
}

// StringOf is the fmt %v form of a.
func StringOf[T any](a observe.ObservableValue[T]) *Binding[string] {
	return Computed1(a, func(x T) (string, error) { return fmt.Sprint(x), nil })
}

// When starts a conditional binding: When(cond).Then(a).Otherwise(b).
func When[T any](cond observe.ObservableValue[bool]) *Condition[T] {
	return &Condition[T]{cond: cond}
}

type Condition[T any] struct {
	cond observe.ObservableValue[bool]
}

func (c *Condition[T]) Then(v observe.ObservableValue[T]) *ConditionThen[T] {
	return &ConditionThen[T]{cond: c.cond, then: v}
}

// ThenValue is Then with a constant.
func (c *Condition[T]) ThenValue(v T) *ConditionThen[T] {
	return c.Then(Constant(v))
}

type ConditionThen[T any] struct {
	cond observe.ObservableValue[bool]
	then observe.ObservableValue[T]
}

// Otherwise completes the conditional. Only the selected branch is read.
func (c *ConditionThen[T]) Otherwise(v observe.ObservableValue[T]) *Binding[T] {
	cond, then := c.cond, c.then
	return New(func() (T, error) {
		ok, err := cond.Value()
		if err != nil {
			var zero T
			return zero, err
		}
		if ok {
			return then.Value()
		}
		return v.Value()
	}, cond, then, v)
}

func (c *ConditionThen[T]) OtherwiseValue(v T) *Binding[T] {
	return c.Otherwise(Constant(v))
}
