package bidi

import (
	"fmt"

	"github.com/delaneyj/fxprops/observe"
)

func identityOf[T any](v T) T { return v }

func check(a, b any) (key, error) {
	if a == nil || b == nil {
		return key{}, observe.ErrNilObservable
	}
	return newKey(a, b)
}

// Bind links a and b. a first adopts the current value of b.
func Bind[T any](a, b observe.WritableValue[T]) error {
	return BindMapped(a, b, ok(identityOf[T]), ok(identityOf[T]))
}

// Unbind removes the link between a and b, in either order.
func Unbind[T any](a, b observe.WritableValue[T]) error {
	return UnbindMapped(a, b)
}

// BindMapped links cells of different types through a conversion each way.
// a first adopts the converted value of b. A conversion error is handled like
// a rejected write.
func BindMapped[A, B any](a observe.WritableValue[A], b observe.WritableValue[B], aToB func(A) (B, error), bToA func(B) (A, error)) error {
	k, err := check(a, b)
	if err != nil {
		return err
	}

	bv, err := b.Value()
	if err != nil {
		return err
	}
	av, err := bToA(bv)
	if err != nil {
		return fmt.Errorf("initial sync: %w", err)
	}
	if err := a.Set(av); err != nil {
		return fmt.Errorf("initial sync: %w", err)
	}

	l := newLink(k, a, b, aToB, bToA)
	a.AddChangeListener(l.onA)
	b.AddChangeListener(l.onB)
	return nil
}

// UnbindMapped removes the link between a and b.
func UnbindMapped[A, B any](a observe.WritableValue[A], b observe.WritableValue[B]) error {
	k, err := check(a, b)
	if err != nil {
		return err
	}
	a.RemoveChangeListener(&side[A]{key: k})
	b.RemoveChangeListener(&side[B]{key: k})
	return nil
}

// BindNumber links numeric cells of different kinds with Go conversion
// rules, so a float written into an integer cell is truncated toward zero.
func BindNumber[A, B observe.Number](a observe.WritableValue[A], b observe.WritableValue[B]) error {
	return BindMapped(a, b,
		func(v A) (B, error) { return B(v), nil },
		func(v B) (A, error) { return A(v), nil },
	)
}

func UnbindNumber[A, B observe.Number](a observe.WritableValue[A], b observe.WritableValue[B]) error {
	return UnbindMapped(a, b)
}

// BindString links a text cell to a typed cell through c. The text cell first
// adopts the formatted value of the typed one. Text that does not parse is
// rejected and restored.
func BindString[T any](text observe.WritableValue[string], typed observe.WritableValue[T], c Converter[T]) error {
	if c == nil {
		return ErrNilConverter
	}
	return BindMapped(text, typed, c.FromString, ok(c.ToString))
}

func UnbindString[T any](text observe.WritableValue[string], typed observe.WritableValue[T]) error {
	return UnbindMapped(text, typed)
}

func ok[A, B any](fn func(A) B) func(A) (B, error) {
	return func(v A) (B, error) { return fn(v), nil }
}
