// Package helper aggregates the listeners of one observable and fans
// notifications out to them.
//
// A helper is sized for the common case: no listeners is a nil Helper, one
// listener is a compact single state, and anything more is a generic state
// backed by one growable array per listener kind. Adding or removing a
// listener returns the helper to keep, which may be a different value.
//
// The same engine serves scalar values and collections. T is the observed
// value, L the structural listener type and E the structural event type;
// scalar observables use None for both.
package helper

import "github.com/delaneyj/fxprops/observe"

// None fills the structural slots of helpers that have no structural events.
type None struct{}

// Scalar is the helper of a plain observable value.
type Scalar[T any] = Helper[T, None, None]

// Shape describes how values of one observable kind are compared and how
// structural events are built and delivered.
type Shape[T, L, E any] struct {
	// Equal decides whether a new value is a change. Defaults to observe.Equal.
	Equal func(a, b T) bool
	// Diff synthesises a structural event when the whole value was replaced.
	Diff func(oldValue, newValue T) (E, bool)
	// Deliver hands a structural event to one listener.
	Deliver func(l L, ev E) error
}

// Target is what a helper reports about. Owner is passed to invalidation
// listeners, Value to change listeners and as the source of the current
// value. Value may be nil for observables that only fire structural events.
type Target[T, L, E any] struct {
	Owner observe.Observable
	Value observe.ObservableValue[T]
	Shape *Shape[T, L, E]
}

// NewScalarTarget returns the target of a plain observable value.
func NewScalarTarget[T any](v observe.ObservableValue[T], equal func(a, b T) bool) *Target[T, None, None] {
	return &Target[T, None, None]{
		Owner: v,
		Value: v,
		Shape: &Shape[T, None, None]{Equal: equal},
	}
}

func (t *Target[T, L, E]) current() T {
	var zero T
	if t.Value == nil {
		return zero
	}
	v, err := t.Value.Value()
	if err != nil {
		observe.Logger().Debug("snapshot of current value failed", "err", err)
		return zero
	}
	return v
}

func (t *Target[T, L, E]) equal(a, b T) bool {
	if t.Shape != nil && t.Shape.Equal != nil {
		return t.Shape.Equal(a, b)
	}
	return observe.Equal(a, b)
}

func (t *Target[T, L, E]) diff(oldValue, newValue T) (E, bool) {
	if t.Shape == nil || t.Shape.Diff == nil {
		var zero E
		return zero, false
	}
	return t.Shape.Diff(oldValue, newValue)
}

func (t *Target[T, L, E]) deliver(l L, ev E) error {
	if t.Shape == nil || t.Shape.Deliver == nil {
		return nil
	}
	return t.Shape.Deliver(l, ev)
}

// Helper is the listener aggregate of one observable. The zero value (nil)
// has no listeners.
type Helper[T, L, E any] interface {
	addInvalidation(l observe.InvalidationListener) Helper[T, L, E]
	addChange(l observe.ChangeListener[T]) Helper[T, L, E]
	addStructural(l L) Helper[T, L, E]
	removeInvalidation(l observe.InvalidationListener) Helper[T, L, E]
	removeChange(l observe.ChangeListener[T]) Helper[T, L, E]
	removeStructural(l L) Helper[T, L, E]
	fire() error
	fireStructural(ev E) error
}

func validate[T, L, E any](t *Target[T, L, E], l any) {
	if t == nil || t.Owner == nil {
		panic(observe.ErrNilObservable)
	}
	if l == nil {
		panic(observe.ErrNilListener)
	}
	// Reading the value validates lazy observables so their next
	// invalidation reaches the new listener.
	t.current()
}

// AddInvalidationListener registers l and returns the helper to keep.
func AddInvalidationListener[T, L, E any](h Helper[T, L, E], t *Target[T, L, E], l observe.InvalidationListener) Helper[T, L, E] {
	validate(t, l)
	if h == nil {
		return &single[T, L, E]{target: t, kind: kindInvalidation, inv: l}
	}
	return h.addInvalidation(l)
}

// AddChangeListener registers l and returns the helper to keep.
func AddChangeListener[T, L, E any](h Helper[T, L, E], t *Target[T, L, E], l observe.ChangeListener[T]) Helper[T, L, E] {
	validate(t, l)
	if h == nil {
		return &single[T, L, E]{target: t, kind: kindChange, chg: l, current: t.current()}
	}
	return h.addChange(l)
}

// AddStructuralListener registers l and returns the helper to keep.
func AddStructuralListener[T, L, E any](h Helper[T, L, E], t *Target[T, L, E], l L) Helper[T, L, E] {
	validate(t, any(l))
	if h == nil {
		return &single[T, L, E]{target: t, kind: kindStructural, col: l, current: t.current()}
	}
	return h.addStructural(l)
}

// RemoveInvalidationListener unregisters l and returns the helper to keep,
// nil once no listener is left.
func RemoveInvalidationListener[T, L, E any](h Helper[T, L, E], l observe.InvalidationListener) Helper[T, L, E] {
	if h == nil {
		return nil
	}
	return h.removeInvalidation(l)
}

// RemoveChangeListener unregisters l and returns the helper to keep.
func RemoveChangeListener[T, L, E any](h Helper[T, L, E], l observe.ChangeListener[T]) Helper[T, L, E] {
	if h == nil {
		return nil
	}
	return h.removeChange(l)
}

// RemoveStructuralListener unregisters l and returns the helper to keep.
func RemoveStructuralListener[T, L, E any](h Helper[T, L, E], l L) Helper[T, L, E] {
	if h == nil {
		return nil
	}
	return h.removeStructural(l)
}

// Fire notifies invalidation listeners, then change listeners if the value
// really changed, then structural listeners with a synthesised event.
func Fire[T, L, E any](h Helper[T, L, E]) error {
	if h == nil {
		return nil
	}
	return h.fire()
}

// FireStructural notifies every listener about an element level change of the
// current value. Change listeners see the same value as old and new.
func FireStructural[T, L, E any](h Helper[T, L, E], ev E) error {
	if h == nil {
		return nil
	}
	return h.fireStructural(ev)
}

// Count reports how many listeners of each kind h holds.
func Count[T, L, E any](h Helper[T, L, E]) (invalidation, change, structural int) {
	switch h := h.(type) {
	case *single[T, L, E]:
		switch h.kind {
		case kindInvalidation:
			return 1, 0, 0
		case kindChange:
			return 0, 1, 0
		default:
			return 0, 0, 1
		}
	case *generic[T, L, E]:
		return h.inv.size, h.chg.size, h.col.size
	}
	return 0, 0, 0
}
