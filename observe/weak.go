package observe

import "weak"

type weakInvalidation[B any] struct {
	ref weak.Pointer[B]
	fn  func(*B, Observable) error
}

// WeakInvalidationListener forwards invalidations to fn(target, o) without
// keeping target reachable. fn must not capture target, pass a method
// expression such as (*T).onInvalidated. Once target is collected the
// listener removes itself from whatever notifies it next.
func WeakInvalidationListener[B any](target *B, fn func(*B, Observable) error) InvalidationListener {
	return &weakInvalidation[B]{ref: weak.Make(target), fn: fn}
}

func (w *weakInvalidation[B]) Invalidated(o Observable) error {
	t := w.ref.Value()
	if t == nil {
		Logger().Debug("evicting stale invalidation listener")
		o.RemoveInvalidationListener(w)
		return nil
	}
	return w.fn(t, o)
}

func (w *weakInvalidation[B]) IsStale() bool {
	return w.ref.Value() == nil
}

type weakChange[T, B any] struct {
	ref weak.Pointer[B]
	fn  func(*B, ObservableValue[T], T, T) error
}

// WeakChangeListener is the change listener counterpart of
// WeakInvalidationListener.
func WeakChangeListener[T, B any](target *B, fn func(*B, ObservableValue[T], T, T) error) ChangeListener[T] {
	return &weakChange[T, B]{ref: weak.Make(target), fn: fn}
}

func (w *weakChange[T, B]) Changed(o ObservableValue[T], oldValue, newValue T) error {
	t := w.ref.Value()
	if t == nil {
		Logger().Debug("evicting stale change listener")
		o.RemoveChangeListener(w)
		return nil
	}
	return w.fn(t, o, oldValue, newValue)
}

func (w *weakChange[T, B]) IsStale() bool {
	return w.ref.Value() == nil
}

// Weak wraps an existing invalidation listener so that registering it does
// not keep it alive.
func Weak[L any, P interface {
	*L
	InvalidationListener
}](l P) InvalidationListener {
	return WeakInvalidationListener((*L)(l), func(t *L, o Observable) error {
		return P(t).Invalidated(o)
	})
}

// WeakChange wraps an existing change listener so that registering it does
// not keep it alive.
func WeakChange[T, L any, P interface {
	*L
	ChangeListener[T]
}](l P) ChangeListener[T] {
	return WeakChangeListener((*L)(l), func(t *L, o ObservableValue[T], oldValue, newValue T) error {
		return P(t).Changed(o, oldValue, newValue)
	})
}
