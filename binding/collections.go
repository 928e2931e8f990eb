package binding

import (
	"github.com/delaneyj/fxprops/collections"
	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

// ListBinding is a derived list. Replacing the computed list reports the
// difference to list change listeners, and element changes of the current list
// are forwarded with the binding as their source until the next invalidation.
type ListBinding[E any] struct {
	*core[collections.ObservableList[E], collections.ListChangeListener[E], *collections.ListChange[E]]
	attached  collections.ObservableList[E]
	forwarder collections.ListChangeListener[E]
}

func NewList[E any](compute func() (collections.ObservableList[E], error), deps ...observe.Observable) *ListBinding[E] {
	b := &ListBinding[E]{}
	b.core = newCore[collections.ObservableList[E], collections.ListChangeListener[E], *collections.ListChange[E]](func() (collections.ObservableList[E], error) {
		l, err := compute()
		if err != nil {
			return nil, err
		}
		b.attach(l)
		return l, nil
	})
	b.target = collections.NewListTarget[E](b, b, nil)
	b.release = b.detach
	b.forwarder = collections.OnListChanged(func(c *collections.ListChange[E]) error {
		return helper.FireStructural(b.helper, c.WithSource(b))
	})
	b.Bind(deps...)
	return b
}

func (b *ListBinding[E]) attach(l collections.ObservableList[E]) {
	b.detach()
	if l != nil {
		l.AddListChangeListener(b.forwarder)
		b.attached = l
	}
}

func (b *ListBinding[E]) detach() {
	if b.attached != nil {
		b.attached.RemoveListChangeListener(b.forwarder)
		b.attached = nil
	}
}

func (b *ListBinding[E]) AddListChangeListener(l collections.ListChangeListener[E]) {
	b.helper = helper.AddStructuralListener(b.helper, b.target, l)
}

func (b *ListBinding[E]) RemoveListChangeListener(l collections.ListChangeListener[E]) {
	b.helper = helper.RemoveStructuralListener(b.helper, l)
}

// Size is a binding on the length of the current list, nil counts as empty.
func (b *ListBinding[E]) Size() *Binding[int] {
	return New(func() (int, error) {
		l, err := b.Value()
		if err != nil || l == nil {
			return 0, err
		}
		return l.Len(), nil
	}, b)
}

func (b *ListBinding[E]) Empty() *Binding[bool] {
	return Computed1[int](b.Size(), func(n int) (bool, error) { return n == 0, nil })
}

// SetBinding is the set counterpart of ListBinding.
type SetBinding[E comparable] struct {
	*core[collections.ObservableSet[E], collections.SetChangeListener[E], []collections.SetChange[E]]
	attached  collections.ObservableSet[E]
	forwarder collections.SetChangeListener[E]
}

func NewSet[E comparable](compute func() (collections.ObservableSet[E], error), deps ...observe.Observable) *SetBinding[E] {
	b := &SetBinding[E]{}
	b.core = newCore[collections.ObservableSet[E], collections.SetChangeListener[E], []collections.SetChange[E]](func() (collections.ObservableSet[E], error) {
		s, err := compute()
		if err != nil {
			return nil, err
		}
		b.attach(s)
		return s, nil
	})
	b.target = collections.NewSetTarget[E](b, b)
	b.release = b.detach
	b.forwarder = collections.OnSetChanged(func(c collections.SetChange[E]) error {
		return helper.FireStructural(b.helper, collections.ForwardSetChanges[E](b, []collections.SetChange[E]{c}))
	})
	b.Bind(deps...)
	return b
}

func (b *SetBinding[E]) attach(s collections.ObservableSet[E]) {
	b.detach()
	if s != nil {
		s.AddSetChangeListener(b.forwarder)
		b.attached = s
	}
}

func (b *SetBinding[E]) detach() {
	if b.attached != nil {
		b.attached.RemoveSetChangeListener(b.forwarder)
		b.attached = nil
	}
}

func (b *SetBinding[E]) AddSetChangeListener(l collections.SetChangeListener[E]) {
	b.helper = helper.AddStructuralListener(b.helper, b.target, l)
}

func (b *SetBinding[E]) RemoveSetChangeListener(l collections.SetChangeListener[E]) {
	b.helper = helper.RemoveStructuralListener(b.helper, l)
}

func (b *SetBinding[E]) Size() *Binding[int] {
	return New(func() (int, error) {
		s, err := b.Value()
		if err != nil || s == nil {
			return 0, err
		}
		return s.Len(), nil
	}, b)
}

func (b *SetBinding[E]) Empty() *Binding[bool] {
	return Computed1[int](b.Size(), func(n int) (bool, error) { return n == 0, nil })
}

// MapBinding is the map counterpart of ListBinding.
type MapBinding[K comparable, V any] struct {
	*core[collections.ObservableMap[K, V], collections.MapChangeListener[K, V], []collections.MapChange[K, V]]
	attached  collections.ObservableMap[K, V]
	forwarder collections.MapChangeListener[K, V]
}

func NewMap[K comparable, V any](compute func() (collections.ObservableMap[K, V], error), deps ...observe.Observable) *MapBinding[K, V] {
	b := &MapBinding[K, V]{}
	b.core = newCore[collections.ObservableMap[K, V], collections.MapChangeListener[K, V], []collections.MapChange[K, V]](func() (collections.ObservableMap[K, V], error) {
		m, err := compute()
		if err != nil {
			return nil, err
		}
		b.attach(m)
		return m, nil
	})
	b.target = collections.NewMapTarget[K, V](b, b, nil)
	b.release = b.detach
	b.forwarder = collections.OnMapChanged(func(c collections.MapChange[K, V]) error {
		return helper.FireStructural(b.helper, collections.ForwardMapChanges[K, V](b, []collections.MapChange[K, V]{c}))
	})
	b.Bind(deps...)
	return b
}

func (b *MapBinding[K, V]) attach(m collections.ObservableMap[K, V]) {
	b.detach()
	if m != nil {
		m.AddMapChangeListener(b.forwarder)
		b.attached = m
	}
}

func (b *MapBinding[K, V]) detach() {
	if b.attached != nil {
		b.attached.RemoveMapChangeListener(b.forwarder)
		b.attached = nil
	}
}

func (b *MapBinding[K, V]) AddMapChangeListener(l collections.MapChangeListener[K, V]) {
	b.helper = helper.AddStructuralListener(b.helper, b.target, l)
}

func (b *MapBinding[K, V]) RemoveMapChangeListener(l collections.MapChangeListener[K, V]) {
	b.helper = helper.RemoveStructuralListener(b.helper, l)
}

func (b *MapBinding[K, V]) Size() *Binding[int] {
	return New(func() (int, error) {
		m, err := b.Value()
		if err != nil || m == nil {
			return 0, err
		}
		return m.Len(), nil
	}, b)
}

func (b *MapBinding[K, V]) Empty() *Binding[bool] {
	return Computed1[int](b.Size(), func(n int) (bool, error) { return n == 0, nil })
}
