package property

import (
	"errors"
	"fmt"

	"github.com/delaneyj/fxprops/bidi"
	"github.com/delaneyj/fxprops/collections"
	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

// ErrNoCollection is returned by element operations on a collection property
// that currently holds nil. A property whose bound source fails returns the
// source's error instead.
var ErrNoCollection = errors.New("property holds no collection")

func sameCollection[C any](a, b C) bool {
	return observe.Same(a, b)
}

// ListProperty holds an observable list. Element changes of the held list are
// reported to list change listeners with the property as source; replacing
// the list reports the difference between the old and the new contents.
//
// ListProperty is itself an ObservableList that delegates to the held list.
type ListProperty[E any] struct {
	*base[collections.ObservableList[E], collections.ListChangeListener[E], *collections.ListChange[E]]
	attached  collections.ObservableList[E]
	forwarder collections.ListChangeListener[E]
}

func NewList[E any](initial collections.ObservableList[E], opts ...Option) *ListProperty[E] {
	p := &ListProperty[E]{}
	p.base = newBase[collections.ObservableList[E], collections.ListChangeListener[E], *collections.ListChange[E]]("ListProperty", initial, sameCollection[collections.ObservableList[E]], opts)
	p.target = collections.NewListTarget[E](p, p, nil)
	p.forwarder = collections.OnListChanged(func(c *collections.ListChange[E]) error {
		return helper.FireStructural(p.helper, c.WithSource(p))
	})
	p.attach = p.attachList
	p.release = p.detach
	p.attachList(initial)
	return p
}

func (p *ListProperty[E]) attachList(l collections.ObservableList[E]) {
	p.detach()
	if l != nil {
		l.AddListChangeListener(p.forwarder)
		p.attached = l
	}
}

func (p *ListProperty[E]) detach() {
	if p.attached != nil {
		p.attached.RemoveListChangeListener(p.forwarder)
		p.attached = nil
	}
}

func (p *ListProperty[E]) Bind(source observe.ObservableValue[collections.ObservableList[E]]) error {
	return p.bind(p, source)
}

func (p *ListProperty[E]) BindBidirectional(other observe.WritableValue[collections.ObservableList[E]]) error {
	return bidi.Bind[collections.ObservableList[E]](p, other)
}

func (p *ListProperty[E]) UnbindBidirectional(other observe.WritableValue[collections.ObservableList[E]]) error {
	return bidi.Unbind[collections.ObservableList[E]](p, other)
}

func (p *ListProperty[E]) WeakRef() observe.WeakRef[collections.ObservableList[E]] {
	return weakRefOf[collections.ObservableList[E]](p)
}

func (p *ListProperty[E]) AddListChangeListener(l collections.ListChangeListener[E]) {
	p.helper = helper.AddStructuralListener(p.helper, p.target, l)
}

func (p *ListProperty[E]) RemoveListChangeListener(l collections.ListChangeListener[E]) {
	p.helper = helper.RemoveStructuralListener(p.helper, l)
}

// list returns the held list. A failed read and a nil list are both
// errors, wrapped with the property's description.
func (p *ListProperty[E]) list() (collections.ObservableList[E], error) {
	l, err := p.Value()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.describe(), err)
	}
	if l == nil {
		return nil, fmt.Errorf("%s: %w", p.describe(), ErrNoCollection)
	}
	return l, nil
}

// peekList serves the accessors that cannot report a failed read.
func (p *ListProperty[E]) peekList() collections.ObservableList[E] {
	l, err := p.Value()
	if err != nil {
		observe.Logger().Debug("list property read failed", "property", p.describe(), "err", err)
		return nil
	}
	return l
}

func (p *ListProperty[E]) Len() int {
	if l := p.peekList(); l != nil {
		return l.Len()
	}
	return 0
}

func (p *ListProperty[E]) At(i int) E {
	l, err := p.list()
	if err != nil {
		panic(err)
	}
	return l.At(i)
}

func (p *ListProperty[E]) All() []E {
	if l := p.peekList(); l != nil {
		return l.All()
	}
	return nil
}

func (p *ListProperty[E]) Append(items ...E) error {
	l, err := p.list()
	if err != nil {
		return err
	}
	return l.Append(items...)
}

func (p *ListProperty[E]) Insert(i int, items ...E) error {
	l, err := p.list()
	if err != nil {
		return err
	}
	return l.Insert(i, items...)
}

func (p *ListProperty[E]) SetAt(i int, e E) (E, error) {
	l, err := p.list()
	if err != nil {
		var zero E
		return zero, err
	}
	return l.SetAt(i, e)
}

func (p *ListProperty[E]) RemoveRange(from, to int) error {
	l, err := p.list()
	if err != nil {
		return err
	}
	return l.RemoveRange(from, to)
}

func (p *ListProperty[E]) SetAll(items ...E) error {
	l, err := p.list()
	if err != nil {
		return err
	}
	return l.SetAll(items...)
}

// SetProperty is the set counterpart of ListProperty.
type SetProperty[E comparable] struct {
	*base[collections.ObservableSet[E], collections.SetChangeListener[E], []collections.SetChange[E]]
	attached  collections.ObservableSet[E]
	forwarder collections.SetChangeListener[E]
}

func NewSet[E comparable](initial collections.ObservableSet[E], opts ...Option) *SetProperty[E] {
	p := &SetProperty[E]{}
	p.base = newBase[collections.ObservableSet[E], collections.SetChangeListener[E], []collections.SetChange[E]]("SetProperty", initial, sameCollection[collections.ObservableSet[E]], opts)
	p.target = collections.NewSetTarget[E](p, p)
	p.forwarder = collections.OnSetChanged(func(c collections.SetChange[E]) error {
		return helper.FireStructural(p.helper, collections.ForwardSetChanges[E](p, []collections.SetChange[E]{c}))
	})
	p.attach = p.attachSet
	p.release = p.detach
	p.attachSet(initial)
	return p
}

func (p *SetProperty[E]) attachSet(s collections.ObservableSet[E]) {
	p.detach()
	if s != nil {
		s.AddSetChangeListener(p.forwarder)
		p.attached = s
	}
}

func (p *SetProperty[E]) detach() {
	if p.attached != nil {
		p.attached.RemoveSetChangeListener(p.forwarder)
		p.attached = nil
	}
}

func (p *SetProperty[E]) Bind(source observe.ObservableValue[collections.ObservableSet[E]]) error {
	return p.bind(p, source)
}

func (p *SetProperty[E]) BindBidirectional(other observe.WritableValue[collections.ObservableSet[E]]) error {
	return bidi.Bind[collections.ObservableSet[E]](p, other)
}

func (p *SetProperty[E]) UnbindBidirectional(other observe.WritableValue[collections.ObservableSet[E]]) error {
	return bidi.Unbind[collections.ObservableSet[E]](p, other)
}

func (p *SetProperty[E]) WeakRef() observe.WeakRef[collections.ObservableSet[E]] {
	return weakRefOf[collections.ObservableSet[E]](p)
}

func (p *SetProperty[E]) AddSetChangeListener(l collections.SetChangeListener[E]) {
	p.helper = helper.AddStructuralListener(p.helper, p.target, l)
}

func (p *SetProperty[E]) RemoveSetChangeListener(l collections.SetChangeListener[E]) {
	p.helper = helper.RemoveStructuralListener(p.helper, l)
}

// set returns the held set. A failed read and a nil set are both
// errors, wrapped with the property's description.
func (p *SetProperty[E]) set() (collections.ObservableSet[E], error) {
	s, err := p.Value()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.describe(), err)
	}
	if s == nil {
		return nil, fmt.Errorf("%s: %w", p.describe(), ErrNoCollection)
	}
	return s, nil
}

// peekSet serves the accessors that cannot report a failed read.
func (p *SetProperty[E]) peekSet() collections.ObservableSet[E] {
	s, err := p.Value()
	if err != nil {
		observe.Logger().Debug("set property read failed", "property", p.describe(), "err", err)
		return nil
	}
	return s
}

func (p *SetProperty[E]) Len() int {
	if s := p.peekSet(); s != nil {
		return s.Len()
	}
	return 0
}

func (p *SetProperty[E]) Contains(e E) bool {
	s := p.peekSet()
	return s != nil && s.Contains(e)
}

func (p *SetProperty[E]) Items() []E {
	if s := p.peekSet(); s != nil {
		return s.Items()
	}
	return nil
}

func (p *SetProperty[E]) Add(items ...E) error {
	s, err := p.set()
	if err != nil {
		return err
	}
	return s.Add(items...)
}

func (p *SetProperty[E]) Remove(items ...E) error {
	s, err := p.set()
	if err != nil {
		return err
	}
	return s.Remove(items...)
}

func (p *SetProperty[E]) Clear() error {
	s, err := p.set()
	if err != nil {
		return err
	}
	return s.Clear()
}

// MapProperty is the map counterpart of ListProperty.
type MapProperty[K comparable, V any] struct {
	*base[collections.ObservableMap[K, V], collections.MapChangeListener[K, V], []collections.MapChange[K, V]]
	attached  collections.ObservableMap[K, V]
	forwarder collections.MapChangeListener[K, V]
}

func NewMap[K comparable, V any](initial collections.ObservableMap[K, V], opts ...Option) *MapProperty[K, V] {
	p := &MapProperty[K, V]{}
	p.base = newBase[collections.ObservableMap[K, V], collections.MapChangeListener[K, V], []collections.MapChange[K, V]]("MapProperty", initial, sameCollection[collections.ObservableMap[K, V]], opts)
	p.target = collections.NewMapTarget[K, V](p, p, nil)
	p.forwarder = collections.OnMapChanged(func(c collections.MapChange[K, V]) error {
		return helper.FireStructural(p.helper, collections.ForwardMapChanges[K, V](p, []collections.MapChange[K, V]{c}))
	})
	p.attach = p.attachMap
	p.release = p.detach
	p.attachMap(initial)
	return p
}

func (p *MapProperty[K, V]) attachMap(m collections.ObservableMap[K, V]) {
	p.detach()
	if m != nil {
		m.AddMapChangeListener(p.forwarder)
		p.attached = m
	}
}

func (p *MapProperty[K, V]) detach() {
	if p.attached != nil {
		p.attached.RemoveMapChangeListener(p.forwarder)
		p.attached = nil
	}
}

func (p *MapProperty[K, V]) Bind(source observe.ObservableValue[collections.ObservableMap[K, V]]) error {
	return p.bind(p, source)
}

func (p *MapProperty[K, V]) BindBidirectional(other observe.WritableValue[collections.ObservableMap[K, V]]) error {
	return bidi.Bind[collections.ObservableMap[K, V]](p, other)
}

func (p *MapProperty[K, V]) UnbindBidirectional(other observe.WritableValue[collections.ObservableMap[K, V]]) error {
	return bidi.Unbind[collections.ObservableMap[K, V]](p, other)
}

func (p *MapProperty[K, V]) WeakRef() observe.WeakRef[collections.ObservableMap[K, V]] {
	return weakRefOf[collections.ObservableMap[K, V]](p)
}

func (p *MapProperty[K, V]) AddMapChangeListener(l collections.MapChangeListener[K, V]) {
	p.helper = helper.AddStructuralListener(p.helper, p.target, l)
}

func (p *MapProperty[K, V]) RemoveMapChangeListener(l collections.MapChangeListener[K, V]) {
	p.helper = helper.RemoveStructuralListener(p.helper, l)
}

// entries returns the held map. A failed read and a nil map are both
// errors, wrapped with the property's description.
func (p *MapProperty[K, V]) entries() (collections.ObservableMap[K, V], error) {
	m, err := p.Value()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.describe(), err)
	}
	if m == nil {
		return nil, fmt.Errorf("%s: %w", p.describe(), ErrNoCollection)
	}
	return m, nil
}

// peekEntries serves the accessors that cannot report a failed read.
func (p *MapProperty[K, V]) peekEntries() collections.ObservableMap[K, V] {
	m, err := p.Value()
	if err != nil {
		observe.Logger().Debug("map property read failed", "property", p.describe(), "err", err)
		return nil
	}
	return m
}

func (p *MapProperty[K, V]) Len() int {
	if m := p.peekEntries(); m != nil {
		return m.Len()
	}
	return 0
}

func (p *MapProperty[K, V]) Get(k K) (V, bool) {
	if m := p.peekEntries(); m != nil {
		return m.Get(k)
	}
	var zero V
	return zero, false
}

func (p *MapProperty[K, V]) Keys() []K {
	if m := p.peekEntries(); m != nil {
		return m.Keys()
	}
	return nil
}

func (p *MapProperty[K, V]) Entries() []collections.Entry[K, V] {
	if m := p.peekEntries(); m != nil {
		return m.Entries()
	}
	return nil
}

func (p *MapProperty[K, V]) Put(k K, v V) error {
	m, err := p.entries()
	if err != nil {
		return err
	}
	return m.Put(k, v)
}

func (p *MapProperty[K, V]) Delete(k K) error {
	m, err := p.entries()
	if err != nil {
		return err
	}
	return m.Delete(k)
}

func (p *MapProperty[K, V]) Clear() error {
	m, err := p.entries()
	if err != nil {
		return err
	}
	return m.Clear()
}
