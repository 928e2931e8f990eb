package collections

import (
	"slices"

	"cogentcore.org/core/base/ordmap"

	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

// Map is an insertion ordered ObservableMap. Putting an equal value under an
// existing key is not a change.
type Map[K comparable, V any] struct {
	entries *ordmap.Map[K, V]
	eq      func(a, b V) bool
	helper  MapHelper[K, V]
	target  *MapTarget[K, V]
}

func NewMap[K comparable, V any](entries ...Entry[K, V]) *Map[K, V] {
	m := &Map[K, V]{entries: ordmap.New[K, V](), eq: observe.Equal[V]}
	for _, kv := range entries {
		m.entries.Add(kv.Key, kv.Value)
	}
	m.target = NewMapTarget[K, V](m, nil, nil)
	return m
}

func (m *Map[K, V]) AddInvalidationListener(l observe.InvalidationListener) {
	m.helper = helper.AddInvalidationListener(m.helper, m.target, l)
}

func (m *Map[K, V]) RemoveInvalidationListener(l observe.InvalidationListener) {
	m.helper = helper.RemoveInvalidationListener(m.helper, l)
}

func (m *Map[K, V]) AddMapChangeListener(l MapChangeListener[K, V]) {
	m.helper = helper.AddStructuralListener(m.helper, m.target, l)
}

func (m *Map[K, V]) RemoveMapChangeListener(l MapChangeListener[K, V]) {
	m.helper = helper.RemoveStructuralListener(m.helper, l)
}

func (m *Map[K, V]) Len() int {
	return m.entries.Len()
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	return m.entries.ValueByKeyTry(k)
}

func (m *Map[K, V]) Keys() []K {
	return m.entries.Keys()
}

// Entries returns a copy of the entries in insertion order.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	return slices.Clone(m.entries.Order)
}

func (m *Map[K, V]) Put(k K, v V) error {
	old, had := m.entries.ValueByKeyTry(k)
	if had && m.eq(old, v) {
		return nil
	}
	m.entries.Add(k, v)
	c := MapChange[K, V]{Source: m, Key: k, ValueAdded: v, WasAdded: true}
	if had {
		c.ValueRemoved, c.WasRemoved = old, true
	}
	return m.fire([]MapChange[K, V]{c})
}

func (m *Map[K, V]) Delete(k K) error {
	old, had := m.entries.ValueByKeyTry(k)
	if !had {
		return nil
	}
	m.entries.DeleteKey(k)
	return m.fire([]MapChange[K, V]{{Source: m, Key: k, ValueRemoved: old, WasRemoved: true}})
}

// SetAll replaces the contents, reporting removed, added and replaced keys.
func (m *Map[K, V]) SetAll(entries ...Entry[K, V]) error {
	changes := withMapSource(m, DiffMaps(m.entries.Order, entries, m.eq))
	m.entries.Reset()
	for _, kv := range entries {
		m.entries.Add(kv.Key, kv.Value)
	}
	return m.fire(changes)
}

func (m *Map[K, V]) Clear() error {
	return m.SetAll()
}

func (m *Map[K, V]) String() string {
	return m.entries.String()
}

func (m *Map[K, V]) fire(changes []MapChange[K, V]) error {
	if len(changes) == 0 {
		return nil
	}
	return helper.FireStructural(m.helper, changes)
}
