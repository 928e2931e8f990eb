package collections

import (
	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

// ObservableList is a list that reports element level changes.
type ObservableList[E any] interface {
	observe.Observable
	AddListChangeListener(l ListChangeListener[E])
	RemoveListChangeListener(l ListChangeListener[E])
	Len() int
	At(i int) E
	All() []E
	Append(items ...E) error
	Insert(i int, items ...E) error
	SetAt(i int, e E) (E, error)
	RemoveRange(from, to int) error
	SetAll(items ...E) error
}

// ObservableSet is a set that reports element level changes.
type ObservableSet[E comparable] interface {
	observe.Observable
	AddSetChangeListener(l SetChangeListener[E])
	RemoveSetChangeListener(l SetChangeListener[E])
	Len() int
	Contains(e E) bool
	Items() []E
	Add(items ...E) error
	Remove(items ...E) error
	Clear() error
}

// ObservableMap is an insertion ordered map that reports entry level changes.
type ObservableMap[K comparable, V any] interface {
	observe.Observable
	AddMapChangeListener(l MapChangeListener[K, V])
	RemoveMapChangeListener(l MapChangeListener[K, V])
	Len() int
	Get(k K) (V, bool)
	Keys() []K
	Entries() []Entry[K, V]
	Put(k K, v V) error
	Delete(k K) error
	Clear() error
}

type (
	// ListHelper is the listener aggregate of a list valued observable.
	ListHelper[E any] = helper.Helper[ObservableList[E], ListChangeListener[E], *ListChange[E]]
	// ListTarget describes a list valued observable to its helper.
	ListTarget[E any] = helper.Target[ObservableList[E], ListChangeListener[E], *ListChange[E]]

	SetHelper[E comparable] = helper.Helper[ObservableSet[E], SetChangeListener[E], []SetChange[E]]
	SetTarget[E comparable] = helper.Target[ObservableSet[E], SetChangeListener[E], []SetChange[E]]

	MapHelper[K comparable, V any] = helper.Helper[ObservableMap[K, V], MapChangeListener[K, V], []MapChange[K, V]]
	MapTarget[K comparable, V any] = helper.Target[ObservableMap[K, V], MapChangeListener[K, V], []MapChange[K, V]]
)

// NewListTarget describes owner, whose current list is read from v. Replacing
// the whole list synthesises a change from the difference of both lists. v
// may be nil for a plain list that only fires its own changes.
func NewListTarget[E any](owner observe.Observable, v observe.ObservableValue[ObservableList[E]], eq func(a, b E) bool) *ListTarget[E] {
	return &ListTarget[E]{
		Owner: owner,
		Value: v,
		Shape: &helper.Shape[ObservableList[E], ListChangeListener[E], *ListChange[E]]{
			Equal: sameCollection[ObservableList[E]],
			Diff: func(oldList, newList ObservableList[E]) (*ListChange[E], bool) {
				subs := DiffLists(listItems(oldList), listItems(newList), eq)
				if len(subs) == 0 {
					return nil, false
				}
				return NewListChange(owner, subs...), true
			},
			Deliver: func(l ListChangeListener[E], c *ListChange[E]) error {
				c.Reset()
				return l.OnChanged(c)
			},
		},
	}
}

// NewSetTarget is the set counterpart of NewListTarget.
func NewSetTarget[E comparable](owner observe.Observable, v observe.ObservableValue[ObservableSet[E]]) *SetTarget[E] {
	return &SetTarget[E]{
		Owner: owner,
		Value: v,
		Shape: &helper.Shape[ObservableSet[E], SetChangeListener[E], []SetChange[E]]{
			Equal: sameCollection[ObservableSet[E]],
			Diff: func(oldSet, newSet ObservableSet[E]) ([]SetChange[E], bool) {
				changes := withSetSource(owner, DiffSets(setItems(oldSet), setItems(newSet)))
				return changes, len(changes) > 0
			},
			Deliver: func(l SetChangeListener[E], changes []SetChange[E]) error {
				for _, c := range changes {
					if err := l.OnChanged(c); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// NewMapTarget is the map counterpart of NewListTarget.
func NewMapTarget[K comparable, V any](owner observe.Observable, v observe.ObservableValue[ObservableMap[K, V]], eq func(a, b V) bool) *MapTarget[K, V] {
	return &MapTarget[K, V]{
		Owner: owner,
		Value: v,
		Shape: &helper.Shape[ObservableMap[K, V], MapChangeListener[K, V], []MapChange[K, V]]{
			Equal: sameCollection[ObservableMap[K, V]],
			Diff: func(oldMap, newMap ObservableMap[K, V]) ([]MapChange[K, V], bool) {
				changes := withMapSource(owner, DiffMaps(mapEntries(oldMap), mapEntries(newMap), eq))
				return changes, len(changes) > 0
			},
			Deliver: func(l MapChangeListener[K, V], changes []MapChange[K, V]) error {
				for _, c := range changes {
					if err := l.OnChanged(c); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// Collections are compared by identity, element changes of the same instance
// arrive as structural events instead.
func sameCollection[C any](a, b C) bool {
	return observe.Same(a, b)
}

func listItems[E any](l ObservableList[E]) []E {
	if l == nil {
		return nil
	}
	return l.All()
}

func setItems[E comparable](s ObservableSet[E]) []E {
	if s == nil {
		return nil
	}
	return s.Items()
}

func mapEntries[K comparable, V any](m ObservableMap[K, V]) []Entry[K, V] {
	if m == nil {
		return nil
	}
	return m.Entries()
}

func withSetSource[E comparable](source observe.Observable, changes []SetChange[E]) []SetChange[E] {
	for i := range changes {
		changes[i].Source = source
	}
	return changes
}

func withMapSource[K comparable, V any](source observe.Observable, changes []MapChange[K, V]) []MapChange[K, V] {
	for i := range changes {
		changes[i].Source = source
	}
	return changes
}

// ForwardSetChanges re-sources element changes of a wrapped set to owner.
func ForwardSetChanges[E comparable](owner observe.Observable, changes []SetChange[E]) []SetChange[E] {
	out := make([]SetChange[E], len(changes))
	copy(out, changes)
	return withSetSource(owner, out)
}

// ForwardMapChanges re-sources element changes of a wrapped map to owner.
func ForwardMapChanges[K comparable, V any](owner observe.Observable, changes []MapChange[K, V]) []MapChange[K, V] {
	out := make([]MapChange[K, V], len(changes))
	copy(out, changes)
	return withMapSource(owner, out)
}
