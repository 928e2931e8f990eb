// Package collections holds the structural change events of observable
// lists, sets and maps, the diffing that synthesises them when a whole
// collection is replaced, and small observable collection implementations.
package collections

import (
	"fmt"

	"github.com/delaneyj/fxprops/observe"
)

// ListSubChange is one contiguous piece of a list change. From and To are
// indexes in the list after this piece was applied; Removed were at From
// before it. A permutation has no adds or removes and maps every old index
// in [From, To) to its new index.
type ListSubChange[E any] struct {
	From        int
	To          int
	Removed     []E
	Added       []E
	Permutation []int
}

// ListChange reports one or more sub-changes of a list. It is a cursor:
// call Next before reading the accessors.
//
//	for c.Next() {
//	    if c.WasAdded() { ... c.Added() ... }
//	}
type ListChange[E any] struct {
	Source observe.Observable
	subs   []ListSubChange[E]
	cursor int
}

// NewListChange returns a change positioned before its first sub-change.
func NewListChange[E any](source observe.Observable, subs ...ListSubChange[E]) *ListChange[E] {
	return &ListChange[E]{Source: source, subs: subs, cursor: -1}
}

// WithSource returns a copy of c reporting source as its origin. Properties
// and bindings use it to forward element changes of the list they wrap.
func (c *ListChange[E]) WithSource(source observe.Observable) *ListChange[E] {
	return &ListChange[E]{Source: source, subs: c.subs, cursor: -1}
}

// Next moves to the next sub-change.
func (c *ListChange[E]) Next() bool {
	if c.cursor < len(c.subs) {
		c.cursor++
	}
	return c.cursor < len(c.subs)
}

// Reset rewinds the cursor so the change can be walked again.
func (c *ListChange[E]) Reset() {
	c.cursor = -1
}

// SubChanges returns every sub-change regardless of the cursor.
func (c *ListChange[E]) SubChanges() []ListSubChange[E] {
	return c.subs
}

func (c *ListChange[E]) current() *ListSubChange[E] {
	if c.cursor < 0 || c.cursor >= len(c.subs) {
		panic("invalid change state: Next must return true before inspecting the change")
	}
	return &c.subs[c.cursor]
}

func (c *ListChange[E]) From() int { return c.current().From }

func (c *ListChange[E]) To() int { return c.current().To }

func (c *ListChange[E]) Removed() []E { return c.current().Removed }

func (c *ListChange[E]) Added() []E { return c.current().Added }

func (c *ListChange[E]) RemovedSize() int { return len(c.current().Removed) }

func (c *ListChange[E]) AddedSize() int { return len(c.current().Added) }

func (c *ListChange[E]) WasAdded() bool {
	return len(c.current().Added) > 0
}

func (c *ListChange[E]) WasRemoved() bool {
	return len(c.current().Removed) > 0
}

func (c *ListChange[E]) WasReplaced() bool {
	return c.WasAdded() && c.WasRemoved()
}

func (c *ListChange[E]) WasPermutated() bool {
	return len(c.current().Permutation) > 0
}

// Permutation returns the new index of the element that was at old index i.
func (c *ListChange[E]) Permutation(i int) int {
	sub := c.current()
	if len(sub.Permutation) == 0 {
		panic("not a permutation change")
	}
	if i < sub.From || i >= sub.To {
		panic(fmt.Sprintf("index %d outside of permutation range [%d, %d)", i, sub.From, sub.To))
	}
	return sub.Permutation[i-sub.From]
}

func (c *ListChange[E]) String() string {
	return fmt.Sprintf("ListChange%v", c.subs)
}

// SetChange is one element added to or removed from a set.
type SetChange[E comparable] struct {
	Source         observe.Observable
	ElementAdded   E
	ElementRemoved E
	WasAdded       bool
	WasRemoved     bool
}

// MapChange is one key added, removed or replaced in a map. A replacement
// sets both WasAdded and WasRemoved.
type MapChange[K comparable, V any] struct {
	Source       observe.Observable
	Key          K
	ValueAdded   V
	ValueRemoved V
	WasAdded     bool
	WasRemoved   bool
}

// ListChangeListener receives element level changes of a list.
type ListChangeListener[E any] interface {
	OnChanged(c *ListChange[E]) error
}

// SetChangeListener receives element level changes of a set.
type SetChangeListener[E comparable] interface {
	OnChanged(c SetChange[E]) error
}

// MapChangeListener receives entry level changes of a map.
type MapChangeListener[K comparable, V any] interface {
	OnChanged(c MapChange[K, V]) error
}

type listFunc[E any] struct{ fn func(*ListChange[E]) error }

func (f *listFunc[E]) OnChanged(c *ListChange[E]) error { return f.fn(c) }

// OnListChanged wraps fn as a ListChangeListener.
func OnListChanged[E any](fn func(c *ListChange[E]) error) ListChangeListener[E] {
	return &listFunc[E]{fn: fn}
}

type setFunc[E comparable] struct{ fn func(SetChange[E]) error }

func (f *setFunc[E]) OnChanged(c SetChange[E]) error { return f.fn(c) }

// OnSetChanged wraps fn as a SetChangeListener.
func OnSetChanged[E comparable](fn func(c SetChange[E]) error) SetChangeListener[E] {
	return &setFunc[E]{fn: fn}
}

type mapFunc[K comparable, V any] struct{ fn func(MapChange[K, V]) error }

func (f *mapFunc[K, V]) OnChanged(c MapChange[K, V]) error { return f.fn(c) }

// OnMapChanged wraps fn as a MapChangeListener.
func OnMapChanged[K comparable, V any](fn func(c MapChange[K, V]) error) MapChangeListener[K, V] {
	return &mapFunc[K, V]{fn: fn}
}
