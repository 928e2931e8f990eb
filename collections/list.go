package collections

import (
	"errors"
	"fmt"
	"slices"

	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// List is a slice backed ObservableList. Every mutation fires invalidation
// listeners and then list change listeners with a change describing it.
type List[E any] struct {
	items  []E
	helper ListHelper[E]
	target *ListTarget[E]
}

// NewList returns a list holding a copy of items.
func NewList[E any](items ...E) *List[E] {
	l := &List[E]{items: slices.Clone(items)}
	l.target = NewListTarget[E](l, nil, nil)
	return l
}

func (l *List[E]) AddInvalidationListener(x observe.InvalidationListener) {
	l.helper = helper.AddInvalidationListener(l.helper, l.target, x)
}

func (l *List[E]) RemoveInvalidationListener(x observe.InvalidationListener) {
	l.helper = helper.RemoveInvalidationListener(l.helper, x)
}

func (l *List[E]) AddListChangeListener(x ListChangeListener[E]) {
	l.helper = helper.AddStructuralListener(l.helper, l.target, x)
}

func (l *List[E]) RemoveListChangeListener(x ListChangeListener[E]) {
	l.helper = helper.RemoveStructuralListener(l.helper, x)
}

func (l *List[E]) Len() int {
	return len(l.items)
}

// At panics on an out of range index, like indexing a slice.
func (l *List[E]) At(i int) E {
	return l.items[i]
}

// All returns a copy of the elements.
func (l *List[E]) All() []E {
	return slices.Clone(l.items)
}

// IndexOf returns the first index holding an element equal to e, or -1.
func (l *List[E]) IndexOf(e E) int {
	return slices.IndexFunc(l.items, func(x E) bool { return observe.Equal(x, e) })
}

func (l *List[E]) Append(items ...E) error {
	return l.Insert(len(l.items), items...)
}

func (l *List[E]) Insert(i int, items ...E) error {
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("insert at %d into list of %d: %w", i, len(l.items), ErrIndexOutOfRange)
	}
	if len(items) == 0 {
		return nil
	}
	added := slices.Clone(items)
	l.items = slices.Insert(l.items, i, added...)
	return l.fire(ListSubChange[E]{From: i, To: i + len(added), Added: added})
}

// SetAt replaces the element at i and returns the previous one.
func (l *List[E]) SetAt(i int, e E) (E, error) {
	var old E
	if i < 0 || i >= len(l.items) {
		return old, fmt.Errorf("set at %d in list of %d: %w", i, len(l.items), ErrIndexOutOfRange)
	}
	old = l.items[i]
	l.items[i] = e
	return old, l.fire(ListSubChange[E]{From: i, To: i + 1, Removed: []E{old}, Added: []E{e}})
}

func (l *List[E]) RemoveAt(i int) (E, error) {
	var old E
	if i < 0 || i >= len(l.items) {
		return old, fmt.Errorf("remove at %d from list of %d: %w", i, len(l.items), ErrIndexOutOfRange)
	}
	old = l.items[i]
	return old, l.RemoveRange(i, i+1)
}

// Remove drops the first element equal to e and reports whether one was found.
func (l *List[E]) Remove(e E) (bool, error) {
	i := l.IndexOf(e)
	if i < 0 {
		return false, nil
	}
	_, err := l.RemoveAt(i)
	return true, err
}

// RemoveRange drops the elements in [from, to).
func (l *List[E]) RemoveRange(from, to int) error {
	if from < 0 || to > len(l.items) || from > to {
		return fmt.Errorf("remove [%d, %d) from list of %d: %w", from, to, len(l.items), ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}
	removed := slices.Clone(l.items[from:to])
	l.items = slices.Delete(l.items, from, to)
	return l.fire(ListSubChange[E]{From: from, To: from, Removed: removed})
}

// SetAll replaces the contents and reports the smallest change it can find
// between the old and new contents.
func (l *List[E]) SetAll(items ...E) error {
	subs := DiffLists(l.items, items, nil)
	l.items = slices.Clone(items)
	if len(subs) == 0 {
		return nil
	}
	return l.fire(subs...)
}

func (l *List[E]) Clear() error {
	return l.SetAll()
}

// SortFunc stably sorts the list and reports the reordering as a permutation.
func (l *List[E]) SortFunc(cmp func(a, b E) int) error {
	order := make([]int, len(l.items))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp(l.items[a], l.items[b]) })

	sorted := make([]E, len(l.items))
	perm := make([]int, len(l.items))
	moved := false
	for to, from := range order {
		sorted[to] = l.items[from]
		perm[from] = to
		moved = moved || from != to
	}
	if !moved {
		return nil
	}
	l.items = sorted
	return l.fire(ListSubChange[E]{From: 0, To: len(sorted), Permutation: perm})
}

func (l *List[E]) String() string {
	return fmt.Sprint(l.items)
}

func (l *List[E]) fire(subs ...ListSubChange[E]) error {
	return helper.FireStructural(l.helper, NewListChange[E](l, subs...))
}
