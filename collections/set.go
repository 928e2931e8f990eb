package collections

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

// Set is an ObservableSet over a thread unsafe golang-set. A mutation that
// touches several elements fires once, with one SetChange per element.
type Set[E comparable] struct {
	items  mapset.Set[E]
	helper SetHelper[E]
	target *SetTarget[E]
}

func NewSet[E comparable](items ...E) *Set[E] {
	s := &Set[E]{items: mapset.NewThreadUnsafeSet(items...)}
	s.target = NewSetTarget[E](s, nil)
	return s
}

func (s *Set[E]) AddInvalidationListener(l observe.InvalidationListener) {
	s.helper = helper.AddInvalidationListener(s.helper, s.target, l)
}

func (s *Set[E]) RemoveInvalidationListener(l observe.InvalidationListener) {
	s.helper = helper.RemoveInvalidationListener(s.helper, l)
}

func (s *Set[E]) AddSetChangeListener(l SetChangeListener[E]) {
	s.helper = helper.AddStructuralListener(s.helper, s.target, l)
}

func (s *Set[E]) RemoveSetChangeListener(l SetChangeListener[E]) {
	s.helper = helper.RemoveStructuralListener(s.helper, l)
}

func (s *Set[E]) Len() int {
	return s.items.Cardinality()
}

func (s *Set[E]) Contains(e E) bool {
	return s.items.Contains(e)
}

// Items returns the elements in no particular order.
func (s *Set[E]) Items() []E {
	return s.items.ToSlice()
}

func (s *Set[E]) Add(items ...E) error {
	var changes []SetChange[E]
	for _, e := range items {
		if s.items.Add(e) {
			changes = append(changes, SetChange[E]{Source: s, ElementAdded: e, WasAdded: true})
		}
	}
	return s.fire(changes)
}

func (s *Set[E]) Remove(items ...E) error {
	var changes []SetChange[E]
	for _, e := range items {
		if s.items.Contains(e) {
			s.items.Remove(e)
			changes = append(changes, SetChange[E]{Source: s, ElementRemoved: e, WasRemoved: true})
		}
	}
	return s.fire(changes)
}

// SetAll replaces the contents, reporting only elements that came or went.
func (s *Set[E]) SetAll(items ...E) error {
	changes := withSetSource(s, DiffSets(s.items.ToSlice(), items))
	s.items = mapset.NewThreadUnsafeSet(items...)
	return s.fire(changes)
}

func (s *Set[E]) Clear() error {
	return s.SetAll()
}

func (s *Set[E]) String() string {
	return fmt.Sprint(s.items)
}

func (s *Set[E]) fire(changes []SetChange[E]) error {
	if len(changes) == 0 {
		return nil
	}
	return helper.FireStructural(s.helper, changes)
}
