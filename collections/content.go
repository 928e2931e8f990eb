package collections

import (
	"slices"

	"github.com/delaneyj/fxprops/observe"
)

// listContent replays the changes of a source list onto a target list. Two
// of them are equal when they share a target, so UnbindContent can find the
// registered one with a fresh value.
type listContent[E any] struct {
	target ObservableList[E]
}

func (c *listContent[E]) OnChanged(ch *ListChange[E]) error {
	for ch.Next() {
		if ch.WasPermutated() {
			items := c.target.All()
			moved := slices.Clone(items)
			for i := ch.From(); i < ch.To(); i++ {
				moved[ch.Permutation(i)] = items[i]
			}
			if err := c.target.SetAll(moved...); err != nil {
				return err
			}
			continue
		}
		if ch.WasRemoved() {
			if err := c.target.RemoveRange(ch.From(), ch.From()+ch.RemovedSize()); err != nil {
				return err
			}
		}
		if ch.WasAdded() {
			if err := c.target.Insert(ch.From(), ch.Added()...); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *listContent[E]) Equal(other any) bool {
	o, ok := other.(*listContent[E])
	return ok && observe.Same(c.target, o.target)
}

// BindContent makes target mirror source: it copies the current contents
// and then replays every change of source onto target. Source keeps target
// reachable until UnbindContent.
func BindContent[E any](target ObservableList[E], source ObservableList[E]) error {
	if target == nil || source == nil {
		return observe.ErrNilObservable
	}
	if observe.Same(target, source) {
		return observe.ErrSelfBinding
	}
	if err := target.SetAll(source.All()...); err != nil {
		return err
	}
	source.AddListChangeListener(&listContent[E]{target: target})
	return nil
}

// UnbindContent stops target from mirroring source. Its contents are kept.
func UnbindContent[E any](target ObservableList[E], source ObservableList[E]) {
	if target == nil || source == nil {
		return
	}
	source.RemoveListChangeListener(&listContent[E]{target: target})
}

type setContent[E comparable] struct {
	target ObservableSet[E]
}

func (c *setContent[E]) OnChanged(ch SetChange[E]) error {
	if ch.WasRemoved {
		if err := c.target.Remove(ch.ElementRemoved); err != nil {
			return err
		}
	}
	if ch.WasAdded {
		return c.target.Add(ch.ElementAdded)
	}
	return nil
}

func (c *setContent[E]) Equal(other any) bool {
	o, ok := other.(*setContent[E])
	return ok && observe.Same(c.target, o.target)
}

// BindSetContent is BindContent for sets.
func BindSetContent[E comparable](target ObservableSet[E], source ObservableSet[E]) error {
	if target == nil || source == nil {
		return observe.ErrNilObservable
	}
	if observe.Same(target, source) {
		return observe.ErrSelfBinding
	}
	if err := target.Clear(); err != nil {
		return err
	}
	if err := target.Add(source.Items()...); err != nil {
		return err
	}
	source.AddSetChangeListener(&setContent[E]{target: target})
	return nil
}

func UnbindSetContent[E comparable](target ObservableSet[E], source ObservableSet[E]) {
	if target == nil || source == nil {
		return
	}
	source.RemoveSetChangeListener(&setContent[E]{target: target})
}

type mapContent[K comparable, V any] struct {
	target ObservableMap[K, V]
}

func (c *mapContent[K, V]) OnChanged(ch MapChange[K, V]) error {
	if ch.WasAdded {
		return c.target.Put(ch.Key, ch.ValueAdded)
	}
	return c.target.Delete(ch.Key)
}

func (c *mapContent[K, V]) Equal(other any) bool {
	o, ok := other.(*mapContent[K, V])
	return ok && observe.Same(c.target, o.target)
}

// BindMapContent is BindContent for maps.
func BindMapContent[K comparable, V any](target ObservableMap[K, V], source ObservableMap[K, V]) error {
	if target == nil || source == nil {
		return observe.ErrNilObservable
	}
	if observe.Same(target, source) {
		return observe.ErrSelfBinding
	}
	if err := target.Clear(); err != nil {
		return err
	}
	for _, kv := range source.Entries() {
		if err := target.Put(kv.Key, kv.Value); err != nil {
			return err
		}
	}
	source.AddMapChangeListener(&mapContent[K, V]{target: target})
	return nil
}

func UnbindMapContent[K comparable, V any](target ObservableMap[K, V], source ObservableMap[K, V]) {
	if target == nil || source == nil {
		return
	}
	source.RemoveMapChangeListener(&mapContent[K, V]{target: target})
}
