package helper

import "github.com/delaneyj/fxprops/observe"

// listeners is a growable array of one listener kind. The backing array is
// shared with any in-flight dispatch snapshot, so while the owning helper is
// locked every mutation copies first; unlocked mutations happen in place and
// clear vacated slots so removed listeners can be collected.
type listeners[L any] struct {
	items []L
	size  int
}

func (ls *listeners[L]) add(l L, locked bool) {
	if ls.items == nil {
		ls.items = []L{l}
		ls.size = 1
		return
	}

	oldCap := len(ls.items)
	if locked {
		newCap := oldCap
		if ls.size >= oldCap {
			newCap = grow(oldCap)
		}
		fresh := make([]L, newCap)
		copy(fresh, ls.items[:ls.size])
		ls.items = fresh
	} else if ls.size == oldCap {
		ls.size = trim(ls.items, ls.size)
		if ls.size == oldCap {
			fresh := make([]L, grow(oldCap))
			copy(fresh, ls.items)
			ls.items = fresh
		}
	}
	ls.items[ls.size] = l
	ls.size++
}

func (ls *listeners[L]) indexOf(l L) int {
	for i := 0; i < ls.size; i++ {
		if observe.Same(l, ls.items[i]) {
			return i
		}
	}
	return -1
}

func (ls *listeners[L]) removeAt(i int, locked bool) {
	if locked {
		fresh := make([]L, len(ls.items))
		copy(fresh, ls.items[:i])
		copy(fresh[i:], ls.items[i+1:ls.size])
		ls.items = fresh
		ls.size--
		return
	}
	copy(ls.items[i:], ls.items[i+1:ls.size])
	ls.size--
	var zero L
	ls.items[ls.size] = zero
}

func (ls *listeners[L]) first() L {
	return ls.items[0]
}

// snapshot returns the live prefix. It stays valid for the whole dispatch
// because mutations during a locked dispatch never touch this array.
func (ls *listeners[L]) snapshot() []L {
	return ls.items[:ls.size]
}

func grow(n int) int {
	return (n*3)/2 + 1
}

// trim shifts live listeners down over stale weak ones and returns the new
// size. Cleared tail slots let the collector reclaim the stale wrappers.
func trim[L any](items []L, size int) int {
	index := 0
	for ; index < size; index++ {
		if observe.IsStale(items[index]) {
			break
		}
	}
	if index == size {
		return size
	}
	for src := index + 1; src < size; src++ {
		if !observe.IsStale(items[src]) {
			items[index] = items[src]
			index++
		}
	}
	var zero L
	for i := index; i < size; i++ {
		items[i] = zero
	}
	return index
}
