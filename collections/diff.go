package collections

import (
	"cogentcore.org/core/base/ordmap"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/fxprops/observe"
)

// Entry is one key/value pair of an ordered map.
type Entry[K comparable, V any] = ordmap.KeyValue[K, V]

// maxDiffCells bounds the LCS table. Larger replacements are reported as a
// single replace of the differing middle.
const maxDiffCells = 1 << 22

// DiffLists describes how to turn oldItems into newItems as sub-changes in
// ascending order of new-list position. The common prefix and suffix are
// never reported. When both lists hold the same elements in a different
// order the result is one permutation. A nil eq uses observe.Equal.
func DiffLists[E any](oldItems, newItems []E, eq func(a, b E) bool) []ListSubChange[E] {
	if eq == nil {
		eq = observe.Equal[E]
	}

	prefix := 0
	for prefix < len(oldItems) && prefix < len(newItems) && eq(oldItems[prefix], newItems[prefix]) {
		prefix++
	}
	suffix := 0
	for suffix < len(oldItems)-prefix && suffix < len(newItems)-prefix &&
		eq(oldItems[len(oldItems)-1-suffix], newItems[len(newItems)-1-suffix]) {
		suffix++
	}
	om := oldItems[prefix : len(oldItems)-suffix]
	nm := newItems[prefix : len(newItems)-suffix]
	if len(om) == 0 && len(nm) == 0 {
		return nil
	}

	if len(om) == len(nm) {
		if perm, ok := permutation(om, nm, prefix, eq); ok {
			return []ListSubChange[E]{{From: prefix, To: prefix + len(om), Permutation: perm}}
		}
	}

	if len(om) == 0 || len(nm) == 0 || len(om)*len(nm) > maxDiffCells {
		return []ListSubChange[E]{{
			From:    prefix,
			To:      prefix + len(nm),
			Removed: clone(om),
			Added:   clone(nm),
		}}
	}

	// lcs[i*w+j] is the LCS length of om[i:] and nm[j:].
	w := len(nm) + 1
	lcs := make([]int32, (len(om)+1)*w)
	for i := len(om) - 1; i >= 0; i-- {
		for j := len(nm) - 1; j >= 0; j-- {
			switch {
			case eq(om[i], nm[j]):
				lcs[i*w+j] = lcs[(i+1)*w+j+1] + 1
			case lcs[(i+1)*w+j] >= lcs[i*w+j+1]:
				lcs[i*w+j] = lcs[(i+1)*w+j]
			default:
				lcs[i*w+j] = lcs[i*w+j+1]
			}
		}
	}

	var (
		subs []ListSubChange[E]
		cur  *ListSubChange[E]
	)
	flush := func() {
		if cur != nil {
			cur.To = cur.From + len(cur.Added)
			subs = append(subs, *cur)
			cur = nil
		}
	}
	i, j := 0, 0
	for i < len(om) || j < len(nm) {
		switch {
		case i < len(om) && j < len(nm) && eq(om[i], nm[j]):
			flush()
			i++
			j++
		case j == len(nm) || (i < len(om) && lcs[(i+1)*w+j] >= lcs[i*w+j+1]):
			if cur == nil {
				cur = &ListSubChange[E]{From: prefix + j}
			}
			cur.Removed = append(cur.Removed, om[i])
			i++
		default:
			if cur == nil {
				cur = &ListSubChange[E]{From: prefix + j}
			}
			cur.Added = append(cur.Added, nm[j])
			j++
		}
	}
	flush()
	return subs
}

// permutation matches every element of om to an unused equal element of nm.
// Indexes in the result are absolute, offset by base.
func permutation[E any](om, nm []E, base int, eq func(a, b E) bool) ([]int, bool) {
	used := make([]bool, len(nm))
	perm := make([]int, len(om))
	for i := range om {
		found := -1
		for j := range nm {
			if !used[j] && eq(om[i], nm[j]) {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		used[found] = true
		perm[i] = base + found
	}
	return perm, true
}

func clone[E any](s []E) []E {
	if len(s) == 0 {
		return nil
	}
	return append([]E(nil), s...)
}

// DiffSets reports every element of oldItems missing from newItems as a
// removal, followed by every element new to newItems as an addition.
func DiffSets[E comparable](oldItems, newItems []E) []SetChange[E] {
	oldSet := mapset.NewThreadUnsafeSet(oldItems...)
	newSet := mapset.NewThreadUnsafeSet(newItems...)

	var changes []SetChange[E]
	oldSet.Difference(newSet).Each(func(e E) bool {
		changes = append(changes, SetChange[E]{ElementRemoved: e, WasRemoved: true})
		return false
	})
	newSet.Difference(oldSet).Each(func(e E) bool {
		changes = append(changes, SetChange[E]{ElementAdded: e, WasAdded: true})
		return false
	})
	return changes
}

// DiffMaps reports removed keys, then added keys, then keys whose value
// differs under eq. Each group follows the entry order of its source. A key
// repeated in either slice counts once with its last value. A nil eq uses
// observe.Equal.
func DiffMaps[K comparable, V any](oldEntries, newEntries []Entry[K, V], eq func(a, b V) bool) []MapChange[K, V] {
	if eq == nil {
		eq = observe.Equal[V]
	}
	oldMap, newMap := entryMap(oldEntries), entryMap(newEntries)

	var removed, added, replaced []MapChange[K, V]
	for _, kv := range oldMap.Order {
		if _, ok := newMap.ValueByKeyTry(kv.Key); !ok {
			removed = append(removed, MapChange[K, V]{Key: kv.Key, ValueRemoved: kv.Value, WasRemoved: true})
		}
	}
	for _, kv := range newMap.Order {
		was, ok := oldMap.ValueByKeyTry(kv.Key)
		switch {
		case !ok:
			added = append(added, MapChange[K, V]{Key: kv.Key, ValueAdded: kv.Value, WasAdded: true})
		case !eq(was, kv.Value):
			replaced = append(replaced, MapChange[K, V]{
				Key:          kv.Key,
				ValueAdded:   kv.Value,
				ValueRemoved: was,
				WasAdded:     true,
				WasRemoved:   true,
			})
		}
	}
	return append(append(removed, added...), replaced...)
}

func entryMap[K comparable, V any](entries []Entry[K, V]) *ordmap.Map[K, V] {
	m := ordmap.New[K, V]()
	for _, kv := range entries {
		m.Add(kv.Key, kv.Value)
	}
	return m
}
