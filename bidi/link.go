// Package bidi keeps pairs of writable values equal in both directions.
//
// A link registers a change listener on each of its two cells. A change on
// either side is converted and written into the other while an updating flag
// suppresses the echo of that write. When the write fails the originating cell
// is restored to its previous value and the failure is returned as an
// *observe.SyncError; if the restore fails as well the link removes itself.
//
// Cells that implement observe.Referable are held weakly, so a link never
// keeps its cells alive. Once either cell is collected the listener left on
// the other reports itself stale and is dropped by that cell's helper.
package bidi

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/delaneyj/fxprops/observe"
)

// key identifies a link by the unordered identity pair of its cells.
type key struct {
	a, b uintptr
	hash uint64
}

func newKey(a, b any) (key, error) {
	ida, ok := observe.Identity(a)
	if !ok {
		return key{}, observe.ErrUnidentifiable
	}
	idb, ok := observe.Identity(b)
	if !ok {
		return key{}, observe.ErrUnidentifiable
	}
	if ida == idb {
		return key{}, observe.ErrSelfBinding
	}
	return key{a: ida, b: idb, hash: identityHash(ida) * identityHash(idb)}, nil
}

func identityHash(id uintptr) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	return xxhash.Sum64(buf[:])
}

func (k key) matches(o key) bool {
	if k.hash != o.hash {
		return false
	}
	return (k.a == o.a && k.b == o.b) || (k.a == o.b && k.b == o.a)
}

type keyed interface {
	linkKey() key
}

// side is the listener a link registers on one of its cells. Two sides are
// equal when they belong to links over the same pair, in either order, so a
// freshly built side can find and remove the registered one.
type side[T any] struct {
	key     key
	changed func(oldValue, newValue T) error
	stale   func() bool
}

func (s *side[T]) Changed(_ observe.ObservableValue[T], oldValue, newValue T) error {
	if s.changed == nil {
		return nil
	}
	return s.changed(oldValue, newValue)
}

func (s *side[T]) Equal(other any) bool {
	o, ok := other.(keyed)
	return ok && s.key.matches(o.linkKey())
}

func (s *side[T]) IsStale() bool {
	return s.stale != nil && s.stale()
}

func (s *side[T]) linkKey() key {
	return s.key
}

// Hash is the same for both sides of a link and for links over the same pair
// in either order.
func (s *side[T]) Hash() uint64 {
	return s.key.hash
}

func refOf[T any](c observe.WritableValue[T]) observe.WeakRef[T] {
	if r, ok := c.(observe.Referable[T]); ok {
		return r.WeakRef()
	}
	return func() observe.WritableValue[T] { return c }
}

// link keeps a and b equal through the two conversions.
type link[A, B any] struct {
	key      key
	a        observe.WeakRef[A]
	b        observe.WeakRef[B]
	aToB     func(A) (B, error)
	bToA     func(B) (A, error)
	updating bool
	onA      *side[A]
	onB      *side[B]
}

func newLink[A, B any](k key, a observe.WritableValue[A], b observe.WritableValue[B], aToB func(A) (B, error), bToA func(B) (A, error)) *link[A, B] {
	l := &link[A, B]{key: k, a: refOf(a), b: refOf(b), aToB: aToB, bToA: bToA}
	stale := func() bool { return l.a() == nil || l.b() == nil }
	l.onA = &side[A]{key: k, changed: l.fromA, stale: stale}
	l.onB = &side[B]{key: k, changed: l.fromB, stale: stale}
	return l
}

func (l *link[A, B]) cells() (observe.WritableValue[A], observe.WritableValue[B], bool) {
	a, b := l.a(), l.b()
	if a == nil || b == nil {
		if a != nil {
			a.RemoveChangeListener(l.onA)
		}
		if b != nil {
			b.RemoveChangeListener(l.onB)
		}
		return nil, nil, false
	}
	return a, b, true
}

func (l *link[A, B]) fromA(oldValue, newValue A) error {
	if l.updating {
		return nil
	}
	a, b, ok := l.cells()
	if !ok {
		return nil
	}
	l.updating = true
	defer func() { l.updating = false }()

	v, err := l.aToB(newValue)
	if err == nil {
		err = b.Set(v)
	}
	if err == nil {
		return nil
	}
	return l.rollback(a, b, a.Set(oldValue), err, a, b)
}

func (l *link[A, B]) fromB(oldValue, newValue B) error {
	if l.updating {
		return nil
	}
	a, b, ok := l.cells()
	if !ok {
		return nil
	}
	l.updating = true
	defer func() { l.updating = false }()

	v, err := l.bToA(newValue)
	if err == nil {
		err = a.Set(v)
	}
	if err == nil {
		return nil
	}
	return l.rollback(a, b, b.Set(oldValue), err, b, a)
}

func (l *link[A, B]) rollback(a observe.WritableValue[A], b observe.WritableValue[B], restoreErr, err error, source, target any) error {
	if restoreErr == nil {
		return &observe.SyncError{Source: source, Target: target, Err: err}
	}
	a.RemoveChangeListener(l.onA)
	b.RemoveChangeListener(l.onB)
	observe.Logger().Warn("bidirectional binding removed after a failed restore",
		"err", err,
		"restoreErr", restoreErr,
	)
	return &observe.SyncError{Source: source, Target: target, Err: err, RollbackErr: restoreErr, Unbound: true}
}
