package helper

import "github.com/delaneyj/fxprops/observe"

type listenerKind uint8

const (
	kindInvalidation listenerKind = iota
	kindChange
	kindStructural
)

// single holds exactly one listener. It is never mutated, adding a second
// listener promotes to a new generic helper.
type single[T, L, E any] struct {
	target  *Target[T, L, E]
	kind    listenerKind
	inv     observe.InvalidationListener
	chg     observe.ChangeListener[T]
	col     L
	current T
}

func (s *single[T, L, E]) promote() *generic[T, L, E] {
	g := &generic[T, L, E]{target: s.target}
	switch s.kind {
	case kindInvalidation:
		g.inv.add(s.inv, false)
	case kindChange:
		g.chg.add(s.chg, false)
	case kindStructural:
		g.col.add(s.col, false)
	}
	return g
}

func (s *single[T, L, E]) addInvalidation(l observe.InvalidationListener) Helper[T, L, E] {
	g := s.promote()
	g.inv.add(l, false)
	g.refresh()
	return g
}

func (s *single[T, L, E]) addChange(l observe.ChangeListener[T]) Helper[T, L, E] {
	g := s.promote()
	g.chg.add(l, false)
	g.refresh()
	return g
}

func (s *single[T, L, E]) addStructural(l L) Helper[T, L, E] {
	g := s.promote()
	g.col.add(l, false)
	g.refresh()
	return g
}

func (s *single[T, L, E]) removeInvalidation(l observe.InvalidationListener) Helper[T, L, E] {
	if s.kind == kindInvalidation && observe.Same(l, s.inv) {
		return nil
	}
	return s
}

func (s *single[T, L, E]) removeChange(l observe.ChangeListener[T]) Helper[T, L, E] {
	if s.kind == kindChange && observe.Same(l, s.chg) {
		return nil
	}
	return s
}

func (s *single[T, L, E]) removeStructural(l L) Helper[T, L, E] {
	if s.kind == kindStructural && observe.Same(l, s.col) {
		return nil
	}
	return s
}

func (s *single[T, L, E]) fire() error {
	t := s.target
	if s.kind == kindInvalidation {
		return s.inv.Invalidated(t.Owner)
	}

	oldValue := s.current
	newValue, err := t.Value.Value()
	if err != nil {
		return err
	}
	s.current = newValue
	if t.equal(oldValue, newValue) {
		return nil
	}
	if s.kind == kindChange {
		return s.chg.Changed(t.Value, oldValue, newValue)
	}
	ev, ok := t.diff(oldValue, newValue)
	if !ok {
		return nil
	}
	return t.deliver(s.col, ev)
}

func (s *single[T, L, E]) fireStructural(ev E) error {
	switch s.kind {
	case kindInvalidation:
		return s.inv.Invalidated(s.target.Owner)
	case kindChange:
		return s.chg.Changed(s.target.Value, s.current, s.current)
	default:
		return s.target.deliver(s.col, ev)
	}
}

// generic holds two or more listeners in any mix of kinds.
type generic[T, L, E any] struct {
	target  *Target[T, L, E]
	inv     listeners[observe.InvalidationListener]
	chg     listeners[observe.ChangeListener[T]]
	col     listeners[L]
	locked  bool
	current T
}

func (g *generic[T, L, E]) tracksValue() bool {
	return g.chg.size > 0 || g.col.size > 0
}

// refresh snapshots the current value when the first value-consuming
// listener arrives, so the next fire computes a correct delta.
func (g *generic[T, L, E]) refresh() {
	if g.tracksValue() {
		g.current = g.target.current()
	}
}

func (g *generic[T, L, E]) addInvalidation(l observe.InvalidationListener) Helper[T, L, E] {
	g.inv.add(l, g.locked)
	return g
}

func (g *generic[T, L, E]) addChange(l observe.ChangeListener[T]) Helper[T, L, E] {
	fresh := !g.tracksValue()
	g.chg.add(l, g.locked)
	if fresh {
		g.refresh()
	}
	return g
}

func (g *generic[T, L, E]) addStructural(l L) Helper[T, L, E] {
	fresh := !g.tracksValue()
	g.col.add(l, g.locked)
	if fresh {
		g.refresh()
	}
	return g
}

func (g *generic[T, L, E]) removeInvalidation(l observe.InvalidationListener) Helper[T, L, E] {
	i := g.inv.indexOf(l)
	if i < 0 {
		return g
	}
	g.inv.removeAt(i, g.locked)
	return g.collapse()
}

func (g *generic[T, L, E]) removeChange(l observe.ChangeListener[T]) Helper[T, L, E] {
	i := g.chg.indexOf(l)
	if i < 0 {
		return g
	}
	g.chg.removeAt(i, g.locked)
	return g.collapse()
}

func (g *generic[T, L, E]) removeStructural(l L) Helper[T, L, E] {
	i := g.col.indexOf(l)
	if i < 0 {
		return g
	}
	g.col.removeAt(i, g.locked)
	return g.collapse()
}

// collapse drops back to a single or empty helper once at most one listener
// is left.
func (g *generic[T, L, E]) collapse() Helper[T, L, E] {
	switch g.inv.size + g.chg.size + g.col.size {
	case 0:
		return nil
	case 1:
		s := &single[T, L, E]{target: g.target, current: g.current}
		switch {
		case g.inv.size == 1:
			s.kind, s.inv = kindInvalidation, g.inv.first()
		case g.chg.size == 1:
			s.kind, s.chg = kindChange, g.chg.first()
		default:
			s.kind, s.col = kindStructural, g.col.first()
		}
		return s
	default:
		return g
	}
}

func (g *generic[T, L, E]) lock() func() {
	prev := g.locked
	g.locked = true
	return func() { g.locked = prev }
}

func (g *generic[T, L, E]) fire() error {
	inv, chg, col := g.inv.snapshot(), g.chg.snapshot(), g.col.snapshot()
	t := g.target
	defer g.lock()()

	for _, l := range inv {
		if err := l.Invalidated(t.Owner); err != nil {
			return err
		}
	}
	if len(chg) == 0 && len(col) == 0 {
		return nil
	}

	oldValue := g.current
	newValue, err := t.Value.Value()
	if err != nil {
		return err
	}
	g.current = newValue
	if t.equal(oldValue, newValue) {
		return nil
	}
	for _, l := range chg {
		if err := l.Changed(t.Value, oldValue, newValue); err != nil {
			return err
		}
	}
	if len(col) == 0 {
		return nil
	}
	ev, ok := t.diff(oldValue, newValue)
	if !ok {
		return nil
	}
	for _, l := range col {
		if err := t.deliver(l, ev); err != nil {
			return err
		}
	}
	return nil
}

func (g *generic[T, L, E]) fireStructural(ev E) error {
	inv, chg, col := g.inv.snapshot(), g.chg.snapshot(), g.col.snapshot()
	t := g.target
	defer g.lock()()

	for _, l := range inv {
		if err := l.Invalidated(t.Owner); err != nil {
			return err
		}
	}
	for _, l := range chg {
		if err := l.Changed(t.Value, g.current, g.current); err != nil {
			return err
		}
	}
	for _, l := range col {
		if err := t.deliver(l, ev); err != nil {
			return err
		}
	}
	return nil
}
