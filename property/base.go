// Package property provides settable observable cells.
//
// A property holds a value until it is bound to another observable value,
// after which it mirrors that value and rejects Set. Like bindings,
// properties are lazy: Set marks the property invalid and notifies listeners
// only on a valid to invalid transition, and reading the value makes it valid
// again.
package property

import (
	"fmt"
	"strings"

	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

type settings struct {
	name        string
	bean        any
	confine     bool
	invalidated func()
	validator   any
	equal       any
}

// Option configures a property at construction.
type Option func(*settings)

// WithName names the property. The name only shows up in String.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithBean records the object that owns the property.
func WithBean(bean any) Option {
	return func(s *settings) { s.bean = bean }
}

// WithConfinement pins the property to the goroutine that creates it. Writes
// and (un)binding from any other goroutine fail with *observe.ConfinementError.
func WithConfinement() Option {
	return func(s *settings) { s.confine = true }
}

// WithInvalidated installs a hook that runs on every valid to invalid
// transition, before listeners are notified.
func WithInvalidated(fn func()) Option {
	return func(s *settings) { s.invalidated = fn }
}

// WithValidator rejects writes for which fn returns an error. fn must take
// the property's value type.
func WithValidator[T any](fn func(T) error) Option {
	return func(s *settings) { s.validator = fn }
}

// WithEqual decides when a write is a change. fn must take the property's
// value type.
func WithEqual[T any](fn func(a, b T) bool) Option {
	return func(s *settings) { s.equal = fn }
}

// base is the cell state shared by scalar and collection properties.
type base[T, L, E any] struct {
	label       string
	name        string
	bean        any
	value       T
	valid       bool
	source      observe.ObservableValue[T]
	listener    observe.InvalidationListener
	helper      helper.Helper[T, L, E]
	target      *helper.Target[T, L, E]
	confine     *observe.Confinement
	validate    func(T) error
	equal       func(a, b T) bool
	invalidated func()
	attach      func(T)
	release     func()
}

func newBase[T, L, E any](label string, initial T, equal func(a, b T) bool, opts []Option) *base[T, L, E] {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	b := &base[T, L, E]{
		label:       label,
		name:        s.name,
		bean:        s.bean,
		value:       initial,
		valid:       true,
		equal:       equal,
		invalidated: s.invalidated,
	}
	if s.confine {
		b.confine = observe.Confine()
	}
	if s.validator != nil {
		fn, ok := s.validator.(func(T) error)
		if !ok {
			panic(fmt.Sprintf("property: validator %T does not take %s values", s.validator, typeName[T]()))
		}
		b.validate = fn
	}
	if s.equal != nil {
		fn, ok := s.equal.(func(a, b T) bool)
		if !ok {
			panic(fmt.Sprintf("property: equality %T does not take %s values", s.equal, typeName[T]()))
		}
		b.equal = fn
	}
	b.listener = observe.WeakInvalidationListener(b, (*base[T, L, E]).sourceInvalidated)
	return b
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

func (b *base[T, L, E]) sourceInvalidated(observe.Observable) error {
	return b.markInvalid()
}

func (b *base[T, L, E]) AddInvalidationListener(l observe.InvalidationListener) {
	b.helper = helper.AddInvalidationListener(b.helper, b.target, l)
}

func (b *base[T, L, E]) RemoveInvalidationListener(l observe.InvalidationListener) {
	b.helper = helper.RemoveInvalidationListener(b.helper, l)
}

func (b *base[T, L, E]) AddChangeListener(l observe.ChangeListener[T]) {
	b.helper = helper.AddChangeListener(b.helper, b.target, l)
}

func (b *base[T, L, E]) RemoveChangeListener(l observe.ChangeListener[T]) {
	b.helper = helper.RemoveChangeListener(b.helper, l)
}

// Value returns the current value and marks the property valid. A bound
// property reads its source when it was invalid; errors from the source are
// returned and leave the property invalid.
func (b *base[T, L, E]) Value() (T, error) {
	if !b.valid {
		if b.source != nil {
			v, err := b.source.Value()
			if err != nil {
				var zero T
				return zero, err
			}
			b.value = v
		}
		b.valid = true
		if b.attach != nil {
			b.attach(b.value)
		}
	}
	return b.value, nil
}

// Get is Value for callers that treat a failing source as fatal.
func (b *base[T, L, E]) Get() T {
	v, err := b.Value()
	if err != nil {
		panic(err)
	}
	return v
}

// Set stores v. It fails with observe.ErrBound while the property is bound and
// with the validator's error when v is rejected. Writing an equal value does
// nothing. Listener errors are returned after the value was stored.
func (b *base[T, L, E]) Set(v T) error {
	if err := b.confine.Check("set " + b.describe()); err != nil {
		return err
	}
	if b.source != nil {
		return fmt.Errorf("%s: %w", b.describe(), observe.ErrBound)
	}
	if b.validate != nil {
		if err := b.validate(v); err != nil {
			return fmt.Errorf("%s: %w", b.describe(), err)
		}
	}
	if b.equal(b.value, v) {
		return nil
	}
	b.value = v
	return b.markInvalid()
}

func (b *base[T, L, E]) markInvalid() error {
	if !b.valid {
		return nil
	}
	b.valid = false
	if b.release != nil {
		b.release()
	}
	if b.invalidated != nil {
		b.invalidated()
	}
	return helper.Fire(b.helper)
}

// bind makes the property mirror source. Binding again to the same source is
// a no-op, binding to a different one while bound fails with
// observe.ErrAlreadyBound.
func (b *base[T, L, E]) bind(self any, source observe.ObservableValue[T]) error {
	if err := b.confine.Check("bind " + b.describe()); err != nil {
		return err
	}
	if source == nil {
		return observe.ErrNilObservable
	}
	if observe.Same(source, self) {
		return observe.ErrSelfBinding
	}
	if b.source != nil {
		if observe.Same(source, b.source) {
			return nil
		}
		return fmt.Errorf("%s: %w", b.describe(), observe.ErrAlreadyBound)
	}
	b.source = source
	source.AddInvalidationListener(b.listener)
	return b.markInvalid()
}

// Unbind stops mirroring the source and keeps its last value. An error reading
// that value is returned, the property is unbound either way.
func (b *base[T, L, E]) Unbind() error {
	if err := b.confine.Check("unbind " + b.describe()); err != nil {
		return err
	}
	if b.source == nil {
		return nil
	}
	source := b.source
	v, err := source.Value()
	source.RemoveInvalidationListener(b.listener)
	b.source = nil
	if err != nil {
		return err
	}
	b.value = v
	return nil
}

func (b *base[T, L, E]) IsBound() bool {
	return b.source != nil
}

func (b *base[T, L, E]) Name() string {
	return b.name
}

func (b *base[T, L, E]) Bean() any {
	return b.bean
}

func (b *base[T, L, E]) describe() string {
	if b.name != "" {
		return b.label + " " + b.name
	}
	return b.label
}

func (b *base[T, L, E]) String() string {
	var sb strings.Builder
	sb.WriteString(b.label)
	sb.WriteString(" [")
	if b.bean != nil {
		fmt.Fprintf(&sb, "bean: %v, ", b.bean)
	}
	if b.name != "" {
		fmt.Fprintf(&sb, "name: %s, ", b.name)
	}
	if b.source != nil {
		sb.WriteString("bound, ")
		if b.valid {
			fmt.Fprintf(&sb, "value: %v", b.value)
		} else {
			sb.WriteString("invalid")
		}
	} else {
		fmt.Fprintf(&sb, "value: %v", b.value)
	}
	sb.WriteString("]")
	return sb.String()
}
