// Package binding provides lazily recomputed derived values.
//
// A binding starts invalid. Reading it computes and caches the value; an
// invalidation of any dependency marks it invalid again and notifies its own
// listeners, once per valid to invalid transition. Nothing is recomputed until
// the next read, so any number of upstream changes between two reads cost a
// single computation.
//
// Dependency cycles are not detected. A compute function that reads a
// binding which in turn reads the first one recurses until the stack runs out.
package binding

import (
	"fmt"
	"slices"

	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

// core is the validity state machine shared by scalar and collection
// bindings. It is always used through a pointer so its dependency observer can
// hold it weakly.
type core[T, L, E any] struct {
	compute        func() (T, error)
	value          T
	err            error
	valid          bool
	helper         helper.Helper[T, L, E]
	target         *helper.Target[T, L, E]
	deps           []observe.Observable
	observer       observe.InvalidationListener
	release        func()
	onInvalidating func()
}

func newCore[T, L, E any](compute func() (T, error)) *core[T, L, E] {
	c := &core[T, L, E]{compute: compute}
	c.observer = observe.WeakInvalidationListener(c, (*core[T, L, E]).dependencyInvalidated)
	return c
}

func (c *core[T, L, E]) dependencyInvalidated(observe.Observable) error {
	return c.Invalidate()
}

func (c *core[T, L, E]) AddInvalidationListener(l observe.InvalidationListener) {
	c.helper = helper.AddInvalidationListener(c.helper, c.target, l)
}

func (c *core[T, L, E]) RemoveInvalidationListener(l observe.InvalidationListener) {
	c.helper = helper.RemoveInvalidationListener(c.helper, l)
}

func (c *core[T, L, E]) AddChangeListener(l observe.ChangeListener[T]) {
	c.helper = helper.AddChangeListener(c.helper, c.target, l)
}

func (c *core[T, L, E]) RemoveChangeListener(l observe.ChangeListener[T]) {
	c.helper = helper.RemoveChangeListener(c.helper, l)
}

// Value returns the cached value, computing it first if the binding is
// invalid. A failed computation is returned as an *observe.EvaluationError and
// is kept until the next invalidation, it is not retried on every read.
func (c *core[T, L, E]) Value() (T, error) {
	if !c.valid {
		v, err := c.compute()
		if err != nil {
			var zero T
			c.value, c.err = zero, &observe.EvaluationError{Source: c.target.Owner, Err: err}
		} else {
			c.value, c.err = v, nil
		}
		c.valid = true
	}
	return c.value, c.err
}

// Get is Value for callers that treat a failed evaluation as fatal. It panics
// with the *observe.EvaluationError.
func (c *core[T, L, E]) Get() T {
	v, err := c.Value()
	if err != nil {
		panic(err)
	}
	return v
}

func (c *core[T, L, E]) IsValid() bool {
	return c.valid
}

// Invalidate marks the binding invalid and notifies its listeners. It does
// nothing if the binding is already invalid.
func (c *core[T, L, E]) Invalidate() error {
	if !c.valid {
		return nil
	}
	c.valid = false
	if c.release != nil {
		c.release()
	}
	if c.onInvalidating != nil {
		c.onInvalidating()
	}
	return helper.Fire(c.helper)
}

// SetOnInvalidating installs a hook that runs on every valid to invalid
// transition, before any listener is notified.
func (c *core[T, L, E]) SetOnInvalidating(fn func()) {
	c.onInvalidating = fn
}

// Bind starts observing deps. Nil entries are skipped.
func (c *core[T, L, E]) Bind(deps ...observe.Observable) {
	for _, d := range deps {
		if d == nil {
			continue
		}
		d.AddInvalidationListener(c.observer)
		c.deps = append(c.deps, d)
	}
}

// Unbind stops observing deps.
func (c *core[T, L, E]) Unbind(deps ...observe.Observable) {
	for _, d := range deps {
		if d == nil {
			continue
		}
		d.RemoveInvalidationListener(c.observer)
		if i := slices.IndexFunc(c.deps, func(x observe.Observable) bool { return observe.Same(x, d) }); i >= 0 {
			c.deps = slices.Delete(c.deps, i, i+1)
		}
	}
}

// Dispose stops observing every dependency.
func (c *core[T, L, E]) Dispose() {
	c.Unbind(slices.Clone(c.deps)...)
}

// Dependencies lists what the binding currently observes, in bind order.
func (c *core[T, L, E]) Dependencies() []observe.Observable {
	return slices.Clone(c.deps)
}

func (c *core[T, L, E]) String() string {
	if !c.valid {
		return "Binding [invalid]"
	}
	if c.err != nil {
		return "Binding [failed]"
	}
	return fmt.Sprintf("Binding [value: %v]", c.value)
}

// Binding is a derived scalar value.
type Binding[T any] struct {
	*core[T, helper.None, helper.None]
}

// New returns a binding computed by compute and invalidated by deps.
func New[T any](compute func() (T, error), deps ...observe.Observable) *Binding[T] {
	return NewFunc(compute, nil, deps...)
}

// NewFunc is New with a custom equality deciding what counts as a change for
// change listeners.
func NewFunc[T any](compute func() (T, error), equal func(a, b T) bool, deps ...observe.Observable) *Binding[T] {
	b := &Binding[T]{core: newCore[T, helper.None, helper.None](compute)}
	b.target = helper.NewScalarTarget[T](b, equal)
	b.Bind(deps...)
	return b
}

// Constant is a binding that never changes.
func Constant[T any](v T) *Binding[T] {
	return New(func() (T, error) { return v, nil })
}
