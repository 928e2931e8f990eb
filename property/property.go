package property

import (
	"weak"

	"github.com/delaneyj/fxprops/bidi"
	"github.com/delaneyj/fxprops/helper"
	"github.com/delaneyj/fxprops/observe"
)

// Property is a settable, bindable observable value.
type Property[T any] struct {
	*base[T, helper.None, helper.None]
	readOnly *ReadOnly[T]
}

// New returns a property holding initial. Writes are compared with
// observe.Equal unless WithEqual says otherwise.
func New[T any](initial T, opts ...Option) *Property[T] {
	p := &Property[T]{base: newBase[T, helper.None, helper.None]("Property", initial, observe.Equal[T], opts)}
	p.target = helper.NewScalarTarget[T](p, p.equal)
	return p
}

// Bind makes p mirror source until Unbind.
func (p *Property[T]) Bind(source observe.ObservableValue[T]) error {
	return p.bind(p, source)
}

// BindBidirectional keeps p and other equal in both directions. p first adopts
// the value of other.
func (p *Property[T]) BindBidirectional(other observe.WritableValue[T]) error {
	return bidi.Bind[T](p, other)
}

func (p *Property[T]) UnbindBidirectional(other observe.WritableValue[T]) error {
	return bidi.Unbind[T](p, other)
}

func (p *Property[T]) WeakRef() observe.WeakRef[T] {
	return weakRefOf[T](p)
}

// ReadOnly returns a view of p that can be observed but not written. Every
// call returns the same view.
func (p *Property[T]) ReadOnly() *ReadOnly[T] {
	if p.readOnly == nil {
		r := &ReadOnly[T]{src: p}
		r.target = helper.NewScalarTarget[T](r, p.equal)
		r.forward = observe.OnInvalidated(func(observe.Observable) error {
			return helper.Fire(r.helper)
		})
		p.AddInvalidationListener(r.forward)
		p.readOnly = r
	}
	return p.readOnly
}

func weakRefOf[T, C any, P interface {
	*C
	observe.WritableValue[T]
}](c P) observe.WeakRef[T] {
	w := weak.Make((*C)(c))
	return func() observe.WritableValue[T] {
		if v := w.Value(); v != nil {
			return P(v)
		}
		return nil
	}
}

// ReadOnly exposes a property to code that must not write it. Listeners see
// the view, not the property, as their source.
type ReadOnly[T any] struct {
	src     *Property[T]
	helper  helper.Scalar[T]
	target  *helper.Target[T, helper.None, helper.None]
	forward observe.InvalidationListener
}

func (r *ReadOnly[T]) AddInvalidationListener(l observe.InvalidationListener) {
	r.helper = helper.AddInvalidationListener(r.helper, r.target, l)
}

func (r *ReadOnly[T]) RemoveInvalidationListener(l observe.InvalidationListener) {
	r.helper = helper.RemoveInvalidationListener(r.helper, l)
}

func (r *ReadOnly[T]) AddChangeListener(l observe.ChangeListener[T]) {
	r.helper = helper.AddChangeListener(r.helper, r.target, l)
}

func (r *ReadOnly[T]) RemoveChangeListener(l observe.ChangeListener[T]) {
	r.helper = helper.RemoveChangeListener(r.helper, l)
}

func (r *ReadOnly[T]) Value() (T, error) {
	return r.src.Value()
}

func (r *ReadOnly[T]) Get() T {
	return r.src.Get()
}

func (r *ReadOnly[T]) Name() string {
	return r.src.Name()
}

func (r *ReadOnly[T]) Bean() any {
	return r.src.Bean()
}

func (r *ReadOnly[T]) String() string {
	return "ReadOnly" + r.src.String()
}
