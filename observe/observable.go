// Package observe defines the listener contracts shared by properties,
// bindings and observable collections.
//
// Everything in this module is single threaded: a mutation synchronously
// walks the whole dependent graph on the caller's goroutine. Listener errors
// are not isolated, the first listener that returns an error aborts the rest
// of that dispatch pass and the error is returned to the mutating call.
package observe

// Observable is anything that can report that its value may have changed.
type Observable interface {
	AddInvalidationListener(l InvalidationListener)
	RemoveInvalidationListener(l InvalidationListener)
}

// ObservableValue is an Observable that also carries a value and reports
// old/new pairs to change listeners.
type ObservableValue[T any] interface {
	Observable
	AddChangeListener(l ChangeListener[T])
	RemoveChangeListener(l ChangeListener[T])
	Value() (T, error)
}

// WritableValue is an ObservableValue that can be set.
type WritableValue[T any] interface {
	ObservableValue[T]
	Set(v T) error
}

// InvalidationListener is notified that an Observable may have changed. No
// value is delivered, reading it is up to the listener.
type InvalidationListener interface {
	Invalidated(o Observable) error
}

// ChangeListener is notified with the old and new value, only when the value
// actually changed.
type ChangeListener[T any] interface {
	Changed(o ObservableValue[T], oldValue, newValue T) error
}

// WeakListener is implemented by listeners whose target may go away. A stale
// listener is dropped by the owning helper the next time it compacts or
// dispatches.
type WeakListener interface {
	IsStale() bool
}

// Equaler lets a listener decide its own identity for removal. Without it
// listeners are compared with ==.
type Equaler interface {
	Equal(other any) bool
}

type invalidationFunc struct {
	fn func(Observable) error
}

func (f *invalidationFunc) Invalidated(o Observable) error {
	return f.fn(o)
}

// OnInvalidated wraps fn as an InvalidationListener. Keep the returned value
// around to remove it later, funcs have no identity of their own.
func OnInvalidated(fn func(o Observable) error) InvalidationListener {
	return &invalidationFunc{fn: fn}
}

type changeFunc[T any] struct {
	fn func(ObservableValue[T], T, T) error
}

func (f *changeFunc[T]) Changed(o ObservableValue[T], oldValue, newValue T) error {
	return f.fn(o, oldValue, newValue)
}

// OnChanged wraps fn as a ChangeListener.
func OnChanged[T any](fn func(o ObservableValue[T], oldValue, newValue T) error) ChangeListener[T] {
	return &changeFunc[T]{fn: fn}
}

// WeakRef resolves to a cell while it is reachable and to nil afterwards.
type WeakRef[T any] func() WritableValue[T]

// Referable is implemented by cells that can hand out a weak reference to
// themselves. Bidirectional links hold cells through it so a link never keeps
// its cells alive.
type Referable[T any] interface {
	WeakRef() WeakRef[T]
}

// Dependent is implemented by derived values that can list what they read.
type Dependent interface {
	Dependencies() []Observable
}

// Number is every Go integer and float kind.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}
