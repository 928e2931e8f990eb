package observe

import (
	"math"
	"reflect"

	"github.com/chewxy/math32"
)

// Equal is the default value equality. Comparable values use ==, NaN equals
// NaN so a NaN value does not report a change on every fire, and anything
// that cannot be compared with == falls back to reflect.DeepEqual.
func Equal[T any](a, b T) bool {
	va, vb := any(a), any(b)
	if va == nil || vb == nil {
		return va == vb
	}
	switch x := va.(type) {
	case float64:
		y, ok := vb.(float64)
		return ok && (x == y || (math.IsNaN(x) && math.IsNaN(y)))
	case float32:
		y, ok := vb.(float32)
		return ok && (x == y || (math32.IsNaN(x) && math32.IsNaN(y)))
	}
	ta, tb := reflect.TypeOf(va), reflect.TypeOf(vb)
	if ta != tb {
		return false
	}
	// A comparable struct or array can still hold a slice behind an
	// interface field, which == would panic on.
	if !reflect.ValueOf(va).Comparable() || !reflect.ValueOf(vb).Comparable() {
		return reflect.DeepEqual(va, vb)
	}
	return va == vb
}

// Same reports whether a and b are the same listener or observable. An
// Equaler on a decides, otherwise interface identity is used.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// Identity returns the address behind a pointer shaped value. The address is
// only used as an identity key and never dereferenced.
func Identity(v any) (uintptr, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}

// IsStale reports whether l is a weak listener whose target is gone.
func IsStale(l any) bool {
	w, ok := l.(WeakListener)
	return ok && w.IsStale()
}
