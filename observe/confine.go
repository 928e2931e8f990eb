package observe

import "github.com/petermattis/goid"

// Confinement pins a value to the goroutine that created it. Nothing in this
// module locks, so values shared with other goroutines must either stay on one
// goroutine or be guarded by the caller; a Confinement turns a violation into
// an error instead of a silent race.
type Confinement struct {
	owner int64
}

// Confine returns a Confinement owned by the calling goroutine.
func Confine() *Confinement {
	return &Confinement{owner: goid.Get()}
}

// Check returns a *ConfinementError if called off the owning goroutine. A nil
// Confinement allows everything.
func (c *Confinement) Check(op string) error {
	if c == nil {
		return nil
	}
	if g := goid.Get(); g != c.owner {
		return &ConfinementError{Op: op, Owner: c.owner, Caller: g}
	}
	return nil
}

// Owner is the id of the owning goroutine.
func (c *Confinement) Owner() int64 {
	return c.owner
}
