package arena

import (
	"fmt"
	"runtime/debug"
)

// Lease couples one value's lifetime to its eventual return to the arena
// that produced it. A lease is Active until exactly one terminal transition
// happens: Take hands the value to the caller permanently, Release sanitizes
// it and conditionally pushes it back. Either transition marks the lease
// spent; a spent lease holds nothing and accepts no further access.
//
// A Lease must not be shared across goroutines without external
// synchronization; the arena itself is the shared resource, not the lease.
type Lease[T any] struct {
	arena *Arena[T]
	value T
}

// Value returns a pointer to the wrapped value for reads and writes. It
// panics on a spent lease.
func (l *Lease[T]) Value() *T {
	if l.arena == nil {
		panic(fmt.Sprintf("arena: Value() on spent lease for %T\n%s", l.value, debug.Stack()))
	}
	return &l.value
}

// Take consumes the lease and transfers the value to the caller. The value
// permanently leaves the arena's recycling cycle and a later Release is a
// no-op. Take panics when the lease is already spent; under single-consumption
// discipline this cannot happen.
func (l *Lease[T]) Take() T {
	a := l.arena
	if a == nil {
		panic(fmt.Sprintf("arena: Take() on spent lease for %T\n%s", l.value, debug.Stack()))
	}
	l.arena = nil
	v := l.value
	var zero T
	l.value = zero
	a.stats.live.Add(-1)
	a.stats.taken.Add(1)
	a.debug.recordRelease(l)
	return v
}

// Release returns the value to the originating arena. The arena's sanitize
// rule runs outside the lock; when it approves, the cleaned value is pushed
// back for reuse, otherwise the value is discarded permanently. Release on a
// spent lease is a no-op, so it is safe to defer unconditionally.
func (l *Lease[T]) Release() {
	if l == nil || l.arena == nil {
		return
	}
	a := l.arena
	l.arena = nil
	v := l.value
	var zero T
	l.value = zero
	a.stats.live.Add(-1)
	a.debug.recordRelease(l)

	cleaned, ok := a.sanitize(v)
	if !ok {
		a.stats.discarded.Add(1)
		return
	}
	a.push(cleaned)
}

// Spent reports whether the lease has already given up its value via Take or
// Release.
func (l *Lease[T]) Spent() bool {
	return l == nil || l.arena == nil
}
