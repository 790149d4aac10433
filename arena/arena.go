// Package arena provides a thread-safe recycling store for values of a
// single type. Callers acquire a Lease wrapping either a previously released
// value or a freshly initialized one; releasing the lease sanitizes the
// value and, when the sanitize rule approves, returns it to the arena for
// reuse. Reuse order is LIFO: the most recently released value is handed out
// first.
//
// Example usage:
//
//	buffers := arena.New(arena.Sanitizer(sanitize.Buffer))
//	lease := buffers.Get(func() *bytes.Buffer { return new(bytes.Buffer) })
//	defer lease.Release()
//
//	(*lease.Value()).WriteString("payload")
package arena

import (
	"fmt"
	"sync"

	"github.com/coachpo/arena/sanitize"
)

// Arena stores released values of type T for reuse. The zero value is not
// usable; construct arenas with New. An Arena is safe for concurrent use;
// its single lock guards only the storage slice and is never held across
// caller-supplied initializers or sanitize rules.
type Arena[T any] struct {
	mu       sync.Mutex
	storage  []T
	name     string
	sanitize sanitize.Func[T]
	stats    counters
	debug    *debugState
}

// Option configures an Arena during construction.
type Option[T any] func(*Arena[T])

// Named assigns a diagnostic name reported in panics and telemetry.
func Named[T any](name string) Option[T] {
	return func(a *Arena[T]) {
		if name != "" {
			a.name = name
		}
	}
}

// Capacity reserves storage for n values. It is a performance hint, not a
// bound: the arena still grows past n when more values are released.
func Capacity[T any](n int) Option[T] {
	return func(a *Arena[T]) {
		if n > 0 && cap(a.storage) < n {
			a.storage = make([]T, 0, n)
		}
	}
}

// Sanitizer installs the cleanup rule applied to every released value. When
// omitted, values return to the arena unchanged.
func Sanitizer[T any](fn sanitize.Func[T]) Option[T] {
	return func(a *Arena[T]) {
		if fn != nil {
			a.sanitize = fn
		}
	}
}

// New constructs an empty arena.
func New[T any](opts ...Option[T]) *Arena[T] {
	a := &Arena[T]{
		name:     "arena",
		sanitize: sanitize.Identity[T],
		debug:    newDebugState(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Get acquires a lease over the most recently released value, or over a
// freshly initialized one when the arena is empty. init runs outside the
// arena lock, so a slow initializer never blocks other callers. It panics
// if init is nil.
func (a *Arena[T]) Get(init func() T) *Lease[T] {
	if init == nil {
		panic(fmt.Sprintf("arena %s: init must not be nil", a.name))
	}
	v, ok := a.pop()
	if ok {
		a.stats.reused.Add(1)
	} else {
		v = init()
		a.stats.created.Add(1)
	}
	return a.newLease(v)
}

// GetZero acquires a lease like Get, defaulting to the zero value of T when
// the arena has nothing to reuse.
func (a *Arena[T]) GetZero() *Lease[T] {
	return a.Get(func() (zero T) { return })
}

// Wrap leases an externally sourced value without touching storage. The
// value joins the arena's recycling cycle when the lease is released.
func (a *Arena[T]) Wrap(v T) *Lease[T] {
	a.stats.created.Add(1)
	return a.newLease(v)
}

// ReduceTo drops stored values from index n onward, shrinking the arena to
// at most n idle values. Dropped values never reappear on later Get calls.
// Negative n is treated as zero; ReduceTo(0) empties the arena.
func (a *Arena[T]) ReduceTo(n int) {
	if n < 0 {
		n = 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.storage) <= n {
		return
	}
	a.stats.discarded.Add(int64(len(a.storage) - n))
	clear(a.storage[n:])
	a.storage = a.storage[:n]
}

// Len reports the number of idle values currently stored.
func (a *Arena[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.storage)
}

// Name returns the arena's diagnostic name.
func (a *Arena[T]) Name() string {
	return a.name
}

func (a *Arena[T]) push(v T) {
	a.mu.Lock()
	a.storage = append(a.storage, v)
	a.mu.Unlock()
}

func (a *Arena[T]) pop() (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.storage)
	if n == 0 {
		var zero T
		return zero, false
	}
	v := a.storage[n-1]
	var zero T
	a.storage[n-1] = zero
	a.storage = a.storage[:n-1]
	return v, true
}

func (a *Arena[T]) newLease(v T) *Lease[T] {
	l := &Lease[T]{arena: a, value: v}
	a.stats.live.Add(1)
	a.debug.recordAcquire(l)
	return l
}

func (a *Arena[T]) activeStacks() []string {
	return a.debug.activeStacks()
}
