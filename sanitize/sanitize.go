// Package sanitize defines the cleanup contract applied to values on their
// way back into an arena. A rule either produces a value ready for reuse or
// reports that the value must be discarded instead of recycled.
package sanitize

// Func cleans an owned value before reuse. The boolean reports whether the
// cleaned value may return to the arena; false means discard.
type Func[T any] func(T) (T, bool)

// Identity returns the value unchanged and approves reuse. It is the default
// rule for arbitrary types.
func Identity[T any](v T) (T, bool) {
	return v, true
}

// Recyclable marks types that clean themselves in place. Sanitize reports
// whether the receiver may be reused.
type Recyclable interface {
	Sanitize() bool
}

// Method adapts a Recyclable implementation into a Func.
func Method[T Recyclable](v T) (T, bool) {
	return v, v.Sanitize()
}

// Pointer lifts a rule over an optional value. A nil pointer passes through
// unchanged; a non-nil pointer has the inner rule applied, and an inner
// discard discards the whole pointer.
func Pointer[T any](inner Func[T]) Func[*T] {
	return func(p *T) (*T, bool) {
		if p == nil {
			return nil, true
		}
		v, ok := inner(*p)
		if !ok {
			return nil, false
		}
		*p = v
		return p, true
	}
}
