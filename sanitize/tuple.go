package sanitize

// T2 through T6 are fixed-size aggregates of independently sanitized
// components. Join2 through Join6 build the matching rules: components are
// sanitized left to right, and the first discard discards the whole
// aggregate without sanitizing the remaining components.

// T2 aggregates two sanitizable components.
type T2[A, B any] struct {
	A A
	B B
}

// T3 aggregates three sanitizable components.
type T3[A, B, C any] struct {
	A A
	B B
	C C
}

// T4 aggregates four sanitizable components.
type T4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// T5 aggregates five sanitizable components.
type T5[A, B, C, D, E any] struct {
	A A
	B B
	C C
	D D
	E E
}

// T6 aggregates six sanitizable components.
type T6[A, B, C, D, E, F any] struct {
	A A
	B B
	C C
	D D
	E E
	F F
}

// Join2 combines two component rules into a rule for T2.
func Join2[A, B any](fa Func[A], fb Func[B]) Func[T2[A, B]] {
	return func(t T2[A, B]) (T2[A, B], bool) {
		var ok bool
		if t.A, ok = fa(t.A); !ok {
			return t, false
		}
		if t.B, ok = fb(t.B); !ok {
			return t, false
		}
		return t, true
	}
}

// Join3 combines three component rules into a rule for T3.
func Join3[A, B, C any](fa Func[A], fb Func[B], fc Func[C]) Func[T3[A, B, C]] {
	return func(t T3[A, B, C]) (T3[A, B, C], bool) {
		var ok bool
		if t.A, ok = fa(t.A); !ok {
			return t, false
		}
		if t.B, ok = fb(t.B); !ok {
			return t, false
		}
		if t.C, ok = fc(t.C); !ok {
			return t, false
		}
		return t, true
	}
}

// Join4 combines four component rules into a rule for T4.
func Join4[A, B, C, D any](fa Func[A], fb Func[B], fc Func[C], fd Func[D]) Func[T4[A, B, C, D]] {
	return func(t T4[A, B, C, D]) (T4[A, B, C, D], bool) {
		var ok bool
		if t.A, ok = fa(t.A); !ok {
			return t, false
		}
		if t.B, ok = fb(t.B); !ok {
			return t, false
		}
		if t.C, ok = fc(t.C); !ok {
			return t, false
		}
		if t.D, ok = fd(t.D); !ok {
			return t, false
		}
		return t, true
	}
}

// Join5 combines five component rules into a rule for T5.
func Join5[A, B, C, D, E any](fa Func[A], fb Func[B], fc Func[C], fd Func[D], fe Func[E]) Func[T5[A, B, C, D, E]] {
	return func(t T5[A, B, C, D, E]) (T5[A, B, C, D, E], bool) {
		var ok bool
		if t.A, ok = fa(t.A); !ok {
			return t, false
		}
		if t.B, ok = fb(t.B); !ok {
			return t, false
		}
		if t.C, ok = fc(t.C); !ok {
			return t, false
		}
		if t.D, ok = fd(t.D); !ok {
			return t, false
		}
		if t.E, ok = fe(t.E); !ok {
			return t, false
		}
		return t, true
	}
}

// Join6 combines six component rules into a rule for T6.
func Join6[A, B, C, D, E, F any](fa Func[A], fb Func[B], fc Func[C], fd Func[D], fe Func[E], ff Func[F]) Func[T6[A, B, C, D, E, F]] {
	return func(t T6[A, B, C, D, E, F]) (T6[A, B, C, D, E, F], bool) {
		var ok bool
		if t.A, ok = fa(t.A); !ok {
			return t, false
		}
		if t.B, ok = fb(t.B); !ok {
			return t, false
		}
		if t.C, ok = fc(t.C); !ok {
			return t, false
		}
		if t.D, ok = fd(t.D); !ok {
			return t, false
		}
		if t.E, ok = fe(t.E); !ok {
			return t, false
		}
		if t.F, ok = ff(t.F); !ok {
			return t, false
		}
		return t, true
	}
}
