package limb

// Signum classifies v as -1, 0 or +1. Under Signed an appendix of one is
// negative; under Unsigned it denotes a value above every finite one.
func (v View[T]) Signum(mode Signedness) int {
	if v.appendix == One {
		if mode == Signed {
			return -1
		}
		return 1
	}
	for _, x := range v.body {
		if x != 0 {
			return 1
		}
	}
	return 0
}

// IsZero reports whether v denotes zero.
func (v View[T]) IsZero() bool {
	return v.Signum(Unsigned) == 0
}

// class orders the three kinds of values a body and appendix can denote.
func (v View[T]) class(mode Signedness) int {
	if v.appendix == Zero {
		return 0
	}
	if mode == Signed {
		return -1
	}
	return 1
}

// Compare returns -1, 0 or +1 as lhs is less than, equal to or greater than
// rhs. Limbs equal to the appendix fill past either end never change the result.
func Compare[T Word](lhs View[T], lmode Signedness, rhs View[T], rmode Signedness) int {
	if a, b := lhs.class(lmode), rhs.class(rmode); a != b {
		if a < b {
			return -1
		}
		return 1
	}
	// Same appendix from here on, so limbwise unsigned order is value order.
	for i := max(lhs.Len(), rhs.Len()) - 1; i >= 0; i-- {
		a, b := lhs.Index(i), rhs.Index(i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether lhs and rhs denote the same value under mode.
func Equal[T Word](lhs, rhs View[T], mode Signedness) bool {
	return Compare(lhs, mode, rhs, mode) == 0
}
