package limb

// Divisor is a nonzero word. Division through a Divisor never re-checks for
// zero because no zero Divisor can be constructed.
type Divisor[T Word] struct {
	d T
}

// NewDivisor returns d as a Divisor, or false when d is zero.
func NewDivisor[T Word](d T) (Divisor[T], bool) {
	if d == 0 {
		return Divisor[T]{}, false
	}
	return Divisor[T]{d: d}, true
}

// Value returns the divisor word.
func (d Divisor[T]) Value() T { return d.d }

// IsPowerOfTwo reports whether the divisor has a single bit set.
func (d Divisor[T]) IsPowerOfTwo() bool { return d.d&(d.d-1) == 0 }

// Divide returns x/d and x%d using the hardware divide.
func (d Divisor[T]) Divide(x T) (q, r T) { return x / d.d, x % d.d }

// DivideWide divides the double word hi:lo. The quotient is returned as two
// limbs, low first.
func (d Divisor[T]) DivideWide(hi, lo T) (q Doublet[T], r T) {
	q.High, r = divWide(0, hi, d.d)
	q.Low, r = divWide(r, lo, d.d)
	return q, r
}

// DivideByWord replaces the body with its quotient by d and returns the
// remainder, sweeping from the most significant limb down.
func (z Mut[T]) DivideByWord(d Divisor[T]) T {
	var r T
	for i := len(z.body) - 1; i >= 0; i-- {
		z.body[i], r = divWide(r, z.body[i], d.d)
	}
	return r
}

// RemainderByWord returns the body modulo d without writing anything.
func (v View[T]) RemainderByWord(d Divisor[T]) T {
	var r T
	for i := len(v.body) - 1; i >= 0; i-- {
		_, r = divWide(r, v.body[i], d.d)
	}
	return r
}
