package limb

// All increments and decrements run least significant limb first and report a
// carry or borrow that leaves the top limb through the error flag. They only
// read the body of their operand; appendices are handled by the caller, e.g.
// through the repeating-pattern forms.

// ─────────────────────────────────────────────────────────────────────────────
// Slice kernels
// ─────────────────────────────────────────────────────────────────────────────

func incrementLimbs[T Word](z []T, carry bool) bool {
	for i := 0; carry && i < len(z); i++ {
		z[i]++
		carry = z[i] == 0
	}
	return carry
}

func decrementLimbs[T Word](z []T, borrow bool) bool {
	for i := 0; borrow && i < len(z); i++ {
		borrow = z[i] == 0
		z[i]--
	}
	return borrow
}

// addLimbs adds x into z (len(x) <= len(z)) and returns the outgoing carry.
func addLimbs[T Word](z, x []T, carry bool) bool {
	for i, xi := range x {
		z[i], carry = addWord(z[i], xi, carry)
	}
	return incrementLimbs(z[len(x):], carry)
}

// subLimbs subtracts x from z (len(x) <= len(z)) and returns the outgoing borrow.
func subLimbs[T Word](z, x []T, borrow bool) bool {
	for i, xi := range x {
		z[i], borrow = subWord(z[i], xi, borrow)
	}
	return decrementLimbs(z[len(x):], borrow)
}

// addMulLimbs adds x*m into z[:len(x)] (len(x) <= len(z)) and returns the
// carry word.
func addMulLimbs[T Word](z, x []T, m, c T) T {
	for i, xi := range x {
		hi, lo := mulWide(xi, m)
		var k bool
		lo, k = addWord(lo, c, false)
		hi += carryOf[T](k)
		z[i], k = addWord(z[i], lo, false)
		c = hi + carryOf[T](k)
	}
	return c
}

// subMulLimbs subtracts x*m from z[:len(x)] (len(x) <= len(z)) and returns the
// borrow word.
func subMulLimbs[T Word](z, x []T, m, c T) T {
	for i, xi := range x {
		hi, lo := mulWide(xi, m)
		var k bool
		lo, k = addWord(lo, c, false)
		hi += carryOf[T](k)
		z[i], k = subWord(z[i], lo, false)
		c = hi + carryOf[T](k)
	}
	return c
}

// excessNonzero reports whether x has a nonzero limb at or above index n.
func excessNonzero[T Word](x []T, n int) bool {
	for i := n; i < len(x); i++ {
		if x[i] != 0 {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Increment
// ─────────────────────────────────────────────────────────────────────────────

// Increment adds the carry bit alone.
func (z Mut[T]) Increment(carry bool) Fallible[Mut[T]] {
	return Fallible[Mut[T]]{Value: z, Error: incrementLimbs(z.body, carry)}
}

// IncrementWord adds w plus the carry bit.
func (z Mut[T]) IncrementWord(w T, carry bool) Fallible[Mut[T]] {
	if len(z.body) == 0 {
		return Fallible[Mut[T]]{Value: z, Error: w != 0 || carry}
	}
	z.body[0], carry = addWord(z.body[0], w, carry)
	return Fallible[Mut[T]]{Value: z, Error: incrementLimbs(z.body[1:], carry)}
}

// IncrementBy adds the body of v plus the carry bit. Limbs of v beyond the
// receiver set the error flag when they are nonzero.
func (z Mut[T]) IncrementBy(v View[T], carry bool) Fallible[Mut[T]] {
	x := v.body
	if len(x) <= len(z.body) {
		return Fallible[Mut[T]]{Value: z, Error: addLimbs(z.body, x, carry)}
	}
	for i := range z.body {
		z.body[i], carry = addWord(z.body[i], x[i], carry)
	}
	return Fallible[Mut[T]]{Value: z, Error: carry || excessNonzero(x, len(z.body))}
}

// IncrementByRepeating adds pattern repeated across every limb plus the carry
// bit, which is how another operand's appendix joins the sum.
func (z Mut[T]) IncrementByRepeating(pattern T, carry bool) Fallible[Mut[T]] {
	for i := range z.body {
		z.body[i], carry = addWord(z.body[i], pattern, carry)
	}
	return Fallible[Mut[T]]{Value: z, Error: carry}
}

// IncrementByProduct adds v*multiplier + increment in a single pass.
func (z Mut[T]) IncrementByProduct(v View[T], multiplier, increment T) Fallible[Mut[T]] {
	x := v.body
	if len(x) > len(z.body) {
		c := addMulLimbs(z.body, x[:len(z.body)], multiplier, increment)
		lost := c != 0 || (multiplier != 0 && excessNonzero(x, len(z.body)))
		return Fallible[Mut[T]]{Value: z, Error: lost}
	}
	c := addMulLimbs(z.body, x, multiplier, increment)
	rest := Mut[T]{body: z.body[len(x):]}
	return Fallible[Mut[T]]{Value: z, Error: rest.IncrementWord(c, false).Error}
}

// ─────────────────────────────────────────────────────────────────────────────
// Decrement
// ─────────────────────────────────────────────────────────────────────────────

// Decrement subtracts the borrow bit alone.
func (z Mut[T]) Decrement(borrow bool) Fallible[Mut[T]] {
	return Fallible[Mut[T]]{Value: z, Error: decrementLimbs(z.body, borrow)}
}

// DecrementWord subtracts w plus the borrow bit.
func (z Mut[T]) DecrementWord(w T, borrow bool) Fallible[Mut[T]] {
	if len(z.body) == 0 {
		return Fallible[Mut[T]]{Value: z, Error: w != 0 || borrow}
	}
	z.body[0], borrow = subWord(z.body[0], w, borrow)
	return Fallible[Mut[T]]{Value: z, Error: decrementLimbs(z.body[1:], borrow)}
}

// DecrementBy subtracts the body of v plus the borrow bit.
func (z Mut[T]) DecrementBy(v View[T], borrow bool) Fallible[Mut[T]] {
	x := v.body
	if len(x) <= len(z.body) {
		return Fallible[Mut[T]]{Value: z, Error: subLimbs(z.body, x, borrow)}
	}
	for i := range z.body {
		z.body[i], borrow = subWord(z.body[i], x[i], borrow)
	}
	return Fallible[Mut[T]]{Value: z, Error: borrow || excessNonzero(x, len(z.body))}
}

// DecrementByRepeating subtracts pattern repeated across every limb plus the
// borrow bit.
func (z Mut[T]) DecrementByRepeating(pattern T, borrow bool) Fallible[Mut[T]] {
	for i := range z.body {
		z.body[i], borrow = subWord(z.body[i], pattern, borrow)
	}
	return Fallible[Mut[T]]{Value: z, Error: borrow}
}

// DecrementByProduct subtracts v*multiplier + decrement in a single pass.
func (z Mut[T]) DecrementByProduct(v View[T], multiplier, decrement T) Fallible[Mut[T]] {
	x := v.body
	if len(x) > len(z.body) {
		c := subMulLimbs(z.body, x[:len(z.body)], multiplier, decrement)
		lost := c != 0 || (multiplier != 0 && excessNonzero(x, len(z.body)))
		return Fallible[Mut[T]]{Value: z, Error: lost}
	}
	c := subMulLimbs(z.body, x, multiplier, decrement)
	rest := Mut[T]{body: z.body[len(x):]}
	return Fallible[Mut[T]]{Value: z, Error: rest.DecrementWord(c, false).Error}
}

// Negate replaces the body with zero minus the body. The error flag is the
// borrow, set whenever the body was nonzero. The appendix is left alone.
func (z Mut[T]) Negate() Fallible[Mut[T]] {
	borrow := false
	for i := range z.body {
		z.body[i], borrow = subWord(0, z.body[i], borrow)
	}
	return Fallible[Mut[T]]{Value: z, Error: borrow}
}
