package limb

// DefaultKaratsubaThreshold is the operand length, in limbs, below which
// Multiplier falls back to schoolbook multiplication. It only affects speed;
// both algorithms produce identical limbs.
const DefaultKaratsubaThreshold = 40

// minKaratsubaThreshold keeps the recursion away from single-limb splits.
const minKaratsubaThreshold = 2

// Multiplier multiplies bodies with Karatsuba's method, recursing until the
// shorter operand has fewer than Threshold limbs. The zero value uses
// DefaultKaratsubaThreshold.
type Multiplier[T Word] struct {
	Threshold int
}

func (m Multiplier[T]) threshold() int {
	if m.Threshold <= 0 {
		return DefaultKaratsubaThreshold
	}
	return max(m.Threshold, minKaratsubaThreshold)
}

// ProductScratch returns the scratch length Product needs for operands of n
// and m limbs.
func ProductScratch(n, m int) int { return 6 * max(n, m) }

// SquareScratch returns the scratch length Square needs for an operand of n limbs.
func SquareScratch(n int) int { return 6 * n }

// Product overwrites z with x*y. The result equals SetLongProduct(x, y, 0) limb
// for limb, error flag included. When z is shorter than len(x)+len(y) or
// scratch is shorter than ProductScratch, Product takes the schoolbook path.
//
// z, scratch, x and y must not overlap, except that x and y may be the same.
func (m Multiplier[T]) Product(z Mut[T], x, y View[T], scratch Mut[T]) Fallible[Mut[T]] {
	n := len(x.body) + len(y.body)
	if len(z.body) < n || len(scratch.body) < ProductScratch(len(x.body), len(y.body)) {
		return z.SetLongProduct(x, y, 0)
	}
	karatsuba(z.body[:n], x.body, y.body, scratch.body, m.threshold())
	clear(z.body[n:])
	return Success(z)
}

// Square overwrites z with x*x. It mirrors Product and SetLongSquare.
func (m Multiplier[T]) Square(z Mut[T], x View[T], scratch Mut[T]) Fallible[Mut[T]] {
	n := 2 * len(x.body)
	if len(z.body) < n || len(scratch.body) < SquareScratch(len(x.body)) {
		return z.SetLongSquare(x, 0)
	}
	karatsubaSquare(z.body[:n], x.body, scratch.body, m.threshold())
	clear(z.body[n:])
	return Success(z)
}

// karatsuba sets z = x*y with len(z) == len(x)+len(y), using t as scratch.
//
// With x = x1*b + x0 and y = y1*b + y0, where b is k limbs:
//
//	x*y = z2*b*b + (z2 + z0 + (x0-x1)*(y1-y0))*b + z0
//
// where z2 = x1*y1 and z0 = x0*y0. Intermediate carries wrap; the final sum
// fits z exactly.
//
// Scratch layout for the balanced split:
//
//	t = [ |x0-x1| | |y1-y0| | product (2k) | recursion ... ]
func karatsuba[T Word](z, x, y, t []T, threshold int) {
	if len(x) < len(y) {
		x, y = y, x
	}
	n, m := len(x), len(y)
	if m < threshold {
		longProduct(z, x, y)
		return
	}
	k := (n + 1) / 2

	if m <= k {
		// y fits in the low half: z = x0*y + x1*y*b.
		karatsuba(z[:k+m], x[:k], y, t, threshold)
		p := t[:n-k+m]
		karatsuba(p, x[k:], y, t[n-k+m:], threshold)
		clear(z[k+m:])
		addLimbs(z[k:], p, false)
		return
	}

	x0, x1 := x[:k], x[k:]
	y0, y1 := y[:k], y[k:]
	karatsuba(z[:2*k], x0, y0, t, threshold)
	karatsuba(z[2*k:], x1, y1, t, threshold)

	dx, dy := t[:k], t[k:2*k]
	negative := absDifference(dx, x0, x1) != absDifference(dy, y1, y0)
	p := t[2*k : 4*k]
	karatsuba(p, dx, dy, t[4*k:], threshold)

	z0 := t[:2*k]
	copy(z0, z[:2*k])
	z2 := t[4*k : 4*k+n+m-2*k]
	copy(z2, z[2*k:])
	addLimbs(z[k:], z0, false)
	addLimbs(z[k:], z2, false)
	if negative {
		subLimbs(z[k:], p, false)
	} else {
		addLimbs(z[k:], p, false)
	}
}

// karatsubaSquare sets z = x*x with len(z) == 2*len(x). The middle term
// 2*x0*x1 is one product doubled by a one-bit upshift.
func karatsubaSquare[T Word](z, x, t []T, threshold int) {
	n := len(x)
	if n < threshold {
		longSquare(z, x)
		return
	}
	k := (n + 1) / 2
	x0, x1 := x[:k], x[k:]
	karatsubaSquare(z[:2*k], x0, t, threshold)
	karatsubaSquare(z[2*k:], x1, t, threshold)

	p := t[:n+1]
	karatsuba(p[:n], x0, x1, t[n+1:], threshold)
	p[n] = shiftLeftOne(p[:n])
	addLimbs(z[k:], p, false)
}

// absDifference sets z = |a - b| and reports whether a < b. Both operands are
// zero extended to len(z).
func absDifference[T Word](z, a, b []T) bool {
	copy(z, a)
	clear(z[len(a):])
	if !subLimbs(z, b, false) {
		return false
	}
	Mut[T]{body: z}.Negate()
	return true
}
