package limb

// Reciprocal divides words by a fixed divisor with a multiply, an add and a
// shift:
//
//	q = (x*Multiplier + Increment) >> Shift
//
// The constants follow Robison's round-down/round-up scheme. With
// s = floor(log2 d) and m = floor(2^(W+s) / d), e = 2^(W+s) mod d:
//
//   - power-of-two divisors use Multiplier = Increment = max word, which turns
//     the formula into a plain shift by s;
//   - when e <= 2^s, Multiplier = Increment = m (round down);
//   - otherwise Multiplier = m+1 and Increment = 0 (round up).
//
// The increment term keeps x*Multiplier + Increment below 2^(2W), so a divisor
// with its top bit set never overflows the double-word product.
type Reciprocal[T Word] struct {
	Multiplier T
	Increment  T
	Shift      int

	divisor T
}

// NewReciprocal derives the constants for d once.
func NewReciprocal[T Word](d Divisor[T]) Reciprocal[T] {
	w := BitsOf[T]()
	s := w - 1 - leadingZeros(d.d)
	r := Reciprocal[T]{Shift: w + s, divisor: d.d}
	if d.IsPowerOfTwo() {
		r.Multiplier, r.Increment = ^T(0), ^T(0)
		return r
	}
	m, e := divWide(T(1)<<uint(s), 0, d.d)
	if e <= T(1)<<uint(s) {
		r.Multiplier, r.Increment = m, m
	} else {
		r.Multiplier = m + 1
	}
	return r
}

// ReciprocalOf is NewReciprocal for a raw word. It fails when d is zero.
func ReciprocalOf[T Word](d T) (Reciprocal[T], bool) {
	dv, ok := NewDivisor(d)
	if !ok {
		return Reciprocal[T]{}, false
	}
	return NewReciprocal(dv), true
}

// Divisor returns the divisor the constants were derived for.
func (r Reciprocal[T]) Divisor() Divisor[T] { return Divisor[T]{d: r.divisor} }

// Quotient returns x / d without a hardware divide.
func (r Reciprocal[T]) Quotient(x T) T {
	hi, lo := mulWide(x, r.Multiplier)
	_, c := addWord(lo, r.Increment, false)
	hi += carryOf[T](c)
	return hi >> uint(r.Shift-BitsOf[T]())
}

// Divide returns x / d and x % d. The result is identical to Divisor.Divide.
func (r Reciprocal[T]) Divide(x T) (q, rem T) {
	q = r.Quotient(x)
	return q, x - q*r.divisor
}

// Doublet is a two-limb value, least significant limb first in memory order.
type Doublet[T Word] struct {
	Low, High T
}

func (d Doublet[T]) limbs() [2]T { return [2]T{d.Low, d.High} }

// Reciprocal21 is the double-word analogue of Reciprocal: it divides a
// two-limb dividend by a one-limb divisor. Multiplier and Increment are
// two-limb constants and Shift counts from 2W.
type Reciprocal21[T Word] struct {
	Multiplier Doublet[T]
	Increment  Doublet[T]
	Shift      int

	divisor T
}

// NewReciprocal21 derives the two-limb constants for d.
func NewReciprocal21[T Word](d Divisor[T]) Reciprocal21[T] {
	w := BitsOf[T]()
	s := w - 1 - leadingZeros(d.d)
	r := Reciprocal21[T]{Shift: 2*w + s, divisor: d.d}
	if d.IsPowerOfTwo() {
		r.Multiplier = Doublet[T]{^T(0), ^T(0)}
		r.Increment = r.Multiplier
		return r
	}
	// 2^(2W+s) is the three-limb number [0, 0, 1<<s]; its top limb is below d.
	hi, e := divWide(T(1)<<uint(s), 0, d.d)
	lo, e := divWide(e, 0, d.d)
	m := Doublet[T]{Low: lo, High: hi}
	if e <= T(1)<<uint(s) {
		r.Multiplier, r.Increment = m, m
		return r
	}
	var c bool
	m.Low, c = addWord(m.Low, 1, false)
	m.High += carryOf[T](c)
	r.Multiplier = m
	return r
}

// Reciprocal21Of is NewReciprocal21 for a raw word. It fails when d is zero.
func Reciprocal21Of[T Word](d T) (Reciprocal21[T], bool) {
	dv, ok := NewDivisor(d)
	if !ok {
		return Reciprocal21[T]{}, false
	}
	return NewReciprocal21(dv), true
}

// Divisor returns the divisor the constants were derived for.
func (r Reciprocal21[T]) Divisor() Divisor[T] { return Divisor[T]{d: r.divisor} }

// Divide returns hi:lo / d as two limbs and the remainder. When hi < d the
// high quotient limb is zero, which is the case inside long division.
func (r Reciprocal21[T]) Divide(hi, lo T) (qhi, qlo, rem T) {
	x := [2]T{lo, hi}
	m := r.Multiplier.limbs()
	inc := r.Increment.limbs()
	var p [4]T
	longProduct(p[:], x[:], m[:])
	addLimbs(p[:], inc[:], false)

	w := uint(BitsOf[T]())
	s := uint(r.Shift) - 2*w
	qlo = p[2]>>s | p[3]<<(w-s)
	qhi = p[3] >> s
	return qhi, qlo, lo - qlo*r.divisor
}

// DivideByWordReciprocal is DivideByWord driven by a double-word reciprocal:
// each limb is divided together with the running remainder without a
// hardware divide.
func (z Mut[T]) DivideByWordReciprocal(r Reciprocal21[T]) T {
	var rem T
	for i := len(z.body) - 1; i >= 0; i-- {
		_, z.body[i], rem = r.Divide(rem, z.body[i])
	}
	return rem
}
