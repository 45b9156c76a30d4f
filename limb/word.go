package limb

import (
	"math/bits"
	"unsafe"
)

// Word is the set of unsigned integer types usable as a limb.
//
// Every algorithm in this package is instantiated once per concrete width; the
// carrying primitives below branch on the bit width only to pick the widest
// native operation, never through an interface.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Bit is a single binary digit. It is used for appendices and bit queries.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

// Not returns the complementary bit.
func (b Bit) Not() Bit { return b ^ 1 }

// Signedness selects how a body and its appendix are interpreted as a magnitude.
type Signedness uint8

const (
	Unsigned Signedness = iota
	Signed
)

func (s Signedness) String() string {
	if s == Signed {
		return "signed"
	}
	return "unsigned"
}

// BitsOf returns the bit width of T.
func BitsOf[T Word]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// Capacity returns the largest limb count whose bit size fits in an int.
func Capacity[T Word]() int {
	return maxInt / BitsOf[T]()
}

const maxInt = int(^uint(0) >> 1)

// Fill returns the full-word expansion of b: all zeros or all ones.
func Fill[T Word](b Bit) T {
	return T(0) - T(b&1)
}

func carryOf[T Word](c bool) T {
	if c {
		return 1
	}
	return 0
}

// addWord returns a + b + carry and the outgoing carry.
func addWord[T Word](a, b T, carry bool) (T, bool) {
	s := a + b
	c := s < a
	t := s + carryOf[T](carry)
	return t, c || t < s
}

// subWord returns a - b - borrow and the outgoing borrow.
func subWord[T Word](a, b T, borrow bool) (T, bool) {
	d := a - b
	br := a < b
	t := d - carryOf[T](borrow)
	return t, br || t > d
}

// mulWide returns the double-width product of a and b.
func mulWide[T Word](a, b T) (hi, lo T) {
	w := BitsOf[T]()
	if w == 64 {
		h, l := bits.Mul64(uint64(a), uint64(b))
		return T(h), T(l)
	}
	p := uint64(a) * uint64(b)
	return T(p >> uint(w)), T(p)
}

// divWide divides the double-width value hi:lo by d. The caller guarantees
// hi < d, so the quotient fits in one word.
func divWide[T Word](hi, lo, d T) (q, r T) {
	w := BitsOf[T]()
	if w == 64 {
		qq, rr := bits.Div64(uint64(hi), uint64(lo), uint64(d))
		return T(qq), T(rr)
	}
	n := uint64(hi)<<uint(w) | uint64(lo)
	return T(n / uint64(d)), T(n % uint64(d))
}

func leadingZeros[T Word](x T) int {
	return bits.LeadingZeros64(uint64(x)) - (64 - BitsOf[T]())
}

func trailingZeros[T Word](x T) int {
	w := BitsOf[T]()
	if n := bits.TrailingZeros64(uint64(x)); n < w {
		return n
	}
	return w
}

func onesCount[T Word](x T) int {
	return bits.OnesCount64(uint64(x))
}
