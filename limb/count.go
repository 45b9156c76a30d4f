package limb

import "strconv"

// Count is a natural number or the Infinite sentinel. Bit counts over a body
// and its appendix are finite for one appendix value and infinite for the other.
type Count struct {
	n        int
	infinite bool
}

// Infinite is the count of an appendix bit repeated forever.
var Infinite = Count{infinite: true}

// Finite returns the count n. Negative values are clamped to zero.
func Finite(n int) Count {
	if n < 0 {
		n = 0
	}
	return Count{n: n}
}

// IsInfinite reports whether c is the Infinite sentinel.
func (c Count) IsInfinite() bool { return c.infinite }

// Natural returns the finite value and true, or zero and false for Infinite.
func (c Count) Natural() (int, bool) {
	if c.infinite {
		return 0, false
	}
	return c.n, true
}

// Complement returns size - c for a finite count and Infinite otherwise.
func (c Count) Complement(size int) Count {
	if c.infinite {
		return Infinite
	}
	return Finite(size - c.n)
}

func (c Count) String() string {
	if c.infinite {
		return "∞"
	}
	return strconv.Itoa(c.n)
}
