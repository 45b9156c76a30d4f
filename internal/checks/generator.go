package checks

import (
	"math/rand"

	"github.com/agbru/limbcalc/limb"
)

// Generator draws operands for one case. Words are biased toward zero, all
// ones and single bits, the values that exercise carry chains.
type Generator[T limb.Word] struct {
	rng      *rand.Rand
	maxLimbs int
}

// NewGenerator returns a generator seeded with seed. maxLimbs below one is
// treated as one.
func NewGenerator[T limb.Word](seed int64, maxLimbs int) *Generator[T] {
	return &Generator[T]{rng: rand.New(rand.NewSource(seed)), maxLimbs: max(maxLimbs, 1)}
}

// Intn returns a uniform int in [0, n).
func (g *Generator[T]) Intn(n int) int { return g.rng.Intn(n) }

// Bool returns a fair coin.
func (g *Generator[T]) Bool() bool { return g.rng.Intn(2) == 1 }

// Bit returns a fair random bit.
func (g *Generator[T]) Bit() limb.Bit {
	if g.Bool() {
		return limb.One
	}
	return limb.Zero
}

// Word returns a biased random word.
func (g *Generator[T]) Word() T {
	switch g.rng.Intn(8) {
	case 0:
		return 0
	case 1:
		return ^T(0)
	case 2:
		return T(1) << uint(g.rng.Intn(limb.BitsOf[T]()))
	}
	return T(g.rng.Uint64())
}

// NonzeroWord returns a biased random word other than zero.
func (g *Generator[T]) NonzeroWord() T {
	for {
		if w := g.Word(); w != 0 {
			return w
		}
	}
}

// Length returns an operand length in [minimum, max(minimum, maxLimbs)].
// A quarter of the draws stay within four limbs of minimum.
func (g *Generator[T]) Length(minimum int) int {
	span := g.maxLimbs - minimum
	if span <= 0 {
		return minimum
	}
	if g.rng.Intn(4) == 0 {
		span = min(span, 4)
	}
	return minimum + g.rng.Intn(span+1)
}

// Limbs returns n random limbs. Some draws are uniform runs of zeros or
// ones, the worst case for carry and borrow propagation.
func (g *Generator[T]) Limbs(n int) []T {
	x := make([]T, n)
	switch g.rng.Intn(16) {
	case 0:
		return x
	case 1:
		for i := range x {
			x[i] = ^T(0)
		}
		return x
	}
	for i := range x {
		x[i] = g.Word()
	}
	return x
}

// Operand returns random limbs of a random length of at least minimum.
func (g *Generator[T]) Operand(minimum int) []T {
	return g.Limbs(g.Length(minimum))
}
