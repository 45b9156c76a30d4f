package limb

import (
	"math/big"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
)

// toBig reads x as an unsigned magnitude, least significant limb first.
func toBig[T Word](x []T) *big.Int {
	z := new(big.Int)
	w := uint(BitsOf[T]())
	word := new(big.Int)
	for i := len(x) - 1; i >= 0; i-- {
		z.Lsh(z, w)
		z.Or(z, word.SetUint64(uint64(x[i])))
	}
	return z
}

// toBigSigned reads x with its appendix as a two's complement integer.
func toBigSigned[T Word](x []T, appendix Bit) *big.Int {
	z := toBig(x)
	if appendix == One {
		z.Sub(z, new(big.Int).Lsh(big.NewInt(1), uint(len(x)*BitsOf[T]())))
	}
	return z
}

// fromBig returns the low n limbs of the non-negative z.
func fromBig[T Word](z *big.Int, n int) []T {
	out := make([]T, n)
	w := uint(BitsOf[T]())
	mask := new(big.Int).SetUint64(uint64(^T(0)))
	rest := new(big.Int).Set(z)
	word := new(big.Int)
	for i := range out {
		out[i] = T(word.And(rest, mask).Uint64())
		rest.Rsh(rest, w)
	}
	return out
}

// truncate returns z mod 2^(n*W).
func truncate[T Word](z *big.Int, n int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(n*BitsOf[T]()))
	return new(big.Int).Mod(z, m)
}

// limbsOf narrows random 64-bit words to T.
func limbsOf[T Word](raw []uint64) []T {
	out := make([]T, len(raw))
	for i, r := range raw {
		out[i] = T(r)
	}
	return out
}

func view[T Word](x []T) View[T] { return View[T]{body: x} }

func mut[T Word](x []T) Mut[T] { return Mut[T]{body: x} }

func propertyParameters(successful, maxSize int) *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = successful
	parameters.MaxSize = maxSize
	return parameters
}

func assertLimbs[T Word](t *testing.T, what string, got, want []T) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}
