package checks

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/agbru/limbcalc/limb"
)

// toBig reads x as an unsigned magnitude, least significant limb first.
func toBig[T limb.Word](x []T) *big.Int {
	w := uint(limb.BitsOf[T]())
	z := new(big.Int)
	var digit big.Int
	for i := len(x) - 1; i >= 0; i-- {
		z.Lsh(z, w)
		z.Or(z, digit.SetUint64(uint64(x[i])))
	}
	return z
}

// toBigSigned reads x with its appendix: an appendix of one subtracts
// 2^size from the magnitude.
func toBigSigned[T limb.Word](x []T, appendix limb.Bit) *big.Int {
	z := toBig(x)
	if appendix == limb.One {
		z.Sub(z, modulus[T](len(x)))
	}
	return z
}

// modulus returns 2^(n*W).
func modulus[T limb.Word](n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n*limb.BitsOf[T]()))
}

// fromBig returns z modulo 2^(n*W) as n limbs. Negative z wraps.
func fromBig[T limb.Word](z *big.Int, n int) []T {
	w := uint(limb.BitsOf[T]())
	r := new(big.Int).Mod(z, modulus[T](n))
	mask := new(big.Int).SetUint64(uint64(^T(0)))
	out := make([]T, n)
	var digit big.Int
	for i := range out {
		out[i] = T(digit.And(r, mask).Uint64())
		r.Rsh(r, w)
	}
	return out
}

func viewOf[T limb.Word](x []T) limb.View[T] {
	v, _ := limb.NewView(x, limb.Zero)
	return v
}

func signedView[T limb.Word](x []T, appendix limb.Bit) limb.View[T] {
	v, _ := limb.NewView(x, appendix)
	return v
}

func mutOf[T limb.Word](x []T) limb.Mut[T] {
	z, _ := limb.NewMut(x, limb.Zero)
	return z
}

// expectLimbs reports the first limb where got and want differ.
func expectLimbs[T limb.Word](what string, got, want []T) error {
	if slices.Equal(got, want) {
		return nil
	}
	for i := range max(len(got), len(want)) {
		var g, w T
		if i < len(got) {
			g = got[i]
		}
		if i < len(want) {
			w = want[i]
		}
		if g != w || i >= len(got) || i >= len(want) {
			return fmt.Errorf("%s: limb %d is %#x, want %#x (lengths %d and %d)", what, i, g, w, len(got), len(want))
		}
	}
	return fmt.Errorf("%s: limbs differ", what)
}

func expectFlag(what string, got, want bool) error {
	if got != want {
		return fmt.Errorf("%s: error flag %v, want %v", what, got, want)
	}
	return nil
}
