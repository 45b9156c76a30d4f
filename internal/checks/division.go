package checks

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/agbru/limbcalc/limb"
)

// reciprocalSamples is the number of dividends tried per divisor when the
// word is too wide to enumerate.
const reciprocalSamples = 256

func reciprocalCase[T limb.Word](g *Generator[T], _ Params) error {
	d := g.NonzeroWord()
	r, ok := limb.ReciprocalOf(d)
	if !ok {
		return fmt.Errorf("ReciprocalOf(%#x) failed", d)
	}
	div := r.Divisor()
	if div.Value() != d {
		return fmt.Errorf("Divisor() = %#x, want %#x", div.Value(), d)
	}
	agree := func(x T) error {
		q1, r1 := div.Divide(x)
		q2, r2 := r.Divide(x)
		if q1 != q2 || r1 != r2 || r.Quotient(x) != q1 {
			return fmt.Errorf("%#x / %#x: reciprocal (%#x, %#x), division (%#x, %#x); constants %+v",
				x, d, q2, r2, q1, r1, r)
		}
		return nil
	}

	if limb.BitsOf[T]() == 8 {
		for x := 0; x < 256; x++ {
			if err := agree(T(x)); err != nil {
				return err
			}
		}
		return nil
	}
	// Quotient boundaries are where a wrong multiplier shows first.
	for _, x := range []T{0, 1, d - 1, d, ^T(0), ^T(0) - d + 1, ^T(0) / d * d} {
		if err := agree(x); err != nil {
			return err
		}
	}
	for range reciprocalSamples {
		if err := agree(g.Word()); err != nil {
			return err
		}
	}
	return nil
}

func reciprocal21Case[T limb.Word](g *Generator[T], _ Params) error {
	d := g.NonzeroWord()
	r, ok := limb.Reciprocal21Of(d)
	if !ok {
		return fmt.Errorf("Reciprocal21Of(%#x) failed", d)
	}
	bigD := new(big.Int).SetUint64(uint64(d))
	for range reciprocalSamples {
		hi, lo := g.Word(), g.Word()
		if g.Bool() {
			hi %= d
		}
		x := toBig([]T{lo, hi})
		wantQ, wantR := new(big.Int).QuoRem(x, bigD, new(big.Int))
		want := fromBig[T](wantQ, 2)

		qhi, qlo, rem := r.Divide(hi, lo)
		if qlo != want[0] || qhi != want[1] || uint64(rem) != wantR.Uint64() {
			return fmt.Errorf("%#x:%#x / %#x: got (%#x:%#x, %#x), want (%#x:%#x, %#x); constants %+v",
				hi, lo, d, qhi, qlo, rem, want[1], want[0], wantR.Uint64(), r)
		}
		wide, wideRem := r.Divisor().DivideWide(hi, lo)
		if wide.Low != qlo || wide.High != qhi || wideRem != rem {
			return fmt.Errorf("%#x:%#x / %#x: DivideWide disagrees with the reciprocal", hi, lo, d)
		}
	}
	return nil
}

// longDivCase divides random operands with DivideLong. The divisor sometimes
// carries zero limbs on top, which must not change the result.
func longDivCase[T limb.Word](g *Generator[T], _ Params) error {
	u := g.Operand(0)
	v := g.Operand(1)
	v[len(v)-1] |= g.NonzeroWord()
	n := len(v)
	if g.Intn(4) == 0 {
		v = append(v, make([]T, 1+g.Intn(2))...)
	}
	if g.Intn(8) == 0 {
		// Equal top limbs force the qhat = max path.
		u = append(u, v[n-1], v[n-1])
	}

	q := make([]T, max(len(u)-n+1, 1))
	rem := slices.Clone(u)
	if !limb.DivideLong(mutOf(q), mutOf(rem), viewOf(v)) {
		return fmt.Errorf("DivideLong refused a nonzero %d-limb divisor", n)
	}
	wantQ, wantR := new(big.Int).QuoRem(toBig(u), toBig(v), new(big.Int))
	if err := expectLimbs("DivideLong quotient", q, fromBig[T](wantQ, len(q))); err != nil {
		return err
	}
	if wantQ.BitLen() > len(q)*limb.BitsOf[T]() {
		return errors.New("DivideLong quotient does not fit the buffer")
	}
	if err := expectLimbs("DivideLong remainder", rem, fromBig[T](wantR, len(rem))); err != nil {
		return err
	}

	zero := make([]T, len(v))
	untouched := slices.Clone(u)
	if limb.DivideLong(mutOf(q), mutOf(untouched), viewOf(zero)) {
		return errors.New("DivideLong accepted a zero divisor")
	}
	return expectLimbs("dividend after a refused division", untouched, u)
}
