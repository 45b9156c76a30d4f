package checks

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/agbru/limbcalc/limb"
)

// carryCase adds and then subtracts the same operand, word and repeated
// pattern. Each sum is compared to big.Int and must be undone exactly by the
// matching decrement, which reports the same overflow.
func carryCase[T limb.Word](g *Generator[T], _ Params) error {
	z := g.Operand(0)
	x := g.Limbs(g.Intn(len(z) + 1))
	carry := g.Bool()
	size := len(z) * limb.BitsOf[T]()
	orig := slices.Clone(z)

	want := new(big.Int).Add(toBig(z), toBig(x))
	if carry {
		want.Add(want, big.NewInt(1))
	}
	sum := mutOf(z).IncrementBy(viewOf(x), carry)
	if err := expectLimbs("IncrementBy", z, fromBig[T](want, len(z))); err != nil {
		return err
	}
	if err := expectFlag("IncrementBy", sum.Error, want.BitLen() > size); err != nil {
		return err
	}
	diff := mutOf(z).DecrementBy(viewOf(x), carry)
	if err := expectLimbs("DecrementBy after IncrementBy", z, orig); err != nil {
		return err
	}
	if err := expectFlag("DecrementBy after IncrementBy", diff.Error, sum.Error); err != nil {
		return err
	}

	w := g.Word()
	want = new(big.Int).Add(toBig(z), new(big.Int).SetUint64(uint64(w)))
	sum = mutOf(z).IncrementWord(w, false)
	if err := expectLimbs("IncrementWord", z, fromBig[T](want, len(z))); err != nil {
		return err
	}
	if err := expectFlag("IncrementWord", sum.Error, want.BitLen() > size); err != nil {
		return err
	}
	if diff := mutOf(z).DecrementWord(w, false); diff.Error != sum.Error || !slices.Equal(z, orig) {
		return errors.New("DecrementWord does not undo IncrementWord")
	}

	// pattern repeated over len(z) limbs is pattern * (2^size - 1) / (2^W - 1).
	pattern := g.Word()
	repeated := new(big.Int).Sub(modulus[T](len(z)), big.NewInt(1))
	repeated.Quo(repeated, new(big.Int).SetUint64(uint64(^T(0))))
	repeated.Mul(repeated, new(big.Int).SetUint64(uint64(pattern)))
	want = new(big.Int).Add(toBig(z), repeated)
	if carry {
		want.Add(want, big.NewInt(1))
	}
	sum = mutOf(z).IncrementByRepeating(pattern, carry)
	if err := expectLimbs("IncrementByRepeating", z, fromBig[T](want, len(z))); err != nil {
		return err
	}
	if err := expectFlag("IncrementByRepeating", sum.Error, want.BitLen() > size); err != nil {
		return err
	}
	if diff := mutOf(z).DecrementByRepeating(pattern, carry); diff.Error != sum.Error || !slices.Equal(z, orig) {
		return errors.New("DecrementByRepeating does not undo IncrementByRepeating")
	}
	return nil
}

// roundTripCase divides by a random word, then multiplies back and adds the
// remainder. The reciprocal-driven division must agree limb for limb.
func roundTripCase[T limb.Word](g *Generator[T], _ Params) error {
	x := g.Operand(0)
	d, _ := limb.NewDivisor(g.NonzeroWord())

	q := slices.Clone(x)
	r := mutOf(q).DivideByWord(d)

	wantQ, wantR := new(big.Int).QuoRem(toBig(x), new(big.Int).SetUint64(uint64(d.Value())), new(big.Int))
	if err := expectLimbs("DivideByWord quotient", q, fromBig[T](wantQ, len(x))); err != nil {
		return err
	}
	if uint64(r) != wantR.Uint64() {
		return fmt.Errorf("DivideByWord remainder %#x, want %#x", r, wantR.Uint64())
	}
	if rem := viewOf(x).RemainderByWord(d); rem != r {
		return fmt.Errorf("RemainderByWord %#x, want %#x", rem, r)
	}

	q2 := slices.Clone(x)
	r2 := mutOf(q2).DivideByWordReciprocal(limb.NewReciprocal21(d))
	if err := expectLimbs("DivideByWordReciprocal quotient", q2, q); err != nil {
		return err
	}
	if r2 != r {
		return fmt.Errorf("DivideByWordReciprocal remainder %#x, want %#x", r2, r)
	}

	if top := mutOf(q).MultiplyWord(d.Value(), r); top != 0 {
		return fmt.Errorf("q*d + r overflowed with carry %#x", top)
	}
	return expectLimbs("q*d + r", q, x)
}

// multiplyCase compares Karatsuba, with a small random threshold so the
// recursion is reached, against schoolbook multiplication and big.Int.
func multiplyCase[T limb.Word](g *Generator[T], p Params) error {
	x := g.Operand(1)
	y := g.Operand(1)
	m := limb.Multiplier[T]{Threshold: 2 + g.Intn(7)}
	if g.Intn(4) == 0 && p.KaratsubaThreshold > 0 {
		m.Threshold = p.KaratsubaThreshold
	}
	n := len(x) + len(y)
	want := fromBig[T](new(big.Int).Mul(toBig(x), toBig(y)), n)

	long := make([]T, n)
	if res := mutOf(long).SetLongProduct(viewOf(x), viewOf(y), 0); res.Error {
		return errors.New("SetLongProduct reported overflow with full-width output")
	}
	if err := expectLimbs("SetLongProduct", long, want); err != nil {
		return err
	}

	scratch := make([]T, limb.ProductScratch(len(x), len(y)))
	fast := make([]T, n)
	m.Product(mutOf(fast), viewOf(x), viewOf(y), mutOf(scratch))
	if err := expectLimbs(fmt.Sprintf("Product (threshold %d)", m.Threshold), fast, long); err != nil {
		return err
	}
	swapped := make([]T, n)
	m.Product(mutOf(swapped), viewOf(y), viewOf(x), mutOf(scratch))
	if err := expectLimbs("Product with swapped operands", swapped, fast); err != nil {
		return err
	}

	inc := g.Word()
	withInc := make([]T, n)
	mutOf(withInc).SetLongProduct(viewOf(x), viewOf(y), inc)
	wantInc := new(big.Int).Mul(toBig(x), toBig(y))
	wantInc.Add(wantInc, new(big.Int).SetUint64(uint64(inc)))
	if err := expectLimbs("SetLongProduct with increment", withInc, fromBig[T](wantInc, n)); err != nil {
		return err
	}

	short := make([]T, n-1)
	res := mutOf(short).SetLongProduct(viewOf(x), viewOf(y), 0)
	if err := expectLimbs("truncated SetLongProduct", short, want[:n-1]); err != nil {
		return err
	}
	if err := expectFlag("truncated SetLongProduct", res.Error, want[n-1] != 0); err != nil {
		return err
	}

	sqWant := fromBig[T](new(big.Int).Mul(toBig(x), toBig(x)), 2*len(x))
	sqLong := make([]T, 2*len(x))
	mutOf(sqLong).SetLongSquare(viewOf(x), 0)
	if err := expectLimbs("SetLongSquare", sqLong, sqWant); err != nil {
		return err
	}
	sqFast := make([]T, 2*len(x))
	m.Square(mutOf(sqFast), viewOf(x), mutOf(make([]T, limb.SquareScratch(len(x)))))
	return expectLimbs(fmt.Sprintf("Square (threshold %d)", m.Threshold), sqFast, sqWant)
}
