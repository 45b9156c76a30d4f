package checks

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/agbru/limbcalc/limb"
)

// shiftCase checks upshift against multiplication by a power of two,
// downshift with the appendix fill against floor division, and that a
// downshift undoes an upshift below the bits pushed out.
func shiftCase[T limb.Word](g *Generator[T], _ Params) error {
	w := limb.BitsOf[T]()
	x := g.Operand(1)
	appendix := g.Bit()
	size := len(x) * w
	distance := g.Intn(size + 2*w)
	value := toBigSigned(x, appendix)

	z := slices.Clone(x)
	m, _ := limb.NewMut(z, appendix)
	up := m.UpshiftBits(0, distance)
	want := new(big.Int).Lsh(value, uint(distance))
	if err := expectLimbs(fmt.Sprintf("UpshiftBits(%d)", distance), z, fromBig[T](want, len(z))); err != nil {
		return err
	}
	if err := expectFlag(fmt.Sprintf("UpshiftBits(%d)", distance), up.Error, toBigSigned(z, appendix).Cmp(want) != 0); err != nil {
		return err
	}

	z = slices.Clone(x)
	m, _ = limb.NewMut(z, appendix)
	m.DownshiftBits(limb.Fill[T](appendix), distance)
	floor := new(big.Int).Rsh(value, uint(distance))
	if got := toBigSigned(z, appendix); got.Cmp(floor) != 0 {
		return fmt.Errorf("arithmetic DownshiftBits(%d) = %v, want %v", distance, got, floor)
	}

	env := g.Word()
	z = slices.Clone(x)
	m = mutOf(z)
	m.UpshiftBits(env, distance)
	m.DownshiftBits(env, distance)
	if distance < size {
		keep := new(big.Int).Lsh(big.NewInt(1), uint(size-distance))
		got := new(big.Int).Mod(toBig(z), keep)
		if low := new(big.Int).Mod(toBig(x), keep); got.Cmp(low) != 0 {
			return fmt.Errorf("downshift does not undo upshift by %d below bit %d", distance, size-distance)
		}
	}

	major, minor := g.Intn(len(x)+2), g.Intn(w)
	split := slices.Clone(x)
	joined := slices.Clone(x)
	r1 := mutOf(split).Upshift(env, major, minor)
	r2 := mutOf(joined).UpshiftBits(env, major*w+minor)
	if !slices.Equal(split, joined) || r1.Error != r2.Error {
		return fmt.Errorf("Upshift(%d, %d) differs from UpshiftBits(%d)", major, minor, major*w+minor)
	}
	return nil
}

// countingCase compares the bit queries with a scan of the signed value.
func countingCase[T limb.Word](g *Generator[T], _ Params) error {
	w := limb.BitsOf[T]()
	x := g.Operand(0)
	appendix := g.Bit()
	v := signedView(x, appendix)
	size := len(x) * w

	bitAt := func(i int) limb.Bit { return limb.Bit(x[i/w] >> uint(i%w) & 1) }
	ones := 0
	for i := range size {
		ones += int(bitAt(i))
	}
	run := func(bit limb.Bit, from, step int) int {
		n := 0
		for i := from; i >= 0 && i < size && bitAt(i) == bit; i += step {
			n++
		}
		return n
	}

	for _, bit := range []limb.Bit{limb.Zero, limb.One} {
		want := ones
		if bit == limb.Zero {
			want = size - ones
		}
		got := v.Count(bit)
		if n, finite := got.Natural(); bit == appendix {
			if !got.IsInfinite() {
				return fmt.Errorf("Count(%d) = %v with appendix %d, want infinite", bit, got, appendix)
			}
		} else if !finite || n != want {
			return fmt.Errorf("Count(%d) = %v, want %d", bit, got, want)
		}
		if got, want := v.Ascending(bit), run(bit, 0, 1); got != want {
			return fmt.Errorf("Ascending(%d) = %d, want %d", bit, got, want)
		}
		if got, want := v.Descending(bit), run(bit, size-1, -1); got != want {
			return fmt.Errorf("Descending(%d) = %d, want %d", bit, got, want)
		}
		if v.NonAscending(bit)+v.Ascending(bit) != size || v.NonDescending(bit)+v.Descending(bit) != size {
			return fmt.Errorf("non-runs of %d do not complement runs to %d", bit, size)
		}
	}

	// Two's complement width: magnitude bits of x or of ^x, plus the sign.
	value := toBigSigned(x, appendix)
	if value.Sign() < 0 {
		value.Not(value)
	}
	if got, want := v.Entropy(), value.BitLen()+1; got != want {
		return fmt.Errorf("Entropy() = %d, want %d", got, want)
	}
	return nil
}

// compareCase compares random values under random signedness, with and
// without appendix padding, against the order of the big.Int values.
func compareCase[T limb.Word](g *Generator[T], _ Params) error {
	a, b := g.Operand(0), g.Operand(0)
	appA, appB := g.Bit(), g.Bit()
	modeA, modeB := signedness(g.Bool()), signedness(g.Bool())
	if g.Bool() {
		modeB = modeA
	}
	if g.Intn(4) == 0 {
		b, appB = slices.Clone(a), appA
	}

	want := oracleCompare(a, appA, modeA, b, appB, modeB)
	va, vb := signedView(a, appA), signedView(b, appB)
	if got := limb.Compare(va, modeA, vb, modeB); got != want {
		return fmt.Errorf("Compare = %d, want %d", got, want)
	}

	padA := append(slices.Clone(a), repeat(limb.Fill[T](appA), g.Intn(3))...)
	padB := append(slices.Clone(b), repeat(limb.Fill[T](appB), g.Intn(3))...)
	pa, pb := signedView(padA, appA), signedView(padB, appB)
	if got := limb.Compare(pa, modeA, pb, modeB); got != want {
		return fmt.Errorf("Compare with padding = %d, want %d", got, want)
	}
	if modeA == modeB && limb.Equal(pa, pb, modeA) != (want == 0) {
		return errors.New("Equal disagrees with Compare")
	}

	n := pa.Normalized()
	if !n.IsNormal() || toBigSigned(n.Limbs(), appA).Cmp(toBigSigned(a, appA)) != 0 {
		return fmt.Errorf("Normalized() changed the value or is not normal (%d limbs)", n.Len())
	}

	wantSign := toBigSigned(a, appA).Sign()
	if appA == limb.One && modeA == limb.Unsigned {
		wantSign = 1
	}
	if got := pa.Signum(modeA); got != wantSign {
		return fmt.Errorf("Signum(%v) = %d, want %d", modeA, got, wantSign)
	}
	return nil
}

func signedness(signed bool) limb.Signedness {
	if signed {
		return limb.Signed
	}
	return limb.Unsigned
}

func repeat[T limb.Word](fill T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = fill
	}
	return out
}

// oracleCompare orders negative signed values below finite values, and
// unsigned values with an appendix of one above them. Within a class the
// big.Int values decide.
func oracleCompare[T limb.Word](a []T, appA limb.Bit, modeA limb.Signedness, b []T, appB limb.Bit, modeB limb.Signedness) int {
	class := func(app limb.Bit, mode limb.Signedness) int {
		switch {
		case app == limb.Zero:
			return 0
		case mode == limb.Signed:
			return -1
		}
		return 1
	}
	ca, cb := class(appA, modeA), class(appB, modeB)
	if ca != cb {
		if ca < cb {
			return -1
		}
		return 1
	}
	return toBigSigned(a, appA).Cmp(toBigSigned(b, appB))
}

// recastCase reads the value back as bytes and as 64-bit words and copies it
// through a 64-bit buffer and back.
func recastCase[T limb.Word](g *Generator[T], _ Params) error {
	x := g.Operand(0)
	appendix := g.Bit()
	v := signedView(x, appendix)
	value := toBigSigned(x, appendix)

	octets := limb.RecastOf[uint8](v)
	wantBytes := fromBig[uint8](value, octets.Len()+2)
	for i, want := range wantBytes {
		if got := octets.Index(i); got != want {
			return fmt.Errorf("byte %d is %#x, want %#x", i, got, want)
		}
	}
	if octets.Appendix() != appendix {
		return errors.New("recast lost the appendix")
	}

	words := limb.RecastOf[uint64](v)
	wide := make([]uint64, words.Len())
	wm, _ := limb.NewMut(wide, appendix)
	if !limb.CopyRecast(wm, v) {
		return errors.New("CopyRecast into a full-size buffer reported loss")
	}
	if err := expectLimbs("64-bit recast", wide, fromBig[uint64](value, len(wide))); err != nil {
		return err
	}

	back := make([]T, len(x))
	bm, _ := limb.NewMut(back, appendix)
	if !limb.CopyRecast(bm, wm.View()) {
		return errors.New("CopyRecast back to the source width reported loss")
	}
	if err := expectLimbs("recast round trip", back, x); err != nil {
		return err
	}

	if len(x) > 0 {
		short := make([]T, len(x)-1)
		sm, _ := limb.NewMut(short, appendix)
		fitsShort := x[len(x)-1] == limb.Fill[T](appendix)
		if got := limb.CopyRecast(sm, v); got != fitsShort {
			return fmt.Errorf("CopyRecast into %d limbs reported %v, want %v", len(short), got, fitsShort)
		}
	}
	return nil
}
