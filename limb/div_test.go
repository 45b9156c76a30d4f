package limb

import (
	"math/big"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// ─────────────────────────────────────────────────────────────────────────────
// Single-word division
// ─────────────────────────────────────────────────────────────────────────────

func TestNewDivisorRejectsZero(t *testing.T) {
	t.Parallel()
	if _, ok := NewDivisor[uint32](0); ok {
		t.Error("NewDivisor(0) succeeded")
	}
	if _, ok := ReciprocalOf[uint8](0); ok {
		t.Error("ReciprocalOf(0) succeeded")
	}
	if _, ok := Reciprocal21Of[uint64](0); ok {
		t.Error("Reciprocal21Of(0) succeeded")
	}
	d, ok := NewDivisor[uint32](9)
	if !ok || d.Value() != 9 {
		t.Errorf("NewDivisor(9) = %v, %v", d.Value(), ok)
	}
}

func TestDivideByWordConcrete(t *testing.T) {
	t.Parallel()
	z := []uint8{^uint8(2), ^uint8(4), ^uint8(6), 9}
	d, _ := NewDivisor[uint8](2)
	r := mut(z).DivideByWord(d)
	assertLimbs(t, "quotient", z, []uint8{^uint8(1), ^uint8(2), ^uint8(3), 4})
	if r != 1 {
		t.Errorf("remainder = %d, want 1", r)
	}
}

// checkRoundTrip verifies (B / d) * d + (B % d) == B without overflow, and
// that every single-word division entry point agrees.
func checkRoundTrip[T Word](raw []uint64, rawD uint64) bool {
	d, ok := NewDivisor(T(rawD))
	if !ok {
		return true
	}
	b := limbsOf[T](raw)
	q := slices.Clone(b)
	r := mut(q).DivideByWord(d)
	if r != view(b).RemainderByWord(d) {
		return false
	}
	viaReciprocal := slices.Clone(b)
	if mut(viaReciprocal).DivideByWordReciprocal(NewReciprocal21(d)) != r || !slices.Equal(viaReciprocal, q) {
		return false
	}
	back := slices.Clone(q)
	carry := mut(back).MultiplyWord(d.Value(), r)
	return carry == 0 && slices.Equal(back, b)
}

func TestDivisionRoundTrip(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(propertyParameters(300, 32))

	properties.Property("uint8", prop.ForAll(checkRoundTrip[uint8], gen.SliceOf(gen.UInt64()), gen.UInt64()))
	properties.Property("uint16", prop.ForAll(checkRoundTrip[uint16], gen.SliceOf(gen.UInt64()), gen.UInt64()))
	properties.Property("uint32", prop.ForAll(checkRoundTrip[uint32], gen.SliceOf(gen.UInt64()), gen.UInt64()))
	properties.Property("uint64", prop.ForAll(checkRoundTrip[uint64], gen.SliceOf(gen.UInt64()), gen.UInt64()))
	properties.Property("uint64 small divisor", prop.ForAll(
		checkRoundTrip[uint64], gen.SliceOf(gen.UInt64()), gen.UInt64Range(1, 1000),
	))

	properties.TestingRun(t)
}

// ─────────────────────────────────────────────────────────────────────────────
// Reciprocal dividers
// ─────────────────────────────────────────────────────────────────────────────

func TestReciprocalSeven(t *testing.T) {
	t.Parallel()
	r, ok := ReciprocalOf[uint8](7)
	if !ok {
		t.Fatal("ReciprocalOf(7) failed")
	}
	if r.Multiplier != 146 || r.Increment != 146 || r.Shift != 10 {
		t.Fatalf("ReciprocalOf(7) = (%d, %d, %d), want (146, 146, 10)", r.Multiplier, r.Increment, r.Shift)
	}
	for x := 0; x < 256; x++ {
		if got := (x*146 + 146) >> 10; got != x/7 {
			t.Fatalf("(%d*146+146)>>10 = %d, want %d", x, got, x/7)
		}
		if q, rem := r.Divide(uint8(x)); int(q) != x/7 || int(rem) != x%7 {
			t.Fatalf("Divide(%d) = %d, %d", x, q, rem)
		}
	}
}

func TestReciprocalPowerOfTwo(t *testing.T) {
	t.Parallel()
	for s := 0; s < 16; s++ {
		r, _ := ReciprocalOf(uint16(1) << s)
		if r.Multiplier != 0xFFFF || r.Increment != 0xFFFF || r.Shift != 16+s {
			t.Errorf("ReciprocalOf(1<<%d) = (%d, %d, %d)", s, r.Multiplier, r.Increment, r.Shift)
		}
	}
}

// TestReciprocalAgreementExhaustive8 checks every divisor against every
// dividend for 8-bit words.
func TestReciprocalAgreementExhaustive8(t *testing.T) {
	t.Parallel()
	for dv := 1; dv < 256; dv++ {
		d, _ := NewDivisor(uint8(dv))
		r := NewReciprocal(d)
		for x := 0; x < 256; x++ {
			q, rem := d.Divide(uint8(x))
			gq, grem := r.Divide(uint8(x))
			if q != gq || rem != grem {
				t.Fatalf("d=%d x=%d: reciprocal (%d, %d), hardware (%d, %d)", dv, x, gq, grem, q, rem)
			}
		}
	}
}

// TestReciprocalAgreement16 checks every 16-bit divisor against a stride of
// dividends plus the values next to multiples of the divisor.
func TestReciprocalAgreement16(t *testing.T) {
	t.Parallel()
	for dv := 1; dv < 1<<16; dv++ {
		d, _ := NewDivisor(uint16(dv))
		r := NewReciprocal(d)
		probe := func(x uint16) {
			q, rem := d.Divide(x)
			if gq, grem := r.Divide(x); q != gq || rem != grem {
				t.Fatalf("d=%d x=%d: reciprocal (%d, %d), hardware (%d, %d)", dv, x, gq, grem, q, rem)
			}
		}
		for x := 0; x < 1<<16; x += 997 {
			probe(uint16(x))
		}
		probe(0xFFFF)
		probe(uint16(dv - 1))
		probe(uint16(dv))
		if top := 0xFFFF - 0xFFFF%dv; top > 0 {
			probe(uint16(top))
			probe(uint16(top - 1))
		}
	}
}

func checkReciprocal[T Word](rawD, rawX uint64) bool {
	d, ok := NewDivisor(T(rawD))
	if !ok {
		return true
	}
	x := T(rawX)
	q, rem := d.Divide(x)
	gq, grem := NewReciprocal(d).Divide(x)
	return q == gq && rem == grem && NewReciprocal(d).Quotient(x) == q
}

func checkReciprocal21[T Word](rawD, rawHi, rawLo uint64) bool {
	d, ok := NewDivisor(T(rawD))
	if !ok {
		return true
	}
	hi, lo := T(rawHi), T(rawLo)
	want, rem := d.DivideWide(hi, lo)
	qhi, qlo, grem := NewReciprocal21(d).Divide(hi, lo)
	return qhi == want.High && qlo == want.Low && grem == rem
}

func TestReciprocalAgreementProperties(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(propertyParameters(2000, 8))

	divisors := gen.OneGenOf(
		gen.UInt64(),
		gen.UInt64Range(1, 300),
		gen.UInt64Range(1, 64).Map(func(s uint64) uint64 { return 1 << (s - 1) }),
		gen.UInt64Range(1, 64).Map(func(s uint64) uint64 { return 1<<(s-1) + 1 }),
		gen.UInt64Range(1, 64).Map(func(s uint64) uint64 { return ^uint64(0) >> (s - 1) }),
	)
	properties.Property("uint32 single word", prop.ForAll(checkReciprocal[uint32], divisors, gen.UInt64()))
	properties.Property("uint64 single word", prop.ForAll(checkReciprocal[uint64], divisors, gen.UInt64()))
	properties.Property("uint16 double word", prop.ForAll(checkReciprocal21[uint16], divisors, gen.UInt64(), gen.UInt64()))
	properties.Property("uint32 double word", prop.ForAll(checkReciprocal21[uint32], divisors, gen.UInt64(), gen.UInt64()))
	properties.Property("uint64 double word", prop.ForAll(checkReciprocal21[uint64], divisors, gen.UInt64(), gen.UInt64()))

	properties.TestingRun(t)
}

func TestReciprocal21Exhaustive8(t *testing.T) {
	t.Parallel()
	for dv := 1; dv < 256; dv++ {
		d, _ := NewDivisor(uint8(dv))
		r := NewReciprocal21(d)
		for n := 0; n < 1<<16; n += 3 {
			qhi, qlo, rem := r.Divide(uint8(n>>8), uint8(n))
			if q := int(qhi)<<8 | int(qlo); q != n/dv || int(rem) != n%dv {
				t.Fatalf("d=%d n=%d: got (%d, %d)", dv, n, q, rem)
			}
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Long division
// ─────────────────────────────────────────────────────────────────────────────

func checkDivideLong[T Word](rawU, rawV []uint64) bool {
	u, v := limbsOf[T](rawU), limbsOf[T](rawV)
	ub, vb := toBig(u), toBig(v)
	q := make([]T, len(u)+1)
	for i := range q {
		q[i] = 0x5A
	}
	ok := DivideLong(mut(q), mut(u), view(v))
	if vb.Sign() == 0 {
		return !ok
	}
	wantQ, wantR := new(big.Int).QuoRem(ub, vb, new(big.Int))
	return ok && toBig(q).Cmp(wantQ) == 0 && toBig(u).Cmp(wantR) == 0
}

func TestDivideLongProperties(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(propertyParameters(300, 24))

	// Small limb values make the top-limb collisions of the quotient estimate common.
	smallLimbs := gen.SliceOf(gen.UInt64Range(0, 3))
	properties.Property("uint8", prop.ForAll(checkDivideLong[uint8], gen.SliceOf(gen.UInt64()), gen.SliceOf(gen.UInt64())))
	properties.Property("uint8 small limbs", prop.ForAll(checkDivideLong[uint8], smallLimbs, smallLimbs))
	properties.Property("uint16", prop.ForAll(checkDivideLong[uint16], gen.SliceOf(gen.UInt64()), gen.SliceOf(gen.UInt64())))
	properties.Property("uint32", prop.ForAll(checkDivideLong[uint32], gen.SliceOf(gen.UInt64()), gen.SliceOf(gen.UInt64())))
	properties.Property("uint64", prop.ForAll(checkDivideLong[uint64], gen.SliceOf(gen.UInt64()), gen.SliceOf(gen.UInt64())))

	properties.TestingRun(t)
}

func TestDivideLongEdgeCases(t *testing.T) {
	t.Parallel()
	ones := ^uint64(0)
	tests := []struct {
		name string
		u, v []uint64
	}{
		{"zero divisor", []uint64{1, 2}, []uint64{0, 0}},
		{"empty divisor", []uint64{1, 2}, nil},
		{"short dividend", []uint64{5}, []uint64{1, 1}},
		{"single limb divisor", []uint64{ones, ones, 7}, []uint64{3, 0}},
		{"equal operands", []uint64{4, 9}, []uint64{4, 9}},
		{"top limbs collide", []uint64{0, 0, ones, ones}, []uint64{1, ones}},
		{"add back", []uint64{0, 0, 0, 0x80}, []uint64{1, 0, 0x80}},
		{"normalized divisor", []uint64{ones, ones, ones, ones}, []uint64{ones, ones}},
		{"unnormalized divisor", []uint64{ones, 0, ones, 1}, []uint64{ones, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !checkDivideLong[uint8](tt.u, tt.v) {
				t.Error("uint8 disagrees with math/big")
			}
			if !checkDivideLong[uint64](tt.u, tt.v) {
				t.Error("uint64 disagrees with math/big")
			}
		})
	}
}

func TestDivideLongFailsClosed(t *testing.T) {
	t.Parallel()
	u := []uint32{1, 2, 3, 4}
	q := []uint32{9, 9}
	if DivideLong(mut(q), mut(u), view([]uint32{5, 1})) {
		t.Fatal("DivideLong accepted a quotient buffer that is too short")
	}
	assertLimbs(t, "dividend", u, []uint32{1, 2, 3, 4})
	assertLimbs(t, "quotient", q, []uint32{9, 9})
}
