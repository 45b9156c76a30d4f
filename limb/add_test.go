package limb

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCarryConservation propagates a carry through every limb of a zero
// buffer plus an all-ones pattern and out of the top.
func TestCarryConservation(t *testing.T) {
	t.Parallel()

	t.Run("repeating pattern", func(t *testing.T) {
		t.Parallel()
		z := []uint8{0, 0, 0, 0}
		f := mut(z).IncrementByRepeating(0xFF, true)
		assertLimbs(t, "value", z, []uint8{0, 0, 0, 0})
		if !f.Error {
			t.Error("carry out of the top limb was not reported")
		}
	})

	t.Run("same size buffer", func(t *testing.T) {
		t.Parallel()
		z := []uint8{0, 0, 0, 0}
		f := mut(z).IncrementBy(view([]uint8{0xFF, 0xFF, 0xFF, 0xFF}), true)
		assertLimbs(t, "value", z, []uint8{0, 0, 0, 0})
		if !f.Error {
			t.Error("carry out of the top limb was not reported")
		}
	})
}

func TestIncrementDecrement(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		run     func(z Mut[uint8]) Fallible[Mut[uint8]]
		initial []uint8
		want    []uint8
		wantErr bool
	}{
		{"increment carry", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.Increment(true) },
			[]uint8{0xFF, 0xFF, 1}, []uint8{0, 0, 2}, false},
		{"increment overflow", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.Increment(true) },
			[]uint8{0xFF}, []uint8{0}, true},
		{"increment no carry", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.Increment(false) },
			[]uint8{0xFF}, []uint8{0xFF}, false},
		{"increment word", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.IncrementWord(0x10, true) },
			[]uint8{0xF0, 0}, []uint8{0x01, 1}, false},
		{"increment empty", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.IncrementWord(1, false) },
			[]uint8{}, []uint8{}, true},
		{"increment shorter", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.IncrementBy(view([]uint8{1}), false) },
			[]uint8{0xFF, 0xFF, 0}, []uint8{0, 0, 1}, false},
		{"increment longer zero excess", func(z Mut[uint8]) Fallible[Mut[uint8]] {
			return z.IncrementBy(view([]uint8{1, 0, 0}), false)
		}, []uint8{1}, []uint8{2}, false},
		{"increment longer nonzero excess", func(z Mut[uint8]) Fallible[Mut[uint8]] {
			return z.IncrementBy(view([]uint8{1, 0, 1}), false)
		}, []uint8{1}, []uint8{2}, true},
		{"decrement borrow", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.Decrement(true) },
			[]uint8{0, 0, 1}, []uint8{0xFF, 0xFF, 0}, false},
		{"decrement underflow", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.Decrement(true) },
			[]uint8{0, 0}, []uint8{0xFF, 0xFF}, true},
		{"decrement word", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.DecrementWord(2, true) },
			[]uint8{2, 1}, []uint8{0xFF, 0}, false},
		{"decrement by", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.DecrementBy(view([]uint8{1, 1}), false) },
			[]uint8{0, 2, 5}, []uint8{0xFF, 0, 5}, false},
		{"decrement repeating", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.DecrementByRepeating(0xFF, false) },
			[]uint8{0, 0}, []uint8{1, 0}, true},
		{"negate", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.Negate() },
			[]uint8{1, 0}, []uint8{0xFF, 0xFF}, true},
		{"negate zero", func(z Mut[uint8]) Fallible[Mut[uint8]] { return z.Negate() },
			[]uint8{0, 0}, []uint8{0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z := append([]uint8(nil), tt.initial...)
			f := tt.run(mut(z))
			assertLimbs(t, "value", z, tt.want)
			if f.Error != tt.wantErr {
				t.Errorf("Error = %v, want %v", f.Error, tt.wantErr)
			}
		})
	}
}

func TestIncrementByProduct(t *testing.T) {
	t.Parallel()
	z := []uint8{1, 0, 0}
	f := mut(z).IncrementByProduct(view([]uint8{0xFF, 0xFF}), 0xFF, 3)
	// 1 + 0xFFFF*0xFF + 3 = 0xFEFF05
	assertLimbs(t, "value", z, []uint8{0x05, 0xFF, 0xFE})
	if f.Error {
		t.Error("unexpected overflow")
	}

	z = []uint8{0, 0}
	if f := mut(z).IncrementByProduct(view([]uint8{0xFF, 0xFF}), 2, 0); !f.Error {
		t.Error("product wider than the receiver was not reported")
	}
}

// checkAddSub verifies IncrementBy against math/big modulo the receiver size,
// then undoes it with DecrementBy. The borrow of the undo mirrors the carry.
func checkAddSub[T Word](rawZ, rawX []uint64, carry bool) bool {
	if len(rawX) > len(rawZ) {
		rawX = rawX[:len(rawZ)]
	}
	z, x := limbsOf[T](rawZ), limbsOf[T](rawX)
	zb, xb := toBig(z), toBig(x)
	limit := new(big.Int).Lsh(big.NewInt(1), uint(len(z)*BitsOf[T]()))

	sum := new(big.Int).Add(zb, xb)
	sum.Add(sum, big.NewInt(int64(boolInt(carry))))
	up := mut(z).IncrementBy(view(x), carry)
	if up.Error != (sum.Cmp(limit) >= 0) || toBig(z).Cmp(truncate[T](sum, len(z))) != 0 {
		return false
	}

	down := mut(z).DecrementBy(view(x), carry)
	return down.Error == up.Error && toBig(z).Cmp(zb) == 0
}

func TestAddSubProperties(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(propertyParameters(200, 24))

	properties.Property("uint8 add/sub agree with math/big", prop.ForAll(
		checkAddSub[uint8],
		gen.SliceOf(gen.UInt64()), gen.SliceOf(gen.UInt64()), gen.Bool(),
	))
	properties.Property("uint64 add/sub agree with math/big", prop.ForAll(
		checkAddSub[uint64],
		gen.SliceOf(gen.UInt64()), gen.SliceOf(gen.UInt64()), gen.Bool(),
	))

	properties.TestingRun(t)
}
