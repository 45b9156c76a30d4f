package limb

import (
	"testing"
)

func TestViewConstruction(t *testing.T) {
	t.Parallel()

	limbs := []uint16{1, 2, 3}
	tests := []struct {
		name   string
		p      *uint16
		count  int
		wantOK bool
	}{
		{"valid", &limbs[0], 3, true},
		{"nil empty", nil, 0, true},
		{"nil nonempty", nil, 1, false},
		{"negative", &limbs[0], -1, false},
		{"over capacity", &limbs[0], Capacity[uint16]() + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, ok := ViewFromPointer(tt.p, tt.count, One)
			if ok != tt.wantOK {
				t.Fatalf("ViewFromPointer ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && v.Len() != tt.count {
				t.Errorf("Len() = %d, want %d", v.Len(), tt.count)
			}
			_, ok = MutFromPointer(tt.p, tt.count, Zero)
			if ok != tt.wantOK {
				t.Errorf("MutFromPointer ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}

	if _, ok := NewView(limbs, Zero); !ok {
		t.Error("NewView rejected a small slice")
	}
}

func TestViewIndexReadsAppendix(t *testing.T) {
	t.Parallel()
	v, _ := NewView([]uint8{7, 9}, One)
	tests := []struct {
		i    int
		want uint8
	}{
		{0, 7},
		{1, 9},
		{2, 0xFF},
		{100, 0xFF},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := v.Index(tt.i); got != tt.want {
			t.Errorf("Index(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
	if v.Size() != 16 {
		t.Errorf("Size() = %d, want 16", v.Size())
	}
}

func TestViewLoadStraddlesLimbs(t *testing.T) {
	t.Parallel()
	v, _ := NewView([]uint8{0xF0, 0x0F}, One)
	if got := v.Load(4); got != 0xFF {
		t.Errorf("Load(4) = %#x, want 0xff", got)
	}
	if got := v.Load(12); got != 0xF0 {
		t.Errorf("Load(12) = %#x, want 0xf0 (appendix fill above)", got)
	}
	if got := v.Load(0); got != 0xF0 {
		t.Errorf("Load(0) = %#x", got)
	}
}

func TestViewBelowZeroReadsZero(t *testing.T) {
	t.Parallel()
	// Positions below the buffer read as zero whatever the appendix, the
	// same fill an upshift brings in from below.
	for _, appendix := range []Bit{Zero, One} {
		v, _ := NewView([]uint8{0xAB, 0xCD}, appendix)
		for _, i := range []int{-1, -2, -100} {
			if got := v.Index(i); got != 0 {
				t.Errorf("appendix %d: Index(%d) = %#x, want 0", appendix, i, got)
			}
		}
		for _, off := range []int{-1, -4, -8, -9} {
			if got := v.Load(off); got != 0 {
				t.Errorf("appendix %d: Load(%d) = %#x, want 0", appendix, off, got)
			}
		}
		if got, want := v.Index(2), Fill[uint8](appendix); got != want {
			t.Errorf("appendix %d: Index(2) = %#x, want fill %#x", appendix, got, want)
		}
	}
}

func TestViewSplitClamps(t *testing.T) {
	t.Parallel()
	v, _ := NewView([]uint32{1, 2, 3}, One)
	tests := []struct {
		at            int
		lowLen, hiLen int
	}{
		{-5, 0, 3},
		{0, 0, 3},
		{2, 2, 1},
		{3, 3, 0},
		{9, 3, 0},
	}
	for _, tt := range tests {
		low, high := v.Split(tt.at)
		if low.Len() != tt.lowLen || high.Len() != tt.hiLen {
			t.Errorf("Split(%d) lens = %d, %d, want %d, %d", tt.at, low.Len(), high.Len(), tt.lowLen, tt.hiLen)
		}
		if low.Appendix() != Zero || high.Appendix() != One {
			t.Errorf("Split(%d) appendices = %d, %d", tt.at, low.Appendix(), high.Appendix())
		}
	}
}

func TestNormalized(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		body     []uint8
		appendix Bit
		want     int
	}{
		{"zeros", []uint8{0, 0, 0}, Zero, 0},
		{"ones", []uint8{0xFF, 0xFF}, One, 0},
		{"trailing zeros", []uint8{5, 0, 0}, Zero, 1},
		{"trailing ones", []uint8{5, 0xFF}, One, 1},
		{"ones under zero appendix", []uint8{5, 0xFF}, Zero, 2},
		{"empty", nil, One, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, _ := NewView(tt.body, tt.appendix)
			n := v.Normalized()
			if n.Len() != tt.want {
				t.Errorf("Normalized().Len() = %d, want %d", n.Len(), tt.want)
			}
			if !n.IsNormal() {
				t.Error("Normalized() is not normal")
			}
			if Compare(v, Signed, n, Signed) != 0 {
				t.Error("Normalized() changed the value")
			}
		})
	}
}

func TestMutInvert(t *testing.T) {
	t.Parallel()
	z, _ := NewMut([]uint8{0x0F, 0x00}, Zero)
	z = z.Invert()
	assertLimbs(t, "Invert()", z.Limbs(), []uint8{0xF0, 0xFF})
	if z.Appendix() != One {
		t.Error("Invert() kept the appendix")
	}
}

func TestRecast(t *testing.T) {
	t.Parallel()

	t.Run("narrow to wide", func(t *testing.T) {
		t.Parallel()
		v, _ := NewView([]uint8{0x01, 0x02, 0x03}, One)
		r := RecastOf[uint16](v)
		if r.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", r.Len())
		}
		if r.Index(0) != 0x0201 || r.Index(1) != 0xFF03 || r.Index(2) != 0xFFFF {
			t.Errorf("Index = %#x %#x %#x", r.Index(0), r.Index(1), r.Index(2))
		}
	})

	t.Run("wide to narrow", func(t *testing.T) {
		t.Parallel()
		v, _ := NewView([]uint32{0x04030201}, Zero)
		r := RecastOf[uint8](v)
		if r.Len() != 4 {
			t.Fatalf("Len() = %d, want 4", r.Len())
		}
		for i := 0; i < 4; i++ {
			if r.Index(i) != uint8(i+1) {
				t.Errorf("Index(%d) = %d, want %d", i, r.Index(i), i+1)
			}
		}
	})

	t.Run("copy reports loss", func(t *testing.T) {
		t.Parallel()
		v, _ := NewView([]uint16{0x1234, 0x0000}, Zero)
		dst := make([]uint8, 2)
		if !CopyRecast(mut(dst), v) {
			t.Error("CopyRecast lost zero limbs")
		}
		assertLimbs(t, "dst", dst, []uint8{0x34, 0x12})

		v, _ = NewView([]uint16{0x1234, 0x0001}, Zero)
		if CopyRecast(mut(dst), v) {
			t.Error("CopyRecast dropped a nonzero limb without reporting it")
		}
	})

	t.Run("round trip preserves value", func(t *testing.T) {
		t.Parallel()
		src := []uint16{0xBEEF, 0xCAFE, 0x0042}
		v, _ := NewView(src, Zero)
		wide := make([]uint64, 1)
		if !CopyRecast(mut(wide), v) {
			t.Fatal("CopyRecast to uint64 failed")
		}
		if toBig(wide).Cmp(toBig(src)) != 0 {
			t.Errorf("recast value %s, want %s", toBig(wide), toBig(src))
		}
	})
}

func TestCount(t *testing.T) {
	t.Parallel()
	if !Infinite.IsInfinite() || Infinite.String() != "∞" {
		t.Error("Infinite is not infinite")
	}
	c := Finite(5)
	if n, ok := c.Natural(); !ok || n != 5 {
		t.Errorf("Natural() = %d, %v", n, ok)
	}
	if got := c.Complement(24).String(); got != "19" {
		t.Errorf("Complement(24) = %s", got)
	}
	if !Infinite.Complement(24).IsInfinite() {
		t.Error("Complement of Infinite is finite")
	}
	if n, _ := Finite(-3).Natural(); n != 0 {
		t.Errorf("Finite(-3) = %d", n)
	}
}

func TestFallible(t *testing.T) {
	t.Parallel()
	f := Success(3)
	if v, ok := f.Optional(); !ok || v != 3 {
		t.Errorf("Success(3).Optional() = %d, %v", v, ok)
	}
	f = f.Veto(false).Veto(true).Veto(false)
	if !f.Error {
		t.Error("Veto(true) did not stick")
	}
	if _, err := f.Unwrap(errOverflow); err != errOverflow {
		t.Errorf("Unwrap = %v", err)
	}
	if _, err := Success("x").Unwrap(errOverflow); err != nil {
		t.Errorf("Unwrap of success = %v", err)
	}
	if got := Combine(Failure(1), Success("y")); !got.Error || got.Value != "y" {
		t.Errorf("Combine = %+v", got)
	}
}

type overflowError struct{}

func (overflowError) Error() string { return "overflow" }

var errOverflow error = overflowError{}
