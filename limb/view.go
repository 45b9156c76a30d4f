package limb

import "unsafe"

// ─────────────────────────────────────────────────────────────────────────────
// Read-only view
// ─────────────────────────────────────────────────────────────────────────────

// View is a read-only window over caller-owned limbs, least significant first,
// followed by an infinite repetition of its appendix bit.
//
// A View owns nothing and must not outlive the slice it was built from.
type View[T Word] struct {
	body     []T
	appendix Bit
}

// NewView wraps body. It fails if the bit size of body does not fit in an int.
func NewView[T Word](body []T, appendix Bit) (View[T], bool) {
	if len(body) > Capacity[T]() {
		return View[T]{}, false
	}
	return View[T]{body: body, appendix: appendix & 1}, true
}

// ViewFromPointer wraps count limbs starting at p. It fails if p is nil while
// count is nonzero, if count is negative, or if count exceeds Capacity.
func ViewFromPointer[T Word](p *T, count int, appendix Bit) (View[T], bool) {
	body, ok := sliceFromPointer(p, count)
	if !ok {
		return View[T]{}, false
	}
	return View[T]{body: body, appendix: appendix & 1}, true
}

func sliceFromPointer[T Word](p *T, count int) ([]T, bool) {
	switch {
	case count < 0, count > Capacity[T]():
		return nil, false
	case count == 0:
		return nil, true
	case p == nil:
		return nil, false
	}
	return unsafe.Slice(p, count), true
}

// Len returns the number of stored limbs.
func (v View[T]) Len() int { return len(v.body) }

// Size returns the number of stored bits. It is always finite.
func (v View[T]) Size() int { return len(v.body) * BitsOf[T]() }

// Appendix returns the bit repeated beyond the stored limbs.
func (v View[T]) Appendix() Bit { return v.appendix }

// Limbs returns the stored limbs. Callers must treat them as read-only.
func (v View[T]) Limbs() []T { return v.body }

// Index returns limb i. Positions at or beyond Len read as the appendix fill;
// negative positions read as zero.
func (v View[T]) Index(i int) T {
	switch {
	case i < 0:
		return 0
	case i < len(v.body):
		return v.body[i]
	}
	return Fill[T](v.appendix)
}

// Load returns the word whose least significant bit sits at bitOffset. The
// word may straddle two limbs and the appendix.
func (v View[T]) Load(bitOffset int) T {
	if bitOffset < 0 {
		return 0
	}
	w := BitsOf[T]()
	major, minor := bitOffset/w, uint(bitOffset%w)
	return v.Index(major)>>minor | v.Index(major+1)<<(uint(w)-minor)
}

// Split partitions v at limb index at, clamped into [0, Len]. The low part is a
// plain digit block with a zero appendix; the high part keeps v's appendix.
func (v View[T]) Split(at int) (low, high View[T]) {
	at = clampIndex(at, len(v.body))
	return View[T]{body: v.body[:at]}, View[T]{body: v.body[at:], appendix: v.appendix}
}

// Normalized drops trailing limbs equal to the appendix fill. The represented
// value is unchanged.
func (v View[T]) Normalized() View[T] {
	v.body = trimFill(v.body, Fill[T](v.appendix))
	return v
}

// IsNormal reports whether the last limb, if any, differs from the appendix fill.
func (v View[T]) IsNormal() bool {
	return len(v.body) == 0 || v.body[len(v.body)-1] != Fill[T](v.appendix)
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutable view
// ─────────────────────────────────────────────────────────────────────────────

// Mut is a mutable window over caller-owned limbs. Arithmetic methods work in
// place; the caller must hold exclusive access to the limbs for the duration of
// a call, since any number of views may alias the same slice.
type Mut[T Word] struct {
	body     []T
	appendix Bit
}

// NewMut wraps body for in-place arithmetic. It fails like NewView.
func NewMut[T Word](body []T, appendix Bit) (Mut[T], bool) {
	if len(body) > Capacity[T]() {
		return Mut[T]{}, false
	}
	return Mut[T]{body: body, appendix: appendix & 1}, true
}

// MutFromPointer wraps count limbs starting at p. It fails like ViewFromPointer.
func MutFromPointer[T Word](p *T, count int, appendix Bit) (Mut[T], bool) {
	body, ok := sliceFromPointer(p, count)
	if !ok {
		return Mut[T]{}, false
	}
	return Mut[T]{body: body, appendix: appendix & 1}, true
}

// View returns a read-only view of the same limbs.
func (z Mut[T]) View() View[T] { return View[T]{body: z.body, appendix: z.appendix} }

func (z Mut[T]) Len() int      { return len(z.body) }
func (z Mut[T]) Size() int     { return len(z.body) * BitsOf[T]() }
func (z Mut[T]) Appendix() Bit { return z.appendix }
func (z Mut[T]) Limbs() []T    { return z.body }

// Index reads like View.Index.
func (z Mut[T]) Index(i int) T { return z.View().Index(i) }

// WithAppendix returns the same limbs under another appendix.
func (z Mut[T]) WithAppendix(b Bit) Mut[T] {
	z.appendix = b & 1
	return z
}

// Split partitions z like View.Split.
func (z Mut[T]) Split(at int) (low, high Mut[T]) {
	at = clampIndex(at, len(z.body))
	return Mut[T]{body: z.body[:at]}, Mut[T]{body: z.body[at:], appendix: z.appendix}
}

// Normalized drops trailing limbs equal to the appendix fill.
func (z Mut[T]) Normalized() Mut[T] {
	z.body = trimFill(z.body, Fill[T](z.appendix))
	return z
}

// Invert flips every stored bit and the appendix.
func (z Mut[T]) Invert() Mut[T] {
	for i := range z.body {
		z.body[i] = ^z.body[i]
	}
	z.appendix ^= 1
	return z
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func trimFill[T Word](body []T, fill T) []T {
	n := len(body)
	for n > 0 && body[n-1] == fill {
		n--
	}
	return body[:n]
}
