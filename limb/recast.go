package limb

// Recast reads a View[T] as a sequence of U words. Packing is little endian
// in both directions and is computed with shifts, so the result does not
// depend on the host byte order. Nothing is copied.
type Recast[U, T Word] struct {
	src View[T]
}

// RecastOf returns v re-sliced as words of width U.
func RecastOf[U, T Word](v View[T]) Recast[U, T] {
	return Recast[U, T]{src: v}
}

// Len returns the number of U words needed to cover every stored bit of the
// source.
func (r Recast[U, T]) Len() int {
	wu, wt := BitsOf[U](), BitsOf[T]()
	n := r.src.Len()
	if wu <= wt {
		return n * (wt / wu)
	}
	ratio := wu / wt
	return (n + ratio - 1) / ratio
}

// Appendix returns the source appendix.
func (r Recast[U, T]) Appendix() Bit { return r.src.appendix }

// Index returns word i, reading the source appendix past the stored limbs.
func (r Recast[U, T]) Index(i int) U {
	if i < 0 {
		return 0
	}
	wu, wt := BitsOf[U](), BitsOf[T]()
	if wu <= wt {
		ratio := wt / wu
		return U(r.src.Index(i/ratio) >> uint((i%ratio)*wu))
	}
	ratio := wu / wt
	var out U
	for k := 0; k < ratio; k++ {
		out |= U(r.src.Index(i*ratio+k)) << uint(k*wt)
	}
	return out
}

// CopyRecast writes src, re-sliced as U words, into dst. It reports whether
// dst together with the source appendix still represents the source value,
// that is whether every word past dst's end equals the appendix fill.
func CopyRecast[U, T Word](dst Mut[U], src View[T]) bool {
	r := RecastOf[U](src)
	for i := range dst.body {
		dst.body[i] = r.Index(i)
	}
	fill := Fill[U](src.appendix)
	for i := len(dst.body); i < r.Len(); i++ {
		if r.Index(i) != fill {
			return false
		}
	}
	return true
}
