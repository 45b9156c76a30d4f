package limb

// MultiplyWord replaces the body with body*multiplier + increment and returns
// the carry-out limb. With that limb as one more limb of headroom the result is
// exact, so this never fails.
func (z Mut[T]) MultiplyWord(multiplier, increment T) T {
	c := increment
	for i, zi := range z.body {
		hi, lo := mulWide(zi, multiplier)
		var k bool
		z.body[i], k = addWord(lo, c, false)
		c = hi + carryOf[T](k)
	}
	return c
}

// SetLongProduct overwrites the receiver with x*y + increment using schoolbook
// multiplication, one row of partial products per limb of x. The receiver
// should have len(x)+len(y) limbs; extra limbs are zeroed and missing ones set
// the error flag when the dropped part of the product is nonzero.
//
// The receiver must not alias x or y.
func (z Mut[T]) SetLongProduct(x, y View[T], increment T) Fallible[Mut[T]] {
	clear(z.body)
	f := Success(z)
	if len(z.body) == 0 {
		f = f.Veto(increment != 0)
	} else {
		z.body[0] = increment
	}
	for i, xi := range x.body {
		row := Mut[T]{body: z.body[min(i, len(z.body)):]}
		f = f.Veto(row.IncrementByProduct(y, xi, 0).Error)
	}
	return f
}

// SetLongSquare overwrites the receiver with x*x + increment. Each
// off-diagonal product is computed once and doubled by a one-bit upshift
// before the squares on the diagonal are added.
//
// The receiver must not alias x.
func (z Mut[T]) SetLongSquare(x View[T], increment T) Fallible[Mut[T]] {
	clear(z.body)
	f := Success(z)
	xb := x.body
	for i := 0; i+1 < len(xb); i++ {
		row := Mut[T]{body: z.body[min(2*i+1, len(z.body)):]}
		f = f.Veto(row.IncrementByProduct(View[T]{body: xb[i+1:]}, xb[i], 0).Error)
	}
	f = f.Veto(Mut[T]{body: z.body}.Upshift(0, 0, 1).Error)
	for i, xi := range xb {
		hi, lo := mulWide(xi, xi)
		diagonal := [2]T{lo, hi}
		row := Mut[T]{body: z.body[min(2*i, len(z.body)):]}
		f = f.Veto(row.IncrementBy(View[T]{body: diagonal[:]}, false).Error)
	}
	return f.Veto(Mut[T]{body: z.body}.IncrementWord(increment, false).Error)
}

// longProduct sets z = x*y. len(z) must equal len(x)+len(y).
func longProduct[T Word](z, x, y []T) {
	clear(z)
	for i, xi := range x {
		z[i+len(y)] = addMulLimbs(z[i:], y, xi, 0)
	}
}

// longSquare sets z = x*x. len(z) must equal 2*len(x).
func longSquare[T Word](z, x []T) {
	clear(z)
	for i := 0; i+1 < len(x); i++ {
		z[i+len(x)] = addMulLimbs(z[2*i+1:], x[i+1:], x[i], 0)
	}
	shiftLeftOne(z)
	for i, xi := range x {
		hi, lo := mulWide(xi, xi)
		diagonal := [2]T{lo, hi}
		addLimbs(z[2*i:], diagonal[:], false)
	}
}

// shiftLeftOne doubles z in place and returns the bit shifted out.
func shiftLeftOne[T Word](z []T) T {
	top := uint(BitsOf[T]() - 1)
	var c T
	for i, zi := range z {
		z[i], c = zi<<1|c, zi>>top
	}
	return c
}
