package limb

// DivideLong divides the body of u by the body of v, both read as unsigned
// magnitudes. The quotient is written to q and the remainder replaces u. It
// returns false without writing anything when v is zero or q is shorter than
// len(u) - len(v.Normalized()) + 1 limbs.
//
// Each quotient limb is estimated from the top two limbs of the running
// remainder by a Reciprocal21 of the top divisor limb (Knuth's algorithm D).
// Normalization happens on the fly, so neither u nor v needs headroom and v
// is never written. q, u and v must not overlap.
func DivideLong[T Word](q, u Mut[T], v View[T]) bool {
	vb := trimFill(v.body, 0)
	n := len(vb)
	if n == 0 {
		return false
	}
	ub, qb := u.body, q.body
	if len(ub) < n {
		clear(qb)
		return true
	}
	m := len(ub) - n
	if len(qb) < m+1 {
		return false
	}
	clear(qb[m+1:])

	if n == 1 {
		r := NewReciprocal21(Divisor[T]{d: vb[0]})
		var rem T
		for i := len(ub) - 1; i >= 0; i-- {
			_, qb[i], rem = r.Divide(rem, ub[i])
		}
		clear(ub)
		ub[0] = rem
		return true
	}

	w := uint(BitsOf[T]())
	sh := uint(leadingZeros(vb[n-1]))
	// norm reads limb k of x<<sh, with zeros outside x.
	norm := func(x []T, k int) T {
		var hi, lo T
		if k >= 0 && k < len(x) {
			hi = x[k]
		}
		if k >= 1 && k-1 < len(x) {
			lo = x[k-1]
		}
		return hi<<sh | lo>>(w-sh)
	}
	v1, v0 := norm(vb, n-1), norm(vb, n-2)
	rec := NewReciprocal21(Divisor[T]{d: v1})

	for j := m; j >= 0; j-- {
		r2, r1, r0 := norm(ub, j+n), norm(ub, j+n-1), norm(ub, j+n-2)

		var qhat, rhat T
		refine := true
		if r2 == v1 {
			qhat = ^T(0)
			var c bool
			rhat, c = addWord(r1, v1, false)
			refine = !c
		} else {
			_, qhat, rhat = rec.Divide(r2, r1)
		}
		for refine {
			hi, lo := mulWide(qhat, v0)
			if hi < rhat || (hi == rhat && lo <= r0) {
				break
			}
			qhat--
			var c bool
			rhat, c = addWord(rhat, v1, false)
			refine = !c
		}

		window := ub[j:min(j+n+1, len(ub))]
		c := subMulLimbs(window, vb, qhat, 0)
		negative := c != 0
		if len(window) > n {
			window[n], negative = subWord(window[n], c, false)
		}
		if negative {
			carry := addLimbs(window[:n], vb, false)
			if len(window) > n {
				window[n] += carryOf[T](carry)
			}
			qhat--
		}
		qb[j] = qhat
	}
	return true
}
