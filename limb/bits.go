package limb

// Count returns the number of bit positions equal to bit, appendix included.
// The result is Infinite when the appendix equals bit.
func (v View[T]) Count(bit Bit) Count {
	if v.appendix == bit&1 {
		return Infinite
	}
	ones := 0
	for _, x := range v.body {
		ones += onesCount(x)
	}
	if bit&1 == One {
		return Finite(ones)
	}
	return Finite(v.Size() - ones)
}

// Ascending returns the length of the run of bit starting at the least
// significant end of the body. It never exceeds Size.
func (v View[T]) Ascending(bit Bit) int {
	w := BitsOf[T]()
	flip := Fill[T](bit)
	n := 0
	for _, x := range v.body {
		tz := trailingZeros(x ^ flip)
		n += tz
		if tz < w {
			break
		}
	}
	return n
}

// Descending returns the length of the run of bit starting at the most
// significant end of the body. It never exceeds Size.
func (v View[T]) Descending(bit Bit) int {
	w := BitsOf[T]()
	flip := Fill[T](bit)
	n := 0
	for i := len(v.body) - 1; i >= 0; i-- {
		lz := leadingZeros(v.body[i] ^ flip)
		n += lz
		if lz < w {
			break
		}
	}
	return n
}

// NonAscending returns Size - Ascending(bit).
func (v View[T]) NonAscending(bit Bit) int { return v.Size() - v.Ascending(bit) }

// NonDescending returns Size - Descending(bit).
func (v View[T]) NonDescending(bit Bit) int { return v.Size() - v.Descending(bit) }

// Entropy returns the smallest two's complement width that holds the value:
// the bits up to the highest one that differs from the appendix, plus a sign
// bit. Zero and minus one have entropy 1.
func (v View[T]) Entropy() int {
	return v.NonDescending(v.appendix) + 1
}
