package limb

// Shifts move the body by major whole limbs plus minor bits. The environment
// word stands in for the limbs beyond the edge the shift pulls from: the limb
// below index 0 for an upshift, the limb at index Len for a downshift. Passing
// Fill(appendix) as env threads the appendix through a downshift; passing zero
// shifts zeros into an upshift.
//
// A minor of BitsOf or more carries into major. Negative distances are treated
// as zero.

func normalizeDistance[T Word](major, minor int) (int, uint) {
	major, minor = max(major, 0), max(minor, 0)
	w := BitsOf[T]()
	return min(major, maxInt-minor/w) + minor/w, uint(minor % w)
}

// Upshift shifts the body toward the most significant end. The error flag is
// set when any bit pushed out of the body differs from the appendix fill,
// environment bits included once the distance exceeds Size.
func (z Mut[T]) Upshift(env T, major, minor int) Fallible[Mut[T]] {
	maj, mnr := normalizeDistance[T](major, minor)
	lost := z.upshiftLoses(env, maj, mnr)
	switch {
	case mnr == 0:
		z.upshiftMajor(env, maj)
	case maj == 0:
		z.upshiftMinor(env, mnr)
	default:
		z.upshiftBoth(env, maj, mnr)
	}
	return Fallible[Mut[T]]{Value: z, Error: lost}
}

// UpshiftBits is Upshift with the distance given in bits.
func (z Mut[T]) UpshiftBits(env T, distance int) Fallible[Mut[T]] {
	return z.Upshift(env, 0, distance)
}

// Downshift shifts the body toward the least significant end. Bits falling off
// the bottom are discarded, which is never an error.
func (z Mut[T]) Downshift(env T, major, minor int) Mut[T] {
	maj, mnr := normalizeDistance[T](major, minor)
	maj = min(maj, len(z.body))
	switch {
	case mnr == 0:
		z.downshiftMajor(env, maj)
	case maj == 0:
		z.downshiftMinor(env, mnr)
	default:
		z.downshiftBoth(env, maj, mnr)
	}
	return z
}

// DownshiftBits is Downshift with the distance given in bits.
func (z Mut[T]) DownshiftBits(env T, distance int) Mut[T] {
	return z.Downshift(env, 0, distance)
}

// upshiftLoses inspects the limbs that would land at index Len and above.
// Their sources are body limbs, the appendix fill past the top, and env below
// index 0 once the shift exceeds the body. Every env limb past the first reads
// the same, so the scan starts at most one limb below zero.
func (z Mut[T]) upshiftLoses(env T, major int, minor uint) bool {
	n := len(z.body)
	if n == 0 || (major == 0 && minor == 0) {
		return false
	}
	fill := Fill[T](z.appendix)
	w := uint(BitsOf[T]())
	src := func(j int) T {
		switch {
		case j < 0:
			return env
		case j >= n:
			return fill
		}
		return z.body[j]
	}
	for j := max(n-major, -1); j <= n; j++ {
		out := src(j)
		if minor != 0 {
			out = out<<minor | src(j-1)>>(w-minor)
		}
		if out != fill {
			return true
		}
	}
	return false
}

func (z Mut[T]) upshiftMajor(env T, major int) {
	n := len(z.body)
	if major >= n {
		for i := range z.body {
			z.body[i] = env
		}
		return
	}
	copy(z.body[major:], z.body[:n-major])
	for i := range major {
		z.body[i] = env
	}
}

func (z Mut[T]) upshiftMinor(env T, minor uint) {
	w := uint(BitsOf[T]())
	for i := len(z.body) - 1; i > 0; i-- {
		z.body[i] = z.body[i]<<minor | z.body[i-1]>>(w-minor)
	}
	if len(z.body) > 0 {
		z.body[0] = z.body[0]<<minor | env>>(w-minor)
	}
}

func (z Mut[T]) upshiftBoth(env T, major int, minor uint) {
	w := uint(BitsOf[T]())
	src := func(j int) T {
		if j < 0 {
			return env
		}
		return z.body[j]
	}
	for i := len(z.body) - 1; i >= 0; i-- {
		j := i - major
		z.body[i] = src(j)<<minor | src(j-1)>>(w-minor)
	}
}

func (z Mut[T]) downshiftMajor(env T, major int) {
	n := len(z.body)
	if major >= n {
		for i := range z.body {
			z.body[i] = env
		}
		return
	}
	copy(z.body, z.body[major:])
	for i := n - major; i < n; i++ {
		z.body[i] = env
	}
}

func (z Mut[T]) downshiftMinor(env T, minor uint) {
	w := uint(BitsOf[T]())
	n := len(z.body)
	for i := 0; i+1 < n; i++ {
		z.body[i] = z.body[i]>>minor | z.body[i+1]<<(w-minor)
	}
	if n > 0 {
		z.body[n-1] = z.body[n-1]>>minor | env<<(w-minor)
	}
}

func (z Mut[T]) downshiftBoth(env T, major int, minor uint) {
	w := uint(BitsOf[T]())
	n := len(z.body)
	src := func(j int) T {
		if j >= n {
			return env
		}
		return z.body[j]
	}
	for i := range z.body {
		j := i + major
		z.body[i] = src(j)>>minor | src(j+1)<<(w-minor)
	}
}
