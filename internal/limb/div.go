package limb

import "math/bits"

// Rem sets r = x mod m using binary long division.  len(r) must equal len(m);
// x may be of any length and must not alias r.  The cost is proportional to
// the bit length of x, not to the size of the quotient.  m must be non-zero.
func Rem(r, x, m []uint64) {
	SetZero(r)
	for i := BitLen(x) - 1; i >= 0; i-- {
		out := ShlSmall(r, r, 1)
		r[0] |= uint64(Bit(x, i))
		if out != 0 || Cmp(r, m) >= 0 {
			Sub(r, r, m)
		}
	}
}

// DivRem sets q = x / m and r = x mod m.  len(q) must equal len(x) and len(r)
// must equal len(m).  None of the slices may alias.  m must be non-zero.
func DivRem(q, r, x, m []uint64) {
	SetZero(q)
	SetZero(r)
	for i := BitLen(x) - 1; i >= 0; i-- {
		out := ShlSmall(r, r, 1)
		r[0] |= uint64(Bit(x, i))
		if out != 0 || Cmp(r, m) >= 0 {
			Sub(r, r, m)
			q[i/64] |= 1 << (uint(i) % 64)
		}
	}
}

// MontInverse returns -m0^-1 mod 2^64 for an odd word m0.
func MontInverse(m0 uint64) uint64 {
	// m0*m0 == 1 mod 8, so m0 is its own inverse to 3 bits.  Each Newton step
	// doubles the number of correct bits.
	inv := m0
	for i := 0; i < 5; i++ {
		inv *= 2 - m0*inv
	}
	return -inv
}

// MontMul sets z = x*y*R^-1 mod m where R = 2^(64*len(m)), using the CIOS
// method.  x and y must be less than m, m must be odd and minv must be
// MontInverse(m[0]).  t is scratch space of length len(m)+2.  z may alias x
// or y.
func MontMul(z, x, y, m []uint64, minv uint64, t []uint64) {
	n := len(m)
	SetZero(t)
	for i := 0; i < n; i++ {
		// t += x[i] * y
		var c, cc uint64
		for j := 0; j < n; j++ {
			hi, lo := bits.Mul64(x[i], y[j])
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j] = lo
			c = hi
		}
		t[n], cc = bits.Add64(t[n], c, 0)
		t[n+1] += cc

		// t = (t + u*m) / 2^64 with u chosen so the low word cancels.
		u := t[0] * minv
		hi, lo := bits.Mul64(u, m[0])
		_, cc = bits.Add64(lo, t[0], 0)
		c = hi + cc
		for j := 1; j < n; j++ {
			hi, lo = bits.Mul64(u, m[j])
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j-1] = lo
			c = hi
		}
		t[n-1], cc = bits.Add64(t[n], c, 0)
		t[n] = t[n+1] + cc
		t[n+1] = 0
	}
	if t[n] != 0 || Cmp(t[:n], m) >= 0 {
		Sub(z, t[:n], m)
		return
	}
	copy(z, t[:n])
}
