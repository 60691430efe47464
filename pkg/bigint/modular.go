package bigint

import "github.com/mahdiidarabi/fixedec/internal/limb"

// The modular functions below take the modulus as an explicit argument.
// Inputs need not be reduced and results are always less than m.  A zero
// modulus is a caller error; every function returns zero for it instead of
// panicking.

// Mod returns a mod m.
func Mod[A any, P Width[A]](a, m Int[A, P]) Int[A, P] {
	var r Int[A, P]
	if m.IsZero() {
		return r
	}
	if a.Lt(m) {
		return a
	}
	limb.Rem(r.w(), a.w(), m.w())
	return r
}

// ModAdd returns (a + b) mod m.
func ModAdd[A any, P Width[A]](a, b, m Int[A, P]) Int[A, P] {
	if m.IsZero() {
		return Int[A, P]{}
	}
	a, b = Mod(a, m), Mod(b, m)
	sum, carry := a.AddOverflow(b)
	if carry || sum.Ge(m) {
		sum = sum.Sub(m)
	}
	return sum
}

// ModSub returns (a - b) mod m.
func ModSub[A any, P Width[A]](a, b, m Int[A, P]) Int[A, P] {
	if m.IsZero() {
		return Int[A, P]{}
	}
	a, b = Mod(a, m), Mod(b, m)
	if a.Ge(b) {
		return a.Sub(b)
	}
	// a + m may wrap past the width; the wrapped difference is still exact.
	return a.Add(m).Sub(b)
}

// ModNeg returns -a mod m.
func ModNeg[A any, P Width[A]](a, m Int[A, P]) Int[A, P] {
	return ModSub(Int[A, P]{}, a, m)
}

// MulMod returns (a * b) mod m.  The double-width product is reduced with
// binary long division, so the cost depends only on the width.
func MulMod[A any, P Width[A]](a, b, m Int[A, P]) Int[A, P] {
	var r Int[A, P]
	if m.IsZero() {
		return r
	}
	limb.Rem(r.w(), a.MulFull(b), m.w())
	return r
}

// MulModNaive returns (a * b) mod m by repeatedly subtracting m from the
// double-width product.  Its cost grows with (a*b)/m, so it is only usable for
// small operands.  It is kept as a reference for checking MulMod and
// Montgomery.MulMod.
func MulModNaive[A any, P Width[A]](a, b, m Int[A, P]) Int[A, P] {
	var r Int[A, P]
	if m.IsZero() {
		return r
	}
	a, b = Mod(a, m), Mod(b, m)
	wide := a.MulFull(b)
	wm := make([]uint64, len(wide))
	copy(wm, m.w())
	for limb.Cmp(wide, wm) >= 0 {
		limb.Sub(wide, wide, wm)
	}
	copy(r.w(), wide)
	return r
}

// PowMod returns base^exp mod m using right-to-left binary exponentiation.
// exp == 0 yields 1 mod m for every base, including zero.
func PowMod[A any, P Width[A]](base, exp, m Int[A, P]) Int[A, P] {
	if m.IsZero() {
		return Int[A, P]{}
	}
	result := Mod(One[A, P](), m)
	base = Mod(base, m)
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result = MulMod(result, base, m)
		}
		base = MulMod(base, base, m)
	}
	return result
}

// ModInverse returns the x with a*x == 1 mod m using the extended Euclidean
// algorithm.  The boolean is false when gcd(a, m) != 1 or m is zero.
func ModInverse[A any, P Width[A]](a, m Int[A, P]) (Int[A, P], bool) {
	var zero Int[A, P]
	if m.IsZero() {
		return zero, false
	}

	// Invariant: ti*a == ri (mod m).  The Bezout coefficients are kept
	// reduced mod m so they never go negative.
	r0, r1 := m, Mod(a, m)
	t0, t1 := zero, One[A, P]()
	for !r1.IsZero() {
		q, r := r0.DivRem(r1)
		r0, r1 = r1, r
		t0, t1 = t1, ModSub(t0, MulMod(q, t1, m), m)
	}
	if !r0.Eq(One[A, P]()) {
		return zero, false
	}
	return Mod(t0, m), true
}
