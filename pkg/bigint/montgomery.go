package bigint

import "github.com/mahdiidarabi/fixedec/internal/limb"

// Montgomery performs modular arithmetic for a fixed odd modulus using
// Montgomery reduction.  It is safe for concurrent use; a context is never
// mutated after construction.
//
// MulMod and PowMod accept and return ordinary (non-Montgomery) values and
// satisfy the same contract as the package level MulMod and PowMod.
type Montgomery[A any, P Width[A]] struct {
	m    Int[A, P]
	minv uint64    // -m^-1 mod 2^64
	one  Int[A, P] // R mod m
	r2   Int[A, P] // R^2 mod m
}

// NewMontgomery returns a reduction context for the odd modulus m.
func NewMontgomery[A any, P Width[A]](m Int[A, P]) (*Montgomery[A, P], error) {
	switch {
	case m.IsZero():
		return nil, makeError(ErrZeroModulus, "modulus is zero")
	case !m.IsOdd():
		return nil, makeError(ErrEvenModulus, "montgomery modulus must be odd")
	}

	// 2^width - m is congruent to R = 2^width.
	var zero Int[A, P]
	one := Mod(zero.Sub(m), m)
	return &Montgomery[A, P]{
		m:    m,
		minv: limb.MontInverse(m.w()[0]),
		one:  one,
		r2:   MulMod(one, one, m),
	}, nil
}

// Modulus returns the modulus of the context.
func (mt *Montgomery[A, P]) Modulus() Int[A, P] {
	return mt.m
}

// MontMul returns x*y*R^-1 mod m for x, y already less than m.
func (mt *Montgomery[A, P]) MontMul(x, y Int[A, P]) Int[A, P] {
	var z Int[A, P]
	mw := mt.m.w()
	t := make([]uint64, len(mw)+2)
	limb.MontMul(z.w(), x.w(), y.w(), mw, mt.minv, t)
	return z
}

// ToMont converts x into Montgomery form, x*R mod m.
func (mt *Montgomery[A, P]) ToMont(x Int[A, P]) Int[A, P] {
	return mt.MontMul(Mod(x, mt.m), mt.r2)
}

// FromMont converts x out of Montgomery form.
func (mt *Montgomery[A, P]) FromMont(x Int[A, P]) Int[A, P] {
	return mt.MontMul(x, One[A, P]())
}

// MulMod returns a*b mod m.
func (mt *Montgomery[A, P]) MulMod(a, b Int[A, P]) Int[A, P] {
	ab := mt.MontMul(Mod(a, mt.m), Mod(b, mt.m))
	return mt.MontMul(ab, mt.r2)
}

// PowMod returns base^exp mod m.
func (mt *Montgomery[A, P]) PowMod(base, exp Int[A, P]) Int[A, P] {
	b := mt.ToMont(base)
	r := mt.one
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			r = mt.MontMul(r, b)
		}
		b = mt.MontMul(b, b)
	}
	return mt.FromMont(r)
}

// Inverse returns a^(m-2) mod m, the inverse of a when m is prime (Fermat's
// little theorem).  For composite moduli the result is meaningless.  The
// boolean is false when a is congruent to zero.
func (mt *Montgomery[A, P]) Inverse(a Int[A, P]) (Int[A, P], bool) {
	a = Mod(a, mt.m)
	if a.IsZero() {
		return a, false
	}
	return mt.PowMod(a, mt.m.SubUint64(2)), true
}
