package bigint

import (
	"github.com/mahdiidarabi/fixedec/internal/limb"
)

// Int is an unsigned integer of a fixed bit width.  It is a plain value: the
// zero value is ZERO, copies never share limbs, and every operation returns a
// new value.  Add, Sub, Mul and Lsh wrap modulo 2^width.
//
// Use the width aliases (U256, U512, ...) rather than instantiating Int
// directly.
type Int[A any, P Width[A]] struct {
	l A
}

func (x *Int[A, P]) w() []uint64 {
	return P(&x.l).words()
}

// FromUint64 returns v as an Int of the requested width.
func FromUint64[A any, P Width[A]](v uint64) Int[A, P] {
	var z Int[A, P]
	z.w()[0] = v
	return z
}

// FromLimbs returns an Int from little-endian limbs.  Limbs beyond the width
// are ignored.
func FromLimbs[A any, P Width[A]](limbs []uint64) Int[A, P] {
	var z Int[A, P]
	copy(z.w(), limbs)
	return z
}

// One returns the value 1.
func One[A any, P Width[A]]() Int[A, P] {
	return FromUint64[A, P](1)
}

// Max returns 2^width - 1.
func Max[A any, P Width[A]]() Int[A, P] {
	var z Int[A, P]
	zw := z.w()
	limb.Not(zw, zw)
	return z
}

// NumLimbs returns the number of 64-bit limbs in the representation.
func (x Int[A, P]) NumLimbs() int {
	return len(x.w())
}

// Limb returns limb i, where limb 0 is the least significant.
func (x Int[A, P]) Limb(i int) uint64 {
	return x.w()[i]
}

// Limbs returns a copy of the little-endian limbs.
func (x Int[A, P]) Limbs() []uint64 {
	out := make([]uint64, x.NumLimbs())
	copy(out, x.w())
	return out
}

// Uint64 returns the low 64 bits of x.
func (x Int[A, P]) Uint64() uint64 {
	return x.w()[0]
}

// IsUint64 reports whether x fits in a uint64.
func (x Int[A, P]) IsUint64() bool {
	return limb.BitLen(x.w()) <= 64
}

// Add returns x + y, wrapping on overflow.
func (x Int[A, P]) Add(y Int[A, P]) Int[A, P] {
	z, _ := x.AddOverflow(y)
	return z
}

// AddOverflow returns x + y and whether the addition wrapped.
func (x Int[A, P]) AddOverflow(y Int[A, P]) (Int[A, P], bool) {
	var z Int[A, P]
	c := limb.Add(z.w(), x.w(), y.w())
	return z, c != 0
}

// Sub returns x - y, wrapping on underflow.
func (x Int[A, P]) Sub(y Int[A, P]) Int[A, P] {
	z, _ := x.SubUnderflow(y)
	return z
}

// SubUnderflow returns x - y and whether the subtraction wrapped.
func (x Int[A, P]) SubUnderflow(y Int[A, P]) (Int[A, P], bool) {
	var z Int[A, P]
	b := limb.Sub(z.w(), x.w(), y.w())
	return z, b != 0
}

// AddUint64 returns x + v, wrapping on overflow.
func (x Int[A, P]) AddUint64(v uint64) Int[A, P] {
	var z Int[A, P]
	limb.AddWord(z.w(), x.w(), v)
	return z
}

// SubUint64 returns x - v, wrapping on underflow.
func (x Int[A, P]) SubUint64(v uint64) Int[A, P] {
	var z Int[A, P]
	limb.SubWord(z.w(), x.w(), v)
	return z
}

// Mul returns the low width bits of x * y.
func (x Int[A, P]) Mul(y Int[A, P]) Int[A, P] {
	return FromLimbs[A, P](x.MulFull(y))
}

// MulFull returns the full double-width product x * y as little-endian limbs.
func (x Int[A, P]) MulFull(y Int[A, P]) []uint64 {
	xw := x.w()
	wide := make([]uint64, 2*len(xw))
	limb.Mul(wide, xw, y.w())
	return wide
}

// DivRem returns the quotient and remainder of x / m.  Division by zero
// returns (0, 0).
func (x Int[A, P]) DivRem(m Int[A, P]) (q, r Int[A, P]) {
	if m.IsZero() {
		return q, r
	}
	limb.DivRem(q.w(), r.w(), x.w(), m.w())
	return q, r
}

// And returns x & y.
func (x Int[A, P]) And(y Int[A, P]) Int[A, P] {
	var z Int[A, P]
	limb.And(z.w(), x.w(), y.w())
	return z
}

// Or returns x | y.
func (x Int[A, P]) Or(y Int[A, P]) Int[A, P] {
	var z Int[A, P]
	limb.Or(z.w(), x.w(), y.w())
	return z
}

// Xor returns x ^ y.
func (x Int[A, P]) Xor(y Int[A, P]) Int[A, P] {
	var z Int[A, P]
	limb.Xor(z.w(), x.w(), y.w())
	return z
}

// Not returns ^x.
func (x Int[A, P]) Not() Int[A, P] {
	var z Int[A, P]
	limb.Not(z.w(), x.w())
	return z
}

// Lsh returns x << s.  Shifting by the width or more yields zero.
func (x Int[A, P]) Lsh(s uint) Int[A, P] {
	var z Int[A, P]
	limb.Shl(z.w(), x.w(), s)
	return z
}

// Rsh returns x >> s.  Shifting by the width or more yields zero.
func (x Int[A, P]) Rsh(s uint) Int[A, P] {
	var z Int[A, P]
	limb.Shr(z.w(), x.w(), s)
	return z
}

// Cmp returns -1, 0 or +1 depending on whether x is less than, equal to or
// greater than y.
func (x Int[A, P]) Cmp(y Int[A, P]) int {
	return limb.Cmp(x.w(), y.w())
}

// Eq reports whether x == y.
func (x Int[A, P]) Eq(y Int[A, P]) bool { return x.Cmp(y) == 0 }

// Lt reports whether x < y.
func (x Int[A, P]) Lt(y Int[A, P]) bool { return x.Cmp(y) < 0 }

// Le reports whether x <= y.
func (x Int[A, P]) Le(y Int[A, P]) bool { return x.Cmp(y) <= 0 }

// Gt reports whether x > y.
func (x Int[A, P]) Gt(y Int[A, P]) bool { return x.Cmp(y) > 0 }

// Ge reports whether x >= y.
func (x Int[A, P]) Ge(y Int[A, P]) bool { return x.Cmp(y) >= 0 }

// IsZero reports whether x == 0.
func (x Int[A, P]) IsZero() bool {
	return limb.IsZero(x.w())
}

// IsOdd reports whether the lowest bit of x is set.
func (x Int[A, P]) IsOdd() bool {
	return x.w()[0]&1 == 1
}

// Bit returns bit i of x.
func (x Int[A, P]) Bit(i int) uint {
	return limb.Bit(x.w(), i)
}

// BitLen returns the number of bits needed to represent x; 0 for zero.
func (x Int[A, P]) BitLen() int {
	return limb.BitLen(x.w())
}

// LeadingZeros returns the number of leading zero bits, the full width for
// zero.
func (x Int[A, P]) LeadingZeros() int {
	return limb.LeadingZeros(x.w())
}

// TrailingZeros returns the number of trailing zero bits, the full width for
// zero.
func (x Int[A, P]) TrailingZeros() int {
	return limb.TrailingZeros(x.w())
}
