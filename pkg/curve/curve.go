package curve

import (
	"fmt"
	"strings"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
)

// Montgomery is the reduction context type used for both the field prime and
// the group order.
type Montgomery = bigint.Montgomery[bigint.W256, *bigint.W256]

// Curve is a short Weierstrass curve y^2 = x^3 + ax + b over the prime field
// of order p, with base point G of prime order n and cofactor h.  A Curve is
// immutable once constructed and may be shared freely between goroutines.
type Curve struct {
	name string
	p    bigint.U256
	a    bigint.U256
	b    bigint.U256
	g    Point
	n    bigint.U256
	h    uint64

	fp *Montgomery
	fn *Montgomery
}

// New validates a set of domain parameters and returns the curve they
// describe.  p and n must be odd primes greater than 3 (primality is checked
// with Miller-Rabin), the curve must be non-singular and G must lie on it.
func New(name string, p, a, b, gx, gy, n bigint.U256, h uint64) (*Curve, error) {
	three := bigint.FromUint64[bigint.W256](3)
	switch {
	case p.Le(three) || !bigint.IsPrimeMillerRabin(p, 20):
		return nil, makeError(ErrInvalidCurve, "field order is not a prime above 3")
	case n.Le(three) || !bigint.IsPrimeMillerRabin(n, 20):
		return nil, makeError(ErrInvalidCurve, "group order is not a prime above 3")
	case a.Ge(p) || b.Ge(p):
		return nil, makeError(ErrInvalidCurve, "coefficients are not reduced")
	case h == 0:
		return nil, makeError(ErrInvalidCurve, "cofactor is zero")
	}

	fp, err := bigint.NewMontgomery(p)
	if err != nil {
		return nil, err
	}
	fn, err := bigint.NewMontgomery(n)
	if err != nil {
		return nil, err
	}
	c := &Curve{
		name: name,
		p:    p,
		a:    a,
		b:    b,
		g:    Point{X: gx, Y: gy},
		n:    n,
		h:    h,
		fp:   fp,
		fn:   fn,
	}

	// 4a^3 + 27b^2 != 0 mod p
	a3 := fp.MulMod(fp.MulMod(a, a), a)
	b2 := fp.MulMod(b, b)
	disc := bigint.ModAdd(fp.MulMod(bigint.FromUint64[bigint.W256](4), a3),
		fp.MulMod(bigint.FromUint64[bigint.W256](27), b2), p)
	if disc.IsZero() {
		return nil, makeError(ErrInvalidCurve, "curve is singular")
	}
	if !c.IsOnCurve(c.g) {
		return nil, makeError(ErrInvalidCurve, "base point is not on the curve")
	}
	return c, nil
}

func mustNew(name, p, a, b, gx, gy, n string) *Curve {
	hex := bigint.MustFromHex[bigint.W256, *bigint.W256]
	c, err := New(name, hex(p), hex(a), hex(b), hex(gx), hex(gy), hex(n), 1)
	if err != nil {
		panic(fmt.Sprintf("curve: invalid parameters for %s: %v", name, err))
	}
	return c
}

var (
	secp256k1 = mustNew("secp256k1",
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
		"0",
		"7",
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	p256 = mustNew("P-256",
		"ffffffff00000001000000000000000000000000ffffffffffffffffffffffff",
		"ffffffff00000001000000000000000000000000fffffffffffffffffffffffc",
		"5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b",
		"6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
		"4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5",
		"ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")
)

// Secp256k1 returns the secp256k1 curve used by Bitcoin and Ethereum.
func Secp256k1() *Curve { return secp256k1 }

// P256 returns the NIST P-256 curve, also known as secp256r1.
func P256() *Curve { return p256 }

// ByName returns a named curve.  Lookup is case insensitive and accepts
// "secp256k1", "p256", "p-256" and "secp256r1".
func ByName(name string) (*Curve, error) {
	switch strings.ToLower(name) {
	case "secp256k1":
		return secp256k1, nil
	case "p256", "p-256", "secp256r1":
		return p256, nil
	}
	return nil, makeError(ErrUnknownCurve, fmt.Sprintf("unknown curve %q", name))
}

// Name returns the curve name.
func (c *Curve) Name() string { return c.name }

// String implements fmt.Stringer.
func (c *Curve) String() string { return c.name }

// P returns the field prime.
func (c *Curve) P() bigint.U256 { return c.p }

// A returns the coefficient a.
func (c *Curve) A() bigint.U256 { return c.a }

// B returns the coefficient b.
func (c *Curve) B() bigint.U256 { return c.b }

// G returns the base point.
func (c *Curve) G() Point { return c.g }

// N returns the order of the base point.
func (c *Curve) N() bigint.U256 { return c.n }

// H returns the cofactor.
func (c *Curve) H() uint64 { return c.h }

// BitSize returns the bit length of the group order.
func (c *Curve) BitSize() int { return c.n.BitLen() }

// ByteSize returns the length in bytes of an encoded field element.
func (c *Curve) ByteSize() int { return (c.p.BitLen() + 7) / 8 }

// Field returns the reduction context for the field prime p.
func (c *Curve) Field() *Montgomery { return c.fp }

// Order returns the reduction context for the group order n.
func (c *Curve) Order() *Montgomery { return c.fn }
