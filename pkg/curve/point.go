package curve

import "github.com/mahdiidarabi/fixedec/pkg/bigint"

// Point is an affine curve point.  The point at infinity is marked by the
// Infinity flag; its coordinates are ignored.
type Point struct {
	X, Y     bigint.U256
	Infinity bool
}

// Infinity returns the point at infinity, the identity of the group.
func Infinity() Point {
	return Point{Infinity: true}
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.Infinity || q.Infinity {
		return p.Infinity == q.Infinity
	}
	return p.X == q.X && p.Y == q.Y
}

func (c *Curve) fadd(x, y bigint.U256) bigint.U256 { return bigint.ModAdd(x, y, c.p) }
func (c *Curve) fsub(x, y bigint.U256) bigint.U256 { return bigint.ModSub(x, y, c.p) }
func (c *Curve) fmul(x, y bigint.U256) bigint.U256 { return c.fp.MulMod(x, y) }

// fdiv returns x/y in the field.  y must be non-zero.
func (c *Curve) fdiv(x, y bigint.U256) bigint.U256 {
	inv, _ := c.fp.Inverse(y)
	return c.fmul(x, inv)
}

// rhs returns x^3 + ax + b.
func (c *Curve) rhs(x bigint.U256) bigint.U256 {
	x3 := c.fmul(c.fmul(x, x), x)
	return c.fadd(c.fadd(x3, c.fmul(c.a, x)), c.b)
}

// IsOnCurve reports whether p satisfies the curve equation.  Coordinates
// must be reduced.  The point at infinity is on every curve.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.Infinity {
		return true
	}
	if p.X.Ge(c.p) || p.Y.Ge(c.p) {
		return false
	}
	return c.fmul(p.Y, p.Y) == c.rhs(p.X)
}

// Neg returns -p.
func (c *Curve) Neg(p Point) Point {
	if p.Infinity {
		return p
	}
	return Point{X: p.X, Y: bigint.ModNeg(p.Y, c.p)}
}

// chord returns the third intersection of the line with slope l through p
// and q, reflected over the x axis.
func (c *Curve) chord(l bigint.U256, p, q Point) Point {
	x := c.fsub(c.fsub(c.fmul(l, l), p.X), q.X)
	y := c.fsub(c.fmul(l, c.fsub(p.X, x)), p.Y)
	return Point{X: x, Y: y}
}

// Double returns 2p.  A point with y = 0 has a vertical tangent and doubles
// to infinity.
func (c *Curve) Double(p Point) Point {
	if p.Infinity || p.Y.IsZero() {
		return Infinity()
	}
	// l = (3x^2 + a) / 2y
	x2 := c.fmul(p.X, p.X)
	num := c.fadd(c.fadd(c.fadd(x2, x2), x2), c.a)
	l := c.fdiv(num, c.fadd(p.Y, p.Y))
	return c.chord(l, p, p)
}

// Add returns p + q.
func (c *Curve) Add(p, q Point) Point {
	switch {
	case p.Infinity:
		return q
	case q.Infinity:
		return p
	case p.X == q.X:
		if p.Y == q.Y {
			return c.Double(p)
		}
		return Infinity()
	}
	l := c.fdiv(c.fsub(q.Y, p.Y), c.fsub(q.X, p.X))
	return c.chord(l, p, q)
}

// ScalarMult returns k*p using left-to-right double-and-add.  k is not
// reduced modulo the group order; k = 0 yields infinity.
func (c *Curve) ScalarMult(k bigint.U256, p Point) Point {
	r := Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = c.Double(r)
		if k.Bit(i) == 1 {
			r = c.Add(r, p)
		}
	}
	return r
}

// ScalarBaseMult returns k*G.
func (c *Curve) ScalarBaseMult(k bigint.U256) Point {
	return c.ScalarMult(k, c.g)
}
