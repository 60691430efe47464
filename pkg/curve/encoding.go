package curve

import (
	"fmt"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
)

// SEC1 point format bytes.
const (
	formatCompressedEven byte = 0x02
	formatCompressedOdd  byte = 0x03
	formatUncompressed   byte = 0x04
)

// DecompressY returns the y coordinate of the point with the given x
// coordinate whose parity matches odd.  The square root is taken as
// rhs^((p+1)/4), which requires p = 3 mod 4; both named curves satisfy this.
func (c *Curve) DecompressY(x bigint.U256, odd bool) (bigint.U256, error) {
	var y bigint.U256
	if x.Ge(c.p) {
		return y, makeError(ErrPubKeyXTooBig, "x coordinate is not less than the field prime")
	}
	if c.p.Limb(0)&3 != 3 {
		str := fmt.Sprintf("square roots on %s are not supported", c.name)
		return y, makeError(ErrNoSquareRoot, str)
	}

	v := c.rhs(x)
	exp := c.p.AddUint64(1).Rsh(2)
	y = c.fp.PowMod(v, exp)
	if c.fmul(y, y) != v {
		str := fmt.Sprintf("x coordinate %x is not on %s", x, c.name)
		return bigint.U256{}, makeError(ErrNoSquareRoot, str)
	}
	if y.IsOdd() != odd {
		y = bigint.ModNeg(y, c.p)
	}
	return y, nil
}

// MarshalCompressed encodes p in the 33 byte SEC1 compressed format.  The
// point at infinity encodes as a single zero byte.
func (c *Curve) MarshalCompressed(p Point) []byte {
	if p.Infinity {
		return []byte{0}
	}
	size := c.ByteSize()
	out := make([]byte, 1+size)
	out[0] = formatCompressedEven
	if p.Y.IsOdd() {
		out[0] = formatCompressedOdd
	}
	p.X.PutBytes(out[1:])
	return out
}

// MarshalUncompressed encodes p in the 65 byte SEC1 uncompressed format.  The
// point at infinity encodes as a single zero byte.
func (c *Curve) MarshalUncompressed(p Point) []byte {
	if p.Infinity {
		return []byte{0}
	}
	size := c.ByteSize()
	out := make([]byte, 1+2*size)
	out[0] = formatUncompressed
	p.X.PutBytes(out[1 : 1+size])
	p.Y.PutBytes(out[1+size:])
	return out
}

// ParsePoint decodes a SEC1 compressed or uncompressed point and verifies it
// lies on the curve.  The point at infinity is rejected.
func (c *Curve) ParsePoint(b []byte) (Point, error) {
	size := c.ByteSize()
	switch len(b) {
	case 1 + size:
		if b[0] != formatCompressedEven && b[0] != formatCompressedOdd {
			str := fmt.Sprintf("invalid format byte 0x%02x for a compressed "+
				"point", b[0])
			return Point{}, makeError(ErrPubKeyInvalidFormat, str)
		}
	case 1 + 2*size:
		if b[0] != formatUncompressed {
			str := fmt.Sprintf("invalid format byte 0x%02x for an "+
				"uncompressed point", b[0])
			return Point{}, makeError(ErrPubKeyInvalidFormat, str)
		}
	default:
		str := fmt.Sprintf("malformed public key: invalid length %d, want %d "+
			"or %d", len(b), 1+size, 1+2*size)
		return Point{}, makeError(ErrPubKeyInvalidLen, str)
	}

	x, err := bigint.FromBytes[bigint.W256](b[1 : 1+size])
	if err != nil {
		return Point{}, err
	}
	if x.Ge(c.p) {
		return Point{}, makeError(ErrPubKeyXTooBig, "x coordinate is not "+
			"less than the field prime")
	}

	if b[0] != formatUncompressed {
		y, err := c.DecompressY(x, b[0] == formatCompressedOdd)
		if err != nil {
			return Point{}, makeError(ErrPubKeyNotOnCurve, err.Error())
		}
		return Point{X: x, Y: y}, nil
	}

	y, err := bigint.FromBytes[bigint.W256](b[1+size:])
	if err != nil {
		return Point{}, err
	}
	if y.Ge(c.p) {
		return Point{}, makeError(ErrPubKeyYTooBig, "y coordinate is not "+
			"less than the field prime")
	}
	p := Point{X: x, Y: y}
	if !c.IsOnCurve(p) {
		return Point{}, makeError(ErrPubKeyNotOnCurve, "point is not on "+
			c.name)
	}
	return p, nil
}
