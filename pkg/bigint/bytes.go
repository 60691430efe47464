package bigint

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// FromBytes interprets b as a big-endian unsigned integer.  Leading zero bytes
// are ignored, so inputs longer than the width are accepted as long as the
// value fits.  A value that does not fit returns ErrOverflow.
func FromBytes[A any, P Width[A]](b []byte) (Int[A, P], error) {
	var z Int[A, P]
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	zw := z.w()
	if len(b) > len(zw)*8 {
		str := fmt.Sprintf("value of %d bytes exceeds %d-bit width", len(b),
			len(zw)*64)
		return z, makeError(ErrOverflow, str)
	}
	for i, j := len(b)-1, 0; i >= 0; i, j = i-1, j+1 {
		zw[j/8] |= uint64(b[i]) << (8 * uint(j%8))
	}
	return z, nil
}

// Bytes returns the big-endian encoding of x, zero padded to exactly
// width/8 bytes.
func (x Int[A, P]) Bytes() []byte {
	xw := x.w()
	out := make([]byte, len(xw)*8)
	x.PutBytes(out)
	return out
}

// PutBytes writes the big-endian encoding of the low len(b) bytes of x into b.
// Bytes of b beyond the width are zeroed.
func (x Int[A, P]) PutBytes(b []byte) {
	xw := x.w()
	for i, j := len(b)-1, 0; i >= 0; i, j = i-1, j+1 {
		if j/8 < len(xw) {
			b[i] = byte(xw[j/8] >> (8 * uint(j%8)))
		} else {
			b[i] = 0
		}
	}
}

// FromHex parses a big-endian hex string with an optional 0x prefix.
func FromHex[A any, P Width[A]](s string) (Int[A, P], error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		var z Int[A, P]
		return z, makeError(ErrInvalidHex, err.Error())
	}
	return FromBytes[A, P](b)
}

// MustFromHex is like FromHex but panics on error.  It is intended for
// initializing constants.
func MustFromHex[A any, P Width[A]](s string) Int[A, P] {
	z, err := FromHex[A, P](s)
	if err != nil {
		panic(fmt.Sprintf("bigint: invalid constant %q: %v", s, err))
	}
	return z
}

// FromBig converts a non-negative math/big value.
func FromBig[A any, P Width[A]](v *big.Int) (Int[A, P], error) {
	if v.Sign() < 0 {
		var z Int[A, P]
		return z, makeError(ErrNegative, "negative value")
	}
	return FromBytes[A, P](v.Bytes())
}

// ToBig returns x as a math/big value.
func (x Int[A, P]) ToBig() *big.Int {
	return new(big.Int).SetBytes(x.Bytes())
}

// Text returns the string representation of x in the given base, 2 <= base
// <= 62.
func (x Int[A, P]) Text(base int) string {
	return x.ToBig().Text(base)
}

// Hex returns x as a zero padded lowercase hex string of width/4 digits.
func (x Int[A, P]) Hex() string {
	return hex.EncodeToString(x.Bytes())
}

// String returns the decimal representation of x.
func (x Int[A, P]) String() string {
	return x.Text(10)
}

// Format implements fmt.Formatter with the verbs supported by math/big.
func (x Int[A, P]) Format(s fmt.State, ch rune) {
	x.ToBig().Format(s, ch)
}
