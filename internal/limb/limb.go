// Package limb implements arithmetic over fixed-length little-endian slices of
// 64-bit words.
//
// All functions operate on slices of equal length unless stated otherwise and
// never resize or allocate.  Passing slices of mismatched length is a caller
// error and results in a run-time bounds-check panic.  Word 0 is the least
// significant limb.
package limb

import "math/bits"

// Add sets z = x + y and returns the carry out of the most significant limb.
// z may alias x or y.
func Add(z, x, y []uint64) uint64 {
	var c uint64
	for i := range z {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	return c
}

// Sub sets z = x - y and returns the borrow out of the most significant limb.
// z may alias x or y.
func Sub(z, x, y []uint64) uint64 {
	var b uint64
	for i := range z {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	return b
}

// AddWord sets z = x + w and returns the carry.
func AddWord(z, x []uint64, w uint64) uint64 {
	c := w
	for i := range z {
		z[i], c = bits.Add64(x[i], c, 0)
	}
	return c
}

// SubWord sets z = x - w and returns the borrow.
func SubWord(z, x []uint64, w uint64) uint64 {
	b := w
	for i := range z {
		z[i], b = bits.Sub64(x[i], b, 0)
	}
	return b
}

// Mul sets z = x * y using schoolbook multiplication.  len(z) must equal
// len(x)+len(y) and z must not alias x or y.
func Mul(z, x, y []uint64) {
	SetZero(z)
	for i, xi := range x {
		var c uint64
		for j, yj := range y {
			hi, lo := bits.Mul64(xi, yj)
			var cc uint64
			lo, cc = bits.Add64(lo, z[i+j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			z[i+j] = lo
			c = hi
		}
		z[i+len(y)] = c
	}
}

// And sets z = x & y.
func And(z, x, y []uint64) {
	for i := range z {
		z[i] = x[i] & y[i]
	}
}

// Or sets z = x | y.
func Or(z, x, y []uint64) {
	for i := range z {
		z[i] = x[i] | y[i]
	}
}

// Xor sets z = x ^ y.
func Xor(z, x, y []uint64) {
	for i := range z {
		z[i] = x[i] ^ y[i]
	}
}

// Not sets z = ^x.
func Not(z, x []uint64) {
	for i := range z {
		z[i] = ^x[i]
	}
}

// ShlSmall sets z = x << s for 0 < s < 64 and returns the bits shifted out of
// the top limb.  Shift amounts outside that range are not checked.  z may
// alias x.
func ShlSmall(z, x []uint64, s uint) uint64 {
	var out uint64
	for i := range z {
		w := x[i]
		z[i] = w<<s | out
		out = w >> (64 - s)
	}
	return out
}

// ShrSmall sets z = x >> s for 0 < s < 64 and returns the bits shifted out of
// the bottom limb, left aligned.  Shift amounts outside that range are not
// checked.  z may alias x.
func ShrSmall(z, x []uint64, s uint) uint64 {
	var out uint64
	for i := len(z) - 1; i >= 0; i-- {
		w := x[i]
		z[i] = w>>s | out
		out = w << (64 - s)
	}
	return out
}

// ShlWords sets z = x << (64*n).  z may alias x.
func ShlWords(z, x []uint64, n int) {
	if n >= len(z) {
		SetZero(z)
		return
	}
	for i := len(z) - 1; i >= n; i-- {
		z[i] = x[i-n]
	}
	for i := 0; i < n; i++ {
		z[i] = 0
	}
}

// ShrWords sets z = x >> (64*n).  z may alias x.
func ShrWords(z, x []uint64, n int) {
	if n >= len(z) {
		SetZero(z)
		return
	}
	for i := 0; i < len(z)-n; i++ {
		z[i] = x[i+n]
	}
	for i := len(z) - n; i < len(z); i++ {
		z[i] = 0
	}
}

// Shl sets z = x << s for any s, composing whole-limb and small shifts.
func Shl(z, x []uint64, s uint) {
	ShlWords(z, x, int(s/64))
	if r := s % 64; r != 0 {
		ShlSmall(z, z, r)
	}
}

// Shr sets z = x >> s for any s, composing whole-limb and small shifts.
func Shr(z, x []uint64, s uint) {
	ShrWords(z, x, int(s/64))
	if r := s % 64; r != 0 {
		ShrSmall(z, z, r)
	}
}

// LeadingZeros returns the number of leading zero bits of x, or len(x)*64 when
// x is zero.
func LeadingZeros(x []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			return (len(x)-1-i)*64 + bits.LeadingZeros64(x[i])
		}
	}
	return len(x) * 64
}

// TrailingZeros returns the number of trailing zero bits of x, or len(x)*64
// when x is zero.
func TrailingZeros(x []uint64) int {
	for i, w := range x {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return len(x) * 64
}

// BitLen returns the minimum number of bits needed to represent x.
func BitLen(x []uint64) int {
	return len(x)*64 - LeadingZeros(x)
}

// Bit returns bit i of x.  Bits beyond the width read as zero.
func Bit(x []uint64, i int) uint {
	if i < 0 || i >= len(x)*64 {
		return 0
	}
	return uint(x[i/64]>>(uint(i)%64)) & 1
}

// Cmp compares x and y, scanning from the most significant limb, and returns
// -1, 0 or +1.
func Cmp(x, y []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// IsZero reports whether every limb of x is zero.
func IsZero(x []uint64) bool {
	for _, w := range x {
		if w != 0 {
			return false
		}
	}
	return true
}

// SetZero clears z.
func SetZero(z []uint64) {
	for i := range z {
		z[i] = 0
	}
}

// ModWord returns x mod d for a non-zero single word d.
func ModWord(x []uint64, d uint64) uint64 {
	var r uint64
	for i := len(x) - 1; i >= 0; i-- {
		_, r = bits.Div64(r, x[i], d)
	}
	return r
}
