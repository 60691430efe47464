// Package curve implements affine point arithmetic on short Weierstrass
// elliptic curves over 256-bit prime fields.
//
// Two named curves are provided, Secp256k1 and P256.  Both are built once at
// package initialization and are immutable, so they can be shared between
// goroutines without synchronization.  Other curves can be constructed with
// New.
//
// Point arithmetic follows the textbook affine formulas.  Every addition and
// doubling performs one field inversion, computed with Fermat's little
// theorem on the Montgomery context of the field prime.  None of it runs in
// constant time.
//
// Points are encoded in the SEC1 compressed (0x02, 0x03) and uncompressed
// (0x04) formats.
package curve
