// Package bigint provides fixed-width unsigned integers together with the
// modular arithmetic and primality tests needed for elliptic curve work.
//
// A single generic type, Int, backs every width.  The aliases U256, U384,
// U512, U1024, U2048 and U4096 name the supported instantiations:
//
//	x := bigint.FromUint64[bigint.W256](7)
//	y := bigint.MustFromHex[bigint.W256]("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
//	z := bigint.MulMod(x, x, y)
//
// Int is a value type.  Arithmetic never mutates its operands, and Add, Sub,
// Mul and Lsh wrap modulo 2^width.
//
// # Modular arithmetic
//
// ModAdd, ModSub, MulMod, PowMod and ModInverse take the modulus as an
// explicit argument and accept unreduced inputs.  A zero modulus is a caller
// error and yields zero rather than a panic.  For repeated work against one
// odd modulus, a Montgomery context avoids the long division performed by
// MulMod.
//
// # Primality
//
// GCD, TrialDivision and IsPrimeMillerRabin.  Miller-Rabin witnesses are
// fixed small primes, so results are deterministic.
//
// Nothing in this package runs in constant time.
package bigint
