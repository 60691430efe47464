package bigint

import "github.com/mahdiidarabi/fixedec/internal/limb"

// smallPrimes are the primes below 256.  They serve both as trial divisors
// and as the deterministic Miller-Rabin witnesses.
var smallPrimes = [...]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
	157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
	239, 241, 251,
}

// trialLimit is the bound below which trial division alone is exact.
const trialLimit = 251 * 251

// GCD returns the greatest common divisor of a and b using the iterative
// Euclidean algorithm.  GCD(0, x) == x.
func GCD[A any, P Width[A]](a, b Int[A, P]) Int[A, P] {
	for !b.IsZero() {
		_, r := a.DivRem(b)
		a, b = b, r
	}
	return a
}

// TrialDivision reports whether n survives division by the small primes.  It
// returns false when n < 2 or n has a prime factor p <= 251 with p != n, and
// returns true as soon as p*p exceeds n.  A true result is exact for
// n < 251*251 and only a pre-filter above that.
func TrialDivision[A any, P Width[A]](n Int[A, P]) bool {
	if n.Lt(FromUint64[A, P](2)) {
		return false
	}
	small := n.IsUint64()
	nw := n.w()
	for _, p := range smallPrimes {
		if small && n.Uint64() == p {
			return true
		}
		if limb.ModWord(nw, p) == 0 {
			return false
		}
		if small && p*p > n.Uint64() {
			return true
		}
	}
	return true
}

// IsPrimeMillerRabin reports whether n is probably prime.  Small and even
// values are handled directly, trial division filters the rest, and rounds
// Miller-Rabin iterations follow using the first rounds small primes as
// witnesses.  rounds is clamped to [1, 54].
//
// The witnesses are fixed, so the result is deterministic and a composite
// built to be a strong pseudoprime to the first rounds primes is reported
// prime.  The 4^-rounds error bound of Miller-Rabin applies to random bases
// only and does not hold here for adversarial input.
func IsPrimeMillerRabin[A any, P Width[A]](n Int[A, P], rounds int) bool {
	switch {
	case n.Lt(FromUint64[A, P](2)):
		return false
	case n.Lt(FromUint64[A, P](4)):
		return true
	case !n.IsOdd():
		return false
	}
	if !TrialDivision(n) {
		return false
	}
	if n.IsUint64() && n.Uint64() < trialLimit {
		return true
	}

	switch {
	case rounds < 1:
		rounds = 1
	case rounds > len(smallPrimes):
		rounds = len(smallPrimes)
	}
	return MillerRabin(n, smallPrimes[:rounds])
}

// MillerRabin runs one Miller-Rabin round per base against the odd n > 3.
// Bases outside [2, n-2] are skipped.  It returns false as soon as a base
// witnesses compositeness.
func MillerRabin[A any, P Width[A]](n Int[A, P], bases []uint64) bool {
	mt, err := NewMontgomery(n)
	if err != nil {
		return false
	}

	one := One[A, P]()
	nm1 := n.SubUint64(1)
	s := nm1.TrailingZeros()
	d := nm1.Rsh(uint(s))

nextBase:
	for _, b := range bases {
		a := FromUint64[A, P](b)
		if a.Lt(FromUint64[A, P](2)) || a.Ge(nm1) {
			continue
		}
		x := mt.PowMod(a, d)
		if x.Eq(one) || x.Eq(nm1) {
			continue
		}
		for i := 1; i < s; i++ {
			x = mt.MulMod(x, x)
			if x.Eq(nm1) {
				continue nextBase
			}
			if x.Eq(one) {
				return false
			}
		}
		return false
	}
	return true
}
