package ecdsa

import (
	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
)

// Signature is an ECDSA signature.  R and S must both be in [1, N-1] of the
// curve they are verified against.
type Signature struct {
	R, S bigint.U256
}

// NewSignature returns a signature with the given components.
func NewSignature(r, s bigint.U256) *Signature {
	return &Signature{R: r, S: s}
}

// Verify reports whether sig is a valid signature of hash by pub.
func (sig *Signature) Verify(hash []byte, pub *PublicKey) bool {
	return Verify(pub, hash, sig) == nil
}

// HashToInt converts a digest to an integer the way ECDSA does: the leftmost
// BitSize() bits of hash are interpreted as a big-endian number.  The result
// is not reduced modulo N.
func HashToInt(c *curve.Curve, hash []byte) bigint.U256 {
	bits := c.BitSize()
	size := (bits + 7) / 8
	if len(hash) > size {
		hash = hash[:size]
	}
	// At most 32 bytes remain, which always fit.
	e, _ := bigint.FromBytes[bigint.W256](hash)
	if excess := len(hash)*8 - bits; excess > 0 {
		e = e.Rsh(uint(excess))
	}
	return e
}

// Verify checks sig against the digest hash and the public key pub.  The
// digest is converted with HashToInt.
func Verify(pub *PublicKey, hash []byte, sig *Signature) error {
	if err := pub.Validate(); err != nil {
		return err
	}
	return VerifyDigest(pub, HashToInt(pub.Curve, hash), sig)
}

// checkRange rejects signatures whose components are outside [1, N-1].
func checkRange(n bigint.U256, sig *Signature) error {
	switch {
	case sig == nil:
		return signatureError(ErrSigInvalidLen, "signature is missing")
	case sig.R.IsZero():
		return signatureError(ErrSigRIsZero, "signature R is 0")
	case sig.R.Ge(n):
		return signatureError(ErrSigRTooBig, "signature R is >= curve order")
	case sig.S.IsZero():
		return signatureError(ErrSigSIsZero, "signature S is 0")
	case sig.S.Ge(n):
		return signatureError(ErrSigSTooBig, "signature S is >= curve order")
	}
	return nil
}

// VerifyDigest checks sig against the integer e derived from a message
// digest.  A nil error means the signature is valid.  Otherwise the error
// matches ErrInvalidFormat when the signature or key is malformed, and
// ErrVerificationFailed when it is well formed but does not verify.
func VerifyDigest(pub *PublicKey, e bigint.U256, sig *Signature) error {
	if err := pub.Validate(); err != nil {
		return err
	}
	c := pub.Curve
	n := c.N()
	if err := checkRange(n, sig); err != nil {
		return err
	}

	fn := c.Order()
	sInv, ok := fn.Inverse(sig.S)
	if !ok {
		return signatureError(ErrSigNoInverse, "signature S has no inverse")
	}
	u1 := fn.MulMod(e, sInv)
	u2 := fn.MulMod(sig.R, sInv)

	p := c.Add(c.ScalarBaseMult(u1), c.ScalarMult(u2, pub.Point()))
	if p.Infinity {
		return signatureError(ErrSigPointAtInfinity, "u1*G + u2*Q is the "+
			"point at infinity")
	}
	if bigint.Mod(p.X, n) != sig.R {
		return signatureError(ErrSigMismatch, "signature is not valid for "+
			"the given key and digest")
	}
	return nil
}
