package ecdsa

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
)

// Sign signs hash with priv using the caller supplied nonce k.  The nonce
// must be in [1, N-1], secret and never reused; a nonce that yields a zero R
// or S is rejected with ErrInvalidNonce and the caller must pick another.
//
// The returned signature is not normalized; see ToLowS.
func Sign(priv *PrivateKey, hash []byte, k bigint.U256) (*Signature, error) {
	c := priv.Curve
	return signDigest(c, priv.D, HashToInt(c, hash), k)
}

func signDigest(c *curve.Curve, d, e, k bigint.U256) (*Signature, error) {
	n := c.N()
	if k.IsZero() || k.Ge(n) {
		return nil, signatureError(ErrInvalidNonce, "nonce is not in [1, N-1]")
	}
	fn := c.Order()

	// r = (k*G).x mod n
	r := bigint.Mod(c.ScalarBaseMult(k).X, n)
	if r.IsZero() {
		return nil, signatureError(ErrInvalidNonce, "nonce produces R = 0")
	}

	// s = k^-1 * (e + r*d) mod n
	kInv, _ := fn.Inverse(k)
	s := fn.MulMod(kInv, bigint.ModAdd(e, fn.MulMod(r, d), n))
	if s.IsZero() {
		return nil, signatureError(ErrInvalidNonce, "nonce produces S = 0")
	}
	return &Signature{R: r, S: s}, nil
}

// SignDeterministic signs hash with a nonce derived from the key and the
// digest per RFC 6979, using HMAC-SHA256.  The signature is normalized to low
// S, so it is byte for byte identical to one produced by the decred secp256k1
// package.  Only secp256k1 keys are supported.
func SignDeterministic(priv *PrivateKey, hash []byte) (*Signature, error) {
	c := priv.Curve
	if c != curve.Secp256k1() {
		return nil, signatureError(ErrUnsupportedCurve, "deterministic "+
			"signing is only available on secp256k1")
	}

	privBytes := priv.Serialize()
	e := HashToInt(c, hash)
	for iteration := uint32(0); ; iteration++ {
		nonce := secp256k1.NonceRFC6979(privBytes, hash, nil, nil, iteration)
		kBytes := nonce.Bytes()
		nonce.Zero()

		k, _ := bigint.FromBytes[bigint.W256](kBytes[:])
		sig, err := signDigest(c, priv.D, e, k)
		if err != nil {
			continue
		}
		return sig.ToLowS(c), nil
	}
}

// IsLowS reports whether S is at most N/2.
func (sig *Signature) IsLowS(c *curve.Curve) bool {
	return sig.S.Le(c.N().Rsh(1))
}

// ToLowS returns the signature with S replaced by N - S when S is above N/2.
// Both forms verify; the low form is the canonical one.
func (sig *Signature) ToLowS(c *curve.Curve) *Signature {
	if sig.IsLowS(c) {
		return &Signature{R: sig.R, S: sig.S}
	}
	return &Signature{R: sig.R, S: c.N().Sub(sig.S)}
}
