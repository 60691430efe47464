package ecdsa

import (
	"fmt"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
)

// RecoverPublicKey returns the public key that produced sig over hash, given
// the recovery code.  Bit 0 of the code is the parity of the y coordinate of
// the nonce point R and bit 1 says whether its x coordinate is R + N rather
// than R.
//
// Q = r^-1 * (s*R - e*G)
func RecoverPublicKey(c *curve.Curve, hash []byte, sig *Signature, code byte) (*PublicKey, error) {
	if code > 3 {
		str := fmt.Sprintf("invalid public key recovery code %d", code)
		return nil, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	n := c.N()
	if err := checkRange(n, sig); err != nil {
		return nil, err
	}

	x := sig.R
	if code&2 != 0 {
		var overflow bool
		x, overflow = x.AddOverflow(n)
		if overflow || x.Ge(c.P()) {
			return nil, signatureError(ErrSigOverflowsPrime, "signature R + N "+
				">= P")
		}
	}
	y, err := c.DecompressY(x, code&1 == 1)
	if err != nil {
		return nil, signatureError(ErrPointNotOnCurve, err.Error())
	}
	nonce := curve.Point{X: x, Y: y}

	fn := c.Order()
	rInv, _ := fn.Inverse(sig.R)
	e := HashToInt(c, hash)
	u1 := fn.MulMod(bigint.ModNeg(e, n), rInv)
	u2 := fn.MulMod(sig.S, rInv)

	q := c.Add(c.ScalarBaseMult(u1), c.ScalarMult(u2, nonce))
	if q.Infinity {
		return nil, signatureError(ErrPointNotOnCurve, "recovered public key "+
			"is the point at infinity")
	}
	return &PublicKey{Curve: c, X: q.X, Y: q.Y}, nil
}

// RecoveryCode returns the recovery code for which RecoverPublicKey yields
// pub.  It fails when no code does, which means sig is not a valid signature
// of hash by pub.
func RecoveryCode(pub *PublicKey, hash []byte, sig *Signature) (byte, error) {
	if err := Verify(pub, hash, sig); err != nil {
		return 0, err
	}
	for code := byte(0); code < 4; code++ {
		got, err := RecoverPublicKey(pub.Curve, hash, sig, code)
		if err == nil && got.IsEqual(pub) {
			return code, nil
		}
	}
	return 0, signatureError(ErrSigMismatch, "no recovery code yields the "+
		"public key")
}
