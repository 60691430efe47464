package ecdsa

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
)

// FromSecp256k1 converts a decred secp256k1 public key.
func FromSecp256k1(pub *secp256k1.PublicKey) (*PublicKey, error) {
	return ParsePublicKey(curve.Secp256k1(), pub.SerializeUncompressed())
}

// ToSecp256k1 converts the key to a decred secp256k1 public key.  Keys on
// other curves return ErrUnsupportedCurve.
func (pub *PublicKey) ToSecp256k1() (*secp256k1.PublicKey, error) {
	if pub.Curve != curve.Secp256k1() {
		return nil, signatureError(ErrUnsupportedCurve, "public key is on "+
			pub.Curve.Name()+", not secp256k1")
	}
	return secp256k1.ParsePubKey(pub.SerializeUncompressed())
}

// PrivKeyFromSecp256k1 converts a decred secp256k1 private key.
func PrivKeyFromSecp256k1(priv *secp256k1.PrivateKey) (*PrivateKey, error) {
	return PrivKeyFromBytes(curve.Secp256k1(), priv.Serialize())
}

// ToSecp256k1 converts the key to a decred secp256k1 private key.  Keys on
// other curves return ErrUnsupportedCurve.
func (priv *PrivateKey) ToSecp256k1() (*secp256k1.PrivateKey, error) {
	if priv.Curve != curve.Secp256k1() {
		return nil, signatureError(ErrUnsupportedCurve, "private key is on "+
			priv.Curve.Name()+", not secp256k1")
	}
	return secp256k1.PrivKeyFromBytes(priv.Serialize()), nil
}
