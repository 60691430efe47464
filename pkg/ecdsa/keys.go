package ecdsa

import (
	"fmt"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
)

// PublicKey is an ECDSA public key, a point Q on Curve.
type PublicKey struct {
	Curve *curve.Curve
	X, Y  bigint.U256
}

// PrivateKey is an ECDSA private key.  D is the secret scalar in [1, N-1].
type PrivateKey struct {
	PublicKey
	D bigint.U256
}

// NewPublicKey returns the public key for p after checking that p is a finite
// point on c.
func NewPublicKey(c *curve.Curve, p curve.Point) (*PublicKey, error) {
	pub := &PublicKey{Curve: c, X: p.X, Y: p.Y}
	if p.Infinity {
		return nil, signatureError(ErrPubKeyInvalid, "public key is the point at infinity")
	}
	if err := pub.Validate(); err != nil {
		return nil, err
	}
	return pub, nil
}

// ParsePublicKey decodes a SEC1 compressed or uncompressed public key on c.
func ParsePublicKey(c *curve.Curve, b []byte) (*PublicKey, error) {
	p, err := c.ParsePoint(b)
	if err != nil {
		return nil, signatureError(ErrPubKeyInvalid, err.Error())
	}
	return &PublicKey{Curve: c, X: p.X, Y: p.Y}, nil
}

// Point returns the public key as a curve point.
func (pub *PublicKey) Point() curve.Point {
	return curve.Point{X: pub.X, Y: pub.Y}
}

// Validate checks that the key has a curve and lies on it.
func (pub *PublicKey) Validate() error {
	if pub == nil || pub.Curve == nil {
		return signatureError(ErrPubKeyInvalid, "public key has no curve")
	}
	if !pub.Curve.IsOnCurve(pub.Point()) {
		str := fmt.Sprintf("public key is not on %s", pub.Curve.Name())
		return signatureError(ErrPubKeyInvalid, str)
	}
	return nil
}

// SerializeCompressed encodes the key in the 33 byte SEC1 compressed format.
func (pub *PublicKey) SerializeCompressed() []byte {
	return pub.Curve.MarshalCompressed(pub.Point())
}

// SerializeUncompressed encodes the key in the 65 byte SEC1 uncompressed
// format.
func (pub *PublicKey) SerializeUncompressed() []byte {
	return pub.Curve.MarshalUncompressed(pub.Point())
}

// IsEqual reports whether both keys are the same point on the same curve.
func (pub *PublicKey) IsEqual(other *PublicKey) bool {
	return pub.Curve == other.Curve && pub.X == other.X && pub.Y == other.Y
}

// NewPrivateKey derives the key pair for the secret scalar d, which must be
// in [1, N-1].
func NewPrivateKey(c *curve.Curve, d bigint.U256) (*PrivateKey, error) {
	if d.IsZero() || d.Ge(c.N()) {
		return nil, signatureError(ErrInvalidPrivateKey, "private scalar is "+
			"not in [1, N-1]")
	}
	q := c.ScalarBaseMult(d)
	return &PrivateKey{
		PublicKey: PublicKey{Curve: c, X: q.X, Y: q.Y},
		D:         d,
	}, nil
}

// PrivKeyFromBytes is like NewPrivateKey for a big-endian encoded scalar.
func PrivKeyFromBytes(c *curve.Curve, b []byte) (*PrivateKey, error) {
	d, err := bigint.FromBytes[bigint.W256](b)
	if err != nil {
		return nil, signatureError(ErrInvalidPrivateKey, err.Error())
	}
	return NewPrivateKey(c, d)
}

// PubKey returns the public half of the key pair.
func (priv *PrivateKey) PubKey() *PublicKey {
	pub := priv.PublicKey
	return &pub
}

// Serialize returns the secret scalar as 32 big-endian bytes.
func (priv *PrivateKey) Serialize() []byte {
	return priv.D.Bytes()
}
