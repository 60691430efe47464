package ecdsa

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mr-tron/base58"
)

// Varint encoded multicodec prefixes for compressed public keys.
var (
	multicodecSecp256k1 = []byte{0xe7, 0x01} // secp256k1-pub, 0xe7
	multicodecP256      = []byte{0x80, 0x24} // p256-pub, 0x1200
)

const didKeyPrefix = "did:key:"

func multicodecFor(c *curve.Curve) ([]byte, error) {
	switch c {
	case curve.Secp256k1():
		return multicodecSecp256k1, nil
	case curve.P256():
		return multicodecP256, nil
	}
	return nil, signatureError(ErrUnsupportedCurve, "no multicodec for "+
		"curve "+c.Name())
}

// Multibase returns the key as a base58btc multibase string: the compressed
// point, prefixed with the multicodec of its curve, base58 encoded and
// prefixed with "z".
func (pub *PublicKey) Multibase() (string, error) {
	prefix, err := multicodecFor(pub.Curve)
	if err != nil {
		return "", err
	}
	kbytes := append(append([]byte{}, prefix...), pub.SerializeCompressed()...)
	return "z" + base58.Encode(kbytes), nil
}

// DIDKey returns the key as a did:key identifier.
func (pub *PublicKey) DIDKey() (string, error) {
	mb, err := pub.Multibase()
	if err != nil {
		return "", err
	}
	return didKeyPrefix + mb, nil
}

// ParsePublicMultibase decodes a key produced by Multibase.  The curve is
// taken from the multicodec prefix.
func ParsePublicMultibase(encoded string) (*PublicKey, error) {
	if !strings.HasPrefix(encoded, "z") {
		return nil, signatureError(ErrPubKeyInvalid, "multibase key is not "+
			"base58btc encoded")
	}
	data, err := base58.Decode(encoded[1:])
	if err != nil {
		str := fmt.Sprintf("invalid base58 in multibase key: %v", err)
		return nil, signatureError(ErrPubKeyInvalid, str)
	}
	switch {
	case bytes.HasPrefix(data, multicodecSecp256k1):
		return ParsePublicKey(curve.Secp256k1(), data[len(multicodecSecp256k1):])
	case bytes.HasPrefix(data, multicodecP256):
		return ParsePublicKey(curve.P256(), data[len(multicodecP256):])
	}
	return nil, signatureError(ErrPubKeyInvalid, "unknown multicodec prefix "+
		"in multibase key")
}

// ParseDIDKey decodes a did:key identifier produced by DIDKey.
func ParseDIDKey(did string) (*PublicKey, error) {
	if !strings.HasPrefix(did, didKeyPrefix) {
		return nil, signatureError(ErrPubKeyInvalid, "identifier does not "+
			"start with "+didKeyPrefix)
	}
	return ParsePublicMultibase(strings.TrimPrefix(did, didKeyPrefix))
}
