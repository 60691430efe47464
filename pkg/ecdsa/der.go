package ecdsa

import (
	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// MarshalDER encodes the signature as an ASN.1 DER SEQUENCE of two INTEGERs.
func (sig *Signature) MarshalDER() []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addASN1IntBytes(b, sig.R.Bytes())
		addASN1IntBytes(b, sig.S.Bytes())
	})
	// The builder only fails on a length overflow, which two 32 byte
	// integers cannot reach.
	return b.BytesOrPanic()
}

// addASN1IntBytes encodes in ASN.1 a positive integer represented as a
// big-endian byte slice with zero or more leading zeroes.
func addASN1IntBytes(b *cryptobyte.Builder, bytes []byte) {
	for len(bytes) > 1 && bytes[0] == 0 {
		bytes = bytes[1:]
	}
	b.AddASN1(asn1.INTEGER, func(c *cryptobyte.Builder) {
		if bytes[0]&0x80 != 0 {
			c.AddUint8(0)
		}
		c.AddBytes(bytes)
	})
}

// ParseDERSignature decodes a DER encoded signature.  Negative integers,
// non-minimal encodings, trailing data and integers wider than 256 bits are
// rejected.  Range checks against a curve order happen at verification.
func ParseDERSignature(der []byte) (*Signature, error) {
	var (
		rBytes, sBytes []byte
		inner          cryptobyte.String
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(&rBytes) ||
		!inner.ReadASN1Integer(&sBytes) ||
		!inner.Empty() {
		return nil, signatureError(ErrSigInvalidDER, "malformed DER signature")
	}

	r, err := bigint.FromBytes[bigint.W256](rBytes)
	if err != nil {
		return nil, signatureError(ErrSigInvalidDER, "signature R: "+err.Error())
	}
	s, err := bigint.FromBytes[bigint.W256](sBytes)
	if err != nil {
		return nil, signatureError(ErrSigInvalidDER, "signature S: "+err.Error())
	}
	return &Signature{R: r, S: s}, nil
}
