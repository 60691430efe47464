package ecdsa

import (
	"fmt"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
)

// CompactSignatureSize is the length of a signature in the fixed width
// [R | S] encoding.
const CompactSignatureSize = 64

// MarshalCompact encodes the signature as R and S, each zero padded to 32
// big-endian bytes.
func (sig *Signature) MarshalCompact() []byte {
	out := make([]byte, CompactSignatureSize)
	sig.R.PutBytes(out[:32])
	sig.S.PutBytes(out[32:])
	return out
}

// ParseCompactSignature decodes a 64 byte [R | S] signature.
func ParseCompactSignature(b []byte) (*Signature, error) {
	if len(b) != CompactSignatureSize {
		str := fmt.Sprintf("malformed signature: got %d bytes, want %d",
			len(b), CompactSignatureSize)
		return nil, signatureError(ErrSigInvalidLen, str)
	}
	r, _ := bigint.FromBytes[bigint.W256](b[:32])
	s, _ := bigint.FromBytes[bigint.W256](b[32:])
	return &Signature{R: r, S: s}, nil
}
