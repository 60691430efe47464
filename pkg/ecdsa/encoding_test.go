package ecdsa

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDERRoundTrip(t *testing.T) {
	sigs := []*Signature{
		{R: bigint.FromUint64[bigint.W256](1), S: bigint.FromUint64[bigint.W256](0x80)},
		{R: bigint.Max[bigint.W256](), S: bigint.FromUint64[bigint.W256](0x7f)},
	}
	priv := testKey(t, curve.Secp256k1(), "der")
	digest := sha256.Sum256([]byte("der"))
	sig, err := SignDeterministic(priv, digest[:])
	require.NoError(t, err)
	sigs = append(sigs, sig)

	for _, sig := range sigs {
		got, err := ParseDERSignature(sig.MarshalDER())
		require.NoError(t, err)
		assert.Equal(t, sig, got)
	}
}

func TestMarshalDERMinimal(t *testing.T) {
	sig := &Signature{
		R: bigint.FromUint64[bigint.W256](1),
		S: bigint.FromUint64[bigint.W256](0x80),
	}
	// 0x80 needs a leading zero to stay positive.
	assert.Equal(t, mustHex(t, "300702010102020080"), sig.MarshalDER())
}

func TestParseDERSignatureErrors(t *testing.T) {
	tests := []struct {
		name string
		der  string
	}{
		{"empty", ""},
		{"not a sequence", "3106020101020101"},
		{"trailing data", "30060201010201010000"},
		{"missing s", "3003020101"},
		{"negative r", "3006020181020101"},
		{"non-minimal r", "300702020001020101"},
		{"r too wide", "3026022101" + "0000000000000000000000000000000000000000000000000000000000000000" + "020101"},
	}
	for _, test := range tests {
		_, err := ParseDERSignature(mustHex(t, test.der))
		require.Error(t, err, test.name)
		assert.True(t, errors.Is(err, ErrSigInvalidDER), test.name)
		assert.True(t, errors.Is(err, ErrInvalidFormat), test.name)
	}
}

func TestCompactRoundTrip(t *testing.T) {
	sig := &Signature{
		R: bigint.FromUint64[bigint.W256](0xabcdef),
		S: bigint.Max[bigint.W256](),
	}
	b := sig.MarshalCompact()
	require.Len(t, b, CompactSignatureSize)
	assert.Equal(t, byte(0xef), b[31])
	assert.Equal(t, byte(0xff), b[32])

	got, err := ParseCompactSignature(b)
	require.NoError(t, err)
	assert.Equal(t, sig, got)

	_, err = ParseCompactSignature(b[:63])
	assert.True(t, errors.Is(err, ErrSigInvalidLen))
}

func TestPublicKeySerialization(t *testing.T) {
	for _, c := range []*curve.Curve{curve.Secp256k1(), curve.P256()} {
		pub := testKey(t, c, "serialize").PubKey()
		for _, enc := range [][]byte{pub.SerializeCompressed(), pub.SerializeUncompressed()} {
			got, err := ParsePublicKey(c, enc)
			require.NoError(t, err)
			assert.True(t, got.IsEqual(pub), c.Name())
		}
	}

	_, err := ParsePublicKey(curve.P256(), []byte{0x02, 0x01})
	assert.True(t, errors.Is(err, ErrPubKeyInvalid))
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	_, err = NewPublicKey(curve.P256(), curve.Infinity())
	assert.True(t, errors.Is(err, ErrPubKeyInvalid))
	pub, err := NewPublicKey(curve.P256(), curve.P256().G())
	require.NoError(t, err)
	assert.True(t, pub.Point().Equal(curve.P256().G()))
}

func TestDIDKey(t *testing.T) {
	tests := []struct {
		c    *curve.Curve
		want string
	}{
		{curve.Secp256k1(), "did:key:zQ3shVc2UkAfJCdc1TR8E66J85h48P43r93q8jGPkPpjF9Ef9"},
		{curve.P256(), "did:key:zDnaepsL7AXenJkVYdkh5KuKsSU7Ykh7kyXaLLU7auN9FWSiZ"},
	}
	for _, test := range tests {
		priv, err := NewPrivateKey(test.c, bigint.One[bigint.W256]())
		require.NoError(t, err)

		did, err := priv.PubKey().DIDKey()
		require.NoError(t, err)
		assert.Equal(t, test.want, did)

		pub, err := ParseDIDKey(did)
		require.NoError(t, err)
		assert.Same(t, test.c, pub.Curve)
		assert.True(t, pub.IsEqual(priv.PubKey()))
	}

	pub, err := ParseDIDKey("did:key:zDnaembgSGUhZULN2Caob4HLJPaxBh92N7rtH21TErzqf8HQo")
	require.NoError(t, err)
	assert.Same(t, curve.P256(), pub.Curve)
	mb, err := pub.Multibase()
	require.NoError(t, err)
	assert.Equal(t, "zDnaembgSGUhZULN2Caob4HLJPaxBh92N7rtH21TErzqf8HQo", mb)
}

func TestParseDIDKeyErrors(t *testing.T) {
	for _, in := range []string{
		"zQ3shVc2UkAfJCdc1TR8E66J85h48P43r93q8jGPkPpjF9Ef9",
		"did:key:mQ3shVc2UkAfJCdc1TR8E66J85h48P43r93q8jGPkPpjF9Ef9",
		"did:key:z0OIl",
		"did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK",
	} {
		_, err := ParseDIDKey(in)
		assert.True(t, errors.Is(err, ErrPubKeyInvalid), in)
	}

	toy := toyCurve(t)
	_, err := (&PublicKey{Curve: toy, X: toy.G().X, Y: toy.G().Y}).DIDKey()
	assert.True(t, errors.Is(err, ErrUnsupportedCurve))
}
