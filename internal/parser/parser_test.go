package parser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *ecdsa.PrivateKey {
	priv, err := ecdsa.NewPrivateKey(curve.Secp256k1(), bigint.FromUint64[bigint.W256](0xc0ffee))
	require.NoError(t, err)
	return priv
}

func signMessage(t *testing.T, priv *ecdsa.PrivateKey, msg string) *ecdsa.Signature {
	digest := sha256.Sum256([]byte(msg))
	sig, err := ecdsa.SignDeterministic(priv, digest[:])
	require.NoError(t, err)
	return sig
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestJSONParser(t *testing.T) {
	priv := testKey(t)
	sig := signMessage(t, priv, "hello")
	digest := sha256.Sum256([]byte("hello"))
	did, err := priv.PubKey().DIDKey()
	require.NoError(t, err)

	input := fmt.Sprintf(`[
		{"id": "hex", "message": "hello", "r": "0x%s", "s": "%s"},
		{"id": "decimal", "message": "hello", "r": %s, "s": %s},
		{"z": "0x%x", "signature": "%x", "public_key": "%s"},
		{"z": "0x%x", "signature": "%x", "public_key": "%x"}
	]`,
		sig.R.Hex(), sig.S.Hex(),
		sig.R.Text(10), sig.S.Text(10),
		digest, sig.MarshalDER(), did,
		digest, sig.MarshalCompact(), priv.PubKey().SerializeCompressed(),
	)

	records, err := (&JSONParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "hex", records[0].ID)
	assert.Equal(t, "decimal", records[1].ID)
	assert.Equal(t, did, records[2].PublicKey)
	for i, rec := range records {
		assert.Equal(t, digest[:], rec.Hash, "record %d", i)
		assert.Equal(t, sig, rec.Signature, "record %d", i)
	}
}

func TestJSONParserCustomFields(t *testing.T) {
	input := `[{"msg": "m", "sig_r": "1", "sig_s": "2", "key": "k"}]`
	p := &JSONParser{Fields: Fields{Message: "msg", R: "sig_r", S: "sig_s", PublicKey: "key"}}
	records, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	digest := sha256.Sum256([]byte("m"))
	assert.Equal(t, digest[:], records[0].Hash)
	assert.Equal(t, uint64(1), records[0].Signature.R.Uint64())
	assert.Equal(t, uint64(2), records[0].Signature.S.Uint64())
	assert.Equal(t, "k", records[0].PublicKey)
}

func TestJSONParserErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{`},
		{"not an array", `{"r": "1"}`},
		{"missing digest", `[{"r": "1", "s": "2"}]`},
		{"missing signature", `[{"message": "m", "r": "1"}]`},
		{"bad number", `[{"message": "m", "r": "12x", "s": "2"}]`},
		{"negative", `[{"message": "m", "r": "-1", "s": "2"}]`},
		{"too wide", `[{"message": "m", "r": "0x1` + strings.Repeat("00", 32) + `", "s": "2"}]`},
		{"wrong type", `[{"message": "m", "r": true, "s": "2"}]`},
		{"bad der", `[{"message": "m", "signature": "3000"}]`},
		{"bad hash", `[{"z": "0xzz", "r": "1", "s": "2"}]`},
	}
	for _, test := range tests {
		_, err := (&JSONParser{}).Parse(strings.NewReader(test.input))
		assert.Error(t, err, test.name)
	}
}

func TestCSVParser(t *testing.T) {
	priv := testKey(t)
	var b strings.Builder
	b.WriteString("id, message, r, s\n")
	var sigs []*ecdsa.Signature
	for i := 0; i < 3; i++ {
		msg := fmt.Sprintf("message %d", i)
		sig := signMessage(t, priv, msg)
		sigs = append(sigs, sig)
		fmt.Fprintf(&b, "row%d, %s, 0x%s, %s\n", i, msg, sig.R.Hex(), sig.S.Hex())
	}

	records, err := (&CSVParser{}).Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		digest := sha256.Sum256([]byte(fmt.Sprintf("message %d", i)))
		assert.Equal(t, fmt.Sprintf("row%d", i), rec.ID)
		assert.Equal(t, digest[:], rec.Hash)
		assert.Equal(t, sigs[i], rec.Signature)
	}
}

func TestCSVParserErrors(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader(""))
	assert.Error(t, err)

	_, err = (&CSVParser{}).Parse(strings.NewReader("message,r\nm,1\n"))
	assert.ErrorContains(t, err, "missing required columns")

	_, err = (&CSVParser{}).Parse(strings.NewReader("message,r,s\nm,1,zz\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestParseFile(t *testing.T) {
	jsonPath := writeFile(t, "sigs.json", `[{"message": "m", "r": "1", "s": "2"}]`)
	csvPath := writeFile(t, "sigs.CSV", "message,r,s\nm,1,2\n")

	assert.IsType(t, &JSONParser{}, ForFile(jsonPath, Fields{}))
	assert.IsType(t, &CSVParser{}, ForFile(csvPath, Fields{}))

	for _, path := range []string{jsonPath, csvPath} {
		records, err := ParseFile(path, Fields{})
		require.NoError(t, err, path)
		require.Len(t, records, 1)
		assert.Equal(t, uint64(2), records[0].Signature.S.Uint64())
	}

	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.json"), Fields{})
	assert.Error(t, err)
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"0x10", 16},
		{"0X10", 16},
		{"10", 10},
		{"ff", 255},
		{" 42 ", 42},
		{"0", 0},
		{"18446744073709551615", 18446744073709551615},
		{"000000000000000000123", 0x123},
	}
	for _, test := range tests {
		got, err := ParseInt(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, got.Uint64(), test.in)
	}

	for _, in := range []string{"", "12x", "-5", "0xg1", "1.5"} {
		_, err := ParseInt(in)
		assert.Error(t, err, in)
	}
}

func TestParseIntLongDigitsAreHex(t *testing.T) {
	priv := testKey(t)
	// A digest whose hex form has no letters.
	digits := "1234567890123456789012345678901234567890123456789012345678901234"
	got, err := ParseInt(digits)
	require.NoError(t, err)
	assert.Equal(t, bigint.MustFromHex[bigint.W256](digits), got)

	h, err := parseHash(digits)
	require.NoError(t, err)
	assert.Equal(t, digits, hex.EncodeToString(h))

	sig, err := ecdsa.SignDeterministic(priv, h)
	require.NoError(t, err)
	input := fmt.Sprintf("z,r,s\n%s,%s,%s\n", digits, sig.R.Hex(), sig.S.Hex())
	records, err := (&CSVParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, h, records[0].Hash)
	assert.True(t, records[0].Signature.Verify(h, priv.PubKey()))

	_, err = (&JSONParser{}).Parse(strings.NewReader(`[{"message": "m", "r": -1, "s": 2}]`))
	assert.Error(t, err)
}

func TestParseHashDecimal(t *testing.T) {
	h, err := parseHash("258")
	require.NoError(t, err)
	require.Len(t, h, 32)
	assert.Equal(t, "0102", hex.EncodeToString(h[30:]))

	h, err = parseHash("0xabc")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0xbc}, h)
}

func TestParsePublicKey(t *testing.T) {
	c := curve.Secp256k1()
	pub := testKey(t).PubKey()
	did, err := pub.DIDKey()
	require.NoError(t, err)
	mb, err := pub.Multibase()
	require.NoError(t, err)

	for _, s := range []string{
		did,
		mb,
		hex.EncodeToString(pub.SerializeCompressed()),
		"0x" + hex.EncodeToString(pub.SerializeUncompressed()),
	} {
		got, err := ParsePublicKey(c, s)
		require.NoError(t, err, s)
		assert.True(t, got.IsEqual(pub), s)
	}

	_, err = ParsePublicKey(curve.P256(), did)
	assert.ErrorContains(t, err, "public key is on secp256k1")

	_, err = ParsePublicKey(c, "nothex")
	assert.Error(t, err)
}

func TestJobsVerify(t *testing.T) {
	priv := testKey(t)
	c := priv.Curve
	did, err := priv.PubKey().DIDKey()
	require.NoError(t, err)

	var records []Record
	for i := 0; i < 3; i++ {
		msg := fmt.Sprintf("job %d", i)
		digest := sha256.Sum256([]byte(msg))
		rec := Record{Hash: digest[:], Signature: signMessage(t, priv, msg)}
		if i == 1 {
			rec.PublicKey = did
			rec.ID = "with key"
		}
		records = append(records, rec)
	}
	// Sign one message but claim another.
	records[2].Hash = records[0].Hash

	_, err = Jobs(c, records, nil)
	assert.ErrorContains(t, err, "record 0: no public key")

	jobs, err := Jobs(c, records, priv.PubKey())
	require.NoError(t, err)
	assert.Equal(t, "#0", jobs[0].ID)
	assert.Equal(t, "with key", jobs[1].ID)

	results, err := ecdsa.NewBatchVerifier().Verify(context.Background(), jobs)
	require.NoError(t, err)
	assert.True(t, results[0].Valid())
	assert.True(t, results[1].Valid())
	assert.False(t, results[2].Valid())

	samples := Samples(records)
	require.Len(t, samples, 3)
	assert.Equal(t, records[1].Signature, samples[1].Signature)
	assert.Equal(t, "with key", samples[1].ID)
}
