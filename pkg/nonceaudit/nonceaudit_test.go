package nonceaudit

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalar(c *curve.Curve, seed string) bigint.U256 {
	h := sha256.Sum256([]byte(seed))
	v, _ := bigint.FromBytes[bigint.W256](h[:])
	return bigint.Mod(v, c.N())
}

func testKey(t *testing.T, c *curve.Curve) *ecdsa.PrivateKey {
	priv, err := ecdsa.NewPrivateKey(c, scalar(c, "audited key"))
	require.NoError(t, err)
	return priv
}

// related returns a*k + b mod N.
func related(c *curve.Curve, k bigint.U256, rel Relation) bigint.U256 {
	a, b := rel.residues(c.N())
	return bigint.ModAdd(c.Order().MulMod(a, k), b, c.N())
}

func sample(t *testing.T, priv *ecdsa.PrivateKey, msg string, k bigint.U256) Sample {
	digest := sha256.Sum256([]byte(msg))
	sig, err := ecdsa.Sign(priv, digest[:], k)
	require.NoError(t, err)
	return Sample{ID: msg, Hash: digest[:], Signature: sig}
}

// relatedSamples signs two messages with nonces k1 and rel(k1).
func relatedSamples(t *testing.T, priv *ecdsa.PrivateKey, rel Relation) []Sample {
	c := priv.Curve
	k1 := scalar(c, "first nonce")
	return []Sample{
		sample(t, priv, "first message", k1),
		sample(t, priv, "second message", related(c, k1, rel)),
	}
}

func TestRecoverPrivateKey(t *testing.T) {
	for _, c := range []*curve.Curve{curve.Secp256k1(), curve.P256()} {
		priv := testKey(t, c)
		for _, rel := range []Relation{{1, 1}, {2, 1}, {-3, -7}, {1, 0}} {
			samples := relatedSamples(t, priv, rel)
			a, b := rel.residues(c.N())
			d, err := RecoverPrivateKey(c, samples[0], samples[1], a, b)
			require.NoError(t, err)
			assert.Equal(t, priv.D, d, "%s %s", c.Name(), rel)
		}
	}
}

func TestRecoverPrivateKeyDegenerate(t *testing.T) {
	c := curve.Secp256k1()
	s := sample(t, testKey(t, c), "message", scalar(c, "nonce"))
	a, b := Relation{1, 0}.residues(c.N())
	_, err := RecoverPrivateKey(c, s, s, a, b)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestResidue(t *testing.T) {
	n := curve.Secp256k1().N()
	assert.Equal(t, uint64(5), residue(5, n).Uint64())
	assert.Equal(t, n.Sub(bigint.One[bigint.W256]()), residue(-1, n))
	assert.True(t, residue(0, n).IsZero())
	assert.Equal(t, "k2 = 2*k1 +1", Relation{2, 1}.String())
	assert.Equal(t, "k2 = -3*k1 -7", Relation{-3, -7}.String())
}

func TestAuditRepeatedNonce(t *testing.T) {
	c := curve.Secp256k1()
	priv := testKey(t, c)
	samples := relatedSamples(t, priv, Relation{1, 0})

	result, err := NewAuditor(c).Audit(context.Background(), samples, priv.PubKey())
	require.NoError(t, err)
	assert.Equal(t, "same_nonce_reuse", result.Pattern)
	assert.Equal(t, Relation{1, 0}, result.Relation)
	assert.Equal(t, [2]int{0, 1}, result.Pair)
	assert.True(t, result.Verified)
	assert.Equal(t, priv.D, result.PrivateKey.D)
}

func TestAuditNegatedNonce(t *testing.T) {
	c := curve.P256()
	priv := testKey(t, c)
	samples := relatedSamples(t, priv, Relation{-1, 0})
	require.Equal(t, samples[0].Signature.R, samples[1].Signature.R)

	result, err := NewAuditor(c).Audit(context.Background(), samples, priv.PubKey())
	require.NoError(t, err)
	assert.Equal(t, Relation{-1, 0}, result.Relation)
	assert.Equal(t, priv.D, result.PrivateKey.D)
}

func TestAuditCommonPatternWithoutPublicKey(t *testing.T) {
	c := curve.Secp256k1()
	priv := testKey(t, c)
	samples := relatedSamples(t, priv, Relation{1, 3})

	result, err := NewAuditor(c).Audit(context.Background(), samples, nil)
	require.NoError(t, err)
	assert.Equal(t, "counter_+3", result.Pattern)
	assert.False(t, result.Verified)
	assert.True(t, result.PrivateKey.PubKey().IsEqual(priv.PubKey()))
}

func TestAuditCustomPattern(t *testing.T) {
	c := curve.P256()
	priv := testKey(t, c)
	rel := Relation{5, -12345}
	samples := relatedSamples(t, priv, rel)

	strategy := NewSmartStrategy().WithPatternConfig(PatternConfig{
		CustomPatterns: []Pattern{
			{Relation: Relation{7, 7}, Name: "decoy", Priority: 2},
			{Relation: rel, Name: "vendor_step", Priority: 1},
		},
	})
	result, err := NewAuditor(c).WithStrategy(strategy).
		Audit(context.Background(), samples, priv.PubKey())
	require.NoError(t, err)
	assert.Equal(t, "vendor_step", result.Pattern)
	assert.Equal(t, priv.D, result.PrivateKey.D)
}

func TestAuditRangeSearch(t *testing.T) {
	c := curve.Secp256k1()
	priv := testKey(t, c)
	other := sample(t, priv, "unrelated", scalar(c, "unrelated nonce"))
	rel := Relation{-3, 777}
	samples := append([]Sample{other}, relatedSamples(t, priv, rel)...)

	strategy := NewSmartStrategy().
		WithPatternConfig(PatternConfig{}).
		WithRangeConfig(RangeConfig{
			ARange:     [2]int64{-4, -2},
			BRange:     [2]int64{700, 800},
			NumWorkers: 2,
			SkipZeroA:  true,
		})
	result, err := NewAuditor(c).WithStrategy(strategy).
		Audit(context.Background(), samples, priv.PubKey())
	require.NoError(t, err)
	assert.Equal(t, rel, result.Relation)
	assert.Equal(t, [2]int{1, 2}, result.Pair)
	assert.Equal(t, "brute_force_a-3_b777", result.Pattern)
	assert.Equal(t, priv.D, result.PrivateKey.D)
}

func TestAuditNotFound(t *testing.T) {
	c := curve.Secp256k1()
	priv := testKey(t, c)
	samples := []Sample{
		sample(t, priv, "one", scalar(c, "k one")),
		sample(t, priv, "two", scalar(c, "k two")),
	}

	strategy := NewSmartStrategy().
		WithPatternConfig(PatternConfig{}).
		WithRangeConfig(RangeConfig{
			ARange:    [2]int64{0, 1},
			BRange:    [2]int64{-5, 5},
			SkipZeroA: true,
		})
	_, err := NewAuditor(c).WithStrategy(strategy).
		Audit(context.Background(), samples, priv.PubKey())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuditCancelled(t *testing.T) {
	c := curve.Secp256k1()
	priv := testKey(t, c)
	samples := relatedSamples(t, priv, Relation{1, 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAuditor(c).Audit(ctx, samples, priv.PubKey())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuditRejectsBadInput(t *testing.T) {
	c := curve.Secp256k1()
	priv := testKey(t, c)
	samples := relatedSamples(t, priv, Relation{1, 1})
	ctx := context.Background()

	_, err := NewAuditor(c).Audit(ctx, samples[:1], nil)
	assert.ErrorIs(t, err, ErrTooFewSamples)

	_, err = NewAuditor(c).Audit(ctx, []Sample{samples[0], {ID: "empty"}}, nil)
	assert.Error(t, err)

	_, err = NewAuditor(curve.P256()).Audit(ctx, samples, priv.PubKey())
	assert.Error(t, err)
}

func TestRecoverWithRelation(t *testing.T) {
	c := curve.P256()
	priv := testKey(t, c)
	rel := Relation{2, 1}
	samples := relatedSamples(t, priv, rel)
	ctx := context.Background()

	result, err := NewAuditor(c).RecoverWithRelation(ctx, samples, rel, priv.PubKey())
	require.NoError(t, err)
	assert.Equal(t, "known_a2_b1", result.Pattern)
	assert.True(t, result.Verified)
	assert.Equal(t, priv.D, result.PrivateKey.D)

	_, err = NewAuditor(c).RecoverWithRelation(ctx, samples, Relation{2, 2}, priv.PubKey())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommonPatterns(t *testing.T) {
	patterns := CommonPatterns()
	seen := map[Relation]bool{}
	for _, p := range patterns {
		assert.False(t, seen[p.Relation], p.Name)
		seen[p.Relation] = true
		assert.NotZero(t, p.Relation.A, p.Name)
	}
	assert.True(t, seen[Relation{1, 1}])
	assert.True(t, seen[Relation{1, 1024}])
}
