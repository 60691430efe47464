package nonceaudit

import (
	"errors"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
)

var (
	// ErrDegenerate is returned when a pair of samples and a relation leave
	// the private key undetermined.
	ErrDegenerate = errors.New("denominator is zero: cannot recover private key")

	// ErrTooFewSamples is returned when fewer than two samples are given.
	ErrTooFewSamples = errors.New("need at least 2 signatures")

	// ErrNotFound is returned when no strategy phase recovers the key.
	ErrNotFound = errors.New("failed to recover private key")
)

// RecoverPrivateKey solves for the private key of two signatures whose nonces
// satisfy k2 = a*k1 + b (mod N):
//
//	d = (a*s2*z1 - s1*z2 + b*s1*s2) / (r2*s1 - a*r1*s2) mod N
//
// a and b must already be reduced modulo N.  The result is only a candidate;
// it is the real key only if the relation actually holds.
func RecoverPrivateKey(c *curve.Curve, s1, s2 Sample, a, b bigint.U256) (bigint.U256, error) {
	num, step, err := solve(c, s1, s2, a)
	if err != nil {
		return bigint.U256{}, err
	}
	fn := c.Order()
	return bigint.ModAdd(num, fn.MulMod(b, step), c.N()), nil
}

// solve returns d0 and step such that the key for offset b is d0 + b*step.
// Range searches walk b with one addition per candidate.
func solve(c *curve.Curve, s1, s2 Sample, a bigint.U256) (d0, step bigint.U256, err error) {
	n := c.N()
	fn := c.Order()
	r1, sig1 := s1.Signature.R, s1.Signature.S
	r2, sig2 := s2.Signature.R, s2.Signature.S
	z1, z2 := s1.digest(c), s2.digest(c)

	// r2*s1 - a*r1*s2
	den := bigint.ModSub(fn.MulMod(r2, sig1), fn.MulMod(a, fn.MulMod(r1, sig2)), n)
	denInv, ok := fn.Inverse(den)
	if !ok {
		return d0, step, ErrDegenerate
	}

	// a*s2*z1 - s1*z2
	num := bigint.ModSub(fn.MulMod(a, fn.MulMod(sig2, z1)), fn.MulMod(sig1, z2), n)
	d0 = fn.MulMod(num, denInv)
	step = fn.MulMod(fn.MulMod(sig1, sig2), denInv)
	return d0, step, nil
}

// targets is the set of public keys a candidate is compared against.
type targets struct {
	keys     []curve.Point
	verified bool
}

// newTargets uses pub when given.  Otherwise the candidate public keys of the
// first sample are recovered and every sample is assumed to share a signer.
func newTargets(c *curve.Curve, samples []Sample, pub *ecdsa.PublicKey) targets {
	if pub != nil {
		return targets{keys: []curve.Point{pub.Point()}, verified: true}
	}
	var t targets
	for code := byte(0); code < 4; code++ {
		q, err := ecdsa.RecoverPublicKey(c, samples[0].Hash, samples[0].Signature, code)
		if err == nil {
			t.keys = append(t.keys, q.Point())
		}
	}
	return t
}

func (t targets) match(p curve.Point) bool {
	for _, q := range t.keys {
		if p.Equal(q) {
			return true
		}
	}
	return false
}

// check reports whether d is a key in t.
func (t targets) check(c *curve.Curve, d bigint.U256) bool {
	if d.IsZero() || d.Ge(c.N()) {
		return false
	}
	return t.match(c.ScalarBaseMult(d))
}

func newResult(c *curve.Curve, d bigint.U256, rel Relation, i, j int, verified bool, pattern string) *Result {
	// d has been checked to lie in [1, N-1].
	priv, _ := ecdsa.NewPrivateKey(c, d)
	return &Result{
		PrivateKey: priv,
		Relation:   rel,
		Pair:       [2]int{i, j},
		Verified:   verified,
		Pattern:    pattern,
	}
}
