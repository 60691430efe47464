package nonceaudit

import (
	"fmt"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
)

// Sample is one observed signature together with the digest it signs.
type Sample struct {
	ID        string
	Hash      []byte
	Signature *ecdsa.Signature
}

// digest returns the digest as an integer reduced modulo N.
func (s Sample) digest(c *curve.Curve) bigint.U256 {
	return bigint.Mod(ecdsa.HashToInt(c, s.Hash), c.N())
}

// Relation is an affine relation between two nonces, k2 = A*k1 + B.
type Relation struct {
	A, B int64
}

func (r Relation) String() string {
	return fmt.Sprintf("k2 = %d*k1 %+d", r.A, r.B)
}

// residues returns A and B reduced modulo n.
func (r Relation) residues(n bigint.U256) (a, b bigint.U256) {
	return residue(r.A, n), residue(r.B, n)
}

func residue(v int64, n bigint.U256) bigint.U256 {
	if v >= 0 {
		return bigint.Mod(bigint.FromUint64[bigint.W256](uint64(v)), n)
	}
	// uint64(-v) is also correct for math.MinInt64.
	abs := bigint.Mod(bigint.FromUint64[bigint.W256](uint64(-v)), n)
	return bigint.ModNeg(abs, n)
}

// Result describes a recovered private key.
type Result struct {
	PrivateKey *ecdsa.PrivateKey
	Relation   Relation
	// Pair holds the indices of the two samples the key was recovered from.
	Pair [2]int
	// Verified is true when the key matches the public key supplied by the
	// caller.  Without one, keys are matched against the keys recovered from
	// the first sample and Verified is false.
	Verified bool
	Pattern  string
}
