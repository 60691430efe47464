// Package nonceaudit recovers ECDSA private keys from signatures whose nonces
// are affinely related, k2 = a*k1 + b.  It is meant for auditing signers: a
// result means the signer's nonce generator is broken and the key is exposed.
//
// Given two signatures (r1, s1) over z1 and (r2, s2) over z2 by the same key
// d, the relation gives
//
//	d = (a*s2*z1 - s1*z2 + b*s1*s2) / (r2*s1 - a*r1*s2) mod n
//
// Every (a, b) yields some candidate, so each one is confirmed by comparing
// d*G against the public key.  When no public key is known, the keys
// recovered from the first signature are used instead.
//
// # Quick Start
//
//	auditor := nonceaudit.NewAuditor(curve.Secp256k1())
//	result, err := auditor.Audit(ctx, samples, pub)
//	if errors.Is(err, nonceaudit.ErrNotFound) {
//	    // no related nonces found
//	}
//
// # Customization
//
//	strategy := nonceaudit.NewSmartStrategy().
//	    WithRangeConfig(nonceaudit.RangeConfig{
//	        ARange:     [2]int64{1, 10},
//	        BRange:     [2]int64{-50000, 50000},
//	        MaxPairs:   100,
//	        NumWorkers: 16,
//	    }).
//	    WithPatternConfig(nonceaudit.PatternConfig{
//	        CustomPatterns: []nonceaudit.Pattern{
//	            {Relation: nonceaudit.Relation{A: 1, B: 12345}, Name: "custom_step"},
//	        },
//	        IncludeCommonPatterns: true,
//	    })
//
//	auditor := nonceaudit.NewAuditor(c).WithStrategy(strategy)
//
// This technique is described in "Breaking ECDSA with Two Affinely Related
// Nonces" (arXiv:2504.13737).
package nonceaudit
