/*
Package ecdsa implements the Elliptic Curve Digital Signature Algorithm over
the curves of package curve, with all arithmetic done on fixed-width
integers.

The core operation is verification.  Given a public key Q, a digest and a
signature (R, S):

 1. R and S must be in [1, N-1], otherwise the signature is malformed.
 2. w = S^-1 mod N
 3. u1 = e*w mod N and u2 = R*w mod N, where e is the digest as an integer
 4. P = u1*G + u2*Q
 5. The signature is valid iff P is finite and P.x mod N == R.

Failures are returned as errors rather than panics.  Each error matches
ErrInvalidFormat or ErrVerificationFailed with errors.Is, and also the
specific kind, for example ErrSigSTooBig:

	err := ecdsa.Verify(pub, digest[:], sig)
	switch {
	case err == nil:
		// valid
	case errors.Is(err, ecdsa.ErrInvalidFormat):
		// reject without further work
	case errors.Is(err, ecdsa.ErrVerificationFailed):
		// well formed, but not signed by pub
	}

# Signing

Sign takes the nonce from the caller; this package never generates
randomness.  SignDeterministic derives the nonce per RFC 6979 using the decred
secp256k1 package and is limited to secp256k1.

# Encodings

Signatures can be encoded as ASN.1 DER (MarshalDER, ParseDERSignature) or as
64 bytes of [R | S] (MarshalCompact, ParseCompactSignature).  Public keys use
SEC1 and, for the two named curves, multibase and did:key strings.

# Batches

BatchVerifier spreads independent signatures over a bounded number of
goroutines.
*/
package ecdsa
