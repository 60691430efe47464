package parser

import (
	"fmt"
	"strings"

	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
	"github.com/mahdiidarabi/fixedec/pkg/nonceaudit"
)

// ParsePublicKey reads a public key written as a did:key, a multibase string
// or SEC1 hex.  did:key and multibase keys name their own curve, which must
// be c.
func ParsePublicKey(c *curve.Curve, s string) (*ecdsa.PublicKey, error) {
	s = strings.TrimSpace(s)
	var (
		pub *ecdsa.PublicKey
		err error
	)
	switch {
	case strings.HasPrefix(s, "did:key:"):
		pub, err = ecdsa.ParseDIDKey(s)
	case strings.HasPrefix(s, "z"):
		pub, err = ecdsa.ParsePublicMultibase(s)
	default:
		var b []byte
		if b, err = hexDecode(s); err != nil {
			return nil, fmt.Errorf("failed to decode public key: %w", err)
		}
		pub, err = ecdsa.ParsePublicKey(c, b)
	}
	if err != nil {
		return nil, err
	}
	if pub.Curve != c {
		return nil, fmt.Errorf("public key is on %s, want %s", pub.Curve.Name(), c.Name())
	}
	return pub, nil
}

// Jobs converts records to verification jobs on c.  Records without a public
// key use fallback, which may be nil only if every record carries a key.
func Jobs(c *curve.Curve, records []Record, fallback *ecdsa.PublicKey) ([]ecdsa.Job, error) {
	cache := make(map[string]*ecdsa.PublicKey)
	jobs := make([]ecdsa.Job, 0, len(records))
	for i, rec := range records {
		pub := fallback
		if rec.PublicKey != "" {
			pub = cache[rec.PublicKey]
			if pub == nil {
				var err error
				if pub, err = ParsePublicKey(c, rec.PublicKey); err != nil {
					return nil, fmt.Errorf("record %d: %w", i, err)
				}
				cache[rec.PublicKey] = pub
			}
		}
		if pub == nil {
			return nil, fmt.Errorf("record %d: no public key", i)
		}
		id := rec.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i)
		}
		jobs = append(jobs, ecdsa.Job{
			ID:        id,
			PublicKey: pub,
			Hash:      rec.Hash,
			Signature: rec.Signature,
		})
	}
	return jobs, nil
}

// Samples converts records to audit samples.
func Samples(records []Record) []nonceaudit.Sample {
	samples := make([]nonceaudit.Sample, len(records))
	for i, rec := range records {
		samples[i] = nonceaudit.Sample{ID: rec.ID, Hash: rec.Hash, Signature: rec.Signature}
	}
	return samples
}
