package nonceaudit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
)

// Auditor checks a signer's signatures for related nonces.
type Auditor struct {
	curve    *curve.Curve
	strategy Strategy
	logger   *slog.Logger
}

// NewAuditor creates an auditor for signatures on c using SmartStrategy.
func NewAuditor(c *curve.Curve) *Auditor {
	return &Auditor{
		curve:    c,
		strategy: NewSmartStrategy(),
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithStrategy sets a custom search strategy.
func (au *Auditor) WithStrategy(strategy Strategy) *Auditor {
	au.strategy = strategy
	return au
}

// WithLogger sets the logger, also for a SmartStrategy.
func (au *Auditor) WithLogger(logger *slog.Logger) *Auditor {
	au.logger = logger
	if s, ok := au.strategy.(*SmartStrategy); ok {
		s.WithLogger(logger)
	}
	return au
}

func (au *Auditor) check(samples []Sample, pub *ecdsa.PublicKey) error {
	if len(samples) < 2 {
		return fmt.Errorf("%w, got %d", ErrTooFewSamples, len(samples))
	}
	for i, s := range samples {
		if s.Signature == nil {
			return fmt.Errorf("sample %d has no signature", i)
		}
		if s.Signature.R.IsZero() || s.Signature.S.IsZero() {
			return fmt.Errorf("sample %d has a zero signature component", i)
		}
	}
	if pub != nil {
		if pub.Curve != au.curve {
			return fmt.Errorf("public key is on %s, auditor is on %s",
				pub.Curve.Name(), au.curve.Name())
		}
		if err := pub.Validate(); err != nil {
			return fmt.Errorf("failed to parse public key: %w", err)
		}
	}
	return nil
}

// Audit searches samples for a pair of signatures with affinely related
// nonces and returns the private key it exposes.  pub is optional; when
// given, a candidate key must match it.
func (au *Auditor) Audit(ctx context.Context, samples []Sample, pub *ecdsa.PublicKey) (*Result, error) {
	if err := au.check(samples, pub); err != nil {
		return nil, err
	}
	au.logger.Debug("auditing signatures", "strategy", au.strategy.Name(),
		"samples", len(samples))

	result := au.strategy.Search(ctx, au.curve, samples, pub)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNotFound
	}
	au.logger.Warn("private key exposed by related nonces",
		"pair", result.Pair, "relation", result.Relation, "pattern", result.Pattern)
	return result, nil
}

// RecoverWithRelation recovers the key when the relation between the nonces
// is already known, trying every pair in order.
func (au *Auditor) RecoverWithRelation(ctx context.Context, samples []Sample, rel Relation, pub *ecdsa.PublicKey) (*Result, error) {
	if err := au.check(samples, pub); err != nil {
		return nil, err
	}
	c := au.curve
	t := newTargets(c, samples, pub)
	a, b := rel.residues(c.N())
	for _, p := range pairs(len(samples), 0) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := RecoverPrivateKey(c, samples[p[0]], samples[p[1]], a, b)
		if err != nil || !t.check(c, d) {
			continue
		}
		pattern := fmt.Sprintf("known_a%d_b%d", rel.A, rel.B)
		return newResult(c, d, rel, p[0], p[1], t.verified, pattern), nil
	}
	return nil, fmt.Errorf("%w with known relationship %s", ErrNotFound, rel)
}
