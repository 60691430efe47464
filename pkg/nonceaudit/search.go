package nonceaudit

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
)

// SmartStrategy is a multi-phase search.  It checks for repeated nonces
// first, then tries common and custom patterns, and finally searches ranges
// of A and B that widen phase by phase.
type SmartStrategy struct {
	RangeConfig   RangeConfig
	PatternConfig PatternConfig
	logger        *slog.Logger
}

// NewSmartStrategy creates a strategy with default settings.
func NewSmartStrategy() *SmartStrategy {
	return &SmartStrategy{
		RangeConfig:   DefaultRangeConfig(),
		PatternConfig: DefaultPatternConfig(),
		logger:        slog.New(slog.DiscardHandler),
	}
}

// WithRangeConfig sets the range configuration for the strategy.
func (s *SmartStrategy) WithRangeConfig(config RangeConfig) *SmartStrategy {
	s.RangeConfig = config
	return s
}

// WithPatternConfig sets the pattern configuration for the strategy.
func (s *SmartStrategy) WithPatternConfig(config PatternConfig) *SmartStrategy {
	s.PatternConfig = config
	return s
}

// WithLogger sets the logger used for phase progress.
func (s *SmartStrategy) WithLogger(logger *slog.Logger) *SmartStrategy {
	s.logger = logger
	return s
}

// Name returns the name of this strategy.
func (s *SmartStrategy) Name() string {
	return "SmartSearch"
}

type searchRange struct {
	a, b [2]int64
	name string
}

var defaultPhases = []searchRange{
	{[2]int64{1, 1}, [2]int64{-100, 100}, "a=1, small b"},
	{[2]int64{1, 1}, [2]int64{-1000, 1000}, "a=1, medium b"},
	{[2]int64{1, 1}, [2]int64{-10000, 10000}, "a=1, larger b"},
	{[2]int64{2, 4}, [2]int64{-1000, 1000}, "small a, medium b"},
	{[2]int64{-5, -1}, [2]int64{-1000, 1000}, "negative a, medium b"},
	{[2]int64{1, 10}, [2]int64{-50000, 50000}, "wider a, larger b"},
}

// Search implements Strategy.
func (s *SmartStrategy) Search(ctx context.Context, c *curve.Curve, samples []Sample, pub *ecdsa.PublicKey) *Result {
	if len(samples) < 2 {
		return nil
	}
	t := newTargets(c, samples, pub)
	if len(t.keys) == 0 {
		s.logger.Warn("no public key to match candidates against")
		return nil
	}
	s.logger.Info("starting key recovery", "samples", len(samples),
		"curve", c.Name(), "public_key", pub != nil)

	s.logger.Debug("phase 0: checking for repeated nonces")
	if result := s.checkRepeatedNonce(c, samples, t); result != nil {
		s.logger.Info("found repeated nonce", "pair", result.Pair)
		return result
	}

	if s.PatternConfig.IncludeCommonPatterns {
		s.logger.Debug("phase 1: trying common patterns")
		if result := s.tryPatterns(ctx, c, samples, t, CommonPatterns()); result != nil {
			s.logger.Info("found pattern", "pattern", result.Pattern)
			return result
		}
	}

	if len(s.PatternConfig.CustomPatterns) > 0 {
		s.logger.Debug("phase 2: trying custom patterns",
			"count", len(s.PatternConfig.CustomPatterns))
		if result := s.tryPatterns(ctx, c, samples, t, s.PatternConfig.CustomPatterns); result != nil {
			s.logger.Info("found custom pattern", "pattern", result.Pattern)
			return result
		}
	}

	s.logger.Debug("phase 3: starting range search")
	return s.adaptiveRangeSearch(ctx, c, samples, t)
}

// pairs enumerates sample pairs in order, at most limit of them.
func pairs(n, limit int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if limit > 0 && len(out) >= limit {
				return out
			}
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

// checkRepeatedNonce looks for samples sharing R.  Equal R means k2 = k1 or
// k2 = -k1.
func (s *SmartStrategy) checkRepeatedNonce(c *curve.Curve, samples []Sample, t targets) *Result {
	n := c.N()
	for _, p := range pairs(len(samples), 0) {
		s1, s2 := samples[p[0]], samples[p[1]]
		if s1.Signature.R != s2.Signature.R {
			continue
		}
		for _, rel := range []Relation{{1, 0}, {-1, 0}} {
			a, b := rel.residues(n)
			d, err := RecoverPrivateKey(c, s1, s2, a, b)
			if err != nil || !t.check(c, d) {
				continue
			}
			return newResult(c, d, rel, p[0], p[1], t.verified, "same_nonce_reuse")
		}
	}
	return nil
}

// tryPatterns tests each pattern, in priority order, against every pair.
func (s *SmartStrategy) tryPatterns(ctx context.Context, c *curve.Curve, samples []Sample, t targets, patterns []Pattern) *Result {
	patterns = append([]Pattern(nil), patterns...)
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Priority < patterns[j].Priority
	})

	n := c.N()
	for _, pattern := range patterns {
		for _, p := range pairs(len(samples), s.RangeConfig.MaxPairs) {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			a, b := pattern.residues(n)
			d, err := RecoverPrivateKey(c, samples[p[0]], samples[p[1]], a, b)
			if err != nil || !t.check(c, d) {
				continue
			}
			return newResult(c, d, pattern.Relation, p[0], p[1], t.verified, pattern.Name)
		}
	}
	return nil
}

func (s *SmartStrategy) adaptiveRangeSearch(ctx context.Context, c *curve.Curve, samples []Sample, t targets) *Result {
	phases := defaultPhases
	def := DefaultRangeConfig()
	if s.RangeConfig.ARange != def.ARange || s.RangeConfig.BRange != def.BRange {
		phases = []searchRange{{s.RangeConfig.ARange, s.RangeConfig.BRange, "custom range"}}
	}

	for _, r := range phases {
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Debug("range search", "phase", r.name, "a", r.a, "b", r.b)
		if result := s.rangeSearch(ctx, c, samples, t, r); result != nil {
			s.logger.Info("found key", "phase", r.name, "relation", result.Relation)
			return result
		}
	}
	s.logger.Info("all phases completed, key not found")
	return nil
}

type rangeWork struct {
	i, j int
	a    int64
}

// rangeSearch tests every (A, B) in r over the configured pairs.  Work is
// split by pair and A; each unit walks B with one point addition per value.
func (s *SmartStrategy) rangeSearch(ctx context.Context, c *curve.Curve, samples []Sample, t targets, r searchRange) *Result {
	numWorkers := s.RangeConfig.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var tested atomic.Int64
	resultChan := make(chan *Result, 1)
	workChan := make(chan rangeWork, numWorkers)

	go func() {
		defer close(workChan)
		for _, p := range pairs(len(samples), s.RangeConfig.MaxPairs) {
			for a := r.a[0]; a <= r.a[1]; a++ {
				if s.RangeConfig.SkipZeroA && a == 0 {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case workChan <- rangeWork{p[0], p[1], a}:
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workChan {
				if result := s.walk(ctx, c, samples, t, work, r.b, &tested); result != nil {
					select {
					case resultChan <- result:
					default:
					}
					cancel()
					return
				}
			}
		}()
	}
	wg.Wait()

	s.logger.Debug("range search finished", "phase", r.name, "tested", tested.Load())
	select {
	case result := <-resultChan:
		return result
	default:
		return nil
	}
}

// walk tests B over bRange for one pair and one A.  The key for B is
// d0 + B*step, so consecutive candidates differ by step and their public keys
// by step*G.
func (s *SmartStrategy) walk(ctx context.Context, c *curve.Curve, samples []Sample, t targets, work rangeWork, bRange [2]int64, tested *atomic.Int64) *Result {
	if ctx.Err() != nil {
		return nil
	}
	n := c.N()
	d0, step, err := solve(c, samples[work.i], samples[work.j], residue(work.a, n))
	if err != nil {
		return nil
	}

	fn := c.Order()
	d := bigint.ModAdd(d0, fn.MulMod(residue(bRange[0], n), step), n)
	p := c.ScalarBaseMult(d)
	delta := c.ScalarBaseMult(step)
	for b := bRange[0]; b <= bRange[1]; b++ {
		if combs := tested.Add(1); combs%10000 == 0 {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Debug("range search progress", "tested", combs)
		}
		if !d.IsZero() && t.match(p) {
			rel := Relation{A: work.a, B: b}
			pattern := fmt.Sprintf("brute_force_a%d_b%d", work.a, b)
			return newResult(c, d, rel, work.i, work.j, t.verified, pattern)
		}
		d = bigint.ModAdd(d, step, n)
		p = c.Add(p, delta)
	}
	return nil
}
