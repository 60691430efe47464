package nonceaudit

import (
	"context"
	"strconv"

	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
)

// Strategy searches a set of samples for a pair whose nonces are affinely
// related.  Search returns nil when nothing is found or ctx is cancelled.
// pub is optional.
type Strategy interface {
	Search(ctx context.Context, c *curve.Curve, samples []Sample, pub *ecdsa.PublicKey) *Result

	// Name returns a human-readable name for this strategy.
	Name() string
}

// Pattern is a specific relation to test before any range search.
type Pattern struct {
	Relation
	Name     string
	Priority int // lower is tested first
}

// RangeConfig configures the range search.
type RangeConfig struct {
	// ARange and BRange are inclusive bounds for A and B.
	ARange [2]int64
	BRange [2]int64

	// MaxPairs limits the number of sample pairs searched.
	MaxPairs int

	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int

	// SkipZeroA skips A = 0, where k2 does not depend on k1.
	SkipZeroA bool
}

// DefaultRangeConfig returns the configuration of the built-in search
// phases.
func DefaultRangeConfig() RangeConfig {
	return RangeConfig{
		ARange:     [2]int64{-100, 100},
		BRange:     [2]int64{-100, 100},
		MaxPairs:   100,
		NumWorkers: 0,
		SkipZeroA:  true,
	}
}

// PatternConfig configures the patterns tried before the range search.
type PatternConfig struct {
	CustomPatterns        []Pattern
	IncludeCommonPatterns bool
}

// DefaultPatternConfig returns a configuration with common patterns enabled.
func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		CustomPatterns:        []Pattern{},
		IncludeCommonPatterns: true,
	}
}

// CommonPatterns returns the relations produced by typical broken nonce
// generators: counters, fixed steps and small multiples.
func CommonPatterns() []Pattern {
	patterns := []Pattern{
		{Relation{1, 0}, "same_nonce", 1},
		{Relation{-1, 0}, "negated_nonce", 1},
	}
	for b := int64(1); b <= 5; b++ {
		patterns = append(patterns,
			Pattern{Relation{1, b}, "counter_+" + strconv.FormatInt(b, 10), 2},
			Pattern{Relation{1, -b}, "counter_-" + strconv.FormatInt(b, 10), 2},
		)
	}
	for _, b := range []int64{8, 10, 16, 32, 64, 100, 128, 256, 512, 1000, 1024, 10000} {
		patterns = append(patterns, Pattern{Relation{1, b}, "step_" + strconv.FormatInt(b, 10), 3})
	}
	patterns = append(patterns,
		Pattern{Relation{2, 0}, "multiply_2", 4},
		Pattern{Relation{2, 1}, "multiply_2_+1", 4},
		Pattern{Relation{3, 0}, "multiply_3", 4},
		Pattern{Relation{4, 0}, "multiply_4", 4},
	)
	return patterns
}
