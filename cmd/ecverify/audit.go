package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mahdiidarabi/fixedec/internal/parser"
	"github.com/mahdiidarabi/fixedec/pkg/nonceaudit"
	"github.com/urfave/cli/v2"
)

var cmdAudit = &cli.Command{
	Name:      "audit",
	Usage:     "search a signer's signatures for affinely related nonces (k2 = a*k1 + b); exits with status 2 when a key is recovered",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "public-key",
			Usage: "signer public key; candidates are matched against it",
		},
		&cli.StringFlag{
			Name:  "known",
			Usage: "known relationship as a,b; skips the search",
		},
		&cli.StringFlag{
			Name:  "a-range",
			Usage: "range for a values in the range search (format: min,max)",
		},
		&cli.StringFlag{
			Name:  "b-range",
			Usage: "range for b values in the range search (format: min,max)",
		},
		&cli.IntFlag{
			Name:  "max-pairs",
			Usage: "maximum signature pairs to test",
			Value: nonceaudit.DefaultRangeConfig().MaxPairs,
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "number of parallel workers (0 = auto-detect based on CPU cores)",
			EnvVars: []string{"ECVERIFY_WORKERS"},
		},
		&cli.BoolFlag{
			Name:  "skip-common-patterns",
			Usage: "go straight to the range search",
		},
	},
	Action: runAudit,
}

func runAudit(cctx *cli.Context) error {
	path := cctx.Args().First()
	if path == "" {
		return fmt.Errorf("need to provide a signature file as an argument")
	}
	c, err := curveFlag(cctx)
	if err != nil {
		return err
	}
	pub, err := publicKeyFlagValue(cctx, c)
	if err != nil {
		return err
	}
	records, err := parser.ParseFile(path, parser.Fields{})
	if err != nil {
		return err
	}
	samples := parser.Samples(records)
	auditor := nonceaudit.NewAuditor(c).WithLogger(slog.Default())

	var result *nonceaudit.Result
	if known := cctx.String("known"); known != "" {
		a, b, err := parseRange(known)
		if err != nil {
			return fmt.Errorf("failed to parse --known: %w", err)
		}
		result, err = auditor.RecoverWithRelation(cctx.Context, samples, nonceaudit.Relation{A: a, B: b}, pub)
		if err != nil {
			return err
		}
	} else {
		strategy, err := strategyFlags(cctx)
		if err != nil {
			return err
		}
		result, err = auditor.WithStrategy(strategy).WithLogger(slog.Default()).
			Audit(cctx.Context, samples, pub)
		if errors.Is(err, nonceaudit.ErrNotFound) {
			fmt.Fprintln(cctx.App.Writer, "no related nonces found")
			return nil
		}
		if err != nil {
			return err
		}
	}

	w := cctx.App.Writer
	fmt.Fprintf(w, "Recovered private key from signatures %d and %d\n", result.Pair[0], result.Pair[1])
	fmt.Fprintf(w, "  Private key: %s\n", result.PrivateKey.D.Hex())
	fmt.Fprintf(w, "  Relationship: %s\n", result.Relation)
	fmt.Fprintf(w, "  Pattern: %s\n", result.Pattern)
	fmt.Fprintf(w, "  Verified against public key: %t\n", result.Verified)
	return cli.Exit("", 2)
}

func strategyFlags(cctx *cli.Context) (*nonceaudit.SmartStrategy, error) {
	config := nonceaudit.DefaultRangeConfig()
	config.MaxPairs = cctx.Int("max-pairs")
	config.NumWorkers = cctx.Int("workers")
	for _, r := range []struct {
		flag string
		dst  *[2]int64
	}{
		{"a-range", &config.ARange},
		{"b-range", &config.BRange},
	} {
		if s := cctx.String(r.flag); s != "" {
			lo, hi, err := parseRange(s)
			if err != nil {
				return nil, fmt.Errorf("failed to parse --%s: %w", r.flag, err)
			}
			*r.dst = [2]int64{lo, hi}
		}
	}
	return nonceaudit.NewSmartStrategy().
		WithRangeConfig(config).
		WithPatternConfig(nonceaudit.PatternConfig{
			IncludeCommonPatterns: !cctx.Bool("skip-common-patterns"),
		}), nil
}

func parseRange(s string) (int64, int64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range format: %s", s)
	}

	lo, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, err
	}

	hi, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return lo, hi, nil
}
