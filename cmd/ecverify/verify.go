package main

import (
	"fmt"
	"log/slog"

	"github.com/mahdiidarabi/fixedec/internal/parser"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
	"github.com/urfave/cli/v2"
)

var cmdVerify = &cli.Command{
	Name:  "verify",
	Usage: "check one signature against a public key",
	Flags: append([]cli.Flag{
		publicKeyFlag,
		&cli.StringFlag{
			Name:     "signature",
			Usage:    "signature in hex, DER or 64 byte R|S",
			Required: true,
		},
	}, digestFlags...),
	Action: runVerify,
}

func runVerify(cctx *cli.Context) error {
	c, err := curveFlag(cctx)
	if err != nil {
		return err
	}
	pub, err := publicKeyFlagValue(cctx, c)
	if err != nil {
		return err
	}
	if pub == nil {
		return fmt.Errorf("need --public-key")
	}
	hash, err := digestFlag(cctx)
	if err != nil {
		return err
	}
	sig, err := parser.ParseSignature(cctx.String("signature"))
	if err != nil {
		return err
	}

	if err := ecdsa.Verify(pub, hash, sig); err != nil {
		return cli.Exit(fmt.Sprintf("invalid: %v", err), 1)
	}
	fmt.Fprintln(cctx.App.Writer, "valid")
	return nil
}

var cmdBatch = &cli.Command{
	Name:      "batch",
	Usage:     "verify every signature in a JSON or CSV file",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "public-key",
			Usage: "public key for records without a public_key field",
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "number of parallel workers (0 = auto-detect based on CPU cores)",
			EnvVars: []string{"ECVERIFY_WORKERS"},
		},
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "signatures handed to a worker at a time",
			Value: ecdsa.DefaultBatchConfig().ChunkSize,
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "only print the summary",
		},
	},
	Action: runBatch,
}

func runBatch(cctx *cli.Context) error {
	path := cctx.Args().First()
	if path == "" {
		return fmt.Errorf("need to provide a signature file as an argument")
	}
	c, err := curveFlag(cctx)
	if err != nil {
		return err
	}
	fallback, err := publicKeyFlagValue(cctx, c)
	if err != nil {
		return err
	}
	records, err := parser.ParseFile(path, parser.Fields{})
	if err != nil {
		return err
	}
	jobs, err := parser.Jobs(c, records, fallback)
	if err != nil {
		return err
	}

	verifier := ecdsa.NewBatchVerifier().
		WithLogger(slog.Default()).
		WithConfig(ecdsa.BatchConfig{
			Workers:   cctx.Int("workers"),
			ChunkSize: cctx.Int("chunk-size"),
		})
	results, err := verifier.Verify(cctx.Context, jobs)
	if err != nil {
		return err
	}

	invalid := 0
	for _, res := range results {
		if !res.Valid() {
			invalid++
		}
		if cctx.Bool("quiet") {
			continue
		}
		if res.Valid() {
			fmt.Fprintf(cctx.App.Writer, "%s\tvalid\n", res.ID)
		} else {
			fmt.Fprintf(cctx.App.Writer, "%s\tinvalid\t%v\n", res.ID, res.Err)
		}
	}
	fmt.Fprintf(cctx.App.Writer, "%d of %d signatures valid\n", len(results)-invalid, len(results))
	if invalid > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
