package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mahdiidarabi/fixedec/internal/parser"
	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/curve"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
	"github.com/urfave/cli/v2"
)

var digestFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "message",
		Usage: "message to hash with SHA-256",
	},
	&cli.StringFlag{
		Name:  "hash",
		Usage: "message digest in hex, used as is",
	},
}

var publicKeyFlag = &cli.StringFlag{
	Name:    "public-key",
	Usage:   "public key as SEC1 hex, multibase or did:key",
	EnvVars: []string{"ECVERIFY_PUBLIC_KEY"},
}

var privateKeyFlag = &cli.StringFlag{
	Name:     "private-key",
	Usage:    "private key scalar in hex",
	Required: true,
	EnvVars:  []string{"ECVERIFY_PRIVATE_KEY"},
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	if writer == nil {
		writer = os.Stderr
	}
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func curveFlag(cctx *cli.Context) (*curve.Curve, error) {
	return curve.ByName(cctx.String("curve"))
}

// digestFlag returns the digest given by --hash, or the SHA-256 of
// --message.
func digestFlag(cctx *cli.Context) ([]byte, error) {
	if h := cctx.String("hash"); h != "" {
		b, err := hex.DecodeString(strings.TrimPrefix(h, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse hash: %w", err)
		}
		return b, nil
	}
	if !cctx.IsSet("message") {
		return nil, fmt.Errorf("need --message or --hash")
	}
	digest := sha256.Sum256([]byte(cctx.String("message")))
	return digest[:], nil
}

func privateKeyFlagValue(cctx *cli.Context, c *curve.Curve) (*ecdsa.PrivateKey, error) {
	d, err := bigint.FromHex[bigint.W256](cctx.String("private-key"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return ecdsa.NewPrivateKey(c, d)
}

// publicKeyFlagValue returns nil when --public-key is not set.
func publicKeyFlagValue(cctx *cli.Context, c *curve.Curve) (*ecdsa.PublicKey, error) {
	s := cctx.String("public-key")
	if s == "" {
		return nil, nil
	}
	pub, err := parser.ParsePublicKey(c, s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return pub, nil
}
