package main

import (
	"encoding/hex"
	"fmt"

	"github.com/mahdiidarabi/fixedec/internal/parser"
	"github.com/mahdiidarabi/fixedec/pkg/bigint"
	"github.com/mahdiidarabi/fixedec/pkg/ecdsa"
	"github.com/urfave/cli/v2"
)

var cmdPubkey = &cli.Command{
	Name:   "pubkey",
	Usage:  "derive and print the encodings of a public key",
	Flags:  []cli.Flag{privateKeyFlag},
	Action: runPubkey,
}

func runPubkey(cctx *cli.Context) error {
	c, err := curveFlag(cctx)
	if err != nil {
		return err
	}
	priv, err := privateKeyFlagValue(cctx, c)
	if err != nil {
		return err
	}
	printPublicKey(cctx, priv.PubKey())
	return nil
}

func printPublicKey(cctx *cli.Context, pub *ecdsa.PublicKey) {
	w := cctx.App.Writer
	fmt.Fprintf(w, "Curve: %s\n", pub.Curve.Name())
	fmt.Fprintf(w, "Compressed: %x\n", pub.SerializeCompressed())
	fmt.Fprintf(w, "Uncompressed: %x\n", pub.SerializeUncompressed())
	if mb, err := pub.Multibase(); err == nil {
		fmt.Fprintf(w, "Multibase: %s\n", mb)
	}
	if did, err := pub.DIDKey(); err == nil {
		fmt.Fprintf(w, "DID Key: %s\n", did)
	}
}

var cmdSign = &cli.Command{
	Name:  "sign",
	Usage: "sign a digest, with RFC 6979 nonces on secp256k1 or a given nonce",
	Flags: append([]cli.Flag{
		privateKeyFlag,
		&cli.StringFlag{
			Name:  "nonce",
			Usage: "nonce in hex; required on curves without deterministic signing",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "print the signature as 64 byte R|S instead of DER",
		},
	}, digestFlags...),
	Action: runSign,
}

func runSign(cctx *cli.Context) error {
	c, err := curveFlag(cctx)
	if err != nil {
		return err
	}
	priv, err := privateKeyFlagValue(cctx, c)
	if err != nil {
		return err
	}
	hash, err := digestFlag(cctx)
	if err != nil {
		return err
	}

	var sig *ecdsa.Signature
	if nonce := cctx.String("nonce"); nonce != "" {
		k, err := bigint.FromHex[bigint.W256](nonce)
		if err != nil {
			return fmt.Errorf("failed to parse nonce: %w", err)
		}
		sig, err = ecdsa.Sign(priv, hash, k)
		if err != nil {
			return err
		}
	} else {
		sig, err = ecdsa.SignDeterministic(priv, hash)
		if err != nil {
			return err
		}
	}

	if cctx.Bool("compact") {
		fmt.Fprintln(cctx.App.Writer, hex.EncodeToString(sig.MarshalCompact()))
	} else {
		fmt.Fprintln(cctx.App.Writer, hex.EncodeToString(sig.MarshalDER()))
	}
	return nil
}

var cmdRecover = &cli.Command{
	Name:  "recover",
	Usage: "recover the public key that produced a signature",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "signature",
			Usage:    "signature in hex, DER or 64 byte R|S",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "code",
			Usage: "recovery code (0-3); all codes are tried when unset",
			Value: -1,
		},
	}, digestFlags...),
	Action: runRecover,
}

func runRecover(cctx *cli.Context) error {
	c, err := curveFlag(cctx)
	if err != nil {
		return err
	}
	hash, err := digestFlag(cctx)
	if err != nil {
		return err
	}
	sig, err := parser.ParseSignature(cctx.String("signature"))
	if err != nil {
		return err
	}

	codes := []byte{0, 1, 2, 3}
	if code := cctx.Int("code"); code >= 0 {
		codes = []byte{byte(code)}
	}
	found := false
	for _, code := range codes {
		pub, err := ecdsa.RecoverPublicKey(c, hash, sig, code)
		if err != nil {
			if len(codes) == 1 {
				return err
			}
			continue
		}
		found = true
		fmt.Fprintf(cctx.App.Writer, "Code: %d\n", code)
		printPublicKey(cctx, pub)
	}
	if !found {
		return fmt.Errorf("no public key recovered on %s", c.Name())
	}
	return nil
}
