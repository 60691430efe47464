package main

import (
	"github.com/urfave/cli/v2"
)

func main() {
	newApp().RunAndExitOnError()
}

func newApp() *cli.App {
	app := &cli.App{
		Name:  "ecverify",
		Usage: "verify, produce and audit ECDSA signatures on secp256k1 and P-256",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "curve",
				Usage:   "curve name (secp256k1 or p256)",
				Value:   "secp256k1",
				EnvVars: []string{"ECVERIFY_CURVE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "warn",
				EnvVars: []string{"ECVERIFY_LOG_LEVEL", "LOG_LEVEL"},
			},
		},
		Before: func(cctx *cli.Context) error {
			configLogger(cctx, cctx.App.ErrWriter)
			return nil
		},
	}
	app.Commands = []*cli.Command{
		cmdVerify,
		cmdBatch,
		cmdPubkey,
		cmdSign,
		cmdRecover,
		cmdAudit,
	}
	return app
}
