// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); nil != err {
		fmt.Fprintf(os.Stderr, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// the command line application writing results to w and messages to e
func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "surge-cli"
	app.Usage = "create keys and signed surge transactions"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e
	app.Metadata = make(map[string]interface{})

	keyFlag := cli.StringFlag{
		Name:   "key, k",
		Value:  "",
		Usage:  "*private `KEY` in base58",
		EnvVar: "SURGE_KEY",
	}
	outputFlag := cli.StringFlag{
		Name:  "output, o",
		Value: "",
		Usage: " write the transaction to `FILE` instead of stdout",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new private key",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "secp256k1, s",
					Usage: " use secp256k1 instead of ed25519",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "create-surge-client",
			Usage:     "join using one bootstrap token or votes for the key",
			ArgsUsage: "PACKED...\n   (* = required)",
			Flags:     []cli.Flag{keyFlag, outputFlag},
			Action:    runCreateSurgeClient,
		},
		{
			Name:      "cast-csc-vote",
			Usage:     "vote to admit a candidate",
			ArgsUsage: "\n   (* = required)",
			Flags:     voteFlags(keyFlag, outputFlag),
			Action:    runCastCSCVote,
		},
		{
			Name:      "cast-srep-vote",
			Usage:     "vote to elevate a client to shard representative",
			ArgsUsage: "\n   (* = required)",
			Flags:     voteFlags(keyFlag, outputFlag),
			Action:    runCastSREPVote,
		},
		{
			Name:      "create-srep-client",
			Usage:     "become shard representative using votes for the key",
			ArgsUsage: "PACKED...\n   (* = required)",
			Flags:     []cli.Flag{keyFlag, outputFlag},
			Action:    runCreateSREPClient,
		},
		{
			Name:      "submit-bid-proof",
			Usage:     "commit to a bid quantity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				keyFlag,
				outputFlag,
				cli.StringFlag{
					Name:  "token, t",
					Value: "",
					Usage: "*packed eb `TOKEN`",
				},
				cli.StringFlag{
					Name:  "type, b",
					Value: "",
					Usage: "*bid `TYPE` [EBBuy|EBSell]",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: "*bid `QUANTITY`",
				},
			},
			Action: runSubmitBidProof,
		},
		{
			Name:      "submit-bid",
			Usage:     "reveal the quantity of a bid proof",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				keyFlag,
				outputFlag,
				cli.StringFlag{
					Name:  "proof, p",
					Value: "",
					Usage: "*packed bid `PROOF`",
				},
				cli.Uint64Flag{
					Name:  "quantity, q",
					Value: 0,
					Usage: "*committed `QUANTITY`",
				},
			},
			Action: runSubmitBid,
		},
		{
			Name:      "accept-bids",
			Usage:     "settle revealed bids as shard representative",
			ArgsUsage: "PACKED...\n   (* = required)",
			Flags:     []cli.Flag{keyFlag, outputFlag},
			Action:    runAcceptBids,
		},
		{
			Name:  "version",
			Usage: "display surge-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}

func voteFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  "slip, s",
			Value: "",
			Usage: "*packed vote `SLIP`",
		},
		cli.StringFlag{
			Name:  "candidate, c",
			Value: "",
			Usage: "*candidate public `KEY` in base58",
		},
	)
}
