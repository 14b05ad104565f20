// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/transition"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type keyPair struct {
	PrivateKey *account.PrivateKey `json:"private_key"`
	Account    *account.Account    `json:"account"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	algorithm := account.ED25519
	if c.Bool("secp256k1") {
		algorithm = account.SECP256K1
	}

	key, err := account.NewPrivateKey(algorithm, rand.Reader)
	if nil != err {
		return err
	}

	return printJson(m.w, keyPair{
		PrivateKey: key,
		Account:    key.Account(),
	})
}

func runCreateSurgeClient(c *cli.Context) error {
	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}
	inputs, err := checkPackedList(c.Args())
	if nil != err {
		return err
	}
	result, err := transition.CreateSurgeClient(inputs, key)
	return output(c, checker.CreateSurgeClient, inputs, result, err)
}

func runCastCSCVote(c *cli.Context) error {
	return castVote(c, checker.CastCSCVote, transition.CastCSCVote)
}

func runCastSREPVote(c *cli.Context) error {
	return castVote(c, checker.CastSREPVote, transition.CastSREPVote)
}

type voteConstructor func(record.Packed, *account.PrivateKey, *account.Account) (*transition.Result, error)

func castVote(c *cli.Context, name string, cast voteConstructor) error {
	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}
	slip, err := checkPacked(c.String("slip"))
	if nil != err {
		return err
	}
	candidate, err := checkCandidate(c.String("candidate"))
	if nil != err {
		return err
	}
	result, err := cast(slip, key, candidate)
	return output(c, name, []record.Packed{slip}, result, err)
}

func runCreateSREPClient(c *cli.Context) error {
	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}
	inputs, err := checkPackedList(c.Args())
	if nil != err {
		return err
	}
	result, err := transition.CreateSREPClient(inputs, key)
	return output(c, checker.CreateSREPClient, inputs, result, err)
}

func runSubmitBidProof(c *cli.Context) error {
	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}
	token, err := checkPacked(c.String("token"))
	if nil != err {
		return err
	}
	quantity, err := checkQuantity(c.Uint64("quantity"))
	if nil != err {
		return err
	}
	bidType := record.TypeName(c.String("type"))
	result, err := transition.SubmitBidProof(token, key, bidType, quantity)
	return output(c, checker.SubmitBidProof, []record.Packed{token}, result, err)
}

func runSubmitBid(c *cli.Context) error {
	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}
	proof, err := checkPacked(c.String("proof"))
	if nil != err {
		return err
	}
	quantity, err := checkQuantity(c.Uint64("quantity"))
	if nil != err {
		return err
	}
	result, err := transition.SubmitBid(proof, key, quantity)
	return output(c, checker.SubmitBid, []record.Packed{proof}, result, err)
}

func runAcceptBids(c *cli.Context) error {
	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}
	bids, err := checkPackedList(c.Args())
	if nil != err {
		return err
	}
	result, err := transition.AcceptBids(bids, key)
	return output(c, checker.AcceptBids, bids, result, err)
}

// assemble the transaction, check it locally and write it out in the
// form read by: surged apply TRANSITION FILE
func output(c *cli.Context, name string, inputs []record.Packed, result *transition.Result, err error) error {
	if nil != err {
		return err
	}

	m := c.App.Metadata["config"].(*metadata)

	tx := transition.Assemble(inputs, result)
	if err := checker.Validate(name, tx); nil != err {
		return errors.Wrapf(err, "%s: local check failed", name)
	}

	if m.verbose {
		id, err := tx.ID()
		if nil != err {
			return err
		}
		fmt.Fprintf(m.e, "transition: %s\n", name)
		fmt.Fprintf(m.e, "id: %s\n", id)
		fmt.Fprintf(m.e, "inputs: %d  outputs: %d\n", len(tx.Inputs), len(tx.Outputs))
	}

	fileName := c.String("output")
	if "" == fileName {
		return printJson(m.w, tx)
	}

	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if nil != err {
		return err
	}
	defer f.Close()
	return printJson(f, tx)
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
