// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package checker

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/quorum"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/signature"
)

// create_surge_client:
//   inputs:     InitToken | CSCVoteToken...
//   parameters: pub, signature
//   outputs:    SurgeClient, VoteSlipToken, EBToken
func createSurgeClient(tx *Transaction) error {

	err := arity{inputs: atLeast(1), parameters: 2, outputs: 3}.check(tx)
	if nil != err {
		return err
	}

	o, err := unpack(tx.Outputs[0], "client", record.SurgeClientType)
	if nil != err {
		return err
	}
	client := o.(*record.SurgeClient)

	o, err = unpack(tx.Outputs[1], "vote slip", record.VoteSlipTokenType)
	if nil != err {
		return err
	}
	slip := o.(*record.VoteSlipToken)

	o, err = unpack(tx.Outputs[2], "eb token", record.EBTokenType)
	if nil != err {
		return err
	}
	ebToken := o.(*record.EBToken)

	first, err := tx.Inputs[0].Unpack()
	if nil != err {
		return errors.Wrap(err, "input[0]")
	}
	bootstrap := false
	switch first.Type() {
	case record.InitTokenType:
		if 1 != len(tx.Inputs) {
			return errors.Wrapf(fault.ErrInvalidInputTokenTypes, "init token with %d inputs", len(tx.Inputs))
		}
		bootstrap = true
	case record.CSCVoteTokenType:
	default:
		return errors.Wrapf(fault.ErrInvalidInputTokenTypes, "input[0]: %q", first.Type())
	}

	err = firstError(
		equalAccountParameter("client pub", client.Pub, tx.Parameters[0]),
		equalAccount("vote slip pub", client.Pub, slip.Pub),
		equalAccount("eb token pub", client.Pub, ebToken.Pub),
		equalLocation("vote slip", client.Location, slip.Location),
		equalLocation("input[0]", client.Location, first.GetLocation()),
		equalLocation("eb token", client.Location, ebToken.Location),
	)
	if nil != err {
		return err
	}

	if err := signature.Validate(account.Signature(tx.Parameters[1]), client.Pub); nil != err {
		return err
	}

	if bootstrap {
		return nil
	}
	return checkVotes(tx.Inputs, record.CSCVoteTokenType, client.Pub, client.Location)
}

// create_srep_client:
//   inputs:     SREPVoteToken...
//   parameters: pub, signature
//   outputs:    SREPClient, VoteSlipToken
func createSREPClient(tx *Transaction) error {

	err := arity{inputs: atLeast(1), parameters: 2, outputs: 2}.check(tx)
	if nil != err {
		return err
	}

	o, err := unpack(tx.Outputs[0], "client", record.SREPClientType)
	if nil != err {
		return err
	}
	client := o.(*record.SREPClient)

	o, err = unpack(tx.Outputs[1], "vote slip", record.VoteSlipTokenType)
	if nil != err {
		return err
	}
	slip := o.(*record.VoteSlipToken)

	first, err := unpack(tx.Inputs[0], "input[0]", record.SREPVoteTokenType)
	if nil != err {
		return err
	}

	err = firstError(
		equalAccountParameter("client pub", client.Pub, tx.Parameters[0]),
		equalAccount("vote slip pub", client.Pub, slip.Pub),
		equalLocation("vote slip", client.Location, slip.Location),
		equalLocation("input[0]", client.Location, first.GetLocation()),
	)
	if nil != err {
		return err
	}

	if err := signature.Validate(account.Signature(tx.Parameters[1]), client.Pub); nil != err {
		return err
	}

	return checkVotes(tx.Inputs, record.SREPVoteTokenType, client.Pub, client.Location)
}

// every input must be a vote of the given type for the candidate at
// the location, and the votes must come from enough distinct voters
func checkVotes(inputs []record.Packed, voteType record.TypeName, candidate *account.Account, location uint64) error {

	votes := make([]record.Vote, 0, len(inputs))
	for i, packed := range inputs {
		position := "input[" + strconv.Itoa(i) + "]"
		o, err := unpack(packed, position, voteType)
		if nil != err {
			return err
		}
		vote := o.(record.Vote)
		err = firstError(
			equalAccount(position+" granted to", candidate, vote.Candidate()),
			equalLocation(position, location, vote.GetLocation()),
		)
		if nil != err {
			return err
		}
		votes = append(votes, vote)
	}

	count := quorum.CountDistinctVoters(votes)
	if !quorum.MeetsThreshold(count, quorum.RequiredVotes) {
		return errors.Wrapf(fault.ErrNotEnoughVoters, "voters: %d  required: %d", count, quorum.RequiredVotes)
	}
	return nil
}
