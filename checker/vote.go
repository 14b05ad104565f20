// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package checker

import (
	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/signature"
)

// cast_csc_vote:
//   inputs:     VoteSlipToken
//   parameters: signature
//   outputs:    CSCVoteToken, VoteSlipToken
func castCSCVote(tx *Transaction) error {
	return castVote(tx, record.CSCVoteTokenType)
}

// cast_srep_vote:
//   inputs:     VoteSlipToken
//   parameters: signature
//   outputs:    SREPVoteToken, VoteSlipToken
func castSREPVote(tx *Transaction) error {
	return castVote(tx, record.SREPVoteTokenType)
}

// the slip is consumed and reissued unchanged next to a new vote
// granted by the slip's owner
func castVote(tx *Transaction, voteType record.TypeName) error {

	err := arity{inputs: exactly(1), parameters: 1, outputs: 2}.check(tx)
	if nil != err {
		return err
	}

	o, err := unpack(tx.Inputs[0], "vote slip", record.VoteSlipTokenType)
	if nil != err {
		return err
	}
	slip := o.(*record.VoteSlipToken)

	o, err = unpack(tx.Outputs[0], "vote", voteType)
	if nil != err {
		return err
	}
	vote := o.(record.Vote)

	o, err = unpack(tx.Outputs[1], "new vote slip", record.VoteSlipTokenType)
	if nil != err {
		return err
	}
	newSlip := o.(*record.VoteSlipToken)

	err = firstError(
		equalAccount("new vote slip pub", slip.Pub, newSlip.Pub),
		equalLocation("new vote slip", slip.Location, newSlip.Location),
		equalAccount("granted by", slip.Pub, vote.Voter()),
		equalLocation("vote", slip.Location, vote.GetLocation()),
	)
	if nil != err {
		return err
	}

	return signature.Validate(account.Signature(tx.Parameters[0]), slip.Pub)
}
