// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package checker_test

import (
	"testing"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/fixtures"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/transition"
)

func TestCastVote(t *testing.T) {

	type castFunc func(record.Packed, *account.PrivateKey, *account.Account) (*transition.Result, error)

	kinds := []struct {
		name     string
		voteType record.TypeName
		cast     castFunc
		vote     func(by *account.PrivateKey, to *account.PrivateKey, location uint64) record.Packed
		other    func(by *account.PrivateKey, to *account.PrivateKey, location uint64) record.Packed
	}{
		{
			name:     checker.CastCSCVote,
			voteType: record.CSCVoteTokenType,
			cast:     transition.CastCSCVote,
			vote:     func(by, to *account.PrivateKey, l uint64) record.Packed { return cscVote(t, by, to, l) },
			other:    func(by, to *account.PrivateKey, l uint64) record.Packed { return srepVote(t, by, to, l) },
		},
		{
			name:     checker.CastSREPVote,
			voteType: record.SREPVoteTokenType,
			cast:     transition.CastSREPVote,
			vote:     func(by, to *account.PrivateKey, l uint64) record.Packed { return srepVote(t, by, to, l) },
			other:    func(by, to *account.PrivateKey, l uint64) record.Packed { return cscVote(t, by, to, l) },
		},
	}

	for _, kind := range kinds {

		build := func(voter *account.PrivateKey, change func(tx *checker.Transaction)) *checker.Transaction {
			inputs := []record.Packed{voteSlip(t, voter, 7)}
			result, err := kind.cast(inputs[0], voter, fixtures.Carol.Account())
			tx := assemble(t, inputs, result, err)
			if nil != change {
				change(tx)
			}
			return tx
		}

		items := []checkItem{
			{"valid", build(fixtures.Alice, nil), nil},
			{"secp256k1 voter", build(fixtures.Dave, nil), nil},
			{
				"vote on behalf of another",
				build(fixtures.Alice, func(tx *checker.Transaction) {
					tx.Outputs[0] = kind.vote(fixtures.Bob, fixtures.Carol, 7)
				}),
				fault.IsErrEquality,
			},
			{
				"vote at another location",
				build(fixtures.Alice, func(tx *checker.Transaction) {
					tx.Outputs[0] = kind.vote(fixtures.Alice, fixtures.Carol, 8)
				}),
				fault.IsErrEquality,
			},
			{
				"slip reissued to another key",
				build(fixtures.Alice, func(tx *checker.Transaction) { tx.Outputs[1] = voteSlip(t, fixtures.Bob, 7) }),
				fault.IsErrEquality,
			},
			{
				"slip reissued at another location",
				build(fixtures.Alice, func(tx *checker.Transaction) { tx.Outputs[1] = voteSlip(t, fixtures.Alice, 6) }),
				fault.IsErrEquality,
			},
			{
				"signature by another key",
				build(fixtures.Alice, func(tx *checker.Transaction) { tx.Parameters[0] = sign(t, fixtures.Bob) }),
				fault.IsErrSignature,
			},
			{
				"truncated signature",
				build(fixtures.Alice, func(tx *checker.Transaction) { tx.Parameters[0] = tx.Parameters[0][:10] }),
				fault.IsErrSignature,
			},
			{
				"vote of the other kind",
				build(fixtures.Alice, func(tx *checker.Transaction) {
					tx.Outputs[0] = kind.other(fixtures.Alice, fixtures.Carol, 7)
				}),
				fault.IsErrTypeMismatch,
			},
			{
				"eb token consumed",
				build(fixtures.Alice, func(tx *checker.Transaction) { tx.Inputs[0] = ebToken(t, fixtures.Alice, 7) }),
				fault.IsErrTypeMismatch,
			},
			{
				"vote without grantee",
				build(fixtures.Alice, func(tx *checker.Transaction) {
					tx.Outputs[0] = record.Packed(`{"granted_by":"` + fixtures.Alice.Account().String() + `","location":7,"type":"` + string(kind.voteType) + `"}`)
				}),
				fault.IsErrMissingField,
			},
			{
				"two slips",
				build(fixtures.Alice, func(tx *checker.Transaction) { tx.Inputs = append(tx.Inputs, voteSlip(t, fixtures.Alice, 7)) }),
				fault.IsErrArity,
			},
			{
				"reference input",
				build(fixtures.Alice, func(tx *checker.Transaction) { tx.ReferenceInputs = []record.Packed{voteSlip(t, fixtures.Bob, 7)} }),
				fault.IsErrArity,
			},
		}

		runItems(t, kind.name, items)
	}
}
