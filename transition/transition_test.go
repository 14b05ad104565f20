// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/fixtures"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/transition"
)

func TestInit(t *testing.T) {
	result, err := transition.Init(3, 2)
	require.NoError(t, err, "init")
	require.Equal(t, 6, len(result.Outputs), "token count")
	assert.Equal(t, 0, len(result.Parameters), "parameters")
	assert.Equal(t, 0, len(result.ExtraParameters), "extra parameters")

	counts := make(map[uint64]int)
	for i, packed := range result.Outputs {
		o, err := packed.UnpackAs(record.InitTokenType)
		require.NoError(t, err, "%d: unpack", i)
		counts[o.GetLocation()] += 1
	}
	assert.Equal(t, map[uint64]int{0: 2, 1: 2, 2: 2}, counts, "tokens per shard")

	empty, err := transition.Init(0, 5)
	require.NoError(t, err, "empty init")
	assert.Equal(t, 0, len(empty.Outputs), "no shards")
}

func TestInitTooLarge(t *testing.T) {
	items := []struct {
		shards  uint64
		clients uint64
	}{
		{1, transition.MaximumGenesisTokens + 1},
		{2, transition.MaximumGenesisTokens/2 + 1},
		{transition.MaximumGenesisTokens + 1, 1},
		{1 << 32, 1 << 32},
		{18446744073709551615, 2},
		{3, 6148914691236517206},
	}

	for i, item := range items {
		result, err := transition.Init(item.shards, item.clients)
		assert.Nil(t, result, "%d: result", i)
		assert.True(t, fault.IsErrInvalid(err), "%d: wrong error: %v", i, err)
	}

	// no shards means no tokens however many clients
	result, err := transition.Init(0, 18446744073709551615)
	require.NoError(t, err, "empty init")
	assert.Equal(t, 0, len(result.Outputs), "token count")
}

// a full round: bootstrap, admission by vote, elevation, bidding and settlement
func TestLifecycle(t *testing.T) {

	genesis, err := transition.Init(1, 2)
	require.NoError(t, err, "init")

	run := func(name string, inputs []record.Packed, result *transition.Result, err error) []record.Packed {
		require.NoError(t, err, "%s: construct", name)
		tx := transition.Assemble(inputs, result)
		require.NoError(t, checker.Validate(name, tx), "%s: rejected", name)
		return tx.Outputs
	}

	in := genesis.Outputs[0:1]
	r, err := transition.CreateSurgeClient(in, fixtures.Alice)
	alice := run(checker.CreateSurgeClient, in, r, err)

	in = genesis.Outputs[1:2]
	r, err = transition.CreateSurgeClient(in, fixtures.Dave)
	dave := run(checker.CreateSurgeClient, in, r, err)

	r, err = transition.CastCSCVote(alice[1], fixtures.Alice, fixtures.Carol.Account())
	aliceVote := run(checker.CastCSCVote, alice[1:2], r, err)
	assert.Equal(t, alice[1], aliceVote[1], "slip not reissued unchanged")

	r, err = transition.CastCSCVote(dave[1], fixtures.Dave, fixtures.Carol.Account())
	daveVote := run(checker.CastCSCVote, dave[1:2], r, err)

	in = []record.Packed{aliceVote[0], daveVote[0]}
	r, err = transition.CreateSurgeClient(in, fixtures.Carol)
	carol := run(checker.CreateSurgeClient, in, r, err)

	r, err = transition.CastSREPVote(aliceVote[1], fixtures.Alice, fixtures.Carol.Account())
	aliceSREP := run(checker.CastSREPVote, aliceVote[1:2], r, err)

	r, err = transition.CastSREPVote(daveVote[1], fixtures.Dave, fixtures.Carol.Account())
	daveSREP := run(checker.CastSREPVote, daveVote[1:2], r, err)

	in = []record.Packed{aliceSREP[0], daveSREP[0]}
	r, err = transition.CreateSREPClient(in, fixtures.Carol)
	srep := run(checker.CreateSREPClient, in, r, err)
	require.Equal(t, 2, len(srep), "representative outputs")

	r, err = transition.SubmitBidProof(alice[2], fixtures.Alice, record.EBBuyType, 6)
	aliceProof := run(checker.SubmitBidProof, alice[2:3], r, err)

	r, err = transition.SubmitBidProof(carol[2], fixtures.Carol, record.EBSellType, 4)
	carolProof := run(checker.SubmitBidProof, carol[2:3], r, err)

	r, err = transition.SubmitBid(aliceProof[0], fixtures.Alice, 6)
	aliceBid := run(checker.SubmitBid, aliceProof[0:1], r, err)

	r, err = transition.SubmitBid(carolProof[0], fixtures.Carol, 4)
	carolBid := run(checker.SubmitBid, carolProof[0:1], r, err)

	in = []record.Packed{aliceBid[0], carolBid[0]}
	r, err = transition.AcceptBids(in, fixtures.Carol)
	settled := run(checker.AcceptBids, in, r, err)

	o, err := settled[0].UnpackAs(record.BidAcceptType)
	require.NoError(t, err, "unpack accept")
	accept := o.(*record.BidAccept)
	assert.Equal(t, uint64(6), accept.TotalBuy, "total buy")
	assert.Equal(t, uint64(4), accept.TotalSell, "total sell")
	assert.Equal(t, uint64(0), accept.Location, "location")
	assert.True(t, fixtures.Carol.Account().Equal(accept.Pub), "aggregator")
}

func TestAssemble(t *testing.T) {
	result := &transition.Result{
		Outputs:         []record.Packed{record.Packed("x")},
		Parameters:      []checker.Parameter{{1}, {2}},
		ExtraParameters: []checker.Parameter{{3}},
	}
	tx := transition.Assemble([]record.Packed{record.Packed("y")}, result)
	assert.Equal(t, []checker.Parameter{{1}, {2}, {3}}, tx.Parameters, "parameters")
	assert.Equal(t, result.Outputs, tx.Outputs, "outputs")
	assert.Equal(t, 0, len(tx.ReferenceInputs), "reference inputs")
	assert.Equal(t, 0, len(tx.Returns), "returns")

	// the result is not modified
	assert.Equal(t, 2, len(result.Parameters), "result parameters")
}

func TestConstructorErrors(t *testing.T) {

	initToken, err := record.Pack(&record.InitToken{Location: 1})
	require.NoError(t, err, "pack init token")
	slip, err := record.Pack(&record.VoteSlipToken{Pub: fixtures.Alice.Account(), Location: 1})
	require.NoError(t, err, "pack slip")
	ebToken, err := record.Pack(&record.EBToken{Pub: fixtures.Alice.Account(), Location: 1})
	require.NoError(t, err, "pack eb token")
	badProof, err := record.Pack(&record.BidProof{
		BidType:     record.SurgeClientType,
		QuantitySig: []byte{1},
		Pub:         fixtures.Alice.Account(),
		Location:    1,
	})
	require.NoError(t, err, "pack bad proof")

	_, err = transition.CreateSurgeClient(nil, fixtures.Alice)
	assert.Equal(t, fault.ErrMissingParameters, err, "no inputs")

	_, err = transition.CreateSurgeClient([]record.Packed{slip}, fixtures.Alice)
	assert.True(t, fault.IsErrTypeMismatch(err), "slip as admission: %v", err)

	_, err = transition.CreateSurgeClient([]record.Packed{initToken}, nil)
	assert.Equal(t, fault.ErrNotPrivateKey, err, "no key")

	_, err = transition.CreateSREPClient([]record.Packed{initToken}, fixtures.Alice)
	assert.True(t, fault.IsErrTypeMismatch(err), "bootstrap representative: %v", err)

	_, err = transition.CastCSCVote(slip, fixtures.Alice, nil)
	assert.Equal(t, fault.ErrNotPublicKey, err, "no grantee")

	_, err = transition.CastSREPVote(ebToken, fixtures.Alice, fixtures.Bob.Account())
	assert.True(t, fault.IsErrTypeMismatch(err), "vote with eb token: %v", err)

	_, err = transition.SubmitBidProof(ebToken, fixtures.Alice, record.BidAcceptType, 1)
	assert.True(t, fault.IsErrBidType(err), "bid type: %v", err)

	_, err = transition.SubmitBidProof(ebToken, nil, record.EBBuyType, 1)
	assert.Equal(t, fault.ErrNotPrivateKey, err, "no key")

	_, err = transition.SubmitBid(badProof, fixtures.Alice, 1)
	assert.True(t, fault.IsErrBidType(err), "bid type: %v", err)

	_, err = transition.AcceptBids(nil, fixtures.Alice)
	assert.Equal(t, fault.ErrMissingParameters, err, "no bids")

	_, err = transition.AcceptBids([]record.Packed{ebToken}, fixtures.Alice)
	assert.True(t, fault.IsErrTypeMismatch(err), "eb token as bid: %v", err)
}
