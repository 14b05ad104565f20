// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/client"
	"github.com/bitmark-inc/surged/client/mocks"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/fixtures"
	"github.com/bitmark-inc/surged/record"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// the mock accepts exactly what the checker accepts
func validating(name string, tx *checker.Transaction) error {
	return checker.Validate(name, tx)
}

func session(t *testing.T, key *account.PrivateKey, s client.Submitter) *client.Session {
	c, err := client.NewSession(key, s, logger.New(fixtures.LogCategory))
	require.NoError(t, err, "new session")
	return c
}

func TestNewSession(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)

	_, err := client.NewSession(nil, s, nil)
	assert.Equal(t, fault.ErrNotPrivateKey, err, "nil key")

	_, err = client.NewSession(fixtures.Alice, nil, nil)
	assert.Equal(t, fault.ErrMissingSubmitter, err, "nil submitter")

	c, err := client.NewSession(fixtures.Alice, s, nil)
	require.NoError(t, err, "valid session")
	assert.True(t, fixtures.Alice.Account().Equal(c.Account()), "session account")
}

func TestJoinAndVote(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	s.EXPECT().Submit(checker.CreateSurgeClient, gomock.Any()).DoAndReturn(validating).Times(3)
	s.EXPECT().Submit(checker.CastCSCVote, gomock.Any()).DoAndReturn(validating).Times(2)
	s.EXPECT().Submit(checker.CastSREPVote, gomock.Any()).DoAndReturn(validating).Times(2)
	s.EXPECT().Submit(checker.CreateSREPClient, gomock.Any()).DoAndReturn(validating).Times(1)

	token0, err := record.Pack(&record.InitToken{Location: 3})
	require.NoError(t, err, "pack init token")
	token1, err := record.Pack(&record.InitToken{Location: 3})
	require.NoError(t, err, "pack init token")

	alice := session(t, fixtures.Alice, s)
	dave := session(t, fixtures.Dave, s)
	carol := session(t, fixtures.Carol, s)

	aliceMember, err := client.Join(alice, []record.Packed{token0})
	require.NoError(t, err, "alice join")
	daveMember, err := client.Join(dave, []record.Packed{token1})
	require.NoError(t, err, "dave join")

	slip := aliceMember.VoteSlip
	v1, err := client.CastCSCVote(alice, aliceMember, carol.Account())
	require.NoError(t, err, "alice vote")
	assert.Equal(t, slip, aliceMember.VoteSlip, "reissued slip")
	v2, err := client.CastCSCVote(dave, daveMember, carol.Account())
	require.NoError(t, err, "dave vote")

	carolMember, err := client.Join(carol, []record.Packed{v1, v2})
	require.NoError(t, err, "carol join")
	require.NotNil(t, carolMember.EBToken, "carol eb token")

	r1, err := client.CastSREPVote(alice, aliceMember, carol.Account())
	require.NoError(t, err, "alice representative vote")
	r2, err := client.CastSREPVote(dave, daveMember, carol.Account())
	require.NoError(t, err, "dave representative vote")

	rep, err := client.BecomeRepresentative(carol, []record.Packed{r1, r2})
	require.NoError(t, err, "carol elevation")
	assert.Equal(t, uint64(3), rep.Location, "representative location")
}

func TestSubmitErrorKeepsState(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := fmt.Errorf("host down")
	s := mocks.NewMockSubmitter(ctl)
	s.EXPECT().Submit(checker.CastCSCVote, gomock.Any()).Return(e).Times(1)
	s.EXPECT().Submit(checker.SubmitBidProof, gomock.Any()).Return(e).Times(1)

	slip, err := record.Pack(&record.VoteSlipToken{Pub: fixtures.Alice.Account(), Location: 1})
	require.NoError(t, err, "pack slip")
	ebToken, err := record.Pack(&record.EBToken{Pub: fixtures.Alice.Account(), Location: 1})
	require.NoError(t, err, "pack eb token")
	member := &client.Member{VoteSlip: slip, EBToken: ebToken}

	alice := session(t, fixtures.Alice, s)

	_, err = client.CastCSCVote(alice, member, fixtures.Bob.Account())
	assert.Equal(t, e, err, "vote error")
	assert.Equal(t, slip, member.VoteSlip, "slip changed")

	_, err = client.SubmitBidProof(alice, member, record.EBBuyType, 3)
	assert.Equal(t, e, err, "proof error")
	assert.Equal(t, ebToken, member.EBToken, "eb token changed")

	// constructor errors never reach the host
	_, err = client.SubmitBidProof(alice, member, record.SurgeClientType, 3)
	assert.True(t, fault.IsErrBidType(err), "bad bid type: %v", err)
}

func TestAcceptBids(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	s.EXPECT().Submit(checker.SubmitBidProof, gomock.Any()).DoAndReturn(validating).Times(3)
	s.EXPECT().Submit(checker.SubmitBid, gomock.Any()).DoAndReturn(validating).Times(3)

	bidders := []struct {
		key      *account.PrivateKey
		bidType  record.TypeName
		quantity uint64
	}{
		{fixtures.Alice, record.EBBuyType, 3},
		{fixtures.Bob, record.EBSellType, 4},
		{fixtures.Dave, record.EBBuyType, 5},
	}

	proofs := []record.Packed{}
	buys := []record.Packed{}
	sells := []record.Packed{}
	for i, bidder := range bidders {
		ebToken, err := record.Pack(&record.EBToken{Pub: bidder.key.Account(), Location: 6})
		require.NoError(t, err, "%d: pack eb token", i)
		member := &client.Member{EBToken: ebToken}
		c := session(t, bidder.key, s)

		proof, err := client.SubmitBidProof(c, member, bidder.bidType, bidder.quantity)
		require.NoError(t, err, "%d: proof", i)
		bid, err := client.SubmitBid(c, proof, bidder.quantity)
		require.NoError(t, err, "%d: bid", i)

		// Dave's proof never reached the shard
		if fixtures.Dave != bidder.key {
			proofs = append(proofs, proof)
		}
		if record.EBBuyType == bidder.bidType {
			buys = append(buys, bid)
		} else {
			sells = append(sells, bid)
		}
	}

	s.EXPECT().Objects(uint64(6), record.EBBuyType).Return(buys, nil).Times(1)
	s.EXPECT().Objects(uint64(6), record.EBSellType).Return(sells, nil).Times(1)

	var accepted *checker.Transaction
	s.EXPECT().Submit(checker.AcceptBids, gomock.Any()).DoAndReturn(
		func(name string, tx *checker.Transaction) error {
			accepted = tx
			return checker.Validate(name, tx)
		},
	).Times(1)

	carol := session(t, fixtures.Carol, s)
	packed, err := client.AcceptBids(carol, &client.Representative{Location: 6}, proofs)
	require.NoError(t, err, "accept bids")
	require.NotNil(t, accepted, "no transaction submitted")
	assert.Equal(t, 2, len(accepted.Inputs), "unproven bid included")

	o, err := packed.UnpackAs(record.BidAcceptType)
	require.NoError(t, err, "unpack accept")
	accept := o.(*record.BidAccept)
	assert.Equal(t, uint64(3), accept.TotalBuy, "total buy")
	assert.Equal(t, uint64(4), accept.TotalSell, "total sell")
}

func TestAcceptBidsNone(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	s.EXPECT().Objects(uint64(2), gomock.Any()).Return([]record.Packed{}, nil).Times(3)

	carol := session(t, fixtures.Carol, s)
	r := &client.Representative{Location: 2}
	proofs, err := client.Proofs(carol, r)
	require.NoError(t, err, "proofs")
	_, err = client.AcceptBids(carol, r, proofs)
	assert.Equal(t, fault.ErrNoBidsToAccept, err, "nothing to accept")
}

func TestAcceptBidsObjectsError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := fault.ErrDatabaseIsNotSet
	s := mocks.NewMockSubmitter(ctl)
	s.EXPECT().Objects(uint64(2), record.BidProofType).Return(nil, e).Times(1)
	s.EXPECT().Objects(uint64(2), record.EBBuyType).Return(nil, e).Times(1)

	carol := session(t, fixtures.Carol, s)
	r := &client.Representative{Location: 2}
	_, err := client.Proofs(carol, r)
	assert.Equal(t, e, err, "proofs error")
	_, err = client.AcceptBids(carol, r, nil)
	assert.Equal(t, e, err, "objects error")
}
