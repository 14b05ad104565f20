// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client - drive the auction from the point of view of a key holder
//
// A Session pairs a signing key with a Submitter (the host that checks
// and applies transactions).  Role specific actions are free functions
// taking the session and the objects the holder currently owns; nothing
// here waits or polls, the caller decides when each step happens.
package client

import (
	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/transition"
)

// Submitter - the host side of a session
type Submitter interface {
	Submit(name string, tx *checker.Transaction) error
	Objects(location uint64, objectType record.TypeName) ([]record.Packed, error)
}

// Session - a key holder connected to a host
type Session struct {
	key       *account.PrivateKey
	submitter Submitter
	log       *logger.L
}

// Member - the objects held by an admitted client
type Member struct {
	Client   record.Packed
	VoteSlip record.Packed
	EBToken  record.Packed
}

// Representative - the objects held by a shard representative
type Representative struct {
	Client   record.Packed
	VoteSlip record.Packed
	Location uint64
}

// NewSession - create a session for a key
func NewSession(key *account.PrivateKey, submitter Submitter, log *logger.L) (*Session, error) {
	if nil == key || nil == key.PrivateKeyInterface {
		return nil, fault.ErrNotPrivateKey
	}
	if nil == submitter {
		return nil, fault.ErrMissingSubmitter
	}
	return &Session{
		key:       key,
		submitter: submitter,
		log:       log,
	}, nil
}

// Account - the public key of the session
func (s *Session) Account() *account.Account {
	return s.key.Account()
}

// build and submit a transaction, returning its outputs
func (s *Session) submit(name string, inputs []record.Packed, result *transition.Result, err error) ([]record.Packed, error) {
	if nil != err {
		return nil, errors.Wrap(err, name)
	}
	tx := transition.Assemble(inputs, result)
	if err := s.submitter.Submit(name, tx); nil != err {
		if nil != s.log {
			s.log.Warnf("%s: submit error: %s", name, err)
		}
		return nil, err
	}
	if nil != s.log {
		s.log.Infof("%s: %d inputs → %d outputs", name, len(inputs), len(tx.Outputs))
	}
	return tx.Outputs, nil
}

// Join - become a client using a bootstrap token or votes for this key
func Join(s *Session, admission []record.Packed) (*Member, error) {
	result, err := transition.CreateSurgeClient(admission, s.key)
	outputs, err := s.submit(checker.CreateSurgeClient, admission, result, err)
	if nil != err {
		return nil, err
	}
	return &Member{
		Client:   outputs[0],
		VoteSlip: outputs[1],
		EBToken:  outputs[2],
	}, nil
}

// CastCSCVote - vote to admit a candidate, returning the vote
func CastCSCVote(s *Session, m *Member, candidate *account.Account) (record.Packed, error) {
	result, err := transition.CastCSCVote(m.VoteSlip, s.key, candidate)
	return castVote(s, m, checker.CastCSCVote, result, err)
}

// CastSREPVote - vote to elevate a candidate, returning the vote
func CastSREPVote(s *Session, m *Member, candidate *account.Account) (record.Packed, error) {
	result, err := transition.CastSREPVote(m.VoteSlip, s.key, candidate)
	return castVote(s, m, checker.CastSREPVote, result, err)
}

// the member keeps the reissued slip
func castVote(s *Session, m *Member, name string, result *transition.Result, err error) (record.Packed, error) {
	outputs, err := s.submit(name, []record.Packed{m.VoteSlip}, result, err)
	if nil != err {
		return nil, err
	}
	m.VoteSlip = outputs[1]
	return outputs[0], nil
}

// BecomeRepresentative - elevate this key using representative votes
func BecomeRepresentative(s *Session, votes []record.Packed) (*Representative, error) {
	result, err := transition.CreateSREPClient(votes, s.key)
	outputs, err := s.submit(checker.CreateSREPClient, votes, result, err)
	if nil != err {
		return nil, err
	}
	o, err := outputs[0].UnpackAs(record.SREPClientType)
	if nil != err {
		return nil, err
	}
	return &Representative{
		Client:   outputs[0],
		VoteSlip: outputs[1],
		Location: o.GetLocation(),
	}, nil
}

// SubmitBidProof - commit to a quantity, returning the proof
//
// the member keeps the reissued eb token
func SubmitBidProof(s *Session, m *Member, bidType record.TypeName, quantity uint64) (record.Packed, error) {
	result, err := transition.SubmitBidProof(m.EBToken, s.key, bidType, quantity)
	outputs, err := s.submit(checker.SubmitBidProof, []record.Packed{m.EBToken}, result, err)
	if nil != err {
		return nil, err
	}
	m.EBToken = outputs[1]
	return outputs[0], nil
}

// SubmitBid - reveal the quantity of a proof, returning the bid
func SubmitBid(s *Session, proof record.Packed, quantity uint64) (record.Packed, error) {
	result, err := transition.SubmitBid(proof, s.key, quantity)
	outputs, err := s.submit(checker.SubmitBid, []record.Packed{proof}, result, err)
	if nil != err {
		return nil, err
	}
	return outputs[0], nil
}

// Proofs - the bid commitments currently held at the representative's shard
//
// revealing a bid consumes its proof so these must be collected before
// the bidders reveal
func Proofs(s *Session, r *Representative) ([]record.Packed, error) {
	return s.submitter.Objects(r.Location, record.BidProofType)
}

// AcceptBids - settle the revealed bids that match earlier commitments
//
// returns ErrNoBidsToAccept when no revealed bid has a matching proof
func AcceptBids(s *Session, r *Representative, proofs []record.Packed) (record.Packed, error) {
	buys, err := s.submitter.Objects(r.Location, record.EBBuyType)
	if nil != err {
		return nil, err
	}
	sells, err := s.submitter.Objects(r.Location, record.EBSellType)
	if nil != err {
		return nil, err
	}

	bids := SelectBids(proofs, append(buys, sells...))
	if 0 == len(bids) {
		return nil, fault.ErrNoBidsToAccept
	}

	result, err := transition.AcceptBids(bids, s.key)
	outputs, err := s.submit(checker.AcceptBids, bids, result, err)
	if nil != err {
		return nil, err
	}
	return outputs[0], nil
}
