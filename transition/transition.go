// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transition - build the outputs and signatures a submitter attaches
//
// Each constructor returns the objects a transaction must produce, the
// public parameters it carries and the extra parameters (a signature)
// appended by the host before the matching checker runs.  A transaction
// built here is accepted by its checker when the key is the right one.
package transition

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/signature"
)

// Result - the output of a constructor
type Result struct {
	Outputs         []record.Packed     `json:"outputs"`
	Parameters      []checker.Parameter `json:"parameters"`
	ExtraParameters []checker.Parameter `json:"extra_parameters"`
}

// Assemble - the transaction envelope for a result
//
// extra parameters follow the public parameters
func Assemble(inputs []record.Packed, result *Result) *checker.Transaction {
	parameters := make([]checker.Parameter, 0, len(result.Parameters)+len(result.ExtraParameters))
	parameters = append(parameters, result.Parameters...)
	parameters = append(parameters, result.ExtraParameters...)

	return &checker.Transaction{
		Inputs:          inputs,
		ReferenceInputs: []record.Packed{},
		Parameters:      parameters,
		Outputs:         result.Outputs,
		Returns:         []checker.Parameter{},
	}
}

// MaximumGenesisTokens - upper bound of shards × clients
const MaximumGenesisTokens = 1 << 20

// Init - one bootstrap token per client in each shard
func Init(shards uint64, clients uint64) (*Result, error) {
	if 0 != shards && clients > MaximumGenesisTokens/shards {
		return nil, errors.Wrapf(fault.ErrGenesisTooLarge, "shards: %d  clients: %d", shards, clients)
	}
	outputs := make([]record.Packed, 0, shards*clients)
	for location := uint64(0); location < shards; location += 1 {
		for i := uint64(0); i < clients; i += 1 {
			packed, err := record.Pack(&record.InitToken{Location: location})
			if nil != err {
				return nil, err
			}
			outputs = append(outputs, packed)
		}
	}
	return &Result{Outputs: outputs}, nil
}

// CreateSurgeClient - admit the key's owner using a bootstrap token or votes
func CreateSurgeClient(inputs []record.Packed, privateKey *account.PrivateKey) (*Result, error) {
	location, err := firstLocation(inputs, record.InitTokenType, record.CSCVoteTokenType)
	if nil != err {
		return nil, err
	}
	pub, err := ownAccount(privateKey)
	if nil != err {
		return nil, err
	}

	return build(privateKey,
		[]checker.Parameter{checker.AccountParameter(pub)},
		&record.SurgeClient{Pub: pub, Location: location},
		&record.VoteSlipToken{Pub: pub, Location: location},
		&record.EBToken{Pub: pub, Location: location},
	)
}

// CreateSREPClient - elevate the key's owner using representative votes
func CreateSREPClient(inputs []record.Packed, privateKey *account.PrivateKey) (*Result, error) {
	location, err := firstLocation(inputs, record.SREPVoteTokenType)
	if nil != err {
		return nil, err
	}
	pub, err := ownAccount(privateKey)
	if nil != err {
		return nil, err
	}

	return build(privateKey,
		[]checker.Parameter{checker.AccountParameter(pub)},
		&record.SREPClient{Pub: pub, Location: location},
		&record.VoteSlipToken{Pub: pub, Location: location},
	)
}

// CastCSCVote - vote to admit a client, reissuing the slip
func CastCSCVote(slip record.Packed, privateKey *account.PrivateKey, grantedTo *account.Account) (*Result, error) {
	return castVote(slip, privateKey, grantedTo, func(by *account.Account, location uint64) record.Object {
		return &record.CSCVoteToken{GrantedBy: by, GrantedTo: grantedTo, Location: location}
	})
}

// CastSREPVote - vote to elevate a representative, reissuing the slip
func CastSREPVote(slip record.Packed, privateKey *account.PrivateKey, grantedTo *account.Account) (*Result, error) {
	return castVote(slip, privateKey, grantedTo, func(by *account.Account, location uint64) record.Object {
		return &record.SREPVoteToken{GrantedBy: by, GrantedTo: grantedTo, Location: location}
	})
}

func castVote(slip record.Packed, privateKey *account.PrivateKey, grantedTo *account.Account, vote func(*account.Account, uint64) record.Object) (*Result, error) {
	o, err := slip.UnpackAs(record.VoteSlipTokenType)
	if nil != err {
		return nil, err
	}
	if nil == grantedTo || nil == grantedTo.AccountInterface {
		return nil, fault.ErrNotPublicKey
	}
	s := o.(*record.VoteSlipToken)

	token, err := record.Pack(vote(s.Pub, s.Location))
	if nil != err {
		return nil, err
	}
	sig, err := signature.Generate(privateKey)
	if nil != err {
		return nil, err
	}

	return &Result{
		Outputs:         []record.Packed{token, slip},
		Parameters:      []checker.Parameter{},
		ExtraParameters: []checker.Parameter{checker.Parameter(sig)},
	}, nil
}

// SubmitBidProof - commit to a bid quantity, reissuing the token
func SubmitBidProof(ebToken record.Packed, privateKey *account.PrivateKey, bidType record.TypeName, quantity uint64) (*Result, error) {
	o, err := ebToken.UnpackAs(record.EBTokenType)
	if nil != err {
		return nil, err
	}
	if !record.IsBidType(bidType) {
		return nil, errors.Wrapf(fault.ErrInvalidBidType, "%q", bidType)
	}
	token := o.(*record.EBToken)

	quantitySig, err := signature.GenerateFor(privateKey, signature.QuantityMessage(quantity, token.Pub))
	if nil != err {
		return nil, err
	}
	proof, err := record.Pack(&record.BidProof{
		BidType:     bidType,
		QuantitySig: quantitySig,
		Pub:         token.Pub,
		Location:    token.Location,
	})
	if nil != err {
		return nil, err
	}
	sig, err := signature.Generate(privateKey)
	if nil != err {
		return nil, err
	}

	return &Result{
		Outputs:         []record.Packed{proof, ebToken},
		Parameters:      []checker.Parameter{checker.Parameter(bidType)},
		ExtraParameters: []checker.Parameter{checker.Parameter(sig)},
	}, nil
}

// SubmitBid - reveal the quantity committed to by a bid proof
func SubmitBid(bidProof record.Packed, privateKey *account.PrivateKey, quantity uint64) (*Result, error) {
	o, err := bidProof.UnpackAs(record.BidProofType)
	if nil != err {
		return nil, err
	}
	proof := o.(*record.BidProof)

	b := record.Bid{
		Quantity:    quantity,
		QuantitySig: proof.QuantitySig,
		Pub:         proof.Pub,
		Location:    proof.Location,
	}
	var bid record.Object
	switch proof.BidType {
	case record.EBBuyType:
		bid = &record.EBBuy{Bid: b}
	case record.EBSellType:
		bid = &record.EBSell{Bid: b}
	default:
		return nil, errors.Wrapf(fault.ErrInvalidBidType, "%q", proof.BidType)
	}

	return build(privateKey,
		[]checker.Parameter{checker.QuantityParameter(quantity)},
		bid,
	)
}

// AcceptBids - settle the bids of one location
func AcceptBids(bids []record.Packed, privateKey *account.PrivateKey) (*Result, error) {
	location, err := firstLocation(bids, record.EBBuyType, record.EBSellType)
	if nil != err {
		return nil, err
	}
	totals, err := checker.SumBids(bids, location)
	if nil != err {
		return nil, err
	}
	pub, err := ownAccount(privateKey)
	if nil != err {
		return nil, err
	}

	return build(privateKey,
		[]checker.Parameter{checker.AccountParameter(pub)},
		&record.BidAccept{
			TotalBuy:  totals.Buy,
			TotalSell: totals.Sell,
			Pub:       pub,
			Location:  location,
		},
	)
}

// pack the outputs and sign the default message
func build(privateKey *account.PrivateKey, parameters []checker.Parameter, objects ...record.Object) (*Result, error) {
	outputs := make([]record.Packed, 0, len(objects))
	for _, object := range objects {
		packed, err := record.Pack(object)
		if nil != err {
			return nil, err
		}
		outputs = append(outputs, packed)
	}

	sig, err := signature.Generate(privateKey)
	if nil != err {
		return nil, err
	}

	return &Result{
		Outputs:         outputs,
		Parameters:      parameters,
		ExtraParameters: []checker.Parameter{checker.Parameter(sig)},
	}, nil
}

// the location of the first input, which must be one of the expected types
func firstLocation(inputs []record.Packed, expected ...record.TypeName) (uint64, error) {
	if 0 == len(inputs) {
		return 0, fault.ErrMissingParameters
	}
	o, err := inputs[0].UnpackAs(expected...)
	if nil != err {
		return 0, err
	}
	return o.GetLocation(), nil
}

func ownAccount(privateKey *account.PrivateKey) (*account.Account, error) {
	if nil == privateKey || nil == privateKey.PrivateKeyInterface {
		return nil, fault.ErrNotPrivateKey
	}
	return privateKey.Account(), nil
}
