// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the closed set of ledger objects and their codec
//
// every object is a keyed record carrying a "type" discriminator and a
// "location" (the shard it belongs to); public keys are Base58 text and
// signatures are hex text
package record

import (
	"encoding/hex"

	"github.com/bitmark-inc/surged/account"
)

// TypeName - the "type" discriminator of an object
type TypeName string

// enumerate the possible object types
const (
	InitTokenType     = TypeName("InitToken")
	SurgeClientType   = TypeName("SurgeClient")
	VoteSlipTokenType = TypeName("VoteSlipToken")
	EBTokenType       = TypeName("EBToken")
	CSCVoteTokenType  = TypeName("CSCVoteToken")
	SREPClientType    = TypeName("SREPClient")
	SREPVoteTokenType = TypeName("SREPVoteToken")
	BidProofType      = TypeName("BidProof")
	EBBuyType         = TypeName("EBBuy")
	EBSellType        = TypeName("EBSell")
	BidAcceptType     = TypeName("BidAccept")
)

// Packed - packed records are just a byte slice
type Packed []byte

// Object - common interface of all ledger objects
type Object interface {
	Type() TypeName
	GetLocation() uint64
}

// Owned - an object held by a single public key
type Owned interface {
	Object
	GetPub() *account.Account
}

// Vote - a vote token granted by one key to another
type Vote interface {
	Object
	Voter() *account.Account
	Candidate() *account.Account
}

// InitToken - bootstrap admission token, one per (shard, client)
type InitToken struct {
	Location uint64 `json:"location"`
}

// SurgeClient - an admitted client
type SurgeClient struct {
	Pub      *account.Account `json:"pub"`
	Location uint64           `json:"location"`
}

// VoteSlipToken - single use capability to cast one vote
type VoteSlipToken struct {
	Pub      *account.Account `json:"pub"`
	Location uint64           `json:"location"`
}

// EBToken - single use capability to submit one bid proof
type EBToken struct {
	Pub      *account.Account `json:"pub"`
	Location uint64           `json:"location"`
}

// CSCVoteToken - a vote to admit a new client
type CSCVoteToken struct {
	GrantedBy *account.Account `json:"granted_by"`
	GrantedTo *account.Account `json:"granted_to"`
	Location  uint64           `json:"location"`
}

// SREPClient - a client elevated to shard representative
type SREPClient struct {
	Pub      *account.Account `json:"pub"`
	Location uint64           `json:"location"`
}

// SREPVoteToken - a vote to elevate a client to shard representative
type SREPVoteToken struct {
	GrantedBy *account.Account `json:"granted_by"`
	GrantedTo *account.Account `json:"granted_to"`
	Location  uint64           `json:"location"`
}

// BidProof - commitment to a bid quantity that is revealed later
type BidProof struct {
	BidType     TypeName          `json:"bid_type"`
	QuantitySig account.Signature `json:"quantity_sig"`
	Pub         *account.Account  `json:"pub"`
	Location    uint64            `json:"location"`
}

// Bid - the revealed bid shared by EBBuy and EBSell
type Bid struct {
	Quantity    uint64            `json:"quantity"`
	QuantitySig account.Signature `json:"quantity_sig"`
	Pub         *account.Account  `json:"pub"`
	Location    uint64            `json:"location"`
}

// EBBuy - a revealed buy bid
type EBBuy struct {
	Bid
}

// EBSell - a revealed sell bid
type EBSell struct {
	Bid
}

// BidAccept - the settlement of all accepted bids of a shard
type BidAccept struct {
	TotalBuy  uint64           `json:"total_buy"`
	TotalSell uint64           `json:"total_sell"`
	Pub       *account.Account `json:"pub"`
	Location  uint64           `json:"location"`
}

// Revealed - access the bid of an EBBuy or EBSell
type Revealed interface {
	Owned
	GetBid() *Bid
}

func (t *InitToken) Type() TypeName     { return InitTokenType }
func (t *SurgeClient) Type() TypeName   { return SurgeClientType }
func (t *VoteSlipToken) Type() TypeName { return VoteSlipTokenType }
func (t *EBToken) Type() TypeName       { return EBTokenType }
func (t *CSCVoteToken) Type() TypeName  { return CSCVoteTokenType }
func (t *SREPClient) Type() TypeName    { return SREPClientType }
func (t *SREPVoteToken) Type() TypeName { return SREPVoteTokenType }
func (t *BidProof) Type() TypeName      { return BidProofType }
func (t *EBBuy) Type() TypeName         { return EBBuyType }
func (t *EBSell) Type() TypeName        { return EBSellType }
func (t *BidAccept) Type() TypeName     { return BidAcceptType }

func (t *InitToken) GetLocation() uint64     { return t.Location }
func (t *SurgeClient) GetLocation() uint64   { return t.Location }
func (t *VoteSlipToken) GetLocation() uint64 { return t.Location }
func (t *EBToken) GetLocation() uint64       { return t.Location }
func (t *CSCVoteToken) GetLocation() uint64  { return t.Location }
func (t *SREPClient) GetLocation() uint64    { return t.Location }
func (t *SREPVoteToken) GetLocation() uint64 { return t.Location }
func (t *BidProof) GetLocation() uint64      { return t.Location }
func (t *Bid) GetLocation() uint64           { return t.Location }
func (t *BidAccept) GetLocation() uint64     { return t.Location }

func (t *SurgeClient) GetPub() *account.Account   { return t.Pub }
func (t *VoteSlipToken) GetPub() *account.Account { return t.Pub }
func (t *EBToken) GetPub() *account.Account       { return t.Pub }
func (t *SREPClient) GetPub() *account.Account    { return t.Pub }
func (t *BidProof) GetPub() *account.Account      { return t.Pub }
func (t *Bid) GetPub() *account.Account           { return t.Pub }
func (t *BidAccept) GetPub() *account.Account     { return t.Pub }

func (t *Bid) GetBid() *Bid { return t }

func (t *CSCVoteToken) Voter() *account.Account      { return t.GrantedBy }
func (t *CSCVoteToken) Candidate() *account.Account  { return t.GrantedTo }
func (t *SREPVoteToken) Voter() *account.Account     { return t.GrantedBy }
func (t *SREPVoteToken) Candidate() *account.Account { return t.GrantedTo }

// IsBidType - true for the two revealed bid types
func IsBidType(t TypeName) bool {
	return EBBuyType == t || EBSellType == t
}

// MarshalText - convert a packed record to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(record)))
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert hex JSON form to a packed record
func (record *Packed) UnmarshalText(s []byte) error {
	b := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(b, s)
	if nil != err {
		return err
	}
	*record = b[:n]
	return nil
}
