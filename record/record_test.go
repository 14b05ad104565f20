// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/fixtures"
	"github.com/bitmark-inc/surged/record"
)

func sampleObjects() []record.Object {
	alice := fixtures.Alice.Account()
	bob := fixtures.Bob.Account()
	dave := fixtures.Dave.Account()
	sig := account.Signature{0x01, 0x02, 0x03, 0x04}

	return []record.Object{
		&record.InitToken{Location: 0},
		&record.InitToken{Location: 7},
		&record.SurgeClient{Pub: alice, Location: 1},
		&record.VoteSlipToken{Pub: dave, Location: 1},
		&record.EBToken{Pub: alice, Location: 2},
		&record.CSCVoteToken{GrantedBy: alice, GrantedTo: bob, Location: 1},
		&record.SREPClient{Pub: bob, Location: 3},
		&record.SREPVoteToken{GrantedBy: dave, GrantedTo: bob, Location: 3},
		&record.BidProof{BidType: record.EBBuyType, QuantitySig: sig, Pub: alice, Location: 4},
		&record.EBBuy{Bid: record.Bid{Quantity: 0, QuantitySig: sig, Pub: alice, Location: 4}},
		&record.EBSell{Bid: record.Bid{Quantity: 18446744073709551615, QuantitySig: sig, Pub: dave, Location: 4}},
		&record.BidAccept{TotalBuy: 10, TotalSell: 4, Pub: bob, Location: 4},
	}
}

func TestRoundTrip(t *testing.T) {
	for i, object := range sampleObjects() {
		packed, err := record.Pack(object)
		require.Nil(t, err, "%d: pack error", i)

		unpacked, err := packed.Unpack()
		require.Nil(t, err, "%d: unpack error", i)
		assert.Equal(t, object.Type(), unpacked.Type(), "%d: type changed", i)
		assert.Equal(t, object, unpacked, "%d: object changed", i)

		repacked, err := record.Pack(unpacked)
		require.Nil(t, err, "%d: repack error", i)
		assert.Equal(t, packed, repacked, "%d: packing is not canonical", i)
	}
}

func TestPackedLayout(t *testing.T) {
	packed, err := record.Pack(&record.InitToken{Location: 3})
	require.Nil(t, err, "pack error")
	assert.Equal(t, `{"location":3,"type":"InitToken"}`, string(packed), "wrong layout")

	alice := fixtures.Alice.Account()
	packed, err = record.Pack(&record.SurgeClient{Pub: alice, Location: 1})
	require.Nil(t, err, "pack error")
	assert.Equal(t, `{"location":1,"pub":"`+alice.String()+`","type":"SurgeClient"}`, string(packed), "wrong layout")
}

// every field is written with its value, never as null
func TestPackedValues(t *testing.T) {
	packed, err := record.Pack(&record.InitToken{Location: 7})
	require.Nil(t, err, "pack error")
	assert.Equal(t, `{"location":7,"type":"InitToken"}`, string(packed), "wrong layout")

	bob := fixtures.Bob.Account()
	packed, err = record.Pack(&record.BidAccept{TotalBuy: 18446744073709551615, TotalSell: 0, Pub: bob, Location: 2})
	require.Nil(t, err, "pack error")
	assert.Equal(t, `{"location":2,"pub":"`+bob.String()+`","total_buy":18446744073709551615,"total_sell":0,"type":"BidAccept"}`, string(packed), "wrong layout")
}

// a null value is never decoded as a zero value
func TestUnpackNullIsNotZero(t *testing.T) {
	alice := fixtures.Alice.Account().String()

	items := []string{
		`{"location":null,"type":"InitToken"}`,
		`{"location":1,"pub":null,"quantity":null,"quantity_sig":"00","type":"EBBuy"}`,
		`{"location":1,"pub":"` + alice + `","total_buy":7,"total_sell":null,"type":"BidAccept"}`,
		`{"location":1,"pub":"` + alice + `","quantity":3,"quantity_sig":null,"type":"EBSell"}`,
	}

	for i, item := range items {
		object, err := record.Packed(item).Unpack()
		assert.Nil(t, object, "%d: object decoded", i)
		assert.True(t, fault.IsErrNullField(err), "%d: wrong error: %v", i, err)
	}
}

// keys differing only in case are not the schema's keys
func TestUnpackKeysAreExact(t *testing.T) {
	alice := fixtures.Alice.Account().String()

	packed := record.Packed(`{"Quantity":9,"location":1,"pub":"` + alice + `","quantity":5,"quantity_sig":"00","type":"EBBuy"}`)
	object, err := packed.Unpack()
	require.Nil(t, err, "unpack error")
	buy, ok := object.(*record.EBBuy)
	require.True(t, ok, "wrong type: %T", object)
	assert.Equal(t, uint64(5), buy.Quantity, "wrong quantity")

	_, err = record.Packed(`{"Location":4,"type":"InitToken"}`).Unpack()
	assert.True(t, fault.IsErrMissingField(err), "wrong error: %v", err)
}

func TestPackRejectsUnset(t *testing.T) {
	_, err := record.Pack(&record.SurgeClient{Location: 1})
	assert.True(t, fault.IsErrNullField(err), "nil pub packed: %v", err)

	_, err = record.Pack(&record.BidProof{BidType: record.EBBuyType, QuantitySig: account.Signature{1}})
	assert.True(t, fault.IsErrNullField(err), "nil pub packed: %v", err)

	_, err = record.Pack(nil)
	assert.Equal(t, fault.ErrMalformedRecord, err, "nil object packed")

	_, err = record.Pack(&record.SurgeClient{Pub: &account.Account{}, Location: 1})
	assert.True(t, fault.IsErrRecord(err), "empty account packed: %v", err)
}

func TestUnpackErrors(t *testing.T) {
	alice := fixtures.Alice.Account().String()

	items := []struct {
		name   string
		packed string
		check  func(error) bool
	}{
		{"not JSON", `{"type":`, fault.IsErrRecord},
		{"not an object", `[1,2]`, fault.IsErrRecord},
		{"empty", ``, fault.IsErrRecord},
		{"no type", `{"location":1}`, fault.IsErrMissingField},
		{"null type", `{"type":null,"location":1}`, fault.IsErrNullField},
		{"numeric type", `{"type":5,"location":1}`, fault.IsErrRecord},
		{"unknown type", `{"type":"Ticket","location":1}`, fault.IsErrTypeMismatch},
		{"missing location", `{"type":"InitToken"}`, fault.IsErrMissingField},
		{"null location", `{"type":"InitToken","location":null}`, fault.IsErrNullField},
		{"negative location", `{"type":"InitToken","location":-1}`, fault.IsErrRecord},
		{"fractional location", `{"type":"InitToken","location":1.5}`, fault.IsErrRecord},
		{"missing pub", `{"type":"SurgeClient","location":1}`, fault.IsErrMissingField},
		{"null pub", `{"type":"SurgeClient","pub":null,"location":1}`, fault.IsErrNullField},
		{"bad pub", `{"type":"SurgeClient","pub":"notakey","location":1}`, fault.IsErrRecord},
		{"missing granted_to", `{"type":"CSCVoteToken","granted_by":"` + alice + `","location":1}`, fault.IsErrMissingField},
		{"missing quantity", `{"type":"EBBuy","quantity_sig":"00","pub":"` + alice + `","location":1}`, fault.IsErrMissingField},
		{"null quantity", `{"type":"EBSell","quantity":null,"quantity_sig":"00","pub":"` + alice + `","location":1}`, fault.IsErrNullField},
		{"string quantity", `{"type":"EBSell","quantity":"5","quantity_sig":"00","pub":"` + alice + `","location":1}`, fault.IsErrRecord},
		{"bad signature hex", `{"type":"BidProof","bid_type":"EBBuy","quantity_sig":"zz","pub":"` + alice + `","location":1}`, fault.IsErrRecord},
		{"missing total_sell", `{"type":"BidAccept","total_buy":1,"pub":"` + alice + `","location":1}`, fault.IsErrMissingField},
	}

	for _, item := range items {
		_, err := record.Packed(item.packed).Unpack()
		assert.True(t, item.check(err), "%s: wrong error: %v", item.name, err)
	}
}

// a present zero value is not a missing value
func TestZeroIsPresent(t *testing.T) {
	alice := fixtures.Alice.Account().String()
	packed := record.Packed(`{"type":"EBBuy","quantity":0,"quantity_sig":"00","pub":"` + alice + `","location":0}`)

	object, err := packed.Unpack()
	require.Nil(t, err, "unpack error")
	buy, ok := object.(*record.EBBuy)
	require.True(t, ok, "wrong type: %T", object)
	assert.Equal(t, uint64(0), buy.Quantity, "wrong quantity")
	assert.Equal(t, uint64(0), buy.GetLocation(), "wrong location")
}

func TestUnpackAs(t *testing.T) {
	packed, err := record.Pack(&record.VoteSlipToken{Pub: fixtures.Bob.Account(), Location: 2})
	require.Nil(t, err, "pack error")

	object, err := packed.UnpackAs(record.VoteSlipTokenType)
	require.Nil(t, err, "unpack error")
	assert.Equal(t, record.VoteSlipTokenType, object.Type(), "wrong type")

	_, err = packed.UnpackAs(record.EBTokenType, record.SurgeClientType)
	assert.True(t, fault.IsErrTypeMismatch(err), "wrong type accepted: %v", err)
}

func TestPackedText(t *testing.T) {
	packed := record.Packed{0x7b, 0x7d}
	text, err := packed.MarshalText()
	require.Nil(t, err, "marshal error")
	assert.Equal(t, "7b7d", string(text), "wrong text")

	var back record.Packed
	require.Nil(t, back.UnmarshalText(text), "unmarshal error")
	assert.Equal(t, packed, back, "record changed")
}

func TestRegistry(t *testing.T) {
	names := record.Names()
	assert.Equal(t, 11, len(names), "wrong number of types")
	assert.Equal(t, record.BidAcceptType, names[0], "not sorted")

	assert.Equal(t, []string{"type", "pub", "location"}, record.RequiredFields(record.SurgeClientType), "wrong fields")
	assert.Nil(t, record.RequiredFields(record.TypeName("Ticket")), "unknown type has fields")

	assert.True(t, record.IsBidType(record.EBBuyType), "EBBuy")
	assert.True(t, record.IsBidType(record.EBSellType), "EBSell")
	assert.False(t, record.IsBidType(record.BidProofType), "BidProof")
}
