// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package checker

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/signature"
	"github.com/bitmark-inc/surged/util"
)

// submit_bid_proof:
//   inputs:     EBToken
//   parameters: bid type, signature
//   outputs:    BidProof, EBToken
//
// the quantity signature cannot be checked until the quantity is
// revealed by submit_bid
func submitBidProof(tx *Transaction) error {

	err := arity{inputs: exactly(1), parameters: 2, outputs: 2}.check(tx)
	if nil != err {
		return err
	}

	o, err := unpack(tx.Inputs[0], "eb token", record.EBTokenType)
	if nil != err {
		return err
	}
	oldToken := o.(*record.EBToken)

	o, err = unpack(tx.Outputs[0], "bid proof", record.BidProofType)
	if nil != err {
		return err
	}
	proof := o.(*record.BidProof)

	o, err = unpack(tx.Outputs[1], "new eb token", record.EBTokenType)
	if nil != err {
		return err
	}
	newToken := o.(*record.EBToken)

	if !record.IsBidType(proof.BidType) {
		return errors.Wrapf(fault.ErrInvalidBidType, "bid proof: %q", proof.BidType)
	}
	if string(tx.Parameters[0]) != string(proof.BidType) {
		return errors.Wrapf(fault.ErrInvalidBidType, "bid proof: %q  parameter: %q", proof.BidType, []byte(tx.Parameters[0]))
	}

	err = firstError(
		equalAccount("bid proof pub", oldToken.Pub, proof.Pub),
		equalAccount("new eb token pub", oldToken.Pub, newToken.Pub),
		equalLocation("bid proof", oldToken.Location, proof.Location),
		equalLocation("new eb token", oldToken.Location, newToken.Location),
	)
	if nil != err {
		return err
	}

	return signature.Validate(account.Signature(tx.Parameters[1]), oldToken.Pub)
}

// submit_bid:
//   inputs:     BidProof
//   parameters: quantity, signature
//   outputs:    EBBuy | EBSell
func submitBid(tx *Transaction) error {

	err := arity{inputs: exactly(1), parameters: 2, outputs: 1}.check(tx)
	if nil != err {
		return err
	}

	o, err := unpack(tx.Inputs[0], "bid proof", record.BidProofType)
	if nil != err {
		return err
	}
	proof := o.(*record.BidProof)

	o, err = tx.Outputs[0].Unpack()
	if nil != err {
		return errors.Wrap(err, "bid")
	}
	if !record.IsBidType(o.Type()) {
		return errors.Wrapf(fault.ErrInvalidBidType, "bid: %q", o.Type())
	}
	if o.Type() != proof.BidType {
		return errors.Wrapf(fault.ErrInvalidBidType, "bid: %q  proof: %q", o.Type(), proof.BidType)
	}
	bid := o.(record.Revealed).GetBid()

	quantity, ok := util.ExactVarint64(tx.Parameters[0])
	if !ok {
		return errors.Wrapf(fault.ErrInvalidQuantity, "parameter: %x", []byte(tx.Parameters[0]))
	}

	err = firstError(
		equalAccount("bid pub", proof.Pub, bid.Pub),
		equalSignature("bid quantity sig", proof.QuantitySig, bid.QuantitySig),
		equalLocation("bid", proof.Location, bid.Location),
		equalQuantity("bid quantity", quantity, bid.Quantity),
	)
	if nil != err {
		return err
	}

	if err := signature.Validate(account.Signature(tx.Parameters[1]), proof.Pub); nil != err {
		return err
	}

	// the revealed quantity must be the one committed to by the proof
	err = signature.ValidateFor(proof.QuantitySig, proof.Pub, signature.QuantityMessage(bid.Quantity, bid.Pub))
	if nil != err {
		return errors.Wrapf(err, "quantity: %d", bid.Quantity)
	}
	return nil
}

// accept_bids:
//   inputs:     (EBBuy | EBSell)...
//   parameters: pub, signature
//   outputs:    BidAccept
func acceptBids(tx *Transaction) error {

	err := arity{inputs: atLeast(1), parameters: 2, outputs: 1}.check(tx)
	if nil != err {
		return err
	}

	o, err := unpack(tx.Outputs[0], "bid accept", record.BidAcceptType)
	if nil != err {
		return err
	}
	accept := o.(*record.BidAccept)

	err = equalAccountParameter("bid accept pub", accept.Pub, tx.Parameters[0])
	if nil != err {
		return err
	}

	totals, err := SumBids(tx.Inputs, accept.Location)
	if nil != err {
		return err
	}

	if err := signature.Validate(account.Signature(tx.Parameters[1]), accept.Pub); nil != err {
		return err
	}

	if totals.Buy != accept.TotalBuy || totals.Sell != accept.TotalSell {
		return errors.Wrapf(
			fault.ErrTotalMismatch,
			"buy: %d  declared: %d  sell: %d  declared: %d",
			totals.Buy, accept.TotalBuy, totals.Sell, accept.TotalSell,
		)
	}
	return nil
}

// Totals - quantities of accepted bids partitioned by type
type Totals struct {
	Buy  uint64
	Sell uint64
}

// SumBids - total the quantities of revealed bids that share a location
//
// each bid may appear only once; a sum that would overflow is an error
func SumBids(bids []record.Packed, location uint64) (Totals, error) {

	totals := Totals{}
	seen := make(map[string]struct{}, len(bids))

	for i, packed := range bids {
		position := "input[" + strconv.Itoa(i) + "]"
		o, err := unpack(packed, position, record.EBBuyType, record.EBSellType)
		if nil != err {
			return Totals{}, err
		}
		bid := o.(record.Revealed).GetBid()

		if err := equalLocation(position, location, bid.Location); nil != err {
			return Totals{}, err
		}

		key := string(bid.QuantitySig)
		if _, ok := seen[key]; ok {
			return Totals{}, errors.Wrapf(fault.ErrBidAlreadyIncluded, "%s: quantity sig: %s", position, bid.QuantitySig)
		}
		seen[key] = struct{}{}

		total := &totals.Buy
		if record.EBSellType == o.Type() {
			total = &totals.Sell
		}
		if *total > ^uint64(0)-bid.Quantity {
			return Totals{}, errors.Wrapf(fault.ErrQuantityOverflow, "%s: %s total: %d  quantity: %d", position, o.Type(), *total, bid.Quantity)
		}
		*total += bid.Quantity
	}
	return totals, nil
}

func equalSignature(position string, a account.Signature, b account.Signature) error {
	if !bytes.Equal(a, b) {
		return errors.Wrapf(fault.ErrNotEqual, "%s: %s != %s", position, a, b)
	}
	return nil
}

func equalQuantity(position string, a uint64, b uint64) error {
	if a != b {
		return errors.Wrapf(fault.ErrNotEqual, "%s: %d != %d", position, a, b)
	}
	return nil
}
