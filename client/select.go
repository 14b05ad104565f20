// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"github.com/bitmark-inc/surged/record"
)

type bidKey struct {
	location    uint64
	quantitySig string
}

// SelectBids - the revealed bids whose commitment is among the proofs
//
// a bid is kept only if a BidProof at the same location carries its
// quantity signature; each commitment is used at most once and records
// that do not decode are skipped
func SelectBids(proofs []record.Packed, bids []record.Packed) []record.Packed {

	bidders := make(map[bidKey]struct{}, len(proofs))
	for _, packed := range proofs {
		o, err := packed.UnpackAs(record.BidProofType)
		if nil != err {
			continue
		}
		proof := o.(*record.BidProof)
		bidders[bidKey{proof.Location, string(proof.QuantitySig)}] = struct{}{}
	}

	selected := make([]record.Packed, 0, len(bids))
	for _, packed := range bids {
		o, err := packed.UnpackAs(record.EBBuyType, record.EBSellType)
		if nil != err {
			continue
		}
		bid := o.(record.Revealed).GetBid()
		key := bidKey{bid.Location, string(bid.QuantitySig)}
		if _, ok := bidders[key]; !ok {
			continue
		}
		delete(bidders, key)
		selected = append(selected, packed)
	}
	return selected
}
