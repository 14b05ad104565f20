// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"sort"
)

// field names common to several types
const (
	typeField     = "type"
	locationField = "location"
)

// per type: the mandatory fields and a constructor for decoding
type schema struct {
	fields []string
	create func() Object
}

var registry = map[TypeName]schema{
	InitTokenType: {
		fields: []string{typeField, locationField},
		create: func() Object { return &InitToken{} },
	},
	SurgeClientType: {
		fields: []string{typeField, "pub", locationField},
		create: func() Object { return &SurgeClient{} },
	},
	VoteSlipTokenType: {
		fields: []string{typeField, "pub", locationField},
		create: func() Object { return &VoteSlipToken{} },
	},
	EBTokenType: {
		fields: []string{typeField, "pub", locationField},
		create: func() Object { return &EBToken{} },
	},
	CSCVoteTokenType: {
		fields: []string{typeField, "granted_by", "granted_to", locationField},
		create: func() Object { return &CSCVoteToken{} },
	},
	SREPClientType: {
		fields: []string{typeField, "pub", locationField},
		create: func() Object { return &SREPClient{} },
	},
	SREPVoteTokenType: {
		fields: []string{typeField, "granted_by", "granted_to", locationField},
		create: func() Object { return &SREPVoteToken{} },
	},
	BidProofType: {
		fields: []string{typeField, "bid_type", "quantity_sig", "pub", locationField},
		create: func() Object { return &BidProof{} },
	},
	EBBuyType: {
		fields: []string{typeField, "quantity", "quantity_sig", "pub", locationField},
		create: func() Object { return &EBBuy{} },
	},
	EBSellType: {
		fields: []string{typeField, "quantity", "quantity_sig", "pub", locationField},
		create: func() Object { return &EBSell{} },
	},
	BidAcceptType: {
		fields: []string{typeField, "total_buy", "total_sell", "pub", locationField},
		create: func() Object { return &BidAccept{} },
	},
}

// Names - sorted list of all registered object types
func Names() []TypeName {
	names := make([]TypeName, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// RequiredFields - the mandatory fields of a type, nil if not registered
func RequiredFields(t TypeName) []string {
	s, ok := registry[t]
	if !ok {
		return nil
	}
	return append([]string{}, s.fields...)
}
