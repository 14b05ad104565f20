// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package quorum - count distinct voters for admission transitions
package quorum

import (
	"github.com/bitmark-inc/surged/record"
)

// RequiredVotes - distinct voters needed to admit a client or elevate
// a representative
//
// a protocol constant: never taken from a transaction
const RequiredVotes = 2

// CountDistinctVoters - number of different granting keys among the votes
//
// voters are keyed by the canonical Base58 form of their public key so
// repeated votes from one voter count once regardless of order
func CountDistinctVoters(votes []record.Vote) int {
	voters := make(map[string]struct{}, len(votes))
	for _, vote := range votes {
		if nil == vote {
			continue
		}
		voter := vote.Voter()
		if nil == voter || nil == voter.AccountInterface {
			continue
		}
		voters[voter.String()] = struct{}{}
	}
	return len(voters)
}

// MeetsThreshold - true if count reaches the threshold
func MeetsThreshold(count int, threshold int) bool {
	return count >= threshold
}
