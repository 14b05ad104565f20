// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - a reference host that applies checked transitions
//
// Objects are held as a multiset keyed by the digest of their packed
// record: identical records (e.g. the bootstrap tokens of one shard)
// are counted, not duplicated.  A transaction is applied only after
// every input is found unspent and its checker accepts; the inputs are
// then consumed and the outputs produced in one storage batch.
//
// A transaction is applied at most once per auction round of its
// location; accepting bids at a location starts its next round.
package ledger

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/surged/counter"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/limitedset"
	"github.com/bitmark-inc/surged/storage"
)

const (
	recentTransactions = 1000
	cleanupInterval    = 10 * time.Minute
)

// keys in the counters pool
var (
	acceptedKey = []byte("accepted")
	rejectedKey = []byte("rejected")
	genesisKey  = []byte("genesis")
	roundPrefix = []byte("round")
)

// globals
type globalDataType struct {
	sync.Mutex
	log      *logger.L
	recent   *limitedset.LimitedSet
	verdicts *cache.Cache
	accepted counter.Counter
	rejected counter.Counter
	replayed counter.Counter
}

var globalData globalDataType

// Initialise - start the ledger over an initialised storage
//
// verdicts of the checkers are cached for cacheExpiry
func Initialise(cacheExpiry time.Duration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("ledger")
	if nil == log {
		return fault.ErrInvalidLoggerChannel
	}

	globalData.recent = limitedset.New(recentTransactions)
	globalData.verdicts = cache.New(cacheExpiry, cleanupInterval)

	n, _ := storage.Pool.Counters.GetN(acceptedKey)
	globalData.accepted.Set(n)
	n, _ = storage.Pool.Counters.GetN(rejectedKey)
	globalData.rejected.Set(n)
	globalData.replayed.Set(0)

	globalData.log = log
	log.Infof("starting… accepted: %d  rejected: %d", globalData.accepted.Uint64(), globalData.rejected.Uint64())
	return nil
}

// Finalise - stop the ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.log {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.log = nil
	globalData.recent = nil
	globalData.verdicts = nil
	return nil
}

// Statistics - counts of transactions seen by the ledger
type Statistics struct {
	Accepted uint64 `json:"accepted"`
	Rejected uint64 `json:"rejected"`
	Replayed uint64 `json:"replayed"`
}

// Stats - the current statistics
//
// accepted and rejected persist across restarts; replayed does not
func Stats() Statistics {
	return Statistics{
		Accepted: globalData.accepted.Uint64(),
		Rejected: globalData.rejected.Uint64(),
		Replayed: globalData.replayed.Uint64(),
	}
}
