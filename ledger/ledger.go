// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/merkle"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/storage"
	"github.com/bitmark-inc/surged/transition"
)

// name recorded against the genesis outputs in the transactions pool
const genesisName = "init"

// cached result of a checker run
type verdict struct {
	err error
}

// Apply - validate a transaction and, if accepted, consume its inputs
// and store its outputs
//
// returns the transaction id
func Apply(name string, tx *checker.Transaction) (merkle.Digest, error) {
	globalData.Lock()
	defer globalData.Unlock()

	log := globalData.log
	if nil == log {
		return merkle.Digest{}, fault.ErrNotInitialised
	}

	id, err := tx.ID()
	if nil != err {
		return merkle.Digest{}, err
	}

	location := transactionLocation(tx)
	round := getRound(location)
	key := appliedKey(location, round, id)
	recentKey := merkle.NewDigest(key)

	if globalData.recent.Exists(recentKey) || storage.Pool.Transactions.Has(key) {
		globalData.replayed.Increment()
		log.Debugf("replay of: %s  id: %v  location: %d  round: %d", name, id, location, round)
		return id, fault.ErrTransactionAlreadyApplied
	}

	err = checkUnspent(tx.Inputs)
	if nil != err {
		log.Debugf("%s: id: %v  error: %s", name, id, err)
		return id, err
	}

	err = validate(name, id, tx)
	if nil != err {
		n := globalData.rejected.Increment()
		log.Warnf("reject: %s  id: %v  kind: %s  error: %s", name, id, fault.Kind(err), err)
		if e := putCounter(rejectedKey, n); nil != e {
			log.Errorf("persist rejected counter error: %s", e)
		}
		return id, err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return id, err
	}

	err = writeObjects(trx, deltas(tx.Inputs, tx.Outputs))
	if nil != err {
		trx.Abort()
		return id, err
	}

	n := globalData.accepted.Uint64() + 1
	trx.Put(storage.Pool.Transactions, key, []byte(name))
	trx.PutN(storage.Pool.Counters, acceptedKey, n)

	// settlement closes the location's auction round
	if checker.AcceptBids == name {
		trx.PutN(storage.Pool.Counters, roundKey(location), round+1)
	}

	err = trx.Commit()
	if nil != err {
		log.Errorf("commit: %s  id: %v  error: %s", name, id, err)
		return id, err
	}

	globalData.recent.Add(recentKey)
	globalData.accepted.Set(n)

	log.Infof("accept: %s  id: %v  inputs: %d  outputs: %d", name, id, len(tx.Inputs), len(tx.Outputs))
	return id, nil
}

// Round - the number of settled auctions at a location
func Round(location uint64) uint64 {
	globalData.Lock()
	defer globalData.Unlock()

	return getRound(location)
}

// Check - run the checker without changing the ledger
func Check(name string, tx *checker.Transaction) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.log {
		return fault.ErrNotInitialised
	}

	id, err := tx.ID()
	if nil != err {
		return err
	}
	return validate(name, id, tx)
}

// the verdict depends only on the transition and the transaction
func validate(name string, id merkle.Digest, tx *checker.Transaction) error {
	key := name + ":" + id.String()
	if v, found := globalData.verdicts.Get(key); found {
		return v.(verdict).err
	}

	err := checker.Validate(name, tx)
	globalData.verdicts.Set(key, verdict{err: err}, cache.DefaultExpiration)
	return err
}

func putCounter(key []byte, n uint64) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	trx.PutN(storage.Pool.Counters, key, n)
	return trx.Commit()
}

// Genesis - store the bootstrap tokens of an empty ledger
//
// can only succeed once for a given database
func Genesis(shards uint64, clients uint64) (merkle.Digest, error) {
	globalData.Lock()
	defer globalData.Unlock()

	log := globalData.log
	if nil == log {
		return merkle.Digest{}, fault.ErrNotInitialised
	}

	if storage.Pool.Counters.Has(genesisKey) {
		return merkle.Digest{}, fault.ErrAlreadyInitialised
	}

	result, err := transition.Init(shards, clients)
	if nil != err {
		return merkle.Digest{}, err
	}
	tx := transition.Assemble([]record.Packed{}, result)
	id, err := tx.ID()
	if nil != err {
		return merkle.Digest{}, err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return id, err
	}

	err = writeObjects(trx, deltas(nil, tx.Outputs))
	if nil != err {
		trx.Abort()
		return id, errors.Wrap(err, "genesis")
	}
	trx.Put(storage.Pool.Transactions, id[:], []byte(genesisName))
	trx.Put(storage.Pool.Counters, genesisKey, id[:])

	err = trx.Commit()
	if nil != err {
		return id, err
	}

	log.Infof("genesis: id: %v  shards: %d  clients: %d  tokens: %d", id, shards, clients, len(tx.Outputs))
	return id, nil
}
