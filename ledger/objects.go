// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/merkle"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/storage"
)

// ObjectID - the identity of a packed record
func ObjectID(packed record.Packed) merkle.Digest {
	return merkle.NewDigest(packed)
}

// stored object value: count ++ packed record
func objectValue(count uint64, packed record.Packed) []byte {
	value := make([]byte, 8, 8+len(packed))
	binary.BigEndian.PutUint64(value, count)
	return append(value, packed...)
}

// number of unspent copies of an object and its record
func getObject(id merkle.Digest) (uint64, record.Packed) {
	value := storage.Pool.Objects.Get(id[:])
	if nil == value {
		return 0, nil
	}
	if len(value) < 9 {
		logger.Panicf("ledger: truncated object: %v", id)
	}
	return binary.BigEndian.Uint64(value[:8]), record.Packed(value[8:])
}

// counters pool key of a location's auction round
func roundKey(location uint64) []byte {
	key := make([]byte, len(roundPrefix), len(roundPrefix)+8)
	copy(key, roundPrefix)
	return append(key, locationBytes(location)...)
}

func getRound(location uint64) uint64 {
	n, _ := storage.Pool.Counters.GetN(roundKey(location))
	return n
}

// transactions pool key: location ++ round ++ transactionId
//
// an identical transaction may be applied again once the auction round
// of its location has been settled
func appliedKey(location uint64, round uint64, id merkle.Digest) []byte {
	key := make([]byte, 16, 16+merkle.DigestLength)
	binary.BigEndian.PutUint64(key, location)
	binary.BigEndian.PutUint64(key[8:], round)
	return append(key, id[:]...)
}

// every transition acts at the location of its first input
func transactionLocation(tx *checker.Transaction) uint64 {
	if 0 == len(tx.Inputs) {
		return 0
	}
	object, err := tx.Inputs[0].Unpack()
	if nil != err {
		return 0
	}
	return object.GetLocation()
}

func locationBytes(location uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, location)
	return b
}

// index key: location ++ type ++ 0x00 ++ objectId
func indexPrefix(location uint64, objectType record.TypeName) []byte {
	key := make([]byte, 8, 8+len(objectType)+1+merkle.DigestLength)
	binary.BigEndian.PutUint64(key, location)
	key = append(key, string(objectType)...)
	return append(key, 0x00)
}

func indexKey(object record.Object, id merkle.Digest) []byte {
	return append(indexPrefix(object.GetLocation(), object.Type()), id[:]...)
}

// GetObject - an unspent object and the number of copies held
func GetObject(id merkle.Digest) (record.Packed, uint64) {
	count, packed := getObject(id)
	return packed, count
}

// GetObjects - all unspent objects of a type at a location
//
// an object held more than once is returned once per copy
func GetObjects(location uint64, objectType record.TypeName) ([]record.Packed, error) {
	ids := []merkle.Digest{}
	cursor := storage.Pool.ObjectIndex.NewFetchCursor().Prefix(indexPrefix(location, objectType))
	err := cursor.Map(func(key []byte, value []byte) error {
		var id merkle.Digest
		if len(key) < merkle.DigestLength {
			return fault.ErrNotDigest
		}
		if err := merkle.DigestFromBytes(&id, key[len(key)-merkle.DigestLength:]); nil != err {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if nil != err {
		return nil, err
	}

	objects := make([]record.Packed, 0, len(ids))
	for _, id := range ids {
		count, packed := getObject(id)
		for i := uint64(0); i < count; i += 1 {
			objects = append(objects, packed)
		}
	}
	return objects, nil
}

// change of the number of copies of one object within a transaction
type delta struct {
	packed record.Packed
	change int64
}

// accumulate consumption and production by object id
func deltas(inputs []record.Packed, outputs []record.Packed) map[merkle.Digest]*delta {
	changes := make(map[merkle.Digest]*delta, len(inputs)+len(outputs))
	add := func(packed record.Packed, n int64) {
		id := ObjectID(packed)
		d, ok := changes[id]
		if !ok {
			d = &delta{packed: packed}
			changes[id] = d
		}
		d.change += n
	}
	for _, packed := range inputs {
		add(packed, -1)
	}
	for _, packed := range outputs {
		add(packed, 1)
	}
	return changes
}

// every consumed object must be held at least as many times as it is consumed
func checkUnspent(inputs []record.Packed) error {
	needed := make(map[merkle.Digest]uint64, len(inputs))
	for _, packed := range inputs {
		needed[ObjectID(packed)] += 1
	}
	for id, n := range needed {
		count, _ := getObject(id)
		if count < n {
			return fault.ErrInputNotFound
		}
	}
	return nil
}

// queue the object and index changes into a storage transaction
func writeObjects(trx storage.Transaction, changes map[merkle.Digest]*delta) error {
	for id, d := range changes {
		if 0 == d.change {
			continue
		}
		count, _ := getObject(id)
		newCount := uint64(int64(count) + d.change)

		object, err := d.packed.Unpack()
		if nil != err {
			return err
		}

		key := id[:]
		switch {
		case 0 == newCount:
			trx.Delete(storage.Pool.Objects, key)
			trx.Delete(storage.Pool.ObjectIndex, indexKey(object, id))
		default:
			trx.Put(storage.Pool.Objects, key, objectValue(newCount, d.packed))
			if 0 == count {
				trx.Put(storage.Pool.ObjectIndex, indexKey(object, id), []byte{})
			}
		}
	}
	return nil
}
