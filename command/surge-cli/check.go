// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/record"
)

var (
	ErrRequiredCandidate = fault.InvalidError("candidate is required")
	ErrRequiredKey       = fault.InvalidError("private key is required")
	ErrRequiredObjects   = fault.InvalidError("at least one packed object is required")
	ErrRequiredPacked    = fault.InvalidError("packed object is required")
	ErrRequiredQuantity  = fault.InvalidError("quantity is required")
)

// private key is required
func checkKey(key string) (*account.PrivateKey, error) {
	if "" == key {
		return nil, ErrRequiredKey
	}
	return account.PrivateKeyFromBase58(key)
}

// candidate public key is required
func checkCandidate(candidate string) (*account.Account, error) {
	if "" == candidate {
		return nil, ErrRequiredCandidate
	}
	return account.AccountFromBase58(candidate)
}

// a single hex packed object
func checkPacked(text string) (record.Packed, error) {
	if "" == text {
		return nil, ErrRequiredPacked
	}
	var packed record.Packed
	if err := packed.UnmarshalText([]byte(text)); nil != err {
		return nil, err
	}
	if _, err := packed.Unpack(); nil != err {
		return nil, err
	}
	return packed, nil
}

// one or more hex packed objects
func checkPackedList(texts []string) ([]record.Packed, error) {
	if 0 == len(texts) {
		return nil, ErrRequiredObjects
	}
	list := make([]record.Packed, 0, len(texts))
	for _, text := range texts {
		packed, err := checkPacked(text)
		if nil != err {
			return nil, err
		}
		list = append(list, packed)
	}
	return list, nil
}

// zero is never a meaningful bid
func checkQuantity(quantity uint64) (uint64, error) {
	if 0 == quantity {
		return 0, ErrRequiredQuantity
	}
	return quantity, nil
}
