// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signature - proofs of authorisation attached to transactions
//
// A signature is always taken over the SHA3-256 digest of a message
// that names the action being authorised: DefaultMessage for ordinary
// transitions, QuantityMessage for a bid commitment.
package signature

import (
	"strconv"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/merkle"
)

// DefaultMessage - signed when no other message is given
const DefaultMessage = "proof"

// QuantityMessage - the commitment message binding a bid quantity to a bidder
//
// format: "<decimal quantity>|<base58 public key>"
func QuantityMessage(quantity uint64, pub *account.Account) []byte {
	return []byte(strconv.FormatUint(quantity, 10) + "|" + pub.String())
}

// Generate - sign the default message
func Generate(privateKey *account.PrivateKey) (account.Signature, error) {
	return GenerateFor(privateKey, []byte(DefaultMessage))
}

// GenerateFor - sign the digest of a message
func GenerateFor(privateKey *account.PrivateKey, message []byte) (account.Signature, error) {
	if nil == privateKey || nil == privateKey.PrivateKeyInterface {
		return nil, fault.ErrNotPrivateKey
	}
	digest := merkle.NewDigest(message)
	return privateKey.Sign(digest[:])
}

// Validate - check a signature over the default message
func Validate(sig account.Signature, pub *account.Account) error {
	return ValidateFor(sig, pub, []byte(DefaultMessage))
}

// ValidateFor - check a signature over the digest of a message
//
// any malformed key or signature results in ErrInvalidSignature, never a panic
func ValidateFor(sig account.Signature, pub *account.Account, message []byte) (err error) {
	defer func() {
		if r := recover(); nil != r {
			err = fault.ErrInvalidSignature
		}
	}()

	if nil == pub || nil == pub.AccountInterface {
		return fault.ErrInvalidSignature
	}
	digest := merkle.NewDigest(message)
	if nil != pub.CheckSignature(digest[:], sig) {
		return fault.ErrInvalidSignature
	}
	return nil
}
