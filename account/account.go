// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/util"
)

// enumeration of supported key algorithms
const (
	// zero is not a valid algorithm
	invalidAlgorithm = iota
	ED25519          = iota
	SECP256K1        = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01

	algorithmShift = 4 // shift 4 bits to get algorithm

	secp256k1PublicKeySize  = 33 // compressed point
	secp256k1PrivateKeySize = 32
	secp256k1SignatureSize  = 64 // R || S, recovery id is not kept
	secp256k1DigestSize     = 32
)

// Account - base type for accounts (public keys)
type Account struct {
	AccountInterface
}

// AccountInterface - methods common to all key algorithms
type AccountInterface interface {
	KeyType() int
	PublicKeyBytes() []byte
	CheckSignature(digest []byte, signature Signature) error
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
}

// ED25519Account - for ed25519 signatures
type ED25519Account struct {
	PublicKey []byte
}

// SECP256K1Account - for ECDSA signatures on the secp256k1 curve
type SECP256K1Account struct {
	PublicKey []byte
}

// AccountFromBase58 - this converts a Base58 encoded string and returns an account
//
// one of the specific account types are returned using the base "AccountInterface"
// interface type to allow individual methods to be called.
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded := util.FromBase58(accountBase58Encoded)
	if len(accountDecoded) <= checksumLength {
		return nil, fault.ErrCannotDecodeAccount
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	return AccountFromBytes(accountDecoded[:checksumStart])
}

// AccountFromBytes - this converts a byte encoded buffer and returns an account
//
// the buffer is copied so the account does not alias the caller's data
func AccountFromBytes(accountBytes []byte) (*Account, error) {

	keyVariant, keyVariantLength := util.FromVarint64(accountBytes)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm <= invalidAlgorithm || keyAlgorithm >= algorithmLimit {
		return nil, fault.ErrInvalidKeyType
	}

	publicKey := make([]byte, len(accountBytes)-keyVariantLength)
	copy(publicKey, accountBytes[keyVariantLength:])

	switch keyAlgorithm {
	case ED25519:
		if len(publicKey) != ed25519.PublicKeySize {
			return nil, fault.ErrInvalidKeyLength
		}
		return &Account{
			AccountInterface: &ED25519Account{
				PublicKey: publicKey,
			},
		}, nil

	case SECP256K1:
		if len(publicKey) != secp256k1PublicKeySize {
			return nil, fault.ErrInvalidKeyLength
		}
		if _, err := crypto.DecompressPubkey(publicKey); nil != err {
			return nil, fault.ErrNotPublicKey
		}
		return &Account{
			AccountInterface: &SECP256K1Account{
				PublicKey: publicKey,
			},
		}, nil

	default:
		return nil, fault.ErrInvalidKeyType
	}
}

// UnmarshalText - convert a Base58 text form into an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.AccountInterface = a.AccountInterface
	return nil
}

// Equal - true if both accounts hold the same key
//
// nil accounts are never equal to anything
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other || nil == account.AccountInterface || nil == other.AccountInterface {
		return false
	}
	return bytes.Equal(account.Bytes(), other.Bytes())
}

// encode key variant, key and a checksum in base58
func toBase58(buffer []byte) string {
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// ED25519
// -------

// KeyType - key type code (see enumeration above)
func (account *ED25519Account) KeyType() int {
	return ED25519
}

// PublicKeyBytes - fetch the public key as byte slice
func (account *ED25519Account) PublicKeyBytes() []byte {
	return account.PublicKey[:]
}

// CheckSignature - check the signature of a digest
func (account *ED25519Account) CheckSignature(digest []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(account.PublicKey[:], digest, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// Bytes - byte slice for encoded key
func (account *ED25519Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	return append([]byte{keyVariant}, account.PublicKey[:]...)
}

// String - base58 encoding of encoded key
func (account *ED25519Account) String() string {
	return toBase58(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account ED25519Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// SECP256K1
// ---------

// KeyType - key type code (see enumeration above)
func (account *SECP256K1Account) KeyType() int {
	return SECP256K1
}

// PublicKeyBytes - fetch the compressed public key as byte slice
func (account *SECP256K1Account) PublicKeyBytes() []byte {
	return account.PublicKey[:]
}

// CheckSignature - check the signature of a digest
//
// the digest must be exactly 32 bytes
func (account *SECP256K1Account) CheckSignature(digest []byte, signature Signature) error {
	if secp256k1SignatureSize != len(signature) || secp256k1DigestSize != len(digest) {
		return fault.ErrInvalidSignature
	}
	if !crypto.VerifySignature(account.PublicKey[:], digest, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// Bytes - byte slice for encoded key
func (account *SECP256K1Account) Bytes() []byte {
	keyVariant := byte(SECP256K1<<algorithmShift) | publicKeyCode
	return append([]byte{keyVariant}, account.PublicKey[:]...)
}

// String - base58 encoding of encoded key
func (account *SECP256K1Account) String() string {
	return toBase58(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account SECP256K1Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}
