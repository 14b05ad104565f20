// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/ecdsa"
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/util"
)

// PrivateKey - base type for PrivateKey
type PrivateKey struct {
	PrivateKeyInterface
}

// PrivateKeyInterface - methods common to all key algorithms
type PrivateKeyInterface interface {
	Account() *Account
	KeyType() int
	PrivateKeyBytes() []byte
	Sign(digest []byte) (Signature, error)
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
}

// ED25519PrivateKey - for ed25519 keys
type ED25519PrivateKey struct {
	PrivateKey []byte
}

// SECP256K1PrivateKey - for secp256k1 keys
type SECP256K1PrivateKey struct {
	PrivateKey []byte
}

// NewPrivateKey - generate a new random key of the given algorithm
func NewPrivateKey(algorithm int, random io.Reader) (*PrivateKey, error) {
	switch algorithm {
	case ED25519:
		_, priv, err := ed25519.GenerateKey(random)
		if nil != err {
			return nil, err
		}
		return &PrivateKey{
			PrivateKeyInterface: &ED25519PrivateKey{
				PrivateKey: priv,
			},
		}, nil

	case SECP256K1:
		key, err := ecdsa.GenerateKey(crypto.S256(), random)
		if nil != err {
			return nil, err
		}
		return &PrivateKey{
			PrivateKeyInterface: &SECP256K1PrivateKey{
				PrivateKey: crypto.FromECDSA(key),
			},
		}, nil

	default:
		return nil, fault.ErrInvalidKeyType
	}
}

// PrivateKeyFromSeed - deterministic key from a 32 byte seed
//
// for ed25519 the seed is expanded, for secp256k1 it is the scalar
func PrivateKeyFromSeed(algorithm int, seed []byte) (*PrivateKey, error) {
	switch algorithm {
	case ED25519:
		if ed25519.SeedSize != len(seed) {
			return nil, fault.ErrInvalidKeyLength
		}
		return &PrivateKey{
			PrivateKeyInterface: &ED25519PrivateKey{
				PrivateKey: ed25519.NewKeyFromSeed(seed),
			},
		}, nil

	case SECP256K1:
		if secp256k1PrivateKeySize != len(seed) {
			return nil, fault.ErrInvalidKeyLength
		}
		if _, err := crypto.ToECDSA(seed); nil != err {
			return nil, fault.ErrNotPrivateKey
		}
		priv := make([]byte, secp256k1PrivateKeySize)
		copy(priv, seed)
		return &PrivateKey{
			PrivateKeyInterface: &SECP256K1PrivateKey{
				PrivateKey: priv,
			},
		}, nil

	default:
		return nil, fault.ErrInvalidKeyType
	}
}

// PrivateKeyFromBase58 - this converts a Base58 encoded string and returns a private key
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	privateKeyDecoded := util.FromBase58(privateKeyBase58Encoded)
	if len(privateKeyDecoded) <= checksumLength {
		return nil, fault.ErrCannotDecodePrivateKey
	}

	checksumStart := len(privateKeyDecoded) - checksumLength
	checksum := sha3.Sum256(privateKeyDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], privateKeyDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	return PrivateKeyFromBytes(privateKeyDecoded[:checksumStart])
}

// PrivateKeyFromBytes - this converts a byte encoded buffer and returns a private key
func PrivateKeyFromBytes(privateKeyBytes []byte) (*PrivateKey, error) {

	keyVariant, keyVariantLength := util.FromVarint64(privateKeyBytes)
	if 0 == keyVariantLength || keyVariant&publicKeyCode == publicKeyCode {
		return nil, fault.ErrNotPrivateKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm <= invalidAlgorithm || keyAlgorithm >= algorithmLimit {
		return nil, fault.ErrInvalidKeyType
	}

	priv := make([]byte, len(privateKeyBytes)-keyVariantLength)
	copy(priv, privateKeyBytes[keyVariantLength:])

	switch keyAlgorithm {
	case ED25519:
		if len(priv) != ed25519.PrivateKeySize {
			return nil, fault.ErrInvalidKeyLength
		}
		return &PrivateKey{
			PrivateKeyInterface: &ED25519PrivateKey{
				PrivateKey: priv,
			},
		}, nil

	case SECP256K1:
		return PrivateKeyFromSeed(SECP256K1, priv)

	default:
		return nil, fault.ErrInvalidKeyType
	}
}

// UnmarshalText - convert a Base58 text form into a private key
func (privateKey *PrivateKey) UnmarshalText(s []byte) error {
	a, err := PrivateKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	privateKey.PrivateKeyInterface = a.PrivateKeyInterface
	return nil
}

// ED25519
// -------

// KeyType - key type code (see enumeration in account.go)
func (privateKey *ED25519PrivateKey) KeyType() int {
	return ED25519
}

// Account - return the corresponding account
func (privateKey *ED25519PrivateKey) Account() *Account {
	return &Account{
		AccountInterface: &ED25519Account{
			PublicKey: privateKey.PrivateKey[ed25519.PrivateKeySize-ed25519.PublicKeySize:],
		},
	}
}

// PrivateKeyBytes - fetch the private key as byte slice
func (privateKey *ED25519PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey[:]
}

// Sign - sign a digest
func (privateKey *ED25519PrivateKey) Sign(digest []byte) (Signature, error) {
	if ed25519.PrivateKeySize != len(privateKey.PrivateKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	return ed25519.Sign(privateKey.PrivateKey, digest), nil
}

// Bytes - byte slice for encoded key
func (privateKey *ED25519PrivateKey) Bytes() []byte {
	keyVariant := byte(ED25519 << algorithmShift)
	return append([]byte{keyVariant}, privateKey.PrivateKey[:]...)
}

// String - base58 encoding of encoded key
func (privateKey *ED25519PrivateKey) String() string {
	return toBase58(privateKey.Bytes())
}

// MarshalText - convert a private key to its Base58 JSON form
func (privateKey ED25519PrivateKey) MarshalText() ([]byte, error) {
	return []byte(privateKey.String()), nil
}

// SECP256K1
// ---------

// KeyType - key type code (see enumeration in account.go)
func (privateKey *SECP256K1PrivateKey) KeyType() int {
	return SECP256K1
}

// Account - return the corresponding account
//
// panics if the stored scalar is invalid, which PrivateKeyFromSeed prevents
func (privateKey *SECP256K1PrivateKey) Account() *Account {
	key := crypto.ToECDSAUnsafe(privateKey.PrivateKey)
	return &Account{
		AccountInterface: &SECP256K1Account{
			PublicKey: crypto.CompressPubkey(&key.PublicKey),
		},
	}
}

// PrivateKeyBytes - fetch the private key scalar as byte slice
func (privateKey *SECP256K1PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey[:]
}

// Sign - sign a 32 byte digest
//
// the recovery id is dropped so that every bit of the result is verified
func (privateKey *SECP256K1PrivateKey) Sign(digest []byte) (Signature, error) {
	key, err := crypto.ToECDSA(privateKey.PrivateKey)
	if nil != err {
		return nil, fault.ErrNotPrivateKey
	}
	signature, err := crypto.Sign(digest, key)
	if nil != err {
		return nil, err
	}
	return Signature(signature[:secp256k1SignatureSize]), nil
}

// Bytes - byte slice for encoded key
func (privateKey *SECP256K1PrivateKey) Bytes() []byte {
	keyVariant := byte(SECP256K1 << algorithmShift)
	return append([]byte{keyVariant}, privateKey.PrivateKey[:]...)
}

// String - base58 encoding of encoded key
func (privateKey *SECP256K1PrivateKey) String() string {
	return toBase58(privateKey.Bytes())
}

// MarshalText - convert a private key to its Base58 JSON form
func (privateKey SECP256K1PrivateKey) MarshalText() ([]byte, error) {
	return []byte(privateKey.String()), nil
}
