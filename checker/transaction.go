// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package checker

import (
	"bytes"
	"encoding/hex"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/account"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/merkle"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Parameter - an opaque public argument of a transaction
type Parameter []byte

// Transaction - the envelope passed to a validator
//
// Dependencies are carried for the host and ignored by every validator
type Transaction struct {
	Inputs          []record.Packed        `json:"inputs"`
	ReferenceInputs []record.Packed        `json:"reference_inputs"`
	Parameters      []Parameter            `json:"parameters"`
	Outputs         []record.Packed        `json:"outputs"`
	Returns         []Parameter            `json:"returns"`
	Dependencies    map[string]interface{} `json:"dependencies,omitempty"`
}

// MarshalText - hex text form of a parameter
func (p Parameter) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(p)))
	hex.Encode(b, p)
	return b, nil
}

// UnmarshalText - parameter from hex text
func (p *Parameter) UnmarshalText(s []byte) error {
	b := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(b, s)
	if nil != err {
		return err
	}
	*p = b[:n]
	return nil
}

// AccountParameter - the parameter form of a public key
func AccountParameter(pub *account.Account) Parameter {
	return Parameter(pub.Bytes())
}

// QuantityParameter - the parameter form of a revealed bid quantity
func QuantityParameter(quantity uint64) Parameter {
	return Parameter(util.ToVarint64(quantity))
}

// ID - digest identifying the transaction
//
// computed over the canonical JSON of everything except dependencies
func (tx *Transaction) ID() (merkle.Digest, error) {
	if nil == tx {
		return merkle.Digest{}, fault.ErrMissingParameters
	}
	core := *tx
	core.Dependencies = nil
	buffer, err := json.Marshal(&core)
	if nil != err {
		return merkle.Digest{}, err
	}
	return merkle.NewDigest(buffer), nil
}

// bounds on a count; maximum of -1 means unbounded
type bounds struct {
	minimum int
	maximum int
}

func exactly(n int) bounds {
	return bounds{minimum: n, maximum: n}
}

func atLeast(n int) bounds {
	return bounds{minimum: n, maximum: -1}
}

func (b bounds) allows(n int) bool {
	return n >= b.minimum && (b.maximum < 0 || n <= b.maximum)
}

// the shape of a transaction: reference inputs and returns are always empty
type arity struct {
	inputs     bounds
	parameters int
	outputs    int
}

func (a arity) check(tx *Transaction) error {
	if !a.inputs.allows(len(tx.Inputs)) ||
		0 != len(tx.ReferenceInputs) ||
		a.parameters != len(tx.Parameters) ||
		a.outputs != len(tx.Outputs) ||
		0 != len(tx.Returns) {
		return errors.Wrapf(
			fault.ErrInvalidArgumentLengths,
			"inputs: %d  reference inputs: %d  parameters: %d  outputs: %d  returns: %d",
			len(tx.Inputs), len(tx.ReferenceInputs), len(tx.Parameters), len(tx.Outputs), len(tx.Returns),
		)
	}
	return nil
}

// decode a record that must be of a particular type
//
// the position is attached to any error for diagnostics
func unpack(packed record.Packed, position string, expected ...record.TypeName) (record.Object, error) {
	object, err := packed.UnpackAs(expected...)
	if nil != err {
		return nil, errors.Wrap(err, position)
	}
	return object, nil
}

func equalAccount(position string, a *account.Account, b *account.Account) error {
	if !a.Equal(b) {
		return errors.Wrapf(fault.ErrNotEqual, "%s: %s != %s", position, describe(a), describe(b))
	}
	return nil
}

func equalAccountParameter(position string, a *account.Account, p Parameter) error {
	if nil == a || nil == a.AccountInterface || !bytes.Equal(a.Bytes(), p) {
		return errors.Wrapf(fault.ErrNotEqual, "%s: %s != parameter %x", position, describe(a), []byte(p))
	}
	return nil
}

func equalLocation(position string, a uint64, b uint64) error {
	if a != b {
		return errors.Wrapf(fault.ErrNotEqual, "%s: location %d != %d", position, a, b)
	}
	return nil
}

func describe(a *account.Account) string {
	if nil == a || nil == a.AccountInterface {
		return "<nil>"
	}
	return a.String()
}

// run checks in order stopping at the first failure
func firstError(checks ...error) error {
	for _, err := range checks {
		if nil != err {
			return err
		}
	}
	return nil
}
