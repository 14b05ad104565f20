// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/record"
)

// Local - submit transactions directly to this process's ledger
type Local struct{}

// Submit - apply a transaction, discarding its id
func (Local) Submit(name string, tx *checker.Transaction) error {
	_, err := Apply(name, tx)
	return err
}

// Objects - unspent objects of a type at a location
func (Local) Objects(location uint64, objectType record.TypeName) ([]record.Packed, error) {
	return GetObjects(location, objectType)
}
