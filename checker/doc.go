// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package checker - decide whether a proposed ledger transition is admissible
//
// One validator exists per transaction kind.  A validator is a pure
// function of the transaction: it never touches storage, time or the
// network, so every node replaying it reaches the same verdict.
//
// Checks run in a fixed order and the first failure determines the
// error returned:
//
//   1. argument counts (inputs, reference inputs, parameters, outputs, returns)
//   2. decoding of each record against its schema (missing and null keys)
//   3. the type of each record
//   4. equality of fields that must propagate unchanged
//   5. the authorising signature
//   6. quorum or arithmetic
//
// Validate returns the error for diagnostics; Check converts any error,
// including an internal panic, into a plain reject.
package checker
