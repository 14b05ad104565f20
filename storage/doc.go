// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk ledger store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. location     = big endian uint64 (8 bytes)
// 4. objectId     = object digest as 32 byte SHA3-256(packed record)
// 5. txId         = transaction digest as 32 byte SHA3-256(canonical JSON)
// 6. type         = object type name bytes
// 7. count        = big endian uint64 (8 bytes)
//
// Objects:
//
//   O ++ objectId              - unspent objects
//                                data: packed record
//
//   L ++ location ++ type ++ 0x00 ++ objectId
//                              - unspent objects by location and type
//                                data: empty
//
// Transactions:
//
//   T ++ txId                  - applied transactions
//                                data: transition name
//
// Counters:
//
//   C ++ name                  - statistics
//                                data: count
//
// Testing:
//   Z ++ key                   - testing data
package storage
