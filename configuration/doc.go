// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and os.getenv to extract environment supplied items.  The file must
// return a single table which is mapped onto a Go structure using the
// "gluamapper" field tags.
//
// extra variables can be passed in which appear as globals, so a
// configuration can be shared by several ledger hosts:
//
//   local shard = tonumber(arg.shard or "0")
//   return {
//       data_directory = ".",
//       database = { name = "shard-" .. shard },
//   }
package configuration
