// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test data and test logger setup
package fixtures

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/surged/account"
)

const (
	LogCategory = "testing"
)

var logDirectory string

// SetupTestLogger - start logging to a temporary directory
func SetupTestLogger() {
	dir, err := ioutil.TempDir("", "surged-test-log")
	if nil != err {
		panic(err)
	}
	logDirectory = dir

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log files
func TeardownTestLogger() {
	logger.Finalise()
	if "" != logDirectory {
		_ = os.RemoveAll(logDirectory)
		logDirectory = ""
	}
}

// Key - a deterministic ed25519 private key derived from a single byte
func Key(b byte) *account.PrivateKey {
	return keyFromSeed(account.ED25519, b)
}

// ECDSAKey - a deterministic secp256k1 private key derived from a single byte
func ECDSAKey(b byte) *account.PrivateKey {
	return keyFromSeed(account.SECP256K1, b)
}

func keyFromSeed(algorithm int, b byte) *account.PrivateKey {
	if 0 == b {
		b = 0x5a
	}
	priv, err := account.PrivateKeyFromSeed(algorithm, bytes.Repeat([]byte{b}, 32))
	if nil != err {
		panic(err)
	}
	return priv
}

// named keys used across the tests
var (
	Alice   = Key(0x01)
	Bob     = Key(0x02)
	Carol   = Key(0x03)
	Dave    = ECDSAKey(0x04)
	Mallory = Key(0x0d)
)
