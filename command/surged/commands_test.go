// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/surged/checker"
	"github.com/bitmark-inc/surged/fault"
	"github.com/bitmark-inc/surged/fixtures"
	"github.com/bitmark-inc/surged/merkle"
	"github.com/bitmark-inc/surged/record"
	"github.com/bitmark-inc/surged/transition"
)

func TestReport(t *testing.T) {
	buffer := &bytes.Buffer{}
	ok := report(buffer, "check", checker.SubmitBid, merkle.Digest{}, fault.ErrInvalidSignature)
	assert.False(t, ok, "rejected")

	reply := verdictReply{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &reply), "decode reply")
	assert.Equal(t, checker.SubmitBid, reply.Transition, "transition")
	assert.Equal(t, "InvalidSignature", reply.Kind, "kind")
	assert.Nil(t, reply.ID, "no id")

	buffer.Reset()
	id := merkle.NewDigest([]byte("transaction"))
	ok = report(buffer, "apply", checker.AcceptBids, id, nil)
	assert.True(t, ok, "accepted")

	reply = verdictReply{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &reply), "decode reply")
	assert.True(t, reply.Accepted, "accepted flag")
	require.NotNil(t, reply.ID, "id present")
	assert.Equal(t, id, *reply.ID, "id")
	assert.Equal(t, "", reply.Kind, "no kind")
}

func TestTransactionArguments(t *testing.T) {
	dir, err := ioutil.TempDir("", "surged-command")
	require.NoError(t, err, "temp dir")
	defer os.RemoveAll(dir)

	token, err := record.Pack(&record.InitToken{Location: 1})
	require.NoError(t, err, "pack token")
	result, err := transition.CreateSurgeClient([]record.Packed{token}, fixtures.Alice)
	require.NoError(t, err, "create surge client")
	tx := transition.Assemble([]record.Packed{token}, result)

	b, err := json.Marshal(tx)
	require.NoError(t, err, "encode transaction")
	fileName := filepath.Join(dir, "tx.json")
	require.NoError(t, ioutil.WriteFile(fileName, b, 0600), "write transaction")

	name, decoded, err := transactionArguments([]string{checker.CreateSurgeClient, fileName})
	require.NoError(t, err, "arguments")
	assert.Equal(t, checker.CreateSurgeClient, name, "name")
	assert.Equal(t, tx, decoded, "transaction")
	assert.NoError(t, checker.Validate(name, decoded), "decoded transaction validates")

	_, _, err = transactionArguments([]string{checker.CreateSurgeClient})
	assert.Error(t, err, "missing file")

	_, _, err = transactionArguments([]string{"mint", fileName})
	assert.Equal(t, fault.ErrUnknownTransition, err, "unknown transition")

	_, _, err = transactionArguments([]string{checker.CreateSurgeClient, filepath.Join(dir, "absent.json")})
	assert.Error(t, err, "absent file")
}

func TestIsReadOnlyCommand(t *testing.T) {
	tests := []struct {
		arguments []string
		readOnly  bool
	}{
		{nil, false},
		{[]string{"genesis"}, false},
		{[]string{"apply", "submit_bid", "x.json"}, false},
		{[]string{"check", "submit_bid", "x.json"}, true},
		{[]string{"o", "0", "EBBuy"}, true},
		{[]string{"stats"}, true},
	}
	for i, item := range tests {
		assert.Equal(t, item.readOnly, isReadOnlyCommand(item.arguments), "%d: %v", i, item.arguments)
	}
}
