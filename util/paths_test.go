// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/surged/util"
)

func TestEnsureAbsolute(t *testing.T) {
	tests := []struct {
		directory string
		path      string
		expected  string
	}{
		{"/data", "ledger", "/data/ledger"},
		{"/data", "log/../ledger", "/data/ledger"},
		{"/data", "/srv/ledger", "/srv/ledger"},
		{"/data/", "./ledger/", "/data/ledger"},
	}
	for i, item := range tests {
		assert.Equal(t, item.expected, util.EnsureAbsolute(item.directory, item.path), "%d: path", i)
	}
}

func TestEnsureFileExists(t *testing.T) {
	dir, err := ioutil.TempDir("", "surged-util")
	require.NoError(t, err, "temp dir")
	defer os.RemoveAll(dir)

	assert.True(t, util.EnsureFileExists(dir), "directory")
	assert.False(t, util.EnsureFileExists(filepath.Join(dir, "absent")), "absent file")
}
