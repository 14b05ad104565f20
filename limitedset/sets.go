// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package limitedset - remember the most recent transaction ids
package limitedset

import (
	"container/ring"
	"sync"

	"github.com/bitmark-inc/surged/merkle"
)

// LimitedSet - a set of digests that forgets the least recently added
type LimitedSet struct {
	sync.Mutex
	ring *ring.Ring
	hash map[merkle.Digest]*ring.Ring
}

// New - a set that holds up to n digests
func New(n int) *LimitedSet {
	if n < 1 {
		n = 1
	}
	return &LimitedSet{
		ring: ring.New(n),
		hash: make(map[merkle.Digest]*ring.Ring, n),
	}
}

// Add - insert a digest, making it the most recent
func (ls *LimitedSet) Add(id merkle.Digest) {
	ls.Lock()
	defer ls.Unlock()

	// move an existing entry to just behind the insertion point
	if r, ok := ls.hash[id]; ok {
		if r == ls.ring {
			ls.ring = ls.ring.Next()
			return
		}
		r = r.Prev().Unlink(1)
		ls.ring.Prev().Link(r)
		return
	}

	if old, ok := ls.ring.Value.(merkle.Digest); ok {
		delete(ls.hash, old)
	}
	ls.ring.Value = id
	ls.hash[id] = ls.ring
	ls.ring = ls.ring.Next()
}

// Exists - check whether a digest is held
func (ls *LimitedSet) Exists(id merkle.Digest) bool {
	ls.Lock()
	defer ls.Unlock()

	_, ok := ls.hash[id]
	return ok
}

// Len - number of digests held
func (ls *LimitedSet) Len() int {
	ls.Lock()
	defer ls.Unlock()

	return len(ls.hash)
}
