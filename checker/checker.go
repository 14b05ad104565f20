// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package checker

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/fault"
)

// names of the transitions
const (
	CreateSurgeClient = "create_surge_client"
	CastCSCVote       = "cast_csc_vote"
	CastSREPVote      = "cast_srep_vote"
	CreateSREPClient  = "create_srep_client"
	SubmitBidProof    = "submit_bid_proof"
	SubmitBid         = "submit_bid"
	AcceptBids        = "accept_bids"
)

// Validator - decide one kind of transition
type Validator func(tx *Transaction) error

var validators = map[string]Validator{
	CreateSurgeClient: createSurgeClient,
	CastCSCVote:       castCSCVote,
	CastSREPVote:      castSREPVote,
	CreateSREPClient:  createSREPClient,
	SubmitBidProof:    submitBidProof,
	SubmitBid:         submitBid,
	AcceptBids:        acceptBids,
}

// globals
type globalDataType struct {
	sync.RWMutex
	log *logger.L
}

var globalData globalDataType

// Initialise - open the log channel used to report rejections
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("checker")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")
	return nil
}

// Finalise - stop logging rejections
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.log {
		return fault.ErrNotInitialised
	}
	globalData.log.Info("finished")
	globalData.log.Flush()
	globalData.log = nil
	return nil
}

// Lookup - the validator for a transition name
func Lookup(name string) (Validator, bool) {
	v, ok := validators[name]
	return v, ok
}

// Names - sorted list of all transition names
func Names() []string {
	names := make([]string, 0, len(validators))
	for name := range validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate - run the named validator and return the first failing check
//
// a panic inside a validator is returned as ErrInternalCheckerFailure
func Validate(name string, tx *Transaction) (err error) {

	v, ok := validators[name]
	if !ok {
		return errors.Wrapf(fault.ErrUnknownTransition, "%q", name)
	}
	if nil == tx {
		return fault.ErrMissingParameters
	}

	defer func() {
		if r := recover(); nil != r {
			err = errors.Wrapf(fault.ErrInternalCheckerFailure, "%s: %v", name, r)
		}
	}()

	return v(tx)
}

// Check - true only if the transition is accepted
//
// rejections are logged with their error kind when Initialise has been called
func Check(name string, tx *Transaction) bool {
	err := Validate(name, tx)
	if nil == err {
		return true
	}

	globalData.RLock()
	log := globalData.log
	globalData.RUnlock()

	if nil != log {
		log.Warnf("%s rejected: %s: %s", name, fault.Kind(err), err)
	}
	return false
}
