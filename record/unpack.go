// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/fault"
)

// Unpack - turn a keyed record into an object
//
// the schema of the record's type is checked before the typed decode so
// absent and null keys are reported as such
//
// must cast result to correct type
//
// e.g.
//   switch object := result.(type) {
//   case *record.VoteSlipToken:
func (packed Packed) Unpack() (object Object, err error) {

	defer func() {
		if r := recover(); nil != r {
			object = nil
			err = fault.ErrMalformedRecord
		}
	}()

	fields := make(map[string]interface{})
	if err := json.Unmarshal(packed, &fields); nil != err {
		return nil, errors.Wrap(fault.ErrMalformedRecord, err.Error())
	}

	tag, ok := fields[typeField]
	if !ok {
		return nil, errors.Wrapf(fault.ErrMissingField, "%q", typeField)
	}
	if nil == tag {
		return nil, errors.Wrapf(fault.ErrNullField, "%q", typeField)
	}
	name, ok := tag.(string)
	if !ok {
		return nil, errors.Wrapf(fault.ErrMalformedRecord, "type: %v", tag)
	}
	t := TypeName(name)

	s, ok := registry[t]
	if !ok {
		return nil, errors.Wrapf(fault.ErrUnknownObjectType, "type: %q", t)
	}

	if err := checkFields(t, s.fields, fields); nil != err {
		return nil, err
	}

	object = s.create()
	if err := json.Unmarshal(packed, object); nil != err {
		return nil, errors.Wrapf(fault.ErrMalformedRecord, "%s: %s", t, err)
	}
	return object, nil
}

// UnpackAs - unpack a record that must be one of the expected types
func (packed Packed) UnpackAs(expected ...TypeName) (Object, error) {
	object, err := packed.Unpack()
	if nil != err {
		return nil, err
	}
	for _, t := range expected {
		if t == object.Type() {
			return object, nil
		}
	}
	return nil, errors.Wrapf(fault.ErrInvalidObjectType, "got: %q  expected: %q", object.Type(), expected)
}
