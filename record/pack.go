// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/surged/fault"
)

// keys are sorted on output so equal objects always pack to equal bytes
//
// numbers decoded into a field map keep their literal form and typed
// decoding matches keys exactly
var json = jsoniter.Config{
	EscapeHTML:    true,
	SortMapKeys:   true,
	UseNumber:     true,
	CaseSensitive: true,
}.Froze()

// Pack - convert an object to its canonical keyed record
//
// the record is checked against the type's schema so an object with an
// unset key cannot be packed
func Pack(object Object) (packed Packed, err error) {
	defer func() {
		if r := recover(); nil != r {
			packed = nil
			err = fault.ErrMalformedRecord
		}
	}()

	if nil == object {
		return nil, fault.ErrMalformedRecord
	}
	s, ok := registry[object.Type()]
	if !ok {
		return nil, errors.Wrapf(fault.ErrUnknownObjectType, "type: %q", object.Type())
	}

	body, err := json.Marshal(object)
	if nil != err {
		return nil, errors.Wrap(fault.ErrMalformedRecord, err.Error())
	}

	fields := make(map[string]interface{})
	if err := json.Unmarshal(body, &fields); nil != err {
		return nil, errors.Wrap(fault.ErrMalformedRecord, err.Error())
	}
	fields[typeField] = string(object.Type())

	if err := checkFields(object.Type(), s.fields, fields); nil != err {
		return nil, err
	}

	packed, err = json.Marshal(fields)
	if nil != err {
		return nil, errors.Wrap(fault.ErrMalformedRecord, err.Error())
	}
	return packed, nil
}

// every mandatory key must be present and not null
func checkFields(t TypeName, required []string, fields map[string]interface{}) error {
	for _, key := range required {
		value, ok := fields[key]
		if !ok {
			return errors.Wrapf(fault.ErrMissingField, "%s: %q", t, key)
		}
		if nil == value {
			return errors.Wrapf(fault.ErrNullField, "%s: %q", t, key)
		}
	}
	return nil
}
