// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// validation error classes
type ArithmeticError GenericError
type ArityError GenericError
type BidTypeError GenericError
type EqualityError GenericError
type MissingFieldError GenericError
type NullFieldError GenericError
type QuorumError GenericError
type RecordError GenericError
type SignatureError GenericError
type TypeMismatchError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised        = ExistsError("already initialised")
	ErrBidAlreadyIncluded        = EqualityError("bid already included")
	ErrCannotDecodeAccount       = RecordError("cannot decode account")
	ErrCannotDecodePrivateKey    = RecordError("cannot decode private key")
	ErrChecksumMismatch          = RecordError("checksum mismatch")
	ErrDatabaseIsNotSet          = ProcessError("database is not set")
	ErrGenesisTooLarge           = InvalidError("genesis token count too large")
	ErrInputNotFound             = NotFoundError("input object not found")
	ErrInternalCheckerFailure    = ProcessError("internal checker failure")
	ErrInvalidArgumentLengths    = ArityError("invalid argument lengths")
	ErrInvalidBidType            = BidTypeError("invalid bid type")
	ErrInvalidInputTokenTypes    = TypeMismatchError("invalid input token types")
	ErrInvalidCursor             = InvalidError("invalid cursor")
	ErrInvalidKeyLength          = RecordError("invalid key length")
	ErrInvalidKeyType            = RecordError("invalid key type")
	ErrInvalidLoggerChannel      = ProcessError("invalid logger channel")
	ErrInvalidObjectType         = TypeMismatchError("invalid object type")
	ErrInvalidQuantity           = RecordError("invalid quantity")
	ErrInvalidSignature          = SignatureError("invalid signature")
	ErrInvalidStructPointer      = InvalidError("invalid struct pointer")
	ErrMalformedRecord           = RecordError("malformed record")
	ErrMissingField              = MissingFieldError("missing field")
	ErrMissingParameters         = ArityError("missing parameters")
	ErrMissingSubmitter          = InvalidError("missing submitter")
	ErrNotEnoughVoters           = QuorumError("not enough voters")
	ErrNoBidsToAccept            = NotFoundError("no bids to accept")
	ErrNotConfigurationTable     = InvalidError("configuration did not return a table")
	ErrNotDigest                 = RecordError("not a digest")
	ErrNotEqual                  = EqualityError("values not equal")
	ErrNotInitialised            = ProcessError("not initialised")
	ErrNotPrivateKey             = RecordError("not a private key")
	ErrNotPublicKey              = RecordError("not a public key")
	ErrNullField                 = NullFieldError("null field")
	ErrQuantityOverflow          = ArithmeticError("quantity overflow")
	ErrTotalMismatch             = ArithmeticError("declared total does not match computed total")
	ErrTransactionAlreadyApplied = ExistsError("transaction already applied")
	ErrTransactionInUse          = ProcessError("transaction already in use")
	ErrUnknownObjectType         = TypeMismatchError("unknown object type")
	ErrUnknownTransition         = NotFoundError("unknown transition")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

func (e ArithmeticError) Error() string   { return string(e) }
func (e ArityError) Error() string        { return string(e) }
func (e BidTypeError) Error() string      { return string(e) }
func (e EqualityError) Error() string     { return string(e) }
func (e MissingFieldError) Error() string { return string(e) }
func (e NullFieldError) Error() string    { return string(e) }
func (e QuorumError) Error() string       { return string(e) }
func (e RecordError) Error() string       { return string(e) }
func (e SignatureError) Error() string    { return string(e) }
func (e TypeMismatchError) Error() string { return string(e) }

// determine the class of an error
//
// context added by errors.Wrap is stripped before the comparison
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := errors.Cause(e).(ProcessError); return ok }

func IsErrArithmetic(e error) bool   { _, ok := errors.Cause(e).(ArithmeticError); return ok }
func IsErrArity(e error) bool        { _, ok := errors.Cause(e).(ArityError); return ok }
func IsErrBidType(e error) bool      { _, ok := errors.Cause(e).(BidTypeError); return ok }
func IsErrEquality(e error) bool     { _, ok := errors.Cause(e).(EqualityError); return ok }
func IsErrMissingField(e error) bool { _, ok := errors.Cause(e).(MissingFieldError); return ok }
func IsErrNullField(e error) bool    { _, ok := errors.Cause(e).(NullFieldError); return ok }
func IsErrQuorum(e error) bool       { _, ok := errors.Cause(e).(QuorumError); return ok }
func IsErrRecord(e error) bool       { _, ok := errors.Cause(e).(RecordError); return ok }
func IsErrSignature(e error) bool    { _, ok := errors.Cause(e).(SignatureError); return ok }
func IsErrTypeMismatch(e error) bool { _, ok := errors.Cause(e).(TypeMismatchError); return ok }

// Kind - the diagnostic name of the class of an error
func Kind(e error) string {
	switch errors.Cause(e).(type) {
	case nil:
		return ""
	case MissingFieldError:
		return "MissingField"
	case NullFieldError:
		return "NullField"
	case TypeMismatchError:
		return "TypeMismatch"
	case ArityError:
		return "ArityMismatch"
	case EqualityError:
		return "EqualityViolation"
	case QuorumError:
		return "QuorumNotMet"
	case SignatureError:
		return "InvalidSignature"
	case ArithmeticError:
		return "ArithmeticMismatch"
	case BidTypeError:
		return "InvalidBidType"
	case RecordError:
		return "MalformedRecord"
	case ExistsError:
		return "Exists"
	case InvalidError:
		return "Invalid"
	case NotFoundError:
		return "NotFound"
	case ProcessError:
		return "Process"
	default:
		return "Unknown"
	}
}
