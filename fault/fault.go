// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RangeError GenericError
type IntegrityError GenericError
type AuthorisationError GenericError

// common errors - keep in alphabetic order
var (
	ErrArchiveNotFound        = NotFoundError("archive not found")
	ErrBadVarInt              = IntegrityError("non-canonical variable length integer")
	ErrBatchTooLarge          = ProcessError("batch too large for one transaction")
	ErrBlockHashMismatch      = IntegrityError("block content does not match merkle leaf")
	ErrBlockIndexOutOfRange   = RangeError("block index out of range")
	ErrBlockNotFound          = NotFoundError("block not found")
	ErrBlockNotMissing        = ExistsError("block is not missing")
	ErrChecksumMismatch       = IntegrityError("checksum mismatch")
	ErrDatabaseClosed         = ProcessError("database is closed")
	ErrDecryptionFailed       = IntegrityError("decryption failed")
	ErrDuplicateMissingBlock  = IntegrityError("duplicate missing block index")
	ErrDuplicateOwner         = IntegrityError("duplicate owner address")
	ErrEmptyKey               = InvalidError("key must not be empty")
	ErrEnumerationUnsupported = ProcessError("context cannot enumerate keys")
	ErrIndexOutOfRange        = RangeError("index out of range")
	ErrInvalidAddress         = InvalidError("invalid address")
	ErrInvalidArchiveName     = InvalidError("invalid archive name")
	ErrInvalidConfiguration   = InvalidError("invalid configuration")
	ErrInvalidDataDirectory   = InvalidError("invalid data directory")
	ErrInvalidDatabaseEngine  = InvalidError("invalid database engine")
	ErrInvalidEncoding        = IntegrityError("invalid element encoding")
	ErrInvalidEncryptionMode  = IntegrityError("invalid encryption mode")
	ErrInvalidFileName        = InvalidError("file name must not contain a directory")
	ErrInvalidHashLength      = InvalidError("invalid hash length")
	ErrInvalidHexString       = InvalidError("invalid hex string")
	ErrInvalidKeyLength       = InvalidError("invalid key length")
	ErrInvalidMerkleTree      = IntegrityError("invalid merkle tree")
	ErrInvalidRange           = RangeError("invalid range: minimum exceeds maximum")
	ErrInvalidSeedLength      = InvalidError("invalid seed length")
	ErrInvalidString          = IntegrityError("string is not valid UTF-8")
	ErrKeyNotFound            = NotFoundError("key not found")
	ErrNotAuthorised          = AuthorisationError("address is not authorised for this archive")
	ErrNotPublicKey           = InvalidError("not a public key")
	ErrOwnerExists            = ExistsError("owner already exists")
	ErrOwnerNotFound          = NotFoundError("owner not found")
	ErrSizeMismatch           = IntegrityError("archive size does not match merkle tree")
	ErrTrailingData           = IntegrityError("trailing data after record")
	ErrTruncatedRecord        = IntegrityError("truncated record")
	ErrValueTooLarge          = RangeError("value too large")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e RangeError) Error() string         { return string(e) }
func (e IntegrityError) Error() string     { return string(e) }
func (e AuthorisationError) Error() string { return string(e) }

// determine the class of an error
//
// wrapped errors (fmt.Errorf with %w) are classified by the innermost
// fault value
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRange(e error) bool    { var x RangeError; return errors.As(e, &x) }
func IsErrIntegrity(e error) bool {
	var x IntegrityError
	return errors.As(e, &x)
}
func IsErrAuthorisation(e error) bool {
	var x AuthorisationError
	return errors.As(e, &x)
}
