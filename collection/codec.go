// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collection

import (
	"math/big"
	"unicode/utf8"

	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/merkle"
	"github.com/bitmark-inc/chainstate/serialization"
	"github.com/bitmark-inc/chainstate/storage"
)

// Codec - binary encoding of one element type
type Codec[T any] interface {
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}

// NestedCodec - codec of a handle type: the stored value is the base
// key of the child and decoding binds it to a context
type NestedCodec[T any] interface {
	Codec[T]
	Bind(ctx storage.Context, baseKey []byte) T
}

// decode a stored cell, binding nested handles to ctx
func decodeCell[T any](codec Codec[T], ctx storage.Context, buffer []byte) (T, error) {
	if nc, ok := codec.(NestedCodec[T]); ok {
		return nc.Bind(ctx, buffer), nil
	}
	return codec.Decode(buffer)
}

// Bytes - raw byte slices
var Bytes Codec[[]byte] = bytesCodec{}

type bytesCodec struct{}

func (bytesCodec) Encode(b []byte) ([]byte, error) {
	if nil == b {
		return []byte{}, nil
	}
	return append([]byte{}, b...), nil
}

func (bytesCodec) Decode(b []byte) ([]byte, error) {
	return append([]byte{}, b...), nil
}

// String - UTF-8 text
var String Codec[string] = stringCodec{}

type stringCodec struct{}

func (stringCodec) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fault.ErrInvalidString
	}
	return []byte(s), nil
}

func (stringCodec) Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fault.ErrInvalidString
	}
	return string(b), nil
}

// Bool - a single byte 0x00 or 0x01
var Bool Codec[bool] = boolCodec{}

type boolCodec struct{}

func (boolCodec) Encode(v bool) ([]byte, error) {
	if v {
		return []byte{0x01}, nil
	}
	return []byte{0x00}, nil
}

func (boolCodec) Decode(b []byte) (bool, error) {
	if 1 != len(b) || b[0] > 0x01 {
		return false, fault.ErrInvalidEncoding
	}
	return 0x01 == b[0], nil
}

// Uint64 - unsigned integer in big integer form
var Uint64 Codec[uint64] = uint64Codec{}

type uint64Codec struct{}

func (uint64Codec) Encode(v uint64) ([]byte, error) {
	return serialization.Uint64ToBytes(v), nil
}

func (uint64Codec) Decode(b []byte) (uint64, error) {
	n := serialization.BigIntFromBytes(b)
	if n.Sign() < 0 || !n.IsUint64() {
		return 0, fault.ErrValueTooLarge
	}
	return n.Uint64(), nil
}

// BigInt - signed big integer
var BigInt Codec[*big.Int] = bigIntCodec{}

type bigIntCodec struct{}

func (bigIntCodec) Encode(n *big.Int) ([]byte, error) {
	return serialization.BigIntToBytes(n), nil
}

func (bigIntCodec) Decode(b []byte) (*big.Int, error) {
	return serialization.BigIntFromBytes(b), nil
}

// AddressCodec - 32 byte account address
var AddressCodec Codec[account.Address] = addressCodec{}

type addressCodec struct{}

func (addressCodec) Encode(a account.Address) ([]byte, error) {
	return a.Bytes(), nil
}

func (addressCodec) Decode(b []byte) (account.Address, error) {
	return account.AddressFromBytes(b)
}

// HashCodec - 32 byte digest
var HashCodec Codec[merkle.Hash] = hashCodec{}

type hashCodec struct{}

func (hashCodec) Encode(h merkle.Hash) ([]byte, error) {
	return h[:], nil
}

func (hashCodec) Decode(b []byte) (merkle.Hash, error) {
	return merkle.HashFromBytes(b)
}

// serializablePtr - pointer types that can be serialized
type serializablePtr[T any] interface {
	*T
	serialization.Serializable
}

// SerializableCodec - any structure with a binary record form, stored
// as pointers
func SerializableCodec[T any, P serializablePtr[T]]() Codec[P] {
	return serializableCodec[T, P]{}
}

type serializableCodec[T any, P serializablePtr[T]] struct{}

func (serializableCodec[T, P]) Encode(p P) ([]byte, error) {
	if nil == p {
		return nil, fault.ErrInvalidEncoding
	}
	return serialization.Serialize(p), nil
}

func (serializableCodec[T, P]) Decode(b []byte) (P, error) {
	p := P(new(T))
	if err := serialization.Unserialize(b, p); nil != err {
		return nil, err
	}
	return p, nil
}
