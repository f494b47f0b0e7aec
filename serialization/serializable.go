// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"github.com/bitmark-inc/chainstate/fault"
)

// Serializable - implemented by every persisted structure
type Serializable interface {
	SerializeData(w *Writer)
	UnserializeData(r *Reader) error
}

// Serialize - the complete record for a structure
func Serialize(s Serializable) []byte {
	w := NewWriter()
	s.SerializeData(w)
	return w.Bytes()
}

// Unserialize - decode a complete record into a structure
//
// the record must be consumed exactly
func Unserialize(buffer []byte, s Serializable) error {
	r := NewReader(buffer)
	if err := s.UnserializeData(r); nil != err {
		return err
	}
	if nil != r.Err() {
		return r.Err()
	}
	if 0 != r.Remaining() {
		return fault.ErrTrailingData
	}
	return nil
}
