// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package collection - structured views over a flat key space
//
// A handle is a base key plus the storage context it is bound to; it
// holds no data of its own.  Layout of the keys under a base key:
//
//	base ∥ "{count}"             number of elements, as a big integer
//	base ∥ "<" ∥ index ∥ ">"     List element, index as a big integer
//	base ∥ encode(key)           Map element
//	base                         Value slot
//
// A collection whose element type is itself a handle stores the
// child's base key, so children live in their own key namespace.
package collection
