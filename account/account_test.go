// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chainstate/account"
	"github.com/bitmark-inc/chainstate/fault"
	"github.com/bitmark-inc/chainstate/util"
)

var (
	seedA = bytes.Repeat([]byte{0x11}, account.SeedLength)
	seedB = bytes.Repeat([]byte{0x22}, account.SeedLength)
)

func TestAddressText(t *testing.T) {
	kp, err := account.KeyPairFromSeed(seedA)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	a := kp.Address()

	s := a.String()
	decoded, err := account.AddressFromBase58(s)
	assert.Nil(t, err, "decode")
	assert.Equal(t, a, decoded, "round trip")

	raw := util.FromBase58(s)
	assert.Equal(t, 1+32+4, len(raw), "raw length")
	assert.Equal(t, byte(0x01), raw[0], "leading code")
	assert.Equal(t, a[:], raw[1:33], "key bytes")

	buffer, err := json.Marshal(a)
	assert.Nil(t, err, "json")
	assert.Equal(t, `"`+s+`"`, string(buffer), "json form")

	var fromJSON account.Address
	err = json.Unmarshal(buffer, &fromJSON)
	assert.Nil(t, err, "json decode")
	assert.Equal(t, a, fromJSON, "json round trip")
}

func TestAddressRejects(t *testing.T) {
	kp, _ := account.KeyPairFromSeed(seedA)
	raw := util.FromBase58(kp.Address().String())

	badChecksum := append([]byte{}, raw...)
	badChecksum[len(badChecksum)-1] ^= 0x01

	badCode := append([]byte{}, raw...)
	badCode[0] = 0x02

	tests := []struct {
		name string
		text string
		err  error
	}{
		{"empty", "", fault.ErrInvalidAddress},
		{"not base58", "0OIl", fault.ErrInvalidAddress},
		{"checksum", util.ToBase58(badChecksum), fault.ErrChecksumMismatch},
		{"code", util.ToBase58(badCode), fault.ErrNotPublicKey},
		{"short", util.ToBase58(raw[:20]), fault.ErrInvalidKeyLength},
	}

	for _, item := range tests {
		_, err := account.AddressFromBase58(item.text)
		assert.Equal(t, item.err, err, item.name)
	}

	_, err := account.AddressFromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "from bytes")
}

func TestKeyPair(t *testing.T) {
	kp, err := account.KeyPairFromSeed(seedA)
	assert.Nil(t, err, "from seed")
	assert.Equal(t, seedA, kp.Seed(), "seed")
	assert.Equal(t, 64, len(kp.PrivateKey()), "private key length")

	again, err := account.KeyPairFromHexSeed("1111111111111111111111111111111111111111111111111111111111111111")
	assert.Nil(t, err, "from hex")
	assert.Equal(t, kp.Address(), again.Address(), "deterministic")

	message := []byte("archive")
	signature := kp.Sign(message)
	assert.True(t, account.Verify(kp.Address(), message, signature), "verify")
	assert.False(t, account.Verify(kp.Address(), []byte("other"), signature), "wrong message")

	_, err = account.KeyPairFromSeed(seedA[:31])
	assert.Equal(t, fault.ErrInvalidSeedLength, err, "short seed")

	random, err := account.NewKeyPair()
	assert.Nil(t, err, "random")
	assert.NotEqual(t, kp.Address(), random.Address(), "random pair")
}

func TestSharedSecret(t *testing.T) {
	a, _ := account.KeyPairFromSeed(seedA)
	b, _ := account.KeyPairFromSeed(seedB)
	c, _ := account.NewKeyPair()

	ab, err := account.SharedSecret(a, b.Address())
	assert.Nil(t, err, "a with b")
	ba, err := account.SharedSecret(b, a.Address())
	assert.Nil(t, err, "b with a")
	assert.Equal(t, ab, ba, "agreement is symmetric")
	assert.Equal(t, account.SharedSecretLength, len(ab), "secret length")

	ac, err := account.SharedSecret(a, c.Address())
	assert.Nil(t, err, "a with c")
	assert.NotEqual(t, ab, ac, "different peers, same secret")

	// identity point is of low order
	var identity account.Address
	identity[0] = 0x01
	_, err = account.SharedSecret(a, identity)
	assert.Equal(t, fault.ErrNotPublicKey, err, "low order point")
}
