// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"bytes"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chainstate/account"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	teardownTestLogger()
	os.Exit(rc)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// deterministic key pair from a single repeated byte
func testKeys(t *testing.T, b byte) *account.KeyPair {
	kp, err := account.KeyPairFromSeed(bytes.Repeat([]byte{b}, account.SeedLength))
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	return kp
}

// content with a recognisable pattern
func testContent(length int) []byte {
	content := make([]byte, length)
	for i := range content {
		content[i] = byte(i*7 + i/251)
	}
	return content
}
