// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureDirectory - absolute form of a directory below base, created
// with owner only access when missing
func EnsureDirectory(base string, directory string) (string, error) {
	directory = EnsureAbsolute(base, directory)
	if err := os.MkdirAll(directory, 0700); nil != err {
		return "", err
	}
	fileInfo, err := os.Stat(directory)
	if nil != err {
		return "", err
	}
	if !fileInfo.IsDir() {
		return "", fmt.Errorf("%q: not a directory", directory)
	}
	return directory, nil
}

// EnsureFileExists - true if anything exists at the path
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
