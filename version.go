// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Library version numbers.
const (
	VersionMajor = 0
	VersionMinor = 9
)

// GetVersionString returns the library version string.
func GetVersionString() string {
	return "DIME v0.9 biscuit"
}

// GetVersion returns the major and minor library version numbers.
func GetVersion() (major, minor int) {
	return VersionMajor, VersionMinor
}
