// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

func Fuzz(data []byte) int {
	in := NewInputBytes(data)
	m := NewModel(&Options{})
	if err := m.Read(in); err != nil {
		return 0
	}
	return 1
}
