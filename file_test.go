// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "testing"

func TestNewInputFile(t *testing.T) {
	tests := []struct {
		in       string
		entities int
		comments int
	}{
		{getAbsoluteFilePath("testdata/minimal.dxf"), 0, 0},
		{getAbsoluteFilePath("testdata/line.dxf"), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in, err := NewInput(tt.in)
			if err != nil {
				t.Fatalf("NewInput(%s) failed, reason: %v", tt.in, err)
			}
			defer in.Close()

			m := NewModel(&Options{})
			if err := m.Read(in); err != nil {
				t.Fatalf("Read(%s) failed, reason: %v", tt.in, err)
			}
			if got := len(m.Entities()); got != tt.entities {
				t.Errorf("entities = %d, want %d", got, tt.entities)
			}
			if got := len(m.HeaderComments()); got != tt.comments {
				t.Errorf("comments = %d, want %d", got, tt.comments)
			}
		})
	}
}

func TestNewInputMissingFile(t *testing.T) {
	if _, err := NewInput(getAbsoluteFilePath("testdata/no-such-file.dxf")); err == nil {
		t.Fatalf("NewInput on a missing file succeeded")
	}
}
