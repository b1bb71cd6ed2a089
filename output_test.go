// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"bytes"
	"testing"
)

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-1, "-1.0"},
		{42, "42.0"},
		{999999, "999999.0"},
		{1e6, "1e+06"},
		{1.5, "1.5"},
		{-0.25, "-0.25"},
		{0.1, "0.1"},
		{1e-9, "1e-09"},
		{123456789.5, "1.234567895e+08"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatDouble(tt.in); got != tt.want {
				t.Errorf("formatDouble(%g) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOutputColumns(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)
	if err := out.WriteGroupCode(0); err != nil {
		t.Fatalf("WriteGroupCode failed, reason: %v", err)
	}
	out.WriteString("SECTION")
	out.WriteGroupCode(62)
	out.WriteInt16(3)
	out.WriteGroupCode(1070)
	out.WriteInt16(-12345)
	out.WriteGroupCode(10)
	out.WriteDouble(1.5)
	out.Flush()

	want := "  0\nSECTION\n 62\n     3\n1070\n-12345\n 10\n1.5\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if got := out.RecordCount(); got != 4 {
		t.Errorf("RecordCount() = %d, want 4", got)
	}
}

func TestOutputProgressAbort(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)
	out.SetProgressCallback(func(p float32) bool { return false }, 1000)
	var err error
	for i := 0; i < 300; i++ {
		if err = out.WriteGroupCode(62); err != nil {
			break
		}
		if err = out.WriteInt16(1); err != nil {
			break
		}
	}
	if err == nil || !out.Aborted() {
		t.Fatalf("expected aborted write, got err=%v aborted=%t", err, out.Aborted())
	}
}
