// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"bytes"
	"reflect"
	"testing"
)

// kindFromRules reimplements the group code ranges independently of
// the table so the two stay in agreement.
func kindFromRules(code int32) RecordKind {
	switch {
	case code < 0:
		return KindString
	case code <= 9:
		return KindString
	case code >= 10 && code <= 59:
		return KindFloat64
	case code >= 60 && code <= 79:
		return KindInt16
	case code >= 90 && code <= 99:
		return KindInt32
	case code >= 100 && code <= 139:
		return KindString
	case code >= 140 && code <= 147:
		return KindFloat64
	case code >= 170 && code <= 178:
		return KindInt16
	case code == 210 || code == 220 || code == 230:
		return KindFloat64
	case code >= 270 && code <= 275:
		return KindInt8
	case code >= 280 && code <= 289:
		return KindInt8
	case code >= 300 && code <= 309:
		return KindString
	case code >= 310 && code <= 319:
		return KindHex
	case code >= 320 && code <= 369:
		return KindHex
	case code == 999:
		return KindString
	case code >= 1000 && code <= 1009:
		return KindString
	case code >= 1010 && code <= 1059:
		return KindString
	case code >= 1060 && code <= 1070:
		return KindInt16
	case code == 1071:
		return KindInt32
	default:
		return KindString
	}
}

func TestKindTable(t *testing.T) {
	for code := int32(-10); code < 1100; code++ {
		if got, want := KindOf(code), kindFromRules(code); got != want {
			t.Errorf("KindOf(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	records := []Record{
		{Code: 0, Param: "SECTION"},
		{Code: 1, Param: "some text"},
		{Code: 8, Param: "LAYER_0"},
		{Code: 10, Param: 1.5},
		{Code: 40, Param: -42.0},
		{Code: 62, Param: int16(256)},
		{Code: 70, Param: int16(-7)},
		{Code: 90, Param: int32(123456)},
		{Code: 270, Param: int8(3)},
		{Code: 310, Param: Hex("deadbeef")},
		{Code: 330, Param: Hex("1f")},
		{Code: 1040, Param: "1e40"},
		{Code: 1071, Param: int32(-99)},
	}

	var buf bytes.Buffer
	out := NewOutput(&buf)
	for _, r := range records {
		if err := r.Write(out); err != nil {
			t.Fatalf("Write(%v) failed, reason: %v", r, err)
		}
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush failed, reason: %v", err)
	}
	if got, want := out.RecordCount(), len(records); got != want {
		t.Errorf("RecordCount() = %d, want %d", got, want)
	}

	in := NewInputBytes(buf.Bytes())
	for _, want := range records {
		code, err := in.ReadGroupCode()
		if err != nil {
			t.Fatalf("ReadGroupCode failed, reason: %v", err)
		}
		got, err := ReadRecord(in, code)
		if err != nil {
			t.Fatalf("ReadRecord(%d) failed, reason: %v", code, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("record round trip got %#v, want %#v", got, want)
		}
	}
}

func TestParamCoercions(t *testing.T) {
	if got := paramString(Hex("ff")); got != "ff" {
		t.Errorf("paramString(Hex) = %q, want %q", got, "ff")
	}
	if got := paramInt16(int32(12)); got != 12 {
		t.Errorf("paramInt16(int32) = %d, want 12", got)
	}
	if got := paramFloat(float32(2)); got != 2 {
		t.Errorf("paramFloat(float32) = %g, want 2", got)
	}
	if got := paramInt32(int8(-3)); got != -3 {
		t.Errorf("paramInt32(int8) = %d, want -3", got)
	}
}
