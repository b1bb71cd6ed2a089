// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// RecordKind identifies the value type a group code carries.
type RecordKind uint8

// Value kinds for DXF group codes.
const (
	KindString RecordKind = iota
	KindInt8
	KindInt16
	KindInt32
	KindFloat32
	KindFloat64
	// KindHex covers both handle references (320..369) and binary
	// chunks (310..319). They share one wire representation, a hex
	// string; the distinction only matters to downstream consumers.
	KindHex
)

// Hex is the value of a hex-string record (handles, binary chunks).
type Hex string

// Param is the typed value of a record. The concrete type is one of
// string, int8, int16, int32, float32, float64 or Hex, matching the
// RecordKind of the record's group code.
type Param interface{}

// maxGroupCode is one past the largest group code with a defined kind.
// Codes outside [0, maxGroupCode) decode as strings.
const maxGroupCode = 1072

var groupKinds [maxGroupCode]RecordKind

func init() {
	setKinds := func(from, to int, kind RecordKind) {
		for c := from; c <= to; c++ {
			groupKinds[c] = kind
		}
	}
	setKinds(0, 9, KindString)
	setKinds(10, 59, KindFloat64)
	setKinds(60, 79, KindInt16)
	setKinds(90, 99, KindInt32)
	setKinds(100, 139, KindString)
	setKinds(140, 147, KindFloat64)
	setKinds(170, 178, KindInt16)
	groupKinds[210] = KindFloat64
	groupKinds[220] = KindFloat64
	groupKinds[230] = KindFloat64
	setKinds(270, 275, KindInt8)
	setKinds(280, 289, KindInt8)
	setKinds(300, 309, KindString)
	setKinds(310, 319, KindHex)
	setKinds(320, 369, KindHex)
	setKinds(999, 999, KindString)
	setKinds(1000, 1009, KindString)
	// The DXF reference says 1010..1059 are single precision floats,
	// but files exist with values out of float32 range. Decode them
	// as strings so such files survive a round trip.
	setKinds(1010, 1059, KindString)
	setKinds(1060, 1070, KindInt16)
	groupKinds[1071] = KindInt32
}

// KindOf returns the value kind for a group code. Codes without a
// defined kind, including negative ones, decode as strings.
func KindOf(code int32) RecordKind {
	if code < 0 || code >= maxGroupCode {
		return KindString
	}
	return groupKinds[code]
}

// Record is a single (group code, value) pair from a DXF stream.
type Record struct {
	Code  int32
	Param Param
}

// ReadRecord reads the typed value for an already consumed group code.
func ReadRecord(in *Input, code int32) (Record, error) {
	param, err := readParam(in, code)
	if err != nil {
		return Record{}, err
	}
	return Record{Code: code, Param: param}, nil
}

func readParam(in *Input, code int32) (Param, error) {
	switch KindOf(code) {
	case KindInt8:
		return in.ReadInt8()
	case KindInt16:
		return in.ReadInt16()
	case KindInt32:
		return in.ReadInt32()
	case KindFloat32:
		return in.ReadFloat()
	case KindFloat64:
		return in.ReadDouble()
	case KindHex:
		s, err := in.ReadString()
		return Hex(s), err
	default:
		// The primary text value (group code 1) keeps leading blanks.
		if code == 1 {
			return in.ReadStringNoSkip()
		}
		return in.ReadString()
	}
}

// Write emits the record's group code and value.
func (r Record) Write(out *Output) error {
	if err := out.WriteGroupCode(r.Code); err != nil {
		return err
	}
	return writeParam(out, r.Param)
}

// paramString coerces a record value to a string.
func paramString(p Param) string {
	switch v := p.(type) {
	case string:
		return v
	case Hex:
		return string(v)
	default:
		return ""
	}
}

// paramHex coerces a record value to a hex string.
func paramHex(p Param) Hex {
	switch v := p.(type) {
	case Hex:
		return v
	case string:
		return Hex(v)
	default:
		return ""
	}
}

// paramInt16 coerces any integer record value to int16.
func paramInt16(p Param) int16 {
	switch v := p.(type) {
	case int16:
		return v
	case int8:
		return int16(v)
	case int32:
		return int16(v)
	default:
		return 0
	}
}

// paramInt32 coerces any integer record value to int32.
func paramInt32(p Param) int32 {
	switch v := p.(type) {
	case int32:
		return v
	case int16:
		return int32(v)
	case int8:
		return int32(v)
	default:
		return 0
	}
}

// paramFloat coerces a floating point record value to float64.
func paramFloat(p Param) float64 {
	switch v := p.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	default:
		return 0
	}
}

func writeParam(out *Output, p Param) error {
	switch v := p.(type) {
	case int8:
		return out.WriteInt8(v)
	case int16:
		return out.WriteInt16(v)
	case int32:
		return out.WriteInt32(v)
	case float32:
		return out.WriteFloat(v)
	case float64:
		return out.WriteDouble(v)
	case Hex:
		return out.WriteHex(v)
	case string:
		return out.WriteString(v)
	default:
		return ErrBadRecordValue
	}
}
