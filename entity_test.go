// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"bytes"
	"errors"
	"testing"
)

func TestCreateEntity(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"LINE", "*dime.Line"},
		{"POINT", "*dime.Point"},
		{"CIRCLE", "*dime.Circle"},
		{"ARC", "*dime.Arc"},
		{"ELLIPSE", "*dime.Ellipse"},
		{"3DFACE", "*dime.Face3D"},
		{"SOLID", "*dime.Solid"},
		{"TRACE", "*dime.Trace"},
		{"TEXT", "*dime.Text"},
		{"MTEXT", "*dime.MText"},
		{"LWPOLYLINE", "*dime.LWPolyline"},
		{"POLYLINE", "*dime.Polyline"},
		{"VERTEX", "*dime.Vertex"},
		{"SPLINE", "*dime.Spline"},
		{"INSERT", "*dime.Insert"},
		{"BLOCK", "*dime.Block"},
		{"WHATEVER", "*dime.UnknownEntity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CreateEntity(tt.name)
			if e.EntityName() != tt.name {
				t.Errorf("EntityName() = %q, want %q", e.EntityName(), tt.name)
			}
			if got := typeName(e); got != tt.want {
				t.Errorf("CreateEntity(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *Line:
		return "*dime.Line"
	case *Point:
		return "*dime.Point"
	case *Circle:
		return "*dime.Circle"
	case *Arc:
		return "*dime.Arc"
	case *Ellipse:
		return "*dime.Ellipse"
	case *Face3D:
		return "*dime.Face3D"
	case *Solid:
		return "*dime.Solid"
	case *Trace:
		return "*dime.Trace"
	case *Text:
		return "*dime.Text"
	case *MText:
		return "*dime.MText"
	case *LWPolyline:
		return "*dime.LWPolyline"
	case *Polyline:
		return "*dime.Polyline"
	case *Vertex:
		return "*dime.Vertex"
	case *Spline:
		return "*dime.Spline"
	case *Insert:
		return "*dime.Insert"
	case *Block:
		return "*dime.Block"
	case *UnknownEntity:
		return "*dime.UnknownEntity"
	default:
		return "?"
	}
}

func TestSetRecordReserved(t *testing.T) {
	line := NewLine()
	if err := line.SetRecord(8, "L1"); !errors.Is(err, ErrReservedGroupCode) {
		t.Errorf("SetRecord(8) = %v, want ErrReservedGroupCode", err)
	}

	ins := NewInsert()
	if err := ins.SetRecord(2, "B1"); !errors.Is(err, ErrReservedGroupCode) {
		t.Errorf("SetRecord(2) on INSERT = %v, want ErrReservedGroupCode", err)
	}
	// Group code 2 is only reserved on INSERT.
	u := NewUnknownEntity("FOO")
	if err := u.SetRecord(2, "ok"); err != nil {
		t.Errorf("SetRecord(2) on unknown entity = %v", err)
	}
}

func TestSetGetRecordSymmetry(t *testing.T) {
	line := NewLine()
	sets := []Record{
		{Code: 10, Param: 1.25},
		{Code: 21, Param: -3.5},
		{Code: 62, Param: int16(7)},
		{Code: 6, Param: "DASHED"},
		{Code: 5, Param: "2a"},
		{Code: 1001, Param: "APPID"},
	}
	for _, r := range sets {
		if err := line.SetRecord(r.Code, r.Param); err != nil {
			t.Fatalf("SetRecord(%d) failed, reason: %v", r.Code, err)
		}
	}
	for _, r := range sets {
		got, ok := line.GetRecord(r.Code, 0)
		if !ok {
			t.Errorf("GetRecord(%d) not found", r.Code)
			continue
		}
		if got != r.Param {
			t.Errorf("GetRecord(%d) = %#v, want %#v", r.Code, got, r.Param)
		}
	}
	if line.Vertex(0).X != 1.25 {
		t.Errorf("SetRecord(10) did not reach the typed field")
	}
	if line.ColorNumber() != 7 {
		t.Errorf("SetRecord(62) did not reach the color field")
	}
	if line.Handle() != "2a" {
		t.Errorf("SetRecord(5) did not reach the handle field")
	}
}

func TestSetIndexedRecord(t *testing.T) {
	u := NewUnknownEntity("FOO")
	u.SetIndexedRecord(1040, "first", 0)
	u.SetIndexedRecord(1040, "second", 1)
	u.SetIndexedRecord(1040, "SECOND", 1)

	if got, ok := u.GetRecord(1040, 0); !ok || got != "first" {
		t.Errorf("GetRecord(1040, 0) = %v, %t", got, ok)
	}
	if got, ok := u.GetRecord(1040, 1); !ok || got != "SECOND" {
		t.Errorf("GetRecord(1040, 1) = %v, %t", got, ok)
	}
	if _, ok := u.GetRecord(1040, 2); ok {
		t.Errorf("GetRecord(1040, 2) unexpectedly found")
	}
}

func TestEntityCommonFieldsRoundTrip(t *testing.T) {
	src := `0
SECTION
2
ENTITIES
0
LINE
5
1C
102
{ACAD_REACTORS
330
1F
102
}
100
AcDbEntity
67
1
8
WALLS
6
CONTINUOUS
62
5
100
AcDbLine
10
0.0
20
0.0
30
0.0
11
1.0
21
0.0
31
0.0
0
ENDSEC
0
EOF
`
	m := readModel(t, src)
	line := m.Entities()[0].(*Line)
	if line.Handle() != "1C" {
		t.Errorf("Handle() = %q, want 1C", line.Handle())
	}
	if line.Linetype() != "CONTINUOUS" {
		t.Errorf("Linetype() = %q", line.Linetype())
	}
	if line.Layer().Name() != "WALLS" {
		t.Errorf("layer = %q", line.Layer().Name())
	}

	var buf bytes.Buffer
	out := NewOutput(&buf)
	if err := line.Write(out); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	out.Flush()
	if got, want := out.RecordCount(), line.CountRecords(); got != want {
		t.Errorf("written records = %d, CountRecords() = %d", got, want)
	}
	want := "  0\nLINE\n  5\n1C\n102\n{ACAD_REACTORS\n330\n1F\n102\n}\n100\nAcDbEntity\n" +
		" 67\n     1\n  8\nWALLS\n  6\nCONTINUOUS\n 62\n     5\n100\nAcDbLine\n" +
		" 10\n0.0\n 20\n0.0\n 30\n0.0\n 11\n1.0\n 21\n0.0\n 31\n0.0\n"
	if got := buf.String(); got != want {
		t.Errorf("serialized entity:\ngot  %q\nwant %q", got, want)
	}
}

func TestEntityClone(t *testing.T) {
	m := readModel(t, singleLineDXF)
	line := m.Entities()[0].(*Line)

	dst := NewModel(&Options{})
	clone := line.Clone(dst).(*Line)
	if clone.Vertex(1) != line.Vertex(1) {
		t.Errorf("clone endpoints differ")
	}
	if clone.Layer() == line.Layer() {
		t.Errorf("clone layer not rebound into the destination model")
	}
	if clone.Layer().Name() != "L1" {
		t.Errorf("clone layer = %q", clone.Layer().Name())
	}
	if dst.GetLayer("L1") != clone.Layer() {
		t.Errorf("clone layer not registered in the destination model")
	}
}

func TestDeletedEntitySkipped(t *testing.T) {
	m := readModel(t, singleLineDXF)
	m.Entities()[0].SetDeleted(true)

	before := m.CountRecords()
	s := writeModel(t, m)
	if bytes.Contains([]byte(s), []byte("LINE")) {
		t.Errorf("deleted entity still serialized:\n%s", s)
	}
	m2 := readModel(t, s)
	if len(m2.Entities()) != 0 {
		t.Errorf("deleted entity reappeared after round trip")
	}
	_ = before
}
