// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"bytes"
	"strings"
	"testing"
)

const minimalDXF = `0
SECTION
2
ENTITIES
0
ENDSEC
0
EOF
`

func readModel(t *testing.T, src string) *Model {
	t.Helper()
	m := NewModel(&Options{})
	if err := m.Read(NewInputBytes([]byte(src))); err != nil {
		t.Fatalf("Read failed, reason: %v", err)
	}
	return m
}

func writeModel(t *testing.T, m *Model) string {
	t.Helper()
	var buf bytes.Buffer
	out := NewOutput(&buf)
	if err := m.Write(out); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	return buf.String()
}

func writeEntityString(t *testing.T, e Entity) string {
	t.Helper()
	var buf bytes.Buffer
	out := NewOutput(&buf)
	if err := e.Write(out); err != nil {
		t.Fatalf("entity Write failed, reason: %v", err)
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush failed, reason: %v", err)
	}
	return buf.String()
}

func TestMinimalFile(t *testing.T) {
	m := readModel(t, minimalDXF)

	if len(m.Sections()) != 1 {
		t.Fatalf("sections = %d, want 1", len(m.Sections()))
	}
	es, ok := m.Sections()[0].(*EntitiesSection)
	if !ok {
		t.Fatalf("section is %T, want *EntitiesSection", m.Sections()[0])
	}
	if len(es.Entities()) != 0 {
		t.Errorf("entities = %d, want 0", len(es.Entities()))
	}

	var buf bytes.Buffer
	out := NewOutput(&buf)
	if err := m.Write(out); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	if got, want := out.RecordCount(), m.CountRecords(); got != want {
		t.Errorf("written records = %d, CountRecords() = %d", got, want)
	}
	want := "  0\nSECTION\n  2\nENTITIES\n  0\nENDSEC\n  0\nEOF\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

const singleLineDXF = `0
SECTION
2
TABLES
0
TABLE
2
LAYER
70
1
0
LAYER
2
L1
70
0
62
3
0
ENDTAB
0
ENDSEC
0
SECTION
2
ENTITIES
0
LINE
8
L1
62
3
10
0.0
20
0.0
30
0.0
11
10.0
21
5.0
31
2.0
0
ENDSEC
0
EOF
`

func TestSingleLine(t *testing.T) {
	m := readModel(t, singleLineDXF)

	entities := m.Entities()
	if len(entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(entities))
	}
	line, ok := entities[0].(*Line)
	if !ok {
		t.Fatalf("entity is %T, want *Line", entities[0])
	}
	if got := line.Vertex(0); got != (Vec3{0, 0, 0}) {
		t.Errorf("Vertex(0) = %v", got)
	}
	if got := line.Vertex(1); got != (Vec3{10, 5, 2}) {
		t.Errorf("Vertex(1) = %v", got)
	}
	if got := line.ColorNumber(); got != 3 {
		t.Errorf("ColorNumber() = %d, want 3", got)
	}

	layer := m.GetLayer("L1")
	if layer == nil {
		t.Fatalf("GetLayer(L1) = nil")
	}
	if layer.ColorNumber() != 3 {
		t.Errorf("layer color = %d, want 3", layer.ColorNumber())
	}
	if line.Layer() != layer {
		t.Errorf("entity layer is not the registered layer")
	}

	s := writeModel(t, m)
	for _, want := range []string{"10.0\n", "5.0\n", "2.0\n", "L1\n"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}

	// Numeric values survive a second round trip byte for byte.
	m2 := readModel(t, s)
	if s2 := writeModel(t, m2); s2 != s {
		t.Errorf("round trip not stable:\n%q\n%q", s, s2)
	}
}

func TestLayerInvariant(t *testing.T) {
	m := readModel(t, singleLineDXF)
	ok := m.TraverseEntities(func(state *State, e Entity) bool {
		if e.Layer() == nil {
			t.Errorf("%s has nil layer", e.EntityName())
			return false
		}
		if got := m.GetLayer(e.Layer().Name()); got != e.Layer() {
			t.Errorf("GetLayer(%q) = %p, want %p", e.Layer().Name(), got, e.Layer())
		}
		return true
	}, true, false, true)
	if !ok {
		t.Fatalf("traversal stopped early")
	}
}

const handlesDXF = `0
SECTION
2
HEADER
9
$HANDSEED
5
1
0
ENDSEC
0
SECTION
2
ENTITIES
0
LINE
5
5
10
0.0
20
0.0
30
0.0
11
1.0
21
1.0
31
0.0
0
POINT
5
A
10
0.0
20
0.0
30
0.0
0
CIRCLE
5
FF
10
0.0
20
0.0
30
0.0
40
1.0
0
ENDSEC
0
EOF
`

func TestHandleMonotonicity(t *testing.T) {
	m := readModel(t, handlesDXF)

	if got := m.GetUniqueHandle(); got != 0x100 {
		t.Fatalf("GetUniqueHandle() = %#x, want 0x100", got)
	}
	if got := m.GetUniqueHandle(); got != 0x101 {
		t.Fatalf("GetUniqueHandle() = %#x, want 0x101", got)
	}

	s := writeModel(t, m)
	// The handle seed is bumped past the largest handle: one handle
	// is consumed for $HANDSEED and immediately released again.
	i := strings.Index(s, "$HANDSEED")
	if i < 0 {
		t.Fatalf("output has no $HANDSEED:\n%s", s)
	}
	rest := s[i:]
	if !strings.Contains(rest[:30], "102") {
		t.Errorf("$HANDSEED not rewritten to 102:\n%s", rest[:30])
	}
	if m.largestHandle != 0x101 {
		t.Errorf("largestHandle = %#x after write, want 0x101", m.largestHandle)
	}
}

func TestUnknownEntityPreserved(t *testing.T) {
	src := `0
SECTION
2
ENTITIES
0
FOOBAR
10
1.5
20
2.5
1001
x
0
ENDSEC
0
EOF
`
	m := readModel(t, src)
	entities := m.Entities()
	if len(entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(entities))
	}
	u, ok := entities[0].(*UnknownEntity)
	if !ok {
		t.Fatalf("entity is %T, want *UnknownEntity", entities[0])
	}
	if u.EntityName() != "FOOBAR" {
		t.Errorf("EntityName() = %q", u.EntityName())
	}
	wantRecords := []Record{
		{Code: 10, Param: 1.5},
		{Code: 20, Param: 2.5},
		{Code: 1001, Param: "x"},
	}
	if u.NumRecordsInHolder() != len(wantRecords) {
		t.Fatalf("retained records = %d, want %d", u.NumRecordsInHolder(), len(wantRecords))
	}
	for i, want := range wantRecords {
		if got := u.RecordInHolder(i); got != want {
			t.Errorf("record %d = %#v, want %#v", i, got, want)
		}
	}

	var buf bytes.Buffer
	out := NewOutput(&buf)
	if err := u.Write(out); err != nil {
		t.Fatalf("Write failed, reason: %v", err)
	}
	out.Flush()
	want := "  0\nFOOBAR\n 10\n1.5\n 20\n2.5\n1001\nx\n"
	if got := buf.String(); got != want {
		t.Errorf("serialized entity = %q, want %q", got, want)
	}
}

func TestUnknownSectionPreserved(t *testing.T) {
	src := `0
SECTION
2
WEIRD
0
SOMETHING
62
7
0
ENDSEC
0
EOF
`
	m := readModel(t, src)
	us, ok := m.Sections()[0].(*UnknownSection)
	if !ok {
		t.Fatalf("section is %T, want *UnknownSection", m.Sections()[0])
	}
	if us.SectionName() != "WEIRD" {
		t.Errorf("SectionName() = %q", us.SectionName())
	}
	if len(us.Records()) != 2 {
		t.Fatalf("records = %d, want 2", len(us.Records()))
	}
	s := writeModel(t, m)
	m2 := readModel(t, s)
	if s2 := writeModel(t, m2); s2 != s {
		t.Errorf("unknown section round trip not stable")
	}
}

func TestHeaderCommentsRoundTrip(t *testing.T) {
	src := "999\ngenerated by nothing\n" + minimalDXF
	m := readModel(t, src)
	if got := m.HeaderComments(); len(got) != 1 || got[0] != "generated by nothing" {
		t.Fatalf("HeaderComments() = %q", got)
	}
	s := writeModel(t, m)
	if !strings.HasPrefix(s, "999\ngenerated by nothing\n") {
		t.Errorf("output does not start with the header comment:\n%s", s)
	}
}

func TestDxfVersion(t *testing.T) {
	tests := []struct {
		acadver string
		want    string
	}{
		{"AC1006", "r10"},
		{"AC1009", "r11/r12"},
		{"AC1012", "r13"},
		{"AC1013", "r14"},
		{"AC1015", "AutoCAD 2000"},
		{"AC1018", "AutoCAD 2004"},
		{"AC1021", "AutoCAD 2007"},
		{"AC1024", "AutoCAD 2010"},
		{"XXXX", ""},
	}
	for _, tt := range tests {
		t.Run(tt.acadver, func(t *testing.T) {
			src := "0\nSECTION\n2\nHEADER\n9\n$ACADVER\n1\n" + tt.acadver + "\n0\nENDSEC\n0\nEOF\n"
			m := readModel(t, src)
			if got := m.DxfVersion(); got != tt.want {
				t.Errorf("DxfVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBinaryModelRead(t *testing.T) {
	var b bytes.Buffer
	b.WriteString("AutoCAD Binary DXF\r\n\x1a\x00")
	writeRec := func(code byte, s string) {
		b.WriteByte(code)
		b.WriteString(s)
		b.WriteByte(0)
	}
	writeRec(0, "SECTION")
	writeRec(2, "ENTITIES")
	writeRec(0, "ENDSEC")
	writeRec(0, "EOF")

	m := NewModel(&Options{})
	if err := m.Read(NewInputBytes(b.Bytes())); err != nil {
		t.Fatalf("binary Read failed, reason: %v", err)
	}
	if len(m.Sections()) != 1 {
		t.Fatalf("sections = %d, want 1", len(m.Sections()))
	}
	// Binary input becomes ASCII output.
	s := writeModel(t, m)
	want := "  0\nSECTION\n  2\nENTITIES\n  0\nENDSEC\n  0\nEOF\n"
	if s != want {
		t.Errorf("output = %q, want %q", s, want)
	}
}

func TestTruncatedFileFails(t *testing.T) {
	m := NewModel(&Options{})
	err := m.Read(NewInputBytes([]byte("0\nSECTION\n2\nENTITIES\n0\nLINE\n10\n")))
	if err == nil {
		t.Fatalf("expected error for truncated file")
	}
	// Partial models are not exposed.
	if len(m.Sections()) != 0 {
		t.Errorf("sections = %d after failed read, want 0", len(m.Sections()))
	}
}

func TestBinaryOutputUnsupported(t *testing.T) {
	m := NewModel(&Options{BinaryOutput: true})
	if err := m.Read(NewInputBytes([]byte(minimalDXF))); err != nil {
		t.Fatalf("Read failed, reason: %v", err)
	}
	var buf bytes.Buffer
	err := m.Write(NewOutput(&buf))
	if err != ErrBinaryOutputUnsupported {
		t.Errorf("Write = %v, want ErrBinaryOutputUnsupported", err)
	}
}

func TestGetVersion(t *testing.T) {
	if got := GetVersionString(); got != "DIME v0.9 biscuit" {
		t.Errorf("GetVersionString() = %q", got)
	}
	major, minor := GetVersion()
	if major != 0 || minor != 9 {
		t.Errorf("GetVersion() = %d, %d, want 0, 9", major, minor)
	}
}
