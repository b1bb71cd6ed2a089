// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"strings"
	"testing"
)

const lwpolylineDXF = `0
SECTION
2
ENTITIES
0
LWPOLYLINE
90
3
70
1
10
0.0
20
0.0
42
0.5
10
10.0
20
0.0
10
10.0
20
10.0
0
ENDSEC
0
EOF
`

func TestLWPolylineVertexGrouping(t *testing.T) {
	m := readModel(t, lwpolylineDXF)
	p, ok := m.Entities()[0].(*LWPolyline)
	if !ok {
		t.Fatalf("entity is %T, want *LWPolyline", m.Entities()[0])
	}
	if p.NumVertices() != 3 {
		t.Fatalf("NumVertices() = %d, want 3", p.NumVertices())
	}
	if !p.IsClosed() {
		t.Errorf("IsClosed() = false, want true")
	}
	if x, y := p.Vertex(1); x != 10 || y != 0 {
		t.Errorf("Vertex(1) = (%g,%g), want (10,0)", x, y)
	}
	// The bulge belongs to the first vertex; the repeat of group
	// code 10 started the second.
	if got := p.Bulge(0); got != 0.5 {
		t.Errorf("Bulge(0) = %g, want 0.5", got)
	}
	if got := p.Bulge(1); got != 0 {
		t.Errorf("Bulge(1) = %g, want 0", got)
	}
}

func TestLWPolylineRoundTrip(t *testing.T) {
	m := readModel(t, lwpolylineDXF)
	s := writeModel(t, m)
	// Bulges were present on input, so every vertex writes one.
	if strings.Count(s, "\n 42\n") != 3 {
		t.Errorf("expected 3 bulge records:\n%s", s)
	}
	m2 := readModel(t, s)
	if s2 := writeModel(t, m2); s2 != s {
		t.Errorf("lwpolyline round trip not stable:\n%q\n%q", s, s2)
	}
	p := m2.Entities()[0].(*LWPolyline)
	if p.NumVertices() != 3 {
		t.Errorf("NumVertices() = %d after round trip", p.NumVertices())
	}
}

func TestLWPolylineGeometry(t *testing.T) {
	m := readModel(t, lwpolylineDXF)
	p := m.Entities()[0].(*LWPolyline)

	var g Geometry
	if kind := p.ExtractGeometry(&g, nil); kind != GeometryLines {
		t.Fatalf("kind = %v, want LINES", kind)
	}
	if len(g.Vertices) != 3 {
		t.Fatalf("vertices = %d, want 3", len(g.Vertices))
	}
	// Closed polyline loops back to the start.
	if g.Indices[len(g.Indices)-1] != 0 {
		t.Errorf("indices = %v, want closing 0", g.Indices)
	}
}

func TestLWPolylineAppendVertex(t *testing.T) {
	p := NewLWPolyline()
	p.AppendVertex(1, 2)
	p.AppendVertex(3, 4)
	if p.NumVertices() != 2 {
		t.Fatalf("NumVertices() = %d, want 2", p.NumVertices())
	}
	if v, ok := p.GetRecord(90, 0); !ok || v != int32(2) {
		t.Errorf("GetRecord(90) = %v, %t, want 2", v, ok)
	}
	if x, y := p.Vertex(1); x != 3 || y != 4 {
		t.Errorf("Vertex(1) = (%g,%g)", x, y)
	}
}
