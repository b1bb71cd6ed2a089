// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"reflect"
	"testing"
)

const polyfaceDXF = `0
SECTION
2
ENTITIES
0
POLYLINE
66
1
70
64
10
0.0
20
0.0
30
0.0
0
VERTEX
10
0.0
20
0.0
30
0.0
70
192
0
VERTEX
10
1.0
20
0.0
30
0.0
70
192
0
VERTEX
10
1.0
20
1.0
30
0.0
70
192
0
VERTEX
10
0.0
20
1.0
30
0.0
70
192
0
VERTEX
70
128
71
1
72
2
73
3
74
4
0
SEQEND
0
ENDSEC
0
EOF
`

func TestPolyfaceMeshPartition(t *testing.T) {
	m := readModel(t, polyfaceDXF)
	p, ok := m.Entities()[0].(*Polyline)
	if !ok {
		t.Fatalf("entity is %T, want *Polyline", m.Entities()[0])
	}
	if p.Type() != PolyfaceMeshType {
		t.Errorf("Type() = %v, want polyface mesh", p.Type())
	}
	if len(p.CoordVertices()) != 4 {
		t.Errorf("coord vertices = %d, want 4", len(p.CoordVertices()))
	}
	if len(p.IndexVertices()) != 1 {
		t.Errorf("index vertices = %d, want 1", len(p.IndexVertices()))
	}
	if len(p.FrameVertices()) != 0 {
		t.Errorf("frame vertices = %d, want 0", len(p.FrameVertices()))
	}
}

func TestPolyfaceMeshGeometry(t *testing.T) {
	m := readModel(t, polyfaceDXF)
	p := m.Entities()[0].(*Polyline)

	var g Geometry
	kind := p.ExtractGeometry(&g, nil)
	if kind != GeometryPolygons {
		t.Fatalf("kind = %v, want POLYGONS", kind)
	}
	wantVerts := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	if !reflect.DeepEqual(g.Vertices, wantVerts) {
		t.Errorf("vertices = %v, want %v", g.Vertices, wantVerts)
	}
	wantIndices := []int{0, 1, 2, 3, -1}
	if !reflect.DeepEqual(g.Indices, wantIndices) {
		t.Errorf("indices = %v, want %v", g.Indices, wantIndices)
	}
}

func TestPolyfaceHiddenEdgeIndices(t *testing.T) {
	p := NewPolyline()
	p.SetFlags(PolylinePolyfaceMesh)
	for _, c := range []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}} {
		v := NewVertex()
		v.SetCoords(c)
		v.SetFlags(VertexMesh | VertexFaceRecord)
		p.AppendVertex(v)
	}
	face := NewVertex()
	face.SetFlags(VertexFaceRecord)
	face.SetIndex(0, 1)
	face.SetIndex(1, -2)
	face.SetIndex(2, 3)
	p.AppendVertex(face)

	var g Geometry
	if kind := p.ExtractGeometry(&g, nil); kind != GeometryPolygons {
		t.Fatalf("kind = %v, want POLYGONS", kind)
	}
	// Hidden edges keep their position; only the sign is dropped.
	want := []int{0, 1, 2, -1}
	if !reflect.DeepEqual(g.Indices, want) {
		t.Errorf("indices = %v, want %v", g.Indices, want)
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	m := readModel(t, polyfaceDXF)
	s := writeModel(t, m)
	m2 := readModel(t, s)
	if s2 := writeModel(t, m2); s2 != s {
		t.Errorf("polyline round trip not stable:\n%q\n%q", s, s2)
	}
	p := m2.Entities()[0].(*Polyline)
	if len(p.CoordVertices()) != 4 || len(p.IndexVertices()) != 1 {
		t.Errorf("partition lost in round trip")
	}
}

func TestPolygonMeshGeometry(t *testing.T) {
	p := NewPolyline()
	p.SetFlags(PolylinePolygonMesh)
	p.countM = 2
	p.countN = 2
	p.pflags |= polyHasCountM | polyHasCountN
	for _, c := range []Vec3{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}} {
		v := NewVertex()
		v.SetCoords(c)
		v.SetFlags(VertexMesh)
		p.AppendVertex(v)
	}

	var g Geometry
	if kind := p.ExtractGeometry(&g, nil); kind != GeometryPolygons {
		t.Fatalf("kind = %v, want POLYGONS", kind)
	}
	want := []int{0, 2, 3, 1, -1}
	if !reflect.DeepEqual(g.Indices, want) {
		t.Errorf("indices = %v, want %v", g.Indices, want)
	}
}

func TestPolylineClosedLines(t *testing.T) {
	p := NewPolyline()
	p.SetFlags(PolylineClosedM)
	for _, c := range []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}} {
		v := NewVertex()
		v.SetCoords(c)
		p.AppendVertex(v)
	}
	var g Geometry
	if kind := p.ExtractGeometry(&g, nil); kind != GeometryLines {
		t.Fatalf("kind = %v, want LINES", kind)
	}
	want := []int{0, 1, 2, 0}
	if !reflect.DeepEqual(g.Indices, want) {
		t.Errorf("indices = %v, want %v", g.Indices, want)
	}
}

func TestPolylineVertexTraversal(t *testing.T) {
	m := readModel(t, polyfaceDXF)

	var names []string
	m.TraverseEntities(func(state *State, e Entity) bool {
		names = append(names, e.EntityName())
		return true
	}, false, false, true)
	// The polyline itself, then its coordinate vertices.
	want := []string{"POLYLINE", "VERTEX", "VERTEX", "VERTEX", "VERTEX"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("visited %v, want %v", names, want)
	}
}

func TestSplineFramePartition(t *testing.T) {
	p := NewPolyline()
	p.SetFlags(PolylineSplineFit)
	frame := NewVertex()
	frame.SetFlags(VertexSplineFrame)
	p.AppendVertex(frame)
	coord := NewVertex()
	coord.SetFlags(VertexSplineFit)
	p.AppendVertex(coord)

	if len(p.FrameVertices()) != 1 {
		t.Errorf("frame vertices = %d, want 1", len(p.FrameVertices()))
	}
	if len(p.CoordVertices()) != 1 {
		t.Errorf("coord vertices = %d, want 1", len(p.CoordVertices()))
	}
}
