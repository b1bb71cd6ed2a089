// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"math"
	"testing"
)

func TestCircleSegments(t *testing.T) {
	// The override wins when positive.
	if got := segmentsForRadius(&TessellationParams{CircleSegments: 17}, 100); got != 17 {
		t.Errorf("override: segments = %d, want 17", got)
	}

	// Never fewer than 3 segments, for any radius and chord error.
	for _, r := range []float64{1e-9, 0.01, 1, 100, 1e9} {
		for _, e := range []float64{1e-6, 0.1, 10, 1e6} {
			got := segmentsForRadius(&TessellationParams{MaxChordError: e}, r)
			if got < 3 {
				t.Errorf("segments(r=%g, err=%g) = %d, want >= 3", r, e, got)
			}
		}
	}

	// Tighter chord error means more segments.
	loose := segmentsForRadius(&TessellationParams{MaxChordError: 1}, 100)
	tight := segmentsForRadius(&TessellationParams{MaxChordError: 0.01}, 100)
	if tight <= loose {
		t.Errorf("segments: tight %d <= loose %d", tight, loose)
	}
}

func TestCircleExtractGeometry(t *testing.T) {
	c := NewCircle()
	c.SetCenter(Vec3{1, 2, 3})
	c.SetRadius(10)

	var g Geometry
	kind := c.ExtractGeometry(&g, &TessellationParams{CircleSegments: 8})
	if kind != GeometryLines {
		t.Fatalf("kind = %v, want LINES", kind)
	}
	if len(g.Vertices) != 8 {
		t.Fatalf("vertices = %d, want 8", len(g.Vertices))
	}
	// The loop closes back onto the first vertex.
	if g.Indices[len(g.Indices)-1] != 0 {
		t.Errorf("loop not closed: %v", g.Indices)
	}
	for _, v := range g.Vertices {
		r := math.Hypot(v.X-1, v.Y-2)
		if math.Abs(r-10) > 1e-9 || v.Z != 3 {
			t.Errorf("vertex %v not on the circle", v)
		}
	}
}

func TestArcSweep(t *testing.T) {
	a := NewArc()
	a.SetStartAngle(350)
	a.SetEndAngle(10)
	// End below start wraps once around.
	if got := a.Sweep(); got != 20 {
		t.Errorf("Sweep() = %g, want 20", got)
	}

	a.SetStartAngle(45)
	a.SetEndAngle(45)
	// Coincident angles sweep a full circle. Kept from the original
	// implementation; not canonical behavior.
	if got := a.Sweep(); got != 360 {
		t.Errorf("Sweep() = %g, want 360", got)
	}
}

func TestArcExtractGeometry(t *testing.T) {
	a := NewArc()
	a.SetCenter(Vec3{0, 0, 0})
	a.SetRadius(1)
	a.SetStartAngle(0)
	a.SetEndAngle(90)

	var g Geometry
	kind := a.ExtractGeometry(&g, &TessellationParams{CircleSegments: 8})
	if kind != GeometryLines {
		t.Fatalf("kind = %v, want LINES", kind)
	}
	first := g.Vertices[0]
	last := g.Vertices[len(g.Vertices)-1]
	if !vecNear(first, Vec3{1, 0, 0}) {
		t.Errorf("first vertex = %v, want (1,0,0)", first)
	}
	if !vecNear(last, Vec3{0, 1, 0}) {
		t.Errorf("last vertex = %v, want (0,1,0)", last)
	}
}

func TestPointThicknessGeometry(t *testing.T) {
	p := NewPoint()
	p.SetCoords(Vec3{1, 1, 0})

	var g Geometry
	if kind := p.ExtractGeometry(&g, nil); kind != GeometryPoints {
		t.Fatalf("kind = %v, want POINTS", kind)
	}

	p.SetThickness(2)
	if kind := p.ExtractGeometry(&g, nil); kind != GeometryLines {
		t.Fatalf("thick point kind = %v, want LINES", kind)
	}
	if !vecNear(g.Vertices[1], Vec3{1, 1, 2}) {
		t.Errorf("thick point tip = %v, want (1,1,2)", g.Vertices[1])
	}
}

func TestSolidCornerSwap(t *testing.T) {
	s := NewSolid()
	s.SetCorner(0, Vec3{0, 0, 0})
	s.SetCorner(1, Vec3{1, 0, 0})
	s.SetCorner(2, Vec3{0, 1, 0})
	s.SetCorner(3, Vec3{1, 1, 0})

	var g Geometry
	if kind := s.ExtractGeometry(&g, nil); kind != GeometryPolygons {
		t.Fatalf("kind = %v, want POLYGONS", kind)
	}
	// SOLID stores its corners in zigzag order; extraction swaps the
	// last two so the polygon winds correctly.
	want := []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for i, w := range want {
		if g.Vertices[i] != w {
			t.Errorf("vertex %d = %v, want %v", i, g.Vertices[i], w)
		}
	}
}

func TestFace3DTriangle(t *testing.T) {
	f := New3DFace()
	f.SetCorner(0, Vec3{0, 0, 0})
	f.SetCorner(1, Vec3{1, 0, 0})
	f.SetCorner(2, Vec3{0, 1, 0})
	f.SetCorner(3, Vec3{0, 1, 0})

	var g Geometry
	if kind := f.ExtractGeometry(&g, nil); kind != GeometryPolygons {
		t.Fatalf("kind = %v, want POLYGONS", kind)
	}
	if len(g.Vertices) != 3 {
		t.Errorf("triangle vertices = %d, want 3", len(g.Vertices))
	}
}
