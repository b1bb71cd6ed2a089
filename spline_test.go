// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"reflect"
	"strings"
	"testing"
)

const splineDXF = `0
SECTION
2
ENTITIES
0
SPLINE
70
8
71
3
72
8
73
4
74
0
40
0.0
40
0.0
40
0.0
40
0.0
40
1.0
40
1.0
40
1.0
40
1.0
10
0.0
20
0.0
30
0.0
10
1.0
20
2.0
30
0.0
10
2.0
20
2.0
30
0.0
10
3.0
20
0.0
30
0.0
0
ENDSEC
0
EOF
`

func TestSplineStreams(t *testing.T) {
	m := readModel(t, splineDXF)
	s, ok := m.Entities()[0].(*Spline)
	if !ok {
		t.Fatalf("entity is %T, want *Spline", m.Entities()[0])
	}
	if s.Degree() != 3 {
		t.Errorf("Degree() = %d, want 3", s.Degree())
	}
	if len(s.Knots()) != 8 {
		t.Errorf("knots = %d, want 8", len(s.Knots()))
	}
	wantControls := []Vec3{{0, 0, 0}, {1, 2, 0}, {2, 2, 0}, {3, 0, 0}}
	if !reflect.DeepEqual(s.ControlPoints(), wantControls) {
		t.Errorf("control points = %v, want %v", s.ControlPoints(), wantControls)
	}
	if len(s.FitPoints()) != 0 {
		t.Errorf("fit points = %d, want 0", len(s.FitPoints()))
	}
}

func TestSplineRoundTrip(t *testing.T) {
	m := readModel(t, splineDXF)
	s := writeModel(t, m)
	m2 := readModel(t, s)
	if s2 := writeModel(t, m2); s2 != s {
		t.Errorf("spline round trip not stable:\n%q\n%q", s, s2)
	}
}

func TestSplineWeightsElided(t *testing.T) {
	s := NewSpline()
	s.SetKnots([]float64{0, 0, 1, 1})
	s.AppendControlPoint(Vec3{0, 0, 0})
	s.AppendControlPoint(Vec3{1, 0, 0})
	s.weights = []float64{1, 1}

	out := writeEntityString(t, s)
	if strings.Contains(out, "\n 41\n") {
		t.Errorf("all-1 weights not elided:\n%s", out)
	}
	if got, want := strings.Count(out, "\n 40\n"), 4; got != want {
		t.Errorf("knot records = %d, want %d", got, want)
	}

	s.weights = []float64{1, 2}
	out = writeEntityString(t, s)
	if strings.Count(out, " 41\n") != 2 {
		t.Errorf("weights missing from output:\n%s", out)
	}
}

func TestSplineCounters(t *testing.T) {
	m := readModel(t, splineDXF)
	s := m.Entities()[0].(*Spline)
	// The counters track the streams, not the records read.
	if v, ok := s.GetRecord(72, 0); !ok || v != int16(8) {
		t.Errorf("GetRecord(72) = %v, %t, want 8", v, ok)
	}
	if v, ok := s.GetRecord(73, 0); !ok || v != int16(4) {
		t.Errorf("GetRecord(73) = %v, %t, want 4", v, ok)
	}
}
