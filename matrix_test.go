// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestMatrixTransforms(t *testing.T) {
	m := IdentityMatrix().Translate(Vec3{1, 2, 3})
	if got := m.Transform(Vec3{0, 0, 0}); !vecNear(got, Vec3{1, 2, 3}) {
		t.Errorf("translate: got %v", got)
	}

	m = IdentityMatrix().RotateZ(90)
	if got := m.Transform(Vec3{1, 0, 0}); !vecNear(got, Vec3{0, 1, 0}) {
		t.Errorf("rotate: got %v", got)
	}

	m = IdentityMatrix().Scale(Vec3{2, 3, 4})
	if got := m.Transform(Vec3{1, 1, 1}); !vecNear(got, Vec3{2, 3, 4}) {
		t.Errorf("scale: got %v", got)
	}

	// Composition applies right to left.
	m = IdentityMatrix().Translate(Vec3{10, 0, 0}).RotateZ(90)
	if got := m.Transform(Vec3{1, 0, 0}); !vecNear(got, Vec3{10, 1, 0}) {
		t.Errorf("compose: got %v", got)
	}
}

func TestGenerateUCS(t *testing.T) {
	tests := []struct {
		name string
		z    Vec3
		ref  Vec3 // a point in UCS coordinates
		want Vec3 // the same point in world coordinates
	}{
		{"+Z is identity", Vec3{0, 0, 1}, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"-Z flips X", Vec3{0, 0, -1}, Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := GenerateUCS(tt.z)
			if got := m.Transform(tt.ref); !vecNear(got, tt.want) {
				t.Errorf("GenerateUCS(%v).Transform(%v) = %v, want %v", tt.z, tt.ref, got, tt.want)
			}
		})
	}

	// The basis must be orthonormal with Z as the last column for any
	// extrusion direction.
	for _, z := range []Vec3{{1, 0, 0}, {0.5, 0.5, 0.7}, {0, 1, 0}, {0.001, 0.001, -1}} {
		m := GenerateUCS(z)
		x := Vec3{m[0][0], m[1][0], m[2][0]}
		y := Vec3{m[0][1], m[1][1], m[2][1]}
		zc := Vec3{m[0][2], m[1][2], m[2][2]}
		if !vecNear(zc, z.Normalized()) {
			t.Errorf("UCS(%v): Z column %v", z, zc)
		}
		if d := x.Dot(y); math.Abs(d) > 1e-9 {
			t.Errorf("UCS(%v): X·Y = %g", z, d)
		}
		if d := x.Dot(zc); math.Abs(d) > 1e-9 {
			t.Errorf("UCS(%v): X·Z = %g", z, d)
		}
		if l := x.Length(); math.Abs(l-1) > 1e-9 {
			t.Errorf("UCS(%v): |X| = %g", z, l)
		}
	}
}
