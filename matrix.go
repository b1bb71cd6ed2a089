// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "math"

// Vec3 is a 3-D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns |v|.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// defaultExtrusion is the +Z extrusion direction entities default to.
var defaultExtrusion = Vec3{0, 0, 1}

// Matrix4 is a 4x4 row-major transformation matrix.
type Matrix4 [4][4]float64

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mult returns m · o.
func (m Matrix4) Mult(o Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Translate returns m · T(t).
func (m Matrix4) Translate(t Vec3) Matrix4 {
	o := IdentityMatrix()
	o[0][3] = t.X
	o[1][3] = t.Y
	o[2][3] = t.Z
	return m.Mult(o)
}

// RotateZ returns m · Rz(deg), with the angle in degrees.
func (m Matrix4) RotateZ(deg float64) Matrix4 {
	rad := deg * math.Pi / 180
	s, c := math.Sincos(rad)
	o := IdentityMatrix()
	o[0][0] = c
	o[0][1] = -s
	o[1][0] = s
	o[1][1] = c
	return m.Mult(o)
}

// Scale returns m · S(s).
func (m Matrix4) Scale(s Vec3) Matrix4 {
	o := IdentityMatrix()
	o[0][0] = s.X
	o[1][1] = s.Y
	o[2][2] = s.Z
	return m.Mult(o)
}

// Transform applies m to the point p.
func (m Matrix4) Transform(p Vec3) Vec3 {
	return Vec3{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// GenerateUCS builds the user coordinate system for an extrusion
// direction with the arbitrary axis algorithm: the reference axis is
// world Y when both |Zx| and |Zy| are below 1/64, world Z otherwise;
// X = ref × Z and Y = Z × X, all normalized, form the basis columns.
func GenerateUCS(z Vec3) Matrix4 {
	z = z.Normalized()
	ref := Vec3{0, 0, 1}
	if math.Abs(z.X) < 1.0/64 && math.Abs(z.Y) < 1.0/64 {
		ref = Vec3{0, 1, 0}
	}
	x := ref.Cross(z).Normalized()
	y := z.Cross(x).Normalized()
	m := IdentityMatrix()
	m[0][0], m[1][0], m[2][0] = x.X, x.Y, x.Z
	m[0][1], m[1][1], m[2][1] = y.X, y.Y, y.Z
	m[0][2], m[1][2], m[2][2] = z.X, z.Y, z.Z
	return m
}
