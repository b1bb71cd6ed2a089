// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "math"

// GeometryType describes what ExtractGeometry's vertices represent.
type GeometryType int

// Geometry extraction results.
const (
	GeometryNone GeometryType = iota
	GeometryPoints
	GeometryLines
	GeometryPolygons
)

func (t GeometryType) String() string {
	switch t {
	case GeometryPoints:
		return "POINTS"
	case GeometryLines:
		return "LINES"
	case GeometryPolygons:
		return "POLYGONS"
	default:
		return "NONE"
	}
}

// Geometry receives the output of Entity.ExtractGeometry. Indices
// index into Vertices; for polygons a -1 terminates each face. Face
// indices are never negative: hidden-edge marks of polyface face
// records are not carried over.
type Geometry struct {
	Vertices  []Vec3
	Indices   []int
	Extrusion Vec3
	Thickness float64
}

func (g *Geometry) reset() {
	g.Vertices = g.Vertices[:0]
	g.Indices = g.Indices[:0]
	g.Extrusion = defaultExtrusion
	g.Thickness = 0
}

// TessellationParams controls how curved entities are segmented.
// The zero value uses the chord-error formula with DefaultChordError.
type TessellationParams struct {
	// CircleSegments, when positive, overrides the computed segment
	// count for full circles.
	CircleSegments int
	// MaxChordError bounds the distance between the curve and its
	// tessellation.
	MaxChordError float64
}

// DefaultChordError is the chord error used when none is configured.
const DefaultChordError = 0.1

// segmentsForRadius returns the number of segments a full circle of
// the given radius is split into. Never less than 3.
func segmentsForRadius(params *TessellationParams, r float64) int {
	if params != nil && params.CircleSegments > 0 {
		return params.CircleSegments
	}
	maxerr := DefaultChordError
	if params != nil && params.MaxChordError > 0 {
		maxerr = params.MaxChordError
	}
	if maxerr >= r || r <= 0 {
		return 3
	}
	rd := r - maxerr
	n := int(math.Ceil(math.Pi / math.Atan(math.Sqrt(r*r-rd*rd)/rd)))
	if n < 3 {
		n = 3
	}
	return n
}
