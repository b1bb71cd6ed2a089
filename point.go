// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Point is the POINT entity.
type Point struct {
	extrusionEntity
	coord     Vec3
	elevation float64
	hasElev   bool
}

// NewPoint returns an empty POINT entity.
func NewPoint() *Point {
	p := &Point{}
	p.initExtrusion(p, "POINT")
	return p
}

// Coords returns the point coordinate.
func (p *Point) Coords() Vec3 { return p.coord }

// SetCoords sets the point coordinate.
func (p *Point) SetCoords(v Vec3) { p.coord = v }

// HandleRecord stores the coordinate (10/20/30) and the optional
// elevation override (38).
func (p *Point) HandleRecord(code int32, param Param) bool {
	switch code {
	case 10:
		p.coord.X = paramFloat(param)
	case 20:
		p.coord.Y = paramFloat(param)
	case 30:
		p.coord.Z = paramFloat(param)
	case 38:
		p.elevation = paramFloat(param)
		p.coord.Z = p.elevation
		p.hasElev = true
	default:
		if p.handleExtrusionRecord(code, param) {
			return true
		}
		return p.handleCommonRecord(code, param)
	}
	return true
}

func (p *Point) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 10:
		return p.coord.X, true
	case 20:
		return p.coord.Y, true
	case 30:
		return p.coord.Z, true
	case 38:
		if p.hasElev {
			return p.elevation, true
		}
	}
	return p.extrusionRecord(code)
}

// Write serializes the entity.
func (p *Point) Write(out *Output) error {
	if err := p.preWrite(out); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 10, p.coord.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, p.coord.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, p.coord.Z); err != nil {
		return err
	}
	if p.hasElev {
		if err := writeDoubleRecord(out, 38, p.elevation); err != nil {
			return err
		}
	}
	if err := p.writeExtrusion(out); err != nil {
		return err
	}
	return p.writeRecords(out, p)
}

// CountRecords returns the exact number of records Write emits.
func (p *Point) CountRecords() int {
	cnt := p.countCommonRecords() + 3 + p.countExtrusion() + p.countWrittenRecords(p)
	if p.hasElev {
		cnt++
	}
	return cnt
}

// ExtractGeometry produces the point, or a line along the extrusion
// direction when the point has thickness.
func (p *Point) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	geom.Extrusion = p.extrusion
	geom.Thickness = p.thickness
	if p.thickness != 0 {
		tip := p.coord.Add(p.extrusion.Normalized().Scale(p.thickness))
		geom.Vertices = append(geom.Vertices, p.coord, tip)
		geom.Indices = append(geom.Indices, 0, 1)
		return GeometryLines
	}
	geom.Vertices = append(geom.Vertices, p.coord)
	geom.Indices = append(geom.Indices, 0)
	return GeometryPoints
}

// Clone copies the entity, rebinding its layer into model.
func (p *Point) Clone(model *Model) Entity {
	c := &Point{coord: p.coord, elevation: p.elevation, hasElev: p.hasElev}
	p.cloneBase(&c.EntityBase, c, model)
	c.extrusion = p.extrusion
	c.thickness = p.thickness
	c.exFlags = p.exFlags
	return c
}
