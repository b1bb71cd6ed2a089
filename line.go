// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

// Line is the LINE entity, a segment between two 3-D points.
type Line struct {
	extrusionEntity
	v [2]Vec3
}

// NewLine returns an empty LINE entity.
func NewLine() *Line {
	l := &Line{}
	l.initExtrusion(l, "LINE")
	return l
}

// Vertex returns endpoint idx (0 or 1).
func (l *Line) Vertex(idx int) Vec3 { return l.v[idx] }

// SetVertex sets endpoint idx (0 or 1).
func (l *Line) SetVertex(idx int, v Vec3) { l.v[idx] = v }

// HandleRecord stores the endpoints (10/20/30, 11/21/31).
func (l *Line) HandleRecord(code int32, param Param) bool {
	switch code {
	case 10:
		l.v[0].X = paramFloat(param)
	case 20:
		l.v[0].Y = paramFloat(param)
	case 30:
		l.v[0].Z = paramFloat(param)
	case 11:
		l.v[1].X = paramFloat(param)
	case 21:
		l.v[1].Y = paramFloat(param)
	case 31:
		l.v[1].Z = paramFloat(param)
	default:
		if l.handleExtrusionRecord(code, param) {
			return true
		}
		return l.handleCommonRecord(code, param)
	}
	return true
}

func (l *Line) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 10:
		return l.v[0].X, true
	case 20:
		return l.v[0].Y, true
	case 30:
		return l.v[0].Z, true
	case 11:
		return l.v[1].X, true
	case 21:
		return l.v[1].Y, true
	case 31:
		return l.v[1].Z, true
	}
	return l.extrusionRecord(code)
}

// Write serializes the entity.
func (l *Line) Write(out *Output) error {
	if err := l.preWrite(out); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := writeDoubleRecord(out, int32(10+i), l.v[i].X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, int32(20+i), l.v[i].Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, int32(30+i), l.v[i].Z); err != nil {
			return err
		}
	}
	if err := l.writeExtrusion(out); err != nil {
		return err
	}
	return l.writeRecords(out, l)
}

// CountRecords returns the exact number of records Write emits.
func (l *Line) CountRecords() int {
	return l.countCommonRecords() + 6 + l.countExtrusion() + l.countWrittenRecords(l)
}

// ExtractGeometry produces the two endpoints as a line.
func (l *Line) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	geom.Vertices = append(geom.Vertices, l.v[0], l.v[1])
	geom.Indices = append(geom.Indices, 0, 1)
	geom.Extrusion = l.extrusion
	geom.Thickness = l.thickness
	return GeometryLines
}

// Clone copies the entity, rebinding its layer into model.
func (l *Line) Clone(model *Model) Entity {
	c := &Line{v: l.v}
	l.cloneBase(&c.EntityBase, c, model)
	c.extrusion = l.extrusion
	c.thickness = l.thickness
	c.exFlags = l.exFlags
	return c
}
