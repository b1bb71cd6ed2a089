// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "math"

// Ellipse is the ELLIPSE entity. The major axis endpoint is relative
// to the center; start and end parameters are in radians.
type Ellipse struct {
	extrusionEntity
	center     Vec3
	majorAxis  Vec3
	ratio      float64
	startParam float64
	endParam   float64
}

// NewEllipse returns an empty ELLIPSE entity.
func NewEllipse() *Ellipse {
	e := &Ellipse{ratio: 1, endParam: 2 * math.Pi}
	e.initExtrusion(e, "ELLIPSE")
	return e
}

// Center returns the ellipse center.
func (e *Ellipse) Center() Vec3 { return e.center }

// SetCenter sets the ellipse center.
func (e *Ellipse) SetCenter(v Vec3) { e.center = v }

// MajorAxisEndpoint returns the major axis vector.
func (e *Ellipse) MajorAxisEndpoint() Vec3 { return e.majorAxis }

// SetMajorAxisEndpoint sets the major axis vector.
func (e *Ellipse) SetMajorAxisEndpoint(v Vec3) { e.majorAxis = v }

// Ratio returns the minor to major axis ratio.
func (e *Ellipse) Ratio() float64 { return e.ratio }

// SetRatio sets the minor to major axis ratio.
func (e *Ellipse) SetRatio(r float64) { e.ratio = r }

// StartParam returns the start parameter in radians.
func (e *Ellipse) StartParam() float64 { return e.startParam }

// SetStartParam sets the start parameter in radians.
func (e *Ellipse) SetStartParam(p float64) { e.startParam = p }

// EndParam returns the end parameter in radians.
func (e *Ellipse) EndParam() float64 { return e.endParam }

// SetEndParam sets the end parameter in radians.
func (e *Ellipse) SetEndParam(p float64) { e.endParam = p }

// HandleRecord stores center (10/20/30), major axis endpoint
// (11/21/31), ratio (40) and the start and end parameters (41/42).
func (e *Ellipse) HandleRecord(code int32, param Param) bool {
	switch code {
	case 10:
		e.center.X = paramFloat(param)
	case 20:
		e.center.Y = paramFloat(param)
	case 30:
		e.center.Z = paramFloat(param)
	case 11:
		e.majorAxis.X = paramFloat(param)
	case 21:
		e.majorAxis.Y = paramFloat(param)
	case 31:
		e.majorAxis.Z = paramFloat(param)
	case 40:
		e.ratio = paramFloat(param)
	case 41:
		e.startParam = paramFloat(param)
	case 42:
		e.endParam = paramFloat(param)
	default:
		if e.handleExtrusionRecord(code, param) {
			return true
		}
		return e.handleCommonRecord(code, param)
	}
	return true
}

func (e *Ellipse) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 10:
		return e.center.X, true
	case 20:
		return e.center.Y, true
	case 30:
		return e.center.Z, true
	case 11:
		return e.majorAxis.X, true
	case 21:
		return e.majorAxis.Y, true
	case 31:
		return e.majorAxis.Z, true
	case 40:
		return e.ratio, true
	case 41:
		return e.startParam, true
	case 42:
		return e.endParam, true
	}
	return e.extrusionRecord(code)
}

// Write serializes the entity.
func (e *Ellipse) Write(out *Output) error {
	if err := e.preWrite(out); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 10, e.center.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, e.center.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, e.center.Z); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 11, e.majorAxis.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 21, e.majorAxis.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 31, e.majorAxis.Z); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 40, e.ratio); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 41, e.startParam); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 42, e.endParam); err != nil {
		return err
	}
	if err := e.writeExtrusion(out); err != nil {
		return err
	}
	return e.writeRecords(out, e)
}

// CountRecords returns the exact number of records Write emits.
func (e *Ellipse) CountRecords() int {
	return e.countCommonRecords() + 9 + e.countExtrusion() + e.countWrittenRecords(e)
}

// ExtractGeometry tessellates the ellipse into a polyline, closed
// when the parameters span the full ellipse.
func (e *Ellipse) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	geom.Extrusion = e.extrusion
	geom.Thickness = e.thickness
	sweep := e.endParam - e.startParam
	for sweep <= 0 {
		sweep += 2 * math.Pi
	}
	major := e.majorAxis.Length()
	minor := e.extrusion.Cross(e.majorAxis).Normalized().Scale(major * e.ratio)
	full := segmentsForRadius(params, major)
	n := int(math.Ceil(float64(full) * sweep / (2 * math.Pi)))
	if n < 1 {
		n = 1
	}
	closed := sweep >= 2*math.Pi-1e-9
	last := n
	if closed {
		last = n - 1
	}
	for i := 0; i <= last; i++ {
		t := e.startParam + sweep*float64(i)/float64(n)
		p := e.center.
			Add(e.majorAxis.Scale(math.Cos(t))).
			Add(minor.Scale(math.Sin(t)))
		geom.Vertices = append(geom.Vertices, p)
		geom.Indices = append(geom.Indices, i)
	}
	if closed {
		geom.Indices = append(geom.Indices, 0)
	}
	return GeometryLines
}

// Clone copies the entity, rebinding its layer into model.
func (e *Ellipse) Clone(model *Model) Entity {
	c := &Ellipse{
		center:     e.center,
		majorAxis:  e.majorAxis,
		ratio:      e.ratio,
		startParam: e.startParam,
		endParam:   e.endParam,
	}
	e.cloneBase(&c.EntityBase, c, model)
	c.extrusion = e.extrusion
	c.thickness = e.thickness
	c.exFlags = e.exFlags
	return c
}
