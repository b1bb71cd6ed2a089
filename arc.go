// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "math"

// Arc is the ARC entity. Angles are in degrees, counterclockwise.
type Arc struct {
	extrusionEntity
	center     Vec3
	radius     float64
	startAngle float64
	endAngle   float64
}

// NewArc returns an empty ARC entity.
func NewArc() *Arc {
	a := &Arc{}
	a.initExtrusion(a, "ARC")
	return a
}

// Center returns the arc center.
func (a *Arc) Center() Vec3 { return a.center }

// SetCenter sets the arc center.
func (a *Arc) SetCenter(v Vec3) { a.center = v }

// Radius returns the arc radius.
func (a *Arc) Radius() float64 { return a.radius }

// SetRadius sets the arc radius.
func (a *Arc) SetRadius(r float64) { a.radius = r }

// StartAngle returns the start angle in degrees.
func (a *Arc) StartAngle() float64 { return a.startAngle }

// SetStartAngle sets the start angle in degrees.
func (a *Arc) SetStartAngle(deg float64) { a.startAngle = deg }

// EndAngle returns the end angle in degrees.
func (a *Arc) EndAngle() float64 { return a.endAngle }

// SetEndAngle sets the end angle in degrees.
func (a *Arc) SetEndAngle(deg float64) { a.endAngle = deg }

// HandleRecord stores center (10/20/30), radius (40) and the start
// and end angles (50/51).
func (a *Arc) HandleRecord(code int32, param Param) bool {
	switch code {
	case 10:
		a.center.X = paramFloat(param)
	case 20:
		a.center.Y = paramFloat(param)
	case 30:
		a.center.Z = paramFloat(param)
	case 40:
		a.radius = paramFloat(param)
	case 50:
		a.startAngle = paramFloat(param)
	case 51:
		a.endAngle = paramFloat(param)
	default:
		if a.handleExtrusionRecord(code, param) {
			return true
		}
		return a.handleCommonRecord(code, param)
	}
	return true
}

func (a *Arc) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 10:
		return a.center.X, true
	case 20:
		return a.center.Y, true
	case 30:
		return a.center.Z, true
	case 40:
		return a.radius, true
	case 50:
		return a.startAngle, true
	case 51:
		return a.endAngle, true
	}
	return a.extrusionRecord(code)
}

// Write serializes the entity.
func (a *Arc) Write(out *Output) error {
	if err := a.preWrite(out); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 10, a.center.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, a.center.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, a.center.Z); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 40, a.radius); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 50, a.startAngle); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 51, a.endAngle); err != nil {
		return err
	}
	if err := a.writeExtrusion(out); err != nil {
		return err
	}
	return a.writeRecords(out, a)
}

// CountRecords returns the exact number of records Write emits.
func (a *Arc) CountRecords() int {
	return a.countCommonRecords() + 6 + a.countExtrusion() + a.countWrittenRecords(a)
}

// Sweep returns the effective sweep in degrees. An end angle below
// the start angle wraps once around; coincident angles sweep a full
// circle.
func (a *Arc) Sweep() float64 {
	end := a.endAngle
	if end < a.startAngle {
		end += 360
	}
	sweep := end - a.startAngle
	if sweep == 0 {
		if a.model != nil {
			a.model.logger.Warnf("arc with start angle == end angle (%g), sweeping a full circle", a.startAngle)
		}
		sweep = 360
	}
	return sweep
}

// ExtractGeometry tessellates the arc into an open polyline.
func (a *Arc) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	geom.Extrusion = a.extrusion
	geom.Thickness = a.thickness
	sweep := a.Sweep()
	full := segmentsForRadius(params, a.radius)
	n := int(math.Ceil(float64(full) * sweep / 360))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		deg := a.startAngle + sweep*float64(i)/float64(n)
		rad := deg * math.Pi / 180
		geom.Vertices = append(geom.Vertices, Vec3{
			a.center.X + a.radius*math.Cos(rad),
			a.center.Y + a.radius*math.Sin(rad),
			a.center.Z,
		})
		geom.Indices = append(geom.Indices, i)
	}
	return GeometryLines
}

// Clone copies the entity, rebinding its layer into model.
func (a *Arc) Clone(model *Model) Entity {
	c := &Arc{center: a.center, radius: a.radius, startAngle: a.startAngle, endAngle: a.endAngle}
	a.cloneBase(&c.EntityBase, c, model)
	c.extrusion = a.extrusion
	c.thickness = a.thickness
	c.exFlags = a.exFlags
	return c
}
