// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

import "math"

// Circle is the CIRCLE entity.
type Circle struct {
	extrusionEntity
	center Vec3
	radius float64
}

// NewCircle returns an empty CIRCLE entity.
func NewCircle() *Circle {
	c := &Circle{}
	c.initExtrusion(c, "CIRCLE")
	return c
}

// Center returns the circle center.
func (c *Circle) Center() Vec3 { return c.center }

// SetCenter sets the circle center.
func (c *Circle) SetCenter(v Vec3) { c.center = v }

// Radius returns the circle radius.
func (c *Circle) Radius() float64 { return c.radius }

// SetRadius sets the circle radius.
func (c *Circle) SetRadius(r float64) { c.radius = r }

// HandleRecord stores the center (10/20/30) and radius (40).
func (c *Circle) HandleRecord(code int32, param Param) bool {
	switch code {
	case 10:
		c.center.X = paramFloat(param)
	case 20:
		c.center.Y = paramFloat(param)
	case 30:
		c.center.Z = paramFloat(param)
	case 40:
		c.radius = paramFloat(param)
	default:
		if c.handleExtrusionRecord(code, param) {
			return true
		}
		return c.handleCommonRecord(code, param)
	}
	return true
}

func (c *Circle) typedRecord(code int32, index int) (Param, bool) {
	switch code {
	case 10:
		return c.center.X, true
	case 20:
		return c.center.Y, true
	case 30:
		return c.center.Z, true
	case 40:
		return c.radius, true
	}
	return c.extrusionRecord(code)
}

// Write serializes the entity.
func (c *Circle) Write(out *Output) error {
	if err := c.preWrite(out); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 10, c.center.X); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 20, c.center.Y); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 30, c.center.Z); err != nil {
		return err
	}
	if err := writeDoubleRecord(out, 40, c.radius); err != nil {
		return err
	}
	if err := c.writeExtrusion(out); err != nil {
		return err
	}
	return c.writeRecords(out, c)
}

// CountRecords returns the exact number of records Write emits.
func (c *Circle) CountRecords() int {
	return c.countCommonRecords() + 4 + c.countExtrusion() + c.countWrittenRecords(c)
}

// ExtractGeometry tessellates the circle into a closed polyline.
func (c *Circle) ExtractGeometry(geom *Geometry, params *TessellationParams) GeometryType {
	geom.reset()
	geom.Extrusion = c.extrusion
	geom.Thickness = c.thickness
	n := segmentsForRadius(params, c.radius)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		geom.Vertices = append(geom.Vertices, Vec3{
			c.center.X + c.radius*math.Cos(a),
			c.center.Y + c.radius*math.Sin(a),
			c.center.Z,
		})
		geom.Indices = append(geom.Indices, i)
	}
	geom.Indices = append(geom.Indices, 0)
	return GeometryLines
}

// Clone copies the entity, rebinding its layer into model.
func (c *Circle) Clone(model *Model) Entity {
	n := &Circle{center: c.center, radius: c.radius}
	c.cloneBase(&n.EntityBase, n, model)
	n.extrusion = c.extrusion
	n.thickness = c.thickness
	n.exFlags = c.exFlags
	return n
}
