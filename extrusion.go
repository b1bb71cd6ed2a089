// Copyright 2024 The Dime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dime

const (
	exFlagExtrusion uint8 = 1 << iota
	exFlagThickness
)

// extrusionEntity adds the extrusion direction (210/220/230) and
// thickness (39) fields shared by most geometric entities.
type extrusionEntity struct {
	EntityBase
	extrusion Vec3
	thickness float64
	exFlags   uint8
}

func (e *extrusionEntity) initExtrusion(self Entity, name string) {
	e.EntityBase.init(self, name)
	e.extrusion = defaultExtrusion
}

// Extrusion returns the extrusion direction, +Z by default.
func (e *extrusionEntity) Extrusion() Vec3 { return e.extrusion }

// SetExtrusion sets the extrusion direction.
func (e *extrusionEntity) SetExtrusion(v Vec3) {
	e.extrusion = v
	e.exFlags |= exFlagExtrusion
}

// Thickness returns the entity thickness.
func (e *extrusionEntity) Thickness() float64 { return e.thickness }

// SetThickness sets the entity thickness.
func (e *extrusionEntity) SetThickness(t float64) {
	e.thickness = t
	e.exFlags |= exFlagThickness
}

func (e *extrusionEntity) handleExtrusionRecord(code int32, param Param) bool {
	switch code {
	case 39:
		e.thickness = paramFloat(param)
		e.exFlags |= exFlagThickness
	case 210:
		e.extrusion.X = paramFloat(param)
		e.exFlags |= exFlagExtrusion
	case 220:
		e.extrusion.Y = paramFloat(param)
		e.exFlags |= exFlagExtrusion
	case 230:
		e.extrusion.Z = paramFloat(param)
		e.exFlags |= exFlagExtrusion
	default:
		return false
	}
	return true
}

func (e *extrusionEntity) writeExtrusion(out *Output) error {
	if e.exFlags&exFlagThickness != 0 {
		if err := writeDoubleRecord(out, 39, e.thickness); err != nil {
			return err
		}
	}
	if e.exFlags&exFlagExtrusion != 0 {
		if err := writeDoubleRecord(out, 210, e.extrusion.X); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 220, e.extrusion.Y); err != nil {
			return err
		}
		if err := writeDoubleRecord(out, 230, e.extrusion.Z); err != nil {
			return err
		}
	}
	return nil
}

func (e *extrusionEntity) countExtrusion() int {
	cnt := 0
	if e.exFlags&exFlagThickness != 0 {
		cnt++
	}
	if e.exFlags&exFlagExtrusion != 0 {
		cnt += 3
	}
	return cnt
}

func (e *extrusionEntity) extrusionRecord(code int32) (Param, bool) {
	switch code {
	case 39:
		if e.exFlags&exFlagThickness != 0 {
			return e.thickness, true
		}
	case 210:
		if e.exFlags&exFlagExtrusion != 0 {
			return e.extrusion.X, true
		}
	case 220:
		if e.exFlags&exFlagExtrusion != 0 {
			return e.extrusion.Y, true
		}
	case 230:
		if e.exFlags&exFlagExtrusion != 0 {
			return e.extrusion.Z, true
		}
	}
	return nil, false
}
